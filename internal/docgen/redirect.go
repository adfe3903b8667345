package docgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// RedirectFileName is the landing page written into the output directory.
const RedirectFileName = "index.html"

// RedirectContent returns the exact body of the redirect index: a meta
// refresh that forwards the browser into the package's own index page. The
// generator produces per-package pages but no top-level landing page; this
// single line compensates.
func RedirectContent(pkg string) string {
	return fmt.Sprintf("<meta http-equiv=refresh content=0;url=%s/index.html>", pkg)
}

// WriteRedirect stamps the redirect index into outputDir. The directory must
// already exist (the generator created it); a missing directory means the
// generation step did not produce what it was expected to.
func WriteRedirect(outputDir, pkg string) error {
	if stat, err := os.Stat(outputDir); err != nil {
		return fmt.Errorf("documentation output directory missing: %w", err)
	} else if !stat.IsDir() {
		return fmt.Errorf("documentation output path %s is not a directory", outputDir)
	}
	path := filepath.Join(outputDir, RedirectFileName)
	if err := os.WriteFile(path, []byte(RedirectContent(pkg)), 0o644); err != nil {
		return fmt.Errorf("failed to write redirect index: %w", err)
	}
	return nil
}
