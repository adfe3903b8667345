// Package docgen invokes the external documentation generator and stamps the
// redirect index the generator does not produce itself.
package docgen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/docpush/internal/logfields"
)

// Generator abstracts how documentation is produced from the project. This
// allows swapping out the external binary (ExecGenerator) with deterministic
// fakes in tests without changing stage orchestration.
//
// Contract: Generate(ctx, projectDir) runs the tool inside projectDir and
// leaves the generated files in the configured output directory. Errors are
// the tool's own failure, propagated verbatim.
type Generator interface {
	Generate(ctx context.Context, projectDir string) error
}

// ExecGenerator runs a documentation tool binary found on PATH.
type ExecGenerator struct {
	Command string
	Args    []string
}

// Generate executes the configured command inside projectDir. The tool's
// stderr is surfaced in the returned error so CI logs show the diagnostic.
func (g *ExecGenerator) Generate(ctx context.Context, projectDir string) error {
	if _, err := exec.LookPath(g.Command); err != nil {
		return fmt.Errorf("documentation generator %q not found: %w", g.Command, err)
	}

	cmd := exec.CommandContext(ctx, g.Command, g.Args...)
	cmd.Dir = projectDir
	cmd.Stdout = os.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Info("Running documentation generator",
		slog.String("command", g.Command),
		logfields.Path(projectDir))

	err := cmd.Run()
	if out := stderr.String(); out != "" {
		slog.Warn("generator stderr", slog.String("output", out))
	}
	if err != nil {
		if out := stderr.String(); out != "" {
			return fmt.Errorf("generator %s failed: %w: %s", g.Command, err, out)
		}
		return fmt.Errorf("generator %s failed: %w", g.Command, err)
	}
	return nil
}

// Noop performs no generation; useful in tests or when the output directory
// is produced by an earlier CI step.
type Noop struct{}

func (Noop) Generate(ctx context.Context, projectDir string) error {
	slog.Debug("Noop generator skipping generation", logfields.Path(projectDir))
	return nil
}
