package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docpush.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
project:
  slug: i30817/scinotation
  package: scinotation
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "master", cfg.Project.Branch)
	assert.Equal(t, ".", cfg.Project.Dir)
	assert.Equal(t, "cargo", cfg.Generator.Command)
	assert.Equal(t, []string{"doc", "--no-deps"}, cfg.Generator.Args)
	assert.Equal(t, "target/doc", cfg.Generator.Output)
	assert.Equal(t, "gh-pages", cfg.Publish.Branch)
	assert.Equal(t, "github.com", cfg.Publish.Host)
	assert.Equal(t, "Update documentation", cfg.Publish.CommitMessage)
	assert.Equal(t, "docpush", cfg.Metrics.Job)
}

func TestLoadExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
project:
  slug: owner/proj
  package: proj
  branch: main
generator:
  command: mkdocs
  args: [build]
  output: site
publish:
  branch: pages
  host: gitlab.com
  commit_message: docs snapshot
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Project.Branch)
	assert.Equal(t, "mkdocs", cfg.Generator.Command)
	assert.Equal(t, []string{"build"}, cfg.Generator.Args)
	assert.Equal(t, "site", cfg.Generator.Output)
	assert.Equal(t, "pages", cfg.Publish.Branch)
	assert.Equal(t, "gitlab.com", cfg.Publish.Host)
	assert.Equal(t, "docs snapshot", cfg.Publish.CommitMessage)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCPUSH_TEST_SLUG", "env/expanded")
	path := writeConfig(t, `
project:
  slug: ${DOCPUSH_TEST_SLUG}
  package: proj
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env/expanded", cfg.Project.Slug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateRequiresSlugAndPackage(t *testing.T) {
	_, err := Load(writeConfig(t, "project:\n  package: p\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project.slug")

	_, err = Load(writeConfig(t, "project:\n  slug: a/b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project.package")
}

func TestInitWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docpush.yaml")
	require.NoError(t, Init(path, false))

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "example/project", cfg.Project.Slug)
	assert.Equal(t, "gh-pages", cfg.Publish.Branch)
}
