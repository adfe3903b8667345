// Package config loads and validates the docpush configuration file.
package config

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docpush/internal/ci"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Generator GeneratorConfig `yaml:"generator"`
	Publish   PublishConfig   `yaml:"publish"`
	CI        ci.SourceVars   `yaml:"ci,omitempty"`
	Journal   JournalConfig   `yaml:"journal,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// ProjectConfig identifies the repository whose documentation is published.
type ProjectConfig struct {
	Slug    string `yaml:"slug"`             // expected owner/project, matched exactly against the CI signal
	Package string `yaml:"package"`          // package name the redirect index points into
	Branch  string `yaml:"branch,omitempty"` // branch that triggers publishing, default master
	Dir     string `yaml:"dir,omitempty"`    // project directory the generator runs in, default "."
}

// GeneratorConfig describes the external documentation generator invocation.
type GeneratorConfig struct {
	Command string   `yaml:"command,omitempty"` // default cargo
	Args    []string `yaml:"args,omitempty"`    // default [doc, --no-deps]
	Output  string   `yaml:"output,omitempty"`  // output directory relative to project dir, default target/doc
}

// PublishConfig describes where and how the snapshot branch is pushed.
type PublishConfig struct {
	Branch        string `yaml:"branch,omitempty"`         // default gh-pages
	Host          string `yaml:"host,omitempty"`           // default github.com
	RemoteURL     string `yaml:"remote_url,omitempty"`     // optional full URL override; wins over host+slug
	CommitMessage string `yaml:"commit_message,omitempty"` // default "Update documentation"
	AuthorName    string `yaml:"author_name,omitempty"`
	AuthorEmail   string `yaml:"author_email,omitempty"`
}

// JournalConfig enables the publish history journal when a path is set.
type JournalConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables Pushgateway delivery when a gateway URL is set.
type MetricsConfig struct {
	Gateway string `yaml:"gateway,omitempty"`
	Job     string `yaml:"job,omitempty"` // default docpush
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if present; never fatal.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content so secrets can be
	// referenced as ${VAR} instead of written into the file.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Project.Branch == "" {
		c.Project.Branch = "master"
	}
	if c.Project.Dir == "" {
		c.Project.Dir = "."
	}
	if c.Generator.Command == "" {
		c.Generator.Command = "cargo"
	}
	if len(c.Generator.Args) == 0 {
		c.Generator.Args = []string{"doc", "--no-deps"}
	}
	if c.Generator.Output == "" {
		c.Generator.Output = "target/doc"
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "gh-pages"
	}
	if c.Publish.Host == "" {
		c.Publish.Host = "github.com"
	}
	if c.Publish.CommitMessage == "" {
		c.Publish.CommitMessage = "Update documentation"
	}
	if c.Publish.AuthorName == "" {
		c.Publish.AuthorName = "docpush"
	}
	if c.Publish.AuthorEmail == "" {
		c.Publish.AuthorEmail = "docpush@invalid"
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "docpush"
	}
}

// Validate checks invariants that would otherwise surface as confusing
// failures deep inside a publish run.
func (c *Config) Validate() error {
	if c.Project.Slug == "" {
		return fmt.Errorf("project.slug is required (expected owner/project identity)")
	}
	if c.Project.Package == "" {
		return fmt.Errorf("project.package is required (redirect index target)")
	}
	return nil
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Project: ProjectConfig{
			Slug:    "example/project",
			Package: "project",
			Branch:  "master",
		},
		Generator: GeneratorConfig{
			Command: "cargo",
			Args:    []string{"doc", "--no-deps"},
			Output:  "target/doc",
		},
		Publish: PublishConfig{
			Branch: "gh-pages",
			Host:   "github.com",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
