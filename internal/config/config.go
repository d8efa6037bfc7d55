// Package config loads the postbuilder configuration file.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pberrors "git.home.luguber.info/inful/postbuilder/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig     `yaml:"site"`
	Content ContentConfig  `yaml:"content"`
	Output  OutputConfig   `yaml:"output"`
	Render  RenderConfig   `yaml:"render"`
	Publish *PublishConfig `yaml:"publish,omitempty"`
}

// SiteConfig carries site-wide fields substituted into layouts
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url,omitempty"`
	Author  string `yaml:"author,omitempty"`
}

// ContentConfig locates the content sources
type ContentConfig struct {
	Dir        string `yaml:"dir"`
	LayoutsDir string `yaml:"layouts_dir,omitempty"`
	// Repo optionally names a git repository to clone/pull into Dir before building
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// RenderConfig tunes the body renderer and build parallelism
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`
	// StateDB is the path of the incremental-build state database.
	// Empty disables incremental skipping.
	StateDB string `yaml:"state_db,omitempty"`
}

// PublishConfig enables build-event publishing over NATS
type PublishConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env files if present so ${VAR} expansion below can see them.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, pberrors.ConfigNotFound(configPath)
	}

	// #nosec G304 -- configPath comes from the CLI flag.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, pberrors.ReadFailed(err, configPath)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, pberrors.WrapError(err, pberrors.CategoryConfig, "failed to parse configuration").
			WithContext("path", configPath)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "public"
	}
	if c.Render.HighlightStyle == "" {
		c.Render.HighlightStyle = "github"
	}
	if c.Render.Workers <= 0 {
		c.Render.Workers = 4
	}
	if c.Content.Branch == "" {
		c.Content.Branch = "main"
	}
	if c.Publish != nil && c.Publish.SubjectPrefix == "" {
		c.Publish.SubjectPrefix = "postbuilder"
	}
}
