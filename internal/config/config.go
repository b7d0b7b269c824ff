package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
}

// SiteConfig holds page-shell level settings shared by every generated page.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Language    string `yaml:"language,omitempty"`
}

// ContentConfig controls discovery of source notes.
type ContentConfig struct {
	Root       string   `yaml:"root"`
	Exclude    []string `yaml:"exclude,omitempty"`    // Directory names pruned from traversal
	Extensions []string `yaml:"extensions,omitempty"` // Markdown extension names for rendering
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Index string `yaml:"index"` // Root-level index file name
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Port    int  `yaml:"port"`
	Metrics bool `yaml:"metrics"`
}

// DefaultExcludeDirs are the directory names never traversed when the
// configuration does not override them: tooling, CI config, version control
// metadata, asset, and cache directories.
var DefaultExcludeDirs = []string{".git", ".github", "tools", "assets", "__pycache__"}

// Load loads configuration from the specified file. A missing file is not an
// error: defaults alone must produce a working build.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; existing process env wins.
	loadEnvFile()

	config := &Config{}
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Site.Title == "" {
		config.Site.Title = "memo | tech notes"
	}
	if config.Site.Description == "" {
		config.Site.Description = "Markdownから自動生成された技術メモ集"
	}
	if config.Site.Language == "" {
		config.Site.Language = "ja"
	}
	if config.Content.Root == "" {
		config.Content.Root = "posts"
	}
	if len(config.Content.Exclude) == 0 {
		config.Content.Exclude = append([]string(nil), DefaultExcludeDirs...)
	}
	if config.Output.Index == "" {
		config.Output.Index = "index.html"
	}
	if config.Preview.Port == 0 {
		config.Preview.Port = 1316
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# memosite configuration
site:
  title: "memo | tech notes"
  description: "Markdownから自動生成された技術メモ集"
  language: ja

content:
  root: posts
  # Directory names never traversed (hidden directories are always skipped)
  exclude:
    - .git
    - .github
    - tools
    - assets
    - __pycache__

output:
  index: index.html

preview:
  port: 1316
  metrics: false
`

	// #nosec G306 -- configuration is not sensitive
	if err := os.WriteFile(configPath, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
