// Package config loads reveal settings from a YAML or TOML file and the
// environment.
//
// Precedence is DefaultConfig, then the config file, then REVEAL_*
// environment variables. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/model"
)

// Environment variables read by Load
const (
	EnvConfig      = "REVEAL_CONFIG"
	EnvPatterns    = "REVEAL_PATTERNS"
	EnvScale       = "REVEAL_SCALE"
	EnvConcurrency = "REVEAL_CONCURRENCY"
)

// ErrUnsupportedExtension is returned for config files that are neither
// YAML nor TOML
var ErrUnsupportedExtension = errors.New("unsupported config file extension")

// Config holds all configuration for reveal
type Config struct {
	// Patterns are the answer markers, in priority order
	Patterns []string `yaml:"patterns" toml:"patterns"`

	// Scale is the viewport pixel scale
	Scale float64 `yaml:"scale" toml:"scale"`

	// Concurrency limits how many pages are processed at once (0 = GOMAXPROCS)
	Concurrency int `yaml:"concurrency" toml:"concurrency"`

	// Detect holds the region builder tolerances
	Detect detect.Config `yaml:"detect" toml:"detect"`

	// Labels overrides the numbered and lettered item patterns
	Labels LabelPatterns `yaml:"labels" toml:"labels"`

	labels detect.LabelConfig
}

// LabelPatterns holds label regular expressions as text. Empty lists keep
// the defaults.
type LabelPatterns struct {
	Numbered []string `yaml:"numbered" toml:"numbered"`
	Lettered []string `yaml:"lettered" toml:"lettered"`
}

// LabelConfig returns the compiled label patterns
func (c *Config) LabelConfig() detect.LabelConfig {
	if c.labels.NumberedPatterns == nil && c.labels.LetterPatterns == nil {
		return detect.DefaultLabelConfig()
	}
	return c.labels
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Patterns:    []string{"answer:"},
		Scale:       model.DefaultScale,
		Concurrency: 0,
		Detect:      detect.DefaultConfig(),
	}
}

// Load loads configuration from path and the environment. An empty path
// falls back to REVEAL_CONFIG and then the user config directory; a
// missing file at a fallback location is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := compileLabels(cfg); err != nil {
		return nil, fmt.Errorf("failed to compile label patterns: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "reveal", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "reveal", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML or TOML file
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
	}
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if patterns := os.Getenv(EnvPatterns); patterns != "" {
		cfg.Patterns = strings.Split(patterns, ",")
	}

	if scale := os.Getenv(EnvScale); scale != "" {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScale, err)
		}
		cfg.Scale = v
	}

	if concurrency := os.Getenv(EnvConcurrency); concurrency != "" {
		v, err := strconv.Atoi(concurrency)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvConcurrency, err)
		}
		cfg.Concurrency = v
	}

	return nil
}

// compileLabels compiles the label patterns, keeping the defaults for any
// list left empty
func compileLabels(cfg *Config) error {
	if len(cfg.Labels.Numbered) == 0 && len(cfg.Labels.Lettered) == 0 {
		cfg.labels = detect.LabelConfig{}
		return nil
	}

	labels := detect.DefaultLabelConfig()
	if len(cfg.Labels.Numbered) > 0 {
		compiled, err := compileAll(cfg.Labels.Numbered)
		if err != nil {
			return err
		}
		labels.NumberedPatterns = compiled
	}
	if len(cfg.Labels.Lettered) > 0 {
		compiled, err := compileAll(cfg.Labels.Lettered)
		if err != nil {
			return err
		}
		labels.LetterPatterns = compiled
	}
	cfg.labels = labels
	return nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be non-negative, got %d", c.Concurrency)
	}

	if len(detect.NormalizePatterns(c.Patterns)) == 0 {
		return fmt.Errorf("at least one non-empty pattern is required")
	}

	if err := c.Detect.Validate(); err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	return nil
}
