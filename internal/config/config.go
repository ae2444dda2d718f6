// Package config loads and validates analysis configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/archmap/internal/layers"
)

// ConfigFileName is the name of the archmap configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the archmap configuration directory.
const ConfigDirName = ".archmap"

// Config holds all analysis configuration.
type Config struct {
	// Exclude lists path substrings to skip during scanning.
	Exclude []string `yaml:"exclude"`
	// LayerRules declares architectural layers and their allowed
	// dependencies, in declaration order. Empty means layer validation
	// is skipped.
	LayerRules layers.Rules `yaml:"layer_rules"`
	// DetectCircular toggles cycle detection. Unset means enabled.
	DetectCircular *bool `yaml:"detect_circular"`
	// GenerateGraph toggles graph rendering. Unset means enabled.
	GenerateGraph *bool `yaml:"generate_graph"`
	// MaxDepth bounds directory recursion during scanning. Zero means
	// unlimited.
	MaxDepth int `yaml:"max_depth"`
	// UseAST switches import extraction from pattern scanning to the
	// tree-sitter backed extractor.
	UseAST bool `yaml:"use_ast"`
	// MaxGraphEdges caps the edge lines in the rendered graph.
	MaxGraphEdges int `yaml:"max_graph_edges"`
}

// CircularDetectionEnabled reports whether cycle detection should run.
func (c *Config) CircularDetectionEnabled() bool {
	return c.DetectCircular == nil || *c.DetectCircular
}

// GraphEnabled reports whether graph rendering should run.
func (c *Config) GraphEnabled() bool {
	return c.GenerateGraph == nil || *c.GenerateGraph
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .archmap/config.yaml, falling back to defaults.
// The config directory is searched starting from workDir and walking up
// the directory tree.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path, merges it with
// defaults, and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir locates the .archmap directory by walking up from
// startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be non-negative, got %d",
			ErrInvalidConfig, cfg.MaxDepth)
	}
	if cfg.MaxGraphEdges <= 0 {
		return fmt.Errorf("%w: max_graph_edges must be positive, got %d",
			ErrInvalidConfig, cfg.MaxGraphEdges)
	}
	if err := cfg.LayerRules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
