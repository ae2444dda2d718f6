package config

import (
	"github.com/hargabyte/archmap/internal/render"
	"github.com/hargabyte/archmap/internal/scanner"
)

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when the file omits fields.
func DefaultConfig() *Config {
	exclude := make([]string, len(scanner.DefaultExcludes))
	copy(exclude, scanner.DefaultExcludes)

	return &Config{
		Exclude:       exclude,
		MaxDepth:      0,
		UseAST:        false,
		MaxGraphEdges: render.DefaultMaxEdges,
	}
}

// Merge merges loaded config with defaults. Values from the loaded
// config take precedence. Returns a new Config.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	if len(loaded.LayerRules) > 0 {
		result.LayerRules = loaded.LayerRules
	} else {
		result.LayerRules = defaults.LayerRules
	}

	// Nil means unset for the toggles, so loaded always wins when set.
	result.DetectCircular = loaded.DetectCircular
	if result.DetectCircular == nil {
		result.DetectCircular = defaults.DetectCircular
	}
	result.GenerateGraph = loaded.GenerateGraph
	if result.GenerateGraph == nil {
		result.GenerateGraph = defaults.GenerateGraph
	}

	if loaded.MaxDepth != 0 {
		result.MaxDepth = loaded.MaxDepth
	} else {
		result.MaxDepth = defaults.MaxDepth
	}

	result.UseAST = loaded.UseAST || defaults.UseAST

	if loaded.MaxGraphEdges != 0 {
		result.MaxGraphEdges = loaded.MaxGraphEdges
	} else {
		result.MaxGraphEdges = defaults.MaxGraphEdges
	}

	return result
}
