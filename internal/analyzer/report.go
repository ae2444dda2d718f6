// Package analyzer orchestrates the analysis pipeline and assembles the
// final report.
package analyzer

import (
	"github.com/hargabyte/archmap/internal/graph"
	"github.com/hargabyte/archmap/internal/layers"
	"github.com/hargabyte/archmap/internal/metrics"
	"github.com/hargabyte/archmap/internal/resolver"
	"github.com/hargabyte/archmap/internal/scanner"
)

// Analysis is the immutable report produced by one analysis run. It is a
// plain serializable record: every referenced module path appears in
// Modules, and the engine holds no state beyond it.
type Analysis struct {
	ProjectPath          string                     `json:"projectPath"`
	Modules              []*scanner.Module          `json:"modules"`
	Dependencies         []resolver.Dependency      `json:"dependencies"`
	CircularDependencies []graph.CircularDependency `json:"circularDependencies"`
	LayerViolations      []layers.Violation         `json:"layerViolations"`
	Metrics              metrics.Metrics            `json:"metrics"`
	Suggestions          []string                   `json:"suggestions"`
	DependencyGraph      string                     `json:"dependencyGraph"`
	Warnings             []scanner.Warning          `json:"warnings"`
	Timestamp            string                     `json:"timestamp"`
}
