// Package metrics computes aggregate architecture statistics over the
// scanned modules and resolved edges.
package metrics

import (
	"math"
	"path"

	"github.com/hargabyte/archmap/internal/graph"
	"github.com/hargabyte/archmap/internal/layers"
	"github.com/hargabyte/archmap/internal/resolver"
	"github.com/hargabyte/archmap/internal/scanner"
)

// couplingEdgeBudget is the per-module edge count at which coupling
// saturates at 100. Three edges per module is already a densely
// connected graph for file-level modules.
const couplingEdgeBudget = 3

// Metrics holds the aggregate statistics of one analysis run.
type Metrics struct {
	TotalModules                 int `json:"totalModules"`
	TotalDependencies            int `json:"totalDependencies"`
	AverageDependenciesPerModule int `json:"averageDependenciesPerModule"`
	MaxDependencies              int `json:"maxDependencies"`
	CircularDependencies         int `json:"circularDependencies"`
	LayerViolations              int `json:"layerViolations"`
	// Cohesion scores 0-100 how much dependencies stay within one
	// directory. Coupling scores 0-100 overall inter-module
	// connectivity. Both are 0 for empty or fully isolated module sets.
	Cohesion int `json:"cohesion"`
	Coupling int `json:"coupling"`
}

// Compute derives all metrics from the pipeline's outputs. It is a pure
// function: same inputs, same metrics.
func Compute(
	modules []*scanner.Module,
	deps []resolver.Dependency,
	cycles []graph.CircularDependency,
	violations []layers.Violation,
) Metrics {
	m := Metrics{
		TotalModules:         len(modules),
		TotalDependencies:    len(deps),
		CircularDependencies: len(cycles),
		LayerViolations:      len(violations),
	}

	if m.TotalModules > 0 {
		m.AverageDependenciesPerModule = int(math.Round(
			float64(m.TotalDependencies) / float64(m.TotalModules)))
	}

	fanOut := make(map[string]int, len(modules))
	for _, dep := range deps {
		fanOut[dep.From]++
	}
	for _, count := range fanOut {
		if count > m.MaxDependencies {
			m.MaxDependencies = count
		}
	}

	m.Cohesion = cohesion(deps)
	m.Coupling = coupling(m.TotalModules, m.TotalDependencies)
	return m
}

// cohesion is the share of edges whose endpoints live in the same
// directory, scaled to 0-100. More cross-directory edges can only lower
// it. Zero edges score 0.
func cohesion(deps []resolver.Dependency) int {
	if len(deps) == 0 {
		return 0
	}
	local := 0
	for _, dep := range deps {
		if path.Dir(dep.From) == path.Dir(dep.To) {
			local++
		}
	}
	return int(math.Round(100 * float64(local) / float64(len(deps))))
}

// coupling scales total connectivity against module count, saturating at
// 100 once the graph averages couplingEdgeBudget edges per module. More
// edges can only raise it. Zero modules score 0.
func coupling(moduleCount, edgeCount int) int {
	if moduleCount == 0 {
		return 0
	}
	score := int(math.Round(100 * float64(edgeCount) /
		float64(couplingEdgeBudget*moduleCount)))
	if score > 100 {
		score = 100
	}
	return score
}
