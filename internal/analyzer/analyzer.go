package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hargabyte/archmap/internal/config"
	"github.com/hargabyte/archmap/internal/graph"
	"github.com/hargabyte/archmap/internal/layers"
	"github.com/hargabyte/archmap/internal/metrics"
	"github.com/hargabyte/archmap/internal/render"
	"github.com/hargabyte/archmap/internal/resolver"
	"github.com/hargabyte/archmap/internal/scanner"
)

// ErrBadProject is returned when the project path does not exist or is
// not a directory. No partial report accompanies it.
var ErrBadProject = errors.New("invalid project path")

// Analyze runs the full pipeline over projectPath and returns one
// report. Every invocation scans the filesystem fresh and builds its own
// module set, so concurrent invocations cannot interfere; the result is
// a pure function of (projectPath, cfg, filesystem contents at scan
// start).
//
// A nil cfg means defaults. Cancellation via ctx abandons the whole
// invocation between stages and during scanning.
func Analyze(ctx context.Context, projectPath string, cfg *config.Config) (*Analysis, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadProject, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadProject, projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrBadProject, projectPath)
	}

	var extractor scanner.Extractor = scanner.RegexExtractor{}
	if cfg.UseAST {
		extractor = scanner.ASTExtractor{}
	}
	s := scanner.New(scanner.Options{
		Excludes:  cfg.Exclude,
		MaxDepth:  cfg.MaxDepth,
		Extractor: extractor,
	})

	modules, warnings, err := s.Scan(ctx, absPath)
	if err != nil {
		return nil, err
	}
	if warnings == nil {
		warnings = []scanner.Warning{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deps := resolver.Resolve(modules)

	cycles := []graph.CircularDependency{}
	if cfg.CircularDetectionEnabled() {
		cycles = buildGraph(modules, deps).FindCircularDependencies()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	violations := []layers.Violation{}
	if len(cfg.LayerRules) > 0 {
		violations = layers.Check(deps, cfg.LayerRules)
	}

	computed := metrics.Compute(modules, deps, cycles, violations)

	graphText := ""
	if cfg.GraphEnabled() {
		graphText = render.Mermaid(modules, deps, &render.Options{MaxEdges: cfg.MaxGraphEdges})
	}

	return &Analysis{
		ProjectPath:          absPath,
		Modules:              modules,
		Dependencies:         deps,
		CircularDependencies: cycles,
		LayerViolations:      violations,
		Metrics:              computed,
		Suggestions:          buildSuggestions(computed, violations),
		DependencyGraph:      graphText,
		Warnings:             warnings,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// buildGraph assembles the adjacency structure from the module set and
// edge list. Isolated modules become nodes without edges.
func buildGraph(modules []*scanner.Module, deps []resolver.Dependency) *graph.Graph {
	g := graph.New()
	for _, mod := range modules {
		g.AddNode(mod.Path)
	}
	for _, dep := range deps {
		g.AddEdge(dep.From, dep.To)
	}
	return g
}
