package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hargabyte/archmap/internal/analyzer"
	"github.com/hargabyte/archmap/internal/config"
	"github.com/hargabyte/archmap/internal/layers"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze the dependency architecture of a project",
	Long: `Analyze scans the given directory (or the current directory), builds
the file-level dependency graph, and reports cycles, layer violations,
metrics, and improvement suggestions.

Configuration is read from .archmap/config.yaml when present; flags
override file values.

Examples:
  archmap analyze                          # Current directory, JSON report
  archmap analyze ./src --format summary   # Condensed human-readable output
  archmap analyze --layer-rules rules.yaml # Enable layer validation
  archmap analyze --exclude generated      # Additional exclusion substring`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeExclude    []string
	analyzeMaxDepth   int
	analyzeLayerRules string
	analyzeNoCycles   bool
	analyzeNoGraph    bool
	analyzeUseAST     bool
	analyzeFormat     string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "Additional path substrings to exclude")
	analyzeCmd.Flags().IntVar(&analyzeMaxDepth, "max-depth", 0, "Maximum directory depth (0 = unlimited)")
	analyzeCmd.Flags().StringVar(&analyzeLayerRules, "layer-rules", "", "YAML file declaring layer rules")
	analyzeCmd.Flags().BoolVar(&analyzeNoCycles, "no-cycles", false, "Skip circular dependency detection")
	analyzeCmd.Flags().BoolVar(&analyzeNoGraph, "no-graph", false, "Skip graph rendering")
	analyzeCmd.Flags().BoolVar(&analyzeUseAST, "ast", false, "Use tree-sitter parsing for import extraction")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format: json | summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	cfg, err := config.Load(projectPath)
	if err != nil {
		return err
	}

	if len(analyzeExclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, analyzeExclude...)
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = analyzeMaxDepth
	}
	if analyzeLayerRules != "" {
		rules, err := loadLayerRules(analyzeLayerRules)
		if err != nil {
			return err
		}
		cfg.LayerRules = rules
	}
	if analyzeNoCycles {
		disabled := false
		cfg.DetectCircular = &disabled
	}
	if analyzeNoGraph {
		disabled := false
		cfg.GenerateGraph = &disabled
	}
	if analyzeUseAST {
		cfg.UseAST = true
	}

	report, err := analyzer.Analyze(cmd.Context(), projectPath, cfg)
	if err != nil {
		return err
	}

	if verbose {
		for _, warning := range report.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
	}

	switch analyzeFormat {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "summary":
		printSummary(cmd, report)
	default:
		return fmt.Errorf("unknown format %q (expected json or summary)", analyzeFormat)
	}
	return nil
}

// loadLayerRules reads an ordered layer-rule mapping from a YAML file.
func loadLayerRules(path string) (layers.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layer rules: %w", err)
	}
	var rules layers.Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing layer rules: %w", err)
	}
	return rules, nil
}

// printSummary writes a condensed human-readable view of the report.
func printSummary(cmd *cobra.Command, report *analyzer.Analysis) {
	out := cmd.OutOrStdout()
	m := report.Metrics

	fmt.Fprintf(out, "Project: %s\n", report.ProjectPath)
	fmt.Fprintf(out, "Modules: %d  Dependencies: %d (avg %d, max %d)\n",
		m.TotalModules, m.TotalDependencies, m.AverageDependenciesPerModule, m.MaxDependencies)
	fmt.Fprintf(out, "Cohesion: %d/100  Coupling: %d/100\n", m.Cohesion, m.Coupling)

	if len(report.CircularDependencies) > 0 {
		fmt.Fprintf(out, "\nCircular dependencies (%d):\n", len(report.CircularDependencies))
		for _, cycle := range report.CircularDependencies {
			fmt.Fprintf(out, "  [%s] %v\n", cycle.Severity, cycle.Cycle)
		}
	}
	if len(report.LayerViolations) > 0 {
		fmt.Fprintf(out, "\nLayer violations (%d):\n", len(report.LayerViolations))
		for _, violation := range report.LayerViolations {
			fmt.Fprintf(out, "  %s\n", violation.Description)
		}
	}

	fmt.Fprintln(out, "\nSuggestions:")
	for _, suggestion := range report.Suggestions {
		fmt.Fprintf(out, "  - %s\n", suggestion)
	}
}
