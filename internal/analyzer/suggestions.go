package analyzer

import (
	"fmt"

	"github.com/hargabyte/archmap/internal/layers"
	"github.com/hargabyte/archmap/internal/metrics"
)

// Suggestion thresholds. Coupling and cohesion are 0-100 scores; fan-out
// is an absolute outgoing-edge count.
const (
	highCouplingThreshold = 70
	lowCohesionThreshold  = 30
	highFanOutThreshold   = 15
)

// buildSuggestions derives human-readable improvement suggestions from
// the computed facts. The rules are deterministic: the same metrics and
// violations always yield the same list, in the same order.
func buildSuggestions(m metrics.Metrics, violations []layers.Violation) []string {
	suggestions := []string{}

	if m.CircularDependencies > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Resolve %d circular %s by extracting shared code into separate modules",
			m.CircularDependencies, pluralize(m.CircularDependencies, "dependency", "dependencies")))
	}

	if len(violations) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Fix %d layer %s so dependencies only flow toward allowed layers",
			len(violations), pluralize(len(violations), "violation", "violations")))
	}

	if m.Coupling > highCouplingThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Reduce coupling (score %d/100) by introducing interfaces between subsystems",
			m.Coupling))
	}

	if m.TotalDependencies > 0 && m.Cohesion < lowCohesionThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Improve cohesion (score %d/100) by grouping related modules into shared directories",
			m.Cohesion))
	}

	if m.MaxDependencies > highFanOutThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Split the module with the highest fan-out (%d outgoing dependencies)",
			m.MaxDependencies))
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"No architectural issues detected; dependency structure looks healthy")
	}
	return suggestions
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
