// Package render emits a bounded, deterministic textual representation
// of the dependency graph for visualization.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hargabyte/archmap/internal/resolver"
	"github.com/hargabyte/archmap/internal/scanner"
)

// DefaultMaxEdges is the edge cap applied when the caller does not
// configure one.
const DefaultMaxEdges = 100

// Options configures graph rendering.
type Options struct {
	// MaxEdges caps the number of edge lines. When the true edge count
	// exceeds it, a single summary line reports how many were omitted.
	MaxEdges int
}

// Mermaid renders the graph as a Mermaid flowchart: one line per module,
// one line per edge up to the cap. Output is deterministic: nodes and
// edges are sorted before emission.
//
// Node identifiers are sanitized module paths, used only inside the
// rendered text; module identity everywhere else remains the path.
func Mermaid(modules []*scanner.Module, deps []resolver.Dependency, opts *Options) string {
	maxEdges := DefaultMaxEdges
	if opts != nil && opts.MaxEdges > 0 {
		maxEdges = opts.MaxEdges
	}

	paths := make([]string, 0, len(modules))
	labels := make(map[string]string, len(modules))
	for _, mod := range modules {
		paths = append(paths, mod.Path)
		labels[mod.Path] = mod.Name
	}
	sort.Strings(paths)

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	for _, p := range paths {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeID(p), escapeLabel(labels[p])))
	}

	sorted := make([]resolver.Dependency, len(deps))
	copy(sorted, deps)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	emitted := 0
	for _, dep := range sorted {
		if emitted >= maxEdges {
			break
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeID(dep.From), sanitizeID(dep.To)))
		emitted++
	}
	if omitted := len(sorted) - emitted; omitted > 0 {
		sb.WriteString(fmt.Sprintf("    %%%% %d more edges omitted\n", omitted))
	}

	return sb.String()
}

// sanitizeID converts a module path into an identifier Mermaid accepts.
// It is pure and collision-tolerant: distinct paths may map to the same
// identifier, which only merges their rendered nodes.
var invalidIDChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeID(id string) string {
	sanitized := invalidIDChars.ReplaceAllString(id, "_")
	if len(sanitized) > 0 && sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "_" + sanitized
	}
	if sanitized == "" {
		sanitized = "_empty"
	}
	return sanitized
}

// escapeLabel escapes characters Mermaid treats specially inside quoted
// labels.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
