package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hargabyte/archmap/internal/resolver"
	"github.com/hargabyte/archmap/internal/scanner"
)

func mod(path string) *scanner.Module {
	return &scanner.Module{Name: path, Path: path}
}

func edge(from, to string) resolver.Dependency {
	return resolver.Dependency{From: from, To: to, Type: scanner.ImportStatic}
}

func TestMermaid_Basic(t *testing.T) {
	modules := []*scanner.Module{mod("src/app.ts"), mod("src/auth.ts")}
	deps := []resolver.Dependency{edge("src/app.ts", "src/auth.ts")}

	got := Mermaid(modules, deps, nil)
	want := "flowchart TD\n" +
		"    src_app_ts[\"src/app.ts\"]\n" +
		"    src_auth_ts[\"src/auth.ts\"]\n" +
		"    src_app_ts --> src_auth_ts\n"

	if got != want {
		t.Errorf("Mermaid output:\n%s\nwant:\n%s", got, want)
	}
}

func TestMermaid_Deterministic(t *testing.T) {
	modules := []*scanner.Module{mod("b.ts"), mod("a.ts"), mod("c.ts")}
	deps := []resolver.Dependency{
		edge("c.ts", "a.ts"),
		edge("a.ts", "b.ts"),
		edge("b.ts", "a.ts"),
	}
	shuffled := []resolver.Dependency{deps[2], deps[0], deps[1]}

	first := Mermaid(modules, deps, nil)
	second := Mermaid([]*scanner.Module{modules[2], modules[0], modules[1]}, shuffled, nil)
	if first != second {
		t.Errorf("output depends on input order:\n%s\nvs:\n%s", first, second)
	}

	lines := strings.Split(strings.TrimSuffix(first, "\n"), "\n")
	wantOrder := []string{
		"flowchart TD",
		"    a_ts[\"a.ts\"]",
		"    b_ts[\"b.ts\"]",
		"    c_ts[\"c.ts\"]",
		"    a_ts --> b_ts",
		"    b_ts --> a_ts",
		"    c_ts --> a_ts",
	}
	if len(lines) != len(wantOrder) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantOrder), first)
	}
	for i, want := range wantOrder {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestMermaid_EdgeCap(t *testing.T) {
	var modules []*scanner.Module
	var deps []resolver.Dependency
	for i := 0; i < 10; i++ {
		modules = append(modules, mod(fmt.Sprintf("m%02d.ts", i)))
	}
	for i := 0; i < 9; i++ {
		deps = append(deps, edge(fmt.Sprintf("m%02d.ts", i), fmt.Sprintf("m%02d.ts", i+1)))
	}

	got := Mermaid(modules, deps, &Options{MaxEdges: 3})

	edgeLines := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "-->") {
			edgeLines++
		}
	}
	if edgeLines != 3 {
		t.Errorf("edge lines = %d, want 3", edgeLines)
	}
	if !strings.Contains(got, "%% 6 more edges omitted") {
		t.Errorf("missing omission summary:\n%s", got)
	}
}

func TestMermaid_NoSummaryUnderCap(t *testing.T) {
	modules := []*scanner.Module{mod("a.ts"), mod("b.ts")}
	deps := []resolver.Dependency{edge("a.ts", "b.ts")}

	got := Mermaid(modules, deps, &Options{MaxEdges: 5})
	if strings.Contains(got, "omitted") {
		t.Errorf("summary emitted below the cap:\n%s", got)
	}
}

func TestMermaid_EmptyProject(t *testing.T) {
	if got := Mermaid(nil, nil, nil); got != "flowchart TD\n" {
		t.Errorf("empty render = %q", got)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"src/app.ts", "src_app_ts"},
		{"a-b c.ts", "a_b_c_ts"},
		{"3d/model.ts", "_3d_model_ts"},
		{"", "_empty"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := sanitizeID(tt.in); got != tt.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeLabel(t *testing.T) {
	if got := escapeLabel(`a"<b>`); got != "a#quot;#lt;b#gt;" {
		t.Errorf("escapeLabel = %q", got)
	}
}
