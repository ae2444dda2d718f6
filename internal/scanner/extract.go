package scanner

import (
	"regexp"
	"sort"
	"strings"
)

// Extraction is the result of pulling import and export references out of
// one source file.
type Extraction struct {
	// Imports lists every raw import reference in source order,
	// de-duplicated on the raw string (first occurrence wins).
	Imports []ImportRef
	// Exports lists exported identifiers, sorted. A default export is
	// recorded as "default".
	Exports []string
}

// Extractor extracts import and export references from source text.
// The ordered raw import list is the sole contract with the resolver, so
// a different implementation (for example an AST-backed one) can be
// swapped in without touching any downstream stage.
type Extractor interface {
	Extract(path string, src []byte) (Extraction, error)
}

// Extraction patterns. Three independent passes find import-like
// references: static module imports, dynamic import expressions, and
// legacy require calls. Pattern scanning is a documented heuristic; the
// Extractor interface is the seam for replacing it with a real parser.
var (
	staticImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w$*{},\s]+?from\s+)?['"]([^'"]+)['"]`)
	reExportRe     = regexp.MustCompile(`(?m)^\s*export\s+(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s+['"]([^'"]+)['"]`)
	dynamicRe      = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	requireRe      = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	exportDeclRe    = regexp.MustCompile(`(?m)^\s*export\s+(?:declare\s+)?(?:default\s+)?(?:abstract\s+)?(?:async\s+)?(?:function\s*\*?|class|interface|type|enum|const|let|var)\s+([A-Za-z_$][\w$]*)`)
	exportListRe    = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	exportDefaultRe = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
)

// RegexExtractor extracts references by pattern scanning. It is the
// default extractor.
type RegexExtractor struct{}

// Extract implements Extractor.
func (RegexExtractor) Extract(path string, src []byte) (Extraction, error) {
	text := string(src)

	var refs []ImportRef
	seen := make(map[string]struct{})
	add := func(raw string, kind ImportKind) {
		if _, ok := seen[raw]; ok {
			return
		}
		seen[raw] = struct{}{}
		refs = append(refs, ImportRef{Raw: raw, Kind: kind})
	}

	for _, m := range staticImportRe.FindAllStringSubmatch(text, -1) {
		add(m[1], ImportStatic)
	}
	for _, m := range reExportRe.FindAllStringSubmatch(text, -1) {
		add(m[1], ImportStatic)
	}
	for _, m := range dynamicRe.FindAllStringSubmatch(text, -1) {
		add(m[1], ImportDynamic)
	}
	for _, m := range requireRe.FindAllStringSubmatch(text, -1) {
		add(m[1], ImportRequire)
	}

	return Extraction{
		Imports: refs,
		Exports: extractExports(text),
	}, nil
}

// extractExports finds exported identifiers: named declarations,
// re-export lists, and default export presence.
func extractExports(text string) []string {
	set := make(map[string]struct{})

	for _, m := range exportDeclRe.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}

	for _, m := range exportListRe.FindAllStringSubmatch(text, -1) {
		for _, item := range strings.Split(m[1], ",") {
			name := exportedName(item)
			if name != "" {
				set[name] = struct{}{}
			}
		}
	}

	if exportDefaultRe.MatchString(text) {
		set["default"] = struct{}{}
	}

	exports := make([]string, 0, len(set))
	for name := range set {
		exports = append(exports, name)
	}
	sort.Strings(exports)
	return exports
}

// exportedName normalizes one export-clause item ("x", "x as y",
// "type x") to the identifier visible to importers.
func exportedName(item string) string {
	name := strings.TrimSpace(item)
	name = strings.TrimPrefix(name, "type ")
	if idx := strings.LastIndex(name, " as "); idx >= 0 {
		name = name[idx+len(" as "):]
	}
	name = strings.TrimSpace(name)
	if name == "" || !isIdentifier(name) {
		return ""
	}
	return name
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

// countLines returns the number of non-blank lines in src.
func countLines(src []byte) int {
	count := 0
	for _, line := range strings.Split(string(src), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
