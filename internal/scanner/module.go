// Package scanner discovers source files in a project tree and extracts
// their import and export surface, producing one Module record per file.
//
// The scanner is the leaf of the analysis pipeline: it knows nothing about
// edge resolution or graphs. Its only contract with downstream stages is
// the ordered list of raw import references it attaches to each Module.
package scanner

// ImportKind identifies which extraction pass produced a raw import.
type ImportKind string

const (
	// ImportStatic is a module-style import (import ... from "x").
	ImportStatic ImportKind = "import"
	// ImportDynamic is a lazy import expression (import("x")).
	ImportDynamic ImportKind = "dynamic"
	// ImportRequire is a legacy require call (require("x")).
	ImportRequire ImportKind = "require"
)

// ImportRef is one raw import reference found in a source file.
type ImportRef struct {
	// Raw is the import string exactly as written in the source.
	Raw string
	// Kind records which extraction pass found the reference.
	Kind ImportKind
}

// Module is one source file treated as an atomic analysis unit.
// A Module is created once per scan and identified by its Path;
// only Dependencies is filled in later, by the resolver.
type Module struct {
	// Name is the file name without its extension.
	Name string `json:"name"`
	// Path is the project-relative file path (slash-separated, unique key).
	Path string `json:"path"`
	// Imports holds the de-duplicated raw import strings in source order.
	Imports []string `json:"imports"`
	// Exports holds the exported identifiers, sorted. A default export
	// appears as the identifier "default".
	Exports []string `json:"exports"`
	// LinesOfCode is the number of non-blank lines in the file.
	LinesOfCode int `json:"linesOfCode"`
	// Dependencies holds resolved in-tree import paths. Populated by the
	// resolver, empty after scanning.
	Dependencies []string `json:"dependencies"`

	// ImportRefs carries per-reference kinds for the resolver. It mirrors
	// Imports and is not part of the serialized report.
	ImportRefs []ImportRef `json:"-"`
}
