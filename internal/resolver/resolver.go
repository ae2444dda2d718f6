// Package resolver converts raw import references into dependency edges
// between in-tree modules. External packages never become edges; they
// stay visible only in each module's raw import list.
package resolver

import (
	"path"
	"strings"

	"github.com/hargabyte/archmap/internal/scanner"
)

// Dependency is one directed edge: the module at From references the
// module at To. Both endpoints are project-relative module paths.
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Type records which extraction pass produced the reference.
	Type scanner.ImportKind `json:"type"`
}

// candidateSuffixes is the fixed resolution order for import paths
// written without an extension. The empty suffix handles imports that
// already name the file exactly.
var candidateSuffixes = []string{
	"",
	".ts",
	".tsx",
	".js",
	".jsx",
	"/index.ts",
	"/index.tsx",
	"/index.js",
}

// Resolve maps every raw import of every module onto an in-tree edge
// where possible and fills each module's Dependencies list. Imports that
// do not denote a local path, or that match no known module, are dropped
// silently: resolution is best-effort by contract.
//
// Resolution is deterministic: module order, import order, and suffix
// order are all fixed, and at most one edge is kept per (from, to) pair.
func Resolve(modules []*scanner.Module) []Dependency {
	known := make(map[string]struct{}, len(modules))
	for _, mod := range modules {
		known[mod.Path] = struct{}{}
	}

	deps := []Dependency{}
	for _, mod := range modules {
		seen := make(map[string]struct{})
		for _, ref := range mod.ImportRefs {
			if !isLocal(ref.Raw) {
				continue
			}
			target, ok := resolveOne(mod.Path, ref.Raw, known)
			if !ok {
				continue
			}
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			deps = append(deps, Dependency{From: mod.Path, To: target, Type: ref.Kind})
			mod.Dependencies = append(mod.Dependencies, target)
		}
	}
	return deps
}

// isLocal reports whether a raw import denotes a path inside the project
// rather than a published package.
func isLocal(raw string) bool {
	return strings.HasPrefix(raw, "./") ||
		strings.HasPrefix(raw, "../") ||
		strings.HasPrefix(raw, "/")
}

// resolveOne resolves a local import written in fromPath's file against
// the known module set, trying each candidate suffix in order.
func resolveOne(fromPath, raw string, known map[string]struct{}) (string, bool) {
	var base string
	if strings.HasPrefix(raw, "/") {
		// Absolute imports are taken as project-root-relative.
		base = path.Clean(strings.TrimPrefix(raw, "/"))
	} else {
		base = path.Join(path.Dir(fromPath), raw)
	}
	if base == "." || strings.HasPrefix(base, "../") {
		// Escapes the scanned root; never an in-tree module.
		return "", false
	}

	for _, suffix := range candidateSuffixes {
		candidate := base + suffix
		if _, ok := known[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}
