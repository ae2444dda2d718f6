package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// sourceExtensions is the extension allow-list for scanning. These are
// the grammars the extraction passes understand.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// DefaultExcludes are path substrings skipped on every scan unless the
// caller overrides them.
var DefaultExcludes = []string{"node_modules", ".git", "dist", "build", "coverage"}

// Options configures a Scanner.
type Options struct {
	// Excludes are path substrings; any file or directory whose
	// project-relative path contains one is skipped.
	Excludes []string
	// MaxDepth bounds directory recursion: a value of N descends into
	// directories at most N levels below the root. Zero means unlimited.
	MaxDepth int
	// Extractor pulls imports and exports out of file contents.
	// Defaults to RegexExtractor.
	Extractor Extractor
}

// Scanner walks a project directory and builds Module records.
// A Scanner holds no per-scan state; the same instance may serve
// concurrent scans.
type Scanner struct {
	excludes  []string
	maxDepth  int
	extractor Extractor
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	excludes := opts.Excludes
	if excludes == nil {
		excludes = DefaultExcludes
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = RegexExtractor{}
	}
	return &Scanner{
		excludes:  excludes,
		maxDepth:  opts.MaxDepth,
		extractor: extractor,
	}
}

// Scan enumerates source files under root and returns one Module per
// readable file, in walk (lexical path) order. Unreadable files are
// reported as warnings, not errors; the scan continues past them.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*Module, []Warning, error) {
	paths, warnings, err := s.collect(root)
	if err != nil {
		return nil, nil, err
	}

	modules := make([]*Module, len(paths))
	fileWarnings := make([]*Warning, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, relPath := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mod, warn := s.scanFile(root, relPath)
			modules[i] = mod
			fileWarnings[i] = warn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	result := make([]*Module, 0, len(modules))
	for i, mod := range modules {
		if fileWarnings[i] != nil {
			warnings = append(warnings, *fileWarnings[i])
		}
		if mod != nil {
			result = append(result, mod)
		}
	}
	return result, warnings, nil
}

// collect walks the tree and returns the project-relative paths of files
// selected for scanning. The walk itself stays sequential so that the
// returned order is predictable; only file reads run concurrently.
func (s *Scanner) collect(root string) ([]string, []Warning, error) {
	var paths []string
	var warnings []Warning

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			warnings = append(warnings, Warning{
				Path:    p,
				Message: fmt.Sprintf("skipped: %v", err),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if s.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.maxDepth > 0 && pathDepth(rel) > s.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if sourceExtensions[filepath.Ext(rel)] {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, warnings, nil
}

// scanFile reads and extracts one file. A read or extraction failure is
// returned as a warning with a nil module.
func (s *Scanner) scanFile(root, relPath string) (*Module, *Warning) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		readErr := &FileReadError{Path: relPath, Err: err}
		return nil, &Warning{Path: relPath, Message: readErr.Error()}
	}

	extraction, err := s.extractor.Extract(relPath, data)
	if err != nil {
		return nil, &Warning{Path: relPath, Message: fmt.Sprintf("extraction failed: %v", err)}
	}

	imports := make([]string, 0, len(extraction.Imports))
	for _, ref := range extraction.Imports {
		imports = append(imports, ref.Raw)
	}
	exports := extraction.Exports
	if exports == nil {
		exports = []string{}
	}

	base := filepath.Base(relPath)
	return &Module{
		Name:         strings.TrimSuffix(base, filepath.Ext(base)),
		Path:         relPath,
		Imports:      imports,
		Exports:      exports,
		LinesOfCode:  countLines(data),
		Dependencies: []string{},
		ImportRefs:   extraction.Imports,
	}, nil
}

// excluded reports whether rel contains any configured exclusion
// substring.
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.excludes {
		if pattern != "" && strings.Contains(rel, pattern) {
			return true
		}
	}
	return false
}

// pathDepth counts the directory components of a slash-separated
// relative path.
func pathDepth(rel string) int {
	return strings.Count(rel, "/") + 1
}
