package scanner

import (
	"context"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ASTExtractor extracts references from a real parse tree instead of
// pattern scanning. It honors the same Extraction contract as
// RegexExtractor, so downstream stages cannot tell the two apart.
type ASTExtractor struct{}

// Extract implements Extractor by parsing the file with the tree-sitter
// grammar matching its extension.
func (ASTExtractor) Extract(filePath string, src []byte) (Extraction, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammarFor(filePath))

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return Extraction{}, err
	}
	defer tree.Close()

	w := &astWalker{src: src, seen: make(map[string]struct{}), exports: make(map[string]struct{})}
	w.walk(tree.RootNode())

	exports := make([]string, 0, len(w.exports))
	for name := range w.exports {
		exports = append(exports, name)
	}
	sort.Strings(exports)

	return Extraction{Imports: w.refs, Exports: exports}, nil
}

// grammarFor selects the tree-sitter grammar by file extension.
func grammarFor(filePath string) *sitter.Language {
	switch path.Ext(filePath) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

type astWalker struct {
	src     []byte
	refs    []ImportRef
	seen    map[string]struct{}
	exports map[string]struct{}
}

func (w *astWalker) walk(node *sitter.Node) {
	switch node.Type() {
	case "import_statement":
		if src := w.stringChild(node); src != "" {
			w.add(src, ImportStatic)
		}
	case "export_statement":
		w.visitExport(node)
	case "call_expression":
		w.visitCall(node)
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(int(i)))
	}
}

// visitExport records exported identifiers and treats re-exports with a
// source clause as static imports.
func (w *astWalker) visitExport(node *sitter.Node) {
	if src := w.stringChild(node); src != "" {
		w.add(src, ImportStatic)
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		if name := decl.ChildByFieldName("name"); name != nil {
			w.exports[name.Content(w.src)] = struct{}{}
		}
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		switch child.Type() {
		case "default":
			w.exports["default"] = struct{}{}
		case "export_clause":
			w.visitExportClause(child)
		}
	}
}

func (w *astWalker) visitExportClause(clause *sitter.Node) {
	for i := uint32(0); i < clause.ChildCount(); i++ {
		spec := clause.Child(int(i))
		if spec.Type() != "export_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			name = alias
		}
		if name != nil {
			w.exports[name.Content(w.src)] = struct{}{}
		}
	}
}

// visitCall picks up dynamic import expressions and require calls.
func (w *astWalker) visitCall(node *sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return
	}

	var kind ImportKind
	switch {
	case fn.Type() == "import":
		kind = ImportDynamic
	case fn.Type() == "identifier" && fn.Content(w.src) == "require":
		kind = ImportRequire
	default:
		return
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	for i := uint32(0); i < args.ChildCount(); i++ {
		arg := args.Child(int(i))
		if arg.Type() == "string" {
			if src := unquote(arg.Content(w.src)); src != "" {
				w.add(src, kind)
			}
			return
		}
	}
}

// stringChild returns the unquoted content of the first string child, or
// "" when the node has none. Import and export statements keep their
// module source as a direct string child.
func (w *astWalker) stringChild(node *sitter.Node) string {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child.Type() == "string" {
			return unquote(child.Content(w.src))
		}
	}
	return ""
}

func (w *astWalker) add(raw string, kind ImportKind) {
	if _, ok := w.seen[raw]; ok {
		return
	}
	w.seen[raw] = struct{}{}
	w.refs = append(w.refs, ImportRef{Raw: raw, Kind: kind})
}

func unquote(s string) string {
	return strings.Trim(s, "'\"`")
}
