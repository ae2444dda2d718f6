package resolver

import (
	"reflect"
	"testing"

	"github.com/hargabyte/archmap/internal/scanner"
)

// mod builds a module with typed import refs for resolver tests.
func mod(path string, refs ...scanner.ImportRef) *scanner.Module {
	imports := make([]string, 0, len(refs))
	for _, ref := range refs {
		imports = append(imports, ref.Raw)
	}
	return &scanner.Module{
		Name:         path,
		Path:         path,
		Imports:      imports,
		Exports:      []string{},
		Dependencies: []string{},
		ImportRefs:   refs,
	}
}

func static(raw string) scanner.ImportRef {
	return scanner.ImportRef{Raw: raw, Kind: scanner.ImportStatic}
}

func TestResolve_ExternalImportsIgnored(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("react"), static("lodash/merge")),
	}

	deps := Resolve(modules)
	if len(deps) != 0 {
		t.Errorf("external imports must not produce edges, got %v", deps)
	}
	if len(modules[0].Dependencies) != 0 {
		t.Errorf("dependencies should stay empty, got %v", modules[0].Dependencies)
	}
}

func TestResolve_RelativeImports(t *testing.T) {
	modules := []*scanner.Module{
		mod("src/app.ts", static("./auth"), static("../shared/util")),
		mod("src/auth.ts"),
		mod("shared/util.ts"),
	}

	deps := Resolve(modules)
	want := []Dependency{
		{From: "src/app.ts", To: "src/auth.ts", Type: scanner.ImportStatic},
		{From: "src/app.ts", To: "shared/util.ts", Type: scanner.ImportStatic},
	}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("deps = %v, want %v", deps, want)
	}
	if !reflect.DeepEqual(modules[0].Dependencies, []string{"src/auth.ts", "shared/util.ts"}) {
		t.Errorf("dependencies = %v", modules[0].Dependencies)
	}
}

func TestResolve_IndexFiles(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("./auth")),
		mod("auth/index.ts"),
	}

	deps := Resolve(modules)
	want := []Dependency{
		{From: "app.ts", To: "auth/index.ts", Type: scanner.ImportStatic},
	}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("deps = %v, want %v", deps, want)
	}
}

func TestResolve_ExactPathBeforeSuffixes(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("./auth.ts")),
		mod("auth.ts"),
		mod("auth.ts.ts"), // pathological sibling; exact match must win
	}

	deps := Resolve(modules)
	if len(deps) != 1 || deps[0].To != "auth.ts" {
		t.Errorf("deps = %v, want single edge to auth.ts", deps)
	}
}

func TestResolve_UnmatchedImportDropped(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("./missing")),
	}

	deps := Resolve(modules)
	if len(deps) != 0 {
		t.Errorf("unmatched imports must be dropped, got %v", deps)
	}
}

func TestResolve_EscapingImportDropped(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("../outside")),
	}

	if deps := Resolve(modules); len(deps) != 0 {
		t.Errorf("imports escaping the root must be dropped, got %v", deps)
	}
}

func TestResolve_AbsoluteImportIsRootRelative(t *testing.T) {
	modules := []*scanner.Module{
		mod("deep/nested/app.ts", static("/shared/util")),
		mod("shared/util.ts"),
	}

	deps := Resolve(modules)
	if len(deps) != 1 || deps[0].To != "shared/util.ts" {
		t.Errorf("deps = %v, want single edge to shared/util.ts", deps)
	}
}

func TestResolve_EdgeTypeFollowsExtractionPass(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts",
			scanner.ImportRef{Raw: "./lazy", Kind: scanner.ImportDynamic},
			scanner.ImportRef{Raw: "./legacy", Kind: scanner.ImportRequire},
		),
		mod("lazy.ts"),
		mod("legacy.js"),
	}

	deps := Resolve(modules)
	want := []Dependency{
		{From: "app.ts", To: "lazy.ts", Type: scanner.ImportDynamic},
		{From: "app.ts", To: "legacy.js", Type: scanner.ImportRequire},
	}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("deps = %v, want %v", deps, want)
	}
}

func TestResolve_OneEdgePerResolvedPair(t *testing.T) {
	modules := []*scanner.Module{
		mod("app.ts", static("./auth"), static("./auth.ts")),
		mod("auth.ts"),
	}

	deps := Resolve(modules)
	if len(deps) != 1 {
		t.Errorf("expected one edge per (from, to) pair, got %v", deps)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	build := func() []*scanner.Module {
		return []*scanner.Module{
			mod("a.ts", static("./b"), static("./c")),
			mod("b.ts", static("./c")),
			mod("c.ts"),
		}
	}

	first := Resolve(build())
	second := Resolve(build())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution is not deterministic: %v vs %v", first, second)
	}
}
