package scanner

import (
	"reflect"
	"testing"
)

func TestRegexExtractor_StaticImports(t *testing.T) {
	src := `
import React from "react";
import { login, logout } from "./auth";
import * as utils from "../shared/utils";
import "./side-effect";
export { helper } from "./helpers";
export * from "./types";
`
	extraction, err := RegexExtractor{}.Extract("app.ts", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ImportRef{
		{Raw: "react", Kind: ImportStatic},
		{Raw: "./auth", Kind: ImportStatic},
		{Raw: "../shared/utils", Kind: ImportStatic},
		{Raw: "./side-effect", Kind: ImportStatic},
		{Raw: "./helpers", Kind: ImportStatic},
		{Raw: "./types", Kind: ImportStatic},
	}
	if !reflect.DeepEqual(extraction.Imports, want) {
		t.Errorf("imports = %v, want %v", extraction.Imports, want)
	}
}

func TestRegexExtractor_DynamicAndRequire(t *testing.T) {
	src := `
const mod = await import("./lazy");
const legacy = require("./legacy");
const pkg = require("lodash");
`
	extraction, err := RegexExtractor{}.Extract("app.ts", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ImportRef{
		{Raw: "./lazy", Kind: ImportDynamic},
		{Raw: "./legacy", Kind: ImportRequire},
		{Raw: "lodash", Kind: ImportRequire},
	}
	if !reflect.DeepEqual(extraction.Imports, want) {
		t.Errorf("imports = %v, want %v", extraction.Imports, want)
	}
}

func TestRegexExtractor_DeduplicatesAcrossPasses(t *testing.T) {
	src := `
import { a } from "./shared";
const again = await import("./shared");
const andAgain = require("./shared");
`
	extraction, err := RegexExtractor{}.Extract("app.ts", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(extraction.Imports) != 1 {
		t.Fatalf("expected 1 import after dedup, got %d: %v", len(extraction.Imports), extraction.Imports)
	}
	if extraction.Imports[0].Kind != ImportStatic {
		t.Errorf("first occurrence should win: kind = %s, want %s", extraction.Imports[0].Kind, ImportStatic)
	}
}

func TestRegexExtractor_Exports(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "named declarations",
			src: `
export function login() {}
export async function refresh() {}
export class Session {}
export const TOKEN_KEY = "token";
export interface User {}
export type Role = string;
export enum Status { Active }
`,
			want: []string{"Role", "Session", "Status", "TOKEN_KEY", "User", "login", "refresh"},
		},
		{
			name: "export clause with aliases",
			src:  `export { internalName as publicName, plain, type Shape };`,
			want: []string{"Shape", "plain", "publicName"},
		},
		{
			name: "default export",
			src:  `export default function main() {}`,
			want: []string{"default", "main"},
		},
		{
			name: "no exports",
			src:  `const local = 1;`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction, err := RegexExtractor{}.Extract("mod.ts", []byte(tt.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(extraction.Exports, tt.want) {
				t.Errorf("exports = %v, want %v", extraction.Exports, tt.want)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"empty", "", 0},
		{"only blanks", "\n\n   \n\t\n", 0},
		{"mixed", "const a = 1;\n\nconst b = 2;\n   \nconst c = 3;", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines([]byte(tt.src)); got != tt.want {
				t.Errorf("countLines = %d, want %d", got, tt.want)
			}
		})
	}
}
