// Package ecmatool is a Go toolchain spine for JavaScript, TypeScript,
// and JSX source: a hand-written lexer, recursive-descent parser,
// semantic analyzer, and the supporting lint/transform/codegen contract
// packages a bundler or language server builds on.
//
// # Quick Start
//
//	// Parse and resolve scopes/symbols in one call.
//	result := ecmatool.CompileFile("app.tsx", src)
//	if result.HasErrors() {
//	    for _, d := range result.Errors {
//	        fmt.Println(d)
//	    }
//	}
//
//	// Repeated compiles of the same source reuse a cached parse.
//	c := cache.New(512)
//	result := ecmatool.CompileCached(c, src, ecmatool.SourceTypeForPath("app.ts"))
//
// # More information
//
// For the pipeline stages themselves, see:
//   - Lexer: github.com/sandrolain/ecmatool/pkg/lexer
//   - Parser: github.com/sandrolain/ecmatool/pkg/parser
//   - Semantic analysis: github.com/sandrolain/ecmatool/pkg/semantic
//   - Lint rules: github.com/sandrolain/ecmatool/pkg/lint
//   - Lowering transforms: github.com/sandrolain/ecmatool/pkg/transform
package ecmatool

import (
	"strings"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/cache"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/parser"
	"github.com/sandrolain/ecmatool/pkg/semantic"
)

// Result is the outcome of running one source file through the full
// lex -> parse -> resolve pipeline.
type Result struct {
	Program  *ast.Program
	Semantic *semantic.Semantic
	Errors   []diagnostic.Diagnostic
}

// HasErrors reports whether parsing or semantic analysis raised any
// SeverityError diagnostic.
func (r *Result) HasErrors() bool {
	for _, d := range r.Errors {
		if d.Severity == diagnostic.SeverityError {
			return true
		}
	}
	return false
}

// SourceTypeForPath infers a parser.SourceType from a file extension,
// the dispatch a real toolchain does before ever looking at file
// contents: .tsx gets TypeScript + JSX, .ts gets TypeScript alone, .jsx
// gets JSX alone, .mjs/.cjs are treated as modules, anything else falls
// back to a plain script.
func SourceTypeForPath(path string) parser.SourceType {
	switch {
	case strings.HasSuffix(path, ".tsx"):
		return parser.TSXSourceType()
	case strings.HasSuffix(path, ".ts"):
		return parser.SourceType{Module: true, TypeScript: true}
	case strings.HasSuffix(path, ".jsx"):
		return parser.SourceType{Module: true, JSX: true}
	case strings.HasSuffix(path, ".mjs"), strings.HasSuffix(path, ".cjs"):
		return parser.ModuleSourceType()
	default:
		return parser.ScriptSourceType()
	}
}

// Compile parses source under opts and resolves its scopes, symbols,
// and references. The returned Program is populated even when Errors is
// non-empty: both the parser and the semantic builder recover from
// malformed input rather than aborting, so a caller can still inspect
// whatever structure was recovered.
func Compile(source string, opts parser.SourceType) *Result {
	pr := parser.Parse(source, opts)
	sem := semantic.Build(pr.Program, opts.Module)

	errs := make([]diagnostic.Diagnostic, 0, len(pr.Errors)+sem.Diagnostics.Len())
	errs = append(errs, pr.Errors...)
	errs = append(errs, sem.Diagnostics.All()...)

	return &Result{Program: pr.Program, Semantic: sem, Errors: errs}
}

// CompileFile infers a SourceType from path's extension and compiles
// source under it.
func CompileFile(path, source string) *Result {
	return Compile(source, SourceTypeForPath(path))
}

// CompileCached is Compile with the parse stage memoized in c, keyed on
// the source text: a host that recompiles the same unchanged file
// repeatedly (a watch-mode bundler, a language server's on-save hook)
// skips re-lexing and re-parsing it. Semantic analysis still runs fresh
// every call, since scope/symbol resolution is comparatively cheap and
// pkg/cache only ever stores a Program + its parse diagnostics.
func CompileCached(c *cache.Cache, source string, opts parser.SourceType) *Result {
	prog, parseSink := c.GetOrParse(source, func() (*ast.Program, *diagnostic.Sink) {
		pr := parser.Parse(source, opts)
		sink := diagnostic.NewSink()
		for _, d := range pr.Errors {
			sink.Push(d)
		}
		return pr.Program, sink
	})

	sem := semantic.Build(prog, opts.Module)

	errs := make([]diagnostic.Diagnostic, 0, parseSink.Len()+sem.Diagnostics.Len())
	errs = append(errs, parseSink.All()...)
	errs = append(errs, sem.Diagnostics.All()...)

	return &Result{Program: prog, Semantic: sem, Errors: errs}
}
