// Package codegen shapes the read-only traversal contract a formatter
// or bundler output stage runs through: an Options record naming every
// knob a real printer would recognise, and the Printer interface such a
// printer implements. The printer implementation itself (indentation
// bookkeeping, source-map emission, minification) is out of scope; only
// the contract surface lives here.
package codegen

import "github.com/sandrolain/ecmatool/pkg/ast"

// IndentStyle selects between tab and space indentation.
type IndentStyle uint8

const (
	IndentSpace IndentStyle = iota
	IndentTab
)

// Semicolons selects when a Printer inserts statement-terminating
// semicolons.
type Semicolons uint8

const (
	SemicolonsAlways Semicolons = iota
	SemicolonsAsNeeded
)

// TrailingCommas selects where a Printer emits a trailing comma in a
// multi-line list.
type TrailingCommas uint8

const (
	TrailingCommasNone TrailingCommas = iota
	TrailingCommasES5
	TrailingCommasAll
)

// ArrowParens selects whether a single arrow-function parameter is
// wrapped in parentheses.
type ArrowParens uint8

const (
	ArrowParensAsNeeded ArrowParens = iota
	ArrowParensAlways
)

// LegalComment selects where a Printer relocates a comment ECMA-262
// Annex B treats as "legal" (starting with `/*!` or containing
// `@license`/`@preserve`).
type LegalComment uint8

const (
	LegalCommentInline LegalComment = iota
	LegalCommentEOF
	LegalCommentLinked
	LegalCommentExternal
	LegalCommentNone
)

// Options enumerates every knob a real Printer would recognise. Output
// guarantees a conforming Printer implementation must uphold: the
// printed text round-trips to a structurally identical AST when
// re-parsed (modulo whitespace and quote style), and string-literal
// content is bit-exact after escape normalisation.
type Options struct {
	Minify           bool
	SingleQuote      bool
	IndentStyle      IndentStyle
	IndentWidth      int
	LineWidth        int
	LineEnding       string // "\n" or "\r\n"
	Semicolons       Semicolons
	TrailingCommas   TrailingCommas
	ArrowParens      ArrowParens
	BracketSpacing   bool
	BracketSameLine  bool
	QuoteProperties  bool
	AttributePosition string
	Expand           bool
	LegalComment     LegalComment
}

// DefaultOptions returns the conventional un-minified, double-quoted,
// two-space, always-semicolon defaults, with trailing commas everywhere
// and parentheses around every arrow parameter list.
func DefaultOptions() Options {
	return Options{
		IndentWidth:    2,
		LineWidth:      80,
		LineEnding:     "\n",
		Semicolons:     SemicolonsAlways,
		TrailingCommas: TrailingCommasAll,
		ArrowParens:    ArrowParensAlways,
		BracketSpacing: true,
	}
}

// Printer emits source text for a parsed program. A real implementation
// walks the AST read-only, never mutating it; Print is expected to be
// safe to call repeatedly against the same Program.
type Printer interface {
	Print(program *ast.Program, opts Options) (string, error)
}
