// Package regexp implements the ECMAScript RegExp pattern grammar as its
// own recursive-descent sub-parser, separate from pkg/parser because the
// pattern grammar inside `/.../flags` is itself a small language (spec
// §4.5). Grounded on gosonata's pkg/parser hand-written recursive-descent
// style, generalized from JSONata expressions to the ECMA-262 Annex B /
// Unicode regex grammar.
package regexp

import "github.com/sandrolain/ecmatool/pkg/span"

// Flags is the parsed flag set of a RegExp literal (the `flags` in
// `/pattern/flags`).
type Flags struct {
	Global     bool // g
	IgnoreCase bool // i
	Multiline  bool // m
	DotAll     bool // s
	Unicode    bool // u
	Sticky     bool // y
	HasIndices bool // d
	UnicodeSets bool // v
}

// Node is any node in the regex pattern AST.
type Node interface {
	Span() span.Span
}

type base struct{ span span.Span }

func (b base) Span() span.Span { return b.span }

// Pattern is the root of a parsed regex: a disjunction of one or more
// alternatives.
type Pattern struct {
	base
	Alternatives []*Alternative
}

// Alternative is one branch of a `|`-separated disjunction: a sequence
// of terms.
type Alternative struct {
	base
	Terms []Node
}

// CharacterClassEscape is `\d`, `\D`, `\w`, `\W`, `\s`, `\S`.
type CharacterClassEscape struct {
	base
	Kind byte // one of 'd','D','w','W','s','S'
}

// UnicodePropertyEscape is `\p{Name}` or `\P{Name}`.
type UnicodePropertyEscape struct {
	base
	Negated  bool
	Property string
	Value    string // "" if Property is a binary property
}

// Character is a single literal code point, possibly originally written
// as an escape (`\n`, `\xFF`, `\u{1F600}`, or a literal rune).
type Character struct {
	base
	CodePoint rune
}

// AnyCharacter is `.` (matches any character except line terminators,
// unless DotAll).
type AnyCharacter struct{ base }

// Backreference is `\1`, `\2`, … (any decimal group number) or
// `\k<name>`.
type Backreference struct {
	base
	Index int    // 1-based capturing group index; 0 if Name is set
	Name  string // "" for a numbered backreference
}

// Assertion is a zero-width assertion: `^`, `$`, `\b`, `\B`, or a
// lookaround.
type Assertion struct {
	base
	Kind AssertionKind
	// Alternatives holds the sub-pattern for lookaround assertions; nil
	// for ^, $, \b, \B.
	Alternatives []*Alternative
}

type AssertionKind uint8

const (
	AssertStart AssertionKind = iota
	AssertEnd
	AssertWordBoundary
	AssertNotWordBoundary
	AssertLookahead
	AssertNegativeLookahead
	AssertLookbehind
	AssertNegativeLookbehind
)

// Quantifier wraps a term with a repetition count.
type Quantifier struct {
	base
	Term     Node
	Min, Max int // Max == -1 means unbounded ({n,})
	Greedy   bool
}

// Group is a capturing or non-capturing group, or a named capturing
// group.
type Group struct {
	base
	Capturing bool
	Name      string // "" unless a named capturing group
	Index     int    // 1-based capturing group index; 0 if non-capturing
	Alternatives []*Alternative
}

// ClassRange is `a-z` inside a character class.
type ClassRange struct {
	From, To rune
}

// CharacterClassOperator distinguishes plain union class bodies from the
// `v`-flag set-notation operators.
type CharacterClassOperator uint8

const (
	ClassUnion CharacterClassOperator = iota
	ClassIntersection                 // `a&&b` (v-flag only)
	ClassSubtraction                   // `a--b` (v-flag only)
)

// CharacterClass is `[...]`.
type CharacterClass struct {
	base
	Negated   bool
	Operator  CharacterClassOperator
	Characters []rune
	Ranges     []ClassRange
	Escapes    []*CharacterClassEscape
	Properties []*UnicodePropertyEscape
	// Operands holds nested classes for intersection/subtraction
	// expressions in v-flag mode; empty otherwise.
	Operands []*CharacterClass
}
