// Package parser turns the token stream pkg/lexer produces into an
// ast.Program, following the same hand-written recursive-descent
// structure (one parseX method per grammar production, a small current/
// peek token window, explicit error recovery) that gosonata's pkg/parser
// uses for JSONata, scaled up to the full ECMAScript/TypeScript/JSX
// expression and statement grammar.
package parser

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/lexer"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// Context is a bitset of the grammar parameterizations ECMA-262 threads
// through its productions ([+In], [+Yield], [+Await], [+Return]) plus the
// source-level modes (StrictMode, and the two TypeScript-only modes
// Ambient and Decorator) this parser also needs to track.
type Context uint16

const (
	// CtxNoIn is set while parsing a for-statement head's Init clause,
	// where a bare `in` must not be consumed as the relational operator
	// (it would otherwise be ambiguous with `for (x in y)`).
	CtxNoIn Context = 1 << iota
	// CtxYield is set inside a generator function body; it makes `yield`
	// a keyword introducing a YieldExpression rather than a plain
	// identifier.
	CtxYield
	// CtxAwait is set inside an async function body (and always at module
	// top level); it makes `await` a keyword introducing an
	// AwaitExpression.
	CtxAwait
	// CtxReturn is set inside a function body; a `return` statement
	// outside of it is an early error.
	CtxReturn
	// CtxDefault is set while parsing the declaration following
	// `export default`, where a function/class declaration's name becomes
	// optional.
	CtxDefault
	// CtxStrict is set from the start for module source; for a script,
	// parseProgram sets it after the body has been parsed when the
	// program's directive prologue holds "use strict". A function body's
	// directive does not set it.
	CtxStrict
	// CtxAmbient is set inside a `declare` block, where function/method
	// bodies are omitted.
	CtxAmbient
	// CtxDecorator is set while parsing a decorator expression
	// (`@expr`), which is restricted to a subset of LeftHandSideExpression.
	CtxDecorator
)

func (c Context) has(flag Context) bool { return c&flag != 0 }
func (c Context) with(flag Context) Context { return c | flag }
func (c Context) without(flag Context) Context { return c &^ flag }

// SourceType selects which grammar extensions a Parser accepts, mirroring
// the per-file source-type record a real toolchain derives from a file
// extension (.js/.mjs/.ts/.tsx/...).
type SourceType struct {
	Module     bool // ESM: top-level import/export, implicit strict mode
	TypeScript bool // accept TS-only declarations, type annotations, `as`
	JSX        bool // accept JSX element/fragment expressions
}

// ScriptSourceType is a plain CommonJS-style script: no import/export, no
// TypeScript, no JSX.
func ScriptSourceType() SourceType { return SourceType{} }

// ModuleSourceType is a plain ECMAScript module.
func ModuleSourceType() SourceType { return SourceType{Module: true} }

// TSXSourceType accepts TypeScript syntax and JSX elements, the
// combination a `.tsx` file needs.
func TSXSourceType() SourceType {
	return SourceType{Module: true, TypeScript: true, JSX: true}
}

// ParserReturn is the result of a single Parse call: the best-effort
// Program (populated even when Errors is non-empty, since this parser
// never aborts on a recoverable syntax error — every parseX loop makes
// forward progress on malformed input via an explicit stall guard
// rather than panic/recover) plus the accumulated diagnostics and the
// lexer's side tables.
type ParserReturn struct {
	Program             *ast.Program
	Errors              []diagnostic.Diagnostic
	Comments            []ast.Comment
	IrregularWhitespace []span.Span
}

// Parser holds the mutable state of a single parse: the lexer, a
// one-token lookahead window, and the Context bitset threaded through
// every production.
type Parser struct {
	lex    *lexer.Lexer
	source string
	opts   SourceType
	sink   *diagnostic.Sink

	cur     token.Token
	peeked  *token.Token
	prevEnd uint32

	ctx Context

	// labels tracks the enclosing label set, used to validate `break
	// label;`/`continue label;` targets.
	labels []string
}

// New creates a Parser over source with the given source type.
func New(source string, opts SourceType) *Parser {
	p := &Parser{
		lex:    lexer.New(source),
		source: source,
		opts:   opts,
		sink:   diagnostic.NewSink(),
	}
	if opts.Module {
		p.ctx = p.ctx.with(CtxStrict).with(CtxAwait)
	}
	p.advance()
	return p
}

// Parse runs a full parse and returns the result. It never panics on
// malformed input: a syntax error is pushed onto the diagnostic sink, an
// expression that cannot start at the current token becomes an
// ErrorExpression node, and parseProgram skips one token whenever a
// statement consumes none. No ErrorStatement node is produced.
func Parse(source string, opts SourceType) ParserReturn {
	p := New(source, opts)
	program := p.parseProgram()
	return ParserReturn{
		Program:             program,
		Errors:              p.sink.All(),
		Comments:            p.lex.Comments,
		IrregularWhitespace: p.lex.IrregularWhitespace,
	}
}

// --- token window ----------------------------------------------------------

// regexAllowedAfter reports whether a `/` seen right after a token of
// kind k should be re-lexed as the start of a RegExp literal (true) or as
// the division operator (false). Division can only follow something that
// could itself end an expression: an identifier, a literal, `)`, `]`,
// `++`/`--`, or a handful of keywords that are themselves complete
// expressions (this/super/true/false/null).
func regexAllowedAfter(k token.Kind) bool {
	switch k {
	case token.Ident, token.PrivateName, token.StringLit, token.NumericLit,
		token.RegexLit, token.TemplateNoSub, token.TemplateTail,
		token.RParen, token.RBracket, token.RBrace,
		token.PlusPlus, token.MinusMinus,
		token.KwThis, token.KwSuper, token.KwTrue, token.KwFalse, token.KwNull:
		return false
	default:
		return true
	}
}

// advance consumes the current token and returns it, fetching the next
// one. A `{`/`}` being consumed is reported to the lexer's brace-depth
// tracker (see Lexer.TrackBraceOpen/TrackBraceClose); when a `}` turns
// out to close a template substitution rather than an ordinary block or
// object literal, the next token comes from ContinueTemplate instead of
// the regular scanner, transparently to every caller of advance.
func (p *Parser) advance() token.Token {
	prev := p.cur
	p.prevEnd = prev.Span.End

	switch prev.Kind {
	case token.LBrace:
		p.lex.TrackBraceOpen()
	case token.RBrace:
		if p.lex.TrackBraceClose() {
			p.peeked = nil
			p.cur = p.lex.ContinueTemplate()
			return prev
		}
	}

	if p.peeked != nil {
		p.cur = *p.peeked
		p.peeked = nil
	} else {
		p.cur = p.lex.Next(regexAllowedAfter(prev.Kind))
	}
	return prev
}

// advanceIntoJSXText consumes the current token (a `>` closing a JSX
// opening tag, or a `}` closing a JSX expression-container child) and
// fetches the next token via the lexer's raw JSX-text scanner instead of
// the ordinary tokenizer. JSX children are markup text by default, not
// ECMAScript source, and the ordinary one-token lookahead in advance()
// would otherwise mis-tokenize that text the moment it's fetched — this
// is the one place the parser must reach past advance() to choose which
// lexer entry point runs next.
func (p *Parser) advanceIntoJSXText() token.Token {
	prev := p.cur
	p.prevEnd = prev.Span.End
	switch prev.Kind {
	case token.LBrace:
		p.lex.TrackBraceOpen()
	case token.RBrace:
		p.lex.TrackBraceClose()
	}
	p.peeked = nil
	p.cur = p.lex.ScanJSXText()
	return prev
}

// peek returns the token after the current one without consuming it.
// Only used where a single token of lookahead resolves an ambiguity (e.g.
// distinguishing a labeled statement from an expression statement).
func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		t := p.lex.Next(regexAllowedAfter(p.cur.Kind))
		p.peeked = &t
	}
	return *p.peeked
}

// peekNoRegex is peek's counterpart for the one spot regexAllowedAfter
// gets it wrong: a `<` that might be starting a JSX closing tag. `<` is
// also a valid left operand for the relational operator followed by a
// RegExp literal (`a < /x/.test(s)`), so regexAllowedAfter(Lt) must stay
// true in general — this bypasses that heuristic only where the parser
// already knows, from the JSX element grammar, that a `/` here can only
// ever be the closing tag's slash, never a division or regex start.
func (p *Parser) peekNoRegex() token.Token {
	if p.peeked == nil {
		t := p.lex.Next(false)
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches k, reporting a
// diagnostic and leaving the token stream positioned where it is
// otherwise (so the caller's own recovery can resynchronize).
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "expected %s, got %s", k, p.cur.Kind)
	return p.cur
}

func (p *Parser) errorf(code diagnostic.Code, sp span.Span, format string, args ...any) {
	p.sink.Errorf(code, sp, format, args...)
}

// consumeSemicolon implements automatic semicolon insertion (ECMA-262
// §12.10): an explicit `;` is always accepted; otherwise ASI applies if
// the next token is `}`, EOF, or began on a new line.
func (p *Parser) consumeSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.cur.NewlineBefore {
		return
	}
	p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "expected ';'")
}

// spanFrom builds a Span from a start offset to the end of the token just
// consumed (p.prevEnd).
func (p *Parser) spanFrom(start uint32) span.Span {
	return span.New(start, p.prevEnd)
}
