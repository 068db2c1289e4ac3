// Package lexer converts ECMAScript/TypeScript/JSX source text into a
// stream of tokens, following the same hand-written, rune-at-a-time
// scanning technique (Rob Pike's "Lexical Scanning in Go") that gosonata's
// pkg/parser/lexer.go uses for JSONata, generalized to the much larger
// JS grammar: template literals, regex-context re-lexing, comments and
// irregular whitespace as side tables, and Unicode identifiers.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

const eof = -1

// irregularWhitespaceRunes are the Unicode code points treated as
// "irregular whitespace" for the no-irregular-whitespace lint:
// U+00A0 (NBSP), U+2028/U+2029 (line/paragraph separator), ZWNBSP
// (U+FEFF), and the rest of the Unicode space separator category beyond
// plain ASCII space.
func isIrregularWhitespace(r rune) bool {
	switch r {
	case ' ', ' ', ' ', 0xFEFF, ' ', '᠎',
		' ', ' ', ' ', ' ', ' ', ' ',
		' ', ' ', ' ', ' ', ' ', ' ',
		' ', '　', '':
		return true
	default:
		return false
	}
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == ' ' || r == ' '
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f':
		return true
	default:
		return false
	}
}

// Lexer scans one source file. It is not safe for concurrent use: each
// Parser owns exactly one Lexer.
type Lexer struct {
	input   string
	length  int
	start   int
	current int
	width   int
	err     *diagnostic.Diagnostic

	// templateStack tracks brace-nesting depth for each open template
	// literal substitution, so `}` can be disambiguated from a template
	// continuation.
	templateStack []int
	braceDepth    int

	// Comments and irregular whitespace are recorded out-of-band,
	// parallel to the token stream.
	Comments            []ast.Comment
	IrregularWhitespace []span.Span
}

// New creates a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{input: source, length: len(source)}
}

// Error returns the first fatal lexical error encountered, if any.
func (l *Lexer) Error() *diagnostic.Diagnostic {
	return l.err
}

// Next returns the next token. allowRegex tells the lexer whether a `/`
// at this position should be re-lexed as the start of a RegExp literal
// (primary-expression context) or as the division/division-assignment
// operator; the parser toggles this based on the preceding token.
func (l *Lexer) Next(allowRegex bool) token.Token {
	newline := l.skipTrivia()

	if l.err != nil {
		return l.errorToken()
	}

	ch := l.peekRune()
	if ch == eof {
		return l.withNewline(l.eofToken(), newline)
	}

	if allowRegex && ch == '/' {
		l.nextRune()
		l.ignore()
		return l.withNewline(l.scanRegex(), newline)
	}

	switch {
	case ch == '"' || ch == '\'':
		l.nextRune()
		return l.withNewline(l.scanString(ch), newline)
	case ch == '`':
		l.nextRune()
		l.ignore()
		return l.withNewline(l.scanTemplate(true), newline)
	case ch >= '0' && ch <= '9':
		return l.withNewline(l.scanNumber(), newline)
	case ch == '.' && l.peekDigitAt(1):
		return l.withNewline(l.scanNumber(), newline)
	case isIdentStart(ch):
		return l.withNewline(l.scanIdentOrKeyword(), newline)
	case ch == '#':
		l.nextRune()
		return l.withNewline(l.scanPrivateName(), newline)
	}

	if t, ok := l.scanPunctuator(); ok {
		return l.withNewline(t, newline)
	}

	l.nextRune()
	return l.withNewline(l.error(diagnostic.CodeUnexpectedToken, "unexpected character"), newline)
}

// ContinueTemplate re-lexes starting at a `}` that closes a template
// substitution, producing TemplateMiddle or TemplateTail. The parser
// calls this instead of Next when it knows (from the template-stack) that
// the current `}` belongs to a template rather than a block.
func (l *Lexer) ContinueTemplate() token.Token {
	// current is positioned just after the opening quote/backtick of the
	// previous head/middle; the `}` has already been consumed by the
	// caller advancing past RBrace, so start scanning the chunk body.
	return l.scanTemplate(false)
}

func (l *Lexer) withNewline(t token.Token, newline bool) token.Token {
	t.NewlineBefore = newline
	return t
}

// skipTrivia consumes whitespace and comments, recording Comment records
// and irregular-whitespace spans as it goes, and reports whether a line
// terminator was seen (for automatic semicolon insertion).
func (l *Lexer) skipTrivia() bool {
	sawNewline := false
	for {
		ch := l.peekRune()
		switch {
		case ch == eof:
			return sawNewline
		case isLineTerminator(ch):
			sawNewline = true
			start := l.current
			l.nextRune()
			if isIrregularWhitespace(ch) {
				l.IrregularWhitespace = append(l.IrregularWhitespace, span.New(uint32(start), uint32(l.current)))
			}
			l.ignore()
		case isASCIIWhitespace(ch):
			l.nextRune()
			l.ignore()
		case isIrregularWhitespace(ch):
			start := l.current
			l.nextRune()
			l.IrregularWhitespace = append(l.IrregularWhitespace, span.New(uint32(start), uint32(l.current)))
			l.ignore()
		case ch == '/' && l.peekRuneAt(1) == '/':
			l.scanLineComment()
		case ch == '/' && l.peekRuneAt(1) == '*':
			if nl := l.scanBlockComment(); nl {
				sawNewline = true
			}
			if l.err != nil {
				return sawNewline
			}
		default:
			return sawNewline
		}
	}
}

func (l *Lexer) scanLineComment() {
	start := l.current
	l.nextRune()
	l.nextRune()
	for {
		ch := l.peekRune()
		if ch == eof || isLineTerminator(ch) {
			break
		}
		l.nextRune()
	}
	l.Comments = append(l.Comments, ast.Comment{
		Span: span.New(uint32(start), uint32(l.current)),
		Kind: ast.CommentLine,
	})
	l.ignore()
}

// scanBlockComment returns true if the comment text itself contains a
// line terminator (relevant to ASI: a /* ... */ spanning lines still
// counts as "next token starts on a new line").
func (l *Lexer) scanBlockComment() bool {
	start := l.current
	l.nextRune()
	l.nextRune()
	containsNewline := false
	for {
		ch := l.nextRune()
		if ch == eof {
			l.err = diagnostic.Errorf(diagnostic.CodeUnterminatedComment, span.New(uint32(start), uint32(l.current)), "unterminated block comment")
			return containsNewline
		}
		if isLineTerminator(ch) {
			containsNewline = true
		}
		if ch == '*' && l.peekRune() == '/' {
			l.nextRune()
			break
		}
	}
	l.Comments = append(l.Comments, ast.Comment{
		Span: span.New(uint32(start), uint32(l.current)),
		Kind: ast.CommentBlock,
	})
	l.ignore()
	return containsNewline
}

// scanString reads a single- or double-quoted string literal; the
// opening quote has already been consumed.
func (l *Lexer) scanString(quote rune) token.Token {
	startTok := l.start
	var sb strings.Builder
	for {
		ch := l.nextRune()
		switch {
		case ch == quote:
			t := l.newToken(token.StringLit)
			t.Value = sb.String()
			return t
		case ch == '\\':
			r := l.scanEscape()
			if r >= 0 {
				sb.WriteRune(r)
			}
		case ch == eof || isLineTerminator(ch):
			return l.errorAt(diagnostic.CodeUnterminatedString, span.New(uint32(startTok), uint32(l.current)), "unterminated string literal")
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanEscape resolves one escape sequence after a backslash has been
// consumed; returns -1 for escapes with no single-rune value (e.g. \u
// that failed, line continuations).
func (l *Lexer) scanEscape() rune {
	ch := l.nextRune()
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case '0':
		return 0
	case 'x':
		return l.scanHexEscape(2)
	case 'u':
		if l.peekRune() == '{' {
			return l.scanUnicodeCodePointEscape()
		}
		return l.scanHexEscape(4)
	case '\n', '\r', ' ', ' ':
		return -1 // line continuation
	case eof:
		return -1
	default:
		return ch
	}
}

func (l *Lexer) scanHexEscape(digits int) rune {
	start := l.current
	var v rune
	for i := 0; i < digits; i++ {
		d := hexVal(l.peekRune())
		if d < 0 {
			l.err = diagnostic.Errorf(diagnostic.CodeUnsupportedEscape, span.New(uint32(start), uint32(l.current)), "invalid hex escape")
			return -1
		}
		v = v*16 + rune(d)
		l.nextRune()
	}
	return v
}

func (l *Lexer) scanUnicodeCodePointEscape() rune {
	l.nextRune() // consume '{'
	start := l.current
	var v rune
	for {
		d := hexVal(l.peekRune())
		if d < 0 {
			break
		}
		v = v*16 + rune(d)
		l.nextRune()
		if v > unicode.MaxRune {
			l.err = diagnostic.Errorf(diagnostic.CodeUnsupportedEscape, span.New(uint32(start), uint32(l.current)), "code point out of range")
			return -1
		}
	}
	if l.peekRune() != '}' {
		l.err = diagnostic.Errorf(diagnostic.CodeUnsupportedEscape, span.New(uint32(start), uint32(l.current)), "unterminated unicode escape")
		return -1
	}
	l.nextRune()
	return v
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// scanTemplate reads a template literal chunk. If atHead is true this is
// the start of the literal (just past the opening backtick); otherwise
// it continues after a substitution's closing `}` and produces
// TemplateMiddle/TemplateTail.
func (l *Lexer) scanTemplate(atHead bool) token.Token {
	startTok := l.start
	var sb strings.Builder
	for {
		ch := l.nextRune()
		switch {
		case ch == '`':
			t := l.newToken(pick(atHead, token.TemplateNoSub, token.TemplateTail))
			t.Value = sb.String()
			return t
		case ch == '$' && l.peekRune() == '{':
			l.nextRune()
			t := l.newToken(pick(atHead, token.TemplateHead, token.TemplateMiddle))
			t.Value = sb.String()
			l.templateStack = append(l.templateStack, l.braceDepth)
			l.braceDepth = 0
			return t
		case ch == '\\':
			r := l.scanEscape()
			if r >= 0 {
				sb.WriteRune(r)
			}
		case ch == eof:
			return l.errorAt(diagnostic.CodeUnterminatedString, span.New(uint32(startTok), uint32(l.current)), "unterminated template literal")
		default:
			sb.WriteRune(ch)
		}
	}
}

func pick(cond bool, a, b token.Kind) token.Kind {
	if cond {
		return a
	}
	return b
}

// TrackBrace is called by the parser on every `{`/`}` token so the lexer
// knows when a `}` closes a template substitution (braceDepth returns to
// 0 at the matching nesting level) versus an ordinary block.
func (l *Lexer) TrackBraceOpen() { l.braceDepth++ }

// TrackBraceClose reports whether the `}` just consumed closes the
// current template substitution (true) and, if so, pops the template
// stack so nesting is tracked correctly for the next substitution.
func (l *Lexer) TrackBraceClose() bool {
	if l.braceDepth == 0 && len(l.templateStack) > 0 {
		l.braceDepth = l.templateStack[len(l.templateStack)-1]
		l.templateStack = l.templateStack[:len(l.templateStack)-1]
		return true
	}
	if l.braceDepth > 0 {
		l.braceDepth--
	}
	return false
}

// scanNumber reads a numeric literal: decimal, hex/octal/binary with a
// radix prefix, scientific notation, and a trailing BigInt `n` suffix.
func (l *Lexer) scanNumber() token.Token {
	start := l.current
	if l.peekRune() == '0' {
		next := l.peekRuneAt(1)
		switch next {
		case 'x', 'X':
			l.nextRune()
			l.nextRune()
			l.acceptAll(isHexDigit)
			return l.finishNumber(start, 16)
		case 'o', 'O':
			l.nextRune()
			l.nextRune()
			l.acceptAll(isOctalDigit)
			return l.finishNumber(start, 8)
		case 'b', 'B':
			l.nextRune()
			l.nextRune()
			l.acceptAll(isBinaryDigit)
			return l.finishNumber(start, 2)
		}
	}

	l.acceptAll(isDigitOrSeparator)
	if l.peekRune() == '.' {
		l.nextRune()
		l.acceptAll(isDigitOrSeparator)
	}
	if l.peekRune() == 'e' || l.peekRune() == 'E' {
		l.nextRune()
		if l.peekRune() == '+' || l.peekRune() == '-' {
			l.nextRune()
		}
		l.acceptAll(isDigitOrSeparator)
	}
	return l.finishNumber(start, 10)
}

func (l *Lexer) finishNumber(start, radix int) token.Token {
	isBigInt := l.peekRune() == 'n'
	if isBigInt {
		l.nextRune()
	}
	t := l.newToken(token.NumericLit)
	text := strings.ReplaceAll(t.Value, "_", "")
	if isBigInt {
		text = strings.TrimSuffix(text, "n")
	}
	switch radix {
	case 10:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			t.Num = v
		}
	default:
		if v, err := strconv.ParseUint(stripRadixPrefix(text), radix, 64); err == nil {
			t.Num = float64(v)
		}
	}
	return t
}

func stripRadixPrefix(s string) string {
	if len(s) > 2 && s[0] == '0' {
		return s[2:]
	}
	return s
}

// scanIdentOrKeyword reads a run of identifier characters (Unicode
// ID_Start followed by ID_Continue, per ECMA-262 §12.7) and classifies it
// against the keyword tables.
func (l *Lexer) scanIdentOrKeyword() token.Token {
	l.nextRune() // ID_Start already peeked
	for isIdentContinue(l.peekRune()) {
		l.nextRune()
	}
	t := l.newToken(token.Ident)
	if kw, ok := token.Keywords[t.Value]; ok {
		t.Kind = kw
	} else if kw, ok := token.ContextualKeywords[t.Value]; ok {
		t.Kind = kw
	}
	return t
}

func (l *Lexer) scanPrivateName() token.Token {
	for isIdentContinue(l.peekRune()) {
		l.nextRune()
	}
	t := l.newToken(token.PrivateName)
	return t
}

// scanRegex reads a RegExp literal body plus its flags. This is invoked
// only when the parser's cover-grammar tracking has determined `/` opens
// a primary expression.
func (l *Lexer) scanRegex() token.Token {
	start := l.start
	inClass := false
	for {
		ch := l.nextRune()
		switch {
		case ch == eof || isLineTerminator(ch):
			return l.errorAt(diagnostic.CodeUnterminatedString, span.New(uint32(start), uint32(l.current)), "unterminated regular expression literal")
		case ch == '\\':
			if r := l.nextRune(); r == eof || isLineTerminator(r) {
				return l.errorAt(diagnostic.CodeUnterminatedString, span.New(uint32(start), uint32(l.current)), "unterminated regular expression literal")
			}
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			goto scanFlags
		}
	}
scanFlags:
	for isIdentContinue(l.peekRune()) {
		l.nextRune()
	}
	t := l.newToken(token.RegexLit)
	return t
}

// ScanJSXText reads raw JSX child text up to the next `<`, `{`, or EOF.
// The parser calls this instead of Next when it knows, from the JSX
// element grammar, that text rather than a token stream follows an
// opening tag's `>` — JSX text is not itself tokenized the way
// expression source is (runs of whitespace and punctuation are literal
// content, not operators).
func (l *Lexer) ScanJSXText() token.Token {
	l.start = l.current
	for {
		ch := l.peekRune()
		if ch == eof || ch == '<' || ch == '{' {
			break
		}
		l.nextRune()
	}
	return l.newToken(token.JSXText)
}

// scanPunctuator matches the longest punctuator starting at the current
// position (greedy, longest-match-first, per ECMAScript lexical grammar).
func (l *Lexer) scanPunctuator() (token.Token, bool) {
	for _, p := range punctuators {
		if l.matchLiteral(p.text) {
			return l.newToken(p.kind), true
		}
	}
	return token.Token{}, false
}

type punctDef struct {
	text string
	kind token.Kind
}

// punctuators is ordered longest-first so greedy matching picks (for
// example) >>>= before >>= before >> before >.
var punctuators = []punctDef{
	{">>>=", token.GtGtGtEq},
	{"...", token.DotDotDot},
	{"===", token.EqEqEq}, {"!==", token.NotEqEq}, {"**=", token.StarStarEq},
	{"<<=", token.LtLtEq}, {">>=", token.GtGtEq}, {">>>", token.GtGtGt},
	{"&&=", token.AmpAmpEq}, {"||=", token.PipePipeEq}, {"??=", token.QuestionQuestionEq},
	{"=>", token.Arrow}, {"==", token.EqEq}, {"!=", token.NotEq},
	{"<=", token.LtEq}, {">=", token.GtEq}, {"&&", token.AmpAmp},
	{"||", token.PipePipe}, {"??", token.QuestionQuestion}, {"?.", token.QuestionDot},
	{"++", token.PlusPlus}, {"--", token.MinusMinus}, {"**", token.StarStar},
	{"<<", token.LtLt}, {">>", token.GtGt}, {"+=", token.PlusEq},
	{"-=", token.MinusEq}, {"*=", token.StarEq}, {"/=", token.SlashEq},
	{"%=", token.PercentEq}, {"&=", token.AmpEq}, {"|=", token.PipeEq},
	{"^=", token.CaretEq},
	{"{", token.LBrace}, {"}", token.RBrace}, {"(", token.LParen},
	{")", token.RParen}, {"[", token.LBracket}, {"]", token.RBracket},
	{".", token.Dot}, {";", token.Semicolon}, {",", token.Comma},
	{"<", token.Lt}, {">", token.Gt}, {"+", token.Plus}, {"-", token.Minus},
	{"*", token.Star}, {"/", token.Slash}, {"%", token.Percent},
	{"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret}, {"!", token.Bang},
	{"~", token.Tilde}, {"?", token.Question}, {":", token.Colon},
	{"=", token.Eq}, {"@", token.At},
}

func (l *Lexer) matchLiteral(s string) bool {
	if l.current+len(s) > l.length {
		return false
	}
	if l.input[l.current:l.current+len(s)] != s {
		return false
	}
	for range s {
		l.nextRune()
	}
	return true
}

// Helpers mirroring gosonata's nextRune/backup/ignore/accept family.

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}
	// ASCII fast path : most source bytes are ASCII; only fall
	// back to full UTF-8 decoding when the high bit is set.
	b := l.input[l.current]
	if b < utf8.RuneSelf {
		l.width = 1
		l.current++
		return rune(b)
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) peekRune() rune {
	save := l.current
	saveW := l.width
	r := l.nextRune()
	l.current = save
	l.width = saveW
	return r
}

func (l *Lexer) peekRuneAt(n int) rune {
	save, saveW := l.current, l.width
	var r rune = eof
	for i := 0; i <= n; i++ {
		r = l.nextRune()
		if r == eof {
			break
		}
	}
	l.current = save
	l.width = saveW
	return r
}

func (l *Lexer) peekDigitAt(n int) bool {
	r := l.peekRuneAt(n)
	return r >= '0' && r <= '9'
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.peekRune()) {
		l.nextRune()
		return true
	}
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	matched := false
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) newToken(kind token.Kind) token.Token {
	t := token.Token{
		Kind:  kind,
		Value: l.input[l.start:l.current],
		Span:  span.New(uint32(l.start), uint32(l.current)),
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) eofToken() token.Token {
	return token.Token{Kind: token.EOF, Span: span.New(uint32(l.current), uint32(l.current))}
}

func (l *Lexer) error(code diagnostic.Code, message string) token.Token {
	return l.errorAt(code, span.New(uint32(l.start), uint32(l.current)), message)
}

func (l *Lexer) errorAt(code diagnostic.Code, sp span.Span, message string) token.Token {
	l.err = diagnostic.Errorf(code, sp, "%s", message)
	return token.Token{Kind: token.Error, Span: sp, Value: l.input[sp.Start:min(int(sp.End), l.length)]}
}

func (l *Lexer) errorToken() token.Token {
	return token.Token{Kind: token.Error, Span: span.New(uint32(l.start), uint32(l.current))}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (l *Lexer) peekRune0() rune { return l.peekRune() }

// Character classes.

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || isUnicodeIdentStart(r)
}

func isIdentContinue(r rune) bool {
	return r == '$' || r == '_' || isUnicodeIdentContinue(r)
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool   { return hexVal(r) >= 0 }
func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }
func isDigitOrSeparator(r rune) bool {
	return isDigit(r) || r == '_'
}
