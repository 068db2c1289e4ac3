package lexer_test

import (
	"testing"

	"github.com/sandrolain/ecmatool/pkg/lexer"
	"github.com/sandrolain/ecmatool/pkg/token"
)

type lexerTestCase struct {
	name       string
	input      string
	allowRegex bool
	expected   []token.Token
	expectErr  bool
}

func TestLexerPunctuatorsAndKeywords(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "arrow function head",
			input: "(x) => x",
			expected: []token.Token{
				{Kind: token.LParen, Value: "("},
				{Kind: token.Ident, Value: "x"},
				{Kind: token.RParen, Value: ")"},
				{Kind: token.Arrow, Value: "=>"},
				{Kind: token.Ident, Value: "x"},
			},
		},
		{
			name:  "longest-match punctuators",
			input: ">>> >>= ?? ?.",
			expected: []token.Token{
				{Kind: token.GtGtGt, Value: ">>>"},
				{Kind: token.GtGtEq, Value: ">>="},
				{Kind: token.QuestionQuestion, Value: "??"},
				{Kind: token.QuestionDot, Value: "?."},
			},
		},
		{
			name:  "keywords vs identifiers",
			input: "const let x = async",
			expected: []token.Token{
				{Kind: token.KwConst, Value: "const"},
				{Kind: token.KwLet, Value: "let"},
				{Kind: token.Ident, Value: "x"},
				{Kind: token.Eq, Value: "="},
				{Kind: token.KwAsync, Value: "async"},
			},
		},
	}
	runLexerTests(t, tests)
}

func TestLexerStrings(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "double quoted",
			input: `"hello"`,
			expected: []token.Token{
				{Kind: token.StringLit, Value: "hello"},
			},
		},
		{
			name:  "single quoted with escape",
			input: `'he said \'hi\''`,
			expected: []token.Token{
				{Kind: token.StringLit, Value: "he said 'hi'"},
			},
		},
		{
			name:      "unterminated string",
			input:     `"abc`,
			expectErr: true,
		},
	}
	runLexerTests(t, tests)
}

func TestLexerNumbers(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "integer",
			input: "123",
			expected: []token.Token{
				{Kind: token.NumericLit, Value: "123", Num: 123},
			},
		},
		{
			name:  "hex",
			input: "0x1F",
			expected: []token.Token{
				{Kind: token.NumericLit, Value: "0x1F", Num: 31},
			},
		},
		{
			name:  "float with exponent",
			input: "3.5e2",
			expected: []token.Token{
				{Kind: token.NumericLit, Value: "3.5e2", Num: 350},
			},
		},
	}
	runLexerTests(t, tests)
}

// TestLexerRegexVsDivision exercises the exact disambiguation the
// parser drives via its regexAllowedAfter heuristic: the lexer itself
// just trusts whatever allowRegex it's told per call.
func TestLexerRegexVsDivision(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:       "regex literal in primary position",
			input:      "/abc/gi",
			allowRegex: true,
			expected: []token.Token{
				{Kind: token.RegexLit, Value: "abc/gi"},
			},
		},
		{
			name:       "division after an identifier",
			input:      "a / b",
			allowRegex: false,
			expected: []token.Token{
				{Kind: token.Ident, Value: "a"},
				{Kind: token.Slash, Value: "/"},
				{Kind: token.Ident, Value: "b"},
			},
		},
	}
	runLexerTests(t, tests)
}

func TestLexerTemplateLiteral(t *testing.T) {
	lex := lexer.New("`a${b}c`")
	head := lex.Next(false)
	if head.Kind != token.TemplateHead || head.Value != "a" {
		t.Fatalf("head = %+v, want TemplateHead %q", head, "a")
	}
	expr := lex.Next(false)
	if expr.Kind != token.Ident || expr.Value != "b" {
		t.Fatalf("expr = %+v, want Ident %q", expr, "b")
	}
	// The caller consumes the `}` before asking whether it closes the
	// substitution, as the parser does.
	if rb := lex.Next(false); rb.Kind != token.RBrace {
		t.Fatalf("rbrace = %+v, want RBrace", rb)
	}
	if !lex.TrackBraceClose() {
		t.Fatalf("TrackBraceClose: want true at template substitution close")
	}
	tail := lex.ContinueTemplate()
	if tail.Kind != token.TemplateTail || tail.Value != "c" {
		t.Fatalf("tail = %+v, want TemplateTail %q", tail, "c")
	}
}

func TestLexerIrregularWhitespace(t *testing.T) {
	lex := lexer.New("a b")
	for {
		tok := lex.Next(false)
		if tok.Kind == token.EOF {
			break
		}
	}
	if len(lex.IrregularWhitespace) != 1 {
		t.Fatalf("IrregularWhitespace = %v, want exactly one recorded position", lex.IrregularWhitespace)
	}
	if lex.IrregularWhitespace[0].Start != 1 {
		t.Errorf("IrregularWhitespace[0].Start = %d, want 1", lex.IrregularWhitespace[0].Start)
	}
}

func TestLexerLineCommentNewlineBefore(t *testing.T) {
	lex := lexer.New("a\n// comment\nb")
	first := lex.Next(false)
	if first.Value != "a" {
		t.Fatalf("first = %+v, want %q", first, "a")
	}
	second := lex.Next(false)
	if second.Value != "b" || !second.NewlineBefore {
		t.Fatalf("second = %+v, want %q with NewlineBefore set", second, "b")
	}
	if len(lex.Comments) != 1 {
		t.Fatalf("Comments = %v, want exactly one recorded comment", lex.Comments)
	}
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lex := lexer.New(test.input)
			var tokens []token.Token
			for {
				tok := lex.Next(test.allowRegex)
				if tok.Kind == token.EOF {
					break
				}
				if tok.Kind == token.Error {
					if !test.expectErr {
						t.Fatalf("unexpected error: %v", lex.Error())
					}
					return
				}
				tokens = append(tokens, tok)
			}

			if test.expectErr {
				t.Fatal("expected a lexer error but got none")
			}

			if len(tokens) != len(test.expected) {
				t.Fatalf("got %d tokens, want %d\ngot:  %v\nwant: %v", len(tokens), len(test.expected), tokens, test.expected)
			}
			for i, tok := range tokens {
				want := test.expected[i]
				if tok.Kind != want.Kind {
					t.Errorf("token %d: kind = %v, want %v", i, tok.Kind, want.Kind)
				}
				if tok.Value != want.Value {
					t.Errorf("token %d: value = %q, want %q", i, tok.Value, want.Value)
				}
				if want.Num != 0 && tok.Num != want.Num {
					t.Errorf("token %d: num = %v, want %v", i, tok.Num, want.Num)
				}
			}
		})
	}
}
