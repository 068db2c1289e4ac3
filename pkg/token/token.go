// Package token defines the lexical token kinds produced by pkg/lexer,
// generalizing the single flat TokenType enum gosonata's pkg/parser/tokens.go
// used for JSONata to the much larger ECMAScript/TypeScript/JSX grammar.
package token

import "github.com/sandrolain/ecmatool/pkg/span"

// Kind identifies the lexical category of a Token.
type Kind uint16

const (
	// Special tokens.
	EOF Kind = iota
	Error

	// Literals.
	Ident       // fieldName, $var-like identifiers (plain JS identifiers)
	PrivateName // #field
	StringLit   // "hello" or 'hello'
	NumericLit  // 123, 3.14, 1e-10, 0x1F, 0b101, 123n (BigInt)
	RegexLit    // /pattern/flags
	TemplateNoSub
	TemplateHead   // `head${
	TemplateMiddle // }middle${
	TemplateTail   // }tail`
	JSXText

	// Keywords (a closed set; context — e.g. strict mode — decides which
	// of these are reserved: the lexer always emits the keyword's own
	// Kind and leaves acceptance in identifier position to the parser).
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwYield

	// Contextual keywords (identifiers in most contexts).
	KwAsync
	KwAwait
	KwLet
	KwStatic
	KwGet
	KwSet
	KwOf
	KwAs
	KwFrom
	KwUsing

	// TypeScript contextual keywords.
	KwType
	KwInterface
	KwNamespace
	KwModule
	KwDeclare
	KwAbstract
	KwReadonly
	KwPublic
	KwPrivate
	KwProtected
	KwIs
	KwKeyof
	KwInfer
	KwSatisfies
	KwAssert
	KwAccessor
	KwOverride
	KwOut

	// Punctuators.
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       //.
	DotDotDot // ...
	Semicolon // ;
	Comma     // ,
	Lt        // <
	Gt        // >
	LtEq      // <=
	GtEq      // >=
	EqEq      // ==
	NotEq     // !=
	EqEqEq    // ===
	NotEqEq   // !==
	Plus      // +
	Minus     // -
	Star      // *
	StarStar  // **
	Slash     // /
	Percent   // %
	PlusPlus  // ++
	MinusMinus // --
	LtLt      // <<
	GtGt      // >>
	GtGtGt    // >>>
	Amp       // &
	Pipe      // |
	Caret     // ^
	Bang      // !
	Tilde     // ~
	AmpAmp    // &&
	PipePipe  // ||
	QuestionQuestion // ??
	Question  // ?
	QuestionDot // ?.
	Colon     // :
	Eq        // =
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=
	StarStarEq // **=
	LtLtEq    // <<=
	GtGtEq    // >>=
	GtGtGtEq  // >>>=
	AmpEq     // &=
	PipeEq    // |=
	CaretEq   // ^=
	AmpAmpEq  // &&=
	PipePipeEq // ||=
	QuestionQuestionEq // ??=
	Arrow     // =>
	At        // @ (decorator)

	// JSX-specific (only emitted while the lexer is in JSX sub-mode).
	JSXTagOpen  // <
	JSXTagClose // >
	JSXSlash    // /
)

var names = map[Kind]string{
	EOF: "EOF", Error: "Error", Ident: "Ident", PrivateName: "PrivateName",
	StringLit: "StringLit", NumericLit: "NumericLit", RegexLit: "RegexLit",
	TemplateNoSub: "TemplateNoSub", TemplateHead: "TemplateHead",
	TemplateMiddle: "TemplateMiddle", TemplateTail: "TemplateTail",
	JSXText: "JSXText",
	KwBreak: "break", KwCase: "case", KwCatch: "catch", KwClass: "class",
	KwConst: "const", KwContinue: "continue", KwDebugger: "debugger",
	KwDefault: "default", KwDelete: "delete", KwDo: "do", KwElse: "else",
	KwEnum: "enum", KwExport: "export", KwExtends: "extends", KwFalse: "false",
	KwFinally: "finally", KwFor: "for", KwFunction: "function", KwIf: "if",
	KwImport: "import", KwIn: "in", KwInstanceof: "instanceof", KwNew: "new",
	KwNull: "null", KwReturn: "return", KwSuper: "super", KwSwitch: "switch",
	KwThis: "this", KwThrow: "throw", KwTrue: "true", KwTry: "try",
	KwTypeof: "typeof", KwVar: "var", KwVoid: "void", KwWhile: "while",
	KwWith: "with", KwYield: "yield",
	KwAsync: "async", KwAwait: "await", KwLet: "let", KwStatic: "static",
	KwGet: "get", KwSet: "set", KwOf: "of", KwAs: "as", KwFrom: "from",
	KwUsing: "using",
	KwType: "type", KwInterface: "interface", KwNamespace: "namespace",
	KwModule: "module", KwDeclare: "declare", KwAbstract: "abstract",
	KwReadonly: "readonly", KwPublic: "public", KwPrivate: "private",
	KwProtected: "protected", KwIs: "is", KwKeyof: "keyof", KwInfer: "infer",
	KwSatisfies: "satisfies", KwAssert: "assert", KwAccessor: "accessor",
	KwOverride: "override", KwOut: "out",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "punct"
}

// Keywords maps the reserved-word spelling to its Kind. The lexer
// consults this after scanning a plain identifier run.
var Keywords = map[string]Kind{
	"break": KwBreak, "case": KwCase, "catch": KwCatch, "class": KwClass,
	"const": KwConst, "continue": KwContinue, "debugger": KwDebugger,
	"default": KwDefault, "delete": KwDelete, "do": KwDo, "else": KwElse,
	"enum": KwEnum, "export": KwExport, "extends": KwExtends, "false": KwFalse,
	"finally": KwFinally, "for": KwFor, "function": KwFunction, "if": KwIf,
	"import": KwImport, "in": KwIn, "instanceof": KwInstanceof, "new": KwNew,
	"null": KwNull, "return": KwReturn, "super": KwSuper, "switch": KwSwitch,
	"this": KwThis, "throw": KwThrow, "true": KwTrue, "try": KwTry,
	"typeof": KwTypeof, "var": KwVar, "void": KwVoid, "while": KwWhile,
	"with": KwWith, "yield": KwYield,
}

// ContextualKeywords holds identifiers that are keywords only in specific
// grammatical positions; the lexer emits their own Kind, and the parser
// also accepts those kinds in identifier position.
var ContextualKeywords = map[string]Kind{
	"async": KwAsync, "await": KwAwait, "let": KwLet, "static": KwStatic,
	"get": KwGet, "set": KwSet, "of": KwOf, "as": KwAs, "from": KwFrom,
	"using": KwUsing,
	"type": KwType, "interface": KwInterface, "namespace": KwNamespace,
	"module": KwModule, "declare": KwDeclare, "abstract": KwAbstract,
	"readonly": KwReadonly, "public": KwPublic, "private": KwPrivate,
	"protected": KwProtected, "is": KwIs, "keyof": KwKeyof, "infer": KwInfer,
	"satisfies": KwSatisfies, "assert": KwAssert, "accessor": KwAccessor,
	"override": KwOverride, "out": KwOut,
}

// Token is a single lexical token: its kind, byte span, and a cheap
// pre-resolved payload so the parser rarely needs to re-slice the source
//.
type Token struct {
	Kind  Kind
	Span  span.Span
	Value string  // raw or escape-resolved text (identifier name, string
	              // contents, template chunk, regex pattern+flags)
	Num   float64 // pre-converted numeric value, valid when Kind == NumericLit
	// NewlineBefore records whether a line terminator appeared between
	// this token and the previous one — automatic semicolon insertion
	// needs this.
	NewlineBefore bool
}

func (t Token) String() string {
	if t.Value != "" {
		return t.Kind.String() + "(" + t.Value + ")"
	}
	return t.Kind.String()
}
