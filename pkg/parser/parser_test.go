package parser_test

import (
	"testing"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/parser"
)

func parseOK(t *testing.T, source string, opts parser.SourceType) *ast.Program {
	t.Helper()
	result := parser.Parse(source, opts)
	if len(result.Errors) != 0 {
		t.Fatalf("Parse(%q) reported errors: %v", source, result.Errors)
	}
	return result.Program
}

func singleStatement(t *testing.T, prog *ast.Program) ast.Statement {
	t.Helper()
	if len(prog.Body) != 1 {
		t.Fatalf("Body has %d statements, want 1: %+v", len(prog.Body), prog.Body)
	}
	return prog.Body[0]
}

func exprStatementExpr(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	stmt, ok := singleStatement(t, prog).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ExpressionStatement", singleStatement(t, prog))
	}
	return stmt.Expr
}

func TestParseVariableDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		varKind ast.VariableKind
	}{
		{"var", "var x = 1;", ast.VarVar},
		{"let", "let x = 1;", ast.VarLet},
		{"const", "const x = 1;", ast.VarConst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.source, parser.ScriptSourceType())
			decl, ok := singleStatement(t, prog).(*ast.VariableDeclaration)
			if !ok {
				t.Fatalf("statement is %T, want *ast.VariableDeclaration", singleStatement(t, prog))
			}
			if decl.VarKind != tt.varKind {
				t.Errorf("VarKind = %v, want %v", decl.VarKind, tt.varKind)
			}
			if len(decl.Declarations) != 1 {
				t.Fatalf("Declarations has %d entries, want 1", len(decl.Declarations))
			}
			id, ok := decl.Declarations[0].ID.(*ast.Identifier)
			if !ok || id.Name != "x" {
				t.Errorf("declarator ID = %+v, want Identifier %q", decl.Declarations[0].ID, "x")
			}
		})
	}
}

// TestAutomaticSemicolonInsertion exercises the ASI rule that matters
// most in practice: a return statement's operand must stay on the same
// line, or ASI silently turns it into a bare `return;`.
func TestAutomaticSemicolonInsertion(t *testing.T) {
	source := "function f() {\n  return\n  1\n}"
	prog := parseOK(t, source, parser.ScriptSourceType())
	fn, ok := singleStatement(t, prog).(*ast.Function)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Function", singleStatement(t, prog))
	}
	if len(fn.Body.Body) != 2 {
		t.Fatalf("function body has %d statements, want 2 (bare return, then an expression statement)", len(fn.Body.Body))
	}
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("first body statement is %T, want *ast.ReturnStatement", fn.Body.Body[0])
	}
	if ret.Argument != nil {
		t.Errorf("ASI'd return has Argument = %+v, want nil", ret.Argument)
	}
}

func TestASIAtBlockEndAndEOF(t *testing.T) {
	prog := parseOK(t, "{ 1 }", parser.ScriptSourceType())
	block, ok := singleStatement(t, prog).(*ast.BlockStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.BlockStatement", singleStatement(t, prog))
	}
	if len(block.Body) != 1 {
		t.Fatalf("block has %d statements, want 1", len(block.Body))
	}

	prog2 := parseOK(t, "1 + 1", parser.ScriptSourceType())
	if _, ok := exprStatementExpr(t, prog2).(*ast.BinaryExpression); !ok {
		t.Errorf("no trailing semicolon before EOF should still parse as one expression statement")
	}
}

// TestParenGroupCoverGrammar exercises the non-backtracking
// parenthesized-expression/arrow-parameter-list cover grammar: the same
// token prefix must resolve differently depending only on what follows
// the closing paren, without the lexer supporting any checkpoint/restore.
func TestParenGroupCoverGrammar(t *testing.T) {
	t.Run("parenthesized expression", func(t *testing.T) {
		prog := parseOK(t, "(a, b);", parser.ScriptSourceType())
		paren, ok := exprStatementExpr(t, prog).(*ast.ParenthesizedExpression)
		if !ok {
			t.Fatalf("expr is %T, want *ast.ParenthesizedExpression", exprStatementExpr(t, prog))
		}
		if _, ok := paren.Expr.(*ast.SequenceExpression); !ok {
			t.Errorf("inner expr is %T, want *ast.SequenceExpression", paren.Expr)
		}
	})

	t.Run("arrow function with same prefix", func(t *testing.T) {
		prog := parseOK(t, "(a, b) => a + b;", parser.ScriptSourceType())
		arrow, ok := exprStatementExpr(t, prog).(*ast.ArrowFunctionExpression)
		if !ok {
			t.Fatalf("expr is %T, want *ast.ArrowFunctionExpression", exprStatementExpr(t, prog))
		}
		if len(arrow.Params) != 2 {
			t.Fatalf("Params has %d entries, want 2", len(arrow.Params))
		}
	})

	t.Run("single identifier arrow shorthand", func(t *testing.T) {
		prog := parseOK(t, "x => x;", parser.ScriptSourceType())
		arrow, ok := exprStatementExpr(t, prog).(*ast.ArrowFunctionExpression)
		if !ok {
			t.Fatalf("expr is %T, want *ast.ArrowFunctionExpression", exprStatementExpr(t, prog))
		}
		if len(arrow.Params) != 1 {
			t.Fatalf("Params has %d entries, want 1", len(arrow.Params))
		}
	})

	t.Run("async arrow function", func(t *testing.T) {
		prog := parseOK(t, "async (x) => x;", parser.ScriptSourceType())
		arrow, ok := exprStatementExpr(t, prog).(*ast.ArrowFunctionExpression)
		if !ok {
			t.Fatalf("expr is %T, want *ast.ArrowFunctionExpression", exprStatementExpr(t, prog))
		}
		if !arrow.Async {
			t.Error("Async = false, want true")
		}
	})

	t.Run("async call, not an arrow function", func(t *testing.T) {
		prog := parseOK(t, "async(x);", parser.ScriptSourceType())
		call, ok := exprStatementExpr(t, prog).(*ast.CallExpression)
		if !ok {
			t.Fatalf("expr is %T, want *ast.CallExpression", exprStatementExpr(t, prog))
		}
		callee, ok := call.Callee.(*ast.Identifier)
		if !ok || callee.Name != "async" {
			t.Errorf("Callee = %+v, want Identifier %q", call.Callee, "async")
		}
	})
}

func TestBinaryOperatorPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3;", parser.ScriptSourceType())
	bin, ok := exprStatementExpr(t, prog).(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinaryExpression", exprStatementExpr(t, prog))
	}
	if bin.Operator != "+" {
		t.Fatalf("top operator = %q, want %q", bin.Operator, "+")
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Operator != "*" {
		t.Errorf("Right = %+v, want a '*' BinaryExpression nested under '+'", bin.Right)
	}
}

func TestForStatementHeadDisambiguation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ast.Kind
	}{
		{"classic for", "for (let i = 0; i < 10; i++) {}", ast.KindForStatement},
		{"for-in", "for (let k in obj) {}", ast.KindForInStatement},
		{"for-of", "for (let v of list) {}", ast.KindForOfStatement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.source, parser.ScriptSourceType())
			stmt := singleStatement(t, prog)
			if stmt.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", stmt.Kind(), tt.kind)
			}
		})
	}
}

func TestClassWithImplementsAndGetterSetter(t *testing.T) {
	source := `class Box implements Comparable {
  get value() { return this._v; }
  set value(v) { this._v = v; }
}`
	prog := parseOK(t, source, parser.SourceType{Module: true, TypeScript: true})
	class, ok := singleStatement(t, prog).(*ast.Class)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Class", singleStatement(t, prog))
	}
	if class.ID == nil || class.ID.Name != "Box" {
		t.Fatalf("class ID = %+v, want Identifier %q", class.ID, "Box")
	}
	if len(class.Body.Body) != 2 {
		t.Fatalf("class body has %d members, want 2", len(class.Body.Body))
	}
}

func TestTSInterfaceTypeAliasAndEnum(t *testing.T) {
	source := `interface Point { x: number; y: number; }
type Pair = [number, number];
const enum Direction { Up, Down }`
	opts := parser.SourceType{Module: true, TypeScript: true}
	prog := parser.Parse(source, opts)
	if len(prog.Errors) != 0 {
		t.Fatalf("Parse reported errors: %v", prog.Errors)
	}
	if len(prog.Program.Body) != 3 {
		t.Fatalf("Body has %d statements, want 3: %+v", len(prog.Program.Body), prog.Program.Body)
	}
	iface, ok := prog.Program.Body[0].(*ast.TSInterfaceDeclaration)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.TSInterfaceDeclaration", prog.Program.Body[0])
	}
	if len(iface.Body) != 2 {
		t.Errorf("interface has %d members, want 2", len(iface.Body))
	}
	if _, ok := prog.Program.Body[1].(*ast.TSTypeAliasDeclaration); !ok {
		t.Errorf("statement 1 is %T, want *ast.TSTypeAliasDeclaration", prog.Program.Body[1])
	}
	enum, ok := prog.Program.Body[2].(*ast.TSEnumDeclaration)
	if !ok {
		t.Fatalf("statement 2 is %T, want *ast.TSEnumDeclaration", prog.Program.Body[2])
	}
	if !enum.Const {
		t.Error("const enum parsed with Const = false")
	}
	if len(enum.Members) != 2 {
		t.Errorf("enum has %d members, want 2", len(enum.Members))
	}
}

func TestJSXElementWithAttributesAndChildren(t *testing.T) {
	source := `const el = <div className="box" disabled>
  <span>{value}</span>
</div>;`
	prog := parseOK(t, source, parser.TSXSourceType())
	decl, ok := singleStatement(t, prog).(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VariableDeclaration", singleStatement(t, prog))
	}
	el, ok := decl.Declarations[0].Init.(*ast.JSXElement)
	if !ok {
		t.Fatalf("initializer is %T, want *ast.JSXElement", decl.Declarations[0].Init)
	}
	name, ok := el.Opening.Name.(*ast.JSXIdentifier)
	if !ok || name.Name != "div" {
		t.Fatalf("opening name = %+v, want JSXIdentifier %q", el.Opening.Name, "div")
	}
	if len(el.Opening.Attributes) != 2 {
		t.Fatalf("opening has %d attributes, want 2", len(el.Opening.Attributes))
	}
	if len(el.Children) == 0 {
		t.Fatal("element has no children, want at least the nested <span>")
	}
}

// TestJSXClosingTagAfterLessThan is the regression test for the
// regexAllowedAfter/Lt lexer-disambiguation bug: `</` must always
// tokenize as Lt then Slash, never as Lt then the start of a regex
// literal.
func TestJSXClosingTagAfterLessThan(t *testing.T) {
	tests := []string{
		`<div></div>;`,
		`<></>;`,
		`<a><b></b></a>;`,
	}
	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			result := parser.Parse(source, parser.TSXSourceType())
			if len(result.Errors) != 0 {
				t.Fatalf("Parse(%q) reported errors: %v", source, result.Errors)
			}
		})
	}
}

func TestRelationalOperatorThenRegexLiteral(t *testing.T) {
	prog := parseOK(t, "a < /x/.test(b);", parser.ScriptSourceType())
	bin, ok := exprStatementExpr(t, prog).(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinaryExpression", exprStatementExpr(t, prog))
	}
	if bin.Operator != "<" {
		t.Fatalf("Operator = %q, want %q", bin.Operator, "<")
	}
	call, ok := bin.Right.(*ast.CallExpression)
	if !ok {
		t.Fatalf("Right is %T, want *ast.CallExpression", bin.Right)
	}
	member, ok := call.Callee.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("Callee is %T, want *ast.MemberExpression", call.Callee)
	}
	if _, ok := member.Object.(*ast.RegExpLiteral); !ok {
		t.Errorf("member.Object is %T, want *ast.RegExpLiteral", member.Object)
	}
}

func TestTemplateLiteralWithSubstitution(t *testing.T) {
	prog := parseOK(t, "`a${b}c`;", parser.ScriptSourceType())
	tmpl, ok := exprStatementExpr(t, prog).(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("expr is %T, want *ast.TemplateLiteral", exprStatementExpr(t, prog))
	}
	if len(tmpl.Quasis) != 2 || len(tmpl.Expressions) != 1 {
		t.Fatalf("template has %d quasis / %d expressions, want 2 / 1", len(tmpl.Quasis), len(tmpl.Expressions))
	}
}

func TestDestructuringParameters(t *testing.T) {
	prog := parseOK(t, "function f({ a, b: [c] }) {}", parser.ScriptSourceType())
	fn, ok := singleStatement(t, prog).(*ast.Function)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Function", singleStatement(t, prog))
	}
	if len(fn.Params) != 1 {
		t.Fatalf("Params has %d entries, want 1", len(fn.Params))
	}
	if _, ok := fn.Params[0].(*ast.ObjectPattern); !ok {
		t.Errorf("Params[0] is %T, want *ast.ObjectPattern", fn.Params[0])
	}
}

func TestMalformedInputRecoversWithoutPanicking(t *testing.T) {
	result := parser.Parse("let = ;", parser.ScriptSourceType())
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one diagnostic for malformed input")
	}
	if result.Program == nil {
		t.Fatal("Program is nil, want a best-effort result even on malformed input")
	}
}
