package transform_test

import (
	"testing"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/transform"
)

// TestConvertArrowThisCapturesEnclosingThis reproduces
// `class C { m() { return () => this; } }`: the arrow function's body
// should become a plain function expression reading a captured `_this`,
// with `m`'s body gaining a leading `var _this = this;` declaration.
func TestConvertArrowThisCapturesEnclosingThis(t *testing.T) {
	arrow := &ast.ArrowFunctionExpression{
		Body:           &ast.ThisExpression{},
		ExpressionBody: true,
	}
	method := &ast.BlockStatement{
		Body: []ast.Statement{
			&ast.ReturnStatement{Argument: arrow},
		},
	}

	introducer := transform.NewBindingIntroducer(nil)
	rewritten, used := transform.ConvertArrowThis(method, introducer)
	if !used {
		t.Fatal("expected usesCapture=true, arrow function references this")
	}
	if len(rewritten.Body) != 2 {
		t.Fatalf("expected 2 statements (capture decl + return), got %d: %#v", len(rewritten.Body), rewritten.Body)
	}

	decl, ok := rewritten.Body[0].(*ast.VariableDeclaration)
	if !ok || decl.VarKind != ast.VarVar || len(decl.Declarations) != 1 {
		t.Fatalf("expected a leading var declaration, got %#v", rewritten.Body[0])
	}
	id, ok := decl.Declarations[0].ID.(*ast.Identifier)
	if !ok || id.Name != "_this" {
		t.Fatalf("expected capture binding named _this, got %#v", decl.Declarations[0].ID)
	}
	if _, ok := decl.Declarations[0].Init.(*ast.ThisExpression); !ok {
		t.Fatalf("expected capture initializer `this`, got %#v", decl.Declarations[0].Init)
	}

	ret, ok := rewritten.Body[1].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected a return statement, got %#v", rewritten.Body[1])
	}
	fn, ok := ret.Argument.(*ast.Function)
	if !ok {
		t.Fatalf("expected the arrow to become a *ast.Function, got %#v", ret.Argument)
	}
	innerRet, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected the converted function to return an expression, got %#v", fn.Body.Body[0])
	}
	innerID, ok := innerRet.Argument.(*ast.Identifier)
	if !ok || innerID.Name != "_this" {
		t.Fatalf("expected the arrow body's `this` rewritten to `_this`, got %#v", innerRet.Argument)
	}
}

func TestConvertArrowThisLeavesNonCapturingArrowsAlone(t *testing.T) {
	arrow := &ast.ArrowFunctionExpression{
		Body:           &ast.Identifier{Name: "x"},
		ExpressionBody: true,
	}
	body := &ast.BlockStatement{
		Body: []ast.Statement{&ast.ReturnStatement{Argument: arrow}},
	}

	introducer := transform.NewBindingIntroducer(nil)
	rewritten, used := transform.ConvertArrowThis(body, introducer)
	if used {
		t.Fatal("expected usesCapture=false, arrow does not reference this")
	}
	if rewritten != body {
		t.Fatal("expected the original BlockStatement to be returned unchanged")
	}
}

func TestBindingIntroducerAvoidsCollisions(t *testing.T) {
	introducer := transform.NewBindingIntroducer([]string{"_this"})
	if got := introducer.Fresh("_this"); got != "_this2" {
		t.Fatalf("expected _this2 to avoid the existing _this binding, got %q", got)
	}
}
