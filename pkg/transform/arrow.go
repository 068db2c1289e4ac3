package transform

import "github.com/sandrolain/ecmatool/pkg/ast"

// ConvertArrowThis rewrites every arrow function inside body that refers
// to `this` into a plain function expression reading a captured `_this`
// binding instead, the lowering arrow functions need once the
// FeatureArrowFunction target doesn't support them natively. Grounded on
// the "var _this = this" capture-and-rename oxc's arrow function
// converter performs: an arrow inherits its enclosing `this`, so once
// it's rewritten to an ordinary function (which binds its own `this`),
// every reference inside it has to read the captured value instead.
//
// Every `this` the rewrite reaches becomes a read of the captured
// binding, whether it sits inside a converted arrow function or directly
// in body's own statements. If the rewrite reaches no `this`, body is
// returned unchanged and usesCapture is false. Otherwise the returned
// BlockStatement has a leading `var _this = this;` declaration, using
// the name introducer hands out (one outside the names introducer was
// seeded with). The rewrite descends through blocks, expression,
// return, if and variable statements, and call, member, binary,
// logical, conditional and array expressions; other node kinds, and any
// arrow function or `this` inside them, are left as they are.
func ConvertArrowThis(body *ast.BlockStatement, introducer *BindingIntroducer) (rewritten *ast.BlockStatement, usesCapture bool) {
	captureName := ""
	newBody := make([]ast.Statement, len(body.Body))
	for i, s := range body.Body {
		newBody[i] = rewriteStatement(s, introducer, &captureName)
	}
	if captureName == "" {
		return body, false
	}
	decl := &ast.VariableDeclaration{
		VarKind: ast.VarVar,
		Declarations: []*ast.VariableDeclarator{
			{ID: &ast.Identifier{Name: captureName}, Init: &ast.ThisExpression{}},
		},
	}
	return &ast.BlockStatement{Body: append([]ast.Statement{decl}, newBody...)}, true
}

// capture lazily mints the `_this` binding name on first use, so a
// body in which the rewrite reaches no `this` never gets one.
func capture(introducer *BindingIntroducer, captureName *string) string {
	if *captureName == "" {
		*captureName = introducer.Fresh("_this")
	}
	return *captureName
}

func rewriteStatement(s ast.Statement, introducer *BindingIntroducer, captureName *string) ast.Statement {
	switch n := s.(type) {
	case nil:
		return nil
	case *ast.BlockStatement:
		out := make([]ast.Statement, len(n.Body))
		for i, c := range n.Body {
			out[i] = rewriteStatement(c, introducer, captureName)
		}
		return &ast.BlockStatement{Body: out}
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{Expr: rewriteExpressionOrNil(n.Expr, introducer, captureName)}
	case *ast.ReturnStatement:
		return &ast.ReturnStatement{Argument: rewriteExpressionOrNil(n.Argument, introducer, captureName)}
	case *ast.IfStatement:
		return &ast.IfStatement{
			Test:       rewriteExpressionOrNil(n.Test, introducer, captureName),
			Consequent: rewriteStatement(n.Consequent, introducer, captureName),
			Alternate:  rewriteStatement(n.Alternate, introducer, captureName),
		}
	case *ast.VariableDeclaration:
		decls := make([]*ast.VariableDeclarator, len(n.Declarations))
		for i, d := range n.Declarations {
			decls[i] = &ast.VariableDeclarator{ID: d.ID, Init: rewriteExpressionOrNil(d.Init, introducer, captureName)}
		}
		return &ast.VariableDeclaration{VarKind: n.VarKind, Declarations: decls}
	default:
		// Other statement kinds (loops, switch, try, labeled statements,
		// function and class declarations, ...) pass through unchanged,
		// together with any arrow function or `this` inside them.
		return s
	}
}

func rewriteExpressionOrNil(e ast.Expression, introducer *BindingIntroducer, captureName *string) ast.Expression {
	if e == nil {
		return nil
	}
	return rewriteExpression(e, introducer, captureName).(ast.Expression)
}

func rewriteExpression(e ast.Expression, introducer *BindingIntroducer, captureName *string) ast.Node {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.ThisExpression:
		return &ast.Identifier{Name: capture(introducer, captureName)}
	case *ast.ArrowFunctionExpression:
		if !referencesThis(n) {
			return n
		}
		var fnBody *ast.BlockStatement
		if block, ok := n.Body.(*ast.BlockStatement); ok {
			fnBody = block
		} else {
			fnBody = &ast.BlockStatement{Body: []ast.Statement{
				&ast.ReturnStatement{Argument: n.Body.(ast.Expression)},
			}}
		}
		rewrittenBody := rewriteStatement(fnBody, introducer, captureName).(*ast.BlockStatement)
		return &ast.Function{Params: n.Params, Body: rewrittenBody, Async: n.Async}
	case *ast.CallExpression:
		args := make([]ast.Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = rewriteExpressionOrNil(a, introducer, captureName)
		}
		return &ast.CallExpression{
			Callee:   rewriteExpressionOrNil(n.Callee, introducer, captureName),
			Args:     args,
			Optional: n.Optional,
		}
	case *ast.MemberExpression:
		prop := n.Property
		if n.Computed {
			prop = rewriteExpressionOrNil(prop, introducer, captureName)
		}
		return &ast.MemberExpression{
			Object:   rewriteExpressionOrNil(n.Object, introducer, captureName),
			Property: prop,
			Computed: n.Computed,
			Optional: n.Optional,
		}
	case *ast.BinaryExpression:
		return &ast.BinaryExpression{
			Operator: n.Operator,
			Left:     rewriteExpressionOrNil(n.Left, introducer, captureName),
			Right:    rewriteExpressionOrNil(n.Right, introducer, captureName),
		}
	case *ast.LogicalExpression:
		return &ast.LogicalExpression{
			Operator: n.Operator,
			Left:     rewriteExpressionOrNil(n.Left, introducer, captureName),
			Right:    rewriteExpressionOrNil(n.Right, introducer, captureName),
		}
	case *ast.ConditionalExpression:
		return &ast.ConditionalExpression{
			Test:       rewriteExpressionOrNil(n.Test, introducer, captureName),
			Consequent: rewriteExpressionOrNil(n.Consequent, introducer, captureName),
			Alternate:  rewriteExpressionOrNil(n.Alternate, introducer, captureName),
		}
	case *ast.ArrayExpression:
		elems := make([]ast.Expression, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = rewriteExpressionOrNil(el, introducer, captureName)
		}
		return &ast.ArrayExpression{Elements: elems}
	default:
		// Identifiers, literals, function expressions (which bind their
		// own `this`) and every expression kind not listed above pass
		// through unchanged, together with any arrow function or `this`
		// inside them.
		return e
	}
}

// referencesThis reports whether n, or an arrow function nested inside
// n, refers to `this`. It does not descend into a nested *ast.Function,
// since a regular function expression introduces its own `this`
// binding and so is opaque to the enclosing capture. It looks through
// the same node kinds the rewrite descends through (see
// ConvertArrowThis); a `this` inside any other kind, such as an
// assignment or an object literal, is not seen.
func referencesThis(n ast.Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case *ast.ThisExpression:
		return true
	case *ast.Function:
		return false
	case *ast.ArrowFunctionExpression:
		if block, ok := v.Body.(*ast.BlockStatement); ok {
			return blockReferencesThis(block)
		}
		return referencesThis(v.Body.(ast.Expression))
	case *ast.ExpressionStatement:
		return referencesThis(v.Expr)
	case *ast.ReturnStatement:
		return referencesThis(v.Argument)
	case *ast.IfStatement:
		return referencesThis(v.Test) || referencesThis(v.Consequent) || referencesThis(v.Alternate)
	case *ast.BlockStatement:
		return blockReferencesThis(v)
	case *ast.CallExpression:
		if referencesThis(v.Callee) {
			return true
		}
		for _, a := range v.Args {
			if referencesThis(a) {
				return true
			}
		}
		return false
	case *ast.MemberExpression:
		return referencesThis(v.Object) || (v.Computed && referencesThis(v.Property))
	case *ast.BinaryExpression:
		return referencesThis(v.Left) || referencesThis(v.Right)
	case *ast.LogicalExpression:
		return referencesThis(v.Left) || referencesThis(v.Right)
	case *ast.ConditionalExpression:
		return referencesThis(v.Test) || referencesThis(v.Consequent) || referencesThis(v.Alternate)
	case *ast.ArrayExpression:
		for _, el := range v.Elements {
			if referencesThis(el) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func blockReferencesThis(b *ast.BlockStatement) bool {
	for _, s := range b.Body {
		if referencesThis(s) {
			return true
		}
	}
	return false
}
