package lint

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
)

// L0xxx codes are reserved for this package's two worked-example rules;
// a real rule catalogue would mint its own per-rule codes.
const (
	noIrregularWhitespaceCode diagnostic.Code = "L0001"
	importOrderCode           diagnostic.Code = "L0002"
)

// RuleContext wraps the ancestor chain ast.Walk hands a visitor at each
// node, plus the helpers an AST-walking rule (as opposed to a
// side-table rule) typically needs.
type RuleContext struct {
	Ancestors []ast.Node
}

// IsInsideIIFE reports whether the current node is lexically within an
// immediately-invoked function expression: a *ast.Function or
// *ast.ArrowFunctionExpression that is itself the Callee of a
// *ast.CallExpression, possibly parenthesized.
func (r RuleContext) IsInsideIIFE() bool {
	for i := len(r.Ancestors) - 1; i >= 0; i-- {
		fn := r.Ancestors[i]
		switch fn.(type) {
		case *ast.Function, *ast.ArrowFunctionExpression:
		default:
			continue
		}
		j := i - 1
		for j >= 0 {
			if _, ok := r.Ancestors[j].(*ast.ParenthesizedExpression); !ok {
				break
			}
			j--
		}
		if j < 0 {
			return false
		}
		if call, ok := r.Ancestors[j].(*ast.CallExpression); ok {
			return unwrapParenthesized(call.Callee) == fn
		}
		return false
	}
	return false
}

// EnclosingFunctionName returns the name of the nearest enclosing named
// function declaration or function expression, or "" if the nearest
// enclosing function is anonymous or there is none.
func (r RuleContext) EnclosingFunctionName() string {
	for i := len(r.Ancestors) - 1; i >= 0; i-- {
		if fn, ok := r.Ancestors[i].(*ast.Function); ok {
			if fn.ID != nil {
				return fn.ID.Name
			}
			return ""
		}
		if _, ok := r.Ancestors[i].(*ast.ArrowFunctionExpression); ok {
			return ""
		}
	}
	return ""
}

func unwrapParenthesized(n ast.Node) ast.Node {
	for {
		p, ok := n.(*ast.ParenthesizedExpression)
		if !ok {
			return n
		}
		n = p.Expr
	}
}

// NoIrregularWhitespace flags every code point in LintContext.
// IrregularWhitespace: Unicode whitespace other than the ASCII set and
// the line terminators ECMA-262 recognises, which silently changes
// token boundaries in a way that is invisible in most editors.
type NoIrregularWhitespace struct{}

func (NoIrregularWhitespace) Name() string { return "no-irregular-whitespace" }

func (NoIrregularWhitespace) Run(ctx *LintContext) {
	for _, sp := range ctx.IrregularWhitespace {
		ctx.Report(noIrregularWhitespaceCode, sp, "irregular whitespace character")
	}
}

// ImportOrder is a worked example of an AST-walking rule: it flags an
// ImportDeclaration whose source string sorts after a later import's,
// i.e. imports not in ascending lexical order by module specifier.
type ImportOrder struct{}

func (ImportOrder) Name() string { return "import/order" }

func (ImportOrder) Run(ctx *LintContext) {
	var imports []*ast.ImportDeclaration
	for _, stmt := range ctx.Program.Body {
		if imp, ok := stmt.(*ast.ImportDeclaration); ok {
			imports = append(imports, imp)
		}
	}
	for i := 1; i < len(imports); i++ {
		if imports[i].Source < imports[i-1].Source {
			ctx.Report(importOrderCode, imports[i].Span(),
				"import %q should come before %q", imports[i].Source, imports[i-1].Source)
		}
	}
}
