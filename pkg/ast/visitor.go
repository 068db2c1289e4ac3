package ast

import "github.com/sandrolain/ecmatool/pkg/span"

// AstKind wraps a Node reference so callers get both its span and its
// dynamic type in one value, letting a generic traversal promote an
// opaque node into something that knows its own grammatical category
// . Synthetic helper structs (TemplateElement,
// ObjectPatternProperty, ...) have no Kind and so never appear here.
type AstKind struct {
	Node Node
}

// Span forwards to the wrapped node.
func (a AstKind) Span() span.Span { return a.Node.Span() }

// Kind forwards to the wrapped node.
func (a AstKind) Kind() Kind { return a.Node.Kind() }

// Visitor receives Enter/Leave calls in depth-first pre/post order as
// Walk descends through a Program.
// Implementations that only care about a subset of node kinds can type
// switch on the Node argument; Ancestors gives the chain of enclosing
// "has kind" nodes, outermost first, not including the current node.
type Visitor interface {
	Enter(n Node, ancestors []Node)
	Leave(n Node, ancestors []Node)
}

// Walk drives Visitor over program, maintaining the ancestor chain the
// spec requires visitors have access to at every entry point.
func Walk(program *Program, v Visitor) {
	w := &walker{visitor: v}
	w.walkProgram(program)
}

type walker struct {
	visitor   Visitor
	ancestors []Node
}

func (w *walker) enter(n Node) {
	w.visitor.Enter(n, w.ancestors)
	w.ancestors = append(w.ancestors, n)
}

func (w *walker) leave(n Node) {
	w.ancestors = w.ancestors[:len(w.ancestors)-1]
	w.visitor.Leave(n, w.ancestors)
}

func (w *walker) walkProgram(p *Program) {
	w.enter(p)
	for _, s := range p.Body {
		w.walkStatement(s)
	}
	w.leave(p)
}

func (w *walker) walkStatement(s Statement) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *BlockStatement:
		w.enter(n)
		for _, c := range n.Body {
			w.walkStatement(c)
		}
		w.leave(n)
	case *ExpressionStatement:
		w.enter(n)
		w.walkExpression(n.Expr)
		w.leave(n)
	case *IfStatement:
		w.enter(n)
		w.walkExpression(n.Test)
		w.walkStatement(n.Consequent)
		w.walkStatement(n.Alternate)
		w.leave(n)
	case *ForStatement:
		w.enter(n)
		if init, ok := n.Init.(Statement); ok {
			w.walkStatement(init)
		} else if init, ok := n.Init.(Expression); ok {
			w.walkExpression(init)
		}
		w.walkExpression(n.Test)
		w.walkExpression(n.Update)
		w.walkStatement(n.Body)
		w.leave(n)
	case *ForInStatement:
		w.enter(n)
		w.walkExpression(n.Right)
		w.walkStatement(n.Body)
		w.leave(n)
	case *ForOfStatement:
		w.enter(n)
		w.walkExpression(n.Right)
		w.walkStatement(n.Body)
		w.leave(n)
	case *WhileStatement:
		w.enter(n)
		w.walkExpression(n.Test)
		w.walkStatement(n.Body)
		w.leave(n)
	case *DoWhileStatement:
		w.enter(n)
		w.walkStatement(n.Body)
		w.walkExpression(n.Test)
		w.leave(n)
	case *SwitchStatement:
		w.enter(n)
		w.walkExpression(n.Discriminant)
		for _, c := range n.Cases {
			w.walkExpression(c.Test)
			for _, s := range c.Consequent {
				w.walkStatement(s)
			}
		}
		w.leave(n)
	case *ReturnStatement:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *ThrowStatement:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *TryStatement:
		w.enter(n)
		w.walkStatement(n.Block)
		if n.Handler != nil {
			w.walkStatement(n.Handler.Body)
		}
		w.walkStatement(n.Finalizer)
		w.leave(n)
	case *LabeledStatement:
		w.enter(n)
		w.walkStatement(n.Body)
		w.leave(n)
	case *WithStatement:
		w.enter(n)
		w.walkExpression(n.Object)
		w.walkStatement(n.Body)
		w.leave(n)
	case *VariableDeclaration:
		w.enter(n)
		for _, d := range n.Declarations {
			w.walkExpression(d.Init)
		}
		w.leave(n)
	case *Function:
		w.enter(n)
		w.walkStatement(n.Body)
		w.leave(n)
	case *Class:
		w.enter(n)
		w.walkExpression(n.SuperClass)
		w.leave(n)
	case *BreakStatement, *ContinueStatement, *EmptyStatement, *DebuggerStatement,
		*ImportDeclaration, *ExportAllDeclaration,
		*TSInterfaceDeclaration, *TSTypeAliasDeclaration, *TSEnumDeclaration:
		w.enter(n)
		w.leave(n)
	case *ExportNamedDeclaration:
		w.enter(n)
		if n.Declaration != nil {
			w.walkStatement(n.Declaration)
		}
		w.leave(n)
	case *ExportDefaultDeclaration:
		w.enter(n)
		if stmt, ok := n.Declaration.(Statement); ok {
			w.walkStatement(stmt)
		} else if expr, ok := n.Declaration.(Expression); ok {
			w.walkExpression(expr)
		}
		w.leave(n)
	case *ErrorStatement:
		w.enter(n)
		w.leave(n)
	}
}

func (w *walker) walkExpression(e Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *BinaryExpression:
		w.enter(n)
		w.walkExpression(n.Left)
		w.walkExpression(n.Right)
		w.leave(n)
	case *LogicalExpression:
		w.enter(n)
		w.walkExpression(n.Left)
		w.walkExpression(n.Right)
		w.leave(n)
	case *UnaryExpression:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *UpdateExpression:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *AssignmentExpression:
		w.enter(n)
		if expr, ok := n.Left.(Expression); ok {
			w.walkExpression(expr)
		}
		w.walkExpression(n.Right)
		w.leave(n)
	case *ConditionalExpression:
		w.enter(n)
		w.walkExpression(n.Test)
		w.walkExpression(n.Consequent)
		w.walkExpression(n.Alternate)
		w.leave(n)
	case *CallExpression:
		w.enter(n)
		w.walkExpression(n.Callee)
		for _, a := range n.Args {
			w.walkExpression(a)
		}
		w.leave(n)
	case *NewExpression:
		w.enter(n)
		w.walkExpression(n.Callee)
		for _, a := range n.Args {
			w.walkExpression(a)
		}
		w.leave(n)
	case *MemberExpression:
		w.enter(n)
		w.walkExpression(n.Object)
		if n.Computed {
			w.walkExpression(n.Property)
		}
		w.leave(n)
	case *SequenceExpression:
		w.enter(n)
		for _, ex := range n.Expressions {
			w.walkExpression(ex)
		}
		w.leave(n)
	case *ArrayExpression:
		w.enter(n)
		for _, el := range n.Elements {
			w.walkExpression(el)
		}
		w.leave(n)
	case *ObjectExpression:
		w.enter(n)
		for _, p := range n.Properties {
			if prop, ok := p.(*Property); ok {
				w.walkExpression(prop.Value)
			} else if spread, ok := p.(*SpreadElement); ok {
				w.walkExpression(spread.Argument)
			}
		}
		w.leave(n)
	case *ArrowFunctionExpression:
		w.enter(n)
		if body, ok := n.Body.(Statement); ok {
			w.walkStatement(body)
		} else if body, ok := n.Body.(Expression); ok {
			w.walkExpression(body)
		}
		w.leave(n)
	case *Function:
		w.enter(n)
		w.walkStatement(n.Body)
		w.leave(n)
	case *Class:
		w.enter(n)
		w.walkExpression(n.SuperClass)
		w.leave(n)
	case *SpreadElement:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *YieldExpression:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *AwaitExpression:
		w.enter(n)
		w.walkExpression(n.Argument)
		w.leave(n)
	case *ParenthesizedExpression:
		w.enter(n)
		w.walkExpression(n.Expr)
		w.leave(n)
	case *TaggedTemplateExpression:
		w.enter(n)
		w.walkExpression(n.Tag)
		for _, e := range n.Literal.Expressions {
			w.walkExpression(e)
		}
		w.leave(n)
	case *TemplateLiteral:
		w.enter(n)
		for _, e := range n.Expressions {
			w.walkExpression(e)
		}
		w.leave(n)
	case *TSAsExpression:
		w.enter(n)
		w.walkExpression(n.Expr)
		w.leave(n)
	case *TSSatisfiesExpression:
		w.enter(n)
		w.walkExpression(n.Expr)
		w.leave(n)
	case *TSNonNullExpression:
		w.enter(n)
		w.walkExpression(n.Expr)
		w.leave(n)
	case *JSXElement:
		w.enter(n)
		for _, c := range n.Children {
			w.walkJSXChild(c)
		}
		w.leave(n)
	case *JSXFragment:
		w.enter(n)
		for _, c := range n.Children {
			w.walkJSXChild(c)
		}
		w.leave(n)
	default:
		// Identifier, literals, ThisExpression, SuperExpression, and other
		// childless expressions need only the Enter/Leave pair.
		w.enter(n)
		w.leave(n)
	}
}

func (w *walker) walkJSXChild(c JSXChild) {
	switch n := c.(type) {
	case *JSXElement:
		w.walkExpression(n)
	case *JSXFragment:
		w.walkExpression(n)
	case *JSXExpressionContainer:
		w.enter(n)
		w.walkExpression(n.Expression)
		w.leave(n)
	default:
		w.enter(c)
		w.leave(c)
	}
}
