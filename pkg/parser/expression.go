package parser

import (
	"strings"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// parseExpression parses a full Expression, including the comma operator
// (ECMA-262's Expression production, as opposed to AssignmentExpression).
func (p *Parser) parseExpression() ast.Expression {
	start := p.cur.Span.Start
	first := p.parseAssignmentExpression()
	if !p.at(token.Comma) {
		return first
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{first}}
	for p.eat(token.Comma) {
		seq.Expressions = append(seq.Expressions, p.parseAssignmentExpression())
	}
	seq.SetSpan(p.spanFrom(start))
	return seq
}

// assignmentOps maps an assignment punctuator to its operator spelling.
var assignmentOps = map[token.Kind]string{
	token.Eq: "=", token.PlusEq: "+=", token.MinusEq: "-=", token.StarEq: "*=",
	token.SlashEq: "/=", token.PercentEq: "%=", token.StarStarEq: "**=",
	token.LtLtEq: "<<=", token.GtGtEq: ">>=", token.GtGtGtEq: ">>>=",
	token.AmpEq: "&=", token.PipeEq: "|=", token.CaretEq: "^=",
	token.AmpAmpEq: "&&=", token.PipePipeEq: "||=", token.QuestionQuestionEq: "??=",
}

// parseAssignmentExpression is the cover-grammar entry point: arrow
// function parameter lists and parenthesized/array/object expressions
// share a prefix, so this parses eagerly as an expression first and
// reinterprets via exprToPattern only once `=>` (or, for destructuring
// assignment, a following `=`) confirms the binding-target reading.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	start := p.cur.Span.Start

	if p.at(token.KwYield) && p.ctx.has(CtxYield) {
		return p.parseYieldExpression()
	}

	if arrow, ok := p.tryParseArrowFunction(); ok {
		return arrow
	}

	left := p.parseConditionalExpression()

	if op, ok := assignmentOps[p.cur.Kind]; ok {
		p.advance()
		var target ast.Node = left
		if op == "=" {
			switch left.(type) {
			case *ast.ArrayExpression, *ast.ObjectExpression:
				target = p.exprToPattern(left)
			}
		}
		right := p.parseAssignmentExpression()
		n := &ast.AssignmentExpression{Operator: op, Left: target, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	return left
}

func (p *Parser) parseYieldExpression() ast.Expression {
	start := p.cur.Span.Start
	p.advance()
	delegate := p.eat(token.Star)
	var arg ast.Expression
	if !p.cur.NewlineBefore && !p.at(token.Semicolon) && !p.at(token.RBrace) &&
		!p.at(token.RParen) && !p.at(token.RBracket) && !p.at(token.Comma) &&
		!p.at(token.Colon) && !p.at(token.EOF) {
		arg = p.parseAssignmentExpression()
	}
	n := &ast.YieldExpression{Argument: arg, Delegate: delegate}
	n.SetSpan(p.spanFrom(start))
	return n
}

// tryParseArrowFunction recognizes the ArrowFunction entry shapes this
// parser handles inline: a single bare identifier followed by `=>`, and
// the `async`-prefixed forms. A `(`-prefixed group is left to
// parsePrimaryExpression, whose parseParenGroup call resolves the
// parenthesized-expression/arrow-parameter-list cover grammar in one
// pass without backtracking (this token stream has no
// checkpoint/restore, so every group is parsed exactly once and
// reinterpreted by inspecting what follows the closing `)`); parsed
// there, a parenthesized expression still takes member, call and
// operator tails.
func (p *Parser) tryParseArrowFunction() (ast.Expression, bool) {
	start := p.cur.Span.Start
	if p.identLike(p.cur.Kind) && p.cur.Kind != token.KwAsync && p.peek().Kind == token.Arrow {
		id := p.parseBindingIdentifier()
		return p.finishArrowFunction(start, []ast.Pattern{id}, false), true
	}
	if p.at(token.KwAsync) && !p.peek().NewlineBefore &&
		(p.peek().Kind == token.LParen || (p.identLike(p.peek().Kind) && p.peek().Kind != token.KwAsync)) {
		p.advance()
		asyncEnd := p.prevEnd
		if p.at(token.LParen) {
			return p.parseParenGroup(start, true, asyncEnd), true
		}
		id := p.parseBindingIdentifier()
		if p.at(token.Arrow) && !p.cur.NewlineBefore {
			return p.finishArrowFunction(start, []ast.Pattern{id}, true), true
		}
		// `async` followed directly by another identifier with no `=>`
		// has no valid non-arrow reading (ASI can't apply without a line
		// break), so this is malformed input; report it and recover by
		// treating `async` alone as the expression, leaving `id`'s token
		// already consumed for the next statement boundary to resync at.
		p.errorf(diagnostic.CodeUnexpectedToken, id.Span(), "expected '=>' after async arrow parameter")
		callee := &ast.Identifier{Name: "async"}
		callee.SetSpan(span.New(start, asyncEnd))
		return callee, true
	}
	return nil, false
}

// parseParenGroup parses a `(`-prefixed group exactly once: a
// comma-separated list of assignment expressions (with `...expr` as a
// SpreadElement, and, in TypeScript, an optional `: Type` discarded per
// element), then decides what the group was based on what follows the
// closing `)`:
//   - `=>` (or, in TypeScript, `: ReturnType =>`): an arrow function,
//     converting each element to a binding pattern via exprToPattern.
//   - anything else, with asyncPrefix set: an `async` identifier called
//     with this group as its arguments.
//   - anything else, otherwise: a parenthesized expression (or, with
//     more than one element, a parenthesized comma/SequenceExpression).
func (p *Parser) parseParenGroup(groupStart uint32, asyncPrefix bool, calleeEnd uint32) ast.Expression {
	p.expect(token.LParen)
	var elems []ast.Expression
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			spStart := p.cur.Span.Start
			p.advance()
			arg := p.parseAssignmentExpression()
			p.skipOptionalTypeAnnotation()
			sp := &ast.SpreadElement{Argument: arg}
			sp.SetSpan(p.spanFrom(spStart))
			elems = append(elems, sp)
			break // rest/spread is always the final element either way
		}
		el := p.parseAssignmentExpression()
		p.skipOptionalTypeAnnotation()
		elems = append(elems, el)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)

	if p.opts.TypeScript && p.at(token.Colon) {
		p.advance()
		p.parseTypeAnnotation()
	}

	if p.at(token.Arrow) && !p.cur.NewlineBefore {
		params := make([]ast.Pattern, len(elems))
		for i, el := range elems {
			if sp, ok := el.(*ast.SpreadElement); ok {
				rest := &ast.RestElement{Argument: p.exprToPattern(sp.Argument)}
				rest.SetSpan(sp.Span())
				params[i] = rest
			} else {
				params[i] = p.exprToPattern(el)
			}
		}
		return p.finishArrowFunction(groupStart, params, asyncPrefix)
	}

	if asyncPrefix {
		callee := &ast.Identifier{Name: "async"}
		callee.SetSpan(span.New(groupStart, calleeEnd))
		n := &ast.CallExpression{Callee: callee, Args: elems}
		n.SetSpan(p.spanFrom(groupStart))
		return p.parseCallMemberTail(groupStart, n)
	}

	switch len(elems) {
	case 0:
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "unexpected empty parentheses")
		e := &ast.ErrorExpression{}
		e.SetSpan(p.spanFrom(groupStart))
		return e
	case 1:
		n := &ast.ParenthesizedExpression{Expr: elems[0]}
		n.SetSpan(p.spanFrom(groupStart))
		return n
	default:
		seq := &ast.SequenceExpression{Expressions: elems}
		seq.SetSpan(p.spanFrom(groupStart))
		n := &ast.ParenthesizedExpression{Expr: seq}
		n.SetSpan(p.spanFrom(groupStart))
		return n
	}
}

func (p *Parser) finishArrowFunction(start uint32, params []ast.Pattern, async bool) *ast.ArrowFunctionExpression {
	p.expect(token.Arrow)
	ctx := p.ctx
	p.ctx = p.ctx.with(CtxReturn).without(CtxYield)
	if async {
		p.ctx = p.ctx.with(CtxAwait)
	} else {
		p.ctx = p.ctx.without(CtxAwait)
	}
	n := &ast.ArrowFunctionExpression{Params: params, Async: async}
	if p.at(token.LBrace) {
		n.Body = p.parseBlockStatement()
	} else {
		n.Body = p.parseAssignmentExpression()
		n.ExpressionBody = true
	}
	p.ctx = ctx
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	start := p.cur.Span.Start
	test := p.parseBinaryExpression(1)
	if !p.eat(token.Question) {
		return test
	}
	ctx := p.ctx
	p.ctx = p.ctx.without(CtxNoIn)
	consequent := p.parseAssignmentExpression()
	p.ctx = ctx
	p.expect(token.Colon)
	alternate := p.parseAssignmentExpression()
	n := &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
	n.SetSpan(p.spanFrom(start))
	return n
}

// binOp describes one binary/logical operator's precedence tier and the
// node shape it builds; isLogical routes `&&`/`||`/`??` to
// LogicalExpression so short-circuit evaluation stays distinguishable
// from a plain BinaryExpression at the AST level.
type binOp struct {
	prec      int
	rightAssn bool
	isLogical bool
	text      string
}

func (p *Parser) binaryOpInfo() (binOp, bool) {
	switch p.cur.Kind {
	case token.PipePipe:
		return binOp{1, false, true, "||"}, true
	case token.QuestionQuestion:
		return binOp{1, false, true, "??"}, true
	case token.AmpAmp:
		return binOp{2, false, true, "&&"}, true
	case token.Pipe:
		return binOp{3, false, false, "|"}, true
	case token.Caret:
		return binOp{4, false, false, "^"}, true
	case token.Amp:
		return binOp{5, false, false, "&"}, true
	case token.EqEq:
		return binOp{6, false, false, "=="}, true
	case token.NotEq:
		return binOp{6, false, false, "!="}, true
	case token.EqEqEq:
		return binOp{6, false, false, "==="}, true
	case token.NotEqEq:
		return binOp{6, false, false, "!=="}, true
	case token.Lt:
		return binOp{7, false, false, "<"}, true
	case token.Gt:
		return binOp{7, false, false, ">"}, true
	case token.LtEq:
		return binOp{7, false, false, "<="}, true
	case token.GtEq:
		return binOp{7, false, false, ">="}, true
	case token.KwInstanceof:
		return binOp{7, false, false, "instanceof"}, true
	case token.KwIn:
		if p.ctx.has(CtxNoIn) {
			return binOp{}, false
		}
		return binOp{7, false, false, "in"}, true
	case token.KwAs:
		if p.opts.TypeScript {
			return binOp{7, false, false, "as"}, true
		}
		return binOp{}, false
	case token.KwSatisfies:
		if p.opts.TypeScript {
			return binOp{7, false, false, "satisfies"}, true
		}
		return binOp{}, false
	case token.LtLt:
		return binOp{8, false, false, "<<"}, true
	case token.GtGt:
		return binOp{8, false, false, ">>"}, true
	case token.GtGtGt:
		return binOp{8, false, false, ">>>"}, true
	case token.Plus:
		return binOp{9, false, false, "+"}, true
	case token.Minus:
		return binOp{9, false, false, "-"}, true
	case token.Star:
		return binOp{10, false, false, "*"}, true
	case token.Slash:
		return binOp{10, false, false, "/"}, true
	case token.Percent:
		return binOp{10, false, false, "%"}, true
	case token.StarStar:
		return binOp{11, true, false, "**"}, true
	default:
		return binOp{}, false
	}
}

// parseBinaryExpression implements precedence climbing over every
// binary/logical operator tier, plus the TypeScript `as`/`satisfies`
// type-cast operators which sit at the same tier as relational
// comparisons.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	start := p.cur.Span.Start
	left := p.parseUnaryExpression()
	for {
		info, ok := p.binaryOpInfo()
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()

		if info.text == "as" || info.text == "satisfies" {
			typ := p.parseTypeAnnotation()
			if info.text == "as" {
				n := &ast.TSAsExpression{Expr: left, TypeAnnot: typ}
				n.SetSpan(p.spanFrom(start))
				left = n
			} else {
				n := &ast.TSSatisfiesExpression{Expr: left, TypeAnnot: typ}
				n.SetSpan(p.spanFrom(start))
				left = n
			}
			continue
		}

		nextMin := info.prec + 1
		if info.rightAssn {
			nextMin = info.prec
		}
		right := p.parseBinaryExpression(nextMin)
		if info.isLogical {
			n := &ast.LogicalExpression{Operator: info.text, Left: left, Right: right}
			n.SetSpan(p.spanFrom(start))
			left = n
		} else {
			n := &ast.BinaryExpression{Operator: info.text, Left: left, Right: right}
			n.SetSpan(p.spanFrom(start))
			left = n
		}
	}
}

var prefixUnaryOps = map[token.Kind]string{
	token.Plus: "+", token.Minus: "-", token.Bang: "!", token.Tilde: "~",
	token.KwTypeof: "typeof", token.KwVoid: "void", token.KwDelete: "delete",
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	start := p.cur.Span.Start

	if op, ok := prefixUnaryOps[p.cur.Kind]; ok {
		p.advance()
		arg := p.parseUnaryExpression()
		n := &ast.UnaryExpression{Operator: ast.UnaryOperator(op), Argument: arg}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	if p.at(token.KwAwait) && p.ctx.has(CtxAwait) {
		p.advance()
		arg := p.parseUnaryExpression()
		n := &ast.AwaitExpression{Argument: arg}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	if p.at(token.PlusPlus) || p.at(token.MinusMinus) {
		op := "++"
		if p.at(token.MinusMinus) {
			op = "--"
		}
		p.advance()
		arg := p.parseUnaryExpression()
		n := &ast.UpdateExpression{Operator: op, Argument: arg, Prefix: true}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parsePostfixExpression() ast.Expression {
	start := p.cur.Span.Start
	expr := p.parseLeftHandSideExpression()
	if !p.cur.NewlineBefore && (p.at(token.PlusPlus) || p.at(token.MinusMinus)) {
		op := "++"
		if p.at(token.MinusMinus) {
			op = "--"
		}
		p.advance()
		n := &ast.UpdateExpression{Operator: op, Argument: expr, Prefix: false}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	if p.opts.TypeScript && p.at(token.Bang) && !p.cur.NewlineBefore {
		p.advance()
		n := &ast.TSNonNullExpression{Expr: expr}
		n.SetSpan(p.spanFrom(start))
		return p.parseCallMemberTail(start, n)
	}
	return expr
}

// parseLeftHandSideExpression parses NewExpression/CallExpression/
// MemberExpression as one combined left-to-right chain: a primary
// expression (or a `new` expression) followed by any run of `.prop`,
// `[expr]`, `?.`, `(args)`, and tagged-template suffixes.
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	start := p.cur.Span.Start
	var expr ast.Expression
	if p.at(token.KwNew) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallMemberTail(start, expr)
}

func (p *Parser) parseNewExpression() ast.Expression {
	start := p.cur.Span.Start
	p.advance()
	if p.at(token.Dot) {
		p.advance()
		name := p.cur.Value
		p.advance()
		id := &ast.Identifier{Name: "new." + name}
		id.SetSpan(p.spanFrom(start))
		return id
	}
	var callee ast.Expression
	if p.at(token.KwNew) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	callee = p.parseMemberTailOnly(callee)
	n := &ast.NewExpression{Callee: callee}
	if p.at(token.LParen) {
		n.Args = p.parseArguments()
	}
	n.SetSpan(p.spanFrom(start))
	return n
}

// parseMemberTailOnly consumes `.prop`/`[expr]` suffixes but not call
// arguments, since a `new` callee binds tighter than a following `(...)`
// (that parenthesized group belongs to the NewExpression itself, not a
// nested CallExpression).
func (p *Parser) parseMemberTailOnly(expr ast.Expression) ast.Expression {
	start := expr.Span().Start
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			prop := p.parseIdentifierName()
			n := &ast.MemberExpression{Object: expr, Property: prop, Computed: false}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		case p.at(token.LBracket):
			p.advance()
			prop := p.parseExpression()
			p.expect(token.RBracket)
			n := &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallMemberTail(start uint32, expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			prop := p.parseIdentifierName()
			n := &ast.MemberExpression{Object: expr, Property: prop, Computed: false}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		case p.at(token.QuestionDot):
			p.advance()
			switch {
			case p.at(token.LParen):
				n := &ast.CallExpression{Callee: expr, Args: p.parseArguments(), Optional: true}
				n.SetSpan(span.New(start, p.prevEnd))
				expr = n
			case p.at(token.LBracket):
				p.advance()
				prop := p.parseExpression()
				p.expect(token.RBracket)
				n := &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Optional: true}
				n.SetSpan(span.New(start, p.prevEnd))
				expr = n
			default:
				prop := p.parseIdentifierName()
				n := &ast.MemberExpression{Object: expr, Property: prop, Computed: false, Optional: true}
				n.SetSpan(span.New(start, p.prevEnd))
				expr = n
			}
		case p.at(token.LBracket):
			p.advance()
			prop := p.parseExpression()
			p.expect(token.RBracket)
			n := &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		case p.at(token.LParen):
			n := &ast.CallExpression{Callee: expr, Args: p.parseArguments()}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		case p.at(token.TemplateNoSub) || p.at(token.TemplateHead):
			lit := p.parseTemplateLiteral()
			n := &ast.TaggedTemplateExpression{Tag: expr, Literal: lit}
			n.SetSpan(span.New(start, p.prevEnd))
			expr = n
		default:
			return expr
		}
	}
}

func (p *Parser) parseIdentifierName() *ast.Identifier {
	start := p.cur.Span.Start
	if p.at(token.PrivateName) {
		name := p.cur.Value
		p.advance()
		id := &ast.Identifier{Name: "#" + name}
		id.SetSpan(p.spanFrom(start))
		return id
	}
	name := p.cur.Value
	if !p.identLike(p.cur.Kind) && p.cur.Kind < token.LBrace {
		// Any keyword spelling is a legal property name after `.`.
	}
	p.advance()
	id := &ast.Identifier{Name: name}
	id.SetSpan(p.spanFrom(start))
	return id
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.LParen)
	var args []ast.Expression
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			start := p.cur.Span.Start
			p.advance()
			arg := p.parseAssignmentExpression()
			sp := &ast.SpreadElement{Argument: arg}
			sp.SetSpan(p.spanFrom(start))
			args = append(args, sp)
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

// --- primary expressions -------------------------------------------------

func (p *Parser) parsePrimaryExpression() ast.Expression {
	start := p.cur.Span.Start

	if p.opts.JSX && p.at(token.Lt) {
		return p.parseJSXElementOrFragment()
	}

	switch p.cur.Kind {
	case token.KwThis:
		p.advance()
		n := &ast.ThisExpression{}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.KwSuper:
		p.advance()
		n := &ast.SuperExpression{}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.KwTrue, token.KwFalse:
		v := p.cur.Kind == token.KwTrue
		p.advance()
		n := &ast.BooleanLiteral{Value: v}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.KwNull:
		p.advance()
		n := &ast.NullLiteral{}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.StringLit:
		v := p.cur.Value
		p.advance()
		n := &ast.StringLiteral{Value: v}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.NumericLit:
		raw := p.cur.Value
		num := p.cur.Num
		p.advance()
		if strings.HasSuffix(raw, "n") {
			n := &ast.BigIntLiteral{Raw: strings.TrimSuffix(raw, "n")}
			n.SetSpan(p.spanFrom(start))
			return n
		}
		n := &ast.NumericLiteral{Value: num, Raw: raw}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.RegexLit:
		raw := p.cur.Value
		p.advance()
		last := strings.LastIndex(raw, "/")
		n := &ast.RegExpLiteral{Pattern: raw[1:last], Flags: raw[last+1:]}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.TemplateNoSub, token.TemplateHead:
		return p.parseTemplateLiteral()
	case token.PrivateName:
		name := p.cur.Value
		p.advance()
		n := &ast.PrivateIdentifier{Name: name}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.LParen:
		return p.parseParenGroup(start, false, start)
	case token.LBracket:
		return p.parseArrayExpression()
	case token.LBrace:
		return p.parseObjectExpression()
	case token.KwFunction:
		return p.parseFunctionExpressionForm(false)
	case token.KwAsync:
		if p.peek().Kind == token.KwFunction && !p.peek().NewlineBefore {
			p.advance()
			return p.parseFunctionExpressionForm(true)
		}
	case token.KwClass:
		return p.parseClassRest(false)
	case token.At:
		p.skipDecorators()
		return p.parseClassRest(false)
	case token.DotDotDot:
		// Only reachable inside a cover-grammar position (array/object
		// literal elements handle `...` themselves); a bare `...` in
		// expression position is a syntax error.
	}

	if p.identLike(p.cur.Kind) {
		return p.parseBindingIdentifier()
	}

	p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "unexpected token %s", p.cur.Kind)
	errExpr := &ast.ErrorExpression{}
	if !p.at(token.EOF) {
		p.advance()
	}
	errExpr.SetSpan(p.spanFrom(start))
	return errExpr
}

func (p *Parser) parseFunctionExpressionForm(async bool) *ast.Function {
	start := p.cur.Span.Start
	p.expect(token.KwFunction)
	generator := p.eat(token.Star)
	var id *ast.Identifier
	if p.identLike(p.cur.Kind) {
		id = p.parseBindingIdentifier()
	}
	return p.parseFunctionRest(start, id, async, generator)
}

func (p *Parser) parseArrayExpression() *ast.ArrayExpression {
	start := p.cur.Span.Start
	p.expect(token.LBracket)
	n := &ast.ArrayExpression{}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			n.Elements = append(n.Elements, nil)
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			elStart := p.cur.Span.Start
			p.advance()
			sp := &ast.SpreadElement{Argument: p.parseAssignmentExpression()}
			sp.SetSpan(p.spanFrom(elStart))
			n.Elements = append(n.Elements, sp)
		} else {
			n.Elements = append(n.Elements, p.parseAssignmentExpression())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseObjectExpression() *ast.ObjectExpression {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	n := &ast.ObjectExpression{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		n.Properties = append(n.Properties, p.parseObjectMember())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseObjectMember() ast.Node {
	start := p.cur.Span.Start
	if p.at(token.DotDotDot) {
		p.advance()
		sp := &ast.SpreadElement{Argument: p.parseAssignmentExpression()}
		sp.SetSpan(p.spanFrom(start))
		return sp
	}

	async := false
	if p.at(token.KwAsync) && p.peek().Kind != token.Colon && p.peek().Kind != token.Comma &&
		p.peek().Kind != token.RBrace && p.peek().Kind != token.LParen && !p.peek().NewlineBefore {
		async = true
		p.advance()
	}
	generator := p.eat(token.Star)

	kind := ast.PropertyInit
	if (p.at(token.KwGet) || p.at(token.KwSet)) && p.peek().Kind != token.Colon &&
		p.peek().Kind != token.Comma && p.peek().Kind != token.RBrace && p.peek().Kind != token.LParen {
		if p.at(token.KwGet) {
			kind = ast.PropertyGet
		} else {
			kind = ast.PropertySet
		}
		p.advance()
	}

	key, computed := p.parsePropertyKey()

	if p.at(token.LParen) || generator || async || kind != ast.PropertyInit {
		if kind == ast.PropertyInit {
			kind = ast.PropertyMethod
		}
		fn := p.parseFunctionRest(start, nil, async, generator)
		prop := &ast.Property{Key: key, Value: fn, Kind_: kind, Computed: computed}
		prop.SetSpan(p.spanFrom(start))
		return prop
	}

	prop := &ast.Property{Key: key, Computed: computed, Kind_: ast.PropertyInit}
	if p.eat(token.Colon) {
		prop.Value = p.parseAssignmentExpression()
	} else if p.eat(token.Eq) {
		// Shorthand with a default, e.g. `{ x = 1 }` — only legal inside
		// the destructuring-assignment cover grammar; modeled as an
		// AssignmentExpression so exprToPattern can still recover the
		// default when this object literal turns out to be a pattern.
		id, _ := key.(*ast.Identifier)
		def := p.parseAssignmentExpression()
		ae := &ast.AssignmentExpression{Operator: "=", Left: id, Right: def}
		ae.SetSpan(span.New(start, p.prevEnd))
		prop.Value = ae
		prop.Shorthand = true
	} else {
		id, ok := key.(*ast.Identifier)
		if !ok {
			p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "expected ':' after property key")
			id = &ast.Identifier{}
		}
		prop.Value = id
		prop.Shorthand = true
	}
	prop.SetSpan(p.spanFrom(start))
	return prop
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	start := p.cur.Span.Start
	n := &ast.TemplateLiteral{}
	if p.at(token.TemplateNoSub) {
		n.Quasis = append(n.Quasis, ast.TemplateElement{Cooked: p.cur.Value, Raw: p.cur.Value, Tail: true})
		p.advance()
		n.SetSpan(p.spanFrom(start))
		return n
	}
	n.Quasis = append(n.Quasis, ast.TemplateElement{Cooked: p.cur.Value, Raw: p.cur.Value})
	p.advance() // TemplateHead
	for {
		n.Expressions = append(n.Expressions, p.parseExpression())
		// Advancing past the substitution's closing `}` goes through
		// advance()'s brace-tracking protocol, which fetches the next
		// TemplateMiddle/TemplateTail in its place via ContinueTemplate.
		if p.at(token.RBrace) {
			p.advance()
		}
		if !p.at(token.TemplateMiddle) && !p.at(token.TemplateTail) {
			p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "expected template continuation")
			break
		}
		tail := p.at(token.TemplateTail)
		n.Quasis = append(n.Quasis, ast.TemplateElement{Cooked: p.cur.Value, Raw: p.cur.Value, Tail: tail})
		p.advance()
		if tail {
			break
		}
	}
	n.SetSpan(p.spanFrom(start))
	return n
}
