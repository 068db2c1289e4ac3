package parser

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// parseProgram is the parser's single entry point: a Program is a
// statement list run to EOF, with a leading run of bare string-literal
// expression statements recorded as directives (ECMA-262 §12.1's
// Directive Prologue).
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	if p.opts.Module {
		prog.Kind_ = ast.SourceModule
	} else {
		prog.Kind_ = ast.SourceScript
	}
	start := p.cur.Span.Start
	for !p.at(token.EOF) {
		before := p.cur.Span.Start
		prog.Body = append(prog.Body, p.parseStatement())
		if p.cur.Span.Start == before && !p.at(token.EOF) {
			// A statement production consumed nothing (an unrecognized
			// token at statement position); force progress so a single
			// malformed token can't stall the parse forever.
			p.advance()
		}
	}
	prog.Directives = leadingDirectives(prog.Body)
	for _, d := range prog.Directives {
		if d == "use strict" {
			p.ctx = p.ctx.with(CtxStrict)
		}
	}
	prog.SetSpan(span.New(start, uint32(len(p.source))))
	return prog
}

// leadingDirectives collects the run of leading statements that are a
// bare string-literal expression (no parentheses, no member access),
// which is all ECMA-262 recognizes as a directive.
func leadingDirectives(body []ast.Statement) []string {
	var out []string
	for _, s := range body {
		es, ok := s.(*ast.ExpressionStatement)
		if !ok {
			break
		}
		sl, ok := es.Expr.(*ast.StringLiteral)
		if !ok {
			break
		}
		out = append(out, sl.Value)
	}
	return out
}

// parseStatement dispatches on the current token to one production per
// ECMA-262 Statement alternative, falling through to a labeled statement
// or a bare expression statement when nothing more specific matches.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LBrace:
		return p.parseBlockStatement()
	case token.Semicolon:
		return p.parseEmptyStatement()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDo:
		return p.parseDoWhileStatement()
	case token.KwSwitch:
		return p.parseSwitchStatement()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwBreak:
		return p.parseBreakStatement()
	case token.KwContinue:
		return p.parseContinueStatement()
	case token.KwThrow:
		return p.parseThrowStatement()
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwDebugger:
		return p.parseDebuggerStatement()
	case token.KwWith:
		return p.parseWithStatement()
	case token.KwVar:
		return p.parseVariableStatement()
	case token.KwConst:
		if p.opts.TypeScript && p.peek().Kind == token.KwEnum {
			p.advance()
			return p.parseEnumDeclaration(true)
		}
		return p.parseVariableStatement()
	case token.KwLet:
		if p.startsLexicalDeclaration() {
			return p.parseVariableStatement()
		}
	case token.KwUsing:
		if p.startsUsingDeclaration() {
			return p.parseVariableStatement()
		}
	case token.KwFunction:
		return p.parseFunctionDeclaration(false)
	case token.KwAsync:
		if p.isAsyncFunctionStart() {
			p.advance()
			return p.parseFunctionDeclaration(true)
		}
	case token.KwClass:
		return p.parseClassDeclaration()
	case token.At:
		return p.parseDecoratedDeclaration()
	case token.KwImport:
		if p.opts.Module && p.peek().Kind != token.LParen && p.peek().Kind != token.Dot {
			return p.parseImportDeclaration()
		}
	case token.KwExport:
		if p.opts.Module {
			return p.parseExportDeclaration()
		}
	case token.KwInterface:
		if p.opts.TypeScript {
			return p.parseInterfaceDeclaration()
		}
	case token.KwType:
		if p.opts.TypeScript && p.peek().Kind != token.Eq && p.identLike(p.peek().Kind) {
			return p.parseTypeAliasDeclaration()
		}
	case token.KwEnum:
		return p.parseEnumDeclaration(false)
	case token.KwDeclare:
		if p.opts.TypeScript {
			return p.parseAmbientDeclaration()
		}
	}

	if p.identLike(p.cur.Kind) && p.peek().Kind == token.Colon {
		return p.parseLabeledStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	blk := &ast.BlockStatement{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.cur.Span.Start
		blk.Body = append(blk.Body, p.parseStatement())
		if p.cur.Span.Start == before && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	blk.SetSpan(p.spanFrom(start))
	return blk
}

func (p *Parser) parseEmptyStatement() *ast.EmptyStatement {
	start := p.cur.Span.Start
	p.advance()
	n := &ast.EmptyStatement{}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseDebuggerStatement() *ast.DebuggerStatement {
	start := p.cur.Span.Start
	p.advance()
	p.consumeSemicolon()
	n := &ast.DebuggerStatement{}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.cur.Span.Start
	p.advance()
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expect(token.RParen)
	consequent := p.parseStatement()
	var alternate ast.Statement
	if p.eat(token.KwElse) {
		alternate = p.parseStatement()
	}
	n := &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.cur.Span.Start
	p.advance()
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expect(token.RParen)
	body := p.withLoopLabel(func() ast.Statement { return p.parseStatement() })
	n := &ast.WhileStatement{Test: test, Body: body}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	start := p.cur.Span.Start
	p.advance()
	body := p.withLoopLabel(func() ast.Statement { return p.parseStatement() })
	p.expect(token.KwWhile)
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expect(token.RParen)
	p.eat(token.Semicolon) // ASI after do-while is unconditional
	n := &ast.DoWhileStatement{Body: body, Test: test}
	n.SetSpan(p.spanFrom(start))
	return n
}

// withLoopLabel is a placeholder hook where label-target bookkeeping for
// unlabeled break/continue would be threaded through; break/continue
// validation here only checks labeled targets against p.labels.
func (p *Parser) withLoopLabel(f func() ast.Statement) ast.Statement {
	return f()
}

// parseForStatement implements the for-head state machine: it parses an
// optional Init position, then decides between a classic C-style
// for(;;), a for-in, and a for-of (with optional `await`) based on what
// follows Init, matching ECMA-262's grammar-level ambiguity between
// ForStatement and ForInOfStatement.
func (p *Parser) parseForStatement() ast.Statement {
	start := p.cur.Span.Start
	p.advance()
	isAwait := false
	if p.at(token.KwAwait) {
		isAwait = true
		p.advance()
	}
	p.expect(token.LParen)

	var init ast.Node
	switch {
	case p.at(token.Semicolon):
		// no init
	case p.at(token.KwVar) || p.at(token.KwConst) ||
		(p.at(token.KwLet) && p.startsLexicalDeclaration()) ||
		(p.at(token.KwUsing) && p.startsUsingDeclaration()):
		decl := p.parseVariableDeclaration(true)
		if p.at(token.KwIn) || p.at(token.KwOf) {
			return p.finishForInOf(start, decl, isAwait)
		}
		init = decl
	default:
		ctx := p.ctx
		p.ctx = p.ctx.with(CtxNoIn)
		expr := p.parseExpression()
		p.ctx = ctx
		if p.at(token.KwIn) || p.at(token.KwOf) {
			target := p.exprToPattern(expr)
			return p.finishForInOf(start, target, isAwait)
		}
		init = expr
	}

	p.expect(token.Semicolon)
	var test ast.Expression
	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	var update ast.Expression
	if !p.at(token.RParen) {
		update = p.parseExpression()
	}
	p.expect(token.RParen)
	body := p.withLoopLabel(func() ast.Statement { return p.parseStatement() })
	n := &ast.ForStatement{Init: init, Test: test, Update: update, Body: body}
	n.SetSpan(p.spanFrom(start))
	return n
}

// finishForInOf parses the `in`/`of` clause once the head's Init (left
// side) has already been parsed as either a VariableDeclaration or a
// Pattern, per ECMA-262's ForBinding/ForDeclaration productions.
func (p *Parser) finishForInOf(start uint32, left ast.Node, isAwait bool) ast.Statement {
	if p.eat(token.KwIn) {
		right := p.parseExpression()
		p.expect(token.RParen)
		body := p.withLoopLabel(func() ast.Statement { return p.parseStatement() })
		n := &ast.ForInStatement{Left: left, Right: right, Body: body}
		n.SetSpan(p.spanFrom(start))
		return n
	}
	p.expect(token.KwOf)
	right := p.parseAssignmentExpression()
	p.expect(token.RParen)
	body := p.withLoopLabel(func() ast.Statement { return p.parseStatement() })
	n := &ast.ForOfStatement{Left: left, Right: right, Body: body, Await: isAwait}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	start := p.cur.Span.Start
	p.advance()
	p.expect(token.LParen)
	discriminant := p.parseExpression()
	p.expect(token.RParen)
	p.expect(token.LBrace)
	n := &ast.SwitchStatement{Discriminant: discriminant}
	seenDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseStart := p.cur.Span.Start
		c := &ast.SwitchCase{}
		if p.eat(token.KwCase) {
			c.Test = p.parseExpression()
		} else {
			p.expect(token.KwDefault)
			if seenDefault {
				p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "multiple default clauses in switch statement")
			}
			seenDefault = true
		}
		p.expect(token.Colon)
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			c.Consequent = append(c.Consequent, p.parseStatement())
		}
		c.SetSpan(p.spanFrom(caseStart))
		n.Cases = append(n.Cases, c)
	}
	p.expect(token.RBrace)
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.cur.Span.Start
	if !p.ctx.has(CtxReturn) {
		p.errorf(diagnostic.CodeIllegalReturn, p.cur.Span, "'return' outside of a function")
	}
	p.advance()
	var arg ast.Expression
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.cur.NewlineBefore {
		arg = p.parseExpression()
	}
	p.consumeSemicolon()
	n := &ast.ReturnStatement{Argument: arg}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	start := p.cur.Span.Start
	p.advance()
	label := ""
	if p.identLike(p.cur.Kind) && !p.cur.NewlineBefore {
		label = p.cur.Value
		p.checkLabelTarget(label)
		p.advance()
	}
	p.consumeSemicolon()
	n := &ast.BreakStatement{Label: label}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	start := p.cur.Span.Start
	p.advance()
	label := ""
	if p.identLike(p.cur.Kind) && !p.cur.NewlineBefore {
		label = p.cur.Value
		p.checkLabelTarget(label)
		p.advance()
	}
	p.consumeSemicolon()
	n := &ast.ContinueStatement{Label: label}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) checkLabelTarget(label string) {
	for _, l := range p.labels {
		if l == label {
			return
		}
	}
	p.errorf(diagnostic.CodeUndeclaredVariable, p.cur.Span, "undefined label %q", label)
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	start := p.cur.Span.Start
	p.advance()
	if p.cur.NewlineBefore {
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "no line break allowed between 'throw' and its argument")
	}
	arg := p.parseExpression()
	p.consumeSemicolon()
	n := &ast.ThrowStatement{Argument: arg}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	start := p.cur.Span.Start
	p.advance()
	block := p.parseBlockStatement()
	n := &ast.TryStatement{Block: block}
	if p.at(token.KwCatch) {
		catchStart := p.cur.Span.Start
		p.advance()
		var param ast.Pattern
		if p.eat(token.LParen) {
			param = p.parseBindingTarget()
			p.skipOptionalTypeAnnotation()
			p.expect(token.RParen)
		}
		body := p.parseBlockStatement()
		handler := &ast.CatchClause{Param: param, Body: body}
		handler.SetSpan(p.spanFrom(catchStart))
		n.Handler = handler
	}
	if p.eat(token.KwFinally) {
		n.Finalizer = p.parseBlockStatement()
	}
	if n.Handler == nil && n.Finalizer == nil {
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "missing catch or finally after try block")
	}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	start := p.cur.Span.Start
	p.advance()
	p.expect(token.LParen)
	obj := p.parseExpression()
	p.expect(token.RParen)
	body := p.parseStatement()
	n := &ast.WithStatement{Object: obj, Body: body}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseLabeledStatement() *ast.LabeledStatement {
	start := p.cur.Span.Start
	label := p.cur.Value
	p.advance()
	p.expect(token.Colon)
	p.labels = append(p.labels, label)
	body := p.parseStatement()
	p.labels = p.labels[:len(p.labels)-1]
	n := &ast.LabeledStatement{Label: label, Body: body}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.cur.Span.Start
	expr := p.parseExpression()
	p.consumeSemicolon()
	n := &ast.ExpressionStatement{Expr: expr}
	n.SetSpan(p.spanFrom(start))
	return n
}

// --- variable declarations --------------------------------------------

// startsLexicalDeclaration reports whether `let` at the current position
// introduces a declaration (`let x`, `let [`, `let {`) rather than being
// used as a plain identifier (`let instanceof x`, `let(1)`).
func (p *Parser) startsLexicalDeclaration() bool {
	switch p.peek().Kind {
	case token.LBracket, token.LBrace:
		return true
	default:
		return p.identLike(p.peek().Kind)
	}
}

// startsUsingDeclaration reports whether `using` introduces an explicit-
// resource-management declaration (`using x = ...`) rather than being an
// ordinary identifier used as an expression or call target.
func (p *Parser) startsUsingDeclaration() bool {
	return p.identLike(p.peek().Kind) && !p.peek().NewlineBefore
}

func (p *Parser) parseVariableStatement() ast.Statement {
	decl := p.parseVariableDeclaration(false)
	p.consumeSemicolon()
	return decl
}

func (p *Parser) parseVariableDeclaration(noIn bool) *ast.VariableDeclaration {
	start := p.cur.Span.Start
	var kind ast.VariableKind
	switch p.cur.Kind {
	case token.KwVar:
		kind = ast.VarVar
	case token.KwConst:
		kind = ast.VarConst
	case token.KwUsing:
		kind = ast.VarUsing
	default:
		kind = ast.VarLet
	}
	p.advance()
	decl := &ast.VariableDeclaration{VarKind: kind}
	for {
		decl.Declarations = append(decl.Declarations, p.parseVariableDeclarator(noIn))
		if !p.eat(token.Comma) {
			break
		}
	}
	decl.SetSpan(p.spanFrom(start))
	return decl
}

func (p *Parser) parseVariableDeclarator(noIn bool) *ast.VariableDeclarator {
	start := p.cur.Span.Start
	target := p.parseBindingTarget()
	p.skipOptionalTypeAnnotation()
	var init ast.Expression
	if p.eat(token.Eq) {
		ctx := p.ctx
		if noIn {
			p.ctx = p.ctx.with(CtxNoIn)
		} else {
			p.ctx = p.ctx.without(CtxNoIn)
		}
		init = p.parseAssignmentExpression()
		p.ctx = ctx
	}
	d := &ast.VariableDeclarator{ID: target, Init: init}
	d.SetSpan(p.spanFrom(start))
	return d
}

// --- functions & classes -----------------------------------------------

func (p *Parser) parseFunctionDeclaration(async bool) *ast.Function {
	start := p.cur.Span.Start
	p.expect(token.KwFunction)
	generator := p.eat(token.Star)
	var id *ast.Identifier
	if p.identLike(p.cur.Kind) {
		id = p.parseBindingIdentifier()
	} else if !p.ctx.has(CtxDefault) {
		p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "function declaration requires a name")
	}
	fn := p.parseFunctionRest(start, id, async, generator)
	return fn
}

// parseFunctionRest parses the parameter list, optional return type, and
// body shared by function declarations, function expressions, and method
// bodies, once the `function`/`async function` keyword and name (if any)
// have already been consumed.
func (p *Parser) parseFunctionRest(start uint32, id *ast.Identifier, async, generator bool) *ast.Function {
	typeParams := p.parseOptionalTypeParameters()
	params := p.parseParamList()
	returnType := p.parseOptionalReturnTypeAnnotation()

	ctx := p.ctx
	p.ctx = p.ctx.with(CtxReturn)
	if generator {
		p.ctx = p.ctx.with(CtxYield)
	} else {
		p.ctx = p.ctx.without(CtxYield)
	}
	if async {
		p.ctx = p.ctx.with(CtxAwait)
	} else {
		p.ctx = p.ctx.without(CtxAwait)
	}

	var body *ast.BlockStatement
	if p.opts.TypeScript && p.ctx.has(CtxAmbient) {
		p.consumeSemicolon()
	} else {
		body = p.parseBlockStatement()
	}
	p.ctx = ctx

	fn := &ast.Function{
		ID: id, Params: params, Body: body,
		Generator: generator, Async: async,
		TypeParams: typeParams, ReturnType: returnType,
	}
	fn.SetSpan(p.spanFrom(start))
	return fn
}

func (p *Parser) parseParamList() []ast.Pattern {
	p.expect(token.LParen)
	var params []ast.Pattern
	for !p.at(token.RParen) && !p.at(token.EOF) {
		p.skipDecorators()
		p.skipParamModifiers()
		var param ast.Pattern
		if p.at(token.DotDotDot) {
			restStart := p.cur.Span.Start
			p.advance()
			rest := &ast.RestElement{Argument: p.parseBindingTarget()}
			rest.SetSpan(p.spanFrom(restStart))
			param = rest
		} else {
			target := p.parseBindingTarget()
			optional := p.eat(token.Question)
			_ = optional // TS optional-parameter marker; not modeled on Pattern, parsed and discarded.
			p.skipOptionalTypeAnnotation()
			if p.eat(token.Eq) {
				def := p.parseAssignmentExpression()
				ap := &ast.AssignmentPattern{Left: target, Right: def}
				ap.SetSpan(span.New(target.Span().Start, p.prevEnd))
				param = ap
			} else {
				param = target
			}
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

// skipParamModifiers discards TypeScript parameter-property modifiers
// (`public`/`private`/`protected`/`readonly`/`override`) that precede a
// constructor parameter; this parser does not model parameter properties
// as a distinct declaration, only the underlying binding.
func (p *Parser) skipParamModifiers() {
	if !p.opts.TypeScript {
		return
	}
	for {
		switch p.cur.Kind {
		case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwReadonly, token.KwOverride:
			if p.identLike(p.peek().Kind) || p.peek().Kind == token.DotDotDot {
				p.advance()
				continue
			}
		}
		return
	}
}

func (p *Parser) skipDecorators() {
	for p.at(token.At) {
		p.advance()
		ctx := p.ctx
		p.ctx = p.ctx.with(CtxDecorator)
		p.parseLeftHandSideExpression()
		p.ctx = ctx
	}
}

func (p *Parser) parseClassDeclaration() *ast.Class {
	return p.parseClassRest(true)
}

func (p *Parser) parseDecoratedDeclaration() ast.Statement {
	start := p.cur.Span.Start
	p.skipDecorators()
	cls := p.parseClassRest(true)
	cls.SetSpan(p.spanFrom(start))
	return cls
}

func (p *Parser) parseClassRest(requireName bool) *ast.Class {
	start := p.cur.Span.Start
	p.expect(token.KwClass)
	var id *ast.Identifier
	if p.identLike(p.cur.Kind) && p.cur.Kind != token.KwExtends && !p.atContextualWord("implements") {
		id = p.parseBindingIdentifier()
	} else if requireName && !p.ctx.has(CtxDefault) {
		p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "class declaration requires a name")
	}
	typeParams := p.parseOptionalTypeParameters()
	var super ast.Expression
	if p.eat(token.KwExtends) {
		super = p.parseLeftHandSideExpression()
		p.parseOptionalTypeArguments()
	}
	if p.opts.TypeScript && p.atContextualWord("implements") {
		p.advance()
		for {
			p.parseTypeAnnotation()
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	body := p.parseClassBody()
	cls := &ast.Class{ID: id, SuperClass: super, Body: body, TypeParams: typeParams}
	cls.SetSpan(p.spanFrom(start))
	return cls
}

func (p *Parser) parseClassBody() *ast.ClassBody {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	body := &ast.ClassBody{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.cur.Span.Start
		body.Body = append(body.Body, p.parseClassMember())
		if p.cur.Span.Start == before && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	body.SetSpan(p.spanFrom(start))
	return body
}

func (p *Parser) parseClassMember() ast.Node {
	start := p.cur.Span.Start
	p.skipDecorators()

	if p.at(token.KwStatic) && p.peek().Kind == token.LBrace {
		p.advance()
		blk := p.parseBlockStatement()
		sb := &ast.StaticBlock{Body: blk.Body}
		sb.SetSpan(p.spanFrom(start))
		return sb
	}

	static := false
	if p.at(token.KwStatic) && p.peek().Kind != token.LParen && p.peek().Kind != token.Eq {
		static = true
		p.advance()
	}
	readonly := false
	for p.isMemberModifier() {
		if p.at(token.KwReadonly) {
			readonly = true
		}
		p.advance()
	}

	async := false
	if p.at(token.KwAsync) && p.peek().Kind != token.LParen && p.peek().Kind != token.Eq && !p.peek().NewlineBefore {
		async = true
		p.advance()
	}
	generator := p.eat(token.Star)

	kind := ast.PropertyInit
	if (p.at(token.KwGet) || p.at(token.KwSet)) && p.peek().Kind != token.LParen && p.peek().Kind != token.Eq && p.peek().Kind != token.Semicolon {
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
		md := &ast.MethodDefinition{Key: key, Value: fn, Kind_: kind, Static: static, Computed: computed}
		md.SetSpan(p.spanFrom(start))
		return md
	}

	p.skipOptionalTypeAnnotation()
	pd := &ast.PropertyDefinition{Key: key, Static: static, Computed: computed, Readonly: readonly}
	if p.eat(token.Eq) {
		ctx := p.ctx
		p.ctx = p.ctx.with(CtxReturn)
		pd.Value = p.parseAssignmentExpression()
		p.ctx = ctx
	}
	p.consumeSemicolon()
	pd.SetSpan(p.spanFrom(start))
	return pd
}

func (p *Parser) isMemberModifier() bool {
	if !p.opts.TypeScript {
		return false
	}
	switch p.cur.Kind {
	case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwReadonly,
		token.KwAbstract, token.KwOverride, token.KwAccessor, token.KwDeclare:
		switch p.peek().Kind {
		case token.Eq, token.LParen, token.Semicolon, token.Colon, token.Question:
			return false
		default:
			return true
		}
	}
	return false
}

func (p *Parser) parsePropertyKey() (ast.Expression, bool) {
	start := p.cur.Span.Start
	if p.eat(token.LBracket) {
		expr := p.parseAssignmentExpression()
		p.expect(token.RBracket)
		return expr, true
	}
	if p.at(token.StringLit) {
		v := p.cur.Value
		p.advance()
		lit := &ast.StringLiteral{Value: v}
		lit.SetSpan(p.spanFrom(start))
		return lit, false
	}
	if p.at(token.NumericLit) {
		n := p.cur.Num
		raw := p.cur.Value
		p.advance()
		lit := &ast.NumericLiteral{Value: n, Raw: raw}
		lit.SetSpan(p.spanFrom(start))
		return lit, false
	}
	if p.at(token.PrivateName) {
		name := p.cur.Value
		p.advance()
		id := &ast.PrivateIdentifier{Name: name}
		id.SetSpan(p.spanFrom(start))
		return id, false
	}
	id := p.parseBindingIdentifier()
	return id, false
}

// --- modules -------------------------------------------------------------

func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	start := p.cur.Span.Start
	p.advance()
	decl := &ast.ImportDeclaration{}
	if p.opts.TypeScript && p.at(token.KwType) && p.peek().Kind != token.KwFrom && p.peek().Kind != token.Comma {
		decl.TypeOnly = true
		p.advance()
	}
	if p.at(token.StringLit) {
		decl.Source = p.cur.Value
		p.advance()
		p.consumeSemicolon()
		decl.SetSpan(p.spanFrom(start))
		return decl
	}
	if p.identLike(p.cur.Kind) {
		decl.DefaultLocal = p.cur.Value
		p.advance()
		if p.eat(token.Comma) {
			p.parseImportClauseRest(decl)
		}
	} else {
		p.parseImportClauseRest(decl)
	}
	p.expect(token.KwFrom)
	decl.Source = p.expect(token.StringLit).Value
	p.consumeSemicolon()
	decl.SetSpan(p.spanFrom(start))
	return decl
}

func (p *Parser) parseImportClauseRest(decl *ast.ImportDeclaration) {
	if p.eat(token.Star) {
		p.expect(token.KwAs)
		decl.NamespaceLocal = p.cur.Value
		p.advance()
		return
	}
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		spec := ast.ImportSpecifier{}
		if p.opts.TypeScript && p.at(token.KwType) && p.peek().Kind != token.KwAs && p.peek().Kind != token.Comma && p.peek().Kind != token.RBrace {
			spec.TypeOnly = true
			p.advance()
		}
		spec.Imported = p.cur.Value
		p.advance()
		spec.Local = spec.Imported
		if p.eat(token.KwAs) {
			spec.Local = p.cur.Value
			p.advance()
		}
		decl.Specifiers = append(decl.Specifiers, spec)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
}

func (p *Parser) parseExportDeclaration() ast.Statement {
	start := p.cur.Span.Start
	p.advance()

	if p.eat(token.KwDefault) {
		var declOrExpr ast.Node
		switch {
		case p.at(token.KwFunction):
			ctx := p.ctx
			p.ctx = p.ctx.with(CtxDefault)
			declOrExpr = p.parseFunctionDeclaration(false)
			p.ctx = ctx
		case p.at(token.KwAsync) && p.peek().Kind == token.KwFunction:
			p.advance()
			ctx := p.ctx
			p.ctx = p.ctx.with(CtxDefault)
			declOrExpr = p.parseFunctionDeclaration(true)
			p.ctx = ctx
		case p.at(token.KwClass):
			ctx := p.ctx
			p.ctx = p.ctx.with(CtxDefault)
			declOrExpr = p.parseClassDeclaration()
			p.ctx = ctx
		default:
			declOrExpr = p.parseAssignmentExpression()
			p.consumeSemicolon()
		}
		n := &ast.ExportDefaultDeclaration{Declaration: declOrExpr}
		n.SetSpan(p.spanFrom(start))
		return n
	}

	if p.eat(token.Star) {
		n := &ast.ExportAllDeclaration{}
		if p.eat(token.KwAs) {
			n.Exported = p.cur.Value
			p.advance()
		}
		p.expect(token.KwFrom)
		n.Source = p.expect(token.StringLit).Value
		p.consumeSemicolon()
		n.SetSpan(p.spanFrom(start))
		return n
	}

	n := &ast.ExportNamedDeclaration{}
	if p.opts.TypeScript && p.at(token.KwType) && p.peek().Kind == token.LBrace {
		n.TypeOnly = true
		p.advance()
	}
	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			spec := ast.ExportSpecifier{}
			spec.Local = p.cur.Value
			p.advance()
			spec.Exported = spec.Local
			if p.eat(token.KwAs) {
				spec.Exported = p.cur.Value
				p.advance()
			}
			n.Specifiers = append(n.Specifiers, spec)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace)
		if p.eat(token.KwFrom) {
			n.Source = p.expect(token.StringLit).Value
		}
		p.consumeSemicolon()
		n.SetSpan(p.spanFrom(start))
		return n
	}

	switch {
	case p.at(token.KwVar) || p.at(token.KwConst) || (p.at(token.KwLet) && p.startsLexicalDeclaration()):
		n.Declaration = p.parseVariableDeclaration(false)
		p.consumeSemicolon()
	case p.at(token.KwFunction):
		n.Declaration = p.parseFunctionDeclaration(false)
	case p.at(token.KwAsync) && p.peek().Kind == token.KwFunction:
		p.advance()
		n.Declaration = p.parseFunctionDeclaration(true)
	case p.at(token.KwClass):
		n.Declaration = p.parseClassDeclaration()
	case p.opts.TypeScript && p.at(token.KwInterface):
		n.Declaration = p.parseInterfaceDeclaration()
	case p.opts.TypeScript && p.at(token.KwType):
		n.Declaration = p.parseTypeAliasDeclaration()
	case p.at(token.KwEnum):
		n.Declaration = p.parseEnumDeclaration(false)
	default:
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "unexpected token after 'export'")
	}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseAmbientDeclaration() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // 'declare'
	ctx := p.ctx
	p.ctx = p.ctx.with(CtxAmbient)
	var stmt ast.Statement
	switch {
	case p.at(token.KwFunction):
		stmt = p.parseFunctionDeclaration(false)
	case p.at(token.KwClass):
		stmt = p.parseClassDeclaration()
	case p.at(token.KwVar) || p.at(token.KwConst) || p.at(token.KwLet):
		stmt = p.parseVariableStatement()
	case p.at(token.KwInterface):
		stmt = p.parseInterfaceDeclaration()
	case p.at(token.KwType):
		stmt = p.parseTypeAliasDeclaration()
	case p.at(token.KwEnum):
		stmt = p.parseEnumDeclaration(false)
	case p.at(token.KwNamespace) || p.at(token.KwModule):
		stmt = p.parseModuleDeclaration()
	default:
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "unexpected token after 'declare'")
		stmt = p.parseExpressionStatement()
	}
	p.ctx = ctx
	if es, ok := stmt.(*ast.ErrorStatement); ok {
		es.SetSpan(p.spanFrom(start))
	}
	return stmt
}

// parseModuleDeclaration parses an ambient `namespace Name { ... }` /
// `module "name" { ... }` block. This module's AST has no dedicated
// TSModuleDeclaration node (only its Kind tag is reserved), so the body
// is flattened into a labeled statement wrapping a block: enough to keep
// the declaration's statements reachable without inventing a shape nothing
// else in the AST consumes.
func (p *Parser) parseModuleDeclaration() ast.Statement {
	start := p.cur.Span.Start
	p.advance()
	name := "module"
	if p.at(token.StringLit) {
		name = p.cur.Value
		p.advance()
	} else if p.identLike(p.cur.Kind) {
		name = p.cur.Value
		p.advance()
		for p.eat(token.Dot) {
			name += "." + p.cur.Value
			p.advance()
		}
	}
	body := p.parseBlockStatement()
	n := &ast.LabeledStatement{Label: name, Body: body}
	n.SetSpan(p.spanFrom(start))
	return n
}

// --- shared predicates ---------------------------------------------------

func (p *Parser) isAsyncFunctionStart() bool {
	return p.peek().Kind == token.KwFunction && !p.peek().NewlineBefore
}

// skipOptionalTypeAnnotation discards a `: T` type annotation in binding
// position. Bindings (Identifier/patterns) carry no TypeAnnotation field
// in this AST, so annotations are validated for well-formedness and
// otherwise dropped; TSAsExpression/TSSatisfiesExpression/TSNonNullExpression
// in expression position are the type-carrying forms that do round-trip.
func (p *Parser) skipOptionalTypeAnnotation() {
	if !p.opts.TypeScript || !p.at(token.Colon) {
		return
	}
	p.advance()
	p.parseTypeAnnotation()
}

func (p *Parser) parseOptionalReturnTypeAnnotation() ast.TypeAnnotation {
	if !p.opts.TypeScript || !p.at(token.Colon) {
		return nil
	}
	p.advance()
	return p.parseTypeAnnotation()
}
