package parser

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// parseBindingTarget parses a BindingIdentifier, ArrayBindingPattern, or
// ObjectBindingPattern — the three forms ECMA-262 allows directly in a
// parameter slot, variable declarator, or catch clause.
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.cur.Kind {
	case token.LBracket:
		return p.parseArrayBindingPattern()
	case token.LBrace:
		return p.parseObjectBindingPattern()
	default:
		return p.parseBindingIdentifier()
	}
}

func (p *Parser) parseArrayBindingPattern() *ast.ArrayPattern {
	start := p.cur.Span.Start
	p.expect(token.LBracket)
	n := &ast.ArrayPattern{}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			n.Elements = append(n.Elements, nil)
			p.advance()
			continue
		}
		var elem ast.Pattern
		if p.at(token.DotDotDot) {
			restStart := p.cur.Span.Start
			p.advance()
			rest := &ast.RestElement{Argument: p.parseBindingTarget()}
			rest.SetSpan(p.spanFrom(restStart))
			elem = rest
		} else {
			target := p.parseBindingTarget()
			p.skipOptionalTypeAnnotation()
			if p.eat(token.Eq) {
				def := p.parseAssignmentExpression()
				ap := &ast.AssignmentPattern{Left: target, Right: def}
				ap.SetSpan(span.New(target.Span().Start, p.prevEnd))
				elem = ap
			} else {
				elem = target
			}
		}
		n.Elements = append(n.Elements, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseObjectBindingPattern() *ast.ObjectPattern {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	n := &ast.ObjectPattern{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			restStart := p.cur.Span.Start
			p.advance()
			rest := &ast.RestElement{Argument: p.parseBindingIdentifier()}
			rest.SetSpan(p.spanFrom(restStart))
			n.Rest = rest
			break
		}

		key, computed := p.parsePropertyKey()
		prop := ast.ObjectPatternProperty{Key: key, Computed: computed}
		if p.eat(token.Colon) {
			prop.Value = p.parseBindingTarget()
		} else {
			id, ok := key.(*ast.Identifier)
			if !ok {
				p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "destructuring shorthand requires an identifier key")
				id = &ast.Identifier{}
			}
			prop.Value = id
			prop.Shorthand = true
		}
		if p.eat(token.Eq) {
			def := p.parseAssignmentExpression()
			ap := &ast.AssignmentPattern{Left: prop.Value, Right: def}
			ap.SetSpan(span.New(prop.Value.Span().Start, p.prevEnd))
			prop.Value = ap
		}
		n.Properties = append(n.Properties, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	n.SetSpan(p.spanFrom(start))
	return n
}

// exprToPattern reinterprets an already-parsed Expression as a Pattern,
// the conversion the arrow-parameter/destructuring-assignment cover
// grammar needs once a single token of lookahead (`=>` after a
// parenthesized group, `=` after an array/object literal, or `in`/`of`
// in a for head) reveals that what looked like
// a parenthesized expression or array/object literal was actually a
// binding target all along.
func (p *Parser) exprToPattern(expr ast.Expression) ast.Pattern {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e
	case *ast.ParenthesizedExpression:
		return p.exprToPattern(e.Expr)
	case *ast.AssignmentExpression:
		left, ok := e.Left.(ast.Pattern)
		if !ok {
			left = p.exprToPattern(e.Left.(ast.Expression))
		}
		ap := &ast.AssignmentPattern{Left: left, Right: e.Right}
		ap.SetSpan(e.Span())
		return ap
	case *ast.ArrayExpression:
		arr := &ast.ArrayPattern{}
		for _, el := range e.Elements {
			if el == nil {
				arr.Elements = append(arr.Elements, nil)
				continue
			}
			if sp, ok := el.(*ast.SpreadElement); ok {
				rest := &ast.RestElement{Argument: p.exprToPattern(sp.Argument)}
				rest.SetSpan(sp.Span())
				arr.Elements = append(arr.Elements, rest)
				continue
			}
			arr.Elements = append(arr.Elements, p.exprToPattern(el))
		}
		arr.SetSpan(e.Span())
		return arr
	case *ast.ObjectExpression:
		obj := &ast.ObjectPattern{}
		for _, node := range e.Properties {
			switch m := node.(type) {
			case *ast.Property:
				obj.Properties = append(obj.Properties, ast.ObjectPatternProperty{
					Key: m.Key, Value: p.exprToPattern(m.Value),
					Computed: m.Computed, Shorthand: m.Shorthand,
				})
			case *ast.SpreadElement:
				rest := &ast.RestElement{Argument: p.exprToPattern(m.Argument)}
				rest.SetSpan(m.Span())
				obj.Rest = rest
			}
		}
		obj.SetSpan(e.Span())
		return obj
	default:
		p.errorf(diagnostic.CodeUnexpectedToken, expr.Span(), "invalid destructuring target")
		errExpr := &ast.Identifier{}
		errExpr.SetSpan(expr.Span())
		return errExpr
	}
}
