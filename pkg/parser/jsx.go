package parser

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// parseJSXElementOrFragment is the entry point used wherever a JSX
// element can appear as a plain expression (parsePrimaryExpression, an
// attribute value). It always resumes ordinary tokenization once the
// element closes, as opposed to parseJSXChild, used by parseJSXChildren,
// which resumes JSX-text scanning instead.
func (p *Parser) parseJSXElementOrFragment() ast.Expression {
	return p.parseJSXNode(false)
}

func (p *Parser) parseJSXChild() ast.JSXChild {
	n := p.parseJSXNode(true)
	child, ok := n.(ast.JSXChild)
	if !ok {
		return nil
	}
	return child
}

// parseJSXNode parses `<` through the element/fragment's own close,
// dispatching on whether a name immediately follows (element) or `>`
// does (fragment). inChildren tells the close exactly how to resume
// scanning afterward: JSX-text mode for an element nested inside another
// element's children, ordinary tokenization otherwise.
func (p *Parser) parseJSXNode(inChildren bool) ast.Expression {
	start := p.cur.Span.Start
	p.expect(token.Lt)
	if p.at(token.Gt) {
		return p.parseJSXFragmentRest(start, inChildren)
	}
	return p.parseJSXElementRest(start, inChildren)
}

// closeJSXTag consumes the `>` ending a self-closing, opening, or closing
// tag and resumes the mode the surrounding context needs next.
func (p *Parser) closeJSXTag(inChildren bool) {
	if !p.at(token.Gt) {
		p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "expected '>'")
		return
	}
	if inChildren {
		p.advanceIntoJSXText()
	} else {
		p.advance()
	}
}

func (p *Parser) parseJSXFragmentRest(start uint32, inChildren bool) *ast.JSXFragment {
	// `<>`'s own `>` always opens ITS OWN children in text mode,
	// regardless of what encloses the fragment itself.
	p.advanceIntoJSXText()
	children := p.parseJSXChildren()
	p.expect(token.Lt)
	p.expect(token.Slash)
	p.closeJSXTag(inChildren)
	n := &ast.JSXFragment{Children: children}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseJSXElementRest(start uint32, inChildren bool) *ast.JSXElement {
	name := p.parseJSXName()
	var attrs []ast.Node
	for !p.at(token.Slash) && !p.at(token.Gt) && !p.at(token.EOF) {
		before := p.cur.Span.Start
		if p.at(token.LBrace) {
			attrs = append(attrs, p.parseJSXSpreadAttribute())
		} else {
			attrs = append(attrs, p.parseJSXAttribute())
		}
		if p.cur.Span.Start == before && !p.at(token.EOF) {
			p.advance()
		}
	}
	opening := &ast.JSXOpeningElement{Name: name, Attributes: attrs}

	if p.eat(token.Slash) {
		p.closeJSXTag(inChildren)
		opening.SelfClosing = true
		opening.SetSpan(p.spanFrom(start))
		n := &ast.JSXElement{Opening: opening}
		n.SetSpan(p.spanFrom(start))
		return n
	}

	// A non-self-closing opening tag's `>` always opens ITS OWN children
	// in text mode, whatever inChildren says about the element itself.
	if p.at(token.Gt) {
		p.advanceIntoJSXText()
	} else {
		p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "expected '>'")
	}
	opening.SetSpan(span.New(start, p.prevEnd))

	children := p.parseJSXChildren()

	closeStart := p.cur.Span.Start
	p.expect(token.Lt)
	p.expect(token.Slash)
	var closeName ast.Node
	if !p.at(token.Gt) {
		closeName = p.parseJSXName()
	}
	p.closeJSXTag(inChildren)
	closing := &ast.JSXClosingElement{Name: closeName}
	closing.SetSpan(span.New(closeStart, p.prevEnd))

	n := &ast.JSXElement{Opening: opening, Children: children, Closing: closing}
	n.SetSpan(p.spanFrom(start))
	return n
}

// parseJSXChildren reads text/expression/element children until it sees
// `</` (the enclosing element or fragment's own closing tag) or EOF.
func (p *Parser) parseJSXChildren() []ast.JSXChild {
	var children []ast.JSXChild
	for {
		if p.at(token.JSXText) {
			if p.cur.Span.Start != p.cur.Span.End {
				t := &ast.JSXText{Value: p.cur.Value}
				t.SetSpan(p.cur.Span)
				children = append(children, t)
			}
			p.advance() // resume ordinary tokenization at '<', '{', or EOF
			continue
		}
		if p.at(token.LBrace) {
			children = append(children, p.parseJSXExpressionContainer(true))
			continue
		}
		if p.at(token.Lt) {
			// peekNoRegex, not peek: regexAllowedAfter(Lt) defaults to true
			// (plain `a < /x/` is a legal relational-then-regex expression),
			// but here '/' can only ever be a closing tag's slash.
			if p.peekNoRegex().Kind == token.Slash {
				return children
			}
			if child := p.parseJSXChild(); child != nil {
				children = append(children, child)
			}
			continue
		}
		return children
	}
}

// parseJSXExpressionContainer parses `{ Expression? }`. childMode selects
// how its closing `}` resumes scanning: JSX-text mode when this container
// is itself a child (embedded between other children), ordinary
// tokenization when it's an attribute value.
func (p *Parser) parseJSXExpressionContainer(childMode bool) *ast.JSXExpressionContainer {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	n := &ast.JSXExpressionContainer{}
	if !p.at(token.RBrace) {
		n.Expression = p.parseExpression()
	}
	if childMode {
		if p.at(token.RBrace) {
			p.advanceIntoJSXText()
		} else {
			p.errorf(diagnostic.CodeExpectedToken, p.cur.Span, "expected '}'")
		}
	} else {
		p.expect(token.RBrace)
	}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseJSXSpreadAttribute() *ast.JSXSpreadAttribute {
	start := p.cur.Span.Start
	p.expect(token.LBrace)
	p.expect(token.DotDotDot)
	arg := p.parseAssignmentExpression()
	p.expect(token.RBrace)
	n := &ast.JSXSpreadAttribute{Argument: arg}
	n.SetSpan(p.spanFrom(start))
	return n
}

func (p *Parser) parseJSXAttribute() *ast.JSXAttribute {
	start := p.cur.Span.Start
	name := p.parseJSXNamePart()
	if p.eat(token.Colon) {
		name += ":" + p.parseJSXNamePart()
	}
	attr := &ast.JSXAttribute{Name: name}
	if p.eat(token.Eq) {
		switch {
		case p.at(token.StringLit):
			vStart := p.cur.Span.Start
			v := p.cur.Value
			p.advance()
			lit := &ast.StringLiteral{Value: v}
			lit.SetSpan(p.spanFrom(vStart))
			attr.Value = lit
		case p.at(token.LBrace):
			attr.Value = p.parseJSXExpressionContainer(false)
		default:
			p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "expected a JSX attribute value")
			if !p.at(token.EOF) {
				p.advance()
			}
		}
	}
	attr.SetSpan(p.spanFrom(start))
	return attr
}

// parseJSXName parses a tag or attribute name, including dashed
// (`my-component`) and dotted member (`Foo.Bar`) forms.
func (p *Parser) parseJSXName() ast.Node {
	start := p.cur.Span.Start
	name := p.parseJSXNamePart()
	id := &ast.JSXIdentifier{Name: name}
	id.SetSpan(p.spanFrom(start))
	var node ast.Node = id
	for p.at(token.Dot) {
		p.advance()
		propStart := p.cur.Span.Start
		prop := &ast.JSXIdentifier{Name: p.parseJSXNamePart()}
		prop.SetSpan(p.spanFrom(propStart))
		mem := &ast.JSXMemberExpression{Object: node, Property: prop}
		mem.SetSpan(p.spanFrom(start))
		node = mem
	}
	return node
}

func (p *Parser) parseJSXNamePart() string {
	if !p.identLike(p.cur.Kind) {
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "expected a JSX name")
		if !p.at(token.EOF) {
			p.advance()
		}
		return ""
	}
	name := p.cur.Value
	p.advance()
	for p.at(token.Minus) {
		p.advance()
		name += "-" + p.cur.Value
		if p.identLike(p.cur.Kind) || p.at(token.NumericLit) {
			p.advance()
		}
	}
	return name
}
