package parser

import (
	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/token"
)

// identLike reports whether k can occur in identifier position. The
// lexer classifies contextual keywords (async, let, of, type, ...) by
// spelling regardless of source type, so a plain .js file can still use
// `type` or `interface` as an ordinary binding name — only the reserved
// words in token.Keywords other than `yield` are never identifiers.
func (p *Parser) identLike(k token.Kind) bool {
	switch k {
	case token.Ident,
		token.KwAsync, token.KwAwait, token.KwLet, token.KwStatic,
		token.KwGet, token.KwSet, token.KwOf, token.KwAs, token.KwFrom,
		token.KwUsing,
		token.KwType, token.KwInterface, token.KwNamespace, token.KwModule,
		token.KwDeclare, token.KwAbstract, token.KwReadonly, token.KwPublic,
		token.KwPrivate, token.KwProtected, token.KwIs, token.KwKeyof,
		token.KwInfer, token.KwSatisfies, token.KwAssert, token.KwAccessor,
		token.KwOverride, token.KwOut,
		token.KwYield:
		return true
	default:
		return false
	}
}

// atContextualWord reports whether the current token is a plain
// identifier spelled exactly like word. Used for contextual words the
// lexer has no dedicated Kind for (e.g. `implements`), which only ever
// matter in a handful of TypeScript-only grammar positions.
func (p *Parser) atContextualWord(word string) bool {
	return p.cur.Kind == token.Ident && p.cur.Value == word
}

// parseBindingIdentifier consumes the current token as a plain name,
// accepting any identifier-like Kind per identLike (so a contextual
// keyword spelled as a name, e.g. a variable named `type`, binds
// correctly) and diagnosing anything else.
func (p *Parser) parseBindingIdentifier() *ast.Identifier {
	start := p.cur.Span.Start
	if !p.identLike(p.cur.Kind) {
		p.errorf(diagnostic.CodeUnexpectedToken, p.cur.Span, "expected an identifier, got %s", p.cur.Kind)
		id := &ast.Identifier{Name: ""}
		id.SetSpan(p.spanFrom(start))
		return id
	}
	name := p.cur.Value
	p.advance()
	id := &ast.Identifier{Name: name}
	id.SetSpan(p.spanFrom(start))
	return id
}
