package parser

import (
	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

// parseAttrSections разбирает подряд идущие секции `[A, B(x)] [C]`.
// Цель секции (`assembly:`, `return:`, `method:`) пропускается.
func (p *Parser) parseAttrSections() []ast.Attr {
	var out []ast.Attr
	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			p.advance()
			p.advance()
		}
		for !p.atOr(token.RBracket, token.EOF) {
			a, ok := p.parseAttr()
			if !ok {
				p.skipUntil(token.RBracket)
				break
			}
			out = append(out, a)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close attribute list")
	}
	return out
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	start := p.peek().Span
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected attribute name, got \""+p.peek().Text+"\"")
		return ast.Attr{}, false
	}
	var ref ast.TypeRef
	if !p.parseTypeName(&ref) {
		return ast.Attr{}, false
	}
	a := ast.Attr{Name: ref.Name}
	if p.at(token.LParen) {
		a.HasArgs = true
		p.advance()
		for !p.atOr(token.RParen, token.EOF) {
			a.Args = append(a.Args, p.parseAttrArg())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close arguments of "+a.Name)
	}
	a.Span = start.Cover(p.lastSpan)
	return a, true
}

// parseAttrArg: expr | name: expr | Name = expr
func (p *Parser) parseAttrArg() ast.AttrArg {
	start := p.peek().Span
	var arg ast.AttrArg
	if p.at(token.Ident) {
		switch p.peekAt(1).Kind {
		case token.Colon:
			arg.Name = p.advance().Text
			p.advance()
		case token.Assign:
			arg.Name = p.advance().Text
			arg.Assign = true
			p.advance()
		}
	}
	arg.Expr = p.parseExpr()
	arg.Span = start.Cover(p.lastSpan)
	return arg
}
