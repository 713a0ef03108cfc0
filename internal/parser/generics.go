package parser

import (
	"theorycheck/internal/ast"
	"theorycheck/internal/token"
)

// parseTypeParams разбирает `<[A] in T, out U>` после имени типа или метода.
func (p *Parser) parseTypeParams() []ast.TypeParam {
	p.advance() // <
	var out []ast.TypeParam
	for !p.atOr(token.Gt, token.EOF, token.LBrace, token.LParen, token.Semicolon) {
		switch {
		case p.at(token.LBracket):
			p.parseAttrSections()
		case p.at(token.Ident):
			tok := p.advance()
			out = append(out, ast.TypeParam{Name: tok.Text, Span: tok.Span})
		default:
			p.advance() // in, out, ','
		}
	}
	if p.at(token.Gt) {
		p.advance()
	}
	return out
}

// parseConstraints съедает where-клаузы до тела. Запоминаются только
// `struct` и `unmanaged`: такой параметр не принимает null.
func (p *Parser) parseConstraints(tps []ast.TypeParam) {
	for p.atContextual(token.KwWhere) {
		p.advance()
		name := p.peek().Text
		p.skipUntil(token.Colon, token.LBrace, token.FatArrow, token.Semicolon)
		if !p.at(token.Colon) {
			return
		}
		p.advance()
		for !p.atOr(token.LBrace, token.FatArrow, token.Semicolon, token.EOF) && !p.atContextual(token.KwWhere) {
			tok := p.peek()
			switch {
			case tok.Kind == token.KwStruct, tok.Kind == token.Ident && tok.Text == "unmanaged":
				markValueType(tps, name)
				p.advance()
			case tok.Kind == token.LParen:
				p.skipBalanced() // new()
			case tok.Kind == token.RParen, tok.Kind == token.RBrace, tok.Kind == token.RBracket:
				return
			default:
				p.advance()
			}
		}
	}
}

func markValueType(tps []ast.TypeParam, name string) {
	for i := range tps {
		if tps[i].Name == name {
			tps[i].ValueType = true
		}
	}
}
