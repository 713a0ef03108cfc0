package parser

import (
	"strings"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

// parseType разбирает тип в позиции типа:
//
//	Name[<Args>](.Name[<Args>])*  с опц. alias::
//	(T1 a, T2 b)                  кортеж
//	суффиксы: ?  [] [,]  *
func (p *Parser) parseType() (ast.TypeRef, bool) {
	start := p.peek().Span
	var ref ast.TypeRef
	switch {
	case p.at(token.LParen):
		p.advance()
		for {
			elem, ok := p.parseType()
			if !ok {
				return ref, false
			}
			if p.at(token.Ident) {
				p.advance() // имя элемента кортежа
			}
			ref.Tuple = append(ref.Tuple, elem)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type"); !ok {
			return ref, false
		}
	case p.at(token.KwVoid):
		p.advance()
		ref.Name = "void"
	case p.at(token.Ident):
		if !p.parseTypeName(&ref) {
			return ref, false
		}
	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.peek().Text+"\"")
		return ref, false
	}

	for {
		switch {
		case p.at(token.Question):
			p.advance()
			if len(ref.Ranks) == 0 {
				ref.Nullable = true
			}
			continue
		case p.at(token.LBracket) && (p.peekAt(1).Kind == token.RBracket || p.peekAt(1).Kind == token.Comma):
			p.advance()
			dims := 1
			for p.at(token.Comma) {
				p.advance()
				dims++
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"); !ok {
				return ref, false
			}
			ref.Ranks = append(ref.Ranks, dims)
			continue
		case p.at(token.Star):
			p.advance()
			ref.Pointer = true
			continue
		}
		break
	}
	ref.Span = start.Cover(p.lastSpan)
	ref.Text = p.textOf(ref.Span)
	return ref, true
}

// parseTypeName: Ident [:: Ident] [<Args>] (. Ident [<Args>])*
func (p *Parser) parseTypeName(ref *ast.TypeRef) bool {
	var b strings.Builder
	b.WriteString(p.advance().Text)
	if p.at(token.ColonColon) {
		p.advance()
		id, ok := p.parseIdent()
		if !ok {
			return false
		}
		b.WriteString("::")
		b.WriteString(id.Text)
	}
	for {
		if p.at(token.Lt) {
			args, ok := p.parseTypeArgs()
			if !ok {
				return false
			}
			ref.Args = args
		}
		if p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
			p.advance()
			b.WriteByte('.')
			b.WriteString(p.advance().Text)
			continue
		}
		break
	}
	ref.Name = b.String()
	return true
}

// parseTypeArgs: <T1, T2> или несвязанный <> / <,>
func (p *Parser) parseTypeArgs() ([]ast.TypeRef, bool) {
	p.advance() // <
	if p.atOr(token.Gt, token.Comma) {
		args := []ast.TypeRef{{}}
		for p.at(token.Comma) {
			p.advance()
			args = append(args, ast.TypeRef{})
		}
		_, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type arguments")
		return args, ok
	}
	var args []ast.TypeRef
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type arguments")
	return args, ok
}
