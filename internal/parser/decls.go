package parser

import (
	"fmt"
	"slices"
	"strings"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/token"
)

func (p *Parser) parseCompilationUnit() {
	start := p.peek().Span
	p.parseNamespaceBody(false)
	p.file.Span = start.Cover(p.lastSpan)
}

// parseNamespaceBody разбирает using, namespace и объявления типов до '}'
// (вложенный namespace) или EOF.
func (p *Parser) parseNamespaceBody(nested bool) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return
		case tok.Kind == token.RBrace:
			if nested {
				return
			}
			p.err(diag.SynUnexpectedToken, "unexpected '}'")
			p.advance()
		case tok.Kind == token.Semicolon:
			p.advance()
		case tok.Kind == token.KwUsing, isGlobalUsing(tok, p.peekAt(1)):
			p.parseUsing()
		case tok.Kind == token.KwNamespace:
			p.parseNamespace()
		case tok.Kind == token.Ident && tok.Text == "extern" && p.peekAt(1).Text == "alias":
			p.skipUntil(token.Semicolon)
			p.advance()
		default:
			if !p.parseTypeDecl() {
				p.resyncTop()
			}
		}
	}
}

func isGlobalUsing(tok, next token.Token) bool {
	return tok.Kind == token.Ident && tok.Text == "global" && next.Kind == token.KwUsing
}

// parseUsing: [global] using [static] [Alias =] Name ;
func (p *Parser) parseUsing() {
	start := p.peek().Span
	if p.at(token.Ident) {
		p.advance() // global
	}
	p.advance() // using

	var u ast.Using
	if p.at(token.KwStatic) {
		p.advance()
		u.Static = true
	}
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Assign {
		u.Alias = p.advance().Text
		p.advance()
	}
	ref, ok := p.parseType()
	if !ok {
		p.skipUntil(token.Semicolon)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return
	}
	u.Name = ref.Name
	p.want(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after using directive")
	u.Span = start.Cover(p.lastSpan)

	p.usings = append(p.usings, u)
	if len(p.namespace) == 0 {
		p.file.Usings = append(p.file.Usings, u)
	}
}

// parseNamespace: namespace A.B { ... } или file-scoped namespace A.B;
func (p *Parser) parseNamespace() {
	p.advance()
	name, ok := p.parseDottedName()
	if !ok {
		p.resyncTop()
		return
	}
	nsMark, usingMark := len(p.namespace), len(p.usings)
	p.namespace = append(p.namespace, name)
	if p.at(token.Semicolon) {
		p.advance()
		return // действует до конца файла
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after namespace name"); !ok {
		p.namespace = p.namespace[:nsMark]
		return
	}
	p.parseNamespaceBody(true)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close namespace "+name)
	p.namespace = p.namespace[:nsMark]
	p.usings = p.usings[:usingMark]
}

func (p *Parser) parseDottedName() (string, bool) {
	first, ok := p.parseIdent()
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(first.Text)
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		b.WriteByte('.')
		b.WriteString(p.advance().Text)
	}
	return b.String(), true
}

// resyncTop: восстановление после ошибки на верхнем уровне: съедаем хотя бы
// один токен и крутим до начала следующего объявления.
func (p *Parser) resyncTop() {
	if p.atOr(token.LParen, token.LBrace, token.LBracket) {
		p.skipBalanced()
	} else {
		p.advance()
	}
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.RBrace, token.KwClass, token.KwStruct, token.KwInterface, token.KwEnum,
			token.KwNamespace, token.KwUsing, token.LBracket, token.KwModifier:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.LParen, token.LBrace:
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

// parseTypeDecl разбирает атрибуты, модификаторы и объявление типа.
// Секции атрибутов без типа за ними (`[assembly: X]`) молча пропускаются.
func (p *Parser) parseTypeDecl() bool {
	start := p.peek().Span
	attrs := p.parseAttrSections()
	p.skipModifiers()
	if p.at(token.KwDelegate) {
		p.skipUntil(token.Semicolon)
		p.advance()
		return true
	}
	if !p.atTypeDeclStart() {
		if len(attrs) > 0 {
			return true
		}
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %q, expected a type declaration", p.peek().Text))
		return false
	}
	p.parseTypeDeclRest(attrs, start)
	return true
}

func (p *Parser) atTypeDeclStart() bool {
	switch p.peek().Kind {
	case token.KwClass, token.KwStruct, token.KwInterface, token.KwEnum:
		return true
	}
	if p.atContextual(token.KwRecord) {
		switch p.peekAt(1).Kind {
		case token.Ident, token.KwClass, token.KwStruct:
			return true
		}
	}
	return false
}

func (p *Parser) typeKeyword() ast.TypeDeclKind {
	tok := p.advance()
	switch tok.Kind {
	case token.KwStruct:
		return ast.TypeStruct
	case token.KwInterface:
		return ast.TypeInterface
	case token.KwEnum:
		return ast.TypeEnum
	case token.Ident: // record
		switch p.peek().Kind {
		case token.KwStruct:
			p.advance()
			return ast.TypeRecordStruct
		case token.KwClass:
			p.advance()
		}
		return ast.TypeRecord
	}
	return ast.TypeClass
}

func (p *Parser) parseTypeDeclRest(attrs []ast.Attr, start source.Span) {
	kind := p.typeKeyword()
	nameTok, ok := p.parseIdent()
	if !ok {
		p.skipUntil(token.LBrace, token.Semicolon)
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
		return
	}
	d := ast.TypeDecl{
		Kind:      kind,
		Name:      nameTok.Text,
		Namespace: strings.Join(p.namespace, "."),
		Outer:     strings.Join(p.outer, "."),
		Attrs:     attrs,
		Usings:    slices.Clone(p.usings),
		NameSpan:  nameTok.Span,
	}
	if p.at(token.Lt) {
		d.TypeParams = p.parseTypeParams()
		d.Arity = max(len(d.TypeParams), 1)
	}
	if p.at(token.LParen) {
		p.skipBalanced() // primary constructor
	}
	if p.at(token.Colon) {
		p.advance()
		for {
			base, ok := p.parseType()
			if !ok {
				break
			}
			if p.at(token.LParen) {
				p.skipBalanced()
			}
			d.Bases = append(d.Bases, base)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.parseConstraints(d.TypeParams)

	// место резервируется заранее, чтобы внешний тип шёл перед вложенными
	idx := len(p.file.Types)
	p.file.Types = append(p.file.Types, ast.TypeDecl{})
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		if kind == ast.TypeEnum {
			p.parseEnumBody(&d)
		} else {
			p.parseTypeBody(&d)
		}
		if p.at(token.Semicolon) {
			p.advance()
		}
	default:
		p.err(diag.SynUnexpectedToken, "expected '{' after declaration of "+d.Name)
	}
	d.Span = start.Cover(p.lastSpan)
	p.file.Types[idx] = d
}

func (p *Parser) skipModifiers() (static bool) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.KwStatic:
			static = true
		case tok.Kind == token.KwRef:
		case tok.IsModifier() && !p.modifierIsName():
		default:
			return static
		}
		p.advance()
	}
}

// modifierIsName: `partial` и прочие контекстные слова могут быть именем
// члена или типа, если за ними сразу идёт '(' , '=' или ';'.
func (p *Parser) modifierIsName() bool {
	if p.peek().Kind != token.Ident {
		return false
	}
	switch p.peekAt(1).Kind {
	case token.LParen, token.Assign, token.Semicolon, token.Comma:
		return true
	}
	return false
}
