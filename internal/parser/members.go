package parser

import (
	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

func (p *Parser) parseTypeBody(d *ast.TypeDecl) {
	p.advance() // {
	p.outer = append(p.outer, d.Name)
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		p.parseMember(d)
		if p.pos == before {
			p.advance()
		}
	}
	p.outer = p.outer[:len(p.outer)-1]
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close "+d.Name)
}

func (p *Parser) parseMember(d *ast.TypeDecl) {
	start := p.peek().Span
	attrs := p.parseAttrSections()
	static := p.skipModifiers()

	switch {
	case p.at(token.Semicolon):
		p.advance()
		return
	case p.at(token.KwConst):
		p.parseConst(d)
		return
	case p.atTypeDeclStart():
		p.parseTypeDeclRest(attrs, start)
		return
	case p.atOr(token.KwDelegate, token.KwEvent, token.KwImplicit, token.KwExplicit, token.Tilde):
		p.skipMember()
		return
	}

	if _, ok := p.parseType(); !ok {
		p.skipMember()
		return
	}
	if p.at(token.LParen) {
		// конструктор: имя типа уже съедено как "возвращаемый тип"
		p.parseParamList()
		p.skipMethodBody()
		return
	}
	if !p.at(token.Ident) {
		p.skipMember() // индексатор, оператор
		return
	}
	nameTok := p.advance()
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		nameTok = p.advance() // явная реализация интерфейса
	}
	var tps []ast.TypeParam
	if p.at(token.Lt) {
		tps = p.parseTypeParams()
	}
	if !p.at(token.LParen) {
		p.skipMember() // поле или свойство
		return
	}
	m := ast.Method{
		Name:       nameTok.Text,
		Attrs:      attrs,
		TypeParams: tps,
		Static:     static,
		NameSpan:   nameTok.Span,
	}
	m.Params = p.parseParamList()
	p.parseConstraints(m.TypeParams)
	p.skipMethodBody()
	m.Span = start.Cover(p.lastSpan)
	d.Methods = append(d.Methods, m)
}

// skipMember пропускает поле, свойство, событие, индексатор или оператор.
func (p *Parser) skipMember() {
	p.skipUntil(token.Semicolon, token.LBrace)
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		p.skipBalanced()
		if p.atOr(token.Assign, token.FatArrow) {
			p.skipUntil(token.Semicolon)
			p.advance()
		}
	}
}

// skipMethodBody: { ... }, => expr; или ;
func (p *Parser) skipMethodBody() {
	p.skipUntil(token.LBrace, token.FatArrow, token.Semicolon)
	switch {
	case p.at(token.LBrace):
		p.skipBalanced()
	case p.at(token.FatArrow):
		p.skipUntil(token.Semicolon)
		p.advance()
	case p.at(token.Semicolon):
		p.advance()
	}
}

func (p *Parser) parseConst(d *ast.TypeDecl) {
	p.advance() // const
	typ, ok := p.parseType()
	if !ok {
		p.skipMember()
		return
	}
	for {
		nameTok, ok := p.parseIdent()
		if !ok {
			p.skipMember()
			return
		}
		c := ast.Const{Name: nameTok.Text, Type: typ}
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const declaration"); ok {
			c.Value = p.parseExpr()
		}
		c.Span = nameTok.Span.Cover(p.lastSpan)
		d.Consts = append(d.Consts, c)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.want(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const declaration")
}

func (p *Parser) parseEnumBody(d *ast.TypeDecl) {
	p.advance() // {
	for !p.atOr(token.RBrace, token.EOF) {
		p.parseAttrSections()
		nameTok, ok := p.parseIdent()
		if !ok {
			p.skipUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		m := ast.EnumMember{Name: nameTok.Text}
		if p.at(token.Assign) {
			p.advance()
			m.Value = p.parseExpr()
		}
		m.Span = nameTok.Span.Cover(p.lastSpan)
		d.EnumMembers = append(d.EnumMembers, m)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum "+d.Name)
}

// parseParamList: ( [attrs] [params|this|ref|out|in] Type name [= default], ... )
func (p *Parser) parseParamList() []ast.Param {
	p.advance() // (
	var params []ast.Param
	for !p.atOr(token.RParen, token.EOF) {
		start := p.peek().Span
		p.parseAttrSections()
		prm := ast.Param{Modifier: p.paramModifier()}
		typ, ok := p.parseType()
		if !ok {
			p.skipUntil(token.Comma, token.RParen)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			continue
		}
		prm.Type = typ
		if nameTok, ok := p.parseIdent(); ok {
			prm.Name = nameTok.Text
		}
		if p.at(token.Assign) {
			p.advance()
			prm.Default = p.parseExpr()
		}
		prm.Span = start.Cover(p.lastSpan)
		params = append(params, prm)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list")

	for i := range params {
		if params[i].Modifier == ast.ParamParams && i != len(params)-1 {
			p.report(diag.SynParamsNotLast, diag.SevError, params[i].Span,
				"params parameter '"+params[i].Name+"' must be the last parameter")
		}
	}
	return params
}

func (p *Parser) paramModifier() ast.ParamModifier {
	mod := ast.ParamNone
	for {
		next := ast.ParamNone
		switch p.peek().Kind {
		case token.KwParams:
			next = ast.ParamParams
		case token.KwThis:
			next = ast.ParamThis
		case token.KwRef:
			next = ast.ParamRef
		case token.KwOut:
			next = ast.ParamOut
		case token.KwIn:
			next = ast.ParamIn
		case token.KwReadonly:
		default:
			return mod
		}
		// `this ref int x`: первый модификатор главный
		if mod == ast.ParamNone {
			mod = next
		}
		p.advance()
	}
}
