package parser

import (
	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) && tok.Kind != token.EOF {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: на EOF указываем
// сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// want - желаем увидеть токен, но кидаем warning, если нет
func (p *Parser) want(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, diag.SevWarning, p.getDiagnosticSpan(), msg)
	return p.peek(), false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil || p.speculative > 0 {
		return false
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// parseIdent ожидает Ident; на ошибке: SynExpectIdentifier.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	return token.Token{}, false
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBrace:
		return token.RBrace
	case token.LBracket:
		return token.RBracket
	}
	return token.Invalid
}

// skipBalanced съедает группу, начинающуюся с ( { или [, вместе с
// вложенными группами. Незакрытая группа: SynUnclosedDelimiter.
func (p *Parser) skipBalanced() source.Span {
	open := p.advance()
	stack := []token.Kind{closerOf(open.Kind)}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '"+open.Text+"'")
			return open.Span.Cover(p.lastSpan)
		case closerOf(tok.Kind) != token.Invalid:
			stack = append(stack, closerOf(tok.Kind))
		case tok.Kind == stack[len(stack)-1]:
			stack = stack[:len(stack)-1]
		}
		p.advance()
	}
	return open.Span.Cover(p.lastSpan)
}

// skipUntil съедает токены до одного из stops на нулевой глубине скобок.
// Стоп-токен не съедается.
func (p *Parser) skipUntil(stops ...token.Kind) {
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}
		for _, s := range stops {
			if tok.Kind == s {
				return
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			p.skipBalanced()
		case token.RParen, token.RBrace, token.RBracket:
			// чужая закрывающая скобка: дальше идти нельзя
			return
		default:
			p.advance()
		}
	}
}

func (p *Parser) textOf(sp source.Span) string {
	return p.src.Slice(sp.Start, sp.End)
}
