package parser

import (
	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/token"
	"theorycheck/internal/types"
)

// токены, на которых заканчивается выражение аргумента/инициализатора
var exprStops = []token.Kind{token.Comma, token.RParen, token.RBracket, token.RBrace, token.Semicolon}

func (p *Parser) atExprEnd() bool {
	return p.at(token.EOF) || p.atOr(exprStops...)
}

// parseExpr разбирает константное выражение атрибута. Всё, что не входит
// в поддерживаемое подмножество (?:, is, as, лямбды, switch), целиком
// становится ExprOther.
func (p *Parser) parseExpr() ast.ExprID {
	startPos := p.pos
	id := p.parseBinary(1)
	if !p.atExprEnd() {
		return p.fallback(startPos)
	}
	return id
}

// fallback дочитывает выражение до ближайшего разделителя и заворачивает
// весь текст, начиная с startPos, в ExprOther.
func (p *Parser) fallback(startPos int) ast.ExprID {
	p.skipUntil(exprStops...)
	var sp source.Span
	if p.pos > startPos {
		sp = p.toks[startPos].Span.Cover(p.lastSpan)
	} else {
		at := p.getDiagnosticSpan()
		sp = source.Span{File: at.File, Start: at.Start, End: at.Start}
	}
	return p.file.NewExpr(ast.Expr{Kind: ast.ExprOther, Text: p.textOf(sp), Span: sp})
}

func (p *Parser) node(e ast.Expr, start source.Span) ast.ExprID {
	e.Span = start.Cover(p.lastSpan)
	e.Text = p.textOf(e.Span)
	return p.file.NewExpr(e)
}

// binaryOp возвращает приоритет бинарного оператора под курсором и число
// его токенов: `>>` приходит от лексера двумя '>' подряд.
func (p *Parser) binaryOp() (prec, width int, text string) {
	tok := p.peek()
	switch tok.Kind {
	case token.QuestionQuestion:
		return 1, 1, tok.Text
	case token.OrOr:
		return 2, 1, tok.Text
	case token.AndAnd:
		return 3, 1, tok.Text
	case token.Pipe:
		return 4, 1, tok.Text
	case token.Caret:
		return 5, 1, tok.Text
	case token.Amp:
		return 6, 1, tok.Text
	case token.EqEq, token.BangEq:
		return 7, 1, tok.Text
	case token.Gt:
		if next := p.peekAt(1); next.Kind == token.Gt && next.Span.Start == tok.Span.End {
			return 9, 2, ">>"
		}
		return 8, 1, tok.Text
	case token.Lt, token.LtEq, token.GtEq:
		return 8, 1, tok.Text
	case token.Shl:
		return 9, 1, tok.Text
	case token.Plus, token.Minus:
		return 10, 1, tok.Text
	case token.Star, token.Slash, token.Percent:
		return 11, 1, tok.Text
	}
	return 0, 0, ""
}

func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	start := p.peek().Span
	left := p.parseUnary()
	for {
		prec, width, text := p.binaryOp()
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.advance()
		if width == 2 {
			p.advance()
		}
		right := p.parseBinary(prec + 1)
		left = p.node(ast.Expr{Kind: ast.ExprBinary, Op: op.Kind, OpText: text, Left: left, Right: right}, start)
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Minus, token.Plus, token.Bang, token.Tilde:
		op := p.advance()
		operand := p.parseUnary()
		return p.node(ast.Expr{Kind: ast.ExprUnary, Op: op.Kind, OpText: op.Text, Left: operand}, start)
	case token.LParen:
		if typ, ok := p.tryCast(); ok {
			operand := p.parseUnary()
			return p.node(ast.Expr{Kind: ast.ExprCast, Type: typ, Left: operand}, start)
		}
	}
	return p.parsePostfix(p.parsePrimary(), start)
}

// tryCast пробует разобрать `(Type)` как приведение. Правило C#: тип из
// ключевого слова или с суффиксами всегда каст; иначе каст только если
// дальше идёт то, что не может продолжить бинарное выражение.
func (p *Parser) tryCast() (ast.TypeRef, bool) {
	savePos, saveLast := p.pos, p.lastSpan
	p.advance() // (
	p.speculative++
	typ, ok := p.parseType()
	p.speculative--
	if ok && p.at(token.RParen) && typ.Tuple == nil {
		next := p.peekAt(1)
		decorated := typ.Nullable || len(typ.Ranks) > 0 || len(typ.Args) > 0 || typ.Pointer
		if (types.IsKeyword(typ.Name) && next.Kind != token.EOF) || decorated || castFollower(next) {
			p.advance() // )
			return typ, true
		}
	}
	p.pos, p.lastSpan = savePos, saveLast
	return ast.TypeRef{}, false
}

func castFollower(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.DecimalLit, token.CharLit, token.StringLit,
		token.InterpLit, token.LParen, token.Bang, token.Tilde, token.KwNull, token.KwTrue, token.KwFalse,
		token.KwTypeof, token.KwDefault, token.KwNew, token.KwThis, token.KwSizeof, token.KwChecked,
		token.KwUnchecked:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	start := tok.Span
	startPos := p.pos
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.DecimalLit, token.CharLit, token.StringLit, token.InterpLit,
		token.KwNull, token.KwTrue, token.KwFalse:
		p.advance()
		return p.node(ast.Expr{Kind: ast.ExprLit, Tok: tok.Kind}, start)

	case token.Ident:
		if tok.IsContextual(token.KwNameof) && p.peekAt(1).Kind == token.LParen {
			p.advance()
			p.advance()
			inner := p.parseExpr()
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close nameof")
			return p.node(ast.Expr{Kind: ast.ExprNameOf, Left: inner}, start)
		}
		name := p.advance().Text
		if p.at(token.ColonColon) {
			p.advance()
			if id, ok := p.parseIdent(); ok {
				name += "::" + id.Text
			}
		}
		return p.node(ast.Expr{Kind: ast.ExprName, Name: name}, start)

	case token.KwTypeof:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after typeof"); !ok {
			return p.fallback(startPos)
		}
		typ, ok := p.parseType()
		if !ok {
			return p.fallback(startPos)
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close typeof")
		return p.node(ast.Expr{Kind: ast.ExprTypeOf, Type: typ}, start)

	case token.KwDefault:
		p.advance()
		var typ ast.TypeRef
		if p.at(token.LParen) {
			p.advance()
			t, ok := p.parseType()
			if !ok {
				return p.fallback(startPos)
			}
			typ = t
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close default")
		}
		return p.node(ast.Expr{Kind: ast.ExprDefault, Type: typ}, start)

	case token.KwNew:
		return p.parseNew(startPos)

	case token.LParen, token.KwChecked, token.KwUnchecked:
		if tok.Kind != token.LParen {
			p.advance()
			if !p.at(token.LParen) {
				return p.fallback(startPos)
			}
		}
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return p.node(ast.Expr{Kind: ast.ExprParen, Left: inner}, start)
	}
	return p.fallback(startPos)
}

func (p *Parser) parsePostfix(id ast.ExprID, start source.Span) ast.ExprID {
	for {
		switch {
		case p.at(token.Dot) && p.peekAt(1).Kind == token.Ident:
			p.advance()
			name := p.advance()
			id = p.node(ast.Expr{Kind: ast.ExprMember, Left: id, Name: name.Text}, start)
		case p.at(token.LParen):
			p.advance()
			var args []ast.ExprID
			for !p.atOr(token.RParen, token.EOF) {
				if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
					p.advance()
					p.advance()
				}
				args = append(args, p.parseExpr())
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call")
			id = p.node(ast.Expr{Kind: ast.ExprCall, Left: id, Elems: args}, start)
		case p.at(token.Bang):
			p.advance() // null-forgiving
		case p.at(token.LBracket):
			p.skipBalanced()
			id = p.node(ast.Expr{Kind: ast.ExprOther}, start)
		case p.atOr(token.PlusPlus, token.MinusMinus, token.QuestionDot, token.Arrow):
			p.advance()
			if p.at(token.Ident) {
				p.advance()
			}
			id = p.node(ast.Expr{Kind: ast.ExprOther}, start)
		default:
			return id
		}
	}
}

// parseNew: new T[] {..}, new[] {..}, new T[n] {..}; создание объекта
// (`new T(...)`, `new()`) не константа и становится ExprOther.
func (p *Parser) parseNew(startPos int) ast.ExprID {
	start := p.peek().Span
	p.advance() // new
	switch {
	case p.at(token.LBracket):
		p.advance()
		for p.at(token.Comma) {
			p.advance()
		}
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after new[")
		if !p.at(token.LBrace) {
			return p.fallback(startPos)
		}
		elems := p.parseArrayInit()
		return p.node(ast.Expr{Kind: ast.ExprArrayNew, Implicit: true, Elems: elems}, start)
	case p.at(token.LParen):
		p.skipBalanced()
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
		return p.node(ast.Expr{Kind: ast.ExprOther}, start)
	}

	typ, ok := p.parseType()
	if !ok {
		return p.fallback(startPos)
	}
	if p.at(token.LBracket) {
		// new T[n]: размер задан выражением
		p.skipBalanced()
		typ.Ranks = append([]int{1}, typ.Ranks...)
		if !p.at(token.LBrace) {
			return p.node(ast.Expr{Kind: ast.ExprOther}, start)
		}
	}
	if typ.IsArray() && p.at(token.LBrace) {
		elems := p.parseArrayInit()
		return p.node(ast.Expr{Kind: ast.ExprArrayNew, Type: typ, Elems: elems}, start)
	}
	if p.at(token.LParen) {
		p.skipBalanced()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	}
	return p.node(ast.Expr{Kind: ast.ExprOther}, start)
}

// parseArrayInit: { e1, e2, }: вложенные инициализаторы не разбираются.
func (p *Parser) parseArrayInit() []ast.ExprID {
	p.advance() // {
	var elems []ast.ExprID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.LBrace) {
			start := p.peek().Span
			p.skipBalanced()
			elems = append(elems, p.node(ast.Expr{Kind: ast.ExprOther}, start))
		} else {
			elems = append(elems, p.parseExpr())
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close array initializer")
	return elems
}
