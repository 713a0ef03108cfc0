package lexer

import (
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

// scanNumber читает числовой литерал C#:
//   - 0x/0X и 0b/0B с '_' между цифрами, только целые суффиксы
//   - десятичные: цифры, опц. дробная часть, опц. экспонента
//   - суффиксы: u U l L ul lu (целые), f F d D (вещественные), m M (decimal)
//
// Неверные формы репортятся, токен дочитывается до конца слова.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.digits(isHex) {
				return lx.badNumber(start, "expected hex digit after 0x")
			}
			return lx.intSuffix(start)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.digits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "expected binary digit after 0b")
			}
			return lx.intSuffix(start)
		}
	}

	lx.digits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.digits(isDec)
		kind = token.FloatLit
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !lx.digits(isDec) {
			return lx.badNumber(start, "expected digit in exponent")
		}
		kind = token.FloatLit
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D':
		lx.cursor.Bump()
		return lx.finishNumber(token.FloatLit, start)
	case 'm', 'M':
		lx.cursor.Bump()
		return lx.finishNumber(token.DecimalLit, start)
	}
	if kind == token.IntLit {
		return lx.intSuffix(start)
	}
	return lx.finishNumber(kind, start)
}

// digits съедает цифры и '_' между ними; false, если не было ни одной цифры.
func (lx *Lexer) digits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			seen = true
		case b == '_' && seen:
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) intSuffix(start Mark) token.Token {
	switch b := lx.cursor.Peek(); b {
	case 'u', 'U':
		lx.cursor.Bump()
		if c := lx.cursor.Peek(); c == 'l' || c == 'L' {
			lx.cursor.Bump()
		}
	case 'l', 'L':
		lx.cursor.Bump()
		if c := lx.cursor.Peek(); c == 'u' || c == 'U' {
			lx.cursor.Bump()
		}
	}
	return lx.finishNumber(token.IntLit, start)
}

func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexBadNumber, tok.Span, msg)
	return tok
}
