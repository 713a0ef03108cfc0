package lexer

import (
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

// scanString читает обычную строку "..." с escape-последовательностями
// или raw-строку """...""" (три и более кавычек).
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if lx.quoteRun() >= 3 {
		lx.scanRaw(start)
		return lx.emit(token.StringLit, start)
	}
	lx.cursor.Bump()
	lx.scanRegularBody(start, false)
	return lx.emit(token.StringLit, start)
}

// scanPrefixedString handles @"..", $"..", $@"..", @$"..", $"""..""".
func (lx *Lexer) scanPrefixedString() (token.Token, bool) {
	start := lx.cursor.Mark()
	verbatim, interp := false, false
	for {
		switch lx.cursor.Peek() {
		case '@':
			if verbatim {
				lx.cursor.Reset(start)
				return token.Token{}, false
			}
			verbatim = true
		case '$':
			interp = true
		case '"':
			goto body
		default:
			lx.cursor.Reset(start)
			return token.Token{}, false
		}
		lx.cursor.Bump()
	}

body:
	kind := token.StringLit
	if interp {
		kind = token.InterpLit
	}
	switch {
	case !verbatim && lx.quoteRun() >= 3:
		lx.scanRaw(start)
	case verbatim:
		lx.cursor.Bump()
		lx.scanVerbatimBody(start, interp)
	default:
		lx.cursor.Bump()
		lx.scanRegularBody(start, interp)
	}
	return lx.emit(kind, start), true
}

func (lx *Lexer) quoteRun() uint32 {
	var n uint32
	for lx.cursor.PeekAt(n) == '"' {
		n++
	}
	return n
}

func (lx *Lexer) scanRegularBody(start Mark, interp bool) {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n' && depth == 0:
			lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
			return
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case interp && b == '{':
			if lx.try2('{', '{') {
				continue
			}
			depth++
		case interp && b == '}' && depth > 0:
			depth--
		case b == '"' && depth > 0:
			// вложенная строка внутри {…}
			nested := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.scanRegularBody(nested, false)
			continue
		case b == '"':
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
}

func (lx *Lexer) scanVerbatimBody(start Mark, interp bool) {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"' && depth == 0:
			if lx.try2('"', '"') {
				continue
			}
			lx.cursor.Bump()
			return
		case interp && b == '{':
			if lx.try2('{', '{') {
				continue
			}
			depth++
		case interp && b == '}' && depth > 0:
			depth--
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated verbatim string literal")
}

func (lx *Lexer) scanRaw(start Mark) {
	n := lx.quoteRun()
	for range n {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' && lx.quoteRun() >= n {
			for range lx.quoteRun() {
				lx.cursor.Bump()
			}
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated raw string literal")
}

// scanChar читает 'a', '\n', '\”, 'A', '\x41'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
			continue
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.report(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
			return tok
		}
		lx.bumpRune()
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}
