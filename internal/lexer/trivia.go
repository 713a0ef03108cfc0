package lexer

import "theorycheck/internal/diag"

// skipTrivia пропускает пробелы, комментарии и строки препроцессора.
// Директива (#if, #region, #nullable ...) занимает всю строку, если '#'
// первый непробельный символ.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v':
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.skipLine()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
		case b == '#' && lx.atLineStart():
			lx.skipLine()
		default:
			return
		}
	}
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}

func (lx *Lexer) atLineStart() bool {
	content := lx.file.Content
	for i := int(lx.cursor.Off) - 1; i >= 0; i-- {
		switch content[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}
