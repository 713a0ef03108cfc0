package lexer

import (
	"theorycheck/internal/diag"
	"theorycheck/internal/token"
)

type opPair struct {
	a, b byte
	kind token.Kind
}

// двухсимвольные операторы; ">>" не склеиваем, чтобы не ломать `List<List<int>>`
var twoByteOps = []opPair{
	{'?', '?', token.QuestionQuestion},
	{'?', '.', token.QuestionDot},
	{':', ':', token.ColonColon},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'=', '>', token.FatArrow},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'<', '<', token.Shl},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
	{'-', '>', token.Arrow},
}

var oneByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	'.': token.Dot,
	';': token.Semicolon,
	':': token.Colon,
	'?': token.Question,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'~': token.Tilde,
	'#': token.Hash,
	'@': token.OtherPunct,
	'$': token.OtherPunct,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return lx.emit(op.kind, start)
		}
	}
	b := lx.cursor.Bump()
	if kind, ok := oneByteOps[b]; ok {
		return lx.emit(kind, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}
