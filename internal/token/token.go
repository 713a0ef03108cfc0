package token

import (
	"theorycheck/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal constant.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, DecimalLit, CharLit, StringLit, InterpLit, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether the token is an identifier acting as contextual keyword k.
func (t Token) IsContextual(k Kind) bool {
	if t.Kind != Ident {
		return false
	}
	got, ok := contextual[t.Text]
	return ok && got == k
}

// IsModifier reports whether the token is a member modifier the parser skips.
// `new` counts only in member position; the parser decides which one applies.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwModifier, KwStatic, KwReadonly, KwNew:
		return true
	case Ident:
		return t.IsContextual(KwModifier)
	}
	return false
}
