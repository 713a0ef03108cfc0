package ast

import (
	"theorycheck/internal/source"
	"theorycheck/internal/token"
)

type ExprKind uint8

const (
	ExprInvalid  ExprKind = iota
	ExprLit               // Tok: литерал, null, true, false
	ExprName              // Text: идентификатор, возможно alias::Name
	ExprMember            // Left.Text
	ExprUnary             // Op Left
	ExprBinary            // Left Op Right
	ExprCast              // (Type)Left
	ExprParen             // (Left)
	ExprTypeOf            // typeof(Type)
	ExprNameOf            // nameof(Left)
	ExprDefault           // default(Type) или default
	ExprArrayNew          // new Type[] { Elems } / new[] { Elems }
	ExprCall              // Left(Elems)
	ExprOther             // всё прочее, Text как написано
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "lit"
	case ExprName:
		return "name"
	case ExprMember:
		return "member"
	case ExprUnary:
		return "unary"
	case ExprBinary:
		return "binary"
	case ExprCast:
		return "cast"
	case ExprParen:
		return "paren"
	case ExprTypeOf:
		return "typeof"
	case ExprNameOf:
		return "nameof"
	case ExprDefault:
		return "default"
	case ExprArrayNew:
		return "array-new"
	case ExprCall:
		return "call"
	case ExprOther:
		return "other"
	}
	return "invalid"
}

// Expr is a node of an attribute argument expression. Text always holds
// the source text of the whole node; Name carries the identifier for
// ExprName and ExprMember.
type Expr struct {
	Kind     ExprKind
	Tok      token.Kind
	Op       token.Kind
	OpText   string
	Name     string
	Left     ExprID
	Right    ExprID
	Type     TypeRef
	Implicit bool // new[] без типа элемента
	Elems    []ExprID
	Text     string
	Span     source.Span
}
