package types

import (
	"fmt"

	"theorycheck/internal/source"
)

// ValueKind classifies an attribute argument expression.
type ValueKind uint8

const (
	ValInvalid ValueKind = iota
	ValNumeric
	ValBool
	ValChar
	ValString
	ValNull
	ValEnumMember
	ValTypeOf
	ValArray
	ValUnresolved
)

func (k ValueKind) String() string {
	switch k {
	case ValNumeric:
		return "numeric"
	case ValBool:
		return "bool"
	case ValChar:
		return "char"
	case ValString:
		return "string"
	case ValNull:
		return "null"
	case ValEnumMember:
		return "enum-member"
	case ValTypeOf:
		return "typeof"
	case ValArray:
		return "array"
	case ValUnresolved:
		return "unresolved"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value describes one argument of a literal-data attribute.
type Value struct {
	Kind   ValueKind
	Family Family  // ValNumeric
	Enum   string  // ValEnumMember: enum identity
	Target string  // ValTypeOf: referenced type as written
	Elems  []Value // ValArray
	Text   string  // surface text
	Span   source.Span
}

func NumericLit(f Family, text string, sp source.Span) Value {
	return Value{Kind: ValNumeric, Family: f, Text: text, Span: sp}
}

func BoolLit(text string, sp source.Span) Value { return Value{Kind: ValBool, Text: text, Span: sp} }
func CharLit(text string, sp source.Span) Value { return Value{Kind: ValChar, Text: text, Span: sp} }
func StringLit(text string, sp source.Span) Value {
	return Value{Kind: ValString, Text: text, Span: sp}
}
func NullLit(sp source.Span) Value { return Value{Kind: ValNull, Text: "null", Span: sp} }

func EnumLit(enum, text string, sp source.Span) Value {
	return Value{Kind: ValEnumMember, Enum: Identity(enum), Text: text, Span: sp}
}

func TypeOfLit(target, text string, sp source.Span) Value {
	return Value{Kind: ValTypeOf, Target: target, Text: text, Span: sp}
}

func ArrayLit(elems []Value, text string, sp source.Span) Value {
	return Value{Kind: ValArray, Elems: elems, Text: text, Span: sp}
}

func UnresolvedLit(text string, sp source.Span) Value {
	return Value{Kind: ValUnresolved, Text: text, Span: sp}
}

// Natural returns the intrinsic kind of the value; Null and Unresolved have none.
func (v Value) Natural() Natural {
	switch v.Kind {
	case ValNumeric:
		return familyNatural(v.Family)
	case ValBool:
		return NatBool
	case ValChar:
		return NatChar
	case ValString:
		return NatString
	case ValEnumMember:
		return NatEnum
	case ValTypeOf:
		return NatSystemType
	case ValArray:
		return NatArray
	}
	return NatNone
}

func (v Value) IsNull() bool { return v.Kind == ValNull }

func (v Value) String() string {
	if v.Text != "" {
		return v.Text
	}
	return v.Kind.String()
}
