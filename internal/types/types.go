package types

import "fmt"

// Kind enumerates the closed set of parameter type classifications.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumeric
	KindBool
	KindChar
	KindString
	KindObject
	KindSystemType
	KindEnum
	KindInterface
	KindNullable
	KindReference
	KindStruct
	KindArray
	KindTypeParam
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNumeric:
		return "numeric"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindSystemType:
		return "system-type"
	case KindEnum:
		return "enum"
	case KindInterface:
		return "interface"
	case KindNullable:
		return "nullable"
	case KindReference:
		return "reference"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindTypeParam:
		return "type-parameter"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Family groups numeric primitives.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyIntegral
	FamilyFloatingPoint
	FamilyDecimal
)

func (f Family) String() string {
	switch f {
	case FamilyIntegral:
		return "integral"
	case FamilyFloatingPoint:
		return "floating-point"
	case FamilyDecimal:
		return "decimal"
	default:
		return "none"
	}
}

// Type is a compact descriptor of a parameter type.
//
// Name holds the identity for Enum, Interface, Reference and Struct, the
// keyword or System name for numerics, and the text as written for Unknown.
// Elem is set for Nullable and Array only. ValueOnly marks a type
// parameter constrained to value types (`where T : struct`).
type Type struct {
	Kind         Kind
	Family       Family
	Name         string
	Elem         *Type
	Implementors NaturalSet
	ValueOnly    bool
}

func MakeNumeric(name string, f Family) Type { return Type{Kind: KindNumeric, Family: f, Name: name} }
func MakeBool() Type                         { return Type{Kind: KindBool, Name: "bool"} }
func MakeChar() Type                         { return Type{Kind: KindChar, Name: "char"} }
func MakeString() Type                       { return Type{Kind: KindString, Name: "string"} }
func MakeObject() Type                       { return Type{Kind: KindObject, Name: "object"} }
func MakeSystemType() Type                   { return Type{Kind: KindSystemType, Name: "System.Type"} }
func MakeEnum(name string) Type              { return Type{Kind: KindEnum, Name: Identity(name)} }
func MakeReference(name string) Type         { return Type{Kind: KindReference, Name: Identity(name)} }
func MakeStruct(name string) Type            { return Type{Kind: KindStruct, Name: Identity(name)} }
func MakeUnknown(written string) Type        { return Type{Kind: KindUnknown, Name: written} }

// MakeTypeParam is a generic parameter of the method or its type. The
// argument decides the type argument, so any value fits.
func MakeTypeParam(name string, valueOnly bool) Type {
	return Type{Kind: KindTypeParam, Name: name, ValueOnly: valueOnly}
}

// MakeInterface builds a named interface with its known natural implementors.
func MakeInterface(name string, impl NaturalSet) Type {
	return Type{Kind: KindInterface, Name: Identity(name), Implementors: impl}
}

// MakeNullable wraps a value type. Wrapping anything else is not
// representable and returns inner unchanged: `string?` is still `string`.
func MakeNullable(inner Type) Type {
	if !inner.IsValueType() {
		return inner
	}
	elem := inner
	return Type{Kind: KindNullable, Elem: &elem}
}

// MakeArray builds T[].
func MakeArray(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

// IsValueType reports whether null has no representation in t.
func (t Type) IsValueType() bool {
	switch t.Kind {
	case KindNumeric, KindBool, KindChar, KindEnum, KindStruct:
		return true
	case KindTypeParam:
		return t.ValueOnly
	}
	return false
}

// IsReferenceType reports whether t[] converts to object[] by array
// covariance. Unknown types are not assumed either way.
func (t Type) IsReferenceType() bool {
	switch t.Kind {
	case KindString, KindObject, KindSystemType, KindReference, KindInterface, KindArray:
		return true
	}
	return false
}

// Inner returns the wrapped type of Nullable, or t itself.
func (t Type) Inner() Type {
	if t.Kind == KindNullable && t.Elem != nil {
		return *t.Elem
	}
	return t
}

// ElemType returns the array element type; ok is false for non-arrays.
func (t Type) ElemType() (Type, bool) {
	if t.Kind != KindArray || t.Elem == nil {
		return Type{}, false
	}
	return *t.Elem, true
}

// Same reports structural identity of two descriptors.
func (t Type) Same(o Type) bool {
	if t.Kind != o.Kind || t.Family != o.Family || t.Name != o.Name || t.Implementors != o.Implementors || t.ValueOnly != o.ValueOnly {
		return false
	}
	if (t.Elem == nil) != (o.Elem == nil) {
		return false
	}
	return t.Elem == nil || t.Elem.Same(*o.Elem)
}

// String renders the type the way a C# compiler displays it in messages:
// keywords for builtins, full names otherwise, `T?` and `T[]` suffixes.
func (t Type) String() string {
	switch t.Kind {
	case KindNullable:
		return t.Inner().String() + "?"
	case KindArray:
		if t.Elem == nil {
			return "?[]"
		}
		return t.Elem.String() + "[]"
	case KindInvalid:
		return "<invalid>"
	}
	if t.Name == "" {
		return t.Kind.String()
	}
	return t.Name
}
