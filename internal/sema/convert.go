package sema

import "theorycheck/internal/types"

// NullLegal reports whether null may be bound to a parameter of type t.
// Unknown types fail closed: null is accepted.
func NullLegal(t types.Type) bool {
	switch t.Kind {
	case types.KindNumeric, types.KindBool, types.KindChar, types.KindEnum, types.KindStruct:
		return false
	case types.KindTypeParam:
		return !t.ValueOnly
	}
	return true
}

// Convertible reports whether a non-null value may flow into type t.
// Null values are decided by NullLegal; passing one here returns NullLegal(t).
func Convertible(t types.Type, v types.Value) bool {
	switch v.Kind {
	case types.ValUnresolved:
		// уже сообщено фронтендом, опровергнуть нечем
		return true
	case types.ValNull:
		return NullLegal(t)
	}

	switch t.Kind {
	case types.KindObject, types.KindTypeParam:
		return true
	case types.KindInterface:
		return t.Implementors.Has(v.Natural())
	case types.KindSystemType:
		return v.Kind == types.ValTypeOf
	case types.KindString:
		return v.Kind == types.ValString
	case types.KindEnum:
		return v.Kind == types.ValEnumMember && v.Enum == t.Name
	case types.KindChar:
		return v.Kind == types.ValChar ||
			(v.Kind == types.ValNumeric && v.Family == types.FamilyIntegral)
	case types.KindBool:
		return v.Kind == types.ValBool
	case types.KindNumeric:
		return v.Kind == types.ValNumeric || v.Kind == types.ValChar
	case types.KindNullable:
		if t.Elem == nil {
			return false
		}
		return Convertible(*t.Elem, v)
	case types.KindArray:
		return arrayConvertible(t, v)
	}
	// Reference, Struct, Unknown
	return false
}

func arrayConvertible(t types.Type, v types.Value) bool {
	elem, ok := t.ElemType()
	if !ok || v.Kind != types.ValArray {
		return false
	}
	for _, e := range v.Elems {
		if !Convertible(elem, e) {
			return false
		}
	}
	return true
}
