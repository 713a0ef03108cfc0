package ast

import "theorycheck/internal/source"

// TypeRef is a type as written. Name is the dotted name with any
// `alias::` qualifier kept in front; generic arguments sit in Args.
// Tuple types have an empty Name and their elements in Tuple.
type TypeRef struct {
	Name     string
	Args     []TypeRef
	Tuple    []TypeRef
	Nullable bool
	Ranks    []int // по одному на [] / [,]; значение: размерность
	Pointer  bool
	Span     source.Span
	Text     string
}

// IsZero reports whether no type was parsed.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.Tuple == nil
}

// IsArray reports whether the outermost constructor is an array.
func (t TypeRef) IsArray() bool {
	return len(t.Ranks) > 0
}

// ElemRef drops the outermost array rank. In C# the leftmost rank
// specifier is the outermost: `int[][,]` is an array of `int[,]`.
func (t TypeRef) ElemRef() TypeRef {
	if len(t.Ranks) == 0 {
		return t
	}
	e := t
	e.Ranks = t.Ranks[1:]
	return e
}
