package ast

import (
	"strings"

	"theorycheck/internal/source"
)

type TypeDeclKind uint8

const (
	TypeClass TypeDeclKind = iota
	TypeStruct
	TypeRecord
	TypeRecordStruct
	TypeInterface
	TypeEnum
)

func (k TypeDeclKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeStruct:
		return "struct"
	case TypeRecord:
		return "record"
	case TypeRecordStruct:
		return "record struct"
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	}
	return "type"
}

// TypeDecl is a class, struct, record, interface or enum declaration.
// Usings holds every directive in scope at the declaration: file-level
// first, then those of enclosing namespace blocks, outermost first.
type TypeDecl struct {
	Kind        TypeDeclKind
	Name        string
	Arity       int
	TypeParams  []TypeParam
	Namespace   string
	Outer       string
	Bases       []TypeRef
	Attrs       []Attr
	EnumMembers []EnumMember
	Methods     []Method
	Consts      []Const
	Usings      []Using
	Span        source.Span
	NameSpan    source.Span
}

// FullName returns Namespace.Outer.Name without generic arity.
func (d *TypeDecl) FullName() string {
	parts := make([]string, 0, 3)
	if d.Namespace != "" {
		parts = append(parts, d.Namespace)
	}
	if d.Outer != "" {
		parts = append(parts, d.Outer)
	}
	parts = append(parts, d.Name)
	return strings.Join(parts, ".")
}

// Method is any member with a parameter list: methods, constructors,
// local functions are not collected.
type Method struct {
	Name       string
	Attrs      []Attr
	TypeParams []TypeParam
	Params     []Param
	Static     bool
	Span       source.Span
	NameSpan   source.Span
}

// HasAttr reports whether any attribute on m matches one of names.
func (m *Method) HasAttr(names ...string) bool {
	for i := range m.Attrs {
		if m.Attrs[i].Is(names...) {
			return true
		}
	}
	return false
}

// TypeParam is a generic parameter. ValueType is set by a `struct` or
// `unmanaged` constraint.
type TypeParam struct {
	Name      string
	ValueType bool
	Span      source.Span
}

type ParamModifier uint8

const (
	ParamNone ParamModifier = iota
	ParamParams
	ParamThis
	ParamRef
	ParamOut
	ParamIn
)

type Param struct {
	Name     string
	Type     TypeRef
	Modifier ParamModifier
	Default  ExprID
	Span     source.Span
}

type Const struct {
	Name  string
	Type  TypeRef
	Value ExprID
	Span  source.Span
}

type EnumMember struct {
	Name  string
	Value ExprID
	Span  source.Span
}
