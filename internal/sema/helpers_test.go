package sema

import (
	"theorycheck/internal/source"
	"theorycheck/internal/types"
)

var (
	tInt      = types.MakeNumeric("int", types.FamilyIntegral)
	tLong     = types.MakeNumeric("long", types.FamilyIntegral)
	tDouble   = types.MakeNumeric("double", types.FamilyFloatingPoint)
	tDecimal  = types.MakeNumeric("decimal", types.FamilyDecimal)
	tBool     = types.MakeBool()
	tChar     = types.MakeChar()
	tString   = types.MakeString()
	tObject   = types.MakeObject()
	tType     = types.MakeSystemType()
	tCompare  = types.MakeEnum("System.StringComparison")
	tOther    = types.MakeEnum("Acme.Color")
	tFormat   = types.MakeInterface("System.IFormattable", types.Numerics.With(types.NatEnum))
	tUserIfc  = types.MakeInterface("Acme.IShape", 0)
	tExc      = types.MakeReference("System.Exception")
	tGuid     = types.MakeStruct("System.Guid")
	tUnknown  = types.MakeUnknown("Foo<Bar>")
	tIntArr   = types.MakeArray(tInt)
	tStrArr   = types.MakeArray(tString)
	tNullInt  = types.MakeNullable(tInt)
	tNullEnum = types.MakeNullable(tCompare)
)

// spans are distinct per value so diagnostics can be told apart
var nextOff uint32

func sp() source.Span {
	nextOff += 10
	return source.Span{Start: nextOff, End: nextOff + 3}
}

func vInt(text string) types.Value    { return types.NumericLit(types.FamilyIntegral, text, sp()) }
func vDouble(text string) types.Value { return types.NumericLit(types.FamilyFloatingPoint, text, sp()) }
func vDecimal() types.Value           { return types.NumericLit(types.FamilyDecimal, "42m", sp()) }
func vBool() types.Value              { return types.BoolLit("true", sp()) }
func vChar() types.Value              { return types.CharLit("'a'", sp()) }
func vString(text string) types.Value { return types.StringLit(text, sp()) }
func vNull() types.Value              { return types.NullLit(sp()) }
func vTypeOf() types.Value            { return types.TypeOfLit("string", "typeof(string)", sp()) }
func vEnum() types.Value {
	return types.EnumLit("System.StringComparison", "System.StringComparison.Ordinal", sp())
}
func vArray(elems ...types.Value) types.Value {
	return types.ArrayLit(elems, "new[] {...}", sp())
}

func param(name string, ordinal int, t types.Type) types.Param {
	return types.Param{Name: name, Ordinal: ordinal, Type: t, Span: sp()}
}

func tail(name string, ordinal int, elem types.Type) types.Param {
	p := param(name, ordinal, types.MakeArray(elem))
	p.Tail = true
	return p
}
