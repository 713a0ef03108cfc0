package types

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type primitive struct {
	keyword string
	system  string
	make    func() Type
}

var primitives = []primitive{
	{"sbyte", "System.SByte", integral("sbyte")},
	{"byte", "System.Byte", integral("byte")},
	{"short", "System.Int16", integral("short")},
	{"ushort", "System.UInt16", integral("ushort")},
	{"int", "System.Int32", integral("int")},
	{"uint", "System.UInt32", integral("uint")},
	{"long", "System.Int64", integral("long")},
	{"ulong", "System.UInt64", integral("ulong")},
	{"nint", "System.IntPtr", integral("nint")},
	{"nuint", "System.UIntPtr", integral("nuint")},
	{"float", "System.Single", floating("float")},
	{"double", "System.Double", floating("double")},
	{"decimal", "System.Decimal", func() Type { return MakeNumeric("decimal", FamilyDecimal) }},
	{"bool", "System.Boolean", MakeBool},
	{"char", "System.Char", MakeChar},
	{"string", "System.String", MakeString},
	{"object", "System.Object", MakeObject},
	{"", "System.Type", MakeSystemType},
}

func integral(name string) func() Type {
	return func() Type { return MakeNumeric(name, FamilyIntegral) }
}

func floating(name string) func() Type {
	return func() Type { return MakeNumeric(name, FamilyFloatingPoint) }
}

var builtinIndex = func() map[string]func() Type {
	m := make(map[string]func() Type, len(primitives)*2)
	for _, p := range primitives {
		if p.keyword != "" {
			m[p.keyword] = p.make
		}
		m[p.system] = p.make
	}
	return m
}()

// Builtin resolves a C# keyword ("int") or a fully qualified System name
// ("System.Int32") to its descriptor. Names without the System prefix are
// not builtins by themselves; the resolver applies `using System;` first.
func Builtin(name string) (Type, bool) {
	mk, ok := builtinIndex[Identity(name)]
	if !ok {
		return Type{}, false
	}
	return mk(), true
}

// IsKeyword reports whether name is a C# predefined type keyword.
func IsKeyword(name string) bool {
	for _, p := range primitives {
		if p.keyword != "" && p.keyword == name {
			return true
		}
	}
	return false
}

// Identity canonicalizes a type name: NFC form, no `global::` alias,
// no whitespace around dots. Enum and interface identity compare this form.
func Identity(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "global::")
	if strings.ContainsAny(name, " \t\n") {
		name = strings.Join(strings.Fields(name), "")
	}
	if !norm.NFC.IsNormalString(name) {
		name = norm.NFC.String(name)
	}
	return name
}
