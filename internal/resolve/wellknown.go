package resolve

import "theorycheck/internal/types"

// wellKnownTypes: System-типы, которые встречаются в параметрах тестов.
// Числовые и прочие примитивы разрешает types.Builtin.
func wellKnownTypes() []types.Type {
	comparable := types.Numerics.Union(types.NewNaturalSet(
		types.NatBool, types.NatChar, types.NatString, types.NatEnum))
	valueTypes := types.Numerics.Union(types.NewNaturalSet(
		types.NatBool, types.NatChar, types.NatEnum))

	return []types.Type{
		types.MakeStruct("System.Guid"),
		types.MakeStruct("System.DateTime"),
		types.MakeStruct("System.DateTimeOffset"),
		types.MakeStruct("System.TimeSpan"),
		types.MakeStruct("System.DateOnly"),
		types.MakeStruct("System.TimeOnly"),
		types.MakeStruct("System.Half"),
		types.MakeStruct("System.Numerics.BigInteger"),

		types.MakeReference("System.Exception"),
		types.MakeReference("System.ArgumentException"),
		types.MakeReference("System.InvalidOperationException"),
		types.MakeReference("System.Uri"),
		types.MakeReference("System.Version"),
		types.MakeReference("System.Text.StringBuilder"),
		types.MakeReference("System.Text.Encoding"),
		types.MakeReference("System.Globalization.CultureInfo"),

		types.MakeEnum("System.StringComparison"),
		types.MakeEnum("System.StringSplitOptions"),
		types.MakeEnum("System.DayOfWeek"),
		types.MakeEnum("System.DateTimeKind"),
		types.MakeEnum("System.UriKind"),
		types.MakeEnum("System.MidpointRounding"),
		types.MakeEnum("System.Globalization.NumberStyles"),
		types.MakeEnum("System.IO.FileMode"),
		types.MakeEnum("System.IO.FileAccess"),
		types.MakeEnum("System.Text.RegularExpressions.RegexOptions"),

		types.MakeInterface("System.IFormattable", types.Numerics.With(types.NatEnum)),
		types.MakeInterface("System.IComparable", comparable),
		types.MakeInterface("System.IConvertible", comparable),
		types.MakeInterface("System.ICloneable", types.NewNaturalSet(types.NatString, types.NatArray)),
		types.MakeInterface("System.Collections.IEnumerable", types.NewNaturalSet(types.NatString, types.NatArray)),
		types.MakeInterface("System.Collections.ICollection", types.NewNaturalSet(types.NatArray)),
		types.MakeInterface("System.Collections.IList", types.NewNaturalSet(types.NatArray)),

		// абстрактные базовые классы ведут себя как интерфейсы с известными реализациями
		types.MakeInterface("System.Enum", types.NewNaturalSet(types.NatEnum)),
		types.MakeInterface("System.ValueType", valueTypes),
		types.MakeInterface("System.Array", types.NewNaturalSet(types.NatArray)),
	}
}
