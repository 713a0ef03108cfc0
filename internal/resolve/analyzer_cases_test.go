package resolve_test

import (
	"testing"

	"theorycheck/internal/diag"
)

var (
	integerValues       = []string{"42", "42L", "42u", "42ul", "(short)42", "(byte)42", "(ushort)42", "(sbyte)42"}
	floatingPointValues = []string{"42f", "42d"}
	numericValues       = append(append([]string{}, integerValues...), floatingPointValues...)
	boolValues          = []string{"true", "false"}
	numericTypes        = []string{"int", "long", "short", "byte", "float", "double", "decimal", "uint", "ulong", "ushort", "sbyte"}
	valueTypes          = []string{
		"bool", "int", "byte", "short", "long", "decimal", "double", "float", "char",
		"ulong", "uint", "ushort", "sbyte", "System.StringComparison", "System.Guid",
	}
)

func notConvertible(typ string) string {
	return "The value is not convertible to the method parameter 'a' of type '" + typ + "'."
}

func TestFactMethodIsNotChecked(t *testing.T) {
	expectNone(t, "public class TestClass { [Xunit.Fact] public void TestMethod() { } }")
	expectNone(t, "public class TestClass { [Xunit.Fact, Xunit.InlineData] public void TestMethod(string a) { } }")
}

func TestArgumentMatch(t *testing.T) {
	for _, value := range []string{
		`"abc", 1, null`,
		`new object[] {"abc", 1, null}`,
		`data: new object[] {"abc", 1, null}`,
		`new [] {(object)"abc", 1, null}`,
		`data: new [] {(object)"abc", 1, null}`,
	} {
		expectNone(t, testClass(value, "string a, int b, object c"))
	}
}

func TestTooFewArguments(t *testing.T) {
	expectOne(t, testClass("1", "int a, int b, string c"),
		diag.RuleInlineDataShortfall, diag.SevError, "InlineData values must match the number of method parameters")
}

func TestTooManyArguments(t *testing.T) {
	ds := analyze(t, testClass(`1, 2, "abc"`, "int a"))
	want := []string{
		"There is no matching method parameter for value: 2.",
		`There is no matching method parameter for value: "abc".`,
	}
	if len(ds) != len(want) {
		t.Fatalf("got %s", summary(ds))
	}
	for i, d := range ds {
		if d.Code != diag.RuleInlineDataExcess || d.Severity != diag.SevError || d.Message != want[i] {
			t.Errorf("diagnostic %d: %s", i, summary(ds[i:i+1]))
		}
	}
}

func TestNullValues(t *testing.T) {
	expectOne(t, testClass("null", "int a"), diag.RuleInlineDataNullValueType, diag.SevWarning,
		"Null should not be used for value type parameter 'a' of type 'int'.")

	for _, typ := range valueTypes {
		expectOne(t, testClass("1, null", "int a, "+typ+" b"), diag.RuleInlineDataNullValueType, diag.SevWarning,
			"Null should not be used for value type parameter 'b' of type '"+typ+"'.")
		expectNone(t, testClass("1, null", "int a, "+typ+"? b"))
	}
	for _, typ := range []string{"object", "string", "System.Exception"} {
		expectNone(t, testClass("1, null", "int a, "+typ+" b"))
	}
}

func TestConversionToNumeric(t *testing.T) {
	for _, typ := range numericTypes {
		for _, v := range numericValues {
			expectNone(t, testClass(v, typ+" a"))
			expectNone(t, testClass(v, typ+"? a"))
		}
		for _, v := range boolValues {
			expectOne(t, testClass(v, typ+" a"), diag.RuleInlineDataNotConvertible, diag.SevError, notConvertible(typ))
		}
		expectNone(t, testClass("'a'", typ+" a"))
		expectOne(t, testClass("System.StringComparison.InvariantCulture", typ+" a"),
			diag.RuleInlineDataNotConvertible, diag.SevError, notConvertible(typ))
	}
}

func TestConversionToBool(t *testing.T) {
	for _, v := range boolValues {
		expectNone(t, testClass(v, "bool a"))
		expectNone(t, testClass(v, "bool? a"))
	}
	others := append([]string{"System.StringComparison.Ordinal", "'a'", `"abc"`, "typeof(string)"}, numericValues...)
	for _, v := range others {
		expectOne(t, testClass(v, "bool a"), diag.RuleInlineDataNotConvertible, diag.SevError, notConvertible("bool"))
	}
}

func TestConversionToChar(t *testing.T) {
	for _, v := range append([]string{"'a'"}, integerValues...) {
		expectNone(t, testClass(v, "char a"))
		expectNone(t, testClass(v, "char? a"))
	}
	others := append([]string{"System.StringComparison.Ordinal", `"abc"`, "typeof(string)"}, floatingPointValues...)
	others = append(others, boolValues...)
	for _, v := range others {
		expectOne(t, testClass(v, "char a"), diag.RuleInlineDataNotConvertible, diag.SevError, notConvertible("char"))
	}
}

func TestConversionToEnum(t *testing.T) {
	expectNone(t, testClass("System.StringComparison.Ordinal", "System.StringComparison a"))
	expectNone(t, testClass("System.StringComparison.Ordinal", "System.StringComparison? a"))
	others := append([]string{"'a'", `"abc"`, "typeof(string)"}, numericValues...)
	others = append(others, boolValues...)
	for _, v := range others {
		expectOne(t, testClass(v, "System.StringComparison a"), diag.RuleInlineDataNotConvertible, diag.SevError,
			notConvertible("System.StringComparison"))
	}
}

func TestConversionToType(t *testing.T) {
	expectNone(t, testClass("typeof(string)", "System.Type a"))
	expectNone(t, testClass("null", "System.Type a"))
	others := append([]string{"'a'", `"abc"`, "System.StringComparison.Ordinal"}, numericValues...)
	others = append(others, boolValues...)
	for _, v := range others {
		expectOne(t, testClass(v, "System.Type a"), diag.RuleInlineDataNotConvertible, diag.SevError,
			notConvertible("System.Type"))
	}
}

func TestConversionToString(t *testing.T) {
	expectNone(t, testClass(`"abc"`, "string a"))
	expectNone(t, testClass("null", "string a"))
	others := append([]string{"System.StringComparison.Ordinal", "'a'", "typeof(string)"}, numericValues...)
	others = append(others, boolValues...)
	for _, v := range others {
		expectOne(t, testClass(v, "string a"), diag.RuleInlineDataNotConvertible, diag.SevError, notConvertible("string"))
	}
}

func TestConversionToInterface(t *testing.T) {
	for _, v := range append([]string{"System.StringComparison.Ordinal", "null"}, numericValues...) {
		expectNone(t, testClass(v, "System.IFormattable a"))
	}
	for _, v := range append([]string{"'a'", `"abc"`, "typeof(string)"}, boolValues...) {
		expectOne(t, testClass(v, "System.IFormattable a"), diag.RuleInlineDataNotConvertible, diag.SevError,
			notConvertible("System.IFormattable"))
	}
}

func TestConversionToObject(t *testing.T) {
	values := append([]string{"System.StringComparison.Ordinal", "'a'", `"abc"`, "null", "typeof(string)"}, numericValues...)
	for _, v := range append(values, boolValues...) {
		expectNone(t, testClass(v, "object a"))
	}
}

func TestGenericParameters(t *testing.T) {
	for _, value := range []string{"1", `"abc"`, "null", "typeof(string)", "true"} {
		expectNone(t, "public class TestClass { [Xunit.Theory, Xunit.InlineData("+value+")] public void TestMethod<TValue>(TValue a) { } }")
	}
	expectNone(t, "public class TestClass<T> { [Xunit.Theory, Xunit.InlineData(1, null)] public void TestMethod(T a, T b) { } }")
	expectNone(t, "public class TestClass { [Xunit.Theory, Xunit.InlineData(null)] public void TestMethod<T>(T? a) where T : struct { } }")

	expectOne(t, "public class TestClass { [Xunit.Theory, Xunit.InlineData(null)] public void TestMethod<T>(T a) where T : struct { } }",
		diag.RuleInlineDataNullValueType, diag.SevWarning,
		"Null should not be used for value type parameter 'a' of type 'T'.")
	expectOne(t, "public class Outer<T> where T : unmanaged { public class TestClass { [Xunit.Theory, Xunit.InlineData(null)] public void TestMethod(T a) { } } }",
		diag.RuleInlineDataNullValueType, diag.SevWarning,
		"Null should not be used for value type parameter 'a' of type 'T'.")
	// параметр метода перекрывает параметр типа с тем же именем
	expectNone(t, "public class TestClass<T> where T : struct { [Xunit.Theory, Xunit.InlineData(null)] public void TestMethod<T>(T a) { } }")
}
