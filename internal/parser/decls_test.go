package parser

import (
	"testing"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
)

func TestParseTestClass(t *testing.T) {
	src := `using System;
using Xunit;
using Col = Acme.Color;

namespace Acme.Tests
{
    using System.Collections.Generic;

    public class TestClass : IDisposable
    {
        const int Answer = 42, Other = -1;

        [Fact]
        public void Plain() { }

        [Theory]
        [InlineData(1, "a"), InlineData(2)]
        public void TestMethod(int a, string b = null, params object[] rest) { var x = new { A = 1 }; }

        public int Prop { get; set; } = 3;
        private readonly List<int> items = new();

        public void Dispose() => items.Clear();
    }
}
`
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(f.Usings) != 3 || f.Usings[2].Alias != "Col" || f.Usings[2].Name != "Acme.Color" {
		t.Fatalf("file usings = %+v", f.Usings)
	}
	cls := findType(t, f, "TestClass")
	if cls.Namespace != "Acme.Tests" || cls.FullName() != "Acme.Tests.TestClass" {
		t.Fatalf("namespace = %q", cls.Namespace)
	}
	if len(cls.Usings) != 4 || cls.Usings[3].Name != "System.Collections.Generic" {
		t.Fatalf("usings in scope = %+v", cls.Usings)
	}
	if len(cls.Bases) != 1 || cls.Bases[0].Name != "IDisposable" {
		t.Fatalf("bases = %+v", cls.Bases)
	}
	if len(cls.Consts) != 2 || cls.Consts[1].Name != "Other" {
		t.Fatalf("consts = %+v", cls.Consts)
	}
	if len(cls.Methods) != 3 {
		t.Fatalf("want 3 methods, got %d", len(cls.Methods))
	}

	m := findMethod(t, cls, "TestMethod")
	if !m.HasAttr("Theory") || len(m.Attrs) != 3 {
		t.Fatalf("attrs = %+v", m.Attrs)
	}
	if len(m.Params) != 3 {
		t.Fatalf("params = %+v", m.Params)
	}
	rest := m.Params[2]
	if rest.Modifier != ast.ParamParams || rest.Type.Name != "object" || !rest.Type.IsArray() {
		t.Fatalf("rest param = %+v", rest)
	}
	if !m.Params[1].Default.IsValid() {
		t.Fatal("default value of b not recorded")
	}
	if got := f.Expr(m.Attrs[1].Args[1].Expr).Text; got != `"a"` {
		t.Fatalf("second arg text = %q", got)
	}
}

func TestFileScopedNamespaceAndNestedTypes(t *testing.T) {
	src := `namespace Acme;
public enum Color { Red, Green = 2, [Obsolete] Blue = Green << 1, }
public static class Outer
{
    public interface IShape { }
    public record struct Point(int X, int Y);
    internal class Inner<T> where T : new()
    {
        public enum Mode : byte { On, Off }
    }
}
`
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	color := findType(t, f, "Color")
	if color.Kind != ast.TypeEnum || len(color.EnumMembers) != 3 || color.FullName() != "Acme.Color" {
		t.Fatalf("Color = %+v", color)
	}
	if color.EnumMembers[0].Value.IsValid() || !color.EnumMembers[2].Value.IsValid() {
		t.Fatal("enum member values misparsed")
	}
	mode := findType(t, f, "Mode")
	if mode.FullName() != "Acme.Outer.Inner.Mode" {
		t.Fatalf("Mode full name = %q", mode.FullName())
	}
	inner := findType(t, f, "Inner")
	if inner.Arity != 1 {
		t.Fatalf("Inner arity = %d", inner.Arity)
	}
	if p := findType(t, f, "Point"); p.Kind != ast.TypeRecordStruct {
		t.Fatalf("Point kind = %v", p.Kind)
	}
	if s := findType(t, f, "IShape"); s.Kind != ast.TypeInterface {
		t.Fatalf("IShape kind = %v", s.Kind)
	}
	// внешний тип идёт перед вложенными
	if f.Types[1].Name != "Outer" {
		t.Fatalf("order: %s", f.Types[1].Name)
	}
}

func TestNamespaceUsingsAreScoped(t *testing.T) {
	src := `namespace A { using X; class C1 { } }
namespace B { class C2 { } }
`
	f, _ := parseSource(t, src)
	if got := len(findType(t, f, "C1").Usings); got != 1 {
		t.Fatalf("C1 usings = %d", got)
	}
	if got := len(findType(t, f, "C2").Usings); got != 0 {
		t.Fatalf("C2 usings = %d", got)
	}
}

func TestParamTypes(t *testing.T) {
	src := `class C {
    [Theory]
    void M(int? a, global::System.Guid g, List<string>[] l, int[,] grid, (int, string) pair, this ref int r, out bool o) { }
}`
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ps := findMethod(t, findType(t, f, "C"), "M").Params
	if !ps[0].Type.Nullable || ps[0].Type.Name != "int" || ps[0].Type.Text != "int?" {
		t.Fatalf("a = %+v", ps[0].Type)
	}
	if ps[1].Type.Name != "global::System.Guid" {
		t.Fatalf("g = %q", ps[1].Type.Name)
	}
	if len(ps[2].Type.Args) != 1 || !ps[2].Type.IsArray() {
		t.Fatalf("l = %+v", ps[2].Type)
	}
	if ps[3].Type.Ranks[0] != 2 {
		t.Fatalf("grid ranks = %v", ps[3].Type.Ranks)
	}
	if len(ps[4].Type.Tuple) != 2 {
		t.Fatalf("pair = %+v", ps[4].Type)
	}
	if ps[5].Modifier != ast.ParamThis || ps[6].Modifier != ast.ParamOut {
		t.Fatalf("modifiers = %v %v", ps[5].Modifier, ps[6].Modifier)
	}
}

func TestParamsNotLast(t *testing.T) {
	f, bag := parseSource(t, `class C { void M(params int[] xs, int y) { } }`)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynParamsNotLast {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(findMethod(t, findType(t, f, "C"), "M").Params) != 2 {
		t.Fatal("params lost")
	}
}

func TestRecoversFromGarbage(t *testing.T) {
	src := `using System;
garbage here;
class Good { [Theory] void M(int a) { } }
[assembly: CollectionBehavior(DisableTestParallelization = true)]
class AlsoGood { }
`
	f, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected an error for the garbage line")
	}
	findMethod(t, findType(t, f, "Good"), "M")
	findType(t, f, "AlsoGood")
}

func TestUnclosedClass(t *testing.T) {
	_, bag := parseSource(t, "class C { void M() { }")
	if bag.Len() == 0 || bag.Items()[0].Code != diag.SynUnclosedDelimiter {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
}

func TestMaxErrors(t *testing.T) {
	fs := `} } } } }`
	_, bag := parseSourceWithMax(t, fs, 2)
	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %d", bag.Len())
	}
}

func TestTypeParamsAndConstraints(t *testing.T) {
	src := `public class Box<[Marker] in TKey, out TValue> : IBox<TKey> where TKey : struct, IComparable<TKey> where TValue : class, new()
{
    [Theory, InlineData(1, 2)]
    public void Put<T, U>(T a, U b) where U : unmanaged => Do(a, b);

    public void Plain(int a) { }
}`
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	box := findType(t, f, "Box")
	if box.Arity != 2 {
		t.Fatalf("Box arity = %d", box.Arity)
	}
	put := findMethod(t, box, "Put")
	if len(put.Params) != 2 {
		t.Fatalf("Put params = %d", len(put.Params))
	}
	tests := []struct {
		owner string
		got   []ast.TypeParam
		want  []ast.TypeParam
	}{
		{"Box", box.TypeParams, []ast.TypeParam{{Name: "TKey", ValueType: true}, {Name: "TValue"}}},
		{"Put", put.TypeParams, []ast.TypeParam{{Name: "T"}, {Name: "U", ValueType: true}}},
		{"Plain", findMethod(t, box, "Plain").TypeParams, nil},
	}
	for _, tt := range tests {
		if len(tt.got) != len(tt.want) {
			t.Fatalf("%s type params = %+v; want %+v", tt.owner, tt.got, tt.want)
		}
		for i := range tt.want {
			if tt.got[i].Name != tt.want[i].Name || tt.got[i].ValueType != tt.want[i].ValueType {
				t.Fatalf("%s type param %d = %+v; want %+v", tt.owner, i, tt.got[i], tt.want[i])
			}
		}
	}
}
