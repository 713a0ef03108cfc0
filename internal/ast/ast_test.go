package ast

import "testing"

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("got id=%d len=%d", id, a.Len())
	}
}

func TestShortName(t *testing.T) {
	tests := map[string]string{
		"InlineData":                    "InlineData",
		"InlineDataAttribute":           "InlineData",
		"Xunit.InlineDataAttribute":     "InlineData",
		"global::Xunit.TheoryAttribute": "Theory",
		"Attribute":                     "Attribute",
		"Acme.Testing.InlineData":       "InlineData",
	}
	for in, want := range tests {
		if got := ShortName(in); got != want {
			t.Errorf("ShortName(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestAttrIs(t *testing.T) {
	a := Attr{Name: "Xunit.TheoryAttribute"}
	if !a.Is("Theory") || a.Is("Fact") {
		t.Fatal("Is mismatch")
	}
	m := Method{Attrs: []Attr{{Name: "Fact"}, {Name: "InlineData"}}}
	if !m.HasAttr("InlineDataAttribute") || m.HasAttr("Theory") {
		t.Fatal("HasAttr mismatch")
	}
}

func TestFullNameAndElemRef(t *testing.T) {
	d := TypeDecl{Namespace: "Acme", Outer: "Tests", Name: "Color"}
	if got := d.FullName(); got != "Acme.Tests.Color" {
		t.Fatalf("FullName = %q", got)
	}
	r := TypeRef{Name: "int", Ranks: []int{1, 2}}
	e := r.ElemRef()
	if len(e.Ranks) != 1 || e.Ranks[0] != 2 || !r.IsArray() || r.ElemRef().ElemRef().IsArray() {
		t.Fatalf("ElemRef ranks = %v", e.Ranks)
	}
}
