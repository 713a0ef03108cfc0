package sema

import (
	"context"
	"errors"
	"slices"
	"testing"

	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/types"
)

func runSite(t *testing.T, site Site, bind BindOptions) []diag.Diagnostic {
	t.Helper()
	bag := diag.NewBag(0)
	CheckSite(site, Options{Reporter: diag.BagReporter{Bag: bag}, Bind: bind})
	return bag.Items()
}

func siteOf(params []types.Param, args ...types.Value) Site {
	return Site{Method: "TestMethod", Attr: source.Span{Start: 1, End: 5}, Params: params, Args: args}
}

func TestCheckSiteShortfall(t *testing.T) {
	params := []types.Param{param("a", 0, tInt), param("b", 1, tInt), param("c", 2, tString)}
	site := siteOf(params, vInt("1"))

	got := runSite(t, site, BindOptions{})
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics; want 1", len(got))
	}
	d := got[0]
	if d.Code != diag.RuleInlineDataShortfall || d.Severity != diag.SevError {
		t.Fatalf("got %s/%s", d.Code.ID(), d.Severity)
	}
	if d.Message != "InlineData values must match the number of method parameters" {
		t.Fatalf("message = %q", d.Message)
	}
	if d.Primary != site.Attr {
		t.Fatal("shortfall must point at the attribute")
	}
}

func TestCheckSiteExcess(t *testing.T) {
	params := []types.Param{param("a", 0, tInt)}
	got := runSite(t, siteOf(params, vInt("1"), vInt("2"), vString(`"abc"`)), BindOptions{})

	want := []string{
		"There is no matching method parameter for value: 2.",
		`There is no matching method parameter for value: "abc".`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics; want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.Code != diag.RuleInlineDataExcess || d.Severity != diag.SevError || d.Message != want[i] {
			t.Fatalf("diagnostic %d = %s %q", i, d.Code.ID(), d.Message)
		}
	}
}

func TestCheckSiteNullOnValueType(t *testing.T) {
	a := param("a", 0, tInt)
	got := runSite(t, siteOf([]types.Param{a}, vNull()), BindOptions{})
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics; want 1", len(got))
	}
	d := got[0]
	if d.Code != diag.RuleInlineDataNullValueType || d.Severity != diag.SevWarning {
		t.Fatalf("got %s/%s", d.Code.ID(), d.Severity)
	}
	if d.Message != "Null should not be used for value type parameter 'a' of type 'int'." {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != a.Span {
		t.Fatalf("expected a note at the parameter, got %+v", d.Notes)
	}

	nullable := param("a", 0, tNullInt)
	if got := runSite(t, siteOf([]types.Param{nullable}, vNull()), BindOptions{}); len(got) != 0 {
		t.Fatalf("int? accepts null, got %v", got)
	}
}

func TestCheckSiteNullNeverReachesConversion(t *testing.T) {
	// null на Guid: только предупреждение, без xUnit1010
	got := runSite(t, siteOf([]types.Param{param("g", 0, tGuid)}, vNull()), BindOptions{})
	if len(got) != 1 || got[0].Code != diag.RuleInlineDataNullValueType {
		t.Fatalf("got %v", got)
	}
	// null на неизвестный тип молчит
	if got := runSite(t, siteOf([]types.Param{param("u", 0, tUnknown)}, vNull()), BindOptions{}); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestCheckSiteNotConvertible(t *testing.T) {
	tests := []struct {
		target types.Type
		value  types.Value
		shown  string
	}{
		{tInt, vBool(), "int"},
		{tLong, vEnum(), "long"},
		{tChar, vDouble("1.5"), "char"},
		{tCompare, vInt("1"), "System.StringComparison"},
		{tType, vString(`"a"`), "System.Type"},
		{tString, vInt("1"), "string"},
		{tFormat, vBool(), "System.IFormattable"},
		{tNullInt, vBool(), "int?"},
	}
	for _, tt := range tests {
		got := runSite(t, siteOf([]types.Param{param("a", 0, tt.target)}, tt.value), BindOptions{})
		if len(got) != 1 {
			t.Fatalf("%s <- %s: got %d diagnostics", tt.shown, tt.value, len(got))
		}
		want := "The value is not convertible to the method parameter 'a' of type '" + tt.shown + "'."
		if got[0].Code != diag.RuleInlineDataNotConvertible || got[0].Severity != diag.SevError || got[0].Message != want {
			t.Errorf("%s <- %s: %s %q", tt.shown, tt.value, got[0].Code.ID(), got[0].Message)
		}
	}
}

func TestCheckSiteOrder(t *testing.T) {
	// хвост молча поглощает лишнее, фиксированные параметры проверяются по порядку
	params := []types.Param{param("a", 0, tInt), param("b", 1, tBool), tail("rest", 2, tInt)}
	got := runSite(t, siteOf(params, vString(`"x"`), vNull(), vInt("3")), BindOptions{})

	codes := make([]diag.Code, len(got))
	for i, d := range got {
		codes[i] = d.Code
	}
	want := []diag.Code{diag.RuleInlineDataNotConvertible, diag.RuleInlineDataNullValueType}
	if !slices.Equal(codes, want) {
		t.Fatalf("codes = %v; want %v", codes, want)
	}

	// счётные диагностики идут первыми
	params = []types.Param{param("a", 0, tInt), param("b", 1, tInt)}
	got = runSite(t, siteOf(params, vBool()), BindOptions{})
	if len(got) != 2 || got[0].Code != diag.RuleInlineDataShortfall || got[1].Code != diag.RuleInlineDataNotConvertible {
		t.Fatalf("got %v", got)
	}
}

// The params array's own elements are not checked against its element type.
// This mirrors the established analyzer behaviour and is kept on purpose.
func TestTailElementsAreNotTypeChecked(t *testing.T) {
	params := []types.Param{tail("values", 0, tInt)}
	got := runSite(t, siteOf(params, vString(`"not an int"`), vNull(), vBool()), BindOptions{})
	if len(got) != 0 {
		t.Fatalf("tail elements produced diagnostics: %v", got)
	}
	got = runSite(t, siteOf(params, vArray(vString(`"x"`))), BindOptions{})
	if len(got) != 0 {
		t.Fatalf("expanded array elements produced diagnostics: %v", got)
	}
}

func TestCheckSiteStrictTail(t *testing.T) {
	params := []types.Param{param("a", 0, tInt), tail("rest", 1, tInt)}
	got := runSite(t, siteOf(params), BindOptions{StrictTail: true})
	if len(got) != 1 || got[0].Code != diag.RuleInlineDataShortfall {
		t.Fatalf("got %v", got)
	}
}

func runCheck(t *testing.T, sites []Site, opts Options) *diag.Bag {
	t.Helper()
	bag, err := Check(context.Background(), sites, opts)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return bag
}

func sameItems(t *testing.T, want, got []diag.Diagnostic) {
	t.Helper()
	if len(want) == 0 || len(want) != len(got) {
		t.Fatalf("lens differ: %d vs %d", len(want), len(got))
	}
	for i := range want {
		a, b := want[i], got[i]
		if a.Code != b.Code || a.Message != b.Message || a.Primary != b.Primary {
			t.Fatalf("item %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	params := []types.Param{param("a", 0, tInt), param("b", 1, tString)}
	sites := []Site{
		siteOf(params, vBool(), vInt("1"), vInt("2")),
		siteOf(params, vNull(), vNull()),
		siteOf(params, vInt("1")),
	}

	first := runCheck(t, sites, Options{})
	second := runCheck(t, sites, Options{})
	sameItems(t, first.Items(), second.Items())
}

func TestCheckIgnoresSiteOrder(t *testing.T) {
	params := []types.Param{param("a", 0, tInt), param("b", 1, tString)}
	site := func(args ...types.Value) Site {
		s := siteOf(params, args...)
		s.Attr = sp()
		return s
	}
	sites := []Site{
		site(vBool(), vInt("1"), vInt("2")),
		site(vNull(), vNull()),
		site(vInt("1")),
		site(vString(`"x"`), vChar()),
	}
	want := runCheck(t, sites, Options{}).Items()

	orders := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, order := range orders {
		permuted := make([]Site, 0, len(sites))
		for _, i := range order {
			permuted = append(permuted, sites[i])
		}
		got := runCheck(t, permuted, Options{}).Items()
		sameItems(t, want, got)
	}
}

func TestCheckStopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sites := []Site{siteOf([]types.Param{param("a", 0, tInt)}, vNull())}
	bag, err := Check(ctx, sites, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("canceled check reported %d diagnostics", bag.Len())
	}
}

func TestCheckForwardsToReporter(t *testing.T) {
	extra := diag.NewBag(0)
	sites := []Site{siteOf([]types.Param{param("a", 0, tInt)}, vNull())}
	bag := runCheck(t, sites, Options{Reporter: diag.BagReporter{Bag: extra}})
	if bag.Len() != 1 || extra.Len() != 1 {
		t.Fatalf("bag=%d reporter=%d", bag.Len(), extra.Len())
	}
}
