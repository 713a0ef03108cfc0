package diag

import (
	"testing"

	"theorycheck/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(RuleInlineDataExcess, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v; want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d; want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(RuleInlineDataNullValueType, source.Span{File: 0, Start: 10, End: 14}, "w"))
	b.Add(NewError(RuleInlineDataNotConvertible, source.Span{File: 0, Start: 10, End: 14}, "e"))
	b.Add(NewError(RuleInlineDataExcess, source.Span{File: 0, Start: 2, End: 3}, "first"))
	b.Add(NewError(RuleInlineDataShortfall, source.Span{File: 1, Start: 0, End: 1}, "other file"))
	b.Sort()

	want := []Code{RuleInlineDataExcess, RuleInlineDataNotConvertible, RuleInlineDataNullValueType, RuleInlineDataShortfall}
	for i, d := range b.Items() {
		if d.Code != want[i] {
			t.Fatalf("item %d = %s; want %s", i, d.Code.ID(), want[i].ID())
		}
	}
}

func TestBagPromoteAndFilter(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(RuleInlineDataNullValueType, source.Span{}, "null"))
	b.Add(NewWarning(SynUnsupportedArgument, source.Span{Start: 4}, "unsupported"))
	if b.HasErrors() {
		t.Fatal("no errors expected yet")
	}

	b.Filter(func(d Diagnostic) bool { return d.Code.IsRule() })
	if b.Len() != 1 {
		t.Fatalf("Len after filter = %d; want 1", b.Len())
	}
	b.PromoteWarnings()
	if !b.HasErrors() || b.Items()[0].Severity != SevError {
		t.Fatal("warning was not promoted")
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(RuleInlineDataExcess, source.Span{Start: 1}, "x"))
	other := NewBag(4)
	other.Add(NewError(RuleInlineDataExcess, source.Span{Start: 1}, "x"))
	other.Add(NewError(RuleInlineDataExcess, source.Span{Start: 2}, "y"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("Len after merge = %d; want 3", a.Len())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Fatalf("Len after dedup = %d; want 2", a.Len())
	}
}

func TestBagLimitKeepsMostSevere(t *testing.T) {
	b := NewBag(2)
	other := NewBag(0)
	other.Add(NewWarning(SynUnsupportedArgument, source.Span{Start: 1}, "w"))
	other.Add(NewError(RuleInlineDataExcess, source.Span{Start: 5}, "e1"))
	other.Add(NewError(RuleInlineDataExcess, source.Span{Start: 3}, "e2"))
	b.Merge(other)
	if b.Len() != 3 {
		t.Fatalf("Len after merge = %d; want 3", b.Len())
	}

	b.Limit(2)
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("Len = %d, Cap = %d; want 2, 2", b.Len(), b.Cap())
	}
	want := []string{"e2", "e1"}
	for i, d := range b.Items() {
		if d.Severity != SevError || d.Message != want[i] {
			t.Fatalf("item %d = %s %q; want error %q", i, d.Severity, d.Message, want[i])
		}
	}
	if b.Add(NewError(RuleInlineDataExcess, source.Span{}, "more")) {
		t.Fatal("Add past the limit succeeded")
	}

	b.Limit(0)
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("Limit(0) changed the bag: Len = %d, Cap = %d", b.Len(), b.Cap())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{RuleInlineDataShortfall, "xUnit1009"},
		{RuleInlineDataNotConvertible, "xUnit1010"},
		{RuleInlineDataExcess, "xUnit1011"},
		{RuleInlineDataNullValueType, "xUnit1012"},
		{LexBadNumber, "LEX2005"},
		{SynUnsupportedArgument, "SYN3005"},
		{IOReadFailed, "IO4001"},
		{PrjManifestInvalid, "PRJ5002"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q; want %q", tt.code, got, tt.id)
		}
		parsed, ok := ParseCode(tt.id)
		if !ok || parsed != tt.code {
			t.Errorf("ParseCode(%q) = %d,%v", tt.id, parsed, ok)
		}
	}
	if c, ok := ParseCode("xunit1012"); !ok || c != RuleInlineDataNullValueType {
		t.Fatal("ParseCode must ignore case")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	counter := &CountingReporter{Next: BagReporter{Bag: bag}}
	r := NewDedupReporter(counter)
	for range 3 {
		ReportError(r, SynUnexpectedToken, source.Span{Start: 5, End: 6}, "unexpected ')'").Emit()
	}
	ReportWarning(r, SynUnsupportedArgument, source.Span{Start: 5, End: 6}, "other").Emit()
	if bag.Len() != 2 || counter.Errors != 1 || counter.Warnings != 1 {
		t.Fatalf("bag=%d errors=%d warnings=%d", bag.Len(), counter.Errors, counter.Warnings)
	}
}
