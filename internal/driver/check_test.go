package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"theorycheck/internal/diag"
	"theorycheck/internal/project"
	"theorycheck/internal/source"
)

const colorsSource = `namespace Acme
{
    public enum Color { Red, Green }
}
`

const testsSource = `using Acme;
using Xunit;

namespace Acme.Tests
{
    public class ColorTests
    {
        [Theory]
        [InlineData(Color.Red, 1)]
        [InlineData(1, 2)]
        [InlineData(null, 3)]
        public void Paint(Color c, int n) { }
    }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func codesOf(diags []*diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func sameCodes(got, want []diag.Code) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCheckPathAcrossFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Colors.cs":          colorsSource,
		"tests/ColorTests.cs":    testsSource,
		"tests/obj/Generated.cs": "garbage {{{",
	})
	res, err := CheckPath(context.Background(), root, Request{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckPath: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %d, want 2 (obj/ is skipped)", len(res.Files))
	}
	if res.Files[0].Bag.Len() != 0 {
		t.Fatalf("Colors.cs: %v", res.Files[0].Bag.Items())
	}
	tests := res.Files[1]
	if filepath.Base(tests.Path) != "ColorTests.cs" || tests.Sites != 3 {
		t.Fatalf("tests file = %+v", tests)
	}
	want := []diag.Code{diag.RuleInlineDataNotConvertible, diag.RuleInlineDataNullValueType}
	if got := codesOf(tests.Bag.Pointers()); !sameCodes(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors = false")
	}
	if errs, warns := res.Counts(); errs != 1 || warns != 1 {
		t.Fatalf("counts = %d/%d", errs, warns)
	}
	if res.Sites() != 3 {
		t.Fatalf("Sites = %d", res.Sites())
	}
	var phases []string
	for _, p := range res.Timings.Phases {
		phases = append(phases, p.Name)
	}
	if got := strings.Join(phases, ","); got != "load,parse,resolve,check" {
		t.Fatalf("timing phases = %q", got)
	}
	if res.Timings.Phases[0].Note != "2 files" {
		t.Fatalf("load note = %q", res.Timings.Phases[0].Note)
	}
}

func TestCheckPathWarningPolicy(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": colorsSource, "B.cs": testsSource})

	res, err := CheckPath(context.Background(), root, Request{IgnoreWarnings: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, warns := res.Counts(); warns != 0 {
		t.Fatalf("warnings kept: %d", warns)
	}

	res, err = CheckPath(context.Background(), root, Request{WarningsAsErrors: true})
	if err != nil {
		t.Fatal(err)
	}
	if errs, warns := res.Counts(); errs != 2 || warns != 0 {
		t.Fatalf("counts = %d/%d", errs, warns)
	}
}

func TestCheckPathSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"B.cs": testsSource})
	res, err := CheckPath(context.Background(), filepath.Join(root, "B.cs"), Request{})
	if err != nil {
		t.Fatal(err)
	}
	// без Colors.cs перечисление неизвестно: Color.Red не классифицируется
	got := codesOf(res.Diagnostics())
	if len(got) == 0 {
		t.Fatal("want diagnostics for unresolved Color")
	}
}

func TestCheckPathManifestScope(t *testing.T) {
	root := writeTree(t, map[string]string{
		"theorycheck.toml":          "[project]\ninclude = [\"tests\"]\nexclude = [\"tests/generated\"]\n",
		"tests/B.cs":                testsSource,
		"tests/generated/Broken.cs": "class {",
		"other/Ignored.cs":          "class {",
	})
	fs := source.NewFileSet()
	bag := diag.NewBag(10)
	m, ok, err := project.Load(fs, root, diag.BagReporter{Bag: bag})
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	res, err := CheckPath(context.Background(), root, Request{
		Manifest: m,
		FileSet:  fs,
		Decls:    m.Decls(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 1 || filepath.Base(res.Files[0].Path) != "B.cs" {
		t.Fatalf("files = %+v", res.Files)
	}
}

func TestCheckPathManifestDecls(t *testing.T) {
	root := writeTree(t, map[string]string{
		"theorycheck.toml": "[[types.enum]]\nname = \"Acme.Color\"\n",
		"B.cs":             testsSource,
	})
	fs := source.NewFileSet()
	m, _, err := project.Load(fs, root, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := CheckPath(context.Background(), root, Request{Manifest: m, FileSet: fs, Decls: m.Decls()})
	if err != nil {
		t.Fatal(err)
	}
	want := []diag.Code{diag.RuleInlineDataNotConvertible, diag.RuleInlineDataNullValueType}
	if got := codesOf(res.Diagnostics()); !sameCodes(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
}

func TestCheckPathNoSources(t *testing.T) {
	root := writeTree(t, map[string]string{"readme.md": "x"})
	if _, err := CheckPath(context.Background(), root, Request{}); !errors.Is(err, ErrNoSources) {
		t.Fatalf("err = %v, want ErrNoSources", err)
	}
}

func TestCheckPathCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": colorsSource, "B.cs": testsSource})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPath(ctx, root, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckPathUsesDiskCache(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": colorsSource, "B.cs": testsSource})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := CheckPath(context.Background(), root, Request{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHits != 0 {
		t.Fatalf("cold run hits = %d", first.CacheHits)
	}
	second, err := CheckPath(context.Background(), root, Request{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHits != 2 {
		t.Fatalf("warm run hits = %d, want 2", second.CacheHits)
	}
	a := diag.FormatShortDiagnostics(first.Diagnostics(), first.FileSet, true)
	b := diag.FormatShortDiagnostics(second.Diagnostics(), second.FileSet, true)
	if a != b {
		t.Fatalf("cached output differs:\n%s\n---\n%s", a, b)
	}
	if second.Sites() != 3 {
		t.Fatalf("cached sites = %d", second.Sites())
	}

	// новое значение перечисления меняет окружение и ключ
	if err := os.WriteFile(filepath.Join(root, "A.cs"), []byte(`namespace Acme { public enum Color { Red, Green, Blue } public class Extra { } }`), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := CheckPath(context.Background(), root, Request{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHits != 0 {
		t.Fatalf("hits after env change = %d", third.CacheHits)
	}

	fourth, err := CheckPath(context.Background(), root, Request{Cache: cache, StrictTail: true})
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheHits != 0 {
		t.Fatalf("hits after option change = %d", fourth.CacheHits)
	}
}

// cancelSink cancels the run once file reaches the check stage.
type cancelSink struct {
	file   string
	cancel context.CancelFunc
}

func (s cancelSink) OnEvent(ev Event) {
	if ev.Stage == StageCheck && ev.Status == StatusWorking && filepath.Base(ev.File) == s.file {
		s.cancel()
	}
}

func TestCheckPathCanceledMidCheckIsNotCached(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": colorsSource, "B.cs": testsSource})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err = CheckPath(ctx, root, Request{Jobs: 1, Cache: cache, Sink: cancelSink{file: "B.cs", cancel: cancel}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	res, err := CheckPath(context.Background(), root, Request{Jobs: 1, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHits != 1 {
		t.Fatalf("hits = %d, want 1 (only A.cs finished)", res.CacheHits)
	}
	if errs, warns := res.Counts(); errs != 1 || warns != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", errs, warns)
	}
}

func TestCheckPathCapsDiagnosticsPerFile(t *testing.T) {
	root := writeTree(t, map[string]string{"T.cs": `public class Tests
{
    [Theory, InlineData(Helper.Compute(), "x", "y")]
    public void M(int a, int b, int c) { }
}`})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for run := range 2 {
		res, err := CheckPath(context.Background(), root, Request{MaxDiagnostics: 2, Cache: cache})
		if err != nil {
			t.Fatal(err)
		}
		bag := res.Files[0].Bag
		if bag.Len() != 2 {
			t.Fatalf("run %d: Len = %d, want 2", run, bag.Len())
		}
		for _, d := range bag.Items() {
			if d.Severity != diag.SevError || d.Code != diag.RuleInlineDataNotConvertible {
				t.Fatalf("run %d: kept %s %s; want the errors", run, d.Code.ID(), d.Severity)
			}
		}
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestCheckPathProgressEvents(t *testing.T) {
	root := writeTree(t, map[string]string{"A.cs": colorsSource, "B.cs": testsSource})
	sink := &recordingSink{}
	res, err := CheckPath(context.Background(), root, Request{Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	finished := make(map[string]Status)
	for _, ev := range sink.events {
		if ev.Stage == StageCheck && ev.File != "" && ev.Status != StatusWorking {
			finished[ev.File] = ev.Status
		}
	}
	if finished[res.Files[0].Path] != StatusDone || finished[res.Files[1].Path] != StatusError {
		t.Fatalf("final statuses = %v", finished)
	}
	last := sink.events[len(sink.events)-1]
	if last.File != "" || last.Stage != StageCheck || last.Status != StatusDone {
		t.Fatalf("last event = %+v", last)
	}
}
