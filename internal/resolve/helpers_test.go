package resolve_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/parser"
	"theorycheck/internal/resolve"
	"theorycheck/internal/sema"
	"theorycheck/internal/source"
)

type frontEnd struct {
	files []*ast.File
	env   *resolve.Env
	bag   *diag.Bag // lexer, parser and resolver diagnostics
}

func load(t *testing.T, decls []resolve.Decl, sources ...string) *frontEnd {
	t.Helper()
	fs := source.NewFileSet()
	fe := &frontEnd{bag: diag.NewBag(0)}
	r := diag.BagReporter{Bag: fe.bag}
	for i, src := range sources {
		id := fs.AddVirtual(fmt.Sprintf("file%d.cs", i), []byte(src))
		fe.files = append(fe.files, parser.ParseFile(fs.Get(id), parser.Options{Reporter: r}))
	}
	fe.env = resolve.NewEnv(fe.files, decls, r)
	return fe
}

func (fe *frontEnd) sites(cfg resolve.Config) []sema.Site {
	cfg.Reporter = diag.BagReporter{Bag: fe.bag}
	var out []sema.Site
	for _, f := range fe.files {
		out = append(out, fe.env.Sites(f, cfg)...)
	}
	return out
}

// analyze runs the whole pipeline on one file and fails on front-end
// diagnostics.
func analyze(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	fe := load(t, nil, src)
	sites := fe.sites(resolve.Config{})
	if fe.bag.Len() != 0 {
		t.Fatalf("front-end diagnostics for %q: %s", src, summary(fe.bag.Items()))
	}
	return checkSites(t, sites)
}

func summary(ds []diag.Diagnostic) string {
	if len(ds) == 0 {
		return "<none>"
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = fmt.Sprintf("[%s %s] %s", d.Code.ID(), d.Severity, d.Message)
	}
	return strings.Join(lines, "; ")
}

func testClass(value, params string) string {
	return "public class TestClass { [Xunit.Theory, Xunit.InlineData(" + value + ")] public void TestMethod(" + params + ") { } }"
}

func expectNone(t *testing.T, src string) {
	t.Helper()
	if ds := analyze(t, src); len(ds) != 0 {
		t.Errorf("%s\nunexpected: %s", src, summary(ds))
	}
}

func expectOne(t *testing.T, src string, code diag.Code, sev diag.Severity, msg string) {
	t.Helper()
	ds := analyze(t, src)
	if len(ds) != 1 {
		t.Errorf("%s\nwant one diagnostic, got: %s", src, summary(ds))
		return
	}
	if ds[0].Code != code || ds[0].Severity != sev || ds[0].Message != msg {
		t.Errorf("%s\ngot  [%s %s] %s\nwant [%s %s] %s", src, ds[0].Code.ID(), ds[0].Severity, ds[0].Message, code.ID(), sev, msg)
	}
}

// checkWith runs the pipeline with manifest decls and fails on front-end
// diagnostics.
func checkWith(t *testing.T, decls []resolve.Decl, src string) []diag.Diagnostic {
	t.Helper()
	fe := load(t, decls, src)
	sites := fe.sites(resolve.Config{})
	if fe.bag.Len() != 0 {
		t.Fatalf("front-end diagnostics: %s", summary(fe.bag.Items()))
	}
	return checkSites(t, sites)
}

func checkSites(t *testing.T, sites []sema.Site) []diag.Diagnostic {
	t.Helper()
	bag, err := sema.Check(context.Background(), sites, sema.Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return bag.Items()
}
