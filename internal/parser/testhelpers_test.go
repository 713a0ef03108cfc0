package parser

import (
	"fmt"
	"strings"
	"testing"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	bag := diag.NewBag(100)
	file := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return file, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func findType(t *testing.T, f *ast.File, name string) *ast.TypeDecl {
	t.Helper()
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i]
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

func findMethod(t *testing.T, d *ast.TypeDecl, name string) *ast.Method {
	t.Helper()
	for i := range d.Methods {
		if d.Methods[i].Name == name {
			return &d.Methods[i]
		}
	}
	t.Fatalf("method %s not found in %s", name, d.Name)
	return nil
}

// attrArgExprs returns the argument expressions of a in order.
func attrArgExprs(t *testing.T, f *ast.File, a ast.Attr) []*ast.Expr {
	t.Helper()
	out := make([]*ast.Expr, 0, len(a.Args))
	for _, arg := range a.Args {
		out = append(out, f.Expr(arg.Expr))
	}
	return out
}

func parseSourceWithMax(t *testing.T, src string, maxErrors uint) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	bag := diag.NewBag(100)
	file := ParseFile(fs.Get(id), Options{MaxErrors: maxErrors, Reporter: diag.BagReporter{Bag: bag}})
	return file, bag
}
