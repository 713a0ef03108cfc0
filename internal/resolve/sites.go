package resolve

import (
	"fmt"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/sema"
	"theorycheck/internal/types"
)

// Config selects the attributes that mark call sites. The defaults
// Theory and InlineData always apply; the lists add to them.
type Config struct {
	TheoryAttrs []string
	DataAttrs   []string
	Reporter    diag.Reporter
}

func withDefault(extra []string, def string) []string {
	out := make([]string, 0, len(extra)+1)
	out = append(out, def)
	return append(out, extra...)
}

// Sites returns one site per literal-data attribute on every Theory method
// of f, in declaration order. A method without a Theory attribute is never
// checked. Arguments the classifier cannot understand are reported as
// SYN3005 warnings and stay in the list as unresolved values.
func (e *Env) Sites(f *ast.File, cfg Config) []sema.Site {
	theory := withDefault(cfg.TheoryAttrs, "Theory")
	data := withDefault(cfg.DataAttrs, "InlineData")

	var sites []sema.Site
	for i := range f.Types {
		d := &f.Types[i]
		c := classifier{env: e, file: f, sc: scopeOf(f, d)}
		for j := range d.Methods {
			m := &d.Methods[j]
			if !m.HasAttr(theory...) {
				continue
			}
			params := c.params(m)
			for _, a := range m.Attrs {
				if !a.Is(data...) {
					continue
				}
				sites = append(sites, sema.Site{
					Method: d.FullName() + "." + m.Name,
					Attr:   a.Span,
					Params: params,
					Args:   c.args(a, cfg.Reporter),
				})
			}
		}
	}
	return sites
}

func (c *classifier) params(m *ast.Method) []types.Param {
	sc := c.sc.withTypeParams(m.TypeParams)
	out := make([]types.Param, 0, len(m.Params))
	for i, p := range m.Params {
		out = append(out, types.Param{
			Name:    p.Name,
			Ordinal: i,
			Type:    c.env.ResolveType(sc, p.Type),
			Tail:    p.Modifier == ast.ParamParams && i == len(m.Params)-1,
			Span:    p.Span,
		})
	}
	return out
}

// args collects the values of the positional arguments. Assignments to
// attribute properties (`Skip = "..."`) are not data. A single array whose
// static type is object[] is the attribute's own params array and is
// passed through element by element.
func (c *classifier) args(a ast.Attr, r diag.Reporter) []types.Value {
	exprs := make([]ast.ExprID, 0, len(a.Args))
	for _, arg := range a.Args {
		if arg.Positional() {
			exprs = append(exprs, arg.Expr)
		}
	}
	if len(exprs) == 1 {
		if elems, ok := c.objectArray(exprs[0]); ok {
			exprs = elems
		}
	}
	vals := make([]types.Value, 0, len(exprs))
	for _, id := range exprs {
		v := c.value(id)
		reportUnresolved(r, v)
		vals = append(vals, v)
	}
	return vals
}

// objectArray reports whether id is an array creation that converts to
// object[]. Arrays are covariant, so `new string[] {...}` counts as well as
// `new object[] {...}`; arrays of value types do not. For an implicitly
// typed `new[] {...}` the element type is inferred from the elements.
func (c *classifier) objectArray(id ast.ExprID) ([]ast.ExprID, bool) {
	x := c.file.Expr(id)
	if x == nil || x.Kind != ast.ExprArrayNew {
		return nil, false
	}
	if !x.Implicit {
		if len(x.Type.Ranks) != 1 {
			return nil, false
		}
		elem := c.env.ResolveType(c.sc, x.Type.ElemRef())
		return x.Elems, elem.IsReferenceType()
	}
	return x.Elems, c.referenceElems(x.Elems)
}

// referenceElems decides whether the best common type of elems is a
// reference type: some element is cast to object, or every non-null
// element is a string, every one is a typeof, or every one is an array.
func (c *classifier) referenceElems(elems []ast.ExprID) bool {
	for _, el := range elems {
		ex := c.file.Expr(el)
		if ex != nil && ex.Kind == ast.ExprCast && c.env.ResolveType(c.sc, ex.Type).Kind == types.KindObject {
			return true
		}
	}
	common := types.ValUnresolved
	for _, el := range elems {
		v := c.value(el)
		switch {
		case v.Kind == types.ValNull:
			continue
		case v.Kind != types.ValString && v.Kind != types.ValTypeOf && v.Kind != types.ValArray:
			return false
		case common == types.ValUnresolved:
			common = v.Kind
		case common != v.Kind:
			return false
		}
	}
	return common != types.ValUnresolved
}

func reportUnresolved(r diag.Reporter, v types.Value) {
	if r == nil {
		return
	}
	switch v.Kind {
	case types.ValUnresolved:
		diag.ReportWarning(r, diag.SynUnsupportedArgument, v.Span,
			fmt.Sprintf("cannot classify argument %s; it is not checked", v.Text)).
			Emit()
	case types.ValArray:
		for _, el := range v.Elems {
			reportUnresolved(r, el)
		}
	}
}
