package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"theorycheck/internal/ast"
	"theorycheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every span points into sf and lies within its content
// 2) type declarations lie within file.Span
// 3) members, attributes and parameters lie within their type declaration
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	valid := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End {
			return fmt.Errorf("%s span is inverted: %v", what, sp)
		}
		if sp.End > size {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, size)
		}
		return nil
	}
	within := func(what string, inner, outer source.Span) error {
		if err := valid(what, inner); err != nil {
			return err
		}
		if inner.Start < outer.Start || inner.End > outer.End {
			return fmt.Errorf("%s span %v is outside %v", what, inner, outer)
		}
		return nil
	}

	if err := valid("file", f.Span); err != nil {
		return err
	}
	for _, u := range f.Usings {
		if err := within("using "+u.Name, u.Span, f.Span); err != nil {
			return err
		}
	}
	for i := range f.Types {
		d := &f.Types[i]
		name := d.FullName()
		if err := within("type "+name, d.Span, f.Span); err != nil {
			return err
		}
		if err := within("name of "+name, d.NameSpan, d.Span); err != nil {
			return err
		}
		for j := range d.Methods {
			m := &d.Methods[j]
			if err := within("method "+name+"."+m.Name, m.Span, d.Span); err != nil {
				return err
			}
			for _, a := range m.Attrs {
				if err := within("attribute "+a.Name, a.Span, d.Span); err != nil {
					return err
				}
				for _, arg := range a.Args {
					if err := within("argument of "+a.Name, arg.Span, a.Span); err != nil {
						return err
					}
				}
			}
			for _, p := range m.Params {
				if err := within("parameter "+p.Name, p.Span, m.Span); err != nil {
					return err
				}
			}
		}
		for _, c := range d.Consts {
			if err := within("const "+c.Name, c.Span, d.Span); err != nil {
				return err
			}
		}
	}
	return nil
}
