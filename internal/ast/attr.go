package ast

import (
	"strings"

	"theorycheck/internal/source"
)

// Attr is one attribute in an attribute section: `[InlineData(1, "a")]`.
type Attr struct {
	Name    string
	Args    []AttrArg
	HasArgs bool
	Span    source.Span
}

// AttrArg is a positional, `name: expr` or `Name = expr` argument.
type AttrArg struct {
	Name   string
	Assign bool
	Expr   ExprID
	Span   source.Span
}

// Positional reports whether a is a positional or `name:` argument, i.e.
// one that binds to a constructor parameter.
func (a AttrArg) Positional() bool {
	return !a.Assign
}

// ShortName strips a qualifier and the Attribute suffix:
// `Xunit.InlineDataAttribute` -> `InlineData`.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if n := strings.TrimSuffix(name, "Attribute"); n != "" {
		return n
	}
	return name
}

// Is reports whether the attribute's short name is one of names.
func (a *Attr) Is(names ...string) bool {
	short := ShortName(a.Name)
	for _, n := range names {
		if short == ShortName(n) {
			return true
		}
	}
	return false
}
