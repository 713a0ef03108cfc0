package resolve

import (
	"strings"

	"theorycheck/internal/ast"
	"theorycheck/internal/token"
	"theorycheck/internal/types"
)

// classifier turns argument expressions of one declaration into values.
type classifier struct {
	env  *Env
	file *ast.File
	sc   scope
}

func unresolved(e *ast.Expr) types.Value {
	return types.UnresolvedLit(e.Text, e.Span)
}

// retext moves a value onto the surface text of the enclosing expression.
func retext(v types.Value, e *ast.Expr) types.Value {
	v.Text = e.Text
	v.Span = e.Span
	return v
}

func (c *classifier) value(id ast.ExprID) types.Value {
	e := c.file.Expr(id)
	if e == nil {
		return types.UnresolvedLit("", c.file.Span)
	}
	switch e.Kind {
	case ast.ExprLit:
		return literal(e)
	case ast.ExprParen:
		return retext(c.value(e.Left), e)
	case ast.ExprUnary:
		return c.unary(e)
	case ast.ExprBinary:
		return c.binary(e)
	case ast.ExprCast:
		return c.cast(e)
	case ast.ExprName, ast.ExprMember:
		return c.named(e)
	case ast.ExprTypeOf:
		return types.TypeOfLit(e.Type.Text, e.Text, e.Span)
	case ast.ExprNameOf:
		return types.StringLit(e.Text, e.Span)
	case ast.ExprDefault:
		return c.defaultOf(e)
	case ast.ExprArrayNew:
		elems := make([]types.Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			elems = append(elems, c.value(el))
		}
		return types.ArrayLit(elems, e.Text, e.Span)
	}
	return unresolved(e)
}

func literal(e *ast.Expr) types.Value {
	switch e.Tok {
	case token.IntLit:
		return types.NumericLit(types.FamilyIntegral, e.Text, e.Span)
	case token.FloatLit:
		return types.NumericLit(types.FamilyFloatingPoint, e.Text, e.Span)
	case token.DecimalLit:
		return types.NumericLit(types.FamilyDecimal, e.Text, e.Span)
	case token.CharLit:
		return types.CharLit(e.Text, e.Span)
	case token.StringLit, token.InterpLit:
		return types.StringLit(e.Text, e.Span)
	case token.KwNull:
		return types.NullLit(e.Span)
	case token.KwTrue, token.KwFalse:
		return types.BoolLit(e.Text, e.Span)
	}
	return unresolved(e)
}

// arithmetic: char участвует как целое
func isArith(v types.Value) bool {
	return v.Kind == types.ValNumeric || v.Kind == types.ValChar
}

func family(v types.Value) types.Family {
	if v.Kind == types.ValChar {
		return types.FamilyIntegral
	}
	return v.Family
}

// promote applies C# binary numeric promotion on families. decimal does
// not mix with float or double.
func promote(a, b types.Family) (types.Family, bool) {
	switch {
	case a == types.FamilyDecimal || b == types.FamilyDecimal:
		if a == types.FamilyFloatingPoint || b == types.FamilyFloatingPoint {
			return types.FamilyNone, false
		}
		return types.FamilyDecimal, true
	case a == types.FamilyFloatingPoint || b == types.FamilyFloatingPoint:
		return types.FamilyFloatingPoint, true
	}
	return types.FamilyIntegral, true
}

func (c *classifier) unary(e *ast.Expr) types.Value {
	v := c.value(e.Left)
	switch e.Op {
	case token.Minus, token.Plus:
		if isArith(v) {
			return types.NumericLit(family(v), e.Text, e.Span)
		}
	case token.Tilde:
		switch {
		case isArith(v) && family(v) == types.FamilyIntegral:
			return types.NumericLit(types.FamilyIntegral, e.Text, e.Span)
		case v.Kind == types.ValEnumMember:
			return types.EnumLit(v.Enum, e.Text, e.Span)
		}
	case token.Bang:
		if v.Kind == types.ValBool {
			return types.BoolLit(e.Text, e.Span)
		}
	}
	return unresolved(e)
}

func (c *classifier) binary(e *ast.Expr) types.Value {
	l, r := c.value(e.Left), c.value(e.Right)
	if l.Kind == types.ValUnresolved || r.Kind == types.ValUnresolved {
		return unresolved(e)
	}
	switch e.OpText {
	case "==", "!=":
		if (isArith(l) && isArith(r)) || (l.Kind == r.Kind && l.Kind != types.ValArray) {
			return types.BoolLit(e.Text, e.Span)
		}
	case "<", ">", "<=", ">=":
		if isArith(l) && isArith(r) {
			return types.BoolLit(e.Text, e.Span)
		}
	case "&&", "||":
		if l.Kind == types.ValBool && r.Kind == types.ValBool {
			return types.BoolLit(e.Text, e.Span)
		}
	case "+", "-", "*", "/", "%":
		if e.OpText == "+" && l.Kind == types.ValString && r.Kind == types.ValString {
			return types.StringLit(e.Text, e.Span)
		}
		if isArith(l) && isArith(r) {
			if f, ok := promote(family(l), family(r)); ok {
				return types.NumericLit(f, e.Text, e.Span)
			}
		}
		// E + n, n + E, E - n дают E; E - E даёт целое
		switch {
		case l.Kind == types.ValEnumMember && isArith(r) && (e.OpText == "+" || e.OpText == "-"):
			return types.EnumLit(l.Enum, e.Text, e.Span)
		case r.Kind == types.ValEnumMember && isArith(l) && e.OpText == "+":
			return types.EnumLit(r.Enum, e.Text, e.Span)
		case l.Kind == types.ValEnumMember && r.Kind == types.ValEnumMember && l.Enum == r.Enum && e.OpText == "-":
			return types.NumericLit(types.FamilyIntegral, e.Text, e.Span)
		}
	case "&", "|", "^":
		switch {
		case l.Kind == types.ValBool && r.Kind == types.ValBool:
			return types.BoolLit(e.Text, e.Span)
		case isArith(l) && isArith(r) && family(l) == types.FamilyIntegral && family(r) == types.FamilyIntegral:
			return types.NumericLit(types.FamilyIntegral, e.Text, e.Span)
		case l.Kind == types.ValEnumMember && r.Kind == types.ValEnumMember && l.Enum == r.Enum:
			return types.EnumLit(l.Enum, e.Text, e.Span)
		}
	case "<<", ">>":
		if isArith(l) && isArith(r) && family(l) == types.FamilyIntegral && family(r) == types.FamilyIntegral {
			return types.NumericLit(types.FamilyIntegral, e.Text, e.Span)
		}
	}
	return unresolved(e)
}

func (c *classifier) cast(e *ast.Expr) types.Value {
	v := c.value(e.Left)
	if v.Kind == types.ValUnresolved {
		return unresolved(e)
	}
	return castTo(c.env.ResolveType(c.sc, e.Type), v, e)
}

// castTo applies an explicit constant conversion. Reference targets keep
// the operand's natural kind: `(object)"abc"` is still a string value.
func castTo(t types.Type, v types.Value, e *ast.Expr) types.Value {
	switch t.Kind {
	case types.KindNullable:
		if v.IsNull() {
			return retext(v, e)
		}
		return castTo(t.Inner(), v, e)
	case types.KindNumeric:
		if isArith(v) || v.Kind == types.ValEnumMember {
			return types.NumericLit(t.Family, e.Text, e.Span)
		}
	case types.KindChar:
		if isArith(v) {
			return types.CharLit(e.Text, e.Span)
		}
	case types.KindEnum:
		if isArith(v) || v.Kind == types.ValEnumMember {
			return types.EnumLit(t.Name, e.Text, e.Span)
		}
	case types.KindBool:
		if v.Kind == types.ValBool {
			return retext(v, e)
		}
	case types.KindString:
		if v.Kind == types.ValString || v.IsNull() {
			return retext(v, e)
		}
	case types.KindObject, types.KindInterface, types.KindReference, types.KindSystemType, types.KindArray:
		return retext(v, e)
	}
	return unresolved(e)
}

// dottedPath renders Name and Member chains as "A.B.C".
func dottedPath(f *ast.File, e *ast.Expr) (string, bool) {
	switch e.Kind {
	case ast.ExprName:
		return e.Name, true
	case ast.ExprMember:
		left := f.Expr(e.Left)
		if left == nil {
			return "", false
		}
		p, ok := dottedPath(f, left)
		if !ok {
			return "", false
		}
		return p + "." + e.Name, true
	}
	return "", false
}

func (c *classifier) named(e *ast.Expr) types.Value {
	if ci, ok := c.lookupConst(e); ok {
		return constValue(ci, e)
	}
	if e.Kind != ast.ExprMember {
		// using static Acme.Color; → Red
		for _, u := range c.sc.usings {
			if t, ok := c.env.Lookup(u.Name); u.Static && ok && t.Kind == types.KindEnum {
				return types.EnumLit(t.Name, e.Text, e.Span)
			}
		}
		return unresolved(e)
	}
	owner, ok := dottedPath(c.file, c.file.Expr(e.Left))
	if !ok {
		return unresolved(e)
	}
	t, ok := c.env.lookupName(c.sc, owner, 0)
	if !ok {
		if (owner == "Math" || owner == "System.Math") && (e.Name == "PI" || e.Name == "E" || e.Name == "Tau") {
			return types.NumericLit(types.FamilyFloatingPoint, e.Text, e.Span)
		}
		return unresolved(e)
	}
	switch t.Kind {
	case types.KindEnum:
		return types.EnumLit(t.Name, e.Text, e.Span)
	case types.KindNumeric:
		switch e.Name {
		case "MaxValue", "MinValue", "Epsilon", "NaN", "PositiveInfinity", "NegativeInfinity",
			"One", "Zero", "MinusOne":
			return types.NumericLit(t.Family, e.Text, e.Span)
		}
	case types.KindChar:
		if e.Name == "MaxValue" || e.Name == "MinValue" {
			return types.CharLit(e.Text, e.Span)
		}
	case types.KindString:
		if e.Name == "Empty" {
			return types.StringLit(e.Text, e.Span)
		}
	case types.KindBool:
		if e.Name == "TrueString" || e.Name == "FalseString" {
			return types.StringLit(e.Text, e.Span)
		}
	}
	return unresolved(e)
}

// lookupConst finds a const field: a bare name in the declaring type or
// any containing type, or Owner.Name with Owner resolved as a type.
func (c *classifier) lookupConst(e *ast.Expr) (constInfo, bool) {
	if e.Kind == ast.ExprName {
		for i := len(c.sc.types); i >= 1; i-- {
			owner := types.Identity(join(c.sc.namespace, strings.Join(c.sc.types[:i], ".")))
			if ci, ok := c.env.consts[owner][e.Name]; ok {
				return ci, true
			}
		}
		for _, u := range c.sc.usings {
			if u.Static {
				if ci, ok := c.env.consts[types.Identity(u.Name)][e.Name]; ok {
					return ci, true
				}
			}
		}
		return constInfo{}, false
	}
	owner, ok := dottedPath(c.file, c.file.Expr(e.Left))
	if !ok {
		return constInfo{}, false
	}
	t, ok := c.env.lookupName(c.sc, owner, 0)
	if !ok {
		return constInfo{}, false
	}
	ci, ok := c.env.consts[t.Name][e.Name]
	return ci, ok
}

func constValue(ci constInfo, e *ast.Expr) types.Value {
	if ci.null {
		v := types.NullLit(e.Span)
		v.Text = e.Text
		return v
	}
	switch ci.typ.Kind {
	case types.KindNumeric:
		return types.NumericLit(ci.typ.Family, e.Text, e.Span)
	case types.KindChar:
		return types.CharLit(e.Text, e.Span)
	case types.KindBool:
		return types.BoolLit(e.Text, e.Span)
	case types.KindString:
		return types.StringLit(e.Text, e.Span)
	case types.KindEnum:
		return types.EnumLit(ci.typ.Name, e.Text, e.Span)
	}
	return unresolved(e)
}

// defaultOf: default(T): ноль для значимых типов, null для ссылочных.
// Голый `default` в аргументе object[]: это null.
func (c *classifier) defaultOf(e *ast.Expr) types.Value {
	null := types.NullLit(e.Span)
	null.Text = e.Text
	if e.Type.IsZero() {
		return null
	}
	t := c.env.ResolveType(c.sc, e.Type)
	switch t.Kind {
	case types.KindNumeric:
		return types.NumericLit(t.Family, e.Text, e.Span)
	case types.KindBool:
		return types.BoolLit(e.Text, e.Span)
	case types.KindChar:
		return types.CharLit(e.Text, e.Span)
	case types.KindEnum:
		return types.EnumLit(t.Name, e.Text, e.Span)
	case types.KindNullable, types.KindString, types.KindObject, types.KindReference,
		types.KindInterface, types.KindSystemType, types.KindArray:
		return null
	}
	return unresolved(e)
}
