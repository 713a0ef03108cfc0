package resolve

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/token"
	"theorycheck/internal/types"
)

// DeclKind is the kind of a type declared in theorycheck.toml.
type DeclKind uint8

const (
	DeclEnum DeclKind = iota
	DeclInterface
	DeclStruct
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclEnum:
		return "enum"
	case DeclInterface:
		return "interface"
	case DeclStruct:
		return "struct"
	}
	return "class"
}

// Decl is a type known without its source: it lives in a referenced
// assembly the checker never sees.
type Decl struct {
	Kind         DeclKind
	Name         string
	Implementors types.NaturalSet
}

func (d Decl) descriptor() types.Type {
	switch d.Kind {
	case DeclEnum:
		return types.MakeEnum(d.Name)
	case DeclInterface:
		return types.MakeInterface(d.Name, d.Implementors)
	case DeclStruct:
		return types.MakeStruct(d.Name)
	}
	return types.MakeReference(d.Name)
}

type constInfo struct {
	typ  types.Type
	null bool
}

// Env is the type environment of one run.
type Env struct {
	types  map[string]types.Type
	consts map[string]map[string]constInfo // owner identity -> const name -> info
}

// NewEnv builds the environment. Well-known types come first, then decls,
// then declarations from files; the first definition of a name wins. A
// source declaration that clashes with an earlier one of another kind is
// reported as PRJ5004.
func NewEnv(files []*ast.File, decls []Decl, r diag.Reporter) *Env {
	env := &Env{
		types:  make(map[string]types.Type, 64),
		consts: make(map[string]map[string]constInfo),
	}
	for _, t := range wellKnownTypes() {
		env.types[t.Name] = t
	}
	for _, d := range decls {
		env.define(types.Identity(d.Name), d.descriptor(), source.Span{}, r)
	}
	for _, f := range files {
		for i := range f.Types {
			d := &f.Types[i]
			env.define(declKey(d), declDescriptor(d), d.NameSpan, r)
		}
	}
	for _, f := range files {
		for i := range f.Types {
			env.collectConsts(f, &f.Types[i])
		}
	}
	return env
}

func declKey(d *ast.TypeDecl) string {
	key := types.Identity(d.FullName())
	if d.Arity > 0 {
		key += "`" + strconv.Itoa(d.Arity)
	}
	return key
}

func declDescriptor(d *ast.TypeDecl) types.Type {
	name := d.FullName()
	switch d.Kind {
	case ast.TypeEnum:
		return types.MakeEnum(name)
	case ast.TypeInterface:
		return types.MakeInterface(name, 0)
	case ast.TypeStruct, ast.TypeRecordStruct:
		return types.MakeStruct(name)
	}
	return types.MakeReference(name)
}

func (e *Env) define(key string, t types.Type, sp source.Span, r diag.Reporter) {
	prev, ok := e.types[key]
	if !ok {
		e.types[key] = t
		return
	}
	// partial-классы и повторы одного вида не ошибка
	if prev.Kind == t.Kind || r == nil || sp == (source.Span{}) {
		return
	}
	diag.ReportWarning(r, diag.PrjDuplicateType, sp,
		fmt.Sprintf("type %s is already known as %s; this %s declaration is ignored", key, prev.Kind, t.Kind)).
		Emit()
}

func (e *Env) collectConsts(f *ast.File, d *ast.TypeDecl) {
	if len(d.Consts) == 0 {
		return
	}
	sc := scopeOf(f, d)
	owner := declKey(d)
	m := e.consts[owner]
	if m == nil {
		m = make(map[string]constInfo, len(d.Consts))
		e.consts[owner] = m
	}
	for _, c := range d.Consts {
		m[c.Name] = constInfo{
			typ:  e.ResolveType(sc, c.Type),
			null: isNullLiteral(f, c.Value),
		}
	}
}

func isNullLiteral(f *ast.File, id ast.ExprID) bool {
	for {
		x := f.Expr(id)
		switch {
		case x == nil:
			return false
		case x.Kind == ast.ExprParen, x.Kind == ast.ExprCast:
			id = x.Left
		default:
			return x.Kind == ast.ExprLit && x.Tok == token.KwNull
		}
	}
}

// Lookup returns the descriptor registered under a full name, including
// builtins such as "System.Int32".
func (e *Env) Lookup(fullName string) (types.Type, bool) {
	id := types.Identity(fullName)
	if t, ok := e.types[id]; ok {
		return t, true
	}
	return types.Builtin(id)
}

// Entry is one line of the environment summary used in cache keys.
type Entry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Impl string `json:"impl,omitempty"`
}

// Entries lists every type and const of the environment in name order.
func (e *Env) Entries() []Entry {
	out := make([]Entry, 0, len(e.types)+len(e.consts))
	for key, t := range e.types {
		ent := Entry{Name: key, Kind: t.Kind.String()}
		if t.Kind == types.KindInterface {
			ent.Impl = t.Implementors.String()
		}
		out = append(out, ent)
	}
	for owner, m := range e.consts {
		for name, c := range m {
			kind := "const " + c.typ.String()
			if c.null {
				kind += " = null"
			}
			out = append(out, Entry{Name: owner + "." + name, Kind: kind})
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Kind, b.Kind)
	})
	return out
}
