package resolve

import (
	"slices"
	"strconv"
	"strings"

	"theorycheck/internal/ast"
	"theorycheck/internal/types"
)

// scope is the name-lookup context of a declaration.
type scope struct {
	namespace string
	types     []string // цепочка содержащих типов, включая сам тип
	usings    []ast.Using
	generics  []ast.TypeParam // внешние первыми, поиск с конца
}

func scopeOf(f *ast.File, d *ast.TypeDecl) scope {
	sc := scope{namespace: d.Namespace, usings: d.Usings}
	if d.Outer != "" {
		sc.types = strings.Split(d.Outer, ".")
		for i := range sc.types {
			if o := f.TypeByName(join(d.Namespace, strings.Join(sc.types[:i+1], "."))); o != nil {
				sc.generics = append(sc.generics, o.TypeParams...)
			}
		}
	}
	sc.types = append(sc.types, d.Name)
	sc.generics = append(sc.generics, d.TypeParams...)
	return sc
}

// withTypeParams opens the method's own type parameters, which shadow
// those of the containing types.
func (sc scope) withTypeParams(tps []ast.TypeParam) scope {
	if len(tps) == 0 {
		return sc
	}
	sc.generics = append(slices.Clip(sc.generics), tps...)
	return sc
}

func (sc scope) typeParam(name string) (types.Type, bool) {
	for i := len(sc.generics) - 1; i >= 0; i-- {
		if tp := sc.generics[i]; tp.Name == name {
			return types.MakeTypeParam(tp.Name, tp.ValueType), true
		}
	}
	return types.Type{}, false
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// candidates lists full names name may refer to, in C# lookup order:
// containing types innermost first, then enclosing namespaces, then usings.
func (sc scope) candidates(name string) []string {
	out := make([]string, 0, 8)
	for i := len(sc.types); i >= 1; i-- {
		out = append(out, join(sc.namespace, strings.Join(sc.types[:i], "."), name))
	}
	ns := sc.namespace
	for ns != "" {
		out = append(out, join(ns, name))
		if i := strings.LastIndexByte(ns, '.'); i >= 0 {
			ns = ns[:i]
		} else {
			ns = ""
		}
	}
	out = append(out, name)
	for _, u := range sc.usings {
		if u.Alias == "" {
			// using static открывает вложенные типы, обычный using открывает namespace
			out = append(out, join(u.Name, name))
		}
	}
	return out
}

// lookupName resolves a possibly dotted or alias-qualified type name.
func (e *Env) lookupName(sc scope, name string, arity int) (types.Type, bool) {
	name = strings.TrimSpace(name)
	suffix := ""
	if arity > 0 {
		suffix = "`" + strconv.Itoa(arity)
	}
	if i := strings.Index(name, "::"); i >= 0 {
		// global:: и extern alias: имя уже полное
		return e.Lookup(name[i+2:] + suffix)
	}
	if arity == 0 {
		if t, ok := types.Builtin(name); ok && types.IsKeyword(name) {
			return t, true
		}
		if name == "dynamic" {
			return types.MakeObject(), true
		}
	}
	first, rest, dotted := strings.Cut(name, ".")
	for _, u := range sc.usings {
		if u.Alias != "" && u.Alias == first {
			full := u.Name
			if dotted {
				full += "." + rest
			}
			return e.Lookup(full + suffix)
		}
	}
	for _, c := range sc.candidates(name) {
		if t, ok := e.Lookup(c + suffix); ok {
			return t, true
		}
	}
	return types.Type{}, false
}

// ResolveType classifies a written type in the scope sc. Names that
// cannot be resolved become KindUnknown carrying the written text.
func (e *Env) ResolveType(sc scope, ref ast.TypeRef) types.Type {
	if ref.Pointer || ref.Tuple != nil || ref.IsZero() {
		return types.MakeUnknown(ref.Text)
	}
	for _, dims := range ref.Ranks {
		if dims != 1 {
			return types.MakeUnknown(ref.Text) // многомерные массивы не бывают аргументами атрибутов
		}
	}

	var t types.Type
	switch base := ast.ShortName(ref.Name); {
	case base == "Nullable" && len(ref.Args) == 1 && e.isSystemName(sc, ref.Name, "Nullable"):
		t = types.MakeNullable(e.ResolveType(sc, ref.Args[0]))
	case ref.Name == "void":
		t = types.MakeUnknown(ref.Text)
	default:
		if tp, ok := sc.typeParam(ref.Name); ok && len(ref.Args) == 0 {
			t = tp
			break
		}
		found, ok := e.lookupName(sc, ref.Name, len(ref.Args))
		if !ok {
			return types.MakeUnknown(ref.Text)
		}
		t = found
	}
	if ref.Nullable {
		t = types.MakeNullable(t)
	}
	for range ref.Ranks {
		t = types.MakeArray(t)
	}
	return t
}

// isSystemName reports whether name refers to System.<short> in sc.
func (e *Env) isSystemName(sc scope, name, short string) bool {
	name = strings.TrimPrefix(name, "global::")
	if name == "System."+short {
		return true
	}
	if name != short {
		return false
	}
	for _, u := range sc.usings {
		if u.Alias == "" && u.Name == "System" {
			return true
		}
	}
	return sc.namespace == "System" || strings.HasPrefix(sc.namespace, "System.")
}
