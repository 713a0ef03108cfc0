package sema

import "theorycheck/internal/types"

// BindOptions tune the Argument Binder.
type BindOptions struct {
	// StrictTail also reports a shortfall when a tail collector exists but
	// not every fixed parameter before it received a value.
	StrictTail bool
}

// Pair is one fixed parameter together with the value bound to it.
type Pair struct {
	Param types.Param
	Value types.Value
}

// Binding is the result of mapping attribute values onto parameters.
// At most one of Shortfall and Excess is set.
type Binding struct {
	Matched   []Pair
	Tail      []types.Value // collected by the params array, never type-checked
	Shortfall bool
	Excess    []types.Value
}

// HasCountProblem reports whether the binding produces a count diagnostic.
func (b Binding) HasCountProblem() bool {
	return b.Shortfall || len(b.Excess) > 0
}

// Bind maps args onto params positionally, honouring a trailing tail collector.
func Bind(args []types.Value, params []types.Param, opts BindOptions) Binding {
	n, m := len(args), len(params)
	if !types.HasTail(params) {
		b := Binding{Matched: pairs(params, args)}
		switch {
		case n < m:
			b.Shortfall = true
		case n > m:
			b.Excess = append([]types.Value(nil), args[m:]...)
		}
		return b
	}

	fixed := params[:m-1]
	// единственный массив целиком раскрывается в хвост
	if n == 1 && args[0].Kind == types.ValArray {
		return Binding{
			Tail:      append([]types.Value(nil), args[0].Elems...),
			Shortfall: opts.StrictTail && len(fixed) > 0,
		}
	}

	b := Binding{Matched: pairs(fixed, args)}
	if n > len(fixed) {
		b.Tail = append([]types.Value(nil), args[len(fixed):]...)
	}
	if opts.StrictTail && n < len(fixed) {
		b.Shortfall = true
	}
	return b
}

func pairs(params []types.Param, args []types.Value) []Pair {
	k := min(len(params), len(args))
	if k == 0 {
		return nil
	}
	out := make([]Pair, k)
	for i := range k {
		out[i] = Pair{Param: params[i], Value: args[i]}
	}
	return out
}
