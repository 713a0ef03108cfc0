package types

import "theorycheck/internal/source"

// Param describes one declared parameter of a Theory method.
// Only the last parameter of a list may have Tail set (a `params` array).
type Param struct {
	Name    string
	Ordinal int
	Type    Type
	Tail    bool
	Span    source.Span
}

// HasTail reports whether the last parameter of params is a tail collector.
func HasTail(params []Param) bool {
	return len(params) > 0 && params[len(params)-1].Tail
}
