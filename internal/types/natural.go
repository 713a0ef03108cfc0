package types

import "strings"

// Natural is the intrinsic classification of a literal value.
type Natural uint8

const (
	NatNone Natural = iota
	NatIntegral
	NatFloatingPoint
	NatDecimal
	NatBool
	NatChar
	NatString
	NatEnum
	NatSystemType
	NatArray
)

var naturalNames = [...]string{
	NatNone:          "none",
	NatIntegral:      "integral",
	NatFloatingPoint: "floating-point",
	NatDecimal:       "decimal",
	NatBool:          "bool",
	NatChar:          "char",
	NatString:        "string",
	NatEnum:          "enum",
	NatSystemType:    "type",
	NatArray:         "array",
}

func (n Natural) String() string {
	if int(n) < len(naturalNames) {
		return naturalNames[n]
	}
	return "none"
}

// ParseImplementor accepts the names used in theorycheck.toml `implemented-by`
// lists: natural names, "numeric" for every numeric family, and C# keywords.
func ParseImplementor(s string) (NaturalSet, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	for i, name := range naturalNames {
		if name == s && Natural(i) != NatNone {
			return NewNaturalSet(Natural(i)), true // #nosec G115 -- bounded by table size
		}
	}
	switch s {
	case "numeric":
		return Numerics, true
	case "typeof", "system.type":
		return NewNaturalSet(NatSystemType), true
	}
	if t, ok := Builtin(s); ok {
		switch t.Kind {
		case KindNumeric:
			return NewNaturalSet(familyNatural(t.Family)), true
		case KindBool:
			return NewNaturalSet(NatBool), true
		case KindChar:
			return NewNaturalSet(NatChar), true
		case KindString:
			return NewNaturalSet(NatString), true
		}
	}
	return 0, false
}

func familyNatural(f Family) Natural {
	switch f {
	case FamilyIntegral:
		return NatIntegral
	case FamilyFloatingPoint:
		return NatFloatingPoint
	case FamilyDecimal:
		return NatDecimal
	}
	return NatNone
}

// NaturalSet is a bitset over Natural kinds.
// NatEnum in the set means every enum type is an implementor.
type NaturalSet uint16

func NewNaturalSet(ns ...Natural) NaturalSet {
	var s NaturalSet
	for _, n := range ns {
		s = s.With(n)
	}
	return s
}

func (s NaturalSet) With(n Natural) NaturalSet {
	if n == NatNone {
		return s
	}
	return s | 1<<n
}

func (s NaturalSet) Has(n Natural) bool {
	return n != NatNone && s&(1<<n) != 0
}

// Numerics is the set of all numeric families.
var Numerics = NewNaturalSet(NatIntegral, NatFloatingPoint, NatDecimal)

func (s NaturalSet) Union(o NaturalSet) NaturalSet { return s | o }

func (s NaturalSet) String() string {
	var parts []string
	for n := NatIntegral; n <= NatArray; n++ {
		if s.Has(n) {
			parts = append(parts, n.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
