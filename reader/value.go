// Package reader implements a single-pass parser and printer for Extensible
// Data Notation (EDN), the textual data format used by Clojure.
package reader

import "math/big"

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindChar
	KindStr
	KindSymbol
	KindKey
	KindInt
	KindBigInt
	KindRational
	KindDouble
	KindDecimal
	KindList
	KindVector
	KindSet
	KindMap
	KindTagged
	KindInst
	KindUuid
)

// Value is a tagged union over every EDN scalar and collection form. Only
// the fields relevant to Kind are populated; the zero Value is KindNil.
type Value struct {
	Kind Kind

	Bool bool
	Char rune
	Str  string

	// Symbol/Key: Ns may be empty (unqualified).
	Ns   string
	Name string

	Int      int64
	BigInt   *big.Int
	Rational string // literal "num/den" text, never reduced
	Double   float64
	Decimal  Decimal // arbitrary-precision decimal backend value

	// List, Vector, Set
	Items []Value

	// Map: parallel Keys/Vals of equal length, in appearance order
	Keys []Value
	Vals []Value

	// Tagged, Inst, Uuid
	Tag   Sym    // Tagged's tag symbol (Inst/Uuid carry it implicitly)
	Inner *Value // Tagged's wrapped value
}

// Sym is a bare namespace+name pair, used for Tagged's tag.
type Sym struct {
	Ns   string
	Name string
}

func (s Sym) String() string {
	if s.Ns == "" {
		return s.Name
	}
	return s.Ns + "/" + s.Name
}

// Nil is the canonical nil value.
var Nil = Value{Kind: KindNil}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewChar constructs a Char value.
func NewChar(r rune) Value { return Value{Kind: KindChar, Char: r} }

// NewStr constructs a Str value.
func NewStr(s string) Value { return Value{Kind: KindStr, Str: s} }

// NewSymbol constructs a Symbol value.
func NewSymbol(ns, name string) Value { return Value{Kind: KindSymbol, Ns: ns, Name: name} }

// NewKey constructs a Key (keyword) value.
func NewKey(ns, name string) Value { return Value{Kind: KindKey, Ns: ns, Name: name} }

// NewInt constructs an Int value.
func NewInt(i int64) Value { return Value{Kind: KindInt, Int: i} }

// NewList constructs a List value.
func NewList(items []Value) Value { return Value{Kind: KindList, Items: items} }

// NewVector constructs a Vector value.
func NewVector(items []Value) Value { return Value{Kind: KindVector, Items: items} }

// NewSet constructs a Set value.
func NewSet(items []Value) Value { return Value{Kind: KindSet, Items: items} }

// NewMap constructs a Map value from parallel key/value slices.
func NewMap(keys, vals []Value) Value { return Value{Kind: KindMap, Keys: keys, Vals: vals} }

// Equal reports structural equality between two values, the notion used by
// the map/set key-uniqueness invariant (spec.md §3 invariant 1).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindChar:
		return a.Char == b.Char
	case KindStr:
		return a.Str == b.Str
	case KindSymbol, KindKey:
		return a.Ns == b.Ns && a.Name == b.Name
	case KindInt:
		return a.Int == b.Int
	case KindBigInt:
		return a.BigInt.Cmp(b.BigInt) == 0
	case KindRational:
		return a.Rational == b.Rational
	case KindDouble:
		return a.Double == b.Double
	case KindDecimal:
		return a.Decimal.Equal(b.Decimal)
	case KindList, KindVector, KindSet:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i := range a.Keys {
			j := indexOfKey(b, a.Keys[i])
			if j < 0 || !Equal(a.Vals[i], b.Vals[j]) {
				return false
			}
		}
		return true
	case KindTagged:
		return a.Tag == b.Tag && Equal(*a.Inner, *b.Inner)
	case KindInst, KindUuid:
		return a.Str == b.Str
	}
	return false
}

func indexOfKey(m Value, key Value) int {
	for i, k := range m.Keys {
		if Equal(k, key) {
			return i
		}
	}
	return -1
}
