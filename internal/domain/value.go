package domain

import (
	"strconv"
	"strings"
)

// ValueKind tags a grouping value.
type ValueKind uint8

const (
	// KindConcrete holds a value taken from the source data.
	KindConcrete ValueKind = iota
	// KindMissing marks a source value that was absent.
	KindMissing
	// KindAll marks a dimension rolled up into its parent level.
	KindAll
)

const (
	MissingLabel = "(missing)"
	AllLabel     = "ALL"
)

// Value is one dimension of a GroupKey. Missing and All are distinct
// sentinels, never folded into each other or into the empty string.
type Value struct {
	Kind ValueKind
	S    string
}

// Concrete returns a value holding s.
func Concrete(s string) Value { return Value{Kind: KindConcrete, S: s} }

// Missing returns the absent-value sentinel.
func Missing() Value { return Value{Kind: KindMissing} }

// All returns the rollup sentinel.
func All() Value { return Value{Kind: KindAll} }

// FromText converts an optional field into a Value.
func FromText(t Text) Value {
	if !t.Valid {
		return Missing()
	}
	return Concrete(t.S)
}

// String renders v for display.
func (v Value) String() string {
	switch v.Kind {
	case KindMissing:
		return MissingLabel
	case KindAll:
		return AllLabel
	}
	return v.S
}

// Compare orders concrete values by string, then Missing, then All.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		if v.Kind < o.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(v.S, o.S)
}

// KeyPart is a named dimension of a GroupKey.
type KeyPart struct {
	Name  string
	Value Value
}

// GroupKey is a fixed-arity tuple identifying one aggregation bucket.
type GroupKey []KeyPart

// Get returns the value of the named dimension.
func (k GroupKey) Get(name string) (Value, bool) {
	for _, p := range k {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Names returns the dimension names in order.
func (k GroupKey) Names() []string {
	out := make([]string, len(k))
	for i, p := range k {
		out[i] = p.Name
	}
	return out
}

// Encode returns a string usable as a map key. Each part is written as its
// kind, the byte length of its text and the text, so two keys encode equally
// only when every part is equal.
func (k GroupKey) Encode() string {
	var b strings.Builder
	for _, p := range k {
		b.WriteByte('0' + byte(p.Value.Kind))
		b.WriteString(strconv.Itoa(len(p.Value.S)))
		b.WriteByte(':')
		b.WriteString(p.Value.S)
	}
	return b.String()
}

// Compare orders keys dimension by dimension.
func (k GroupKey) Compare(o GroupKey) int {
	n := min(len(k), len(o))
	for i := 0; i < n; i++ {
		if c := k[i].Value.Compare(o[i].Value); c != 0 {
			return c
		}
	}
	return len(k) - len(o)
}
