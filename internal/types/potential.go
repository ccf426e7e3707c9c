package types

import (
	"fmt"

	"github.com/mpvl/unique"
)

// PotentialType is the sum type spec §3/§4.6 synthesis produces: either
// a Set of candidate types (overload resolution pending) or a Product
// of per-position PotentialTypes (an expression list). Exactly one of
// Set, Elems is non-nil.
type PotentialType struct {
	Set   []*Type
	Elems []*PotentialType // non-nil only for a Product
}

// SetOf builds a singleton or multi-candidate Set, canonicalized so
// repeated synthesis of the same expression always yields the same
// member order — needed for the round-trip property R2 to be
// checkable by simple slice comparison in tests.
func SetOf(candidates ...*Type) *PotentialType {
	return &PotentialType{Set: canonicalize(candidates)}
}

// ProductOf builds a Product over elems in position order.
func ProductOf(elems ...*PotentialType) *PotentialType {
	return &PotentialType{Elems: elems}
}

// IsProduct reports whether p is a Product rather than a Set.
func (p *PotentialType) IsProduct() bool { return p != nil && p.Elems != nil }

// typeKey is a structural signature used only to dedupe a Set; it is
// not a substitute for Equiv (two distinct struct declarations with
// the same field layout get different keys via their Name).
func typeKey(t *Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Bit, Varbit:
		return fmt.Sprintf("%s<%d>", t.Kind, t.Width)
	case Int:
		return fmt.Sprintf("%s<%d,%v>", t.Kind, t.Width, t.Signed)
	case Struct, Header, Union, Enum, Extern, Parser, Control, Package, Table:
		return fmt.Sprintf("%s:%s:%p", t.Kind, t.Name, t)
	case Function:
		return fmt.Sprintf("func(%s)->%s", typeKey(t.Params), typeKey(t.Return))
	default:
		return t.Kind.String()
	}
}

// sortableTypes adapts a []*Type to mpvl/unique.Interface (sort.Interface
// plus Truncate), the teacher's own dependency for exactly this
// "sort, then drop adjacent duplicates" shape.
type sortableTypes struct {
	keys []string
	vals []*Type
}

func (s *sortableTypes) Len() int           { return len(s.vals) }
func (s *sortableTypes) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s *sortableTypes) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
func (s *sortableTypes) Truncate(n int) {
	s.keys = s.keys[:n]
	s.vals = s.vals[:n]
}

func canonicalize(candidates []*Type) []*Type {
	if len(candidates) == 0 {
		return nil
	}
	keys := make([]string, len(candidates))
	for i, t := range candidates {
		keys[i] = typeKey(t)
	}
	s := &sortableTypes{keys: keys, vals: append([]*Type(nil), candidates...)}
	unique.Sort(s)
	return s.vals
}
