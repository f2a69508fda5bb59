// Released under an MIT license. See LICENSE.

// Package set provides cvm's persistent set.
package set

import (
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/collection"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
)

const name = "set"

// T (set) is a map from members to true.
type T struct {
	m *hashmap.T
}

type set = T

// Empty is the set with no members.
var Empty = &set{hashmap.Empty} //nolint:gochecknoglobals

// New creates a set holding members.
func New(members ...cell.I) *set {
	s := Empty

	for _, c := range members {
		s = s.Conj(c)
	}

	return s
}

// Of wraps a decoded map as a set.
func Of(m *hashmap.T) *set {
	return &set{m}
}

// Children returns the children of the underlying map.
func (s *set) Children() []cell.I {
	return s.m.Children()
}

// Count returns the number of members of the set s.
func (s *set) Count() int64 {
	return s.m.Count()
}

// Encode returns the canonical encoding of the set s.
func (s *set) Encode() []byte {
	return append([]byte{encoding.Set}, s.m.Encode()...)
}

// Equal returns true if c is a set with the same members.
func (s *set) Equal(c cell.I) bool {
	return Is(c) && s.m.Equal(To(c).m)
}

// Get returns c and true if c is a member.
func (s *set) Get(c cell.I) (cell.I, bool) {
	if s.Contains(c) {
		return c, true
	}

	return nil, false
}

// Literal returns the literal representation of the set s.
func (s *set) Literal() string {
	var b strings.Builder

	b.WriteString("#{")

	first := true
	s.ForEach(func(c cell.I) bool {
		if !first {
			b.WriteByte(' ')
		}

		first = false

		b.WriteString(literal.String(c))

		return true
	})

	b.WriteByte('}')

	return b.String()
}

// Name returns the type name for sets.
func (s *set) Name() string {
	return name
}

// String returns the text representation of the set s.
func (s *set) String() string {
	return s.Literal()
}

// Methods specific to set.

// Conj returns a set with c as a member.
func (s *set) Conj(c cell.I) *set {
	m := s.m.Assoc(c, boolean.True)
	if m == s.m {
		return s
	}

	return &set{m}
}

// Contains returns true if c is a member of the set s.
func (s *set) Contains(c cell.I) bool {
	return s.m.ContainsKey(c)
}

// Disj returns a set without c.
func (s *set) Disj(c cell.I) *set {
	m := s.m.Dissoc(c)
	if m == s.m {
		return s
	}

	return &set{m}
}

// ForEach calls f with each member, in ascending digest order, until f
// returns false.
func (s *set) ForEach(f func(c cell.I) bool) {
	s.m.ForEach(func(k, _ cell.I) bool {
		return f(k)
	})
}

// Members returns the members of the set s.
func (s *set) Members() []cell.I {
	return s.m.Keys()
}

// Is returns true if c is a set.
func Is(c cell.I) bool {
	_, ok := c.(*set)

	return ok
}

// To returns a set if c is a set; Otherwise it panics.
func To(c cell.I) *set {
	if t, ok := c.(*set); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t set

	// The set type is a cell.
	_ = cell.I(&t)

	// The set type is an associative collection.
	_ = collection.Associative(&t)

	// The set type is composite.
	_ = composite.I(&t)

	// The set type has a literal representation.
	_ = literal.I(&t)

	// The set type is a stringer.
	_ = common.Stringer(&t)
}
