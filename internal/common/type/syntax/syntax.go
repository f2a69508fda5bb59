// Released under an MIT license. See LICENSE.

// Package syntax provides the cell that annotates a form with its source.
package syntax

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

const name = "syntax"

// T (syntax) wraps a datum with metadata and a source location.
// The location is not part of the encoding.
type T struct {
	datum  cell.I
	meta   *hashmap.T
	source *loc.T
}

type syntax = T

// New wraps datum. A nil meta is an empty map.
func New(datum cell.I, meta *hashmap.T, source *loc.T) *syntax {
	if meta == nil {
		meta = hashmap.Empty
	}

	return &syntax{datum: datum, meta: meta, source: source}
}

// Children returns the datum and metadata.
func (s *syntax) Children() []cell.I {
	return []cell.I{s.datum, s.meta}
}

// Datum returns the wrapped value.
func (s *syntax) Datum() cell.I {
	return ref.Deref(s.datum)
}

// Encode returns the canonical encoding of the syntax node s.
func (s *syntax) Encode() []byte {
	b := encoding.Child([]byte{encoding.Syntax}, s.datum)

	return encoding.Child(b, s.meta)
}

// Equal returns true if c is a syntax node with the same datum and metadata.
func (s *syntax) Equal(c cell.I) bool {
	return Is(c) && (s == To(c) || encoding.Equal(s, To(c)))
}

// Literal returns the literal representation of the syntax node s.
func (s *syntax) Literal() string {
	d := literal.String(s.Datum())
	if s.meta.Count() == 0 {
		return d
	}

	return "^" + s.meta.Literal() + " " + d
}

// Meta returns the metadata map.
func (s *syntax) Meta() *hashmap.T {
	return s.meta
}

// Name returns the type name for syntax nodes.
func (s *syntax) Name() string {
	return name
}

// Source returns the source location, if known.
func (s *syntax) Source() *loc.T {
	return s.source
}

// WithMeta returns a syntax node with the entries of m added to its metadata.
func (s *syntax) WithMeta(m *hashmap.T) *syntax {
	meta := s.meta
	m.ForEach(func(k, v cell.I) bool {
		meta = meta.Assoc(k, v)

		return true
	})

	return &syntax{datum: s.datum, meta: meta, source: s.source}
}

// Is returns true if c is a syntax node.
func Is(c cell.I) bool {
	_, ok := c.(*syntax)

	return ok
}

// Source returns the location of c if it is a syntax node, or nil.
func Source(c cell.I) *loc.T {
	if s, ok := c.(*syntax); ok {
		return s.source
	}

	return nil
}

// Strip removes every syntax node from c, recursively. Values without
// syntax nodes are returned unchanged.
func Strip(c cell.I) cell.I {
	for Is(c) {
		c = Unwrap(c)
	}

	switch {
	case pair.Is(c):
		if c == pair.Null {
			return c
		}

		h, t := pair.Car(c), pair.Cdr(c)

		sh, st := Strip(h), Strip(t)
		if sh == h && st == t {
			return c
		}

		return pair.Cons(sh, st)
	case vector.Is(c):
		v := vector.To(c)
		r := v

		v.ForEach(func(i int64, e cell.I) bool {
			if s := Strip(e); s != e {
				r = r.Assoc(i, s)
			}

			return true
		})

		return r
	case hashmap.Is(c):
		m := hashmap.To(c)
		r := hashmap.Empty

		changed := false
		m.ForEach(func(k, v cell.I) bool {
			sk, sv := Strip(k), Strip(v)
			changed = changed || sk != k || sv != v
			r = r.Assoc(sk, sv)

			return true
		})

		if !changed {
			return m
		}

		return r
	case set.Is(c):
		s := set.To(c)
		r := set.Empty

		changed := false
		s.ForEach(func(e cell.I) bool {
			se := Strip(e)
			changed = changed || se != e
			r = r.Conj(se)

			return true
		})

		if !changed {
			return s
		}

		return r
	}

	return c
}

// To returns a syntax node if c is a syntax node; Otherwise it panics.
func To(c cell.I) *syntax {
	if t, ok := c.(*syntax); ok {
		return t
	}

	panic("not a " + name)
}

// Unwrap removes one syntax node, if c is one.
func Unwrap(c cell.I) cell.I {
	if Is(c) {
		return To(c).Datum()
	}

	return c
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t syntax

	// The syntax type is a cell.
	_ = cell.I(&t)

	// The syntax type is composite.
	_ = composite.I(&t)

	// The syntax type has a literal representation.
	_ = literal.I(&t)
}
