// Released under an MIT license. See LICENSE.

// Package ref provides the reference to a cell that is addressed by digest
// and loaded lazily.
package ref

import (
	"sync"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
)

const name = "ref"

// Resolver produces the cell with the digest h. Resolution must be
// idempotent: the same digest always yields the same cell.
type Resolver interface {
	Resolve(h digest.T) (cell.I, error)
}

// T (ref) holds a digest and, once resolved, the cell it addresses.
type T struct {
	sync.RWMutex
	c cell.I
	h digest.T
	r Resolver
}

type ref = T

// New creates an unresolved reference to the cell with digest h.
func New(h digest.T, r Resolver) *ref {
	return &ref{h: h, r: r}
}

// Resolved creates a reference that already holds the cell c.
func Resolved(h digest.T, c cell.I) *ref {
	return &ref{c: c, h: h}
}

// Deref returns the cell that c refers to, or c if c is not a reference.
// A reference that cannot be resolved panics with the resolver's error.
func Deref(c cell.I) cell.I {
	r, ok := c.(*ref)
	if !ok {
		return c
	}

	v, err := r.Value()
	if err != nil {
		panic(err)
	}

	return v
}

// Digest returns the digest of the referenced cell without resolving it.
func (r *ref) Digest() digest.T {
	return r.h
}

// Encode returns the encoding of the referenced cell.
func (r *ref) Encode() []byte {
	return Deref(r).Encode()
}

// Equal returns true if c has the same digest as the referenced cell.
func (r *ref) Equal(c cell.I) bool {
	if o, ok := c.(*ref); ok {
		return r.h == o.h
	}

	return r.h == digest.Of(c.Encode())
}

// Name returns the type name for references.
func (r *ref) Name() string {
	return name
}

// IsResolved returns true if the referenced cell has been loaded.
func (r *ref) IsResolved() bool {
	r.RLock()
	defer r.RUnlock()

	return r.c != nil
}

// Value returns the referenced cell, resolving it if necessary.
// A failed resolution is not cached so it can be retried.
func (r *ref) Value() (cell.I, error) {
	r.RLock()
	c := r.c
	r.RUnlock()

	if c != nil {
		return c, nil
	}

	if r.r == nil {
		return nil, missing(r.h)
	}

	c, err := r.r.Resolve(r.h)
	if err != nil {
		return nil, err
	}

	r.Lock()
	defer r.Unlock()

	if r.c == nil {
		r.c = c
	}

	return r.c, nil
}

type unresolvable digest.T

func (u unresolvable) Error() string {
	return "no resolver for " + digest.T(u).String()
}

// Missing returns the digest that could not be resolved.
func (u unresolvable) Missing() digest.T {
	return digest.T(u)
}

func missing(h digest.T) error {
	return unresolvable(h)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t ref

	// The ref type is a cell.
	_ = cell.I(&t)
}
