// Released under an MIT license. See LICENSE.

// Package prim provides the cell that names a built-in function.
package prim

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "primitive"

// T (prim) is a built-in function. Only its name is encoded; the
// evaluator supplies the behaviour.
type T string

type prim = T

// New creates a primitive cell for the built-in called n.
func New(n string) *prim {
	p := prim(n)

	return &p
}

// Encode returns the canonical encoding of the primitive p.
func (p *prim) Encode() []byte {
	return encoding.AppendString([]byte{encoding.Primitive}, string(*p))
}

// Equal returns true if c is the same primitive.
func (p *prim) Equal(c cell.I) bool {
	return Is(c) && *p == *To(c)
}

// Literal returns the literal representation of the primitive p.
func (p *prim) Literal() string {
	return "(|" + name + " " + string(*p) + "|)"
}

// Name returns the type name for primitives.
func (p *prim) Name() string {
	return name
}

// String returns the name of the built-in.
func (p *prim) String() string {
	return string(*p)
}

// Is returns true if c is a primitive.
func Is(c cell.I) bool {
	_, ok := c.(*prim)

	return ok
}

// To returns a primitive if c is a primitive; Otherwise it panics.
func To(c cell.I) *prim {
	if t, ok := c.(*prim); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t prim

	// The prim type is a cell.
	_ = cell.I(&t)

	// The prim type has a literal representation.
	_ = literal.I(&t)
}
