// Released under an MIT license. See LICENSE.

// Package null provides cvm's nil value.
package null

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/interface/truth"
)

const name = "nil"

// T (null) is the type of the single nil value.
type T struct{}

type null = T

// Nil is the nil value.
var Nil = &null{} //nolint:gochecknoglobals

// Bool returns false. Nil is falsey.
func (n *null) Bool() bool {
	return false
}

// Encode returns the canonical encoding of nil.
func (n *null) Encode() []byte {
	return []byte{encoding.Nil}
}

// Equal returns true if c is nil.
func (n *null) Equal(c cell.I) bool {
	return Is(c)
}

// Literal returns the literal representation of nil.
func (n *null) Literal() string {
	return name
}

// Name returns the type name for nil.
func (n *null) Name() string {
	return name
}

// Is returns true if c is nil (either the nil value or a Go nil).
func Is(c cell.I) bool {
	if c == nil {
		return true
	}

	_, ok := c.(*null)

	return ok
}

// Or returns c, or Nil if c is a Go nil.
func Or(c cell.I) cell.I {
	if c == nil {
		return Nil
	}

	return c
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t null

	// The null type is a cell.
	_ = cell.I(&t)

	// The null type has a literal representation.
	_ = literal.I(&t)

	// The null type has a truth value.
	_ = truth.I(&t)
}
