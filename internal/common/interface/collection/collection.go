// Released under an MIT license. See LICENSE.

// Package collection defines the interfaces shared by cvm's persistent collections.
package collection

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

// I (collection) is any cell with a count of elements.
type I interface {
	cell.I

	Count() int64
}

// Indexed is a collection with positional access.
type Indexed interface {
	I

	Nth(i int64) cell.I
}

// Associative is a collection with keyed access.
type Associative interface {
	I

	Get(k cell.I) (cell.I, bool)
}

// Is returns true if c is a collection.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}

// To returns a collection if c is a collection; Otherwise it panics.
func To(c cell.I) I {
	if t, ok := c.(I); ok {
		return t
	}

	panic(c.Name() + " is not a collection")
}
