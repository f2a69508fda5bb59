// Released under an MIT license. See LICENSE.

// Package truth defines the interface for cvm types that have a truth value.
package truth

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

// I (truth) is anything with a truth value other than true.
type I interface {
	Bool() bool
}

// Value returns the truth value for a cell. Only nil and false are false.
func Value(c cell.I) bool {
	if c == nil {
		return false
	}

	if b, ok := c.(I); ok {
		return b.Bool()
	}

	return true
}
