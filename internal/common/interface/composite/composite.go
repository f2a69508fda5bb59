// Released under an MIT license. See LICENSE.

// Package composite defines the interface for cells that contain other cells.
package composite

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

// I (composite) is any cell with child cells in its encoding.
// Children returns the children in encoding order. A child may be an
// unresolved reference.
type I interface {
	Children() []cell.I
}

// Children returns the children of c, or nil if c is not composite.
func Children(c cell.I) []cell.I {
	if p, ok := c.(I); ok {
		return p.Children()
	}

	return nil
}
