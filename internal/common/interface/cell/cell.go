// Released under an MIT license. See LICENSE.

// Package cell defines the interface for all cvm values.
package cell

// I (cell) is the basic unit of storage in cvm.
//
// Encode returns the canonical encoding. Two cells with equal encodings
// are the same value. Cells are immutable once constructed.
type I interface {
	Encode() []byte
	Equal(c I) bool
	Name() string
}
