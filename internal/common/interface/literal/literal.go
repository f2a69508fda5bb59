// Released under an MIT license. See LICENSE.

// Package literal defines the interface for cvm types that can be expressed as literals.
package literal

import (
	"unicode/utf8"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

// Exceeded is appended to printed text that was truncated.
const Exceeded = "<<Print limit exceeded>>"

// I (literal) is any type that can be expressed as a literal.
type I interface {
	Literal() string
}

// String returns the literal string representation for a cell, if possible.
func String(c cell.I) string {
	l, ok := c.(I)
	if !ok {
		// Not all cell types can be expressed as literals.
		panic(c.Name() + " does not have a literal representation")
	}

	return l.Literal()
}

// Print returns the literal for c limited to limit bytes. The boolean is
// false if the text was truncated, in which case it ends with Exceeded.
func Print(c cell.I, limit int) (string, bool) {
	s := String(c)
	if len(s) <= limit {
		return s, true
	}

	n := limit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n] + Exceeded, false
}
