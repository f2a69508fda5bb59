// Released under an MIT license. See LICENSE.

// Package addr provides the account address type.
package addr

import (
	"strconv"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "address"

// T (addr) identifies an account.
type T uint64

type addr = T

// New creates an address.
func New(n uint64) *addr {
	a := addr(n)

	return &a
}

// Encode returns the canonical encoding of the address a.
func (a *addr) Encode() []byte {
	return encoding.AppendUvarint([]byte{encoding.Address}, uint64(*a))
}

// Equal returns true if c is the same address.
func (a *addr) Equal(c cell.I) bool {
	return Is(c) && *a == *To(c)
}

// Literal returns the literal representation of the address a.
func (a *addr) Literal() string {
	return "#" + a.String()
}

// Name returns the type name for addresses.
func (a *addr) Name() string {
	return name
}

// String returns the decimal text of the address a.
func (a *addr) String() string {
	return strconv.FormatUint(uint64(*a), 10)
}

// Uint64 returns the address as a number.
func (a *addr) Uint64() uint64 {
	return uint64(*a)
}

// Is returns true if c is an address.
func Is(c cell.I) bool {
	_, ok := c.(*addr)

	return ok
}

// To returns an address if c is an address; Otherwise it panics.
func To(c cell.I) *addr {
	if t, ok := c.(*addr); ok {
		return t
	}

	panic("not an " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t addr

	// The addr type is a cell.
	_ = cell.I(&t)

	// The addr type has a literal representation.
	_ = literal.I(&t)

	// The addr type is a stringer.
	_ = common.Stringer(&t)
}
