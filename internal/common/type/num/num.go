// Released under an MIT license. See LICENSE.

// Package num provides cvm's integer type.
package num

import (
	"strconv"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "long"

// T (num) wraps Go's int64 type. Arithmetic wraps on overflow.
type T int64

type num = T

//nolint:gochecknoglobals
var (
	cache [256]num
)

func init() { //nolint:gochecknoinits
	for i := range cache {
		cache[i] = num(i - 128)
	}
}

// Int creates a num from the integer i.
func Int(i int64) *num {
	if i >= -128 && i < 128 {
		return &cache[i+128]
	}

	n := num(i)

	return &n
}

// Parse creates a num from its decimal text.
func Parse(s string) (*num, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}

	return Int(i), nil
}

// Encode returns the canonical encoding of the num n.
func (n *num) Encode() []byte {
	return encoding.AppendVarint([]byte{encoding.Long}, int64(*n))
}

// Equal returns true if c is the same number as the num n.
func (n *num) Equal(c cell.I) bool {
	return Is(c) && n.Int64() == To(c).Int64()
}

// Int64 returns the value of the num n.
func (n *num) Int64() int64 {
	return int64(*n)
}

// Literal returns the literal representation of the num n.
func (n *num) Literal() string {
	return n.String()
}

// Name returns the type name for the num n.
func (n *num) Name() string {
	return name
}

// String returns the text of the num n.
func (n *num) String() string {
	return strconv.FormatInt(int64(*n), 10)
}

// Is returns true if c is a num.
func Is(c cell.I) bool {
	_, ok := c.(*num)

	return ok
}

// To returns a num if c is a num; Otherwise it panics.
func To(c cell.I) *num {
	if t, ok := c.(*num); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a cell.
	_ = cell.I(&t)

	// The num type has a literal representation.
	_ = literal.I(&t)

	// The num type is a stringer.
	_ = common.Stringer(&t)
}
