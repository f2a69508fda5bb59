// Released under an MIT license. See LICENSE.

// Package double provides cvm's floating point type.
package double

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "double"

// NaN is the bit pattern used for every NaN.
const NaN = 0x7FF8000000000000

// T (double) wraps Go's float64 type.
type T float64

type double = T

// New creates a double from the float64 f. Every NaN is made canonical.
func New(f float64) *double {
	if math.IsNaN(f) {
		f = math.Float64frombits(NaN)
	}

	d := double(f)

	return &d
}

// Bits returns the bits of an encoded double.
func Bits(f float64) uint64 {
	if math.IsNaN(f) {
		return NaN
	}

	return math.Float64bits(f)
}

// Parse creates a double from its literal text.
func Parse(s string) (*double, error) {
	switch s {
	case "##NaN":
		return New(math.NaN()), nil
	case "##Inf":
		return New(math.Inf(1)), nil
	case "##-Inf":
		return New(math.Inf(-1)), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return New(f), nil
}

// Encode returns the canonical encoding of the double d.
func (d *double) Encode() []byte {
	return binary.BigEndian.AppendUint64([]byte{encoding.Double}, Bits(float64(*d)))
}

// Equal returns true if c is a double with the same encoding.
func (d *double) Equal(c cell.I) bool {
	return Is(c) && Bits(d.Float64()) == Bits(To(c).Float64())
}

// Float64 returns the value of the double d.
func (d *double) Float64() float64 {
	return float64(*d)
}

// Literal returns the literal representation of the double d.
func (d *double) Literal() string {
	f := float64(*d)

	switch {
	case math.IsNaN(f):
		return "##NaN"
	case math.IsInf(f, 1):
		return "##Inf"
	case math.IsInf(f, -1):
		return "##-Inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".en") {
		s += ".0"
	}

	return s
}

// Name returns the type name for the double d.
func (d *double) Name() string {
	return name
}

// String returns the text of the double d.
func (d *double) String() string {
	return d.Literal()
}

// Is returns true if c is a double.
func Is(c cell.I) bool {
	_, ok := c.(*double)

	return ok
}

// To returns a double if c is a double; Otherwise it panics.
func To(c cell.I) *double {
	if t, ok := c.(*double); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t double

	// The double type is a cell.
	_ = cell.I(&t)

	// The double type has a literal representation.
	_ = literal.I(&t)

	// The double type is a stringer.
	_ = common.Stringer(&t)
}
