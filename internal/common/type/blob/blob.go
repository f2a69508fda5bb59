// Released under an MIT license. See LICENSE.

// Package blob provides cvm's immutable byte sequence.
package blob

import (
	"bytes"
	"encoding/hex"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "blob"

// T (blob) holds bytes that are never modified.
type T struct {
	b []byte
}

type blob = T

// New creates a blob holding a copy of b.
func New(b []byte) *blob {
	return &blob{append([]byte{}, b...)}
}

// Parse creates a blob from hex digits (without the leading 0x).
func Parse(s string) (*blob, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	return &blob{b}, nil
}

// Bytes returns a copy of the bytes in the blob.
func (b *blob) Bytes() []byte {
	return append([]byte{}, b.b...)
}

// Count returns the number of bytes in the blob.
func (b *blob) Count() int64 {
	return int64(len(b.b))
}

// Encode returns the canonical encoding of the blob b.
func (b *blob) Encode() []byte {
	return encoding.AppendBytes([]byte{encoding.Blob}, b.b)
}

// Equal returns true if c is a blob with the same bytes.
func (b *blob) Equal(c cell.I) bool {
	return Is(c) && bytes.Equal(b.b, To(c).b)
}

// Literal returns the literal representation of the blob b.
func (b *blob) Literal() string {
	return "0x" + hex.EncodeToString(b.b)
}

// Name returns the type name for blobs.
func (b *blob) Name() string {
	return name
}

// Is returns true if c is a blob.
func Is(c cell.I) bool {
	_, ok := c.(*blob)

	return ok
}

// To returns a blob if c is a blob; Otherwise it panics.
func To(c cell.I) *blob {
	if t, ok := c.(*blob); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t blob

	// The blob type is a cell.
	_ = cell.I(&t)

	// The blob type has a literal representation.
	_ = literal.I(&t)
}
