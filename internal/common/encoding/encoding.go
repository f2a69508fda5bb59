// Released under an MIT license. See LICENSE.

// Package encoding defines the canonical binary encoding shared by all cells.
//
// Every cell starts with a one byte tag. A child cell is embedded in its
// parent's encoding when its own encoding is short enough; otherwise the
// parent holds a reference: the Ref tag followed by the child's digest.
package encoding

import (
	"bytes"
	"encoding/binary"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

// MaxEmbedded is the largest encoding, in bytes, that is inlined in a parent.
const MaxEmbedded = 140

// Tags.
const (
	Nil        byte = 0x00
	Long       byte = 0x10
	Double     byte = 0x1D
	Ref        byte = 0x20
	String     byte = 0x30
	StringTree byte = 0x31
	Symbol     byte = 0x32
	Keyword    byte = 0x33
	Blob       byte = 0x34
	Vector     byte = 0x80
	VectorNode byte = 0x81
	List       byte = 0x82
	Set        byte = 0x83
	MapLeaf    byte = 0x88
	MapTree    byte = 0x89
	Syntax     byte = 0x8C
	Record     byte = 0xA0
	False      byte = 0xB0
	True       byte = 0xB1
	Error      byte = 0xCB
	Primitive  byte = 0xCE
	Closure    byte = 0xCF
	Address    byte = 0xEA
)

// AppendBytes appends the length of v followed by v.
func AppendBytes(b []byte, v []byte) []byte {
	b = binary.AppendUvarint(b, uint64(len(v)))

	return append(b, v...)
}

// AppendString appends the length of s followed by s.
func AppendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))

	return append(b, s...)
}

// AppendUvarint appends the unsigned varint v.
func AppendUvarint(b []byte, v uint64) []byte {
	return binary.AppendUvarint(b, v)
}

// AppendVarint appends the signed (zigzag) varint v.
func AppendVarint(b []byte, v int64) []byte {
	return binary.AppendVarint(b, v)
}

// Child appends the encoding of c as a child: embedded or referenced.
func Child(b []byte, c cell.I) []byte {
	if c == nil {
		return append(b, Nil)
	}

	if r, ok := c.(*ref.T); ok {
		h := r.Digest()
		b = append(b, Ref)

		return append(b, h[:]...)
	}

	e := c.Encode()
	if len(e) <= MaxEmbedded {
		return append(b, e...)
	}

	h := digest.Of(e)
	b = append(b, Ref)

	return append(b, h[:]...)
}

// Embedded returns true if c is inlined when it appears as a child.
func Embedded(c cell.I) bool {
	if _, ok := c.(*ref.T); ok {
		return false
	}

	return len(c.Encode()) <= MaxEmbedded
}

// Equal returns true if a and b are the same value.
func Equal(a, b cell.I) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	ra, aok := a.(*ref.T)
	rb, bok := b.(*ref.T)

	switch {
	case aok && bok:
		return ra.Digest() == rb.Digest()
	case aok:
		return ra.Digest() == Hash(b)
	case bok:
		return rb.Digest() == Hash(a)
	}

	return bytes.Equal(a.Encode(), b.Encode())
}

// Hash returns the digest of c's encoding.
func Hash(c cell.I) digest.T {
	if r, ok := c.(*ref.T); ok {
		return r.Digest()
	}

	return digest.Of(c.Encode())
}

// Size returns the memory size of c: the length of its encoding plus the
// size of every descendant that is referenced rather than embedded.
func Size(c cell.I) int64 {
	c = ref.Deref(c)

	n := int64(len(c.Encode()))

	for _, r := range Refs(c) {
		n += Size(r)
	}

	return n
}

// Refs returns the descendants of c that are referenced rather than
// embedded. Embedded children are searched but not returned.
func Refs(c cell.I) []cell.I {
	return refs(nil, ref.Deref(c))
}

func refs(acc []cell.I, c cell.I) []cell.I {
	for _, child := range composite.Children(c) {
		switch {
		case child == nil:
		case Embedded(child):
			acc = refs(acc, child)
		default:
			acc = append(acc, child)
		}
	}

	return acc
}
