// Released under an MIT license. See LICENSE.

// Package digest provides the content hash used to address cells.
package digest

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Size is the length of a digest in bytes.
const Size = 32

// T (digest) is the SHA3-256 hash of a cell's canonical encoding.
type T [Size]byte

type digest = T

// Of returns the digest of the bytes b.
func Of(b []byte) T {
	return sha3.Sum256(b)
}

// Compare orders digests as unsigned big-endian numbers.
func (d digest) Compare(o T) int {
	return bytes.Compare(d[:], o[:])
}

// Nibble returns the 4-bit digit of d at position i (0 is the high nibble of the first byte).
func (d digest) Nibble(i int) int {
	b := d[i/2]
	if i%2 == 0 {
		return int(b >> 4)
	}

	return int(b & 0x0f)
}

// String returns d as lowercase hex.
func (d digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse converts a 64 character hex string to a digest.
func Parse(s string) (T, bool) {
	var d T

	b, err := hex.DecodeString(s)
	if err != nil || len(b) != Size {
		return d, false
	}

	copy(d[:], b)

	return d, true
}
