// Released under an MIT license. See LICENSE.

// Package store provides cvm's content addressed storage.
//
// Encodings are stored under their digest. A stored cell's referenced
// descendants are always stored before it so any digest in the store can
// be fully resolved.
package store

import (
	"sync"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/format"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

// T (store) maps digests to encodings.
type T struct {
	sync.RWMutex
	m map[digest.T][]byte
}

type store = T

// New creates a new store.
func New() *store {
	return &store{m: map[digest.T][]byte{}}
}

// Get retrieves the encoding with the digest h.
func (s *store) Get(h digest.T) ([]byte, bool) {
	if s == nil {
		return nil, false
	}

	s.RLock()
	defer s.RUnlock()

	b, ok := s.m[h]

	return b, ok
}

// Has returns true if the store holds an encoding with the digest h.
func (s *store) Has(h digest.T) bool {
	_, ok := s.Get(h)

	return ok
}

// Load decodes the cell with the digest h. Referenced children are
// resolved lazily from the store.
func (s *store) Load(h digest.T) (cell.I, error) {
	return (&format.Loader{Source: s}).Resolve(h)
}

// Put stores c and every descendant it references and returns c's digest.
func (s *store) Put(c cell.I) digest.T {
	if r, ok := c.(*ref.T); ok && !r.IsResolved() {
		// Unresolved references were loaded from storage.
		return r.Digest()
	}

	h := encoding.Hash(c)
	if s.Has(h) {
		return h
	}

	c = ref.Deref(c)

	for _, child := range encoding.Refs(c) {
		s.Put(child)
	}

	b := c.Encode()

	s.Lock()
	defer s.Unlock()

	s.m[h] = b

	return h
}

// Size returns the number of encodings in the store.
func (s *store) Size() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.m)
}
