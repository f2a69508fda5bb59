// Released under an MIT license. See LICENSE.

package encoding

import (
	"sync/atomic"
)

// Memo caches an encoding. Cells are immutable so the first encoding
// computed is the only one. Concurrent readers may compute it twice.
type Memo struct {
	p atomic.Pointer[[]byte]
}

// Encoding returns the cached encoding or computes it with f.
func (m *Memo) Encoding(f func() []byte) []byte {
	if p := m.p.Load(); p != nil {
		return *p
	}

	b := f()
	m.p.Store(&b)

	return b
}
