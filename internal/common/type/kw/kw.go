// Released under an MIT license. See LICENSE.

// Package kw provides cvm's keyword cell type.
package kw

import (
	"sync"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
)

const name = "keyword"

// T (kw) is a name that evaluates to itself. Keywords are interned.
type T string

type kw = T

//nolint:gochecknoglobals
var (
	cache  = map[string]*kw{}
	cachel = &sync.RWMutex{}
)

// New returns the keyword with text v (without the leading colon).
func New(v string) *kw {
	cachel.RLock()
	k, ok := cache[v]
	cachel.RUnlock()

	if ok {
		return k
	}

	cachel.Lock()
	defer cachel.Unlock()

	if k, ok = cache[v]; ok {
		return k
	}

	t := kw(v)
	cache[v] = &t

	return &t
}

// Encode returns the canonical encoding of the keyword k.
func (k *kw) Encode() []byte {
	return encoding.AppendString([]byte{encoding.Keyword}, string(*k))
}

// Equal returns true if c is a keyword with the same text.
func (k *kw) Equal(c cell.I) bool {
	return Is(c) && k.String() == To(c).String()
}

// Literal returns the literal representation of the keyword k.
func (k *kw) Literal() string {
	return ":" + string(*k)
}

// Name returns the type name for the keyword k.
func (k *kw) Name() string {
	return name
}

// String returns the text of the keyword k.
func (k *kw) String() string {
	return string(*k)
}

// Is returns true if c is a keyword.
func Is(c cell.I) bool {
	_, ok := c.(*kw)

	return ok
}

// To returns a keyword if c is a keyword; Otherwise it panics.
func To(c cell.I) *kw {
	if t, ok := c.(*kw); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t kw

	// The keyword type is a cell.
	_ = cell.I(&t)

	// The keyword type has a literal representation.
	_ = literal.I(&t)

	// The keyword type is a stringer.
	_ = common.Stringer(&t)
}
