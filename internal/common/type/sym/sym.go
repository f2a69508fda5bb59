// Released under an MIT license. See LICENSE.

// Package sym provides cvm's symbol cell type.
package sym

import (
	"strings"
	"sync"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
)

const (
	name  = "symbol"
	short = 8
)

// T (sym) wraps Go's string type. Short and common strings are interned.
type T string

type sym = T

// New creates a sym cell.
func New(v string) *sym {
	return symnew(v)
}

// Encode returns the canonical encoding of the sym s.
func (s *sym) Encode() []byte {
	return encoding.AppendString([]byte{encoding.Symbol}, string(*s))
}

// Equal returns true if c is a sym and wraps the same string.
func (s *sym) Equal(c cell.I) bool {
	return Is(c) && s.String() == To(c).String()
}

// Literal returns the literal representation of the sym s.
func (s *sym) Literal() string {
	return repr(string(*s))
}

// Name returns the type name for the sym s.
func (s *sym) Name() string {
	return name
}

// String returns the text of the sym s.
func (s *sym) String() string {
	return string(*s)
}

// Qualified splits a symbol of the form ns/name. The symbol / on its own
// is not qualified.
func (s *sym) Qualified() (ns, local string, ok bool) {
	v := string(*s)

	i := strings.IndexByte(v, '/')
	if i <= 0 || i == len(v)-1 {
		return "", v, false
	}

	return v[:i], v[i+1:], true
}

// Cache enables (or disables) caching of all symbols.
func Cache(a bool) {
	cachel.Lock()
	defer cachel.Unlock()

	all = a
}

// Is returns true if c is a sym.
func Is(c cell.I) bool {
	_, ok := c.(*sym)

	return ok
}

// To returns a sym if c is a sym; Otherwise it panics.
func To(c cell.I) *sym {
	if t, ok := c.(*sym); ok {
		return t
	}

	panic("not a " + name)
}

//nolint:gochecknoglobals
var (
	all    = false
	cache  = map[string]*sym{}
	cachel = &sync.RWMutex{}
)

func meta(s string) string {
	return "(|" + name + " " + str.Quote(s) + "|)"
}

func repr(s string) string {
	q := adapted.CanonicalString(s)

	if len(s) == 0 || strings.ContainsAny(s, " ()[]{}\"';^,") || q[2:len(q)-1] != s {
		return meta(s)
	}

	switch s[0] {
	case ':', '#', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return meta(s)
	case '-', '+':
		if len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
			return meta(s)
		}
	}

	switch s {
	case "nil", "true", "false":
		return meta(s)
	}

	return s
}

func symnew(v string) *sym {
	p, ok, cacheable := symtry(v)
	if !ok {
		if cacheable {
			cachel.Lock()
			defer cachel.Unlock()

			if p, ok = cache[v]; ok {
				return p
			}
		}

		s := sym(v)
		p = &s

		if cacheable {
			cache[v] = p
		}
	}

	return p
}

func symtry(v string) (p *sym, ok bool, cacheable bool) {
	cachel.RLock()
	defer cachel.RUnlock()

	cacheable = all || len(v) <= short

	p, ok = cache[v]

	return
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t sym

	// The sym type is a cell.
	_ = cell.I(&t)

	// The sym type has a literal representation.
	_ = literal.I(&t)

	// The sym type is a stringer.
	_ = common.Stringer(&t)
}
