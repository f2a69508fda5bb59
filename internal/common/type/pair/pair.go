// Released under an MIT license. See LICENSE.

// Package pair provides cvm's immutable cons cell type.
package pair

import (
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

const name = "list"

//nolint:gochecknoglobals
var (
	// Null is the empty list. It is also used to mark the end of a list.
	Null = &pair{}
)

// T (pair) is a cons cell. The cdr of a pair is always a list.
type T struct {
	car cell.I
	cdr cell.I
	n   int64

	memo encoding.Memo
}

type pair = T

// Decoded creates a pair from decoded parts. The tail may be a reference.
func Decoded(n int64, h, t cell.I) *pair {
	return &pair{car: h, cdr: t, n: n}
}

// Children returns the head and tail of a non-empty pair.
func (p *pair) Children() []cell.I {
	if p.n == 0 {
		return nil
	}

	return []cell.I{p.car, p.cdr}
}

// Count returns the number of elements in the list that starts at p.
func (p *pair) Count() int64 {
	return p.n
}

// Encode returns the canonical encoding of the list that starts at p.
func (p *pair) Encode() []byte {
	return p.memo.Encoding(func() []byte {
		b := encoding.AppendUvarint([]byte{encoding.List}, uint64(p.n))
		if p.n == 0 {
			return b
		}

		b = encoding.Child(b, p.car)

		return encoding.Child(b, p.cdr)
	})
}

// Equal returns true if c is a list with elements that are equal to p's.
func (p *pair) Equal(c cell.I) bool {
	if !Is(c) {
		return false
	}

	o := To(c)
	if p == o {
		return true
	}

	return p.n == o.n && encoding.Equal(p, o)
}

// Literal returns the literal representation of the list p.
func (p *pair) Literal() string {
	var b strings.Builder

	b.WriteByte('(')

	for l := cell.I(p); l != Null; l = Cdr(l) {
		if l != cell.I(p) {
			b.WriteByte(' ')
		}

		b.WriteString(literal.String(Car(l)))
	}

	b.WriteByte(')')

	return b.String()
}

// Name returns the name for a pair type.
func (p *pair) Name() string {
	return name
}

// String returns the text representation of the pair p.
func (p *pair) String() string {
	return p.Literal()
}

// Functions specific to pair.

// Car returns the car/head/first member of the pair c.
// If c is not a non-empty list, this function will panic.
func Car(c cell.I) cell.I {
	p := To(c)
	if p.n == 0 {
		panic(errsys.New(errsys.INDEX, "first of empty list"))
	}

	return ref.Deref(p.car)
}

// Cdr returns the cdr/tail/rest member of the pair c.
// If c is not a non-empty list, this function will panic.
func Cdr(c cell.I) cell.I {
	p := To(c)
	if p.n == 0 {
		panic(errsys.New(errsys.INDEX, "rest of empty list"))
	}

	return ref.Deref(p.cdr)
}

// Caar returns the car of the car of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func Caar(c cell.I) cell.I {
	return Car(Car(c))
}

// Cadr returns the car of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func Cadr(c cell.I) cell.I {
	return Car(Cdr(c))
}

// Cddr returns the cdr of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func Cddr(c cell.I) cell.I {
	return Cdr(Cdr(c))
}

// Caddr returns the car of the cdr of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func Caddr(c cell.I) cell.I {
	return Car(Cdr(Cdr(c)))
}

// Cons conses h onto the list t to form a new pair. The list t is shared.
func Cons(h, t cell.I) cell.I {
	return &pair{car: h, cdr: t, n: To(t).n + 1}
}

// Is returns true if c is a list.
func Is(c cell.I) bool {
	_, ok := c.(*pair)

	return ok
}

// To returns a pair if c is a list; Otherwise it panics.
func To(c cell.I) *pair {
	if t, ok := c.(*pair); ok {
		return t
	}

	if c != nil {
		if r, ok := c.(*ref.T); ok {
			return To(ref.Deref(r))
		}
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t pair

	// The pair type is a cell.
	_ = cell.I(&t)

	// The pair type is composite.
	_ = composite.I(&t)

	// The pair type has a literal representation.
	_ = literal.I(&t)

	// The pair type is a stringer.
	_ = common.Stringer(&t)
}
