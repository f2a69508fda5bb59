// Released under an MIT license. See LICENSE.

// Package vector provides cvm's persistent vector.
//
// A vector is a 16-way trie of full leaves plus a tail of up to 16
// elements. The shape of the trie depends only on the number of elements.
package vector

import (
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/collection"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

const name = "vector"

// Trie parameters.
const (
	Bits  = 4
	Width = 1 << Bits
	mask  = Width - 1
)

// T (vector) is an immutable indexed sequence.
type T struct {
	count int64
	root  cell.I // A *Node or a reference to one. Nil if the trie is empty.
	shift uint
	tail  []cell.I

	memo encoding.Memo
}

type vector = T

// Empty is the vector with no elements.
var Empty = &vector{shift: Bits} //nolint:gochecknoglobals

// New creates a vector holding elements.
func New(elements ...cell.I) *vector {
	v := Empty

	for _, e := range elements {
		v = v.Conj(e)
	}

	return v
}

// Decoded creates a vector from decoded parts.
func Decoded(count int64, root cell.I, tail []cell.I) *vector {
	return &vector{
		count: count,
		root:  root,
		shift: shiftFor(tailoff(count)),
		tail:  tail,
	}
}

// Children returns the trie root, if any, followed by the tail elements.
func (v *vector) Children() []cell.I {
	if v.root == nil {
		return v.tail
	}

	return append([]cell.I{v.root}, v.tail...)
}

// Count returns the number of elements in the vector v.
func (v *vector) Count() int64 {
	return v.count
}

// Encode returns the canonical encoding of the vector v.
func (v *vector) Encode() []byte {
	return v.memo.Encoding(func() []byte {
		b := encoding.AppendUvarint([]byte{encoding.Vector}, uint64(v.count))

		for _, c := range v.Children() {
			b = encoding.Child(b, c)
		}

		return b
	})
}

// Equal returns true if c is a vector with the same elements.
func (v *vector) Equal(c cell.I) bool {
	if !Is(c) {
		return false
	}

	o := To(c)

	return v == o || (v.count == o.count && encoding.Equal(v, o))
}

// Literal returns the literal representation of the vector v.
func (v *vector) Literal() string {
	var b strings.Builder

	b.WriteByte('[')

	v.ForEach(func(i int64, c cell.I) bool {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(literal.String(c))

		return true
	})

	b.WriteByte(']')

	return b.String()
}

// Name returns the type name for vectors.
func (v *vector) Name() string {
	return name
}

// String returns the text representation of the vector v.
func (v *vector) String() string {
	return v.Literal()
}

// Methods specific to vector.

// Assoc returns a vector with element i set to c. When i is the count, c
// is appended.
func (v *vector) Assoc(i int64, c cell.I) *vector {
	if i == v.count {
		return v.Conj(c)
	}

	v.check(i)

	if i >= tailoff(v.count) {
		tail := make([]cell.I, len(v.tail))
		copy(tail, v.tail)
		tail[i&mask] = c

		return &vector{count: v.count, root: v.root, shift: v.shift, tail: tail}
	}

	return &vector{
		count: v.count,
		root:  assoc(v.shift, node(v.root), i, c),
		shift: v.shift,
		tail:  v.tail,
	}
}

// Concat returns a vector with the elements of o after those of v.
func (v *vector) Concat(o *vector) *vector {
	r := v

	o.ForEach(func(_ int64, c cell.I) bool {
		r = r.Conj(c)

		return true
	})

	return r
}

// Conj returns a vector with c appended.
func (v *vector) Conj(c cell.I) *vector {
	if len(v.tail) < Width {
		tail := make([]cell.I, len(v.tail), len(v.tail)+1)
		copy(tail, v.tail)

		return &vector{
			count: v.count + 1,
			root:  v.root,
			shift: v.shift,
			tail:  append(tail, c),
		}
	}

	// The tail is full. It becomes a leaf of the trie.
	leaf := NewNode(v.tail)
	size := v.count // Size of the trie once the leaf is added.

	var (
		root  cell.I
		shift = v.shift
	)

	switch {
	case v.root == nil:
		root = NewNode([]cell.I{leaf})
	case size > 1<<(v.shift+Bits):
		root = NewNode([]cell.I{v.root, path(v.shift, leaf)})
		shift += Bits
	default:
		root = pushLeaf(v.shift, node(v.root), size-Width, leaf)
	}

	return &vector{count: v.count + 1, root: root, shift: shift, tail: []cell.I{c}}
}

// ForEach calls f with each index and element until f returns false.
func (v *vector) ForEach(f func(i int64, c cell.I) bool) {
	var i int64

	if v.root != nil {
		if !walk(node(v.root), f, &i) {
			return
		}
	}

	for _, c := range v.tail {
		if !f(i, ref.Deref(c)) {
			return
		}

		i++
	}
}

// Nth returns element i. An out of range index causes an INDEX panic.
func (v *vector) Nth(i int64) cell.I {
	v.check(i)

	if i >= tailoff(v.count) {
		return ref.Deref(v.tail[i&mask])
	}

	n := node(v.root)
	for level := v.shift; level > 0; level -= Bits {
		n = node(n.children[(i>>level)&mask])
	}

	return ref.Deref(n.children[i&mask])
}

// Pop returns a vector without its last element.
func (v *vector) Pop() *vector {
	switch {
	case v.count == 0:
		panic(errsys.New(errsys.INDEX, "cannot pop an empty vector"))
	case v.count == 1:
		return Empty
	case len(v.tail) > 1:
		return &vector{
			count: v.count - 1,
			root:  v.root,
			shift: v.shift,
			tail:  v.tail[: len(v.tail)-1 : len(v.tail)-1],
		}
	}

	// The last leaf of the trie becomes the tail.
	size := tailoff(v.count)
	leaf := leafFor(v.root, v.shift, size-1)

	var root cell.I

	shift := shiftFor(size - Width)
	if size > Width {
		root = pop(v.shift, node(v.root), size-1)

		for s := v.shift; s > shift; s -= Bits {
			root = node(root).children[0]
		}
	}

	return &vector{count: v.count - 1, root: root, shift: shift, tail: leaf.children}
}

// Slice returns the elements from start up to, but not including, end.
func (v *vector) Slice(start, end int64) *vector {
	if start < 0 || end > v.count || start > end {
		panic(errsys.New(errsys.INDEX, "invalid slice [%d:%d] of %d", start, end, v.count))
	}

	if start == 0 {
		r := v
		for r.count > end {
			r = r.Pop()
		}

		return r
	}

	r := Empty
	for i := start; i < end; i++ {
		r = r.Conj(v.Nth(i))
	}

	return r
}

// Values returns the elements of the vector v.
func (v *vector) Values() []cell.I {
	s := make([]cell.I, 0, v.count)

	v.ForEach(func(_ int64, c cell.I) bool {
		s = append(s, c)

		return true
	})

	return s
}

func (v *vector) check(i int64) {
	if i < 0 || i >= v.count {
		panic(errsys.New(errsys.INDEX, "index %d out of range for vector of %d", i, v.count))
	}
}

// Is returns true if c is a vector.
func Is(c cell.I) bool {
	_, ok := c.(*vector)

	return ok
}

// To returns a vector if c is a vector; Otherwise it panics.
func To(c cell.I) *vector {
	if t, ok := c.(*vector); ok {
		return t
	}

	panic("not a " + name)
}

func assoc(level uint, n *Node, i int64, c cell.I) *Node {
	children := make([]cell.I, len(n.children))
	copy(children, n.children)

	sub := (i >> level) & mask
	if level == 0 {
		children[sub] = c
	} else {
		children[sub] = assoc(level-Bits, node(children[sub]), i, c)
	}

	return NewNode(children)
}

func leafFor(root cell.I, shift uint, i int64) *Node {
	n := node(root)
	for level := shift; level > 0; level -= Bits {
		n = node(n.children[(i>>level)&mask])
	}

	return n
}

func path(level uint, leaf *Node) *Node {
	if level == 0 {
		return leaf
	}

	return NewNode([]cell.I{path(level-Bits, leaf)})
}

// pop removes the leaf holding element i, the last element of the trie.
func pop(level uint, n *Node, i int64) cell.I {
	sub := (i >> level) & mask

	if level > Bits {
		child := pop(level-Bits, node(n.children[sub]), i)
		if child == nil && sub == 0 {
			return nil
		}

		children := make([]cell.I, sub, sub+1)
		copy(children, n.children)

		if child != nil {
			children = append(children, child)
		}

		return NewNode(children)
	}

	if sub == 0 {
		return nil
	}

	return NewNode(n.children[:sub:sub])
}

// pushLeaf adds leaf to the trie rooted at n. Element i is its first element.
func pushLeaf(level uint, n *Node, i int64, leaf *Node) *Node {
	sub := int((i >> level) & mask)

	children := make([]cell.I, len(n.children), len(n.children)+1)
	copy(children, n.children)

	switch {
	case level == Bits:
		children = append(children, leaf)
	case sub < len(children):
		children[sub] = pushLeaf(level-Bits, node(children[sub]), i, leaf)
	default:
		children = append(children, path(level-Bits, leaf))
	}

	return NewNode(children)
}

func shiftFor(size int64) uint {
	shift := uint(Bits)
	for size > 1<<(shift+Bits) {
		shift += Bits
	}

	return shift
}

func tailoff(count int64) int64 {
	if count < Width {
		return 0
	}

	return ((count - 1) >> Bits) << Bits
}

func walk(n *Node, f func(int64, cell.I) bool, i *int64) bool {
	for _, c := range n.children {
		c = ref.Deref(c)

		if child, ok := c.(*Node); ok {
			if !walk(child, f, i) {
				return false
			}

			continue
		}

		if !f(*i, c) {
			return false
		}

		*i++
	}

	return true
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t vector

	// The vector type is a cell.
	_ = cell.I(&t)

	// The vector type is an indexed collection.
	_ = collection.Indexed(&t)

	// The vector type is composite.
	_ = composite.I(&t)

	// The vector type has a literal representation.
	_ = literal.I(&t)

	// The vector type is a stringer.
	_ = common.Stringer(&t)
}
