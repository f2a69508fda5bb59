// Released under an MIT license. See LICENSE.

// Package hashmap provides cvm's persistent map.
//
// A map is a hash trie keyed by the digest of each key. A map (or subtree)
// with at most LeafMax entries is a leaf holding entries sorted by digest.
// A larger one is a tree that branches on the digest nibble at its depth.
// The shape depends only on the set of keys so equal maps encode the same.
package hashmap

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/collection"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

const name = "map"

// LeafMax is the largest number of entries held in a leaf.
const LeafMax = 8

// T (hashmap) is an immutable map from keys to values.
type T struct {
	count int64

	entries []entry // Leaf.

	children []cell.I // Tree. Each child is a *T or a reference to one.
	depth    byte
	mask     uint16

	memo encoding.Memo
}

type hashmap = T

type entry struct {
	h digest.T
	k cell.I
	v cell.I
}

// Empty is the map with no entries.
var Empty = &hashmap{} //nolint:gochecknoglobals

// New creates a map from alternating keys and values.
func New(kvs ...cell.I) *hashmap {
	if len(kvs)%2 != 0 {
		panic(errsys.New(errsys.ARGUMENT, "map needs an even number of keys and values"))
	}

	m := Empty
	for i := 0; i < len(kvs); i += 2 {
		m = m.Assoc(kvs[i], kvs[i+1])
	}

	return m
}

// Leaf creates a leaf from decoded keys and values. The keys must be in
// ascending digest order.
func Leaf(kvs []cell.I) *hashmap {
	m := &hashmap{count: int64(len(kvs) / 2)}

	for i := 0; i < len(kvs); i += 2 {
		m.entries = append(m.entries, entry{encoding.Hash(kvs[i]), kvs[i], kvs[i+1]})
	}

	return m
}

// Tree creates a tree node from decoded parts.
func Tree(count int64, depth byte, mask uint16, children []cell.I) *hashmap {
	return &hashmap{count: count, children: children, depth: depth, mask: mask}
}

// Children returns the keys and values of a leaf, or the subtrees of a tree.
func (m *hashmap) Children() []cell.I {
	if m.isTree() {
		return m.children
	}

	s := make([]cell.I, 0, 2*len(m.entries))
	for _, e := range m.entries {
		s = append(s, e.k, e.v)
	}

	return s
}

// Count returns the number of entries in the map m.
func (m *hashmap) Count() int64 {
	return m.count
}

// Encode returns the canonical encoding of the map m.
func (m *hashmap) Encode() []byte {
	return m.memo.Encoding(func() []byte {
		if !m.isTree() {
			b := encoding.AppendUvarint([]byte{encoding.MapLeaf}, uint64(m.count))
			for _, e := range m.entries {
				b = encoding.Child(b, e.k)
				b = encoding.Child(b, e.v)
			}

			return b
		}

		b := encoding.AppendUvarint([]byte{encoding.MapTree}, uint64(m.count))
		b = append(b, m.depth, byte(m.mask>>8), byte(m.mask))

		for _, c := range m.children {
			b = encoding.Child(b, c)
		}

		return b
	})
}

// Equal returns true if c is a map with the same entries.
func (m *hashmap) Equal(c cell.I) bool {
	if !Is(c) {
		return false
	}

	o := To(c)

	return m == o || (m.count == o.count && encoding.Equal(m, o))
}

// Literal returns the literal representation of the map m.
func (m *hashmap) Literal() string {
	var b strings.Builder

	b.WriteByte('{')

	first := true
	m.ForEach(func(k, v cell.I) bool {
		if !first {
			b.WriteString(", ")
		}

		first = false

		b.WriteString(literal.String(k))
		b.WriteByte(' ')
		b.WriteString(literal.String(v))

		return true
	})

	b.WriteByte('}')

	return b.String()
}

// Name returns the type name for maps.
func (m *hashmap) Name() string {
	return name
}

// String returns the text representation of the map m.
func (m *hashmap) String() string {
	return m.Literal()
}

// Methods specific to hashmap.

// Assoc returns a map with k mapped to v.
func (m *hashmap) Assoc(k, v cell.I) *hashmap {
	return m.assoc(0, entry{encoding.Hash(k), k, v})
}

// ContainsKey returns true if the map m has an entry for k.
func (m *hashmap) ContainsKey(k cell.I) bool {
	_, ok := m.Get(k)

	return ok
}

// Dissoc returns a map without an entry for k.
func (m *hashmap) Dissoc(k cell.I) *hashmap {
	return m.dissoc(0, encoding.Hash(k))
}

// ForEach calls f with each key and value, in ascending key digest order,
// until f returns false.
func (m *hashmap) ForEach(f func(k, v cell.I) bool) {
	m.each(f)
}

// Get returns the value for k and true, or nil and false if there is none.
func (m *hashmap) Get(k cell.I) (cell.I, bool) {
	h := encoding.Hash(k)
	n := m

	for n.isTree() {
		bit := uint16(1) << h.Nibble(int(n.depth))
		if n.mask&bit == 0 {
			return nil, false
		}

		n = n.child(bit)
	}

	i := n.search(h)
	if i < len(n.entries) && n.entries[i].h == h {
		return ref.Deref(n.entries[i].v), true
	}

	return nil, false
}

// Keys returns the keys of the map m in iteration order.
func (m *hashmap) Keys() []cell.I {
	s := make([]cell.I, 0, m.count)

	m.ForEach(func(k, _ cell.I) bool {
		s = append(s, k)

		return true
	})

	return s
}

// Values returns the values of the map m in iteration order.
func (m *hashmap) Values() []cell.I {
	s := make([]cell.I, 0, m.count)

	m.ForEach(func(_, v cell.I) bool {
		s = append(s, v)

		return true
	})

	return s
}

func (m *hashmap) assoc(depth int, e entry) *hashmap {
	if !m.isTree() {
		i := m.search(e.h)
		if i < len(m.entries) && m.entries[i].h == e.h {
			if encoding.Equal(m.entries[i].v, e.v) {
				return m
			}

			entries := make([]entry, len(m.entries))
			copy(entries, m.entries)
			entries[i] = e

			return &hashmap{count: m.count, entries: entries}
		}

		entries := make([]entry, 0, len(m.entries)+1)
		entries = append(entries, m.entries[:i]...)
		entries = append(entries, e)
		entries = append(entries, m.entries[i:]...)

		return build(depth, entries)
	}

	bit := uint16(1) << e.h.Nibble(depth)
	idx := m.index(bit)

	if m.mask&bit == 0 {
		children := make([]cell.I, 0, len(m.children)+1)
		children = append(children, m.children[:idx]...)
		children = append(children, build(depth+1, []entry{e}))
		children = append(children, m.children[idx:]...)

		return Tree(m.count+1, m.depth, m.mask|bit, children)
	}

	old := m.child(bit)

	c := old.assoc(depth+1, e)
	if c == old {
		return m
	}

	children := make([]cell.I, len(m.children))
	copy(children, m.children)
	children[idx] = c

	return Tree(m.count-old.count+c.count, m.depth, m.mask, children)
}

func (m *hashmap) child(bit uint16) *hashmap {
	c, ok := ref.Deref(m.children[m.index(bit)]).(*hashmap)
	if !ok {
		panic("corrupt map: expected a subtree")
	}

	return c
}

func (m *hashmap) dissoc(depth int, h digest.T) *hashmap {
	if !m.isTree() {
		i := m.search(h)
		if i == len(m.entries) || m.entries[i].h != h {
			return m
		}

		entries := make([]entry, 0, len(m.entries)-1)
		entries = append(entries, m.entries[:i]...)
		entries = append(entries, m.entries[i+1:]...)

		return &hashmap{count: m.count - 1, entries: entries}
	}

	bit := uint16(1) << h.Nibble(depth)
	if m.mask&bit == 0 {
		return m
	}

	old := m.child(bit)

	c := old.dissoc(depth+1, h)
	if c == old {
		return m
	}

	if m.count-1 <= LeafMax {
		r := Tree(m.count-1, m.depth, m.mask, m.replace(bit, c))

		return &hashmap{count: r.count, entries: r.collect(nil)}
	}

	return Tree(m.count-1, m.depth, m.mask&^m.empty(bit, c), m.replace(bit, c))
}

func (m *hashmap) each(f func(k, v cell.I) bool) bool {
	if !m.isTree() {
		for _, e := range m.entries {
			if !f(ref.Deref(e.k), ref.Deref(e.v)) {
				return false
			}
		}

		return true
	}

	for _, c := range m.children {
		if !ref.Deref(c).(*hashmap).each(f) { //nolint:forcetypeassert
			return false
		}
	}

	return true
}

func (m *hashmap) collect(acc []entry) []entry {
	if !m.isTree() {
		return append(acc, m.entries...)
	}

	for _, c := range m.children {
		acc = ref.Deref(c).(*hashmap).collect(acc) //nolint:forcetypeassert
	}

	return acc
}

func (m *hashmap) empty(bit uint16, c *hashmap) uint16 {
	if c.count == 0 {
		return bit
	}

	return 0
}

func (m *hashmap) index(bit uint16) int {
	return bits.OnesCount16(m.mask & (bit - 1))
}

func (m *hashmap) isTree() bool {
	return m.children != nil
}

// replace returns the children with the child for bit replaced by c, or
// removed if c is empty.
func (m *hashmap) replace(bit uint16, c *hashmap) []cell.I {
	idx := m.index(bit)

	children := make([]cell.I, 0, len(m.children))
	children = append(children, m.children[:idx]...)

	if c.count > 0 {
		children = append(children, c)
	}

	return append(children, m.children[idx+1:]...)
}

func (m *hashmap) search(h digest.T) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].h.Compare(h) >= 0
	})
}

// FromEntries creates a map from a sequence of two element vectors.
func FromEntries(entries []cell.I) *hashmap {
	m := Empty

	for _, e := range entries {
		if !vector.Is(e) || vector.To(e).Count() != 2 {
			panic(errsys.New(errsys.TYPE, "map entry must be a two element vector"))
		}

		v := vector.To(e)
		m = m.Assoc(v.Nth(0), v.Nth(1))
	}

	return m
}

// Is returns true if c is a map.
func Is(c cell.I) bool {
	_, ok := c.(*hashmap)

	return ok
}

// To returns a map if c is a map; Otherwise it panics.
func To(c cell.I) *hashmap {
	if t, ok := c.(*hashmap); ok {
		return t
	}

	panic("not a " + name)
}

// build creates the canonical node at depth for entries sorted by digest.
func build(depth int, entries []entry) *hashmap {
	if len(entries) <= LeafMax {
		return &hashmap{count: int64(len(entries)), entries: entries}
	}

	var (
		children []cell.I
		mask     uint16
	)

	for len(entries) > 0 {
		nibble := entries[0].h.Nibble(depth)

		n := 1
		for n < len(entries) && entries[n].h.Nibble(depth) == nibble {
			n++
		}

		children = append(children, build(depth+1, entries[:n:n]))
		mask |= 1 << nibble
		entries = entries[n:]
	}

	count := int64(0)
	for _, c := range children {
		count += c.(*hashmap).count //nolint:forcetypeassert
	}

	return Tree(count, byte(depth), mask, children)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t hashmap

	// The hashmap type is a cell.
	_ = cell.I(&t)

	// The hashmap type is an associative collection.
	_ = collection.Associative(&t)

	// The hashmap type is composite.
	_ = composite.I(&t)

	// The hashmap type has a literal representation.
	_ = literal.I(&t)

	// The hashmap type is a stringer.
	_ = common.Stringer(&t)
}
