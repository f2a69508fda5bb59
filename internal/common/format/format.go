// Released under an MIT license. See LICENSE.

// Package format decodes the canonical encoding back into cells.
package format

import (
	"encoding/binary"
	"math"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/addr"
	"github.com/michaelmacinnis/cvm/internal/common/type/blob"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/double"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/record"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

// Source is a store of encodings addressed by digest.
type Source interface {
	Get(h digest.T) ([]byte, bool)
}

// Loader resolves references by decoding encodings from a Source.
type Loader struct {
	Source
}

// Resolve returns the cell with the digest h or a MISSING error.
func (l *Loader) Resolve(h digest.T) (cell.I, error) {
	b, ok := l.Get(h)
	if !ok {
		return nil, errsys.Missing(h)
	}

	if digest.Of(b) != h {
		return nil, errsys.New(errsys.FORMAT, "data for %s has digest %s", h, digest.Of(b))
	}

	c, err := Decode(b, l)
	if err != nil {
		return nil, err
	}

	if encoding.Hash(c) != h {
		return nil, errsys.New(errsys.FORMAT, "data for %s is not canonical", h)
	}

	return c, nil
}

// Decode decodes the single cell encoded in b. Referenced children become
// references resolved by r. Malformed, non-canonical or trailing bytes are
// a FORMAT error.
func Decode(b []byte, r ref.Resolver) (c cell.I, err error) {
	d := &decoder{b: b, r: r}

	defer func() {
		if rec := recover(); rec != nil {
			c = nil
			err = errsys.Recover(rec)
		}
	}()

	c = d.cell()
	if d.i != len(b) {
		d.fail("%d trailing bytes", len(b)-d.i)
	}

	return c, nil
}

type decoder struct {
	b []byte
	i int
	r ref.Resolver
}

func (d *decoder) byte() byte {
	if d.i >= len(d.b) {
		d.fail("unexpected end of data")
	}

	c := d.b[d.i]
	d.i++

	return c
}

func (d *decoder) bytes(n uint64) []byte {
	if n > uint64(len(d.b)-d.i) {
		d.fail("length %d exceeds remaining data", n)
	}

	s := d.b[d.i : d.i+int(n)]
	d.i += int(n)

	return s
}

func (d *decoder) cell() cell.I {
	start := d.i

	switch tag := d.byte(); tag {
	case encoding.Nil:
		return null.Nil
	case encoding.False:
		return boolean.False
	case encoding.True:
		return boolean.True
	case encoding.Long:
		return num.Int(d.varint())
	case encoding.Double:
		return double.New(math.Float64frombits(binary.BigEndian.Uint64(d.bytes(8))))
	case encoding.Ref:
		var h digest.T

		copy(h[:], d.bytes(digest.Size))

		return ref.New(h, d.r)
	case encoding.String:
		s := d.text()
		if len(s) > str.Chunk {
			d.failAt(start, "string chunk of %d bytes", len(s))
		}

		return str.New(s)
	case encoding.StringTree:
		n := d.uvarint()
		children := d.children(d.uvarint())

		return str.Tree(int64(n), children)
	case encoding.Symbol:
		return sym.New(d.text())
	case encoding.Keyword:
		return kw.New(d.text())
	case encoding.Blob:
		return blob.New(d.bytes(d.uvarint()))
	case encoding.Address:
		return addr.New(d.uvarint())
	case encoding.Primitive:
		return prim.New(d.text())
	case encoding.Vector:
		return d.vector()
	case encoding.VectorNode:
		return vector.NewNode(d.children(d.uvarint()))
	case encoding.List:
		n := d.uvarint()
		if n == 0 {
			return pair.Null
		}

		h := d.child()

		return pair.Decoded(int64(n), h, d.child())
	case encoding.MapLeaf, encoding.MapTree:
		d.i = start

		return d.hashmap()
	case encoding.Set:
		return set.Of(d.hashmap())
	case encoding.Syntax:
		datum := d.child()
		meta, ok := ref.Deref(d.child()).(*hashmap.T)
		if !ok {
			d.failAt(start, "syntax metadata must be a map")
		}

		return syntax.New(datum, meta, nil)
	case encoding.Record:
		f, ok := ref.Deref(d.child()).(*vector.T)
		if !ok {
			d.failAt(start, "record format must be a vector")
		}

		format := record.FormatOf(f)

		n := d.uvarint()
		if n != uint64(format.Count()) {
			d.failAt(start, "record has %d fields, got %d values", format.Count(), n)
		}

		return record.New(format, d.children(n)...)
	case encoding.Error:
		code := d.child()

		return errsys.User(code, d.child())
	case encoding.Closure:
		params, ok := ref.Deref(d.child()).(*vector.T)
		if !ok {
			d.failAt(start, "closure parameters must be a vector")
		}

		body := d.child()

		locals, ok := ref.Deref(d.child()).(*hashmap.T)
		if !ok {
			d.failAt(start, "closure locals must be a map")
		}

		return closure.New(params, body, locals)
	default:
		d.failAt(start, "unknown tag 0x%02x", tag)
	}

	return nil
}

func (d *decoder) children(n uint64) []cell.I {
	if n > uint64(len(d.b)-d.i) {
		d.fail("count %d exceeds remaining data", n)
	}

	s := make([]cell.I, n)
	for i := range s {
		s[i] = d.child()
	}

	return s
}

// child decodes a cell that appears inside another. An inlined child
// must be no longer than encoding.MaxEmbedded.
func (d *decoder) child() cell.I {
	start := d.i

	c := d.cell()
	if d.i-start > encoding.MaxEmbedded {
		d.failAt(start, "embedded child of %d bytes", d.i-start)
	}

	return c
}

func (d *decoder) fail(format string, args ...interface{}) {
	d.failAt(d.i, format, args...)
}

func (d *decoder) failAt(offset int, format string, args ...interface{}) {
	args = append([]interface{}{offset}, args...)

	panic(errsys.New(errsys.FORMAT, "at byte %d: "+format, args...))
}

func (d *decoder) hashmap() *hashmap.T {
	start := d.i

	switch tag := d.byte(); tag {
	case encoding.MapLeaf:
		n := d.uvarint()
		if n > hashmap.LeafMax {
			d.failAt(start, "map leaf with %d entries", n)
		}

		kvs := d.children(2 * n)
		for i := 2; i < len(kvs); i += 2 {
			if encoding.Hash(kvs[i-2]).Compare(encoding.Hash(kvs[i])) >= 0 {
				d.failAt(start, "map leaf keys out of order")
			}
		}

		return hashmap.Leaf(kvs)
	case encoding.MapTree:
		n := d.uvarint()
		depth := d.byte()
		mask := uint16(d.byte())<<8 | uint16(d.byte())

		if n <= hashmap.LeafMax || mask == 0 {
			d.failAt(start, "map tree with %d entries", n)
		}

		children := d.children(uint64(popcount(mask)))
		for _, c := range children {
			if !hashmap.Is(c) {
				if _, ok := c.(*ref.T); !ok {
					d.failAt(start, "map tree child is a %s", c.Name())
				}
			}
		}

		return hashmap.Tree(int64(n), depth, mask, children)
	default:
		d.failAt(start, "expected a map, found tag 0x%02x", tag)
	}

	return nil
}

func (d *decoder) text() string {
	return string(d.bytes(d.uvarint()))
}

func (d *decoder) uvarint() uint64 {
	v, n := binary.Uvarint(d.b[d.i:])
	if n <= 0 {
		d.fail("bad unsigned varint")
	}

	if n != len(encoding.AppendUvarint(nil, v)) {
		d.fail("non-minimal unsigned varint")
	}

	d.i += n

	return v
}

func (d *decoder) varint() int64 {
	v, n := binary.Varint(d.b[d.i:])
	if n <= 0 {
		d.fail("bad varint")
	}

	if n != len(encoding.AppendVarint(nil, v)) {
		d.fail("non-minimal varint")
	}

	d.i += n

	return v
}

func (d *decoder) vector() cell.I {
	n := int64(d.uvarint())

	var root cell.I
	if n > vector.Width {
		root = d.child()
	}

	tail := n - ((n-1)>>vector.Bits)<<vector.Bits
	if n <= vector.Width {
		tail = n
	}

	if n == 0 {
		return vector.Empty
	}

	return vector.Decoded(n, root, d.children(uint64(tail)))
}

func popcount(m uint16) int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}

	return n
}
