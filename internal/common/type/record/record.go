// Released under an MIT license. See LICENSE.

// Package record provides fixed-shape cells with named fields.
package record

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/collection"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

const name = "record"

// Format is the ordered list of field names shared by records of one shape.
type Format struct {
	index map[string]int
	keys  *vector.T
}

// NewFormat creates a format. Every key must be a keyword.
func NewFormat(keys ...cell.I) *Format {
	f := &Format{index: map[string]int{}, keys: vector.New(keys...)}

	for i, k := range keys {
		if !kw.Is(k) {
			panic(errsys.New(errsys.TYPE, "record field must be a keyword, not a %s", k.Name()))
		}

		f.index[kw.To(k).String()] = i
	}

	return f
}

// FormatOf creates a format from a decoded vector of keywords.
func FormatOf(v *vector.T) *Format {
	return NewFormat(v.Values()...)
}

// Count returns the number of fields.
func (f *Format) Count() int {
	return len(f.index)
}

// Index returns the position of the field k.
func (f *Format) Index(k cell.I) (int, bool) {
	if !kw.Is(k) {
		return 0, false
	}

	i, ok := f.index[kw.To(k).String()]

	return i, ok
}

// Keys returns the field names as a vector.
func (f *Format) Keys() *vector.T {
	return f.keys
}

// T (record) holds one value for each field of its format.
type T struct {
	format *Format
	values []cell.I

	memo encoding.Memo
}

type record = T

// New creates a record. Missing values are nil.
func New(f *Format, values ...cell.I) *record {
	if len(values) > f.Count() {
		panic(errsys.New(errsys.ARITY, "record has %d fields, got %d values", f.Count(), len(values)))
	}

	v := make([]cell.I, f.Count())
	for i := range v {
		v[i] = null.Nil
		if i < len(values) {
			v[i] = values[i]
		}
	}

	return &record{format: f, values: v}
}

// Children returns the format followed by the values.
func (r *record) Children() []cell.I {
	return append([]cell.I{r.format.keys}, r.values...)
}

// Count returns the number of fields in the record r.
func (r *record) Count() int64 {
	return int64(len(r.values))
}

// Encode returns the canonical encoding of the record r.
func (r *record) Encode() []byte {
	return r.memo.Encoding(func() []byte {
		b := encoding.Child([]byte{encoding.Record}, r.format.keys)
		b = encoding.AppendUvarint(b, uint64(len(r.values)))

		for _, c := range r.values {
			b = encoding.Child(b, c)
		}

		return b
	})
}

// Equal returns true if c is a record with the same format and values.
func (r *record) Equal(c cell.I) bool {
	return Is(c) && (r == To(c) || encoding.Equal(r, To(c)))
}

// Get returns the value of the field k.
func (r *record) Get(k cell.I) (cell.I, bool) {
	i, ok := r.format.Index(k)
	if !ok {
		return nil, false
	}

	return ref.Deref(r.values[i]), true
}

// Literal returns the literal representation of the record r.
func (r *record) Literal() string {
	return "(|" + name + " " + r.ToMap().Literal() + "|)"
}

// Name returns the type name for records.
func (r *record) Name() string {
	return name
}

// Methods specific to record.

// Assoc returns a record with the field k set to v. If k is not a field,
// the result is a map with every field plus k.
func (r *record) Assoc(k, v cell.I) cell.I {
	i, ok := r.format.Index(k)
	if !ok {
		return r.ToMap().Assoc(k, v)
	}

	if encoding.Equal(r.values[i], v) {
		return r
	}

	values := make([]cell.I, len(r.values))
	copy(values, r.values)
	values[i] = v

	return &record{format: r.format, values: values}
}

// At returns the value at position i.
func (r *record) At(i int) cell.I {
	if i < 0 || i >= len(r.values) {
		panic(errsys.New(errsys.INDEX, "index %d out of range for record of %d", i, len(r.values)))
	}

	return ref.Deref(r.values[i])
}

// Format returns the format of the record r.
func (r *record) Format() *Format {
	return r.format
}

// ToMap returns a map from field names to values.
func (r *record) ToMap() *hashmap.T {
	m := hashmap.Empty

	for i, k := range r.format.keys.Values() {
		m = m.Assoc(k, r.At(i))
	}

	return m
}

// UpdateAll returns a record with the values. If nothing changed the
// record r itself is returned.
func (r *record) UpdateAll(values []cell.I) *record {
	if len(values) != len(r.values) {
		panic(errsys.New(errsys.ARITY, "record has %d fields, got %d values", len(r.values), len(values)))
	}

	for i, v := range values {
		if !encoding.Equal(r.values[i], v) {
			return &record{format: r.format, values: append([]cell.I{}, values...)}
		}
	}

	return r
}

// Values returns the values of the record r in field order.
func (r *record) Values() []cell.I {
	s := make([]cell.I, len(r.values))
	for i := range r.values {
		s[i] = r.At(i)
	}

	return s
}

// Is returns true if c is a record.
func Is(c cell.I) bool {
	_, ok := c.(*record)

	return ok
}

// To returns a record if c is a record; Otherwise it panics.
func To(c cell.I) *record {
	if t, ok := c.(*record); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t record

	// The record type is a cell.
	_ = cell.I(&t)

	// The record type is an associative collection.
	_ = collection.Associative(&t)

	// The record type is composite.
	_ = composite.I(&t)

	// The record type has a literal representation.
	_ = literal.I(&t)
}
