// Released under an MIT license. See LICENSE.

// Package str provides cvm's immutable string type.
//
// A str is a rope. Text is split into chunks of at most Chunk bytes and
// chunks are grouped under tree nodes with up to Fanout children. The shape
// depends only on the length of the text so equal strings always have equal
// encodings. Concatenation and slicing reuse whole chunks where alignment
// allows.
package str

import (
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/cvm/internal/common"
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

const name = "string"

// Rope parameters.
const (
	Chunk  = 1024
	Fanout = 16
)

// T (str) is an immutable UTF-8 string.
type T struct {
	children []cell.I // Subtrees. Nil for a chunk.
	n        int64    // Length in bytes.
	text     string   // Text of a chunk.

	memo encoding.Memo
}

type str = T

// Empty is the empty string.
var Empty = &str{} //nolint:gochecknoglobals

// New creates a new str cell.
func New(v string) *str {
	if len(v) <= Chunk {
		return &str{n: int64(len(v)), text: v}
	}

	chunks := make([]*str, 0, (len(v)+Chunk-1)/Chunk)
	for len(v) > Chunk {
		chunks = append(chunks, &str{n: Chunk, text: v[:Chunk]})
		v = v[Chunk:]
	}

	chunks = append(chunks, &str{n: int64(len(v)), text: v})

	return build(chunks)
}

// Tree creates a tree str node from decoded children. The children must
// have the canonical sizes for a string of length n.
func Tree(n int64, children []cell.I) *str {
	return &str{children: children, n: n}
}

// Children returns the subtrees of a tree node.
func (s *str) Children() []cell.I {
	return s.children
}

// Count returns the length of s in bytes.
func (s *str) Count() int64 {
	return s.n
}

// Encode returns the canonical encoding of the str s.
func (s *str) Encode() []byte {
	return s.memo.Encoding(func() []byte {
		if s.children == nil {
			return encoding.AppendString([]byte{encoding.String}, s.text)
		}

		b := []byte{encoding.StringTree}
		b = encoding.AppendUvarint(b, uint64(s.n))
		b = encoding.AppendUvarint(b, uint64(len(s.children)))

		for _, c := range s.children {
			b = encoding.Child(b, c)
		}

		return b
	})
}

// Equal returns true if the cell c wraps the same text.
func (s *str) Equal(c cell.I) bool {
	return Is(c) && (s == To(c) || encoding.Equal(s, To(c)))
}

// Literal returns the literal representation of the str s.
func (s *str) Literal() string {
	return Quote(s.String())
}

// Name returns the name of the str type.
func (s *str) Name() string {
	return name
}

// String returns the text of the str s.
func (s *str) String() string {
	if s.children == nil {
		return s.text
	}

	var b strings.Builder

	b.Grow(int(s.n))
	s.write(&b)

	return b.String()
}

// Functions specific to str.

// Concat returns the concatenation of a and b.
func Concat(a, b *str) *str {
	if a.n == 0 {
		return b
	}

	if b.n == 0 {
		return a
	}

	if a.n+b.n <= Chunk {
		return New(a.String() + b.String())
	}

	ca := a.chunks(nil)

	// Chunks of a can be shared when a ends on a chunk boundary.
	if a.n%Chunk == 0 {
		return build(b.chunks(ca))
	}

	last := ca[len(ca)-1]
	rest := New(last.text + b.String())

	return build(rest.chunks(ca[:len(ca)-1]))
}

// Slice returns the bytes of s from start up to, but not including, end.
func Slice(s *str, start, end int64) *str {
	if start == 0 && end == s.n {
		return s
	}

	if end-start <= Chunk || start%Chunk != 0 {
		return New(s.String()[start:end])
	}

	cs := s.chunks(nil)

	first := start / Chunk
	last := (end - 1) / Chunk

	shared := cs[first:last]
	tail := cs[last].text[:end-last*Chunk]

	return build(New(tail).chunks(append([]*str{}, shared...)))
}

// Quote returns s as a double-quoted literal with escapes.
func Quote(s string) string {
	q := adapted.CanonicalString(s)
	body := q[2 : len(q)-1] // Strip $' and '.

	var b strings.Builder

	b.Grow(len(body) + 2)
	b.WriteByte('"')

	for i := 0; i < len(body); i++ {
		c := body[i]

		switch {
		case c == '\\' && i+1 < len(body):
			if body[i+1] != '\'' {
				b.WriteByte('\\')
			}

			i++
			b.WriteByte(body[i])
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}

// Unquote converts the escape sequences in the body of a double-quoted literal.
func Unquote(body string) (string, error) {
	if !strings.Contains(body, `\"`) {
		return adapted.ActualBytes(body)
	}

	var b strings.Builder

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++

			if body[i] == '"' {
				b.WriteString(`\x22`)
			} else {
				b.WriteByte(c)
				b.WriteByte(body[i])
			}

			continue
		}

		b.WriteByte(c)
	}

	return adapted.ActualBytes(b.String())
}

// Is returns true if c is a str.
func Is(c cell.I) bool {
	_, ok := c.(*str)

	return ok
}

// To returns a str if c is a str; Otherwise it panics.
func To(c cell.I) *str {
	if t, ok := c.(*str); ok {
		return t
	}

	panic("not a " + name)
}

// build assembles chunks into the canonical tree for their total length.
func build(chunks []*str) *str {
	if len(chunks) == 1 {
		return chunks[0]
	}

	level := make([]*str, len(chunks))
	copy(level, chunks)

	for len(level) > 1 {
		next := make([]*str, 0, (len(level)+Fanout-1)/Fanout)

		for len(level) > 0 {
			k := Fanout
			if len(level) < k {
				k = len(level)
			}

			node := &str{children: make([]cell.I, k)}
			for i, c := range level[:k] {
				node.children[i] = c
				node.n += c.n
			}

			next = append(next, node)
			level = level[k:]
		}

		level = next
	}

	return level[0]
}

func (s *str) chunks(acc []*str) []*str {
	if s.children == nil {
		return append(acc, s)
	}

	for _, c := range s.children {
		acc = To(ref.Deref(c)).chunks(acc)
	}

	return acc
}

func (s *str) write(b *strings.Builder) {
	if s.children == nil {
		b.WriteString(s.text)

		return
	}

	for _, c := range s.children {
		To(ref.Deref(c)).write(b)
	}
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t str

	// The str type is a cell.
	_ = cell.I(&t)

	// The str type is composite.
	_ = composite.I(&t)

	// The str type has a literal representation.
	_ = literal.I(&t)

	// The str type is a stringer.
	_ = common.Stringer(&t)
}
