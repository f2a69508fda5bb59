package str

import (
	"bytes"
	"strings"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
)

func text(n int) string {
	var b strings.Builder

	for i := 0; b.Len() < n; i++ {
		b.WriteByte(byte('a' + i%26))
	}

	return b.String()[:n]
}

func same(t *testing.T, label string, actual *T, expected string) {
	t.Helper()

	if actual.Count() != int64(len(expected)) {
		t.Fatalf("%s: expected count %d, got %d", label, len(expected), actual.Count())
	}

	if actual.String() != expected {
		t.Fatalf("%s: text does not match", label)
	}

	if !bytes.Equal(actual.Encode(), New(expected).Encode()) {
		t.Fatalf("%s: encoding is not canonical", label)
	}
}

func TestChunking(t *testing.T) {
	for _, n := range []int{0, 1, Chunk, Chunk + 1, 5000, Chunk * Fanout, Chunk*Fanout + 7} {
		s := New(text(n))

		same(t, "New", s, text(n))

		tree := n > Chunk
		if tree != (s.Encode()[0] == encoding.StringTree) {
			t.Fatalf("unexpected tag for string of %d bytes", n)
		}
	}
}

func TestConcat(t *testing.T) {
	for _, sizes := range [][2]int{
		{0, 10}, {10, 0}, {1000, 1000}, {Chunk, 10}, {Chunk, Chunk * 3}, {3000, 5000}, {17, 20000},
	} {
		a, b := text(sizes[0]), strings.ToUpper(text(sizes[1]))

		same(t, "Concat", Concat(New(a), New(b)), a+b)
	}
}

func TestSlice(t *testing.T) {
	s := text(10000)
	r := New(s)

	for _, bounds := range [][2]int64{
		{0, 10000}, {0, 5}, {1024, 4000}, {1024, 3072}, {2048, 10000}, {7, 9000}, {5000, 5000},
	} {
		same(t, "Slice", Slice(r, bounds[0], bounds[1]), s[bounds[0]:bounds[1]])
	}

	if Slice(r, 0, r.Count()) != r {
		t.Fatalf("slice of the whole string should be the string")
	}
}

func TestQuote(t *testing.T) {
	for _, tc := range []struct{ in, out string }{
		{"hello", `"hello"`},
		{"it's", `"it's"`},
		{"a\"b\n", `"a\"b\n"`},
		{`back\slash`, `"back\\slash"`},
		{"", `""`},
	} {
		if q := Quote(tc.in); q != tc.out {
			t.Fatalf("Quote(%q): expected %s, got %s", tc.in, tc.out, q)
		}

		u, err := Unquote(tc.out[1 : len(tc.out)-1])
		if err != nil {
			t.Fatalf("Unquote(%s): %v", tc.out, err)
		}

		if u != tc.in {
			t.Fatalf("Unquote(%s): expected %q, got %q", tc.out, tc.in, u)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Concat(New(text(3000)), New("tail"))
	b := New(text(3000) + "tail")

	if !a.Equal(b) || !b.Equal(a) {
		t.Fatalf("strings with the same text should be equal")
	}

	if a.Equal(New("tail")) {
		t.Fatalf("strings with different text should not be equal")
	}
}
