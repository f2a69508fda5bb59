package list

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
)

func longs(ns ...int64) cell.I {
	s := make([]cell.I, len(ns))
	for i, n := range ns {
		s[i] = num.Int(n)
	}

	return New(s...)
}

func check(t *testing.T, label string, actual cell.I, expected string) {
	t.Helper()

	if s := literal.String(actual); s != expected {
		t.Fatalf("%s: expected %s, got %s", label, expected, s)
	}
}

func TestNonDestructive(t *testing.T) {
	l := longs(1, 2, 3)

	check(t, "Append", Append(l, num.Int(4)), "(1 2 3 4)")
	check(t, "Join", Join(l, longs(5), pair.Null, longs(6, 7)), "(1 2 3 5 6 7)")
	check(t, "Reverse", Reverse(l), "(3 2 1)")
	check(t, "original", l, "(1 2 3)")

	if Length(l) != 3 || Length(pair.Null) != 0 {
		t.Fatalf("unexpected lengths")
	}
}

func TestSlice(t *testing.T) {
	l := longs(0, 1, 2, 3, 4)

	check(t, "Slice(1, 3)", Slice(l, 1, 3), "(1 2)")
	check(t, "Slice(2, 0)", Slice(l, 2, 0), "(2 3 4)")
	check(t, "Slice(-2, 0)", Slice(l, -2, 0), "(3 4)")
	check(t, "Slice(3, 3)", Slice(l, 3, 3), "()")
	check(t, "Tail", Tail(l, 4, nil), "(4)")

	if Tail(l, 9, pair.Null) != pair.Null {
		t.Fatalf("Tail should return the default when out of range")
	}
}

func TestSharedTail(t *testing.T) {
	tail := longs(2, 3)
	l := pair.Cons(num.Int(1), tail)

	if pair.Cdr(l) != tail {
		t.Fatalf("Cons should share its tail")
	}

	if !l.Equal(longs(1, 2, 3)) || pair.To(l).Count() != 3 {
		t.Fatalf("Cons produced %s", literal.String(l))
	}
}
