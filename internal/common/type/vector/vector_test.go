package vector

import (
	"bytes"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
)

func longs(n int) []*T {
	vs := make([]*T, n+1)

	vs[0] = Empty
	for i := 1; i <= n; i++ {
		vs[i] = vs[i-1].Conj(num.Int(int64(i - 1)))
	}

	return vs
}

func index(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		r := recover()

		e, ok := r.(*errsys.T)
		if !ok || e.Kind() != errsys.INDEX {
			t.Fatalf("expected an INDEX error, got %v", r)
		}
	}()

	f()
}

func TestNth(t *testing.T) {
	vs := longs(1000)

	v := vs[1000]
	if v.Count() != 1000 {
		t.Fatalf("expected 1000 elements, got %d", v.Count())
	}

	for i := int64(0); i < 1000; i++ {
		if n := num.To(v.Nth(i)).Int64(); n != i {
			t.Fatalf("Nth(%d) returned %d", i, n)
		}
	}

	index(t, func() { v.Nth(1000) })
	index(t, func() { v.Nth(-1) })
}

func TestPopIsCanonical(t *testing.T) {
	vs := longs(600)

	v := vs[600]
	for k := 599; k >= 0; k-- {
		v = v.Pop()

		if !bytes.Equal(v.Encode(), vs[k].Encode()) {
			t.Fatalf("Pop to %d elements is not canonical", k)
		}
	}

	index(t, func() { Empty.Pop() })
}

func TestPopThenConj(t *testing.T) {
	v := longs(5)[5]

	popped := v.Pop().Conj(num.Int(-1))

	if n := num.To(v.Nth(4)).Int64(); n != 4 {
		t.Fatalf("Conj after Pop changed the original: Nth(4) is %d", n)
	}

	if n := num.To(popped.Nth(4)).Int64(); n != -1 {
		t.Fatalf("expected -1, got %d", n)
	}
}

func TestAssoc(t *testing.T) {
	vs := longs(300)

	v := vs[300]
	for _, i := range []int64{0, 15, 16, 255, 256, 299} {
		w := v.Assoc(i, num.Int(-1))

		if num.To(w.Nth(i)).Int64() != -1 {
			t.Fatalf("Assoc(%d) was not applied", i)
		}

		if num.To(v.Nth(i)).Int64() != i {
			t.Fatalf("Assoc(%d) modified the original", i)
		}
	}

	if v.Assoc(300, num.Int(300)).Count() != 301 {
		t.Fatalf("Assoc at the count should append")
	}

	index(t, func() { v.Assoc(302, num.Int(0)) })
}

func TestSliceAndConcat(t *testing.T) {
	vs := longs(100)

	a := vs[100].Slice(0, 40)
	if !a.Equal(vs[40]) {
		t.Fatalf("Slice(0, 40) should equal the first 40 elements")
	}

	b := vs[100].Slice(40, 100)
	if b.Count() != 60 || num.To(b.Nth(0)).Int64() != 40 {
		t.Fatalf("Slice(40, 100) returned unexpected elements")
	}

	if !a.Concat(b).Equal(vs[100]) {
		t.Fatalf("Concat of slices should equal the original")
	}

	index(t, func() { vs[100].Slice(50, 10) })
}

func TestForEachStops(t *testing.T) {
	vs := longs(50)

	seen := []cell.I{}
	vs[50].ForEach(func(i int64, c cell.I) bool {
		seen = append(seen, c)

		return i < 20
	})

	if len(seen) != 21 {
		t.Fatalf("expected 21 elements before stopping, got %d", len(seen))
	}

	if vs[50].Literal()[:5] != "[0 1 " {
		t.Fatalf("unexpected literal %s", vs[50].Literal())
	}
}
