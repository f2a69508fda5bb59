package hashmap

import (
	"bytes"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

func ascending(n int) *T {
	m := Empty
	for i := 0; i < n; i++ {
		m = m.Assoc(num.Int(int64(i)), num.Int(int64(i*i)))
	}

	return m
}

func descending(n int) *T {
	m := Empty
	for i := n - 1; i >= 0; i-- {
		m = m.Assoc(num.Int(int64(i)), num.Int(int64(i*i)))
	}

	return m
}

func TestOrderIndependence(t *testing.T) {
	for _, n := range []int{0, 1, LeafMax, LeafMax + 1, 100, 500} {
		a, b := ascending(n), descending(n)

		if !bytes.Equal(a.Encode(), b.Encode()) {
			t.Fatalf("maps of %d entries built in different orders encode differently", n)
		}

		if a.Count() != int64(n) {
			t.Fatalf("expected %d entries, got %d", n, a.Count())
		}
	}
}

func TestGet(t *testing.T) {
	m := ascending(300)

	for i := int64(0); i < 300; i++ {
		v, ok := m.Get(num.Int(i))
		if !ok || num.To(v).Int64() != i*i {
			t.Fatalf("Get(%d) returned %v, %v", i, v, ok)
		}
	}

	if _, ok := m.Get(kw.New("absent")); ok {
		t.Fatalf("Get returned a value for an absent key")
	}

	if !m.ContainsKey(num.Int(299)) || m.ContainsKey(num.Int(300)) {
		t.Fatalf("ContainsKey is inconsistent with Get")
	}
}

func TestDissoc(t *testing.T) {
	m := ascending(200)

	for i := 199; i >= 0; i-- {
		m = m.Dissoc(num.Int(int64(i)))

		if !bytes.Equal(m.Encode(), ascending(i).Encode()) {
			t.Fatalf("Dissoc to %d entries is not canonical", i)
		}
	}

	if m.Dissoc(num.Int(1)) != m {
		t.Fatalf("Dissoc of an absent key should return the same map")
	}
}

func TestAssocSameValue(t *testing.T) {
	m := ascending(50)

	if m.Assoc(num.Int(7), num.Int(49)) != m {
		t.Fatalf("Assoc of an unchanged value should return the same map")
	}

	if m.Assoc(num.Int(7), num.Int(0)) == m {
		t.Fatalf("Assoc of a new value should return a new map")
	}
}

func TestIterationOrder(t *testing.T) {
	m := descending(100)

	var prev cell.I

	m.ForEach(func(k, _ cell.I) bool {
		if prev != nil && encoding.Hash(prev).Compare(encoding.Hash(k)) >= 0 {
			t.Fatalf("keys are not in ascending digest order")
		}

		prev = k

		return true
	})

	if len(m.Keys()) != 100 || len(m.Values()) != 100 {
		t.Fatalf("expected 100 keys and values")
	}
}

func TestFromEntries(t *testing.T) {
	m := FromEntries([]cell.I{
		vector.New(kw.New("a"), num.Int(1)),
		vector.New(kw.New("b"), num.Int(2)),
	})

	if !m.Equal(New(kw.New("b"), num.Int(2), kw.New("a"), num.Int(1))) {
		t.Fatalf("FromEntries produced %s", m.Literal())
	}

	defer func() {
		e, ok := recover().(*errsys.T)
		if !ok || e.Kind() != errsys.TYPE {
			t.Fatalf("expected a TYPE error")
		}
	}()

	FromEntries([]cell.I{vector.New(kw.New("a"))})
}
