package store

import (
	"sync"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

func longs(n int) *vector.T {
	ls := make([]cell.I, n)
	for i := range ls {
		ls[i] = num.Int(int64(i))
	}

	return vector.New(ls...)
}

func TestPutGet(t *testing.T) {
	s := New()

	v := longs(1000)

	h := s.Put(v)
	if h != encoding.Hash(v) {
		t.Fatalf("expected digest %s, got %s", encoding.Hash(v), h)
	}

	b, ok := s.Get(h)
	if !ok || digest.Of(b) != h {
		t.Fatalf("expected the encoding of %s", h)
	}

	for _, r := range encoding.Refs(v) {
		if !s.Has(encoding.Hash(r)) {
			t.Fatalf("expected referenced child %s to be stored", encoding.Hash(r))
		}
	}

	n := s.Size()
	if s.Put(v) != h || s.Size() != n {
		t.Fatalf("storing twice changed the store")
	}
}

func TestLoad(t *testing.T) {
	s := New()

	v := longs(500)
	h := s.Put(v)

	c, err := s.Load(h)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !c.Equal(v) {
		t.Fatalf("loaded value differs from stored value")
	}

	for _, i := range []int64{0, 250, 499} {
		if n := num.To(vector.To(c).Nth(i)).Int64(); n != i {
			t.Fatalf("expected %d, got %d", i, n)
		}
	}

	// Storing a loaded value leaves its unresolved children alone.
	if s.Put(c) != h {
		t.Fatalf("expected the same digest")
	}

	_, err = New().Load(h)
	if !errsys.IsKind(err, errsys.MISSING) {
		t.Fatalf("expected MISSING, got %v", err)
	}
}

func TestNested(t *testing.T) {
	s := New()

	inner := longs(500)
	outer := vector.New(hashmap.New(kw.New("v"), inner), num.Int(1))

	h := s.Put(outer)
	if s.Size() < 3 {
		t.Fatalf("expected referenced descendants to be stored, got %d encodings", s.Size())
	}

	c, err := s.Load(h)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := hashmap.To(vector.To(c).Nth(0))

	v, ok := m.Get(kw.New("v"))
	if !ok {
		t.Fatalf("expected :v in the loaded map")
	}

	for i := int64(0); i < inner.Count(); i++ {
		if n := num.To(vector.To(v).Nth(i)).Int64(); n != i {
			t.Fatalf("expected %d, got %d", i, n)
		}
	}
}

func TestConcurrent(t *testing.T) {
	s := New()

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			v := longs(100 + i)
			if _, ok := s.Get(s.Put(v)); !ok {
				t.Errorf("expected %d longs to be stored", 100+i)
			}
		}(i)
	}

	wg.Wait()
}

func TestNil(t *testing.T) {
	var s *T

	if _, ok := s.Get(digest.T{}); ok {
		t.Fatalf("expected nothing from a nil store")
	}
}
