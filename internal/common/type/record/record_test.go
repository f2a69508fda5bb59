package record

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
)

func account() *T {
	f := NewFormat(kw.New("sequence"), kw.New("environment"))

	return New(f, num.Int(0), hashmap.Empty)
}

func TestAccess(t *testing.T) {
	r := account()

	if r.Count() != 2 {
		t.Fatalf("expected 2 fields, got %d", r.Count())
	}

	for i, k := range r.Format().Keys().Values() {
		v, ok := r.Get(k)
		if !ok || !v.Equal(r.At(i)) {
			t.Fatalf("keyword and positional access disagree for %s", k)
		}
	}

	if _, ok := r.Get(kw.New("balance")); ok {
		t.Fatalf("Get returned a value for a missing field")
	}
}

func TestUpdateAll(t *testing.T) {
	r := account()

	if r.UpdateAll(r.Values()) != r {
		t.Fatalf("UpdateAll with the current values should return the same record")
	}

	u := r.UpdateAll([]cell.I{num.Int(1), hashmap.Empty})
	if u == r || !u.At(0).Equal(num.Int(1)) {
		t.Fatalf("UpdateAll did not apply new values")
	}
}

func TestAssoc(t *testing.T) {
	r := account()

	s := r.Assoc(kw.New("sequence"), num.Int(5))
	if !Is(s) || !To(s).At(0).Equal(num.Int(5)) {
		t.Fatalf("Assoc of a field should return a record")
	}

	m := r.Assoc(kw.New("balance"), num.Int(100))
	if !hashmap.Is(m) || hashmap.To(m).Count() != 3 {
		t.Fatalf("Assoc of a non-field should return a map")
	}
}

func TestFormatKeys(t *testing.T) {
	defer func() {
		e, ok := recover().(*errsys.T)
		if !ok || e.Kind() != errsys.TYPE {
			t.Fatalf("expected a TYPE error")
		}
	}()

	NewFormat(sym.New("sequence"))
}
