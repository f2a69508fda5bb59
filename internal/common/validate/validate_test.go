package validate

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
)

func arity(t *testing.T, f func()) {
	defer func() {
		r := recover()

		e, ok := r.(*errsys.T)
		if !ok || e.Kind() != errsys.ARITY {
			t.Fatalf("Expected ARITY error; got %v", r)
		}
	}()

	f()
}

func TestFixed(t *testing.T) {
	args := list.New(num.Int(1), num.Int(2))

	v := Fixed(args, 1, 2)
	if len(v) != 2 || !v[1].Equal(num.Int(2)) {
		t.Fatalf("Expected two arguments; got %v", v)
	}

	arity(t, func() { Fixed(args, 1, 1) })
	arity(t, func() { Fixed(args, 3, 3) })
}

func TestVariadic(t *testing.T) {
	args := list.New(num.Int(1), num.Int(2), num.Int(3))

	v, rest := Variadic(args, 1, 1)
	if len(v) != 1 || list.Length(rest) != 2 {
		t.Fatalf("Expected one argument and two more; got %v %v", v, rest)
	}

	arity(t, func() { Variadic(list.New(), 1, 2) })
}

func TestCount(t *testing.T) {
	if s := Count(1, "argument", "s"); s != "1 argument" {
		t.Fatalf("Expected singular; got %q", s)
	}

	if s := Count(2, "argument", "s"); s != "2 arguments" {
		t.Fatalf("Expected plural; got %q", s)
	}
}
