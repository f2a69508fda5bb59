// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	vec "github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

// concat joins sequences. The result has the type of the first
// sequence that is not nil.
func concat(args cell.I) cell.I {
	var result cell.I = null.Nil

	for ; args != pair.Null; args = pair.Cdr(args) {
		c := pair.Car(args)

		switch {
		case null.Is(c):
			continue
		case null.Is(result):
			result = sequence(c)
		case pair.Is(result):
			result = list.Join(result, list.New(elements(c)...))
		default:
			result = vec.To(result).Concat(vec.New(elements(c)...))
		}
	}

	return result
}

func cons(args cell.I) cell.I {
	v := validate.Fixed(args, 2, 2)

	c := v[1]

	switch {
	case null.Is(c):
		return list.New(v[0])
	case pair.Is(c):
		return pair.Cons(v[0], c)
	case vec.Is(c):
		return pair.Cons(v[0], list.New(vec.To(c).Values()...))
	}

	panic(errsys.New(errsys.TYPE, "cannot cons onto a %s", c.Name()))
}

func first(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	switch c := v[0]; {
	case null.Is(c):
		return null.Nil
	case c == pair.Null:
		return null.Nil
	case pair.Is(c):
		return pair.Car(c)
	case vec.Is(c):
		if vec.To(c).Count() == 0 {
			return null.Nil
		}

		return vec.To(c).Nth(0)
	}

	panic(errsys.New(errsys.TYPE, "%s is not a sequence", v[0].Name()))
}

func makeList(args cell.I) cell.I {
	return args
}

func rest(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	switch c := v[0]; {
	case null.Is(c):
		return pair.Null
	case c == pair.Null:
		return pair.Null
	case pair.Is(c):
		return pair.Cdr(c)
	case vec.Is(c):
		n := vec.To(c).Count()
		if n == 0 {
			return vec.Empty
		}

		return vec.To(c).Slice(1, n)
	}

	panic(errsys.New(errsys.TYPE, "%s is not a sequence", v[0].Name()))
}

// Helpers.

func elements(c cell.I) []cell.I {
	switch {
	case pair.Is(c):
		return list.ToSlice(c)
	case vec.Is(c):
		return vec.To(c).Values()
	}

	panic(errsys.New(errsys.TYPE, "%s is not a sequence", c.Name()))
}

func sequence(c cell.I) cell.I {
	elements(c)

	return c
}
