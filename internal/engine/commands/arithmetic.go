// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/double"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

// Longs wrap on overflow. Any double argument makes the result a double.

func add(args cell.I) cell.I {
	return fold(args, num.Int(0), func(a, b int64) int64 {
		return a + b
	}, func(a, b float64) float64 {
		return a + b
	})
}

func dec(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return num.Int(long(v[0]) - 1)
}

func div(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	if rest == pair.Null {
		return double.New(1 / float64Of(v[0]))
	}

	quotient := float64Of(v[0])
	for ; rest != pair.Null; rest = pair.Cdr(rest) {
		quotient /= float64Of(pair.Car(rest))
	}

	return double.New(quotient)
}

func inc(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return num.Int(long(v[0]) + 1)
}

func mul(args cell.I) cell.I {
	return fold(args, num.Int(1), func(a, b int64) int64 {
		return a * b
	}, func(a, b float64) float64 {
		return a * b
	})
}

func sub(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	if rest == pair.Null {
		return fold(pair.Cons(v[0], pair.Null), num.Int(0), func(a, b int64) int64 {
			return a - b
		}, func(a, b float64) float64 {
			return a - b
		})
	}

	return fold(rest, v[0], func(a, b int64) int64 {
		return a - b
	}, func(a, b float64) float64 {
		return a - b
	})
}

// Helpers.

func fold(args cell.I, acc cell.I, l func(a, b int64) int64, d func(a, b float64) float64) cell.I {
	number(acc)

	for ; args != pair.Null; args = pair.Cdr(args) {
		c := number(pair.Car(args))

		if num.Is(acc) && num.Is(c) {
			acc = num.Int(l(num.To(acc).Int64(), num.To(c).Int64()))
		} else {
			acc = double.New(d(float64Of(acc), float64Of(c)))
		}
	}

	return acc
}

func float64Of(c cell.I) float64 {
	c = number(c)
	if num.Is(c) {
		return float64(num.To(c).Int64())
	}

	return double.To(c).Float64()
}

func long(c cell.I) int64 {
	if !num.Is(c) {
		panic(errsys.New(errsys.TYPE, "expected a long, not a %s", c.Name()))
	}

	return num.To(c).Int64()
}

func number(c cell.I) cell.I {
	if !num.Is(c) && !double.Is(c) {
		panic(errsys.New(errsys.TYPE, "expected a number, not a %s", c.Name()))
	}

	return c
}
