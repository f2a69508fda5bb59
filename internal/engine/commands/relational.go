// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

func eq(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	for ; rest != pair.Null; rest = pair.Cdr(rest) {
		if !v[0].Equal(pair.Car(rest)) {
			return boolean.False
		}
	}

	return boolean.True
}

func ge(args cell.I) cell.I {
	return chain(args, func(c int) bool { return c >= 0 })
}

func gt(args cell.I) cell.I {
	return chain(args, func(c int) bool { return c > 0 })
}

func le(args cell.I) cell.I {
	return chain(args, func(c int) bool { return c <= 0 })
}

func lt(args cell.I) cell.I {
	return chain(args, func(c int) bool { return c < 0 })
}

func numeq(args cell.I) cell.I {
	return chain(args, func(c int) bool { return c == 0 })
}

// chain checks that ok holds for every adjacent pair of numbers.
// Every argument is checked, even after the result is known.
func chain(args cell.I, ok func(int) bool) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	prev := number(v[0])
	result := true

	for ; rest != pair.Null; rest = pair.Cdr(rest) {
		curr := number(pair.Car(rest))

		c, ordered := compare(prev, curr)
		if !ordered || !ok(c) {
			result = false
		}

		prev = curr
	}

	return boolean.Bool(result)
}

// compare orders two numbers. NaN is unordered.
func compare(a, b cell.I) (int, bool) {
	if num.Is(a) && num.Is(b) {
		x, y := num.To(a).Int64(), num.To(b).Int64()

		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}

		return 0, true
	}

	x, y := float64Of(a), float64Of(b)

	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	case x == y:
		return 0, true
	}

	return 0, false
}
