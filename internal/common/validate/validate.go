// Released under an MIT license. See LICENSE.

// Package validate checks the arguments passed to cvm primitives.
package validate

import (
	"fmt"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
)

// Variadic returns at least min and at most max arguments from the list
// actual, and the list of any remaining arguments.
func Variadic(actual cell.I, min, max int) ([]cell.I, cell.I) {
	expected := make([]cell.I, 0, max)

	for i := 0; i < max; i++ {
		if pair.To(actual).Count() == 0 {
			if i < min {
				s := Count(min, "argument", "s")
				panic(errsys.New(errsys.ARITY, "expected at least %s, passed %d", s, i))
			}

			break
		}

		expected = append(expected, pair.Car(actual))

		actual = pair.Cdr(actual)
	}

	return expected, actual
}

// Fixed returns between min and max arguments from the list actual.
// Any remaining arguments are an arity error.
func Fixed(actual cell.I, min, max int) []cell.I {
	expected, rest := Variadic(actual, min, max)
	if pair.To(rest).Count() != 0 {
		s := Count(max, "argument", "s")
		n := list.Length(actual)

		panic(errsys.New(errsys.ARITY, "expected at most %s, passed %d", s, n))
	}

	return expected
}

// Count returns "n label" with the plural suffix p when n is not 1.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}
