// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/truth"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
	vec "github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

func isFn(args cell.I) cell.I {
	return is(args, func(c cell.I) bool {
		return closure.Is(c) || prim.Is(c)
	})
}

func isList(args cell.I) cell.I {
	return is(args, pair.Is)
}

func isLong(args cell.I) cell.I {
	return is(args, num.Is)
}

func isMap(args cell.I) cell.I {
	return is(args, hashmap.Is)
}

func isNil(args cell.I) cell.I {
	return is(args, null.Is)
}

func isSet(args cell.I) cell.I {
	return is(args, set.Is)
}

func isString(args cell.I) cell.I {
	return is(args, str.Is)
}

func isVector(args cell.I) cell.I {
	return is(args, vec.Is)
}

func not(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return boolean.Bool(!truth.Value(v[0]))
}

// Helpers.

func is(args cell.I, f func(cell.I) bool) cell.I {
	v := validate.Fixed(args, 1, 1)

	return boolean.Bool(f(v[0]))
}
