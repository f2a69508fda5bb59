// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/collection"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/record"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	vec "github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

func assoc(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 3, 3)

	c := assoc1(v[0], v[1], v[2])

	for rest != pair.Null {
		var kv []cell.I

		kv, rest = validate.Variadic(rest, 2, 2)
		c = assoc1(c, kv[0], kv[1])
	}

	return c
}

func conj(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	c := v[0]
	for ; rest != pair.Null; rest = pair.Cdr(rest) {
		c = conj1(c, pair.Car(rest))
	}

	return c
}

func containsKey(args cell.I) cell.I {
	v := validate.Fixed(args, 2, 2)

	c, k := v[0], v[1]

	switch {
	case null.Is(c):
		return boolean.False
	case hashmap.Is(c):
		return boolean.Bool(hashmap.To(c).ContainsKey(k))
	case set.Is(c):
		return boolean.Bool(set.To(c).Contains(k))
	case record.Is(c):
		_, ok := record.To(c).Format().Index(k)

		return boolean.Bool(ok)
	case vec.Is(c):
		return boolean.Bool(num.Is(k) && inRange(num.To(k).Int64(), vec.To(c).Count()))
	}

	panic(errsys.New(errsys.TYPE, "%s is not associative", c.Name()))
}

func count(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return num.Int(size(v[0]))
}

func dissoc(args cell.I) cell.I {
	v, rest := validate.Variadic(args, 1, 1)

	c := v[0]

	for ; rest != pair.Null; rest = pair.Cdr(rest) {
		k := pair.Car(rest)

		switch {
		case null.Is(c):
			return null.Nil
		case hashmap.Is(c):
			c = hashmap.To(c).Dissoc(k)
		case record.Is(c):
			c = record.To(c).ToMap().Dissoc(k)
		default:
			panic(errsys.New(errsys.TYPE, "cannot dissoc from a %s", c.Name()))
		}
	}

	return c
}

func get(args cell.I) cell.I {
	v := validate.Fixed(args, 2, 3)

	var dflt cell.I = null.Nil
	if len(v) == 3 {
		dflt = v[2]
	}

	r, ok := Element(v[0], v[1])
	if !ok {
		return dflt
	}

	return r
}

func hashMap(args cell.I) cell.I {
	kvs := list.ToSlice(args)
	if len(kvs)%2 != 0 {
		panic(errsys.New(errsys.ARGUMENT, "hash-map expects an even number of arguments"))
	}

	return hashmap.New(kvs...)
}

func hashSet(args cell.I) cell.I {
	return set.New(list.ToSlice(args)...)
}

func isEmpty(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return boolean.Bool(size(v[0]) == 0)
}

func keys(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	switch c := v[0]; {
	case null.Is(c):
		return vec.Empty
	case hashmap.Is(c):
		return vec.New(hashmap.To(c).Keys()...)
	case record.Is(c):
		return record.To(c).Format().Keys()
	}

	panic(errsys.New(errsys.TYPE, "%s has no keys", v[0].Name()))
}

func nth(args cell.I) cell.I {
	v := validate.Fixed(args, 2, 2)

	i := long(v[1])

	switch c := v[0]; {
	case vec.Is(c):
		return vec.To(c).Nth(i)
	case pair.Is(c):
		if !inRange(i, pair.To(c).Count()) {
			panic(errsys.New(errsys.INDEX, "index %d out of range", i))
		}

		return pair.Car(list.Tail(c, i, nil))
	case record.Is(c):
		if !inRange(i, record.To(c).Count()) {
			panic(errsys.New(errsys.INDEX, "index %d out of range", i))
		}

		return record.To(c).At(int(i))
	}

	panic(errsys.New(errsys.TYPE, "%s is not indexed", v[0].Name()))
}

func vals(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	switch c := v[0]; {
	case null.Is(c):
		return vec.Empty
	case hashmap.Is(c):
		return vec.New(hashmap.To(c).Values()...)
	case record.Is(c):
		return vec.New(record.To(c).Values()...)
	}

	panic(errsys.New(errsys.TYPE, "%s has no values", v[0].Name()))
}

func vector(args cell.I) cell.I {
	return vec.New(list.ToSlice(args)...)
}

// Element returns the value associated with k in the collection c.
// The collection may be nil, in which case nothing is found.
func Element(c, k cell.I) (cell.I, bool) {
	switch {
	case null.Is(c):
		return nil, false
	case hashmap.Is(c):
		return hashmap.To(c).Get(k)
	case set.Is(c):
		return set.To(c).Get(k)
	case record.Is(c):
		return record.To(c).Get(k)
	case vec.Is(c):
		if !num.Is(k) || !inRange(num.To(k).Int64(), vec.To(c).Count()) {
			return nil, false
		}

		return vec.To(c).Nth(num.To(k).Int64()), true
	}

	panic(errsys.New(errsys.TYPE, "%s is not associative", c.Name()))
}

// Helpers.

func assoc1(c, k, v cell.I) cell.I {
	switch {
	case null.Is(c):
		return hashmap.New(k, v)
	case hashmap.Is(c):
		return hashmap.To(c).Assoc(k, v)
	case record.Is(c):
		return record.To(c).Assoc(k, v)
	case vec.Is(c):
		return vec.To(c).Assoc(long(k), v)
	}

	panic(errsys.New(errsys.TYPE, "cannot assoc into a %s", c.Name()))
}

func conj1(c, v cell.I) cell.I {
	switch {
	case null.Is(c):
		return vec.New(v)
	case vec.Is(c):
		return vec.To(c).Conj(v)
	case pair.Is(c):
		return pair.Cons(v, c)
	case set.Is(c):
		return set.To(c).Conj(v)
	case hashmap.Is(c):
		if !vec.Is(v) || vec.To(v).Count() != 2 {
			panic(errsys.New(errsys.TYPE, "map entries must be two element vectors"))
		}

		e := vec.To(v)

		return hashmap.To(c).Assoc(e.Nth(0), e.Nth(1))
	}

	panic(errsys.New(errsys.TYPE, "cannot conj onto a %s", c.Name()))
}

func inRange(i, n int64) bool {
	return i >= 0 && i < n
}

func size(c cell.I) int64 {
	if null.Is(c) {
		return 0
	}

	if !collection.Is(c) {
		panic(errsys.New(errsys.TYPE, "%s has no count", c.Name()))
	}

	return collection.To(c).Count()
}
