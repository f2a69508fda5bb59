// Released under an MIT license. See LICENSE.

// Package list provides common list operations. A list is not a true type.
// Lists are more of a type by convention. They are composed of cons cells.
// No operation modifies an existing list; results share the tails they can.
package list

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
)

// Append returns a list with each element in elements after those in start.
// A non-pair value where a pair is expected will cause a panic.
func Append(start cell.I, elements ...cell.I) cell.I {
	if len(elements) == 0 {
		return start
	}

	return Join(start, New(elements...))
}

// Join returns a list with the elements of every list in lists.
// The last list is shared.
func Join(lists ...cell.I) cell.I {
	if len(lists) == 0 {
		return pair.Null
	}

	joined := lists[len(lists)-1]

	for i := len(lists) - 2; i >= 0; i-- {
		joined = prepend(ToSlice(lists[i]), joined)
	}

	return joined
}

// Length returns the number of elements in list.
// A non-pair value where a pair is expected will cause a panic.
func Length(list cell.I) int64 {
	return pair.To(list).Count()
}

// New creates a new list composed of all of the elements in elements.
func New(elements ...cell.I) cell.I {
	return prepend(elements, pair.Null)
}

// Reverse returns the elements of list in reverse order.
// A non-pair value where a pair is expected will cause a panic.
func Reverse(list cell.I) cell.I {
	reversed := cell.I(pair.Null)

	for list != pair.Null {
		reversed = pair.Cons(pair.Car(list), reversed)

		list = pair.Cdr(list)
	}

	return reversed
}

// Slice creates a new list that is a slice of list.
// Negative values of start and end count backwards from the end of list.
// An end of zero means the end of the list. Values past the end are set
// to the length. Invalid start or end values cause an INDEX panic.
func Slice(list cell.I, start, end int64) cell.I {
	length := Length(list)

	if start < 0 {
		start = length + start
	}

	if start < 0 {
		panic(errsys.New(errsys.INDEX, "slice starts before first element"))
	} else if start > length {
		start = length
	}

	if end <= 0 {
		end = length + end
	}

	if end < 0 {
		panic(errsys.New(errsys.INDEX, "slice ends before first element"))
	} else if end > length {
		end = length
	}

	if end < start {
		panic(errsys.New(errsys.INDEX, "end of slice before start"))
	}

	list = Tail(list, start, pair.Null)
	if end == length {
		return list
	}

	elements := make([]cell.I, 0, end-start)
	for i := start; i < end; i++ {
		elements = append(elements, pair.Car(list))
		list = pair.Cdr(list)
	}

	return New(elements...)
}

// Tail returns the sublist of list starting at element index.
// Negative values of index count backwards from the end of list.
// If index is out of range and dflt is provided it is returned.
// Otherwise, this function panics.
func Tail(list cell.I, index int64, dflt cell.I) cell.I {
	length := Length(list)

	if index < 0 {
		index = length + index
	}

	msg := ""
	if index < 0 {
		msg = "index before first element"
	} else if index > length {
		msg = "index after last element"
	}

	if msg != "" {
		if dflt == nil {
			panic(errsys.New(errsys.INDEX, msg))
		}

		return dflt
	}

	for index > 0 {
		list = pair.Cdr(list)

		index--
	}

	return list
}

// ToSlice returns the elements of list.
func ToSlice(list cell.I) []cell.I {
	s := make([]cell.I, 0, Length(list))

	for list != pair.Null {
		s = append(s, pair.Car(list))

		list = pair.Cdr(list)
	}

	return s
}

func prepend(elements []cell.I, tail cell.I) cell.I {
	for i := len(elements) - 1; i >= 0; i-- {
		tail = pair.Cons(elements[i], tail)
	}

	return tail
}
