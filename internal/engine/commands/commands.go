// Released under an MIT license. See LICENSE.

// Package commands provides cvm's pure primitives.
//
// A pure primitive takes a list of evaluated arguments and returns a value.
// It never touches the machine's state. Errors are raised by panicking with
// an *errsys.T; the evaluator recovers them.
package commands

import (
	"sort"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

// Function is the type of a pure primitive.
type Function func(args cell.I) cell.I

// Functions returns a mapping of names to pure primitives.
func Functions() map[string]Function {
	return map[string]Function{
		"*":             mul,
		"+":             add,
		"-":             sub,
		"/":             div,
		"<":             lt,
		"<=":            le,
		"=":             eq,
		"==":            numeq,
		">":             gt,
		">=":            ge,
		"assoc":         assoc,
		"concat":        concat,
		"conj":          conj,
		"cons":          cons,
		"contains-key?": containsKey,
		"count":         count,
		"dec":           dec,
		"dissoc":        dissoc,
		"empty?":        isEmpty,
		"encoding":      encodingOf,
		"first":         first,
		"fn?":           isFn,
		"get":           get,
		"hash":          hashOf,
		"hash-map":      hashMap,
		"hash-set":      hashSet,
		"inc":           inc,
		"keys":          keys,
		"keyword":       keyword,
		"list":          makeList,
		"list?":         isList,
		"long?":         isLong,
		"map?":          isMap,
		"name":          name,
		"nil?":          isNil,
		"not":           not,
		"nth":           nth,
		"print":         printed,
		"rest":          rest,
		"set?":          isSet,
		"str":           makeString,
		"str?":          isString,
		"symbol":        symbol,
		"vals":          vals,
		"vector":        vector,
		"vector?":       isVector,
	}
}

// Lookup returns the pure primitive called n.
func Lookup(n string) (Function, bool) {
	f, ok := functions[n]

	return f, ok
}

// Names returns the names of all pure primitives in sorted order.
func Names() []string {
	ns := make([]string, 0, len(functions))
	for n := range functions {
		ns = append(ns, n)
	}

	sort.Strings(ns)

	return ns
}

//nolint:gochecknoglobals
var functions = Functions()
