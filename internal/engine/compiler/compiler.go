// Released under an MIT license. See LICENSE.

// Package compiler rewrites read forms into the evaluator's core vocabulary.
//
// The core special forms are def, fn, cond, do, let, quote, return, halt
// and rollback. Everything else that appears at the head of a list is either
// sugar, rewritten here, or an application.
package compiler

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

type rewrite func(form cell.I, args []cell.I) cell.I

//nolint:gochecknoglobals
var (
	rewrites map[string]rewrite

	// Reserved but not supported.
	unsupported = map[string]bool{
		"defmacro": true,
		"loop":     true,
		"recur":    true,
		"set!":     true,
	}

	// A symbol that cannot be read, used to hold the value of or's first argument.
	scratch = sym.New(" or")
)

// Compile strips syntax from form and rewrites it into core forms.
func Compile(form cell.I) (c cell.I, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		c = nil
		err = errsys.Recover(r)
	}()

	return compile(syntax.Strip(form)), nil
}

// Symbols returns true if c is a vector of symbols that is a valid
// parameter list.
func Symbols(c cell.I) bool {
	if !vector.Is(c) {
		return false
	}

	vs := vector.To(c).Values()
	for i, v := range vs {
		if !sym.Is(v) {
			return false
		}

		if sym.To(v).String() == closure.Rest && i != len(vs)-2 {
			return false
		}
	}

	return true
}

func compile(c cell.I) cell.I {
	switch {
	case c == nil:
		return null.Nil
	case c == pair.Null:
		return c
	case pair.Is(c):
		return compileList(c)
	case vector.Is(c):
		return vector.New(compileAll(vector.To(c).Values())...)
	case hashmap.Is(c):
		kvs := []cell.I{}

		hashmap.To(c).ForEach(func(k, v cell.I) bool {
			kvs = append(kvs, compile(k), compile(v))

			return true
		})

		return hashmap.New(kvs...)
	case set.Is(c):
		return set.New(compileAll(set.To(c).Members())...)
	}

	return c
}

func compileAll(cs []cell.I) []cell.I {
	r := make([]cell.I, len(cs))
	for i, c := range cs {
		r[i] = compile(c)
	}

	return r
}

func compileList(form cell.I) cell.I {
	elements := list.ToSlice(form)

	head, args := elements[0], elements[1:]
	if sym.Is(head) {
		n := sym.To(head).String()

		if unsupported[n] {
			fail(form, "%s is not supported", n)
		}

		if f, ok := rewrites[n]; ok {
			return f(form, args)
		}
	}

	return list.New(compileAll(elements)...)
}

// Core forms.

func compileDef(form cell.I, args []cell.I) cell.I {
	arity(form, args, 2, 2)

	if !sym.Is(args[0]) {
		fail(form, "def target must be a symbol, not a %s", args[0].Name())
	}

	return list.New(sym.New("def"), args[0], compile(args[1]))
}

func compileFn(form cell.I, args []cell.I) cell.I {
	arity(form, args, 1, -1)

	return fn(form, args[0], args[1:])
}

func compileQuote(form cell.I, args []cell.I) cell.I {
	arity(form, args, 1, 1)

	return form
}

func compileSignal(form cell.I, args []cell.I) cell.I {
	arity(form, args, 0, 1)

	return list.New(append([]cell.I{pair.Car(form)}, compileAll(args)...)...)
}

func compileSimple(form cell.I, args []cell.I) cell.I {
	return list.New(append([]cell.I{pair.Car(form)}, compileAll(args)...)...)
}

// Sugar.

// (and) => true, (and a) => a, (and a b ...) => (cond a (and b ...) false).
func compileAnd(form cell.I, args []cell.I) cell.I {
	switch len(args) {
	case 0:
		return boolean.True
	case 1:
		return compile(args[0])
	}

	rest := list.New(append([]cell.I{sym.New("and")}, args[1:]...)...)

	return list.New(sym.New("cond"), compile(args[0]), compile(rest), boolean.False)
}

// (defn name [params] body ...) => (def name (fn [params] body ...)).
func compileDefn(form cell.I, args []cell.I) cell.I {
	arity(form, args, 2, -1)

	if !sym.Is(args[0]) {
		fail(form, "defn name must be a symbol, not a %s", args[0].Name())
	}

	return list.New(sym.New("def"), args[0], fn(form, args[1], args[2:]))
}

// (if test then) => (cond test then), (if test then else) => (cond test then else).
func compileIf(form cell.I, args []cell.I) cell.I {
	arity(form, args, 2, 3)

	return list.New(append([]cell.I{sym.New("cond")}, compileAll(args)...)...)
}

// (let [a x b y] body ...) => (let [a x b y] (do body ...)).
func compileLet(form cell.I, args []cell.I) cell.I {
	arity(form, args, 1, -1)

	if !vector.Is(args[0]) {
		fail(form, "let bindings must be a vector, not a %s", args[0].Name())
	}

	bindings := vector.To(args[0]).Values()
	if len(bindings)%2 != 0 {
		fail(form, "let requires an even number of binding forms")
	}

	for i := 0; i < len(bindings); i += 2 {
		if !sym.Is(bindings[i]) {
			fail(form, "let binding must be a symbol, not a %s", bindings[i].Name())
		}
	}

	return let(bindings, args[1:])
}

// (or) => nil, (or a) => a, (or a b ...) evaluates a once and returns it if truthy.
func compileOr(form cell.I, args []cell.I) cell.I {
	switch len(args) {
	case 0:
		return null.Nil
	case 1:
		return compile(args[0])
	}

	rest := list.New(append([]cell.I{sym.New("or")}, args[1:]...)...)

	test := list.New(sym.New("cond"), scratch, scratch, compile(rest))

	return list.New(sym.New("let"), vector.New(scratch, compile(args[0])), test)
}

// (when test body ...) => (cond test (do body ...)).
func compileWhen(form cell.I, args []cell.I) cell.I {
	arity(form, args, 1, -1)

	do := list.New(append([]cell.I{sym.New("do")}, compileAll(args[1:])...)...)

	return list.New(sym.New("cond"), compile(args[0]), do)
}

// Helpers.

func arity(form cell.I, args []cell.I, min, max int) {
	n := len(args)
	if n >= min && (max < 0 || n <= max) {
		return
	}

	fail(form, "wrong number of arguments (%d) to %s", n, literal.String(pair.Car(form)))
}

func body(forms []cell.I) cell.I {
	switch len(forms) {
	case 0:
		return null.Nil
	case 1:
		return compile(forms[0])
	}

	return list.New(append([]cell.I{sym.New("do")}, compileAll(forms)...)...)
}

func fail(form cell.I, format string, args ...interface{}) {
	panic(errsys.New(errsys.COMPILE, format, args...).WithForm(form))
}

func fn(form, params cell.I, forms []cell.I) cell.I {
	if !vector.Is(params) {
		fail(form, "fn parameters must be a vector, not a %s", params.Name())
	}

	if !Symbols(params) {
		fail(form, "invalid parameter list %s", literal.String(params))
	}

	return list.New(sym.New("fn"), params, body(forms))
}

func let(bindings, forms []cell.I) cell.I {
	if len(bindings) == 0 {
		return body(forms)
	}

	compiled := make([]cell.I, len(bindings))
	for i := 0; i < len(bindings); i += 2 {
		compiled[i] = bindings[i]
		compiled[i+1] = compile(bindings[i+1])
	}

	return list.New(sym.New("let"), vector.New(compiled...), body(forms))
}

func init() { //nolint:gochecknoinits
	rewrites = map[string]rewrite{
		"and":      compileAnd,
		"cond":     compileSimple,
		"def":      compileDef,
		"defn":     compileDefn,
		"do":       compileSimple,
		"fn":       compileFn,
		"halt":     compileSignal,
		"if":       compileIf,
		"let":      compileLet,
		"or":       compileOr,
		"quote":    compileQuote,
		"return":   compileSignal,
		"rollback": compileSignal,
		"when":     compileWhen,
	}
}
