// Released under an MIT license. See LICENSE.

package task

import (
	"sort"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/frame"
	"github.com/michaelmacinnis/cvm/internal/common/type/addr"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
	"github.com/michaelmacinnis/cvm/internal/engine/commands"
	"github.com/michaelmacinnis/cvm/internal/engine/compiler"
	"github.com/michaelmacinnis/cvm/internal/engine/state"
)

// ASSERT is the code used by fail when no code is given.
const ASSERT = "ASSERT"

// Builtins are primitives that need the machine. Each is called with
// the evaluated arguments in code and the primitive's operation on top
// of the stack.
//
//nolint:gochecknoglobals
var builtins map[string]Action

// Core returns the environment of the core account: every primitive
// bound to its own name.
func Core() *hashmap.T {
	names := commands.Names()
	for n := range builtins {
		names = append(names, n)
	}

	sort.Strings(names)

	kvs := make([]cell.I, 0, 2*len(names))
	for _, n := range names {
		kvs = append(kvs, sym.New(n), prim.New(n))
	}

	return hashmap.New(kvs...)
}

// Genesis returns a state with the core account and n user accounts.
func Genesis(n int) *state.T {
	return state.Genesis(Core(), n)
}

// Builtins.

// account returns the account record for an address, or the current account.
func account(m *machine) Op {
	v := validate.Fixed(m.code, 0, 1)

	a := m.address
	if len(v) == 1 {
		if !addr.Is(v[0]) {
			panic(errsys.New(errsys.TYPE, "expected an address, not a %s", v[0].Name()))
		}

		a = addr.To(v[0]).Uint64()
	}

	if r, ok := m.state.Account(a); ok {
		m.PushResult(r)
	} else {
		m.PushResult(nil)
	}

	return m.PreviousOp()
}

// apply calls a function with arguments, the last of which is a
// sequence that is spread.
func apply(m *machine) Op {
	v := list.ToSlice(m.code)
	if len(v) < 2 {
		panic(errsys.New(errsys.ARITY, "expected at least 2 arguments, passed %d", len(v)))
	}

	f, fixed, last := v[0], v[1:len(v)-1], v[len(v)-1]

	var spread []cell.I

	switch {
	case null.Is(last):
	case pair.Is(last):
		spread = list.ToSlice(last)
	case vector.Is(last):
		spread = vector.To(last).Values()
	default:
		panic(errsys.New(errsys.TYPE, "cannot spread a %s", last.Name()))
	}

	args := list.New(append(append([]cell.I{}, fixed...), spread...)...)

	return m.apply(f, args)
}

// deploy creates an account and then, as that account, calls a
// function or evaluates a form. The new account's address is the result.
//
// Result:
//  address: New
//  code:    Body
//  stack:   evaluate Boundary(return) Boundary Deployed(New) Previous ...
//
// Requires:
//  code:    (Fn) or (Form)
//  stack:   deploy Previous ...
//
func deploy(m *machine) Op {
	v := validate.Fixed(m.code, 1, 1)

	m.charge(m.schedule.Deploy)

	s, a := m.state.Deploy(state.Seed())
	m.state = s

	m.ReplaceOp(&deployed{address: a})
	m.PushOp(&boundary{
		address: m.address,
		depth:   m.depth,
		frame:   m.frame,
	})

	m.address = a.Uint64()
	m.frame = frame.New(nil, m.frame)

	if closure.Is(v[0]) {
		m.PushOp(Action(nop))

		return m.call(closure.To(v[0]), pair.Null)
	}

	m.code = compile(v[0])

	return m.PushOp(Action(evaluate))
}

// eval compiles and evaluates a form with no local bindings.
func eval(m *machine) Op {
	v := validate.Fixed(m.code, 1, 1)

	m.ReplaceOp(&boundary{
		address: m.address,
		depth:   m.depth,
		frame:   m.frame,
	})

	m.frame = frame.New(nil, m.frame)
	m.code = compile(v[0])

	return m.PushOp(Action(evaluate))
}

// fail raises an error with an optional code and message.
func fail(m *machine) Op {
	v := validate.Fixed(m.code, 0, 2)

	switch len(v) {
	case 0:
		panic(errsys.User(kw.New(ASSERT), null.Nil))
	case 1:
		panic(errsys.User(kw.New(ASSERT), v[0]))
	}

	panic(errsys.User(v[0], v[1]))
}

// lookup returns the value bound to a symbol in the current account or
// in the account at the given address. Nil if there is no binding.
func lookup(m *machine) Op {
	v := validate.Fixed(m.code, 1, 2)

	a, k := m.address, v[0]
	if len(v) == 2 {
		if !addr.Is(v[0]) {
			panic(errsys.New(errsys.TYPE, "expected an address, not a %s", v[0].Name()))
		}

		a, k = addr.To(v[0]).Uint64(), v[1]
	}

	if !sym.Is(k) {
		panic(errsys.New(errsys.TYPE, "expected a symbol, not a %s", k.Name()))
	}

	r, _ := m.state.Lookup(a, k)
	m.PushResult(r)

	return m.PreviousOp()
}

func nop(m *machine) Op {
	return m.PreviousOp()
}

// Helpers.

func compile(c cell.I) cell.I {
	code, err := compiler.Compile(c)
	if err != nil {
		panic(err)
	}

	return code
}

func init() { //nolint:gochecknoinits
	builtins = map[string]Action{
		"account": account,
		"apply":   apply,
		"deploy":  deploy,
		"eval":    eval,
		"fail":    fail,
		"lookup":  lookup,
	}
}
