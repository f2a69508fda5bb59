// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/frame"
	"github.com/michaelmacinnis/cvm/internal/common/type/addr"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/record"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
	"github.com/michaelmacinnis/cvm/internal/engine/commands"
	"github.com/michaelmacinnis/cvm/internal/engine/state"
)

// Special symbols.
const (
	addressSymbol = "*address*"
	depthSymbol   = "*depth*"
	juiceSymbol   = "*juice*"
)

// execApply applies the operator to the operands.
//
// Requires:
//  dump:  Operand_N ... Operand_0 Operator nil ...
//  stack: execApply Previous ...
//
func execApply(m *machine) Op {
	args := m.arguments()

	return m.apply(pair.Car(args), pair.Cdr(args))
}

// apply applies f to args. The current operation is replaced.
func (m *machine) apply(f, args cell.I) Op {
	switch {
	case prim.Is(f):
		return m.primitive(prim.To(f).String(), args)
	case closure.Is(f):
		return m.call(closure.To(f), args)
	}

	m.charge(m.schedule.Apply)
	m.PushResult(element(f, args))

	return m.PreviousOp()
}

// call binds args to the parameters of c and evaluates its body.
//
// Result:
//  code:  Body
//  frame: New frame with the closure's locals and parameter bindings
//  stack: evaluate Boundary(return) Previous ...
//
func (m *machine) call(c *closure.T, args cell.I) Op {
	m.charge(m.schedule.Apply)

	m.ReplaceOp(&boundary{
		address: m.address,
		catches: true,
		depth:   m.depth,
		dump:    m.dump,
		frame:   m.frame,
	})

	m.depth++
	if m.depth > m.schedule.Depth {
		panic(errsys.New(errsys.DEPTH, "maximum depth %d exceeded", m.schedule.Depth))
	}

	m.frame = frame.New(bind(c, args), m.frame)
	m.code = c.Body()

	return m.PushOp(Action(evaluate))
}

// primitive applies the primitive named n to args.
func (m *machine) primitive(n string, args cell.I) Op {
	m.charge(m.schedule.Primitive)

	if a, ok := builtins[n]; ok {
		m.code = args

		return a(m)
	}

	f, ok := commands.Lookup(n)
	if !ok {
		panic(errsys.New(errsys.UNDECLARED, "no primitive called %s", n))
	}

	m.PushResult(f(args))

	return m.PreviousOp()
}

// resolve returns the value bound to s.
func (m *machine) resolve(s *sym.T) cell.I {
	n := s.String()

	switch n {
	case addressSymbol:
		return addr.New(m.address)
	case depthSymbol:
		return num.Int(int64(m.depth))
	case juiceSymbol:
		return num.Int(m.juice)
	}

	if ns, local, ok := s.Qualified(); ok {
		if a, ok := m.alias(sym.New(ns)); ok {
			if v, ok := m.state.Lookup(a, sym.New(local)); ok {
				return v
			}
		}

		panic(errsys.New(errsys.UNDECLARED, "%s", n))
	}

	if v, ok := m.frame.Resolve(s); ok {
		return v
	}

	if v, ok := m.state.Lookup(m.address, s); ok {
		return v
	}

	if a, ok := m.alias(null.Nil); ok && a != m.address {
		if v, ok := m.state.Lookup(a, s); ok {
			return v
		}
	}

	panic(errsys.New(errsys.UNDECLARED, "%s", n))
}

// alias returns the address bound to k in the current account's aliases.
func (m *machine) alias(k cell.I) (uint64, bool) {
	as, ok := m.state.Lookup(m.address, state.Aliases)
	if !ok || !hashmap.Is(as) {
		return 0, false
	}

	v, ok := hashmap.To(as).Get(k)
	if !ok || !addr.Is(v) {
		return 0, false
	}

	a := addr.To(v).Uint64()
	if a >= uint64(m.state.Count()) {
		return 0, false
	}

	return a, true
}

// Helpers.

// bind returns the closure's locals extended with its parameters bound to args.
func bind(c *closure.T, args cell.I) *hashmap.T {
	fixed, variadic := c.Arity()

	vs := list.ToSlice(args)
	if len(vs) < fixed || (!variadic && len(vs) > fixed) {
		want := validate.Count(fixed, "argument", "s")
		if variadic {
			want = "at least " + want
		}

		panic(errsys.New(errsys.ARITY, "expected %s, passed %d", want, len(vs)))
	}

	l := c.Locals()

	ps := c.Params().Values()
	for i := 0; i < fixed; i++ {
		l = l.Assoc(ps[i], vs[i])
	}

	if variadic {
		l = l.Assoc(ps[fixed+1], list.New(vs[fixed:]...))
	}

	return l
}

// element applies the collection or keyword f to args.
func element(f, args cell.I) cell.I {
	switch {
	case kw.Is(f):
		v := validate.Fixed(args, 1, 2)

		return get(v[0], f, v[1:])

	case vector.Is(f):
		v := validate.Fixed(args, 1, 1)
		if !num.Is(v[0]) {
			panic(errsys.New(errsys.TYPE, "vector index must be a long, not a %s", v[0].Name()))
		}

		return vector.To(f).Nth(num.To(v[0]).Int64())

	case hashmap.Is(f), record.Is(f):
		v := validate.Fixed(args, 1, 2)

		return get(f, v[0], v[1:])

	case set.Is(f):
		v := validate.Fixed(args, 1, 1)

		return boolean.Bool(set.To(f).Contains(v[0]))
	}

	panic(errsys.New(errsys.TYPE, "%s is not a function", null.Or(f).Name()))
}

func get(c, k cell.I, dflt []cell.I) cell.I {
	if v, ok := commands.Element(c, k); ok {
		return v
	}

	if len(dflt) > 0 {
		return dflt[0]
	}

	return null.Nil
}
