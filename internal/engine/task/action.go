// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/truth"
	"github.com/michaelmacinnis/cvm/internal/common/struct/frame"
	"github.com/michaelmacinnis/cvm/internal/common/type/closure"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

//nolint:gochecknoglobals
var special map[string]Action

// Actions.

// evaluate evaluates code and pushes the result.
//
// Result:
//  dump:  Value ...
//  stack: Previous ...
//
// Requires:
//  code:  Form
//  dump:  ...
//  stack: evaluate Previous ...
//
// Lists are special forms or applications. Symbols are resolved.
// Vectors, maps and sets evaluate their elements. Everything else
// evaluates to itself.
func evaluate(m *machine) Op {
	c := m.code

	switch {
	case c == pair.Null:
		m.charge(m.schedule.Constant)
		m.PushResult(c)

		return m.PreviousOp()

	case pair.Is(c):
		if h := pair.Car(c); sym.Is(h) {
			if a, ok := special[sym.To(h).String()]; ok {
				return m.ReplaceOp(a)
			}
		}

		m.ReplaceOp(Action(execApply))
		m.marker()

		return m.PushOp(Action(evalArgs))

	case sym.Is(c):
		m.charge(m.schedule.Lookup)
		m.PushResult(m.resolve(sym.To(c)))

		return m.PreviousOp()

	case vector.Is(c):
		return m.build(Action(buildVector), vector.To(c).Values())

	case hashmap.Is(c):
		kvs := []cell.I{}

		hashmap.To(c).ForEach(func(k, v cell.I) bool {
			kvs = append(kvs, k, v)

			return true
		})

		return m.build(Action(buildMap), kvs)

	case set.Is(c):
		return m.build(Action(buildSet), set.To(c).Members())
	}

	m.charge(m.schedule.Constant)
	m.PushResult(c)

	return m.PreviousOp()
}

// evalArgs evaluates each element of code, in order, pushing the results.
//
// Result:
//  code:  Arg_0
//  stack: evaluate Restore(code: Arg_1 ... Arg_N) evalArgs Previous ...
//
// Requires:
//  code:  Arg_0 ... Arg_N
//  stack: evalArgs Previous ...
//
func evalArgs(m *machine) Op {
	if m.code == pair.Null {
		return m.PreviousOp()
	}

	m.PushOp(&registers{code: pair.Cdr(m.code)})

	m.code = pair.Car(m.code)

	return m.PushOp(Action(evaluate))
}

// Special forms.

// evalCond evaluates clauses in order.
//
// Requires:
//  code:  (cond Test_0 Expr_0 ... [Default])
//  stack: evalCond Previous ...
//
func evalCond(m *machine) Op {
	m.code = pair.Cdr(m.code)

	return m.ReplaceOp(Action(cond))
}

func cond(m *machine) Op {
	if m.code == pair.Null {
		m.PushResult(nil)

		return m.PreviousOp()
	}

	m.charge(m.schedule.Cond)

	if pair.Cdr(m.code) == pair.Null {
		m.code = pair.Car(m.code)

		return m.ReplaceOp(Action(evaluate))
	}

	m.ReplaceOp(Action(branch))
	m.PushOp(&registers{code: m.code})

	m.code = pair.Car(m.code)

	return m.PushOp(Action(evaluate))
}

// branch evaluates the expression for a true test or moves on to the next clause.
//
// Requires:
//  code:  Test_I Expr_I ...
//  dump:  Result ...
//  stack: branch Previous ...
//
func branch(m *machine) Op {
	if truth.Value(m.PopResult()) {
		m.code = pair.Cadr(m.code)

		return m.ReplaceOp(Action(evaluate))
	}

	m.code = pair.Cddr(m.code)

	return m.ReplaceOp(Action(cond))
}

// evalDef evaluates the value to be bound.
//
// Result:
//  code:  Value
//  stack: evaluate Restore(code: Name) execDef Previous ...
//
// Requires:
//  code:  (def Name Value)
//  stack: evalDef Previous ...
//
func evalDef(m *machine) Op {
	m.ReplaceOp(Action(execDef))
	m.PushOp(&registers{code: pair.Cadr(m.code)})

	m.code = pair.Caddr(m.code)

	return m.PushOp(Action(evaluate))
}

// execDef binds Name in the current account. The value is the result.
func execDef(m *machine) Op {
	v := m.Result()

	m.charge(m.schedule.Def + m.schedule.Memory*encoding.Size(v))

	m.state = m.state.Define(m.address, m.code, v)

	return m.PreviousOp()
}

// evalDo evaluates forms in order. The last result is the result.
func evalDo(m *machine) Op {
	m.code = pair.Cdr(m.code)

	return m.ReplaceOp(Action(sequence))
}

// sequence evaluates each form, discarding all but the last result.
//
// Result:
//  code:  Form_0
//  stack: evaluate Restore(code: Form_1 ... Form_N) discard sequence Previous ...
//
// Requires:
//  code:  Form_0 ... Form_N
//  stack: sequence Previous ...
//
func sequence(m *machine) Op {
	if m.code == pair.Null {
		m.PushResult(nil)

		return m.PreviousOp()
	}

	m.charge(m.schedule.Do)

	if pair.Cdr(m.code) == pair.Null {
		m.code = pair.Car(m.code)

		return m.ReplaceOp(Action(evaluate))
	}

	m.PushOp(Action(discard))
	m.PushOp(&registers{code: pair.Cdr(m.code)})

	m.code = pair.Car(m.code)

	return m.PushOp(Action(evaluate))
}

func discard(m *machine) Op {
	m.PopResult()

	return m.PreviousOp()
}

// evalFn creates a closure over the current locals.
func evalFn(m *machine) Op {
	m.charge(m.schedule.Fn)

	params := pair.Cadr(m.code)
	if !vector.Is(params) {
		panic(errsys.New(errsys.COMPILE, "fn parameters must be a vector"))
	}

	m.PushResult(closure.New(vector.To(params), pair.Caddr(m.code), m.frame.Locals()))

	return m.PreviousOp()
}

// evalLet binds locals in order and then evaluates the body. The
// enclosing frame is restored afterwards. No return boundary is pushed.
//
// Result:
//  code:  Name_0 Value_0 ... Name_N Value_N
//  stack: bindLocal Restore(code: Body) evaluate Restore(frame) Previous ...
//
// Requires:
//  code:  (let [Name_0 Value_0 ... Name_N Value_N] Body)
//  stack: evalLet Previous ...
//
func evalLet(m *machine) Op {
	bindings := pair.Cadr(m.code)
	if !vector.Is(bindings) {
		panic(errsys.New(errsys.COMPILE, "let bindings must be a vector"))
	}

	m.ReplaceOp(&registers{frame: m.frame})
	m.PushOp(Action(evaluate))
	m.PushOp(&registers{code: pair.Caddr(m.code)})

	m.code = list.New(vector.To(bindings).Values()...)

	return m.PushOp(Action(bindLocal))
}

// bindLocal evaluates the next value to be bound.
func bindLocal(m *machine) Op {
	if m.code == pair.Null {
		return m.PreviousOp()
	}

	m.ReplaceOp(Action(extendLocals))
	m.PushOp(&registers{code: m.code})

	m.code = pair.Cadr(m.code)

	return m.PushOp(Action(evaluate))
}

// extendLocals adds the next binding to a new frame over the current locals.
func extendLocals(m *machine) Op {
	m.charge(m.schedule.Let)

	locals := m.frame.Locals().Assoc(pair.Car(m.code), m.PopResult())

	m.frame = frame.New(locals, m.frame)
	m.code = pair.Cddr(m.code)

	return m.ReplaceOp(Action(bindLocal))
}

func evalQuote(m *machine) Op {
	m.charge(m.schedule.Constant)
	m.PushResult(pair.Cadr(m.code))

	return m.PreviousOp()
}

// evalSignal evaluates the optional value to be carried by a signal.
//
// Result:
//  code:  Value
//  stack: evaluate Restore(code: Kind) signal Previous ...
//
// Requires:
//  code:  (Kind [Value])
//  stack: evalSignal Previous ...
//
func evalSignal(m *machine) Op {
	m.ReplaceOp(Action(signal))
	m.PushOp(&registers{code: pair.Car(m.code)})

	args := pair.Cdr(m.code)

	m.code = null.Nil
	if args != pair.Null {
		m.code = pair.Car(args)
	}

	return m.PushOp(Action(evaluate))
}

func signal(m *machine) Op {
	v := m.PopResult()

	switch sym.To(m.code).String() {
	case "halt":
		panic(errsys.Signal(errsys.HALT, v))
	case "rollback":
		panic(errsys.Signal(errsys.ROLLBACK, v))
	}

	panic(errsys.Signal(errsys.RETURN, v))
}

// Collections.

func buildMap(m *machine) Op {
	kvs := list.ToSlice(m.arguments())

	m.charge(m.schedule.Build * int64(len(kvs)/2))
	m.PushResult(hashmap.New(kvs...))

	return m.PreviousOp()
}

func buildSet(m *machine) Op {
	vs := list.ToSlice(m.arguments())

	m.charge(m.schedule.Build * int64(len(vs)))
	m.PushResult(set.New(vs...))

	return m.PreviousOp()
}

func buildVector(m *machine) Op {
	vs := list.ToSlice(m.arguments())

	m.charge(m.schedule.Build * int64(len(vs)))
	m.PushResult(vector.New(vs...))

	return m.PreviousOp()
}

// build evaluates the elements es and then performs the action a.
func (m *machine) build(a Action, es []cell.I) Op {
	m.ReplaceOp(a)
	m.marker()

	m.code = list.New(es...)

	return m.PushOp(Action(evalArgs))
}

func init() { //nolint:gochecknoinits
	special = map[string]Action{
		"cond":     evalCond,
		"def":      evalDef,
		"do":       evalDo,
		"fn":       evalFn,
		"halt":     evalSignal,
		"let":      evalLet,
		"quote":    evalQuote,
		"return":   evalSignal,
		"rollback": evalSignal,
	}
}
