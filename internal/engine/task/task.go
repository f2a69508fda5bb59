// Released under an MIT license. See LICENSE.

// Package task provides cvm's evaluator.
//
// A task.T is an immutable execution context: the world state, the address
// of the account executing, the juice consumed, and the outcome of the last
// execution. Execute runs a form on a stack-based abstract machine and
// returns a new context; the context passed in is never modified.
package task

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/struct/frame"
	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/engine/compiler"
	"github.com/michaelmacinnis/cvm/internal/engine/juice"
	"github.com/michaelmacinnis/cvm/internal/engine/state"
)

const debug = false

// T (task) is an execution context.
type T struct {
	address  uint64
	err      *errsys.T
	juice    int64
	schedule *juice.Schedule
	source   *loc.T
	state    *state.T
	value    cell.I
}

type task = T

// New creates a context for the account at address a in the state s.
func New(s *state.T, a uint64, schedule *juice.Schedule) *task {
	if schedule == nil {
		schedule = juice.Default()
	}

	return &task{
		address:  a,
		schedule: schedule,
		state:    s,
		value:    null.Nil,
	}
}

// Address returns the address of the executing account.
func (t *task) Address() uint64 {
	return t.address
}

// Err returns the error from the last execution, if any.
func (t *task) Err() error {
	if t.err == nil {
		return nil
	}

	return t.err
}

// Juice returns the juice consumed.
func (t *task) Juice() int64 {
	return t.juice
}

// Limit returns the juice available.
func (t *task) Limit() int64 {
	return t.schedule.Limit
}

// Schedule returns the juice schedule.
func (t *task) Schedule() *juice.Schedule {
	return t.schedule
}

// Source returns the location of the last form executed, if known.
func (t *task) Source() *loc.T {
	return t.source
}

// State returns the world state.
func (t *task) State() *state.T {
	return t.state
}

// Value returns the result of the last execution.
func (t *task) Value() cell.I {
	return t.value
}

// WithAddress returns a copy of t executing as the account at address a.
func (t *task) WithAddress(a uint64) *task {
	c := *t
	c.address = a

	return &c
}

// WithJuice returns a copy of t that has consumed j juice.
func (t *task) WithJuice(j int64) *task {
	c := *t
	c.juice = j

	return &c
}

// WithState returns a copy of t with the world state s.
func (t *task) WithState(s *state.T) *task {
	c := *t
	c.state = s

	return &c
}

// Execute compiles and evaluates form as a single atomic transaction.
//
// If evaluation fails the returned context has the initial state, the error,
// and the juice consumed up to the failure. A rollback restores the initial
// state but is not an error. A halt, or a return outside of any function,
// ends evaluation and keeps the state.
func Execute(t *task, form cell.I) *task {
	r := *t
	r.err = nil
	r.source = syntax.Source(form)
	r.value = null.Nil

	code, err := compiler.Compile(form)
	if err != nil {
		r.err = errsys.From(err)

		return &r
	}

	m := newMachine(t, code)
	m.frame.Update(r.source)
	m.run()

	r.juice = m.juice

	if m.err == nil {
		r.state = m.state
		r.value = m.Result()

		return &r
	}

	if !m.err.IsSignal() {
		r.err = m.err

		return &r
	}

	r.value = null.Or(m.err.Message())
	if m.err.Kind() != errsys.ROLLBACK {
		r.state = m.state
	}

	return &r
}

// The machine type is the mutable state of a single execution.
type machine struct {
	*registers

	address  uint64
	depth    int
	err      *errsys.T
	juice    int64
	schedule *juice.Schedule
	state    *state.T
}

func newMachine(t *task, code cell.I) *machine {
	m := &machine{
		registers: &registers{
			code:  code,
			dump:  pair.Null,
			frame: frame.New(nil, nil),
			stack: done,
		},
		address:  t.address,
		juice:    t.juice,
		schedule: t.schedule,
		state:    t.state,
	}

	m.PushOp(Action(evaluate))

	return m
}

// Step performs a single action and determines the next action.
func (m *machine) Step(s Op) (op Op) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		op = m.raise(errsys.Recover(r))
	}()

	if debug {
		print("Stack: ")

		for p := m.stack; p != done; p = p.stack {
			print(opString(p.op))
			print(" ")
		}

		println("")
		println("Source: " + m.frame.Loc().String())
		println("Code: " + literal.String(null.Or(m.code)))
		println("")
	}

	return s.Perform(m)
}

// charge consumes n juice.
func (m *machine) charge(n int64) {
	m.juice += n
	if m.juice > m.schedule.Limit {
		m.juice = m.schedule.Limit

		panic(errsys.New(errsys.JUICE, "juice limit %d exceeded", m.schedule.Limit))
	}
}

// raise unwinds the machine for the error or signal e. Only a return
// caught by a closure boundary allows evaluation to continue.
func (m *machine) raise(e *errsys.T) Op {
	if e.IsSignal() && e.Kind() == errsys.RETURN {
		for p := m.stack; p != done; p = p.stack {
			b, ok := p.op.(*boundary)
			if !ok || !b.catches {
				continue
			}

			b.restore(m)

			m.dump = b.dump
			m.stack = p

			m.PushResult(e.Message())

			return m.PreviousOp()
		}
	}

	m.err = e
	m.stack = done

	return nil
}

// run steps through the machine's operations until they are exhausted.
func (m *machine) run() {
	s := m.Op()
	for s != nil {
		s = m.Step(s)
	}
}
