// Released under an MIT license. See LICENSE.

package task

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/frame"
)

// Op represents a single step of a task.
type Op interface {
	Perform(*machine) Op
}

// Action performs a single step of the machine and returns the next operation.
type Action func(*machine) Op

// Perform is required for an action to be an operation.
func (a Action) Perform(m *machine) Op {
	return a(m)
}

// A boundary restores the machine when evaluation leaves a closure
// call, an account switch or an eval. A boundary that catches returns
// also marks where a return signal stops unwinding.
type boundary struct {
	address uint64
	catches bool
	depth   int
	dump    cell.I
	frame   *frame.T
}

func (b *boundary) Perform(m *machine) Op {
	b.restore(m)

	return m.PreviousOp()
}

func (b *boundary) restore(m *machine) {
	m.address = b.address
	m.depth = b.depth
	m.frame = b.frame
}

// The deployed operation replaces the result of evaluating in a new
// account with the account's address.
type deployed struct {
	address cell.I
}

func (d *deployed) Perform(m *machine) Op {
	m.ReplaceResult(d.address)

	return m.PreviousOp()
}

func opString(o Op) string {
	switch o := o.(type) {
	case nil:
		return "<nil>"
	case Action:
		return funcName(o)
	case *boundary:
		if o.catches {
			return "Boundary(return)"
		}

		return "Boundary"
	case *deployed:
		return "Deployed"
	case *registers:
		s := "Restore("
		comma := ""

		if o.code != nil {
			s += "code"
			comma = ", "
		}

		if o.dump != nil {
			s += comma + "dump"
			comma = ", "
		}

		if o.frame != nil {
			s += comma + "frame"
			comma = ", "
		}

		if o.stack != nil {
			s += comma + "stack"
		}

		s += ")"

		return s
	}

	return "<unknown>"
}

// Get the function i's name. Useful for debugging.
func funcName(i interface{}) string {
	n := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()

	a := strings.Split(n, ".")

	l := len(a)
	if l == 0 {
		return n
	}

	return a[l-1]
}
