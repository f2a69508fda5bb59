// Released under an MIT license. See LICENSE.

// Package engine provides a facade in front of the machinery for
// reading, compiling and executing cvm code.
//
// The engine holds the committed context. Each top-level form is a
// transaction: when it succeeds the resulting state is committed, the
// executing account's sequence number is incremented, and the state is
// persisted to the store.
package engine

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/engine/juice"
	"github.com/michaelmacinnis/cvm/internal/engine/state"
	"github.com/michaelmacinnis/cvm/internal/engine/task"
	"github.com/michaelmacinnis/cvm/internal/reader"
	"github.com/michaelmacinnis/cvm/internal/system/store"
)

// Extension marks files written in Scrypt.
const Extension = ".scrypt"

// T (engine) evaluates cvm code against a committed state.
type T struct {
	sync.Mutex
	context *task.T
	root    digest.T
	store   *store.T
}

type engine = T

// New creates an engine with a fresh state of n user accounts executing
// as the first user account.
func New(schedule *juice.Schedule, n int) *engine {
	if n < 1 {
		n = 1
	}

	return open(store.New(), task.New(task.Genesis(n), 1, schedule))
}

// Open creates an engine from the state with digest root in the store st.
func Open(st *store.T, root digest.T, a uint64, schedule *juice.Schedule) (*engine, error) {
	c, err := st.Load(root)
	if err != nil {
		return nil, err
	}

	if !vector.Is(c) {
		return nil, errsys.New(errsys.STATE, "%s is not a state", root)
	}

	s, err := load(vector.To(c))
	if err != nil {
		return nil, err
	}

	if a >= uint64(s.Count()) {
		return nil, errsys.New(errsys.STATE, "no account #%d", a)
	}

	return open(st, task.New(s, a, schedule)), nil
}

// Context returns the committed context.
func (e *engine) Context() *task.T {
	e.Lock()
	defer e.Unlock()

	return e.context
}

// Evaluate executes a single read form as a transaction.
func (e *engine) Evaluate(form cell.I) (cell.I, error) {
	ctx := e.transact(form)

	return ctx.Value(), ctx.Err()
}

// Execute reads and executes Lisp source, one transaction per form.
func (e *engine) Execute(source string) (*task.T, error) {
	return e.run(reader.ReadSyntax("cvm", source))
}

// ExecuteFile reads and executes the file at path. Files ending in
// Extension are Scrypt. Anything else is Lisp.
func (e *engine) ExecuteFile(path string) (*task.T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == Extension {
		c, err := reader.ReadScrypt(path, string(b))

		return e.run([]cell.I{c}, err)
	}

	return e.run(reader.ReadSyntax(path, string(b)))
}

// ExecuteScrypt reads and executes Scrypt source as a single transaction.
func (e *engine) ExecuteScrypt(source string) (*task.T, error) {
	c, err := reader.ReadScrypt("cvm", source)

	return e.run([]cell.I{c}, err)
}

// Names returns the names visible to the executing account without
// qualification.
func (e *engine) Names() []string {
	ctx := e.Context()
	s := ctx.State()

	seen := map[string]bool{}

	add := func(a uint64) {
		for _, k := range s.Environment(a).Keys() {
			if sym.Is(k) {
				seen[sym.To(k).String()] = true
			}
		}
	}

	add(ctx.Address())

	if ctx.Address() != state.Core {
		add(state.Core)
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Root returns the digest of the committed state.
func (e *engine) Root() digest.T {
	e.Lock()
	defer e.Unlock()

	return e.root
}

// Store returns the store holding committed states.
func (e *engine) Store() *store.T {
	return e.store
}

func load(accounts *vector.T) (s *state.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = errsys.Recover(r)
		}
	}()

	return state.New(accounts), nil
}

func open(st *store.T, ctx *task.T) *engine {
	return &engine{
		context: ctx,
		root:    st.Put(ctx.State().Accounts()),
		store:   st,
	}
}

func (e *engine) run(forms []cell.I, err error) (*task.T, error) {
	if err != nil {
		return nil, err
	}

	ctx := e.Context()

	for _, form := range forms {
		ctx = e.transact(form)
		if ctx.Err() != nil {
			return ctx, ctx.Err()
		}
	}

	return ctx, nil
}

// transact executes form and commits the result if there is no error.
// Juice is per transaction.
func (e *engine) transact(form cell.I) *task.T {
	e.Lock()
	defer e.Unlock()

	ctx := task.Execute(e.context.WithJuice(0), form)
	if ctx.Err() != nil {
		return ctx
	}

	s := ctx.State().Increment(ctx.Address())

	e.context = ctx.WithState(s)
	e.root = e.store.Put(s.Accounts())

	return e.context
}
