// Released under an MIT license. See LICENSE.

// Package closure provides cvm's user defined function type.
package closure

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/composite"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

const name = "fn"

// Rest marks the parameter that collects any remaining arguments.
const Rest = "&"

// T (closure) is a function with the local bindings it captured.
type T struct {
	body   cell.I
	locals *hashmap.T
	params *vector.T

	memo encoding.Memo
}

type closure = T

// New creates a closure. Every parameter must be a symbol and & may only
// appear before the last one.
func New(params *vector.T, body cell.I, locals *hashmap.T) *closure {
	ps := params.Values()

	for i, p := range ps {
		if !sym.Is(p) {
			panic(errsys.New(errsys.COMPILE, "parameter must be a symbol, not a %s", p.Name()))
		}

		if sym.To(p).String() == Rest && i != len(ps)-2 {
			panic(errsys.New(errsys.COMPILE, "%s must be followed by exactly one parameter", Rest))
		}
	}

	if locals == nil {
		locals = hashmap.Empty
	}

	return &closure{body: body, locals: locals, params: params}
}

// Children returns the parameters, body, and captured locals.
func (c *closure) Children() []cell.I {
	return []cell.I{c.params, c.body, c.locals}
}

// Encode returns the canonical encoding of the closure c.
func (c *closure) Encode() []byte {
	return c.memo.Encoding(func() []byte {
		b := encoding.Child([]byte{encoding.Closure}, c.params)
		b = encoding.Child(b, c.body)

		return encoding.Child(b, c.locals)
	})
}

// Equal returns true if o is a closure with the same encoding.
func (c *closure) Equal(o cell.I) bool {
	return Is(o) && (c == To(o) || encoding.Equal(c, To(o)))
}

// Literal returns the literal representation of the closure c.
func (c *closure) Literal() string {
	return "(fn " + c.params.Literal() + " " + literal.String(c.Body()) + ")"
}

// Name returns the type name for closures.
func (c *closure) Name() string {
	return name
}

// Methods specific to closure.

// Arity returns the number of fixed parameters and whether extra
// arguments are accepted.
func (c *closure) Arity() (int, bool) {
	n := int(c.params.Count())
	if n >= 2 && sym.To(c.params.Nth(int64(n-2))).String() == Rest {
		return n - 2, true
	}

	return n, false
}

// Body returns the closure's body.
func (c *closure) Body() cell.I {
	return ref.Deref(c.body)
}

// Locals returns the captured local bindings.
func (c *closure) Locals() *hashmap.T {
	return c.locals
}

// Params returns the parameter vector.
func (c *closure) Params() *vector.T {
	return c.params
}

// Is returns true if c is a closure.
func Is(c cell.I) bool {
	_, ok := c.(*closure)

	return ok
}

// To returns a closure if c is a closure; Otherwise it panics.
func To(c cell.I) *closure {
	if t, ok := c.(*closure); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t closure

	// The closure type is a cell.
	_ = cell.I(&t)

	// The closure type is composite.
	_ = composite.I(&t)

	// The closure type has a literal representation.
	_ = literal.I(&t)
}
