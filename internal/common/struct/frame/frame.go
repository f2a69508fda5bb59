// Released under an MIT license. See LICENSE.

// Package frame provides cvm's call stack frame type.
package frame

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
)

// T (frame) is stack frame or activation record.
type T struct {
	locals *hashmap.T
	source loc.T
}

type frame = T

// New creates a new frame with the locals l. The location is inherited
// from the previous frame p.
func New(l *hashmap.T, p *frame) *frame {
	if l == nil {
		l = hashmap.Empty
	}

	f := &frame{locals: l}

	if p != nil {
		f.source = p.source
	}

	return f
}

// Loc returns the current location.
func (f *frame) Loc() *loc.T {
	return &f.source
}

// Locals returns the local bindings visible in this frame.
func (f *frame) Locals() *hashmap.T {
	return f.locals
}

// Resolve looks for a local binding for k.
// Locals are lexical so enclosing frames are not consulted.
func (f *frame) Resolve(k cell.I) (cell.I, bool) {
	return f.locals.Get(k)
}

// Update sets the current lexical location.
func (f *frame) Update(source *loc.T) {
	if source != nil {
		f.source = *source
	}
}
