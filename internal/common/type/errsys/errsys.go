// Released under an MIT license. See LICENSE.

// Package errsys provides cvm's error type.
//
// An errsys is both a cell, so errors can be passed around and encoded as
// data, and a Go error, so it can cross API boundaries and be raised with
// panic inside the machine.
package errsys

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
)

const name = "error"

// Error kinds.
const (
	ARGUMENT   = "ARGUMENT"
	ARITY      = "ARITY"
	COMPILE    = "COMPILE"
	DEPTH      = "DEPTH"
	FORMAT     = "FORMAT"
	INDEX      = "INDEX"
	JUICE      = "JUICE"
	MISSING    = "MISSING"
	STATE      = "STATE"
	SYNTAX     = "SYNTAX"
	TYPE       = "TYPE"
	UNDECLARED = "UNDECLARED"
)

// Control signals. These travel the same path as errors.
const (
	HALT     = "HALT"
	RETURN   = "RETURN"
	ROLLBACK = "ROLLBACK"
)

// T (errsys) is an error code with a message.
type T struct {
	code    cell.I
	form    cell.I // Not encoded.
	message cell.I
	signal  bool // Not encoded.
}

type errsys = T

// New creates an error of the given kind with a formatted message.
func New(kind, format string, args ...interface{}) *errsys {
	return &errsys{
		code:    kw.New(kind),
		message: str.New(fmt.Sprintf(format, args...)),
	}
}

// Signal creates a control signal of the given kind that carries v.
// Only signals created here unwind as signals. An error with the same
// code is still an error.
func Signal(kind string, v cell.I) *errsys {
	return &errsys{code: kw.New(kind), message: v, signal: true}
}

// User creates an error with an arbitrary code and message.
func User(code, message cell.I) *errsys {
	return &errsys{code: code, message: message}
}

// From converts err to an errsys. A missing digest becomes MISSING.
func From(err error) *errsys {
	var e *errsys
	if errors.As(err, &e) {
		return e
	}

	var m interface{ Missing() digest.T }
	if errors.As(err, &m) {
		return Missing(m.Missing())
	}

	return New(ARGUMENT, "%s", err.Error())
}

// Missing creates a MISSING error for the digest h.
func Missing(h digest.T) *errsys {
	return New(MISSING, "missing data for %s", h)
}

// Recover converts a value recovered from a panic into an errsys.
// Values that are not errors or strings are re-panicked.
func Recover(r interface{}) *errsys {
	switch v := r.(type) {
	case *errsys:
		return v
	case error:
		return From(v)
	case string:
		return New(TYPE, "%s", v)
	}

	panic(r)
}

// Encode returns the canonical encoding of the errsys e.
func (e *errsys) Encode() []byte {
	b := encoding.Child([]byte{encoding.Error}, e.code)

	return encoding.Child(b, e.message)
}

// Equal returns true if c is an errsys with the same code and message.
func (e *errsys) Equal(c cell.I) bool {
	return Is(c) && (e == To(c) || encoding.Equal(e, To(c)))
}

// Error returns the text of the errsys e.
func (e *errsys) Error() string {
	return e.Kind() + ": " + text(e.message)
}

// Literal returns the literal representation of the errsys e.
func (e *errsys) Literal() string {
	return "(|" + name + " " + literal.String(e.code) + " " + literal.String(e.message) + "|)"
}

// Name returns the name of the errsys type.
func (e *errsys) Name() string {
	return name
}

// String returns the text of the errsys e.
func (e *errsys) String() string {
	return e.Error()
}

// Methods specific to errsys.

// Children returns the code and message of the errsys e.
func (e *errsys) Children() []cell.I {
	return []cell.I{e.code, e.message}
}

// Code returns the error code.
func (e *errsys) Code() cell.I {
	return e.code
}

// Form returns the form that was being compiled or evaluated, if known.
func (e *errsys) Form() cell.I {
	return e.form
}

// IsSignal returns true if e is a control signal rather than an error.
func (e *errsys) IsSignal() bool {
	return e.signal
}

// Kind returns the text of the code if it is a keyword, or the literal
// representation of a user code.
func (e *errsys) Kind() string {
	if kw.Is(e.code) {
		return kw.To(e.code).String()
	}

	if e.code == nil {
		return "nil"
	}

	return literal.String(e.code)
}

// Message returns the message (or, for signals, the value) carried by e.
func (e *errsys) Message() cell.I {
	return e.message
}

// WithForm returns a copy of e that records the form f.
func (e *errsys) WithForm(f cell.I) *errsys {
	c := *e
	c.form = f

	return &c
}

// Is returns true if c is an errsys.
func Is(c cell.I) bool {
	_, ok := c.(*errsys)

	return ok
}

// IsKind returns true if err is an errsys of the given kind.
func IsKind(err error, kind string) bool {
	var e *errsys

	return errors.As(err, &e) && e.Kind() == kind
}

// To returns an errsys if c is an errsys; Otherwise it panics.
func To(c cell.I) *errsys {
	if t, ok := c.(*errsys); ok {
		return t
	}

	panic("not an " + name)
}

func text(c cell.I) string {
	if c == nil {
		return "nil"
	}

	if str.Is(c) {
		return str.To(c).String()
	}

	return literal.String(c)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t errsys

	// The errsys type is a cell.
	_ = cell.I(&t)

	// The errsys type is an error.
	_ = error(&t)

	// The errsys type has a literal representation.
	_ = literal.I(&t)
}
