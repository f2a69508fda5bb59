// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for cvm's Lisp syntax.
//
// Every form is wrapped in a syntax node that records where it was read.
package parser

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/struct/token"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	emit  func(cell.I)    // Function to call to emit a parsed form.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

// New creates a new parser.
// It connects a producer of tokens with a consumer of cells.
func New(emit func(cell.I), item func() *token.T) *T {
	return &T{emit: emit, item: item}
}

// Parse consumes tokens and emits forms until there are no more tokens.
// A malformed form stops parsing with a SYNTAX error.
func (p *T) Parse() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err = errsys.Recover(r)
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		p.emit(p.form())
	}

	return nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) expect(c token.Class) *token.T {
	t := p.peek()
	if t.Is(c) {
		return p.consume()
	}

	p.fail(t, "expected "+c.String())

	return nil
}

func (p *T) fail(t *token.T, msg string) {
	if t == nil {
		panic(errsys.New(errsys.SYNTAX, "unexpected end of input: %s", msg))
	}

	panic(errsys.New(errsys.SYNTAX, "%s: %s, got %q", t.Source(), msg, t.Value()))
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

// T state functions.

// <form> ::= Quote <form>
//          | Meta <form> <form>
//          | '(' <form>* ')'
//          | MetaOpen Atom <form> MetaClose
//          | '[' <form>* ']'
//          | '{' (<form> <form>)* '}'
//          | SetOpen <form>* '}'
//          | DoubleQuoted
//          | Atom .
func (p *T) form() cell.I {
	t := p.peek()
	if t == nil {
		p.fail(t, "expected a form")
	}

	source := t.Source()

	switch {
	case t.Is(token.Quote):
		p.consume()

		q := syntax.New(sym.New("quote"), nil, source)

		return wrap(list.New(q, p.form()), source)
	case t.Is(token.Meta):
		p.consume()

		m := p.meta()
		f := p.form()

		return syntax.To(f).WithMeta(m)
	case t.Is('('):
		p.consume()

		return wrap(list.New(p.forms(')')...), source)
	case t.Is(token.MetaOpen):
		p.consume()

		return wrap(p.literal(), source)
	case t.Is('['):
		p.consume()

		return wrap(vector.New(p.forms(']')...), source)
	case t.Is('{'):
		p.consume()

		fs := p.forms('}')
		if len(fs)%2 != 0 {
			p.fail(t, "map literal must have an even number of forms")
		}

		return wrap(hashmap.New(fs...), source)
	case t.Is(token.SetOpen):
		p.consume()

		return wrap(set.New(p.forms('}')...), source)
	case t.Is(token.DoubleQuoted):
		p.consume()

		return wrap(p.text(t), source)
	case t.Is(token.Atom):
		p.consume()

		c, err := Atom(t.Value())
		if err != nil {
			p.fail(t, "invalid literal")
		}

		return wrap(c, source)
	}

	p.fail(t, "unexpected token")

	return nil
}

// <forms> ::= <form>* close .
func (p *T) forms(close token.Class) []cell.I {
	var fs []cell.I

	for !p.peek().Is(close) {
		fs = append(fs, p.form())
	}

	p.consume()

	return fs
}

// <literal> ::= "|symbol" DoubleQuoted MetaClose
//             | "|primitive" Atom MetaClose .
func (p *T) literal() cell.I {
	t := p.expect(token.Atom)

	var c cell.I

	switch t.Value() {
	case "symbol":
		c = sym.New(str.To(p.text(p.expect(token.DoubleQuoted))).String())
	case "primitive":
		c = prim.New(p.expect(token.Atom).Value())
	default:
		p.fail(t, "invalid meta literal")
	}

	p.expect(token.MetaClose)

	return c
}

// <meta> ::= <form> .
// A keyword k is shorthand for {k true}. Any other form f for {:tag f}.
func (p *T) meta() *hashmap.T {
	f := syntax.Strip(p.form())

	switch {
	case hashmap.Is(f):
		return hashmap.To(f)
	case kw.Is(f):
		return hashmap.New(f, boolean.True)
	}

	return hashmap.New(kw.New("tag"), f)
}

func (p *T) text(t *token.T) cell.I {
	v := t.Value()

	s, err := str.Unquote(v[1 : len(v)-1])
	if err != nil {
		p.fail(t, "invalid escape sequence")
	}

	return str.New(s)
}

func wrap(c cell.I, source *loc.T) cell.I {
	return syntax.New(c, nil, source)
}
