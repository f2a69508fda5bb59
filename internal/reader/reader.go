// Released under an MIT license. See LICENSE.

// Package reader converts text into cvm forms.
//
// The functions Read, ReadAll, ReadSyntax, and ReadScrypt create a new
// lexer and parser for every call. The streaming reader T feeds an
// interactive session one line at a time.
package reader

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/token"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/reader/lexer"
	"github.com/michaelmacinnis/cvm/internal/reader/parser"
	"github.com/michaelmacinnis/cvm/internal/reader/scrypt"
)

// Read returns the single form in text without syntax annotations.
func Read(text string) (cell.I, error) {
	cs, err := ReadAll(text)
	if err != nil {
		return nil, err
	}

	if len(cs) != 1 {
		return nil, errsys.New(errsys.SYNTAX, "expected one form, got %d", len(cs))
	}

	return cs[0], nil
}

// ReadAll returns every form in text without syntax annotations.
func ReadAll(text string) ([]cell.I, error) {
	cs, err := ReadSyntax("", text)
	if err != nil {
		return nil, err
	}

	for i, c := range cs {
		cs[i] = syntax.Strip(c)
	}

	return cs, nil
}

// ReadScrypt returns the compilation unit in text as a syntax-wrapped form.
func ReadScrypt(name, text string) (cell.I, error) {
	return scrypt.Parse(name, text)
}

// ReadSyntax returns every form in text wrapped with its source location.
func ReadSyntax(name, text string) ([]cell.I, error) {
	l := lexer.New(name, lexer.Lisp)
	l.Scan(text)
	l.Scan("\n")

	var cs []cell.I

	err := parser.New(func(c cell.I) {
		cs = append(cs, c)
	}, l.Token).Parse()
	if err != nil {
		return nil, err
	}

	if l.Pending() {
		return nil, errsys.New(errsys.SYNTAX, "%s: unterminated %q", name, l.Text())
	}

	return cs, nil
}

// T (reader) encapsulates the lexer and parser for a stream of lines.
type T struct {
	e chan error
	i chan string
	o chan []cell.I
	p *parser.T
	s *lexer.T
}

type reader = T

// New creates a new reader for name.
func New(name string) *T {
	r := &T{
		e: make(chan error),
		i: make(chan string),
		o: make(chan []cell.I),
		s: lexer.New(name, lexer.Lisp),
	}

	var v []cell.I

	r.p = parser.New(func(c cell.I) {
		v = append(v, c)
	}, func() *token.T {
		t := r.s.Token()

		for t == nil {
			r.o <- v

			v = nil

			if !r.next() {
				return nil
			}

			t = r.s.Token()
		}

		return t
	})

	go r.start()

	return r
}

// Close terminates the reader.
func (r *reader) Close() {
	close(r.i)
}

// Lexer returns the reader's internal lexer.T.
func (r *reader) Lexer() *lexer.T {
	return r.s
}

// Scan reads the line and returns the forms it completes, if any.
// An empty result means more input is needed. If scan encounters
// an error it returns the error and the reader can no longer be used.
func (r *reader) Scan(line string) (cs []cell.I, err error) {
	r.i <- line

	select {
	case cs = <-r.o:
	case err = <-r.e:
	}

	return cs, err
}

func (r *reader) next() bool {
	line, ok := <-r.i
	if ok {
		r.s.Scan(line)
	}

	return ok
}

func (r *reader) start() {
	if !r.next() {
		close(r.o)

		return
	}

	err := r.p.Parse()
	if err == nil {
		close(r.o)

		return
	}

	for {
		select {
		case r.e <- err:
			close(r.e)

			return
		case _, ok := <-r.i:
			if !ok {
				return
			}
		}
	}
}
