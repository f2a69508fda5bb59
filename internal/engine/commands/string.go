// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/validate"
)

// PrintLimit bounds the text produced by print.
const PrintLimit = 1000000

func keyword(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return kw.New(text(v[0]))
}

// Strings are used as is. Everything else contributes its literal.
func makeString(args cell.I) cell.I {
	s := str.New("")

	for ; args != pair.Null; args = pair.Cdr(args) {
		c := pair.Car(args)
		if str.Is(c) {
			s = str.Concat(s, str.To(c))
		} else {
			s = str.Concat(s, str.New(literal.String(c)))
		}
	}

	return s
}

func name(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	return str.New(text(v[0]))
}

func printed(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	s, _ := literal.Print(v[0], PrintLimit)

	return str.New(s)
}

func symbol(args cell.I) cell.I {
	v := validate.Fixed(args, 1, 1)

	s := text(v[0])
	if s == "" {
		panic(errsys.New(errsys.ARGUMENT, "symbol name cannot be empty"))
	}

	return sym.New(s)
}

// Helpers.

func text(c cell.I) string {
	switch {
	case str.Is(c):
		return str.To(c).String()
	case kw.Is(c):
		return kw.To(c).String()
	case sym.Is(c):
		return sym.To(c).String()
	}

	panic(errsys.New(errsys.TYPE, "%s has no name", c.Name()))
}
