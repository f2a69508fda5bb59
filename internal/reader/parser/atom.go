// Released under an MIT license. See LICENSE.

package parser

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/addr"
	"github.com/michaelmacinnis/cvm/internal/common/type/blob"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/double"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
)

// Atom converts the text of an atom into a cell. Nil, booleans, numbers,
// keywords, addresses, and blobs are recognised; anything else is a symbol.
func Atom(s string) (cell.I, error) {
	switch s {
	case "nil":
		return null.Nil, nil
	case "true":
		return boolean.True, nil
	case "false":
		return boolean.False, nil
	case "##NaN", "##Inf", "##-Inf":
		d, err := double.Parse(s)
		if err != nil {
			return nil, err
		}

		return d, nil
	}

	switch {
	case len(s) > 1 && s[0] == ':':
		return kw.New(s[1:]), nil
	case len(s) > 1 && s[0] == '#':
		n, err := strconv.ParseUint(s[1:], 10, 64)
		if err != nil {
			return nil, err
		}

		return addr.New(n), nil
	case strings.HasPrefix(s, "0x"):
		b, err := blob.Parse(s[2:])
		if err != nil {
			return nil, err
		}

		return b, nil
	case numeric(s):
		return number(s)
	}

	return sym.New(s), nil
}

func number(s string) (cell.I, error) {
	if strings.ContainsAny(s, ".eE") {
		d, err := double.Parse(s)
		if err != nil {
			return nil, err
		}

		return d, nil
	}

	n, err := num.Parse(s)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func numeric(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}

	return s != "" && s[0] >= '0' && s[0] <= '9'
}
