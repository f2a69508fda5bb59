package lexer

import (
	"testing"
	"unicode/utf8"

	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/struct/token"
)

func TestLispCollections(t *testing.T) {
	h := setup(t, "LispCollections", Lisp)

	h.scan("(+ 1 [2] {:a 1} #{x})\n",
		h.token('(', "("),
		h.token(token.Atom, "+"),
		h.space(1),
		h.token(token.Atom, "1"),
		h.space(1),
		h.token('[', "["),
		h.token(token.Atom, "2"),
		h.token(']', "]"),
		h.space(1),
		h.token('{', "{"),
		h.token(token.Atom, ":a"),
		h.space(1),
		h.token(token.Atom, "1"),
		h.token('}', "}"),
		h.space(1),
		h.token(token.SetOpen, "#{"),
		h.token(token.Atom, "x"),
		h.token('}', "}"),
		h.token(')', ")"),
		nil,
	)
}

func TestLispMetaLiteral(t *testing.T) {
	h := setup(t, "LispMetaLiteral", Lisp)

	h.scan("(|symbol \"a b\"|) (|primitive +|)\n",
		h.token(token.MetaOpen, "(|"),
		h.token(token.Atom, "symbol"),
		h.space(1),
		h.token(token.DoubleQuoted, "\"a b\""),
		h.token(token.MetaClose, "|)"),
		h.space(1),
		h.token(token.MetaOpen, "(|"),
		h.token(token.Atom, "primitive"),
		h.space(1),
		h.token(token.Atom, "+"),
		h.token(token.MetaClose, "|)"),
		nil,
	)
}

func TestLispQuoteMetaAndComment(t *testing.T) {
	h := setup(t, "LispQuoteMetaAndComment", Lisp)

	h.scan("'x ; comment\n^:k y\n",
		h.token(token.Quote, "'"),
		h.token(token.Atom, "x"),
		h.newline(),
		h.token(token.Meta, "^"),
		h.token(token.Atom, ":k"),
		h.space(1),
		h.token(token.Atom, "y"),
		nil,
	)
}

func TestLispCommasAreWhitespace(t *testing.T) {
	h := setup(t, "LispCommasAreWhitespace", Lisp)

	h.scan("[1,2]\n",
		h.token('[', "["),
		h.token(token.Atom, "1"),
		h.space(1),
		h.token(token.Atom, "2"),
		h.token(']', "]"),
		nil,
	)
}

func TestPending(t *testing.T) {
	h := setup(t, "Pending", Lisp)

	h.scan("\"abc", nil)

	if !h.lexer.Pending() {
		t.Fatalf("Expected pending text")
	}

	h.scan("\"\n",
		h.token(token.DoubleQuoted, "\"abc\""),
		nil,
	)

	if h.lexer.Pending() {
		t.Fatalf("Expected no pending text; got %q", h.lexer.Text())
	}
}

func TestScryptDef(t *testing.T) {
	h := setup(t, "ScryptDef", Scrypt)

	h.scan("def x = -1 + 2;\n",
		h.token(token.Atom, "def"),
		h.space(1),
		h.token(token.Atom, "x"),
		h.space(1),
		h.token('=', "="),
		h.space(1),
		h.token(token.Atom, "-1"),
		h.space(1),
		h.token(token.Operator, "+"),
		h.space(1),
		h.token(token.Atom, "2"),
		h.token(';', ";"),
		nil,
	)
}

func TestScryptSubtraction(t *testing.T) {
	h := setup(t, "ScryptSubtraction", Scrypt)

	h.scan("a -1\n",
		h.token(token.Atom, "a"),
		h.space(1),
		h.token(token.Operator, "-"),
		h.token(token.Atom, "1"),
		nil,
	)
}

func TestScryptComments(t *testing.T) {
	h := setup(t, "ScryptComments", Scrypt)

	h.scan("/* a /* b */ c */ x // y\n",
		h.space(18),
		h.token(token.Atom, "x"),
		nil,
	)
}

func TestScryptLambda(t *testing.T) {
	h := setup(t, "ScryptLambda", Scrypt)

	h.scan("(a) -> :k\n",
		h.token('(', "("),
		h.token(token.Atom, "a"),
		h.token(')', ")"),
		h.space(1),
		h.token(token.Arrow, "->"),
		h.space(1),
		h.token(token.Atom, ":k"),
		nil,
	)
}

func TestScryptOperators(t *testing.T) {
	h := setup(t, "ScryptOperators", Scrypt)

	h.scan("a<=b==#{c}\n",
		h.token(token.Atom, "a"),
		h.token(token.Operator, "<="),
		h.token(token.Atom, "b"),
		h.token(token.Operator, "=="),
		h.token(token.SetOpen, "#{"),
		h.token(token.Atom, "c"),
		h.token('}', "}"),
		nil,
	)
}

type harness struct {
	index  int
	lexer  *T
	source loc.T
	t      *testing.T
}

var skip = &token.T{}

func setup(t *testing.T, label string, mode Mode) *harness {
	return &harness{
		index: 1,
		lexer: New(label, mode),
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		t: t,
	}
}

func (h *harness) expect(tokens ...*token.T) {
	for _, e := range tokens {
		if e == skip {
			continue
		}

		a := h.lexer.Token()

		switch {
		case a == e:
			continue
		case a == nil:
			h.t.Fatalf("Expected %v but there are no tokens", e)
		case e == nil:
			h.t.Fatalf("Expected no tokens; got %v", a)
		case *a != *e:
			h.t.Fatalf("Expected %v; got %v", e, a)
		}
	}
}

func (h *harness) newline() *token.T {
	h.index = 1
	h.source.Line++

	return skip
}

func (h *harness) scan(s string, tokens ...*token.T) {
	h.lexer.Scan(s)
	h.expect(tokens...)
}

func (h *harness) space(n int) *token.T {
	h.index += n

	return skip
}

func (h *harness) token(c token.Class, s string) *token.T {
	h.source.Char = h.index
	h.index += utf8.RuneCountInString(s)

	return token.New(c, s, h.source)
}
