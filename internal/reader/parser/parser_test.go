package parser

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/boolean"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/prim"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/reader/lexer"
)

func parse(t *testing.T, s string) []cell.I {
	cs, err := try(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}

	return cs
}

func try(s string) ([]cell.I, error) {
	l := lexer.New("test", lexer.Lisp)

	l.Scan(s)
	l.Scan("\n")

	var cs []cell.I

	err := New(func(c cell.I) {
		cs = append(cs, c)
	}, l.Token).Parse()

	return cs, err
}

func check(t *testing.T, s, expected string) {
	cs := parse(t, s)
	if len(cs) != 1 {
		t.Fatalf("Expected one form from %q; got %d", s, len(cs))
	}

	actual := literal.String(syntax.Strip(cs[0]))
	if actual != expected {
		t.Fatalf("Expected %q to read as %q; got %q", s, expected, actual)
	}
}

func TestAtoms(t *testing.T) {
	for _, s := range []string{
		"nil", "true", "false",
		"1", "-7", "2.5", "-0.5",
		":k", "sym", "ns/name", "#12", "0xff",
		"##NaN", "##Inf", "##-Inf",
	} {
		check(t, s, s)
	}

	check(t, "+5", "5")
	check(t, "1e3", "1000.0")
}

func TestLists(t *testing.T) {
	check(t, "(+ 1 (f x) [])", "(+ 1 (f x) [])")
	check(t, "()", "()")
	check(t, "'x", "(quote x)")
	check(t, "[1, 2, 3]", "[1 2 3]")
}

func TestMaps(t *testing.T) {
	cs := parse(t, "{:a 1 :b 2}")

	m := hashmap.To(syntax.Strip(cs[0]))
	if m.Count() != 2 {
		t.Fatalf("Expected two entries; got %d", m.Count())
	}

	v, ok := m.Get(kw.New("b"))
	if !ok || !v.Equal(num.Int(2)) {
		t.Fatalf("Expected :b to be 2; got %v", v)
	}

	_, err := try("{:a}")
	if !errsys.IsKind(err, errsys.SYNTAX) {
		t.Fatalf("Expected SYNTAX error for odd map; got %v", err)
	}
}

func TestMeta(t *testing.T) {
	cs := parse(t, "^:private x")

	s := syntax.To(cs[0])
	if !syntax.Strip(s).Equal(sym.New("x")) {
		t.Fatalf("Expected x; got %v", s.Datum())
	}

	v, ok := s.Meta().Get(kw.New("private"))
	if !ok || v != boolean.True {
		t.Fatalf("Expected :private true; got %v", s.Meta())
	}
}

func TestMetaLiterals(t *testing.T) {
	cs := parse(t, `(|symbol "a b"|) (|primitive +|)`)
	if len(cs) != 2 {
		t.Fatalf("Expected two forms; got %d", len(cs))
	}

	if s := syntax.Strip(cs[0]); !s.Equal(sym.New("a b")) {
		t.Fatalf("Expected symbol 'a b'; got %v", s)
	}

	if p := syntax.Strip(cs[1]); !p.Equal(prim.New("+")) {
		t.Fatalf("Expected primitive +; got %v", p)
	}

	check(t, literal.String(sym.New("a b")), `(|symbol "a b"|)`)
}

func TestSource(t *testing.T) {
	cs := parse(t, "\n  (x\n y)")

	s := syntax.Source(cs[0])
	if s == nil || s.Line != 2 || s.Char != 3 || s.Name != "test" {
		t.Fatalf("Expected test:2:3; got %v", s)
	}

	x := syntax.Source(pair.Car(syntax.To(cs[0]).Datum()))
	if x == nil || x.Line != 2 || x.Char != 4 {
		t.Fatalf("Expected test:2:4; got %v", x)
	}
}

func TestSyntaxErrors(t *testing.T) {
	for _, s := range []string{
		"(1 2",
		"[1 2)",
		"(|symbol x|)",
		"(|other \"x\"|)",
		"99999999999999999999",
		"#{1",
	} {
		_, err := try(s)
		if !errsys.IsKind(err, errsys.SYNTAX) {
			t.Fatalf("Expected SYNTAX error for %q; got %v", s, err)
		}
	}
}
