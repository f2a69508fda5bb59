package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/engine/juice"
	"github.com/michaelmacinnis/cvm/internal/reader"
)

func value(t *testing.T, e *T, s string) string {
	t.Helper()

	ctx, err := e.Execute(s)
	if err != nil {
		t.Fatalf("%s: unexpected error %v", s, err)
	}

	return literal.String(ctx.Value())
}

func TestExecute(t *testing.T) {
	e := New(nil, 1)

	if v := value(t, e, "(def x 41) (inc x)"); v != "42" {
		t.Fatalf("expected 42, got %s", v)
	}

	if v := value(t, e, "x"); v != "41" {
		t.Fatalf("expected 41, got %s", v)
	}

	if _, err := e.Execute("(inc"); !errsys.IsKind(err, errsys.SYNTAX) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestSequence(t *testing.T) {
	e := New(nil, 1)

	before := e.Root()

	value(t, e, "1 2 3")

	if n := e.Context().State().Sequence(1); n != 3 {
		t.Fatalf("expected sequence 3, got %d", n)
	}

	if e.Root() == before {
		t.Fatalf("expected a new root")
	}

	if _, err := e.Execute("(undefined)"); err == nil {
		t.Fatalf("expected an error")
	}

	if n := e.Context().State().Sequence(1); n != 3 {
		t.Fatalf("failed transaction changed the sequence to %d", n)
	}
}

func TestFailedTransaction(t *testing.T) {
	e := New(nil, 1)

	root := e.Root()

	ctx, err := e.Execute(`(do (def y 1) (fail :nope "bad"))`)
	if !errsys.IsKind(err, "nope") {
		t.Fatalf("expected nope error, got %v", err)
	}

	if ctx.Juice() == 0 {
		t.Fatalf("expected juice to be consumed")
	}

	if e.Root() != root {
		t.Fatalf("failed transaction changed the root")
	}

	if _, err := e.Execute("y"); !errsys.IsKind(err, errsys.UNDECLARED) {
		t.Fatalf("expected y to be undeclared, got %v", err)
	}
}

func TestJuicePerTransaction(t *testing.T) {
	s := juice.Default()
	s.Limit = 500

	e := New(s, 1)

	for i := 0; i < 10; i++ {
		if v := value(t, e, "(+ 1 2 3)"); v != "6" {
			t.Fatalf("expected 6, got %s", v)
		}
	}

	if _, err := e.Execute("(defn spin [] (spin)) (spin)"); !errsys.IsKind(err, errsys.JUICE) {
		t.Fatalf("expected juice error, got %v", err)
	}

	if v := value(t, e, "(fn? spin)"); v != "true" {
		t.Fatalf("expected spin to be committed, got %s", v)
	}
}

func TestExecuteScrypt(t *testing.T) {
	e := New(nil, 1)

	ctx, err := e.ExecuteScrypt("def total = 1 + 2;\ntotal * 2;")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if v := literal.String(ctx.Value()); v != "6" {
		t.Fatalf("expected 6, got %s", v)
	}

	if v := value(t, e, "total"); v != "3" {
		t.Fatalf("expected 3, got %s", v)
	}
}

func TestEvaluate(t *testing.T) {
	e := New(nil, 2)

	form, err := reader.Read("(count *aliases*)")
	if err != nil {
		t.Fatal(err)
	}

	v, err := e.Evaluate(form)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if literal.String(v) != "1" {
		t.Fatalf("expected 1, got %s", literal.String(v))
	}

	if n := e.Context().State().Count(); n != 3 {
		t.Fatalf("expected 3 accounts, got %d", n)
	}
}

func TestExecuteFile(t *testing.T) {
	dir := t.TempDir()

	lisp := filepath.Join(dir, "a.cvm")
	if err := os.WriteFile(lisp, []byte("(def a 1)\n(def b (inc a))\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	scrypt := filepath.Join(dir, "b"+Extension)
	if err := os.WriteFile(scrypt, []byte("def c = b + 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	e := New(nil, 1)

	for _, path := range []string{lisp, scrypt} {
		if _, err := e.ExecuteFile(path); err != nil {
			t.Fatalf("%s: unexpected error %v", path, err)
		}
	}

	if v := value(t, e, "[a b c]"); v != "[1 2 3]" {
		t.Fatalf("expected [1 2 3], got %s", v)
	}

	if _, err := e.ExecuteFile(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestOpen(t *testing.T) {
	e := New(nil, 1)

	value(t, e, "(def kept [1 2])")

	o, err := Open(e.Store(), e.Root(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if v := value(t, o, "kept"); v != "[1 2]" {
		t.Fatalf("expected [1 2], got %s", v)
	}

	if _, err := Open(e.Store(), e.Root(), 5, nil); !errsys.IsKind(err, errsys.STATE) {
		t.Fatalf("expected state error, got %v", err)
	}
}

func TestOpenNested(t *testing.T) {
	var b strings.Builder

	b.WriteString("(def big {:v [")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, " %d", i)
	}
	b.WriteString("]})")

	e := New(nil, 1)

	value(t, e, b.String())

	o, err := Open(e.Store(), e.Root(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	for s, expected := range map[string]string{
		"(count (:v big))":   "500",
		"(nth (:v big) 0)":   "0",
		"(nth (:v big) 250)": "250",
		"(nth (:v big) 499)": "499",
	} {
		if v := value(t, o, s); v != expected {
			t.Fatalf("%s: expected %s, got %s", s, expected, v)
		}
	}

	if o.Root() == e.Root() {
		t.Fatalf("expected a new root after further transactions")
	}
}

func TestJuiceDiscardsDef(t *testing.T) {
	s := juice.Default()
	s.Limit = 2000

	e := New(s, 1)

	value(t, e, "(defn spin [] (spin))")

	root := e.Root()

	if _, err := e.Execute("(do (def early 1) (spin))"); !errsys.IsKind(err, errsys.JUICE) {
		t.Fatalf("expected juice error, got %v", err)
	}

	if e.Root() != root {
		t.Fatalf("failed transaction changed the root")
	}

	if _, err := e.Execute("early"); !errsys.IsKind(err, errsys.UNDECLARED) {
		t.Fatalf("expected early to be undeclared, got %v", err)
	}
}

func TestNames(t *testing.T) {
	e := New(nil, 1)

	value(t, e, "(def zebra 1)")

	seen := map[string]bool{}
	for _, n := range e.Names() {
		seen[n] = true
	}

	for _, n := range []string{"zebra", "count", "deploy", "*aliases*"} {
		if !seen[n] {
			t.Fatalf("expected %s in names", n)
		}
	}
}
