package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/engine"
)

func newSession(scrypt bool) (*T, *bytes.Buffer, *bytes.Buffer) {
	var out, err bytes.Buffer

	return New(engine.New(nil, 1), scrypt, &out, &err), &out, &err
}

func TestLisp(t *testing.T) {
	s, out, errs := newSession(false)
	defer s.Close()

	for _, line := range []string{"(def x 2)", "(* x 21) [x"} {
		s.Line(line)
	}

	if !s.Line("x]") {
		t.Fatalf("expected the vector to be complete")
	}

	if actual := out.String(); actual != "2\n42\n[2 2]\n" {
		t.Fatalf("unexpected output %q", actual)
	}

	if errs.Len() != 0 {
		t.Fatalf("unexpected errors %q", errs.String())
	}
}

func TestLispPending(t *testing.T) {
	s, out, _ := newSession(false)
	defer s.Close()

	if s.Line("(+ 1") {
		t.Fatalf("expected more input to be needed")
	}

	if !s.Line("2)") {
		t.Fatalf("expected the form to be complete")
	}

	if out.String() != "3\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLispErrors(t *testing.T) {
	s, out, errs := newSession(false)
	defer s.Close()

	s.Line("(undefined)")
	s.Line(")")
	s.Line("(inc 1)")

	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	if n := strings.Count(errs.String(), "\n"); n != 2 {
		t.Fatalf("expected 2 errors, got %q", errs.String())
	}
}

func TestScrypt(t *testing.T) {
	s, out, errs := newSession(true)
	defer s.Close()

	for _, line := range []string{"defn twice(n) {", "n * 2;"} {
		if s.Line(line) {
			t.Fatalf("expected more input after %q", line)
		}
	}

	for _, line := range []string{"}", "twice(21);", ""} {
		if !s.Line(line) {
			t.Fatalf("expected %q to complete the command", line)
		}
	}

	if !strings.HasSuffix(out.String(), "42\n") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if errs.Len() != 0 {
		t.Fatalf("unexpected errors %q", errs.String())
	}
}

func TestComplete(t *testing.T) {
	s, _, _ := newSession(false)
	defer s.Close()

	s.Line("(def counter 1)")

	h, cs, tail := s.Complete("(inc cou)", 8)
	if h != "(inc " || tail != ")" {
		t.Fatalf("unexpected head %q and tail %q", h, tail)
	}

	seen := map[string]bool{}
	for _, c := range cs {
		seen[c] = true
	}

	if !seen["count"] || !seen["counter"] || seen["inc"] {
		t.Fatalf("unexpected completions %v", cs)
	}

	if _, cs, _ := s.Complete("(inc ", 5); len(cs) != 0 {
		t.Fatalf("expected no completions, got %v", cs)
	}
}
