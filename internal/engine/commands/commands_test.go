package commands

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/pair"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/reader"
)

// call reads s as a list and applies the primitive named by its head to
// the remaining elements, unevaluated.
func call(t *testing.T, s string) cell.I {
	t.Helper()

	c, err := reader.Read(s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}

	n := sym.To(pair.Car(c)).String()

	f, ok := Lookup(n)
	if !ok {
		t.Fatalf("%s: no primitive called %s", s, n)
	}

	return f(pair.Cdr(c))
}

func check(t *testing.T, s, expected string) {
	t.Helper()

	actual := literal.String(call(t, s))
	if actual != expected {
		t.Fatalf("%s: expected %s, got %s", s, expected, actual)
	}
}

func fails(t *testing.T, s, kind string) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()

		e, ok := r.(*errsys.T)
		if !ok || e.Kind() != kind {
			t.Fatalf("%s: expected %s error, got %v", s, kind, r)
		}
	}()

	call(t, s)
}

func TestArithmetic(t *testing.T) {
	for _, tc := range [][2]string{
		{"(+)", "0"},
		{"(+ 1 2 3)", "6"},
		{"(+ 1 2.5)", "3.5"},
		{"(- 5)", "-5"},
		{"(- 10 3 2)", "5"},
		{"(*)", "1"},
		{"(* 2 3 4)", "24"},
		{"(/ 4)", "0.25"},
		{"(/ 1 2)", "0.5"},
		{"(/ 1 0)", "##Inf"},
		{"(inc 41)", "42"},
		{"(dec 43)", "42"},
		{"(+ 9223372036854775807 1)", "-9223372036854775808"},
	} {
		check(t, tc[0], tc[1])
	}

	fails(t, `(+ 1 "2")`, errsys.TYPE)
	fails(t, "(inc 1.5)", errsys.TYPE)
	fails(t, "(inc)", errsys.ARITY)
	fails(t, "(-)", errsys.ARITY)
}

func TestRelational(t *testing.T) {
	for _, tc := range [][2]string{
		{"(= 1 1)", "true"},
		{"(= 1 1.0)", "false"},
		{"(== 1 1.0)", "true"},
		{"(= [1 2] [1 2] [1 2])", "true"},
		{"(< 1 2 3)", "true"},
		{"(< 1 3 2)", "false"},
		{"(<= 1 1 2)", "true"},
		{"(> 3 2 1)", "true"},
		{"(>= 1 2)", "false"},
		{"(< 1 ##NaN)", "false"},
		{"(>= ##NaN ##NaN)", "false"},
		{"(not nil)", "true"},
		{"(not 0)", "false"},
	} {
		check(t, tc[0], tc[1])
	}

	fails(t, "(< 1 :a)", errsys.TYPE)
	fails(t, "(< 2 1 :a)", errsys.TYPE)
}

func TestCollections(t *testing.T) {
	for _, tc := range [][2]string{
		{"(assoc {} :a 1)", "{:a 1}"},
		{"(assoc nil :a 1)", "{:a 1}"},
		{"(assoc [1 2] 0 3)", "[3 2]"},
		{"(count {:a 1 :b 2})", "2"},
		{"(conj [1] 2 3)", "[1 2 3]"},
		{"(conj nil 1)", "[1]"},
		{"(conj (1) 2)", "(2 1)"},
		{"(conj #{} 1)", "#{1}"},
		{"(conj {} [:a 1])", "{:a 1}"},
		{"(contains-key? {:a 1} :a)", "true"},
		{"(contains-key? [1 2] 2)", "false"},
		{"(contains-key? #{1} 1)", "true"},
		{"(count nil)", "0"},
		{`(count "abc")`, "3"},
		{"(dissoc {:a 1 :b 2} :a)", "{:b 2}"},
		{"(empty? [])", "true"},
		{"(empty? {:a 1})", "false"},
		{"(get {:a 1} :a)", "1"},
		{"(get {:a 1} :b)", "nil"},
		{"(get {:a 1} :b 2)", "2"},
		{"(get [1 2] 1)", "2"},
		{"(get [1 2] 2 :x)", ":x"},
		{"(get #{1} 1)", "1"},
		{"(get nil :a)", "nil"},
		{"(hash-map :a 1)", "{:a 1}"},
		{"(hash-set 1 1)", "#{1}"},
		{"(keys {:a 1})", "[:a]"},
		{"(vals {:a 1})", "[1]"},
		{"(nth [1 2 3] 2)", "3"},
		{"(nth (1 2 3) 1)", "2"},
		{"(vector 1 2)", "[1 2]"},
	} {
		check(t, tc[0], tc[1])
	}

	size, _ := Lookup("count")
	if n := literal.String(size(pair.Cons(call(t, "(assoc {} :a 1 :b 2)"), pair.Null))); n != "2" {
		t.Fatalf("expected 2 entries after assoc, got %s", n)
	}

	fails(t, "(assoc {} :a)", errsys.ARITY)
	fails(t, "(assoc {} :a 1 :b)", errsys.ARITY)
	fails(t, "(assoc 1 :a 1)", errsys.TYPE)
	fails(t, "(hash-map :a)", errsys.ARGUMENT)
	fails(t, "(nth [1] 1)", errsys.INDEX)
	fails(t, "(nth (1) 1)", errsys.INDEX)
	fails(t, "(get 1 1)", errsys.TYPE)
}

func TestLists(t *testing.T) {
	for _, tc := range [][2]string{
		{"(concat [1] (2) [3])", "[1 2 3]"},
		{"(concat nil (1) [2])", "(1 2)"},
		{"(concat)", "nil"},
		{"(cons 1 nil)", "(1)"},
		{"(cons 1 (2))", "(1 2)"},
		{"(cons 1 [2])", "(1 2)"},
		{"(first (1 2))", "1"},
		{"(first [])", "nil"},
		{"(first ())", "nil"},
		{"(first nil)", "nil"},
		{"(list 1 2)", "(1 2)"},
		{"(rest (1 2))", "(2)"},
		{"(rest [1 2 3])", "[2 3]"},
		{"(rest [])", "[]"},
		{"(rest nil)", "()"},
	} {
		check(t, tc[0], tc[1])
	}

	fails(t, "(cons 1 2)", errsys.TYPE)
	fails(t, "(first 1)", errsys.TYPE)
	fails(t, "(concat [1] 2)", errsys.TYPE)
}

func TestStrings(t *testing.T) {
	for _, tc := range [][2]string{
		{`(str "a" "b")`, `"ab"`},
		{`(str "a" 1 :b nil)`, `"a1:bnil"`},
		{"(str)", `""`},
		{"(name :a)", `"a"`},
		{`(name "a")`, `"a"`},
		{`(keyword "a")`, ":a"},
		{`(symbol "a")`, "a"},
		{`(print "a")`, `"\"a\""`},
		{"(print [1 :a])", `"[1 :a]"`},
	} {
		check(t, tc[0], tc[1])
	}

	fails(t, "(name 1)", errsys.TYPE)
	fails(t, `(symbol "")`, errsys.ARGUMENT)
}

func TestPredicates(t *testing.T) {
	for _, tc := range [][2]string{
		{"(nil? nil)", "true"},
		{"(nil? false)", "false"},
		{"(vector? [])", "true"},
		{"(map? {})", "true"},
		{"(map? #{})", "false"},
		{"(list? ())", "true"},
		{"(set? #{})", "true"},
		{"(long? 1)", "true"},
		{"(long? 1.0)", "false"},
		{`(str? "")`, "true"},
		{"(fn? (|primitive +|))", "true"},
		{"(fn? +)", "false"},
	} {
		check(t, tc[0], tc[1])
	}
}

func TestHash(t *testing.T) {
	h := literal.String(call(t, "(hash [1 2])"))
	if len(h) != 66 {
		t.Fatalf("expected a 32 byte blob, got %s", h)
	}

	if h != literal.String(call(t, "(hash [1 2])")) {
		t.Fatalf("hash is not deterministic")
	}

	if h == literal.String(call(t, "(hash [2 1])")) {
		t.Fatalf("different values have the same hash")
	}

	check(t, "(encoding nil)", "0x00")
}

func TestNames(t *testing.T) {
	ns := Names()
	if len(ns) != len(Functions()) {
		t.Fatalf("expected %d names, got %d", len(Functions()), len(ns))
	}

	for i := 1; i < len(ns); i++ {
		if ns[i-1] >= ns[i] {
			t.Fatalf("names not sorted: %s >= %s", ns[i-1], ns[i])
		}
	}
}
