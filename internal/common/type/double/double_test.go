package double

import (
	"bytes"
	"math"
	"testing"
)

func TestLiteral(t *testing.T) {
	for _, tc := range []struct {
		f float64
		s string
	}{
		{1.5, "1.5"},
		{3, "3.0"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{math.NaN(), "##NaN"},
		{math.Inf(1), "##Inf"},
		{math.Inf(-1), "##-Inf"},
	} {
		d := New(tc.f)
		if d.Literal() != tc.s {
			t.Fatalf("expected %s, got %s", tc.s, d.Literal())
		}

		p, err := Parse(tc.s)
		if err != nil || !p.Equal(d) {
			t.Fatalf("Parse(%s) did not round trip", tc.s)
		}
	}
}

func TestCanonicalNaN(t *testing.T) {
	a := New(math.Float64frombits(0x7FF0000000000001))
	b := New(math.NaN())

	if !bytes.Equal(a.Encode(), b.Encode()) || !a.Equal(b) {
		t.Fatalf("NaNs should share one encoding")
	}
}
