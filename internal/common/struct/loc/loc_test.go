package loc

import "testing"

func TestString(t *testing.T) {
	for _, tc := range []struct {
		l        T
		expected string
	}{
		{T{Name: "main.cvm", Line: 2, Char: 5}, "main.cvm:2:5"},
		{T{Line: 1, Char: 1}, "1:1"},
	} {
		if actual := tc.l.String(); actual != tc.expected {
			t.Fatalf("expected %s, got %s", tc.expected, actual)
		}
	}
}
