package set

import (
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
)

func TestMembership(t *testing.T) {
	s := New(num.Int(1), num.Int(2), num.Int(3))

	if s.Count() != 3 || !s.Contains(num.Int(2)) || s.Contains(num.Int(4)) {
		t.Fatalf("unexpected membership for %s", s.Literal())
	}

	if s.Conj(num.Int(2)) != s {
		t.Fatalf("Conj of a member should return the same set")
	}

	if s.Disj(num.Int(9)) != s {
		t.Fatalf("Disj of a non-member should return the same set")
	}

	if !s.Disj(num.Int(2)).Equal(New(num.Int(3), num.Int(1))) {
		t.Fatalf("Disj did not remove the member")
	}
}

func TestEmpty(t *testing.T) {
	if Empty.Literal() != "#{}" {
		t.Fatalf("unexpected literal %s", Empty.Literal())
	}

	if New(kw.New("a")).Disj(kw.New("a")).Count() != 0 {
		t.Fatalf("expected an empty set")
	}

	if !New(kw.New("a")).Disj(kw.New("a")).Equal(Empty) {
		t.Fatalf("empty sets should be equal")
	}
}
