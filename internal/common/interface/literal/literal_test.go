package literal

import (
	"strings"
	"testing"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
)

type text string

func (t text) Encode() []byte {
	return []byte(t)
}

func (t text) Equal(c cell.I) bool {
	o, ok := c.(text)

	return ok && o == t
}

func (t text) Literal() string {
	return string(t)
}

func (t text) Name() string {
	return "text"
}

func TestPrintComplete(t *testing.T) {
	s, ok := Print(text("hello"), 10)
	if !ok || s != "hello" {
		t.Fatalf("Expected complete print; got %q %v", s, ok)
	}
}

func TestPrintTruncated(t *testing.T) {
	s, ok := Print(text("héllo world"), 2)
	if ok {
		t.Fatalf("Expected truncation of %q", s)
	}

	if s != "h"+Exceeded {
		t.Fatalf("Expected truncation at rune boundary; got %q", s)
	}

	if !strings.HasSuffix(s, Exceeded) {
		t.Fatalf("truncated text %q is not marked", s)
	}
}
