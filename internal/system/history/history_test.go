package history

import (
	"bufio"
	"fmt"
	"io"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	lines := []string{"(def x 1)", "(inc x)"}

	err := Save(func(w io.Writer) (int, error) {
		n := 0

		for _, l := range lines {
			m, err := fmt.Fprintln(w, l)
			n += m

			if err != nil {
				return n, err
			}
		}

		return n, nil
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	var loaded []string

	err = Load(func(r io.Reader) (int, error) {
		s := bufio.NewScanner(r)
		for s.Scan() {
			loaded = append(loaded, s.Text())
		}

		return len(loaded), s.Err()
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if len(loaded) != len(lines) || loaded[0] != lines[0] || loaded[1] != lines[1] {
		t.Fatalf("expected %v, got %v", lines, loaded)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Load(func(r io.Reader) (int, error) {
		t.Fatalf("read called without a history file")

		return 0, nil
	})
	if err == nil {
		t.Fatalf("expected an error for a missing history file")
	}
}
