package juice

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.check() != nil {
		t.Fatalf("Expected the default schedule to be valid")
	}

	if s.Limit <= 0 || s.Depth <= 0 {
		t.Fatalf("Expected positive limits; got %d %d", s.Limit, s.Depth)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte("lookup: 3\nlimit: 500\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Lookup != 3 || s.Limit != 500 {
		t.Fatalf("Expected lookup 3 and limit 500; got %d %d", s.Lookup, s.Limit)
	}

	if s.Def != Default().Def {
		t.Fatalf("Expected unspecified costs to keep their defaults")
	}

	for _, v := range []string{"def: -1\n", "depth: 0\n", "limit: [\n"} {
		_, err = Parse([]byte(v))
		if err == nil {
			t.Fatalf("Expected error parsing %q", v)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")

	err := os.WriteFile(path, []byte("apply: 7\n"), 0o600)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s, err := Load(path)
	if err != nil || s.Apply != 7 {
		t.Fatalf("Expected apply 7; got %v %v", s, err)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("Expected error loading a missing file")
	}
}
