package options

import (
	"testing"

	"github.com/docopt/docopt-go"
)

func check(t *testing.T, argv []string, tty bool) {
	t.Helper()

	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	if err := parse(p, argv, tty); err != nil {
		t.Fatalf("%v: unexpected error %v", argv, err)
	}
}

func fails(t *testing.T, argv []string) {
	t.Helper()

	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	if err := parse(p, argv, false); err == nil {
		t.Fatalf("%v: expected an error", argv)
	}
}

func TestInteractive(t *testing.T) {
	check(t, []string{}, true)

	if !Interactive() || Scrypt() || Script() != "" || Command() != "" {
		t.Fatalf("expected interactive Lisp session")
	}

	check(t, []string{"-i"}, true)

	if Interactive() {
		t.Fatalf("expected -i to disable interactive mode")
	}

	check(t, []string{}, false)

	if Interactive() {
		t.Fatalf("expected non-interactive mode without a terminal")
	}
}

func TestScript(t *testing.T) {
	check(t, []string{"-s", "-j", "5000", "--schedule=costs.yaml", "main.scrypt"}, true)

	if Interactive() {
		t.Fatalf("expected non-interactive mode for a script")
	}

	if Script() != "main.scrypt" || !Scrypt() || Juice() != 5000 || Schedule() != "costs.yaml" {
		t.Fatalf("unexpected options %q %v %d %q", Script(), Scrypt(), Juice(), Schedule())
	}
}

func TestCommand(t *testing.T) {
	check(t, []string{"-u", "3", "-c", "(+ 1 2)"}, true)

	if Command() != "(+ 1 2)" || Users() != 3 || Juice() != 0 || Scrypt() {
		t.Fatalf("unexpected options %q %d %d %v", Command(), Users(), Juice(), Scrypt())
	}
}

func TestInvalid(t *testing.T) {
	fails(t, []string{"-j", "lots"})
	fails(t, []string{"-j", "0"})
	fails(t, []string{"-u", "0"})
	fails(t, []string{"-x"})
	fails(t, []string{"a", "b"})
}
