// Released under an MIT license. See LICENSE.

// Package options parses the cvm command line.
package options

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is printed by -v.
const Version = "cvm 0.1.0"

//nolint:gochecknoglobals
var (
	command     string
	interactive bool
	juice       int64
	schedule    string
	script      string
	scrypt      bool
	users       = 1
	usage       = `cvm

Usage:
  cvm [-s] [-j JUICE] [-u USERS] [--schedule=FILE] SCRIPT
  cvm [-s] [-j JUICE] [-u USERS] [--schedule=FILE] -c COMMAND
  cvm [-is] [-j JUICE] [-u USERS] [--schedule=FILE]
  cvm -h
  cvm -v

Arguments:
  SCRIPT  Path to a cvm script. Scripts ending in .scrypt are Scrypt.

Options:
  -c, --command=COMMAND  Run the specified command.
  -i, --interactive      Disable interactive mode.
  -j, --juice=JUICE      Juice available to each transaction.
  -s, --scrypt           Read commands as Scrypt.
  -u, --users=USERS      Number of user accounts [default: 1].
      --schedule=FILE    Load the juice schedule from a YAML file.
  -h, --help             Display this help.
  -v, --version          Print cvm version.

If cvm's stdin is a TTY, and cvm was invoked with no script or command,
interactive mode is enabled. Otherwise, commands are read from stdin.
`
)

// Command returns the command passed with -c.
func Command() string {
	return command
}

// Interactive returns true if commands should be read with a line editor.
func Interactive() bool {
	return interactive
}

// Juice returns the juice limit passed with -j or 0 if there was none.
func Juice() int64 {
	return juice
}

// Parse parses the process's command line. It exits on -h, -v, or a usage error.
func Parse() {
	p := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}

	err := parse(p, os.Args[1:], isatty.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// Schedule returns the path of the juice schedule file, if any.
func Schedule() string {
	return schedule
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

// Scrypt returns true if commands should be read as Scrypt.
func Scrypt() bool {
	return scrypt
}

// Users returns the number of user accounts to create.
func Users() int {
	return users
}

func parse(p *docopt.Parser, argv []string, tty bool) error {
	opts, err := p.ParseArgs(usage, argv, Version)
	if err != nil {
		return err
	}

	command, _ = opts.String("--command")
	schedule, _ = opts.String("--schedule")
	script, _ = opts.String("SCRIPT")
	scrypt, _ = opts.Bool("--scrypt")

	juice = 0
	if s, _ := opts.String("--juice"); s != "" {
		juice, err = strconv.ParseInt(s, 10, 64)
		if err != nil || juice <= 0 {
			return fmt.Errorf("invalid juice limit: %s", s)
		}
	}

	users = 1
	if s, _ := opts.String("--users"); s != "" {
		users, err = strconv.Atoi(s)
		if err != nil || users < 1 {
			return fmt.Errorf("invalid number of users: %s", s)
		}
	}

	interactive = script == "" && command == "" && tty

	invert, _ := opts.Bool("--interactive")
	interactive = interactive != invert

	return nil
}
