// Released under an MIT license. See LICENSE.

/*
Cvm is a deterministic, metered virtual machine for a small Lisp and
for Scrypt, an infix syntax that compiles to the same forms.

Each top-level form is a transaction against a persistent,
content-addressed state. A transaction that fails leaves the state
unchanged. Every step of evaluation consumes juice and a transaction
that runs out of juice fails.

Cvm is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/engine"
	"github.com/michaelmacinnis/cvm/internal/engine/commands"
	"github.com/michaelmacinnis/cvm/internal/engine/juice"
	"github.com/michaelmacinnis/cvm/internal/engine/task"
	"github.com/michaelmacinnis/cvm/internal/system/options"
	"github.com/michaelmacinnis/cvm/internal/ui"
)

func main() {
	options.Parse()

	s, err := schedule(options.Schedule(), options.Juice())
	if err != nil {
		fatal(err)
	}

	e := engine.New(s, options.Users())

	switch {
	case options.Interactive():
		ui.Run(e, options.Scrypt())
	case options.Command() != "":
		os.Exit(report(execute(e, options.Command(), options.Scrypt())))
	case options.Script() != "":
		os.Exit(report(e.ExecuteFile(options.Script())))
	default:
		os.Exit(stdin(e, os.Stdin, options.Scrypt()))
	}
}

func execute(e *engine.T, source string, scrypt bool) (*task.T, error) {
	if scrypt {
		return e.ExecuteScrypt(source)
	}

	return e.Execute(source)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

// report prints the result of an execution and returns the exit status.
func report(ctx *task.T, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		return 1
	}

	if ctx != nil {
		text, _ := literal.Print(ctx.Value(), commands.PrintLimit)
		fmt.Println(text)
	}

	return 0
}

func schedule(path string, limit int64) (*juice.Schedule, error) {
	s := juice.Default()

	if path != "" {
		var err error

		s, err = juice.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 {
		s.Limit = limit
	}

	return s, nil
}

// stdin reads all of r and executes it.
func stdin(e *engine.T, r io.Reader, scrypt bool) int {
	b, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		return 1
	}

	return report(execute(e, string(b), scrypt))
}
