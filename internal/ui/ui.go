// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for cvm.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/interface/literal"
	"github.com/michaelmacinnis/cvm/internal/engine/commands"
	"github.com/michaelmacinnis/cvm/internal/engine/task"
	"github.com/michaelmacinnis/cvm/internal/reader"
	"github.com/michaelmacinnis/cvm/internal/system/history"
	"github.com/peterh/liner"
)

const (
	prompt       = "cvm> "
	continuation = "...> "
)

// Evaluator is the interface for things that want to process commands.
type Evaluator interface {
	Evaluate(form cell.I) (cell.I, error)
	ExecuteScrypt(source string) (*task.T, error)
	Names() []string
}

// T (session) reads lines, passes complete commands to an Evaluator, and
// writes the results.
type T struct {
	e      Evaluator
	err    io.Writer
	out    io.Writer
	r      *reader.T
	scrypt bool
	text   []string
}

type session = T

// New creates a session that writes results to out and errors to err.
func New(e Evaluator, scrypt bool, out, err io.Writer) *session {
	s := &session{e: e, err: err, out: out, scrypt: scrypt}
	s.reset()

	return s
}

// Close releases the session's reader.
func (s *session) Close() {
	if s.r != nil {
		s.r.Close()
		s.r = nil
	}
}

// Complete returns the candidate completions for the word ending at n.
func (s *session) Complete(line string, n int) (h string, cs []string, t string) {
	h, t = line[:n], line[n:]

	i := strings.LastIndexFunc(h, delimiter) + 1
	h, word := h[:i], h[i:]

	if word == "" {
		return h, nil, t
	}

	for _, name := range s.e.Names() {
		if strings.HasPrefix(name, word) {
			cs = append(cs, name)
		}
	}

	sort.Strings(cs)

	return h, cs, t
}

// Line processes a line of input. It returns true if the line completes
// every pending command.
func (s *session) Line(line string) bool {
	if s.scrypt {
		return s.scryptLine(line)
	}

	forms, err := s.r.Scan(line + "\n")
	if err != nil {
		s.failed(err)
		s.reset()

		return true
	}

	for _, f := range forms {
		v, err := s.e.Evaluate(f)
		if err != nil {
			s.failed(err)
		} else {
			s.print(v)
		}
	}

	pending := s.r.Lexer().Pending()
	if len(forms) == 0 && strings.TrimSpace(line) != "" {
		pending = true
	}

	return !pending
}

// Run launches the interactive UI which sends commands to the Evaluator.
func Run(e Evaluator, scrypt bool) {
	cli := liner.NewLiner()
	defer cli.Close()

	s := New(e, scrypt, os.Stdout, os.Stderr)
	defer s.Close()

	_ = history.Load(cli.ReadHistory)

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(s.Complete)

	p := prompt

	for {
		line, err := cli.Prompt(p)

		switch err {
		case nil:
			if strings.TrimSpace(line) != "" {
				cli.AppendHistory(line)
			}

			p = prompt
			if !s.Line(line) {
				p = continuation
			}

			continue
		case liner.ErrPromptAborted:
			s.reset()

			p = prompt

			continue
		}

		os.Stdout.Write([]byte("\n"))

		break
	}

	if err := history.Save(cli.WriteHistory); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

func (s *session) failed(err error) {
	fmt.Fprintln(s.err, err.Error())
}

func (s *session) print(v cell.I) {
	text, _ := literal.Print(v, commands.PrintLimit)

	fmt.Fprintln(s.out, text)
}

func (s *session) reset() {
	s.Close()

	s.text = nil

	if !s.scrypt {
		s.r = reader.New("cvm")
	}
}

// scryptLine gathers lines until braces balance and then executes them
// as a single compilation unit.
func (s *session) scryptLine(line string) bool {
	s.text = append(s.text, line)

	text := strings.Join(s.text, "\n")
	if strings.Count(text, "{") > strings.Count(text, "}") {
		return false
	}

	s.text = nil

	if strings.TrimSpace(text) == "" {
		return true
	}

	ctx, err := s.e.ExecuteScrypt(text)
	if err != nil {
		s.failed(err)
	} else {
		s.print(ctx.Value())
	}

	return true
}

func delimiter(r rune) bool {
	return strings.ContainsRune(" \t()[]{}'\",;", r)
}
