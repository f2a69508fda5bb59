// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for cvm's two surface syntaxes.
//
// The lexer adapts the state function approach used by Go's text/template
// lexer and described in detail in Rob Pike's talk "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/struct/token"
)

// Mode selects the syntax being scanned.
type Mode int

// Syntaxes.
const (
	Lisp Mode = iota
	Scrypt
)

// T holds the state of the scanner.
type T struct {
	expected []string // Completion candidates.

	bytes string      // Buffer being scanned.
	depth int         // Nesting depth of block comments.
	first int         // Index of the current token's first byte.
	index int         // Index of the current byte.
	last  token.Class // Class of the last token emitted.
	mode  Mode        // Syntax being scanned.
	queue []string    // Buffers waiting to be scanned.
	runes int         // Runes scanned on the current line.
	saved action      // Escaped action.
	state action      // Current action.

	source loc.T

	tokens chan *token.T
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string, mode Mode) *T {
	l := &T{
		mode:  mode,
		runes: 1,
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		tokens: make(chan *token.T, 16),
	}

	l.state = l.start()

	return l
}

// Expected returns the list of expected strings. (Command completion).
func (l *T) Expected() []string {
	return l.expected
}

// Pending returns true if scanned text has not yet formed a complete token.
func (l *T) Pending() bool {
	return l.first < len(l.bytes)
}

// Scan passes a text buffer to the lexer for scanning.
// If a buffer is currently being scanned, the new buffer will
// be appended to the list of buffers waiting to be scanned.
func (l *T) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if no token is available.
func (l *T) Token() *token.T {
	for {
		l.gather()
		if len(l.bytes) == 0 {
			return nil
		}

		select {
		case t := <-l.tokens:
			return t
		default:
			state := l.state(l)
			if state != nil {
				l.state = state
			} else {
				close(l.tokens)
			}
		}
	}
}

type action func(*T) action

const eof = -1

func (l *T) accept(r token.Class, w int) {
	if w == 0 {
		return
	}

	if r == '\n' {
		l.source.Line++
		l.runes = 1
	} else {
		l.runes++
	}

	l.index += w
}

func (l *T) emit(c token.Class, v string) {
	l.last = c
	l.tokens <- token.New(c, v, l.source)
	l.skip()
}

func (l *T) escape(escaped, a action) action {
	l.saved = escaped

	return a
}

func (l *T) gather() {
	if len(l.queue) == 0 {
		return
	}

	length := len(l.bytes)
	bytes := strings.Join(l.queue, "")

	if length > 0 && l.first < length {
		// Prepend leftover to new bytes.
		bytes = l.bytes[l.first:] + bytes
	}

	l.queue = nil
	l.bytes = bytes
	l.index -= l.first
	l.first = 0
	l.tokens = make(chan *token.T, 16)
}

func (l *T) next() token.Class {
	r, w := l.peek()
	l.accept(r, w)

	return r
}

func (l *T) peek() (token.Class, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return token.Class(r), w
}

func (l *T) resume() action {
	resumed := l.saved
	l.saved = nil

	return resumed
}

func (l *T) skip() {
	l.source.Char = l.runes
	l.first = l.index
}

func (l *T) start() action {
	if l.mode == Scrypt {
		return skipSpacing
	}

	return skipWhitespace
}

// Shared states.

func escapeNextCharacter(l *T) action {
	r := l.next()

	if r == eof {
		return nil
	}

	return l.resume()
}

func scanDoubleQuoted(l *T) action {
	for {
		c := l.next()

		switch c {
		case eof:
			return nil
		case '"':
			l.emit(token.DoubleQuoted, l.Text())

			return l.start()
		case '\\':
			return l.escape(scanDoubleQuoted, escapeNextCharacter)
		}
	}
}

// Lisp states.

func afterBar(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case ')':
		l.accept(r, w)
		l.emit(token.MetaClose, l.Text())

		return skipWhitespace
	}

	return scanAtom
}

func afterOpenParen(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '|':
		l.accept(r, w)
		l.emit(token.MetaOpen, l.Text())
	default:
		l.emit('(', l.Text())
	}

	return skipWhitespace
}

func afterHash(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '{':
		l.accept(r, w)
		l.emit(token.SetOpen, l.Text())

		return skipWhitespace
	}

	return scanAtom
}

func scanAtom(l *T) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			return nil
		case '\t', '\n', '\r', ' ', '"', '(', ')', ',', ';', '[', ']', '{', '}':
			l.emit(token.Atom, l.Text())

			return skipWhitespace
		case '|':
			if l.index+1 >= len(l.bytes) {
				return nil
			}

			if l.bytes[l.index+1] == ')' {
				l.emit(token.Atom, l.Text())

				return skipWhitespace
			}

			l.accept(r, w)
		case '\\':
			l.accept(r, w)

			return l.escape(scanAtom, escapeNextCharacter)
		default:
			l.accept(r, w)
		}
	}
}

func skipComment(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\n':
			l.skip()

			return skipWhitespace
		}
	}
}

func skipWhitespace(l *T) action {
	l.expected = []string{}

	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\t', '\n', '\r', ' ', ',':
			l.skip()

			continue
		case ')', '[', ']', '{', '}':
			l.emit(r, l.Text())

			return skipWhitespace
		case '(':
			return afterOpenParen
		case '|':
			return afterBar
		case '\'':
			l.emit(token.Quote, l.Text())

			return skipWhitespace
		case '^':
			l.emit(token.Meta, l.Text())

			return skipWhitespace
		case '"':
			return scanDoubleQuoted
		case '#':
			return afterHash
		case ';':
			return skipComment
		default:
			return scanAtom
		}
	}
}

// Scrypt states.

func afterAngle(l *T) action {
	r, w := l.peek()

	l.expected = []string{" ", "= "}

	switch r {
	case eof:
		return nil
	case '=':
		l.accept(r, w)
	}

	l.emit(token.Operator, l.Text())

	return skipSpacing
}

func afterEquals(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '=':
		l.accept(r, w)
		l.emit(token.Operator, l.Text())
	default:
		l.emit('=', l.Text())
	}

	return skipSpacing
}

func afterMinus(l *T) action {
	r, w := l.peek()

	switch {
	case r == eof:
		return nil
	case r == '>':
		l.accept(r, w)
		l.emit(token.Arrow, l.Text())
	case isDigit(r) && !l.afterValue():
		return scanIdentifier
	default:
		l.emit(token.Operator, l.Text())
	}

	return skipSpacing
}

func afterScryptHash(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '{':
		l.accept(r, w)
		l.emit(token.SetOpen, l.Text())

		return skipSpacing
	}

	return scanIdentifier
}

func afterSlash(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '/':
		l.accept(r, w)

		return skipLineComment
	case '*':
		l.accept(r, w)
		l.depth = 1

		return skipBlockComment
	}

	l.emit(token.Operator, l.Text())

	return skipSpacing
}

func scanIdentifier(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case isIdentifier(r):
			l.accept(r, w)
		case (r == '-' || r == '+') && l.exponent():
			l.accept(r, w)
		default:
			l.emit(token.Atom, l.Text())

			return skipSpacing
		}
	}
}

func skipBlockComment(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '*':
			if n, w := l.peek(); n == '/' {
				l.accept(n, w)
				l.depth--
			}
		case '/':
			if n, w := l.peek(); n == '*' {
				l.accept(n, w)
				l.depth++
			}
		}

		if l.depth == 0 {
			l.skip()

			return skipSpacing
		}
	}
}

func skipLineComment(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\n':
			l.skip()

			return skipSpacing
		}
	}
}

func skipSpacing(l *T) action {
	l.expected = []string{}

	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\t', '\n', '\r', '\f', ' ':
			l.skip()

			continue
		case '(', ')', '[', ']', '{', '}', ',', ';':
			l.emit(r, l.Text())

			return skipSpacing
		case '+', '*':
			l.emit(token.Operator, l.Text())

			return skipSpacing
		case '-':
			return afterMinus
		case '/':
			return afterSlash
		case '<', '>':
			return afterAngle
		case '=':
			return afterEquals
		case '"':
			return scanDoubleQuoted
		case '#':
			return afterScryptHash
		default:
			if isIdentifier(r) || r == ':' {
				return scanIdentifier
			}

			l.emit(token.Error, l.Text())

			return skipSpacing
		}
	}
}

// Helper functions.

// afterValue returns true if the last token could end an operand, in which
// case a following minus sign is subtraction rather than a negative number.
func (l *T) afterValue() bool {
	switch l.last {
	case token.Atom, token.DoubleQuoted, ')', ']', '}':
		return true
	}

	return false
}

// exponent returns true if the current text is a number ending in e or E,
// or the start of ##-Inf.
func (l *T) exponent() bool {
	if l.Text() == "##" {
		return true
	}

	s := strings.TrimPrefix(l.Text(), "-")
	if s == "" || !isDigit(token.Class(s[0])) {
		return false
	}

	c := s[len(s)-1]

	return (c == 'e' || c == 'E') && !strings.HasPrefix(s, "0x")
}

func isDigit(r token.Class) bool {
	return r >= '0' && r <= '9'
}

func isIdentifier(r token.Class) bool {
	switch r {
	case '_', '?', '!', '.', '$', '#':
		return true
	}

	return unicode.IsLetter(rune(r)) || unicode.IsDigit(rune(r))
}
