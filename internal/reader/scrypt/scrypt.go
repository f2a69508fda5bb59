// Released under an MIT license. See LICENSE.

// Package scrypt parses cvm's infix syntax into the same forms produced by
// the Lisp reader.
//
// The grammar is a parsing expression grammar. Each rule either matches and
// advances over the token slice or fails and leaves the position unchanged.
package scrypt

import (
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/loc"
	"github.com/michaelmacinnis/cvm/internal/common/struct/token"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/list"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/set"
	"github.com/michaelmacinnis/cvm/internal/common/type/str"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/syntax"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
	"github.com/michaelmacinnis/cvm/internal/reader/lexer"
	"github.com/michaelmacinnis/cvm/internal/reader/parser"
)

type rule func() (cell.I, bool)

// T holds the state of the parser.
type T struct {
	end    loc.T      // Location just past the last token.
	failed int        // Furthest position at which a rule failed.
	pos    int        // Current position.
	rule   string     // Rule that failed at the furthest position.
	tokens []*token.T // Tokens being parsed.
}

var reserved = map[string]bool{
	"def":  true,
	"defn": true,
	"do":   true,
	"else": true,
	"fn":   true,
	"if":   true,
	"when": true,
}

var operators = map[string]string{
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"==": "=",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

// Parse reads the compilation unit in text. The name labels source locations.
func Parse(name, text string) (cell.I, error) {
	l := lexer.New(name, lexer.Scrypt)
	l.Scan(text)
	l.Scan("\n")

	p := &T{}

	for t := l.Token(); t != nil; t = l.Token() {
		if t.Is(token.Error) {
			return nil, errsys.New(errsys.SYNTAX, "%s: unexpected character %q", t.Source(), t.Value())
		}

		p.tokens = append(p.tokens, t)
	}

	if l.Pending() {
		return nil, errsys.New(errsys.SYNTAX, "%s: unterminated %q", name, l.Text())
	}

	p.end = loc.T{Name: name}
	if n := len(p.tokens); n > 0 {
		p.end = *p.tokens[n-1].Source()
		p.end.Char += len(p.end.Text)
	}

	return p.unit()
}

// <unit> ::= <expression> EOI | <statement> EOI | <statement>* EOI .
func (p *T) unit() (cell.I, error) {
	for _, r := range []rule{p.expression, p.statement} {
		p.pos = 0

		c, ok := r()
		if ok && p.done() {
			return c, nil
		}
	}

	p.pos = 0

	s := p.source()
	ss := p.statements()

	if !p.done() {
		p.expected("statement")

		where := &p.end
		if p.failed < len(p.tokens) {
			where = p.tokens[p.failed].Source()
		}

		return nil, errsys.New(errsys.SYNTAX, "%s: expected %s", where, p.rule)
	}

	return p.form(s, append([]cell.I{p.symbol(s, "do")}, ss...)...), nil
}

// Statements.

func (p *T) statement() (cell.I, bool) {
	return p.first(
		p.ifStatement,
		p.whenStatement,
		p.defStatement,
		p.defnStatement,
		p.blockStatement,
		p.emptyStatement,
		p.expressionStatement,
	)
}

func (p *T) statements() []cell.I {
	var ss []cell.I

	for {
		s, ok := p.statement()
		if !ok {
			return ss
		}

		ss = append(ss, s)
	}
}

// <if> ::= "if" '(' <expression> ')' <statement> ["else" <statement>] .
func (p *T) ifStatement() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("if") {
		return p.reset(start, "if")
	}

	test, ok := p.parenthesized()
	if !ok {
		return p.reset(start, "if")
	}

	then, ok := p.statement()
	if !ok {
		return p.reset(start, "if")
	}

	fs := []cell.I{p.symbol(s, "cond"), test, then}

	if p.word("else") {
		otherwise, ok := p.statement()
		if !ok {
			return p.reset(start, "else")
		}

		fs = append(fs, otherwise)
	}

	return p.form(s, fs...), true
}

// <when> ::= "when" '(' <expression> ')' <statement> .
func (p *T) whenStatement() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("when") {
		return p.reset(start, "when")
	}

	test, ok := p.parenthesized()
	if !ok {
		return p.reset(start, "when")
	}

	body, ok := p.statement()
	if !ok {
		return p.reset(start, "when")
	}

	return p.form(s, p.symbol(s, "cond"), test, body), true
}

// <def> ::= "def" <symbol> '=' <expression> ';' .
func (p *T) defStatement() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("def") {
		return p.reset(start, "def")
	}

	name, ok := p.name()
	if !ok || !p.punctuation('=') {
		return p.reset(start, "def")
	}

	value, ok := p.expression()
	if !ok || !p.punctuation(';') {
		return p.reset(start, "def")
	}

	return p.form(s, p.symbol(s, "def"), name, value), true
}

// <defn> ::= "defn" <symbol> '(' <params> ')' '{' <statement>* '}' .
func (p *T) defnStatement() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("defn") {
		return p.reset(start, "defn")
	}

	name, ok := p.name()
	if !ok {
		return p.reset(start, "defn")
	}

	fn, ok := p.function(s)
	if !ok {
		return p.reset(start, "defn")
	}

	return p.form(s, p.symbol(s, "def"), name, fn), true
}

// <block> ::= '{' <statement>* '}' !';' .
func (p *T) blockStatement() (cell.I, bool) {
	start := p.pos
	s := p.source()

	ss, ok := p.braced()
	if !ok || p.peek().Is(';') {
		return p.reset(start, "block")
	}

	return p.block(s, ss), true
}

// <empty> ::= ';' .
func (p *T) emptyStatement() (cell.I, bool) {
	s := p.source()

	if !p.punctuation(';') {
		return p.reset(p.pos, "';'")
	}

	return p.wrap(null.Nil, s), true
}

// <expression-statement> ::= <expression> ';' .
func (p *T) expressionStatement() (cell.I, bool) {
	start := p.pos

	e, ok := p.expression()
	if !ok || !p.punctuation(';') {
		return p.reset(start, "';'")
	}

	return e, true
}

// Expressions.

// <expression> ::= <primary> [<operator> <expression>] .
func (p *T) expression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	e, ok := p.first(
		p.doExpression,
		p.callExpression,
		p.fnExpression,
		p.lambdaExpression,
		p.parenthesized,
		p.literal,
		p.vectorExpression,
		p.mapExpression,
		p.setExpression,
	)
	if !ok {
		return p.reset(start, "expression")
	}

	t := p.peek()
	if !t.Is(token.Operator) {
		return e, true
	}

	op := p.pos
	p.pos++

	rhs, ok := p.expression()
	if !ok {
		p.pos = op

		return e, true
	}

	f := p.wrap(sym.New(operators[t.Value()]), t.Source())

	return p.form(s, f, e, rhs), true
}

// <do> ::= "do" '{' <statement>* '}' .
func (p *T) doExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("do") {
		return p.reset(start, "do")
	}

	ss, ok := p.braced()
	if !ok {
		return p.reset(start, "do")
	}

	return p.block(s, ss), true
}

// <call> ::= (<fn> | <vector> | <map> | <set> | <symbol>) '(' <arguments> ')' .
func (p *T) callExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	f, ok := p.first(
		p.fnExpression,
		p.vectorExpression,
		p.mapExpression,
		p.setExpression,
		p.name,
	)
	if !ok || !p.punctuation('(') {
		return p.reset(start, "call")
	}

	args, ok := p.separated(p.expression, ')')
	if !ok {
		return p.reset(start, "call")
	}

	return p.form(s, append([]cell.I{f}, args...)...), true
}

// <fn> ::= "fn" '(' <params> ')' '{' <statement>* '}' .
func (p *T) fnExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.word("fn") {
		return p.reset(start, "fn")
	}

	fn, ok := p.function(s)
	if !ok {
		return p.reset(start, "fn")
	}

	return fn, true
}

// <lambda> ::= '(' <params> ')' "->" <expression> .
func (p *T) lambdaExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.punctuation('(') {
		return p.reset(start, "lambda")
	}

	params, ok := p.separated(p.name, ')')
	if !ok || !p.peek().Is(token.Arrow) {
		return p.reset(start, "lambda")
	}

	p.pos++

	body, ok := p.expression()
	if !ok {
		return p.reset(start, "lambda")
	}

	return p.form(s, p.symbol(s, "fn"), p.wrap(vector.New(params...), s), body), true
}

// <parenthesized> ::= '(' <expression> ')' .
func (p *T) parenthesized() (cell.I, bool) {
	start := p.pos

	if !p.punctuation('(') {
		return p.reset(start, "'('")
	}

	e, ok := p.expression()
	if !ok || !p.punctuation(')') {
		return p.reset(start, "')'")
	}

	return e, true
}

// <literal> ::= DoubleQuoted | Atom .
// Reserved words are not literals.
func (p *T) literal() (cell.I, bool) {
	t := p.peek()

	switch {
	case t.Is(token.DoubleQuoted):
		v := t.Value()

		s, err := str.Unquote(v[1 : len(v)-1])
		if err != nil {
			return p.reset(p.pos, "string")
		}

		p.pos++

		return p.wrap(str.New(s), t.Source()), true
	case t.Is(token.Atom) && !reserved[t.Value()]:
		c, err := parser.Atom(t.Value())
		if err != nil {
			return p.reset(p.pos, "literal")
		}

		p.pos++

		return p.wrap(c, t.Source()), true
	}

	return p.reset(p.pos, "literal")
}

// <vector> ::= '[' <arguments> ']' .
func (p *T) vectorExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.punctuation('[') {
		return p.reset(start, "'['")
	}

	es, ok := p.separated(p.expression, ']')
	if !ok {
		return p.reset(start, "']'")
	}

	return p.wrap(vector.New(es...), s), true
}

// <map> ::= '{' [<entry> (',' <entry>)*] '}' .
// <entry> ::= <expression> <expression> .
func (p *T) mapExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.punctuation('{') {
		return p.reset(start, "'{'")
	}

	es, ok := p.separated(p.entry, '}')
	if !ok {
		return p.reset(start, "'}'")
	}

	var kvs []cell.I
	for _, e := range es {
		kvs = append(kvs, vector.To(e).Values()...)
	}

	return p.wrap(hashmap.New(kvs...), s), true
}

// <set> ::= SetOpen <arguments> '}' .
func (p *T) setExpression() (cell.I, bool) {
	start := p.pos
	s := p.source()

	if !p.peek().Is(token.SetOpen) {
		return p.reset(start, "'#{'")
	}

	p.pos++

	es, ok := p.separated(p.expression, '}')
	if !ok {
		return p.reset(start, "'}'")
	}

	return p.wrap(set.New(es...), s), true
}

// Helpers.

func (p *T) block(s *loc.T, ss []cell.I) cell.I {
	switch len(ss) {
	case 0:
		return p.wrap(null.Nil, s)
	case 1:
		return ss[0]
	}

	return p.form(s, append([]cell.I{p.symbol(s, "do")}, ss...)...)
}

func (p *T) braced() ([]cell.I, bool) {
	start := p.pos

	if !p.punctuation('{') {
		p.reset(start, "'{'")

		return nil, false
	}

	ss := p.statements()
	if !p.punctuation('}') {
		p.reset(start, "'}'")

		return nil, false
	}

	return ss, true
}

func (p *T) done() bool {
	return p.pos == len(p.tokens)
}

// entry returns a key and value as a two element vector.
func (p *T) entry() (cell.I, bool) {
	start := p.pos

	k, ok := p.expression()
	if !ok {
		return p.reset(start, "map entry")
	}

	v, ok := p.expression()
	if !ok {
		return p.reset(start, "map value")
	}

	return vector.New(k, v), true
}

func (p *T) expected(rule string) {
	if p.pos >= p.failed {
		p.failed = p.pos
		p.rule = rule
	}
}

func (p *T) first(rules ...rule) (cell.I, bool) {
	for _, r := range rules {
		if c, ok := r(); ok {
			return c, true
		}
	}

	return nil, false
}

func (p *T) form(s *loc.T, cs ...cell.I) cell.I {
	return p.wrap(list.New(cs...), s)
}

// function parses the parameters and body shared by fn and defn.
func (p *T) function(s *loc.T) (cell.I, bool) {
	if !p.punctuation('(') {
		return nil, false
	}

	params, ok := p.separated(p.name, ')')
	if !ok {
		return nil, false
	}

	body, ok := p.braced()
	if !ok {
		return nil, false
	}

	fs := []cell.I{p.symbol(s, "fn"), p.wrap(vector.New(params...), s)}

	return p.form(s, append(fs, body...)...), true
}

// name matches a symbol that is not a reserved word.
func (p *T) name() (cell.I, bool) {
	t := p.peek()
	if !t.Is(token.Atom) || reserved[t.Value()] {
		return p.reset(p.pos, "symbol")
	}

	c, err := parser.Atom(t.Value())
	if err != nil || !sym.Is(c) {
		return p.reset(p.pos, "symbol")
	}

	p.pos++

	return p.wrap(c, t.Source()), true
}

func (p *T) peek() *token.T {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	return nil
}

func (p *T) punctuation(c token.Class) bool {
	if p.peek().Is(c) {
		p.pos++

		return true
	}

	p.expected(c.String())

	return false
}

func (p *T) reset(start int, rule string) (cell.I, bool) {
	p.expected(rule)
	p.pos = start

	return nil, false
}

// separated matches zero or more comma separated items followed by close.
func (p *T) separated(r rule, close token.Class) ([]cell.I, bool) {
	var cs []cell.I

	if p.punctuation(close) {
		return cs, true
	}

	for {
		c, ok := r()
		if !ok {
			return nil, false
		}

		cs = append(cs, c)

		if p.punctuation(close) {
			return cs, true
		}

		if !p.punctuation(',') {
			return nil, false
		}
	}
}

func (p *T) source() *loc.T {
	if t := p.peek(); t != nil {
		return t.Source()
	}

	s := p.end

	return &s
}

func (p *T) symbol(s *loc.T, name string) cell.I {
	return p.wrap(sym.New(name), s)
}

func (p *T) word(w string) bool {
	t := p.peek()
	if t.Is(token.Atom) && t.Value() == w {
		p.pos++

		return true
	}

	p.expected("'" + w + "'")

	return false
}

func (p *T) wrap(c cell.I, s *loc.T) cell.I {
	return syntax.New(c, nil, s)
}
