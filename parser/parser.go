// Package parser reads the textual syntax for terms, facts and rules:
// compounds as bracketed space-separated term lists, atoms in a
// kind-preserving scalar notation (:symbol, 42, 3.14, "text", true,
// null), variables as ?name, the wildcard as ?, and rules as mappings
// with keys when, then, name and priority. The String methods of
// term.Term and rule.Rule render back into this same syntax, so
// parse/print round-trips, with two exceptions: strings are printed
// with strconv.Quote, while the reader accepts only the escapes \n,
// \t, \\ and \", so a string that Quote escapes any other way does not
// read back; and NaN or infinite floats have no notation here.
//
// '%' starts a comment running to end of line. Commas are treated as
// whitespace, so the mapping notation rule.Rule.String emits parses
// back unchanged.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/runes"
	"github.com/brunokim/inferd/term"
)

// tokenKind tags a lexical token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace
	tokenSymbol // :name
	tokenVar    // ?name
	tokenWild   // ?
	tokenInt
	tokenFloat
	tokenString // quoted; text holds the unescaped content
	tokenIdent  // true, false, null
	tokenKey    // when:, then:, name:, priority:
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenSymbol:
		return "symbol"
	case tokenVar:
		return "variable"
	case tokenWild:
		return "wildcard"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenIdent:
		return "identifier"
	case tokenKey:
		return "key"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

type tokenizer struct {
	input string
	pos   int
}

func (t *tokenizer) errorf(pos int, msg string, args ...interface{}) error {
	line, col := 1, 1
	for _, r := range t.input[:pos] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	args = append([]interface{}{line, col}, args...)
	return errors.NewValidationError("%d:%d: "+msg, args...)
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.input) {
		r, ok := runes.First(t.input[t.pos:])
		if !ok {
			return
		}
		switch {
		case unicode.IsSpace(r) || r == ',':
			t.pos += len(string(r))
		case r == '%':
			for t.pos < len(t.input) && t.input[t.pos] != '\n' {
				t.pos++
			}
		default:
			return
		}
	}
}

func (t *tokenizer) next() (token, error) {
	t.skipSpace()
	start := t.pos
	if t.pos >= len(t.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}
	r, ok := runes.First(t.input[t.pos:])
	if !ok {
		return token{}, t.errorf(start, "invalid UTF-8 input")
	}
	switch {
	case r == '[':
		t.pos++
		return token{tokenLBracket, "[", start}, nil
	case r == ']':
		t.pos++
		return token{tokenRBracket, "]", start}, nil
	case r == '{':
		t.pos++
		return token{tokenLBrace, "{", start}, nil
	case r == '}':
		t.pos++
		return token{tokenRBrace, "}", start}, nil
	case r == ':':
		t.pos++
		name := t.readIdent()
		if name == "" {
			return token{}, t.errorf(start, "expected identifier after ':'")
		}
		return token{tokenSymbol, name, start}, nil
	case r == '?':
		t.pos++
		name := t.readIdent()
		if name == "" {
			return token{tokenWild, "?", start}, nil
		}
		return token{tokenVar, name, start}, nil
	case r == '"':
		return t.readString(start)
	case r == '-' || unicode.IsDigit(r):
		return t.readNumber(start)
	case isIdentStart(r):
		name := t.readIdent()
		if t.pos < len(t.input) && t.input[t.pos] == ':' {
			t.pos++
			return token{tokenKey, name, start}, nil
		}
		return token{tokenIdent, name, start}, nil
	default:
		return token{}, t.errorf(start, "unexpected character %q", r)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (t *tokenizer) readIdent() string {
	start := t.pos
	for t.pos < len(t.input) {
		r, ok := runes.First(t.input[t.pos:])
		if !ok || !isIdentPart(r) {
			break
		}
		if t.pos == start && !isIdentStart(r) {
			break
		}
		t.pos += len(string(r))
	}
	return t.input[start:t.pos]
}

func (t *tokenizer) readString(start int) (token, error) {
	t.pos++ // opening quote
	var b strings.Builder
	for t.pos < len(t.input) {
		r, ok := runes.First(t.input[t.pos:])
		if !ok {
			return token{}, t.errorf(t.pos, "invalid UTF-8 in string")
		}
		t.pos += len(string(r))
		switch r {
		case '"':
			return token{tokenString, b.String(), start}, nil
		case '\\':
			if t.pos >= len(t.input) {
				return token{}, t.errorf(start, "unterminated string")
			}
			esc, _ := runes.First(t.input[t.pos:])
			t.pos += len(string(esc))
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"':
				b.WriteRune(esc)
			default:
				return token{}, t.errorf(t.pos, "unknown escape '\\%c'", esc)
			}
		case '\n':
			return token{}, t.errorf(start, "unterminated string")
		default:
			b.WriteRune(r)
		}
	}
	return token{}, t.errorf(start, "unterminated string")
}

func (t *tokenizer) readNumber(start int) (token, error) {
	if t.input[t.pos] == '-' {
		t.pos++
	}
	digits := 0
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.pos++
		digits++
	}
	if digits == 0 {
		return token{}, t.errorf(start, "expected digits after '-'")
	}
	isFloat := false
	if t.pos < len(t.input) && t.input[t.pos] == '.' {
		isFloat = true
		t.pos++
		for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
			t.pos++
		}
	}
	if t.pos < len(t.input) && (t.input[t.pos] == 'e' || t.input[t.pos] == 'E') {
		isFloat = true
		t.pos++
		if t.pos < len(t.input) && (t.input[t.pos] == '+' || t.input[t.pos] == '-') {
			t.pos++
		}
		for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
			t.pos++
		}
	}
	text := t.input[start:t.pos]
	if isFloat {
		return token{tokenFloat, text, start}, nil
	}
	return token{tokenInt, text, start}, nil
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// parser wraps the tokenizer with one token of lookahead.
type parser struct {
	tok    tokenizer
	ahead  token
	peeked bool
}

func newParser(input string) *parser {
	return &parser{tok: tokenizer{input: input}}
}

func (p *parser) peek() (token, error) {
	if !p.peeked {
		t, err := p.tok.next()
		if err != nil {
			return token{}, err
		}
		p.ahead = t
		p.peeked = true
	}
	return p.ahead, nil
}

func (p *parser) next() (token, error) {
	t, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.peeked = false
	return t, nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t, err := p.next()
	if err != nil {
		return token{}, err
	}
	if t.kind != kind {
		return token{}, p.tok.errorf(t.pos, "expected %v, found %v", kind, t.kind)
	}
	return t, nil
}

func (p *parser) term() (term.Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokenSymbol:
		return term.Intern(t.text), nil
	case tokenVar:
		return term.NewVariable(t.text), nil
	case tokenWild:
		return term.Wildcard, nil
	case tokenInt:
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, p.tok.errorf(t.pos, "invalid integer %q: %v", t.text, err)
		}
		return term.Int(n), nil
	case tokenFloat:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.tok.errorf(t.pos, "invalid float %q: %v", t.text, err)
		}
		return term.Float(f), nil
	case tokenString:
		return term.Str(t.text), nil
	case tokenIdent:
		switch t.text {
		case "true":
			return term.Bool(true), nil
		case "false":
			return term.Bool(false), nil
		case "null":
			return term.Null, nil
		default:
			return nil, p.tok.errorf(t.pos, "unknown identifier %q (did you mean :%s?)", t.text, t.text)
		}
	case tokenLBracket:
		var elems []term.Term
		for {
			la, err := p.peek()
			if err != nil {
				return nil, err
			}
			if la.kind == tokenRBracket {
				p.peeked = false
				return term.NewCompound(elems...), nil
			}
			if la.kind == tokenEOF {
				return nil, p.tok.errorf(la.pos, "unterminated compound")
			}
			e, err := p.term()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	default:
		return nil, p.tok.errorf(t.pos, "expected a term, found %v", t.kind)
	}
}

func (p *parser) compoundList() ([]term.Term, error) {
	if _, err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}
	var out []term.Term
	for {
		la, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch la.kind {
		case tokenRBracket:
			p.peeked = false
			return out, nil
		case tokenEOF:
			return nil, p.tok.errorf(la.pos, "unterminated pattern list")
		}
		c, err := p.term()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
}

func (p *parser) rule(open token) (*rule.Rule, error) {
	var when, then []term.Term
	var name string
	var priority int
	seen := make(map[string]bool)
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokenRBrace {
			break
		}
		if t.kind != tokenKey {
			return nil, p.tok.errorf(t.pos, "expected a rule key, found %v", t.kind)
		}
		if seen[t.text] {
			return nil, p.tok.errorf(t.pos, "duplicate rule key %q", t.text)
		}
		seen[t.text] = true
		switch t.text {
		case "when":
			when, err = p.compoundList()
		case "then":
			then, err = p.compoundList()
		case "name":
			var s token
			if s, err = p.expect(tokenString); err == nil {
				name = s.text
			}
		case "priority":
			var n token
			if n, err = p.expect(tokenInt); err == nil {
				var v int64
				if v, err = strconv.ParseInt(n.text, 10, 64); err == nil {
					priority = int(v)
				}
			}
		default:
			return nil, p.tok.errorf(t.pos, "unknown rule key %q", t.text)
		}
		if err != nil {
			return nil, err
		}
	}
	r, err := rule.New(when, then, name, priority)
	if err != nil {
		return nil, p.tok.errorf(open.pos, "invalid rule: %v", err)
	}
	return r, nil
}

func (p *parser) atEOF() error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.kind != tokenEOF {
		return p.tok.errorf(t.pos, "unexpected trailing input: %v", t.kind)
	}
	return nil
}

// ParseTerm parses exactly one term, rejecting trailing input.
func ParseTerm(input string) (term.Term, error) {
	p := newParser(input)
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if err := p.atEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseRule parses exactly one {when: ..., then: ...} mapping,
// rejecting trailing input.
func ParseRule(input string) (*rule.Rule, error) {
	p := newParser(input)
	open, err := p.expect(tokenLBrace)
	if err != nil {
		return nil, err
	}
	r, err := p.rule(open)
	if err != nil {
		return nil, err
	}
	if err := p.atEOF(); err != nil {
		return nil, err
	}
	return r, nil
}

// Program is the result of parsing a knowledge-base text: top-level
// compounds become facts, top-level mappings become rules, in source
// order.
type Program struct {
	Facts []term.Term
	Rules []*rule.Rule
}

// ParseProgram parses a sequence of facts and rules, e.g. the contents
// of a consulted file.
func ParseProgram(input string) (*Program, error) {
	p := newParser(input)
	prog := &Program{}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokenEOF:
			return prog, nil
		case tokenLBrace:
			p.peeked = false
			r, err := p.rule(t)
			if err != nil {
				return nil, err
			}
			prog.Rules = append(prog.Rules, r)
		default:
			f, err := p.term()
			if err != nil {
				return nil, err
			}
			prog.Facts = append(prog.Facts, f)
		}
	}
}

// ParseQuery parses one goal compound, which may contain variables and
// wildcards.
func ParseQuery(input string) (*term.Compound, error) {
	t, err := ParseTerm(input)
	if err != nil {
		return nil, err
	}
	c, ok := t.(*term.Compound)
	if !ok {
		return nil, errors.NewValidationError("query %v is not a compound", t)
	}
	return c, nil
}
