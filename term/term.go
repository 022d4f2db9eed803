// Package term implements the value model for the inference engine:
// atoms, variables, the wildcard, and compounds, per the four term
// variants of the data model. Terms are immutable once constructed;
// all mutation happens through substitutions in package subst.
package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is any of the four variants: atom (Symbol, Int, Float, Str,
// Bool, Null), Variable, Wildcard, or Compound.
type Term interface {
	fmt.Stringer
	isTerm()
}

func (*Symbol) isTerm()  {}
func (Int) isTerm()      {}
func (Float) isTerm()    {}
func (Str) isTerm()      {}
func (Bool) isTerm()     {}
func (nullType) isTerm() {}
func (Variable) isTerm() {}
func (wildcardType) isTerm() {}
func (*Compound) isTerm() {}

// Int is an integer atom.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating-point atom.
type Float float64

// String renders f so that it reads back as a Float: integral values
// get a trailing ".0" instead of printing like an Int.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Str is a string atom.
type Str string

func (s Str) String() string { return strconv.Quote(string(s)) }

// Bool is a boolean atom.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

type nullType struct{}

func (nullType) String() string { return "null" }

// Null is the singleton null atom.
var Null = nullType{}

// Variable is a named hole. Names are case-sensitive and must begin
// with a letter or underscore; the marker '?' is not part of Name.
// The unexported suffix distinguishes renamed-apart copies of a rule
// variable from the source-level variable of the same name; variables
// read from text always have suffix 0.
type Variable struct {
	Name   string
	suffix int
}

// NewVariable constructs a Variable, panicking if name is not a valid
// identifier (the wildcard must be constructed via Wildcard instead).
func NewVariable(name string) Variable {
	if name == "" {
		panic("term.NewVariable: empty name")
	}
	for i, r := range name {
		if !isIdentChar(r, i == 0) {
			panic(fmt.Sprintf("term.NewVariable: invalid name %q", name))
		}
	}
	return Variable{Name: name}
}

func isIdentChar(r rune, first bool) bool {
	if r == '_' {
		return true
	}
	if 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' {
		return true
	}
	if !first && '0' <= r && r <= '9' {
		return true
	}
	return false
}

// WithSuffix returns a copy of v carrying the given rename suffix.
// Variables with different suffixes are distinct terms.
func (v Variable) WithSuffix(n int) Variable {
	v.suffix = n
	return v
}

func (v Variable) String() string {
	if v.suffix == 0 {
		return "?" + v.Name
	}
	return "?" + v.Name + "_" + strconv.Itoa(v.suffix)
}

type wildcardType struct{}

func (wildcardType) String() string { return "?" }

// Wildcard is the singleton variable-like term that matches any term
// and never binds.
var Wildcard = wildcardType{}

// Compound is an ordered finite sequence of terms. By convention the
// first element is the relation head, but this is not enforced here.
type Compound struct {
	Elements []Term
}

// NewCompound constructs a compound from its elements.
func NewCompound(elements ...Term) *Compound {
	return &Compound{Elements: elements}
}

func (c *Compound) Len() int { return len(c.Elements) }

// At returns the i-th element.
func (c *Compound) At(i int) Term { return c.Elements[i] }

// Head returns the first element, or nil if the compound is empty.
func (c *Compound) Head() Term {
	if len(c.Elements) == 0 {
		return nil
	}
	return c.Elements[0]
}

// HeadSymbol returns the head element as a *Symbol and true, or (nil,
// false) if the compound is empty or its head is not a Symbol.
func (c *Compound) HeadSymbol() (*Symbol, bool) {
	h := c.Head()
	if h == nil {
		return nil, false
	}
	s, ok := h.(*Symbol)
	return s, ok
}

// Tail returns the elements from index n onward, as a plain slice
// (not itself a term).
func (c *Compound) Tail(n int) []Term { return c.Elements[n:] }

func (c *Compound) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range c.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// IsVariable reports whether t is a Variable (not the wildcard).
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// IsWildcard reports whether t is the wildcard.
func IsWildcard(t Term) bool {
	_, ok := t.(wildcardType)
	return ok
}

// IsCompound reports whether t is a Compound.
func IsCompound(t Term) bool {
	_, ok := t.(*Compound)
	return ok
}

// IsAtom reports whether t is one of the scalar atom kinds.
func IsAtom(t Term) bool {
	switch t.(type) {
	case *Symbol, Int, Float, Str, Bool, nullType:
		return true
	default:
		return false
	}
}

// IsGround reports whether t contains no variables and no wildcards,
// anywhere in its structure.
func IsGround(t Term) bool {
	switch x := t.(type) {
	case Variable, wildcardType:
		return false
	case *Compound:
		for _, e := range x.Elements {
			if !IsGround(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Equal reports structural equality between two terms.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case nullType:
		_, ok := b.(nullType)
		return ok
	case Variable:
		y, ok := b.(Variable)
		return ok && x == y
	case wildcardType:
		_, ok := b.(wildcardType)
		return ok
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ExtractVars returns the set of variables occurring anywhere in t,
// in first-occurrence order, with no duplicates. The wildcard is
// never included, since it never binds.
func ExtractVars(t Term) []Variable {
	var out []Variable
	seen := make(map[Variable]bool)
	extractVars(t, seen, &out)
	return out
}

func extractVars(t Term, seen map[Variable]bool, out *[]Variable) {
	switch x := t.(type) {
	case Variable:
		if !seen[x] {
			seen[x] = true
			*out = append(*out, x)
		}
	case *Compound:
		for _, e := range x.Elements {
			extractVars(e, seen, out)
		}
	}
}
