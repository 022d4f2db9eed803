// Package dsl provides compact Go-side constructors for terms and
// rules, for fixtures and tests.
package dsl

import (
	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/term"
)

func Terms(terms ...term.Term) []term.Term {
	return terms
}

func Sym(name string) *term.Symbol {
	return term.Intern(name)
}

func Int(i int64) term.Int {
	return term.Int(i)
}

func Float(f float64) term.Float {
	return term.Float(f)
}

func Str(s string) term.Str {
	return term.Str(s)
}

func Bool(b bool) term.Bool {
	return term.Bool(b)
}

func Var(name string) term.Variable {
	return term.NewVariable(name)
}

func SVar(name string, suffix int) term.Variable {
	return term.NewVariable(name).WithSuffix(suffix)
}

func Comp(elements ...term.Term) *term.Compound {
	return term.NewCompound(elements...)
}

// Not wraps a goal in the negation-as-failure form.
func Not(goal term.Term) *term.Compound {
	return term.NewCompound(Sym("not"), goal)
}

// Rule builds a validated rule; see rule.New for the safety condition.
func Rule(when, then []term.Term, name string, priority int) (*rule.Rule, error) {
	return rule.New(when, then, name, priority)
}

// MustRule is Rule for fixtures, panicking on a malformed rule.
func MustRule(when, then []term.Term, name string, priority int) *rule.Rule {
	r, err := rule.New(when, then, name, priority)
	if err != nil {
		panic(err)
	}
	return r
}

func Rules(rs ...*rule.Rule) []*rule.Rule {
	return rs
}
