// Package rule implements rule values and the fact base they operate
// over, with assert, retract and indexed queries.
package rule

import (
	"strconv"
	"strings"

	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/term"
)

// Rule is a when/then pair, with an optional name used only for
// tracing and priority tie-breaking logs, and an integer priority
// (default 0, higher fires first).
type Rule struct {
	When     []term.Term // antecedent patterns; may be empty
	Then     []term.Term // consequent patterns; non-empty
	Name     string
	Priority int
}

// New constructs a Rule, rejecting malformed shapes with a
// ValidationError: no consequents, a non-compound antecedent or
// consequent, or an unsafe rule (every variable in Then must
// also appear in When, unless When is empty, in which case Then must
// be ground).
func New(when, then []term.Term, name string, priority int) (*Rule, error) {
	if len(then) == 0 {
		return nil, errors.NewValidationError("rule %q has no consequents", name)
	}
	for _, p := range when {
		if !isNonEmptyCompound(p) {
			return nil, errors.NewValidationError("rule %q: antecedent %v is not a non-empty compound", name, p)
		}
	}
	for _, p := range then {
		if !isNonEmptyCompound(p) {
			return nil, errors.NewValidationError("rule %q: consequent %v is not a non-empty compound", name, p)
		}
	}
	r := &Rule{When: when, Then: then, Name: name, Priority: priority}
	if !r.IsSafe() {
		return nil, errors.NewValidationError("rule %q is unsafe: a consequent variable does not occur in the antecedents", name)
	}
	return r, nil
}

func isNonEmptyCompound(t term.Term) bool {
	c, ok := t.(*term.Compound)
	return ok && c.Len() > 0
}

// IsSafe reports whether every variable in Then also occurs in When,
// or When is empty and Then is entirely ground.
func (r *Rule) IsSafe() bool {
	if len(r.When) == 0 {
		for _, c := range r.Then {
			if !term.IsGround(c) {
				return false
			}
		}
		return true
	}
	bound := make(map[term.Variable]bool)
	for _, p := range r.When {
		for _, v := range term.ExtractVars(p) {
			bound[v] = true
		}
	}
	for _, c := range r.Then {
		for _, v := range term.ExtractVars(c) {
			if !bound[v] {
				return false
			}
		}
	}
	return true
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString("{when: [")
	for i, p := range r.When {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteString("], then: [")
	for i, p := range r.Then {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	if r.Name != "" {
		b.WriteString(", name: ")
		b.WriteString(strconv.Quote(r.Name))
	}
	if r.Priority != 0 {
		b.WriteString(", priority: ")
		b.WriteString(strconv.Itoa(r.Priority))
	}
	b.WriteByte('}')
	return b.String()
}
