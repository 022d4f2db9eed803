// Package unify implements one-sided pattern matching and two-sided
// unification over terms, threading a substitution through both.
package unify

import (
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
)

// Match attempts to match pattern against the ground fact, extending
// s0. It returns the extended substitution and true on success, or
// (nil, false) on failure. pattern may contain variables and
// wildcards; fact must be ground.
func Match(pattern, fact term.Term, s0 *subst.Subst) (*subst.Subst, bool) {
	if term.IsWildcard(pattern) {
		return s0, true
	}
	switch p := pattern.(type) {
	case term.Variable:
		if bound, ok := s0.Lookup(p); ok {
			if term.Equal(bound, fact) {
				return s0, true
			}
			return nil, false
		}
		return subst.Extend(s0, p, fact)
	case *term.Compound:
		f, ok := fact.(*term.Compound)
		if !ok || f.Len() != p.Len() {
			return nil, false
		}
		s := s0
		for i := 0; i < p.Len(); i++ {
			var ok bool
			s, ok = Match(p.At(i), f.At(i), s)
			if !ok {
				return nil, false
			}
		}
		return s, true
	default:
		if term.Equal(pattern, fact) {
			return s0, true
		}
		return nil, false
	}
}

// MatchAll returns every substitution obtained by matching pattern
// against some fact in facts, extending s0. Iteration order follows
// the order of facts, which is itself deterministic for a given
// FactBase snapshot.
func MatchAll(pattern term.Term, facts []term.Term, s0 *subst.Subst) []*subst.Subst {
	var out []*subst.Subst
	for _, f := range facts {
		if s, ok := Match(pattern, f, s0); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bind applies s to pattern; it is an alias for subst.Apply provided
// for symmetry with Match, and returns a ground term iff every
// variable in pattern is bound in s.
func Bind(pattern term.Term, s *subst.Subst) term.Term {
	return subst.Apply(pattern, s)
}
