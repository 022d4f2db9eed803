package unify

import (
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
)

// Unify computes the most general unifier of t1 and t2 under s0, or
// fails. Wildcards on either side behave as fresh variables that are
// never recorded in the resulting substitution; two wildcards never
// alias each other.
func Unify(t1, t2 term.Term, s0 *subst.Subst) (*subst.Subst, bool) {
	a := subst.Apply(t1, s0)
	b := subst.Apply(t2, s0)

	if term.Equal(a, b) {
		return s0, true
	}
	if term.IsWildcard(a) || term.IsWildcard(b) {
		return s0, true
	}
	if v, ok := a.(term.Variable); ok {
		if subst.Occurs(v, b, s0) {
			return nil, false
		}
		return subst.Extend(s0, v, b)
	}
	if v, ok := b.(term.Variable); ok {
		if subst.Occurs(v, a, s0) {
			return nil, false
		}
		return subst.Extend(s0, v, a)
	}
	ca, aok := a.(*term.Compound)
	cb, bok := b.(*term.Compound)
	if aok && bok && ca.Len() == cb.Len() {
		s := s0
		for i := 0; i < ca.Len(); i++ {
			var ok bool
			s, ok = Unify(ca.At(i), cb.At(i), s)
			if !ok {
				return nil, false
			}
		}
		return s, true
	}
	return nil, false
}

// UnifyAll unifies a sequence of terms in left-fold order, equivalent
// to repeated binary unification: unify(t1,t2), then unify that
// result with t3, and so on.
func UnifyAll(s0 *subst.Subst, ts ...term.Term) (*subst.Subst, bool) {
	if len(ts) == 0 {
		return s0, true
	}
	acc := ts[0]
	s := s0
	for _, t := range ts[1:] {
		var ok bool
		s, ok = Unify(acc, t, s)
		if !ok {
			return nil, false
		}
		acc = subst.Apply(acc, s)
	}
	return s, true
}
