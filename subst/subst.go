// Package subst implements substitutions: finite mappings from
// variables to terms, with apply, compose, and the occurs-check-guarded
// extend operation.
package subst

import (
	"sort"

	"github.com/brunokim/inferd/term"
)

// Subst is a substitution. The zero value is the empty substitution.
type Subst struct {
	bindings map[term.Variable]term.Term
}

// Empty returns the empty substitution.
func Empty() *Subst {
	return &Subst{}
}

// Lookup returns the term bound to v, and whether v is bound at all.
func (s *Subst) Lookup(v term.Variable) (term.Term, bool) {
	if s == nil || s.bindings == nil {
		return nil, false
	}
	t, ok := s.bindings[v]
	return t, ok
}

// Len returns the number of bindings.
func (s *Subst) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Vars returns the bound variables, in unspecified but stable order
// across repeated calls on the same value.
func (s *Subst) Vars() []term.Variable {
	if s == nil {
		return nil
	}
	vs := make([]term.Variable, 0, len(s.bindings))
	for v := range s.bindings {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return term.Key(vs[i]) < term.Key(vs[j]) })
	return vs
}

// Apply chases variable bindings and rewrites compounds elementwise.
// Termination is guaranteed by the occurs-check invariant enforced by
// Extend: no stored binding's chased value contains its own key.
func Apply(t term.Term, s *Subst) term.Term {
	switch x := t.(type) {
	case term.Variable:
		if bound, ok := s.Lookup(x); ok {
			return Apply(bound, s)
		}
		return t
	case *term.Compound:
		elems := make([]term.Term, len(x.Elements))
		changed := false
		for i, e := range x.Elements {
			elems[i] = Apply(e, s)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return term.NewCompound(elems...)
	default:
		return t
	}
}

// Occurs reports whether, after chasing t through s, v appears
// anywhere within it.
func Occurs(v term.Variable, t term.Term, s *Subst) bool {
	return occurs(v, Apply(t, s))
}

func occurs(v term.Variable, t term.Term) bool {
	switch x := t.(type) {
	case term.Variable:
		return x == v
	case *term.Compound:
		for _, e := range x.Elements {
			if occurs(v, e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Extend binds v to t within s, returning the extended substitution.
// Fails (ok=false) if the occurs check rejects the binding; the
// wildcard is not a term.Variable, so it can never be passed as v.
// The stored value is t already resolved against s. Bindings already
// in s are not rewritten, so a value stored earlier may still mention
// v; Apply chases such chains.
func Extend(s *Subst, v term.Variable, t term.Term) (*Subst, bool) {
	resolved := Apply(t, s)
	if occurs(v, resolved) {
		return nil, false
	}
	next := &Subst{bindings: make(map[term.Variable]term.Term, s.Len()+1)}
	for k, val := range s.bindings {
		next.bindings[k] = val
	}
	next.bindings[v] = resolved
	return next, true
}

// Compose returns the substitution equivalent to applying s1 then s2:
// for every (k -> v) in s2, bind k -> Apply(v, s1) in the result, then
// overlay s1's bindings that are not shadowed by s2. Bindings in s2
// take precedence for shared keys.
func Compose(s1, s2 *Subst) *Subst {
	out := &Subst{bindings: make(map[term.Variable]term.Term, s1.Len()+s2.Len())}
	for k, v := range s1.bindings {
		out.bindings[k] = v
	}
	for k, v := range s2.bindings {
		out.bindings[k] = Apply(v, s1)
	}
	return out
}

// Restrict returns the sub-mapping of s limited to the given
// variables, with values fully chased through s.
func Restrict(s *Subst, vars []term.Variable) map[term.Variable]term.Term {
	out := make(map[term.Variable]term.Term, len(vars))
	for _, v := range vars {
		out[v] = Apply(v, s)
	}
	return out
}
