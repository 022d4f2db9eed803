package unify_test

import (
	"testing"

	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
	"github.com/brunokim/inferd/unify"
)

func v(name string) term.Variable           { return term.NewVariable(name) }
func sym(name string) *term.Symbol          { return term.Intern(name) }
func comp(elems ...term.Term) *term.Compound { return term.NewCompound(elems...) }

func TestUnifyOccursCheck(t *testing.T) {
	// S3: unify(?x, [:list ?x]) fails.
	if _, ok := unify.Unify(v("x"), comp(sym("list"), v("x")), subst.Empty()); ok {
		t.Error("Unify(?x, [:list ?x]) should fail the occurs check")
	}
}

func TestUnifyBindsVariable(t *testing.T) {
	// S3: unify([:list ?x], [:list :alice]) returns {?x -> :alice}.
	s, ok := unify.Unify(comp(sym("list"), v("x")), comp(sym("list"), sym("alice")), subst.Empty())
	if !ok {
		t.Fatal("Unify should succeed")
	}
	got := subst.Apply(v("x"), s)
	if !term.Equal(got, sym("alice")) {
		t.Errorf("?x bound to %v, want :alice", got)
	}
}

func TestUnifyMGU(t *testing.T) {
	t1 := comp(sym("f"), comp(sym("h"), comp(sym("g"), v("Z"))), v("Y"), v("X"))
	t2 := comp(sym("f"), v("X"), comp(sym("g"), sym("b")), comp(sym("h"), v("Y")))
	s, ok := unify.Unify(t1, t2, subst.Empty())
	if !ok {
		t.Fatal("Unify should succeed")
	}
	tests := []struct {
		v    term.Variable
		want term.Term
	}{
		{v("X"), comp(sym("h"), comp(sym("g"), sym("b")))},
		{v("Y"), comp(sym("g"), sym("b"))},
		{v("Z"), sym("b")},
	}
	for _, test := range tests {
		got := subst.Apply(test.v, s)
		if !term.Equal(got, test.want) {
			t.Errorf("%v bound to %v, want %v", test.v, got, test.want)
		}
	}
}

func TestUnifySoundness(t *testing.T) {
	t1 := comp(sym("p"), v("X"), sym("a"))
	t2 := comp(sym("p"), sym("b"), v("Y"))
	s, ok := unify.Unify(t1, t2, subst.Empty())
	if !ok {
		t.Fatal("Unify should succeed")
	}
	a1 := subst.Apply(t1, s)
	a2 := subst.Apply(t2, s)
	if !term.Equal(a1, a2) {
		t.Errorf("unifier not sound: Apply(t1,s)=%v Apply(t2,s)=%v", a1, a2)
	}
}

func TestUnifyDistinctWildcardsDontAlias(t *testing.T) {
	s, ok := unify.Unify(comp(sym("f"), term.Wildcard, term.Wildcard), comp(sym("f"), sym("a"), sym("b")), subst.Empty())
	if !ok {
		t.Fatal("Unify with wildcards should succeed")
	}
	if s.Len() != 0 {
		t.Errorf("wildcard unification should record no bindings, got %d", s.Len())
	}
}

func TestMatchBindingConsistency(t *testing.T) {
	// S4.
	pattern := comp(sym("likes"), v("x"), v("x"))
	if s, ok := unify.Match(pattern, comp(sym("likes"), sym("a"), sym("a")), subst.Empty()); !ok {
		t.Error("match([:likes ?x ?x], [:likes :a :a]) should succeed")
	} else if got := subst.Apply(v("x"), s); !term.Equal(got, sym("a")) {
		t.Errorf("?x = %v, want :a", got)
	}
	if _, ok := unify.Match(pattern, comp(sym("likes"), sym("a"), sym("b")), subst.Empty()); ok {
		t.Error("match([:likes ?x ?x], [:likes :a :b]) should fail")
	}
}

func TestMatchSoundness(t *testing.T) {
	pattern := comp(sym("p"), v("X"), sym("a"))
	fact := comp(sym("p"), sym("b"), sym("a"))
	s, ok := unify.Match(pattern, fact, subst.Empty())
	if !ok {
		t.Fatal("Match should succeed")
	}
	if got := subst.Apply(pattern, s); !term.Equal(got, fact) {
		t.Errorf("Apply(pattern, s) = %v, want %v", got, fact)
	}
}

func TestMatchWildcardNeverBinds(t *testing.T) {
	s, ok := unify.Match(comp(sym("p"), term.Wildcard), comp(sym("p"), sym("a")), subst.Empty())
	if !ok {
		t.Fatal("Match with wildcard should succeed")
	}
	if s.Len() != 0 {
		t.Errorf("wildcard should never bind, got %d bindings", s.Len())
	}
}

func TestMatchArityMismatch(t *testing.T) {
	if _, ok := unify.Match(comp(sym("p"), v("X")), comp(sym("p"), sym("a"), sym("b")), subst.Empty()); ok {
		t.Error("Match should fail on arity mismatch")
	}
}

func TestMatchAll(t *testing.T) {
	facts := []term.Term{
		comp(sym("person"), sym("alice")),
		comp(sym("person"), sym("bob")),
	}
	got := unify.MatchAll(comp(sym("person"), v("who")), facts, subst.Empty())
	if len(got) != 2 {
		t.Fatalf("MatchAll returned %d substitutions, want 2", len(got))
	}
	names := map[string]bool{}
	for _, s := range got {
		bound := subst.Apply(v("who"), s)
		if sy, ok := bound.(*term.Symbol); ok {
			names[sy.Name()] = true
		}
	}
	if !names["alice"] || !names["bob"] {
		t.Errorf("MatchAll bindings = %v, want {alice, bob}", names)
	}
}

func TestUnifyAll(t *testing.T) {
	ts := []term.Term{
		comp(sym("p"), v("X"), sym("b")),
		comp(sym("p"), sym("a"), v("Y")),
		comp(sym("p"), v("Z"), v("W")),
	}
	s, ok := unify.UnifyAll(subst.Empty(), ts...)
	if !ok {
		t.Fatal("UnifyAll should succeed")
	}
	want := comp(sym("p"), sym("a"), sym("b"))
	for _, tr := range ts {
		if got := subst.Apply(tr, s); !term.Equal(got, want) {
			t.Errorf("Apply(%v) = %v, want %v", tr, got, want)
		}
	}
	if _, ok := unify.UnifyAll(subst.Empty(), sym("a"), sym("a"), sym("b")); ok {
		t.Error("UnifyAll over incompatible atoms should fail")
	}
}
