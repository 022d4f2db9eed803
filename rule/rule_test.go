package rule_test

import (
	"testing"

	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/term"
)

func sym(name string) *term.Symbol           { return term.Intern(name) }
func v(name string) term.Variable            { return term.NewVariable(name) }
func comp(elems ...term.Term) *term.Compound { return term.NewCompound(elems...) }

func TestNewRejectsNoConsequents(t *testing.T) {
	_, err := rule.New([]term.Term{comp(sym("p"), v("X"))}, nil, "empty-then", 0)
	if errors.KindOf(err) != errors.Validation {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestNewRejectsUnsafeRule(t *testing.T) {
	when := []term.Term{comp(sym("likes"), v("X"), v("Y"))}
	then := []term.Term{comp(sym("knows"), v("X"), v("Z"))} // Z unbound
	_, err := rule.New(when, then, "unsafe", 0)
	if errors.KindOf(err) != errors.Validation {
		t.Errorf("expected ValidationError for unsafe rule, got %v", err)
	}
}

func TestNewAllowsGroundConsequentsWithEmptyWhen(t *testing.T) {
	then := []term.Term{comp(sym("born"), sym("alice"))}
	r, err := rule.New(nil, then, "fact-rule", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsSafe() {
		t.Error("rule with ground consequents and no antecedents should be safe")
	}
}

func TestNewRejectsNonGroundConsequentsWithEmptyWhen(t *testing.T) {
	then := []term.Term{comp(sym("born"), v("X"))}
	_, err := rule.New(nil, then, "bad", 0)
	if errors.KindOf(err) != errors.Validation {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestReciprocalRuleIsSafe(t *testing.T) {
	when := []term.Term{comp(sym("likes"), v("x"), v("y"))}
	then := []term.Term{comp(sym("likes"), v("y"), v("x"))}
	r, err := rule.New(when, then, "reciprocal", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsSafe() {
		t.Error("reciprocal rule should be safe")
	}
}
