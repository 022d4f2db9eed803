package term_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunokim/inferd/term"
)

func sym(name string) *term.Symbol { return term.Intern(name) }

func TestInternIdentity(t *testing.T) {
	if sym("alice") != sym("alice") {
		t.Errorf("Intern(%q) returned different pointers on repeated calls", "alice")
	}
	if sym("alice") == sym("bob") {
		t.Errorf("Intern(%q) and Intern(%q) aliased", "alice", "bob")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b term.Term
		want bool
	}{
		{"equal symbols", sym("a"), sym("a"), true},
		{"different symbols", sym("a"), sym("b"), false},
		{"equal ints", term.Int(1), term.Int(1), true},
		{"different ints", term.Int(1), term.Int(2), false},
		{"equal compounds", comp(sym("f"), term.Int(1)), comp(sym("f"), term.Int(1)), true},
		{"different arity", comp(sym("f"), term.Int(1)), comp(sym("f"), term.Int(1), term.Int(2)), false},
		{"var not equal to wildcard", term.NewVariable("X"), term.Wildcard, false},
		{"distinct wildcards are equal instances", term.Wildcard, term.Wildcard, true},
	}
	for _, test := range tests {
		if got := term.Equal(test.a, test.b); got != test.want {
			t.Errorf("%s: Equal(%v, %v) = %v, want %v", test.name, test.a, test.b, got, test.want)
		}
	}
}

func comp(elems ...term.Term) *term.Compound { return term.NewCompound(elems...) }

func TestIsGround(t *testing.T) {
	tests := []struct {
		name string
		t    term.Term
		want bool
	}{
		{"atom", sym("alice"), true},
		{"variable", term.NewVariable("X"), false},
		{"wildcard", term.Wildcard, false},
		{"ground compound", comp(sym("likes"), sym("alice"), sym("bob")), true},
		{"compound with var", comp(sym("likes"), term.NewVariable("X"), sym("bob")), false},
		{"nested compound with var", comp(sym("f"), comp(sym("g"), term.NewVariable("X"))), false},
	}
	for _, test := range tests {
		if got := term.IsGround(test.t); got != test.want {
			t.Errorf("%s: IsGround(%v) = %v, want %v", test.name, test.t, got, test.want)
		}
	}
}

func TestExtractVars(t *testing.T) {
	x, y := term.NewVariable("X"), term.NewVariable("Y")
	tree := comp(sym("f"), x, comp(sym("g"), y, x), term.Wildcard)
	got := term.ExtractVars(tree)
	want := []term.Variable{x, y}
	eq := cmp.Comparer(func(a, b term.Variable) bool { return a == b })
	if diff := cmp.Diff(want, got, eq); diff != "" {
		t.Errorf("ExtractVars(%v): diff (-want +got):\n%s", tree, diff)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		t    term.Term
		want string
	}{
		{sym("alice"), ":alice"},
		{term.Int(42), "42"},
		{term.Str("text"), `"text"`},
		{term.Bool(true), "true"},
		{term.Null, "null"},
		{term.NewVariable("x"), "?x"},
		{term.Wildcard, "?"},
		{comp(sym("likes"), sym("alice"), sym("bob")), "[:likes :alice :bob]"},
	}
	for _, test := range tests {
		if got := test.t.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestVariableWithSuffix(t *testing.T) {
	x := term.NewVariable("x")
	x1 := x.WithSuffix(1)
	if term.Equal(x, x1) {
		t.Error("?x and its renamed copy should be distinct terms")
	}
	if term.Key(x) == term.Key(x1) {
		t.Error("renamed variable must not collide with the original in Key()")
	}
	if got := x1.String(); got != "?x_1" {
		t.Errorf("String() = %q, want ?x_1", got)
	}
}
