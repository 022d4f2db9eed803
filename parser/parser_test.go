package parser_test

import (
	"testing"

	"github.com/brunokim/inferd/dsl"
	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/parser"
	"github.com/brunokim/inferd/term"
	"github.com/brunokim/inferd/test_helpers"

	"github.com/google/go-cmp/cmp"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		input string
		want  term.Term
	}{
		{":alice", dsl.Sym("alice")},
		{"42", dsl.Int(42)},
		{"-7", dsl.Int(-7)},
		{"3.14", dsl.Float(3.14)},
		{"2e3", dsl.Float(2000)},
		{`"hello world"`, dsl.Str("hello world")},
		{`"a \"quoted\" bit\n"`, dsl.Str("a \"quoted\" bit\n")},
		{"true", dsl.Bool(true)},
		{"false", dsl.Bool(false)},
		{"null", term.Null},
		{"?x", dsl.Var("x")},
		{"?X", dsl.Var("X")},
		{"?", term.Wildcard},
		{"[]", dsl.Comp()},
		{"[:likes :alice :bob]", dsl.Comp(dsl.Sym("likes"), dsl.Sym("alice"), dsl.Sym("bob"))},
		{"[:age :alice 30]", dsl.Comp(dsl.Sym("age"), dsl.Sym("alice"), dsl.Int(30))},
		{"[:p ?x ?]", dsl.Comp(dsl.Sym("p"), dsl.Var("x"), term.Wildcard)},
		{"[:a [:b :c] :d]", dsl.Comp(dsl.Sym("a"), dsl.Comp(dsl.Sym("b"), dsl.Sym("c")), dsl.Sym("d"))},
		{"[:p  ?x\n\t?y]", dsl.Comp(dsl.Sym("p"), dsl.Var("x"), dsl.Var("y"))},
		{"[:p :a] % trailing comment", dsl.Comp(dsl.Sym("p"), dsl.Sym("a"))},
	}
	for _, test := range tests {
		got, err := parser.ParseTerm(test.input)
		if err != nil {
			t.Errorf("ParseTerm(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, test_helpers.TermOptions); diff != "" {
			t.Errorf("ParseTerm(%q): -want, +got:\n%s", test.input, diff)
		}
	}
}

func TestParseTermErrors(t *testing.T) {
	inputs := []string{
		"",
		"[:p :a",
		":",
		"bogus",
		`"unterminated`,
		"[:p] [:q]",
		"@",
		"- ",
	}
	for _, input := range inputs {
		got, err := parser.ParseTerm(input)
		if err == nil {
			t.Errorf("ParseTerm(%q) = %v, want error", input, got)
			continue
		}
		if errors.KindOf(err) != errors.Validation {
			t.Errorf("ParseTerm(%q): expected ValidationError, got %v", input, err)
		}
	}
}

func TestParseRule(t *testing.T) {
	input := `{when: [[:parent ?x ?y]], then: [[:ancestor ?x ?y]], name: "base", priority: 2}`
	r, err := parser.ParseRule(input)
	if err != nil {
		t.Fatalf("ParseRule(%q): %v", input, err)
	}
	want := dsl.MustRule(
		dsl.Terms(dsl.Comp(dsl.Sym("parent"), dsl.Var("x"), dsl.Var("y"))),
		dsl.Terms(dsl.Comp(dsl.Sym("ancestor"), dsl.Var("x"), dsl.Var("y"))),
		"base", 2)
	if diff := cmp.Diff(want, r, test_helpers.TermOptions); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestParseRuleRejectsUnsafe(t *testing.T) {
	_, err := parser.ParseRule(`{when: [[:p ?x]], then: [[:q ?y]]}`)
	if errors.KindOf(err) != errors.Validation {
		t.Errorf("expected ValidationError for unsafe rule, got %v", err)
	}
}

func TestParseProgram(t *testing.T) {
	text := test_helpers.Dedent(`
        % a tiny family base
        [:parent :alice :bob]
        [:parent :bob :carol]

        {when: [[:parent ?x ?y]], then: [[:ancestor ?x ?y]], name: "base"}
        {when: [[:ancestor ?x ?y] [:parent ?y ?z]],
         then: [[:ancestor ?x ?z]], name: "step"}
    `)
	prog, err := parser.ParseProgram(text)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Facts) != 2 {
		t.Errorf("got %d facts, want 2", len(prog.Facts))
	}
	if len(prog.Rules) != 2 {
		t.Errorf("got %d rules, want 2", len(prog.Rules))
	}
	if len(prog.Rules) == 2 && prog.Rules[1].Name != "step" {
		t.Errorf("second rule name = %q, want step", prog.Rules[1].Name)
	}
}

func TestRoundTripTerms(t *testing.T) {
	terms := []term.Term{
		dsl.Sym("alice"),
		dsl.Int(-3),
		dsl.Float(0.5),
		dsl.Str("with \"escape\""),
		dsl.Bool(true),
		term.Null,
		dsl.Var("Who"),
		term.Wildcard,
		dsl.Comp(dsl.Sym("likes"), dsl.Var("x"), dsl.Comp(dsl.Sym("list"), dsl.Int(1), dsl.Int(2))),
	}
	for _, want := range terms {
		got, err := parser.ParseTerm(want.String())
		if err != nil {
			t.Errorf("ParseTerm(%q): %v", want.String(), err)
			continue
		}
		if !term.Equal(want, got) {
			t.Errorf("round trip of %v produced %v", want, got)
		}
	}
}

func TestRoundTripRule(t *testing.T) {
	want := dsl.MustRule(
		dsl.Terms(
			dsl.Comp(dsl.Sym("ancestor"), dsl.Var("x"), dsl.Var("y")),
			dsl.Comp(dsl.Sym("parent"), dsl.Var("y"), dsl.Var("z"))),
		dsl.Terms(dsl.Comp(dsl.Sym("ancestor"), dsl.Var("x"), dsl.Var("z"))),
		"step", 1)
	got, err := parser.ParseRule(want.String())
	if err != nil {
		t.Fatalf("ParseRule(%q): %v", want.String(), err)
	}
	if diff := cmp.Diff(want, got, test_helpers.TermOptions); diff != "" {
		t.Errorf("round trip: -want, +got:\n%s", diff)
	}
}
