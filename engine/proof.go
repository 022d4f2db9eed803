package engine

import (
	"strings"

	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
)

// ProofKind tags a Proof's variant.
type ProofKind int

const (
	// FactKind proofs close a goal directly against a fact.
	FactKind ProofKind = iota
	// RuleKind proofs close a goal by firing a rule, recursing into
	// its antecedents.
	RuleKind
	// NegationKind proofs close a `[:not g]` goal because g has no
	// proof under the closed-world assumption.
	NegationKind
)

// Proof is a node in a proof tree. For FactKind, Fact holds the
// matched fact and Children is empty. For RuleKind, Rule holds
// the rule that fired and Children holds one proof per antecedent, in
// the rule's antecedent order. For NegationKind, Goal holds the
// [:not g] goal and Children is empty.
type Proof struct {
	Kind     ProofKind
	Goal     term.Term
	Bindings *subst.Subst
	Fact     term.Term
	Rule     *rule.Rule
	Children []*Proof

	// Round is the forward-saturation round in which the fact-branch
	// leaf was asserted, or -1 if the fact was asserted from outside
	// the forward chainer (via Engine.Assert). Rule-branch and
	// negation nodes carry -1; only fact leaves carry this provenance.
	Round int
}

func (p *Proof) String() string {
	var b strings.Builder
	writeProof(&b, p, 0)
	return b.String()
}

func writeProof(b *strings.Builder, p *Proof, indent int) {
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	switch p.Kind {
	case FactKind:
		b.WriteString("fact: ")
		b.WriteString(p.Fact.String())
	case NegationKind:
		b.WriteString("not: ")
		b.WriteString(p.Goal.String())
	case RuleKind:
		b.WriteString("rule")
		if p.Rule.Name != "" {
			b.WriteString(" ")
			b.WriteString(p.Rule.Name)
		}
		b.WriteString(": ")
		b.WriteString(p.Goal.String())
		for _, c := range p.Children {
			b.WriteByte('\n')
			writeProof(b, c, indent+1)
		}
	}
}

// Apply instantiates goal under the proof's bindings.
func (p *Proof) Apply(goal term.Term) term.Term {
	return subst.Apply(goal, p.Bindings)
}

// Depth returns the tree depth of p (0 for a leaf).
func (p *Proof) Depth() int {
	max := 0
	for _, c := range p.Children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}
