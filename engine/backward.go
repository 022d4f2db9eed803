package engine

import (
	"log/slog"

	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
	"github.com/brunokim/inferd/unify"
)

// ProveOptions tunes a single backward query.
type ProveOptions struct {
	// Limit caps the number of proofs (or bindings, for Ask) returned.
	// Zero means no cap.
	Limit int
}

func firstOpt(opts []ProveOptions) ProveOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return ProveOptions{}
}

// Prove enumerates proofs of goal up to max-depth, in the order given
// by the configured strategy. Unify and match failures along the way
// are not errors, they just contribute no proofs; a branch pruned by
// max-depth is dropped silently and flags Stats().DepthLimitHit.
func (e *Engine) Prove(goal term.Term, opts ...ProveOptions) []*Proof {
	logger := e.traceLogger()
	p := &prover{e: e, maxDepth: e.config.MaxDepth, logger: logger}
	if logger != nil {
		p.runID = newRunID()
		logger.Info("prove start", slog.String("run", p.runID), slog.String("goal", goal.String()))
	}
	var proofs []*Proof
	if e.config.Strategy == IterativeDeepening {
		proofs = p.iterativeDeepening(goal)
	} else {
		proofs = p.prove(goal, subst.Empty(), 0)
	}
	if p.depthHit {
		e.depthLimitHit = true
	}
	e.backwardProofs += len(proofs)
	if o := firstOpt(opts); o.Limit > 0 && len(proofs) > o.Limit {
		proofs = proofs[:o.Limit]
	}
	if logger != nil {
		logger.Info("prove done", slog.String("run", p.runID), slog.Int("proofs", len(proofs)))
	}
	return proofs
}

// ProveOne returns the first proof of goal in strategy order, if any.
func (e *Engine) ProveOne(goal term.Term, opts ...ProveOptions) (*Proof, bool) {
	o := firstOpt(opts)
	o.Limit = 1
	proofs := e.Prove(goal, o)
	if len(proofs) == 0 {
		return nil, false
	}
	return proofs[0], true
}

// Ask returns one binding map per proof of goal, restricted to the
// variables appearing in goal, in the prover's order.
func (e *Engine) Ask(goal term.Term, opts ...ProveOptions) []map[term.Variable]term.Term {
	vars := term.ExtractVars(goal)
	proofs := e.Prove(goal, opts...)
	out := make([]map[term.Variable]term.Term, len(proofs))
	for i, p := range proofs {
		out[i] = subst.Restrict(p.Bindings, vars)
	}
	return out
}

// Explain returns the first proof of goal, annotated with the
// provenance metadata carried on every Proof node (fact rounds, rule
// names and priorities).
func (e *Engine) Explain(goal term.Term) (*Proof, bool) {
	return e.ProveOne(goal)
}

// frame is one loop-check entry: re-entering the same (rule, goal)
// pair on a single search path fails that path immediately.
type frame struct {
	ruleIdx int
	goalKey string
}

type prover struct {
	e        *Engine
	maxDepth int
	frames   []frame
	fresh    int
	depthHit bool
	logger   *slog.Logger
	runID    string
}

// proofSeq is the result of proving a goal sequence: one proof per
// goal plus the substitution threaded through all of them.
type proofSeq struct {
	proofs   []*Proof
	bindings *subst.Subst
}

func (p *prover) prove(goal term.Term, s *subst.Subst, depth int) []*Proof {
	if depth > p.maxDepth {
		p.depthHit = true
		return nil
	}
	g := subst.Apply(goal, s)
	if p.logger != nil {
		p.logger.Debug("prove goal",
			slog.String("run", p.runID),
			slog.Int("depth", depth),
			slog.String("goal", g.String()))
	}

	if inner, ok := negatedGoal(g); ok {
		return p.proveNegation(g, inner, s, depth)
	}

	gKey := term.Key(g)
	ground := term.IsGround(g)
	remaining := p.maxDepth - depth
	cacheable := ground && len(p.frames) == 0
	if cacheable && p.e.failures.failed(gKey, remaining) {
		return nil
	}

	var proofs []*Proof
	// Fact branch: candidates narrowed by the goal's head, combined by
	// full unification since the goal may still hold variables.
	for _, f := range p.e.facts.Candidates(g) {
		if s2, ok := unify.Unify(g, f, s); ok {
			proofs = append(proofs, &Proof{
				Kind:     FactKind,
				Goal:     g,
				Bindings: s2,
				Fact:     f,
				Round:    p.e.FactRound(f),
			})
		}
	}

	// Rule branch: rule variables are renamed apart before unifying
	// each consequent with the goal, then antecedents are proven
	// left-to-right threading the substitution.
	var choices [][]*Proof
	for ri, r := range p.e.rules {
		fr := frame{ruleIdx: ri, goalKey: gKey}
		if p.entered(fr) {
			continue
		}
		when, then := p.freshen(r)
		var ruleProofs []*Proof
		p.frames = append(p.frames, fr)
		for _, c := range then {
			s2, ok := unify.Unify(g, c, s)
			if !ok {
				continue
			}
			for _, seq := range p.proveSeq(when, s2, depth+1) {
				ruleProofs = append(ruleProofs, &Proof{
					Kind:     RuleKind,
					Goal:     g,
					Bindings: seq.bindings,
					Rule:     r,
					Children: seq.proofs,
					Round:    -1,
				})
			}
		}
		p.frames = p.frames[:len(p.frames)-1]
		if len(ruleProofs) > 0 {
			choices = append(choices, ruleProofs)
		}
	}
	if p.e.config.Strategy == BreadthFirst {
		proofs = append(proofs, interleave(choices)...)
	} else {
		for _, ch := range choices {
			proofs = append(proofs, ch...)
		}
	}

	if len(proofs) == 0 && cacheable {
		p.e.failures.record(gKey, remaining)
	}
	return proofs
}

// proveSeq proves goals left-to-right under s, threading each proof's
// bindings into the next goal. The result is the Cartesian product of
// the per-goal alternatives, each paired with its final substitution.
func (p *prover) proveSeq(goals []term.Term, s *subst.Subst, depth int) []proofSeq {
	if len(goals) == 0 {
		return []proofSeq{{nil, s}}
	}
	var out []proofSeq
	for _, pr := range p.prove(goals[0], s, depth) {
		for _, rest := range p.proveSeq(goals[1:], pr.Bindings, depth) {
			proofs := make([]*Proof, 0, 1+len(rest.proofs))
			proofs = append(proofs, pr)
			proofs = append(proofs, rest.proofs...)
			out = append(out, proofSeq{proofs, rest.bindings})
		}
	}
	return out
}

// proveNegation implements negation as failure: [:not g] succeeds
// with the incoming bindings iff g has no proof. The result is never
// cached, since failure of g is relative to the current outer
// bindings.
func (p *prover) proveNegation(g, inner term.Term, s *subst.Subst, depth int) []*Proof {
	if len(p.prove(inner, s, depth+1)) > 0 {
		return nil
	}
	return []*Proof{{
		Kind:     NegationKind,
		Goal:     g,
		Bindings: s,
		Round:    -1,
	}}
}

// iterativeDeepening reruns depth-first search with caps 0..max-depth,
// deduplicating by the goal's instantiation under each proof's
// bindings so shallow proofs are reported once, at their shallowest
// cap.
func (p *prover) iterativeDeepening(goal term.Term) []*Proof {
	limit := p.e.config.MaxDepth
	seen := make(map[string]bool)
	var out []*Proof
	for bound := 0; bound <= limit; bound++ {
		p.maxDepth = bound
		// Shallow caps prune by construction; only pruning at the
		// final cap is worth reporting on stats.
		p.depthHit = false
		for _, pr := range p.prove(goal, subst.Empty(), 0) {
			key := term.Key(subst.Apply(goal, pr.Bindings))
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, pr)
		}
	}
	return out
}

func (p *prover) entered(fr frame) bool {
	for _, f := range p.frames {
		if f == fr {
			return true
		}
	}
	return false
}

// freshen renames every variable of r apart with a suffix unique to
// this application, so rule variables never collide with goal
// variables or with an outer application of the same rule.
func (p *prover) freshen(r *rule.Rule) (when, then []term.Term) {
	p.fresh++
	n := p.fresh
	when = make([]term.Term, len(r.When))
	for i, t := range r.When {
		when[i] = renameVars(t, n)
	}
	then = make([]term.Term, len(r.Then))
	for i, t := range r.Then {
		then[i] = renameVars(t, n)
	}
	return when, then
}

func renameVars(t term.Term, n int) term.Term {
	switch x := t.(type) {
	case term.Variable:
		return x.WithSuffix(n)
	case *term.Compound:
		elems := make([]term.Term, len(x.Elements))
		for i, e := range x.Elements {
			elems[i] = renameVars(e, n)
		}
		return term.NewCompound(elems...)
	default:
		return t
	}
}

// negatedGoal recognizes the [:not g] form.
func negatedGoal(g term.Term) (term.Term, bool) {
	c, ok := g.(*term.Compound)
	if !ok || c.Len() != 2 {
		return nil, false
	}
	s, ok := c.HeadSymbol()
	if !ok || s.Name() != "not" {
		return nil, false
	}
	return c.At(1), true
}

// interleave round-robins across the per-rule proof lists, so at a
// given recursion depth no single rule choice starves the others in
// breadth-first order.
func interleave(choices [][]*Proof) []*Proof {
	var out []*Proof
	for i := 0; ; i++ {
		advanced := false
		for _, ch := range choices {
			if i < len(ch) {
				out = append(out, ch[i])
				advanced = true
			}
		}
		if !advanced {
			return out
		}
	}
}
