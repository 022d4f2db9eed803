package engine

import (
	"log/slog"
	"sort"

	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
	"github.com/brunokim/inferd/unify"
)

// activation is a (rule, substitution) pair whose firing would assert
// at least one new fact.
type activation struct {
	rule     *rule.Rule
	bindings *subst.Subst
	results  []term.Term // bound consequents, all ground
	novel    int         // how many of results are absent from the base
	recency  int         // highest assertion seq among supporting facts
	pos      int         // agenda position, the last-resort stable key
}

// antecedentMatch is one row of the left-fold join over a rule's
// antecedents: the accumulated substitution and the recency of the
// newest supporting fact.
type antecedentMatch struct {
	bindings *subst.Subst
	recency  int
}

// RunForward computes the closure of the fact base under the rule set.
// Each round builds the agenda of novel activations, stops at fixed
// point if it is empty, and otherwise fires the activation ranked
// first by the configured conflict-resolution chain. Returns a
// StepLimitExceeded error if max-steps rounds fire without reaching a
// fixed point.
func (e *Engine) RunForward() error {
	logger := e.traceLogger()
	var runID string
	if logger != nil {
		runID = newRunID()
	}
	for round := 0; ; round++ {
		agenda := e.buildAgenda()
		if len(agenda) == 0 {
			if logger != nil {
				logger.Info("forward fixed point",
					slog.String("run", runID),
					slog.Int("rounds", round),
					slog.Int("facts", e.facts.Len()))
			}
			return nil
		}
		if round >= e.config.MaxSteps {
			return errors.NewStepLimitError(
				"forward chaining did not reach a fixed point within %d steps", e.config.MaxSteps)
		}
		e.orderAgenda(agenda)
		act := agenda[0]
		e.forwardSteps++
		for _, f := range act.results {
			if err := e.assertAt(f, e.forwardSteps); err != nil {
				return errors.NewInternalError("firing %v produced invalid fact %v: %v", act.rule, f, err)
			}
		}
		if logger != nil {
			logger.Info("forward fire",
				slog.String("run", runID),
				slog.String("activation", newRunID()),
				slog.Int("round", round),
				slog.Int("agenda", len(agenda)),
				slog.String("rule", act.rule.Name),
				slog.Any("facts", act.results))
		}
	}
}

// buildAgenda collects every novel activation over the current fact
// base, in rule order then join order, which is deterministic for a
// given base snapshot.
func (e *Engine) buildAgenda() []*activation {
	var agenda []*activation
	for _, r := range e.rules {
		for _, m := range e.matchAntecedents(r) {
			act := e.newActivation(r, m)
			if act == nil || act.novel == 0 {
				continue
			}
			act.pos = len(agenda)
			agenda = append(agenda, act)
		}
	}
	return agenda
}

func (e *Engine) newActivation(r *rule.Rule, m antecedentMatch) *activation {
	results := make([]term.Term, len(r.Then))
	novel := 0
	for i, c := range r.Then {
		bound := unify.Bind(c, m.bindings)
		if !term.IsGround(bound) {
			// A safe rule binds every consequent variable; reaching
			// here means the rule list was corrupted.
			return nil
		}
		results[i] = bound
		if !e.facts.Contains(bound) {
			novel++
		}
	}
	return &activation{
		rule:     r,
		bindings: m.bindings,
		results:  results,
		novel:    novel,
		recency:  m.recency,
	}
}

// matchAntecedents computes the set of substitutions matching all of
// r's antecedents against the fact base, by left-fold join.
// Shared variables are bound by the earlier pattern and rechecked by
// the later one through the threaded substitution.
func (e *Engine) matchAntecedents(r *rule.Rule) []antecedentMatch {
	acc := []antecedentMatch{{subst.Empty(), -1}}
	for _, pat := range r.When {
		var next []antecedentMatch
		for _, m := range acc {
			narrowed := subst.Apply(pat, m.bindings)
			for _, f := range e.facts.Candidates(narrowed) {
				s, ok := unify.Match(pat, f, m.bindings)
				if !ok {
					continue
				}
				rec := m.recency
				if seq := e.factSeq(f); seq > rec {
					rec = seq
				}
				next = append(next, antecedentMatch{s, rec})
			}
		}
		if len(next) == 0 {
			return nil
		}
		acc = next
	}
	return acc
}

// orderAgenda sorts the agenda by the configured conflict-resolution
// chain. Every chain starts with rule priority and ends with
// the stable agenda position, so the order is total and runs are
// reproducible; "random" shuffles within equal-priority groups using
// the engine's seeded source.
func (e *Engine) orderAgenda(agenda []*activation) {
	var chain []func(a, b *activation) int
	switch e.config.ConflictResolution {
	case Priority:
		chain = []func(a, b *activation) int{byPriority}
	case Recency:
		chain = []func(a, b *activation) int{byPriority, byRecency}
	case Specificity:
		chain = []func(a, b *activation) int{byPriority, bySpecificity}
	case MRS:
		chain = []func(a, b *activation) int{byPriority, byRecency, bySpecificity}
	case MEVIS:
		chain = []func(a, b *activation) int{byPriority, bySpecificity, byRecency}
	case Random:
		e.shuffleWithinPriority(agenda)
		return
	}
	sort.SliceStable(agenda, func(i, j int) bool {
		for _, cmp := range chain {
			if c := cmp(agenda[i], agenda[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// byPriority ranks higher rule priority first.
func byPriority(a, b *activation) int { return b.rule.Priority - a.rule.Priority }

// bySpecificity ranks more antecedent patterns first.
func bySpecificity(a, b *activation) int { return len(b.rule.When) - len(a.rule.When) }

// byRecency ranks activations depending on later-asserted facts first.
func byRecency(a, b *activation) int { return b.recency - a.recency }

func (e *Engine) shuffleWithinPriority(agenda []*activation) {
	sort.SliceStable(agenda, func(i, j int) bool {
		return byPriority(agenda[i], agenda[j]) < 0
	})
	lo := 0
	for lo < len(agenda) {
		hi := lo + 1
		for hi < len(agenda) && agenda[hi].rule.Priority == agenda[lo].rule.Priority {
			hi++
		}
		group := agenda[lo:hi]
		e.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		lo = hi
	}
}
