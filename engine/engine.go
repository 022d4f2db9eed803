// Package engine implements the inference engine proper: a mutable
// fact base and rule list behind a configuration record, the forward
// saturation loop, and the backward prover with proof trees.
//
// An engine is single-threaded: one logical actor drives assert,
// retract, RunForward and Prove. Distinct engines are fully
// independent and may run in parallel.
package engine

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/rule"
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
)

// Stats is the counter record returned by Engine.Stats.
type Stats struct {
	Facts          int
	Rules          int
	ForwardSteps   int  // forward rounds fired since creation
	BackwardProofs int  // proofs produced by Prove/ProveOne/Ask since creation
	DepthLimitHit  bool // true once any backward branch was pruned by max-depth
}

// provenance records when a fact entered the base: seq is the global
// assertion order (for the recency tie-breaker), round the forward
// round that derived it, or -1 for externally asserted facts.
type provenance struct {
	seq   int
	round int
}

// Engine owns a fact base, a rule list and a configuration record.
type Engine struct {
	facts  *rule.FactBase
	rules  []*rule.Rule
	config Config

	prov map[string]provenance
	seq  int

	rng *rand.Rand

	forwardSteps   int
	backwardProofs int
	depthLimitHit  bool

	failures *failureCache
}

// New returns an engine with the default configuration.
func New() *Engine {
	return NewFromConfig(DefaultConfig())
}

// NewFromConfig returns an engine with the given configuration. A zero
// RandSeed is replaced with a wall-clock-derived seed; set it
// explicitly (or via Configure("rand-seed", n)) for reproducible
// "random" conflict resolution.
func NewFromConfig(config Config) *Engine {
	if config.RandSeed == 0 {
		config.RandSeed = time.Now().UnixNano()
	}
	e := &Engine{
		facts:    rule.NewFactBase(),
		config:   config,
		prov:     make(map[string]provenance),
		failures: newFailureCache(),
	}
	e.reseed()
	return e
}

func (e *Engine) reseed() {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], uint64(e.config.RandSeed))
	e.rng = rand.New(rand.NewChaCha8(seed))
}

// Assert adds the given facts to the fact base, in order. Fails with a
// ValidationError on the first malformed fact; facts before it remain
// asserted.
func (e *Engine) Assert(facts ...term.Term) error {
	for _, f := range facts {
		if err := e.assertAt(f, -1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) assertAt(fact term.Term, round int) error {
	if e.facts.Contains(fact) {
		return nil
	}
	if err := e.facts.Assert(fact); err != nil {
		return err
	}
	e.prov[term.Key(fact)] = provenance{seq: e.seq, round: round}
	e.seq++
	e.failures.clear()
	return nil
}

// Retract removes the given facts from the fact base. Absent facts are
// no-ops.
func (e *Engine) Retract(facts ...term.Term) {
	for _, f := range facts {
		e.facts.Retract(f)
		delete(e.prov, term.Key(f))
	}
	e.failures.clear()
}

// Facts returns every fact in insertion order.
func (e *Engine) Facts() []term.Term {
	return e.facts.All()
}

// Contains reports whether fact is in the fact base.
func (e *Engine) Contains(fact term.Term) bool {
	return e.facts.Contains(fact)
}

// Query matches pattern against the fact base and returns one
// substitution per matching fact.
func (e *Engine) Query(pattern term.Term) []*subst.Subst {
	return e.facts.Query(pattern, subst.Empty())
}

// AddRule appends r to the rule list. Rules built outside rule.New are
// re-validated here, so a hand-assembled unsafe rule is still rejected
// with a ValidationError.
func (e *Engine) AddRule(r *rule.Rule) error {
	if r == nil {
		return errors.NewValidationError("nil rule")
	}
	checked, err := rule.New(r.When, r.Then, r.Name, r.Priority)
	if err != nil {
		return err
	}
	e.rules = append(e.rules, checked)
	e.failures.clear()
	return nil
}

// Rules returns the rule list in insertion order.
func (e *Engine) Rules() []*rule.Rule {
	out := make([]*rule.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Configure validates and applies a single configuration option.
func (e *Engine) Configure(key string, value interface{}) error {
	if err := e.config.Configure(key, value); err != nil {
		return err
	}
	if key == "rand-seed" {
		e.reseed()
	}
	return nil
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Clear empties the fact base. Rules, configuration and counters are
// kept.
func (e *Engine) Clear() {
	e.facts.Clear()
	e.prov = make(map[string]provenance)
	e.failures.clear()
}

// Stats returns the engine's counter record.
func (e *Engine) Stats() Stats {
	return Stats{
		Facts:          e.facts.Len(),
		Rules:          len(e.rules),
		ForwardSteps:   e.forwardSteps,
		BackwardProofs: e.backwardProofs,
		DepthLimitHit:  e.depthLimitHit,
	}
}

// factSeq returns the assertion sequence number of fact, or -1 if it
// is not in the base.
func (e *Engine) factSeq(fact term.Term) int {
	if p, ok := e.prov[term.Key(fact)]; ok {
		return p.seq
	}
	return -1
}

// FactRound returns the forward round that derived fact, or -1 for
// external asserts and unknown facts. This is the same provenance
// reported on Proof.Round by Explain.
func (e *Engine) FactRound(fact term.Term) int {
	if p, ok := e.prov[term.Key(fact)]; ok {
		return p.round
	}
	return -1
}
