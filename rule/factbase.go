package rule

import (
	"github.com/brunokim/inferd/errors"
	"github.com/brunokim/inferd/subst"
	"github.com/brunokim/inferd/term"
	"github.com/brunokim/inferd/unify"
)

// FactBase is a mutable, indexed set of facts. `all` gives O(1)
// membership and dedup; `byHead` restricts scans to facts sharing a
// relation head.
type FactBase struct {
	order  []term.Term          // insertion order, for deterministic iteration
	all    map[string]bool      // Key(fact) -> present
	byHead map[string][]term.Term // symbol name -> facts with that head, insertion order
}

// NewFactBase returns an empty fact base.
func NewFactBase() *FactBase {
	return &FactBase{
		all:    make(map[string]bool),
		byHead: make(map[string][]term.Term),
	}
}

// validate rejects non-compound or empty-compound facts.
func validate(fact term.Term) error {
	c, ok := fact.(*term.Compound)
	if !ok {
		return errors.NewValidationError("fact %v is not a compound", fact)
	}
	if c.Len() == 0 {
		return errors.NewValidationError("the empty compound is not a valid fact")
	}
	if !term.IsGround(fact) {
		return errors.NewValidationError("fact %v is not ground", fact)
	}
	return nil
}

// Assert adds fact to the fact base. A no-op if the fact is already
// present (idempotent). Rejects non-compound, empty-compound, or
// non-ground facts with a ValidationError.
func (fb *FactBase) Assert(fact term.Term) error {
	if err := validate(fact); err != nil {
		return err
	}
	key := term.Key(fact)
	if fb.all[key] {
		return nil
	}
	fb.all[key] = true
	fb.order = append(fb.order, fact)
	if head, ok := headName(fact); ok {
		fb.byHead[head] = append(fb.byHead[head], fact)
	}
	return nil
}

// Retract removes fact from the fact base. A no-op if absent.
func (fb *FactBase) Retract(fact term.Term) {
	key := term.Key(fact)
	if !fb.all[key] {
		return
	}
	delete(fb.all, key)
	fb.order = removeByKey(fb.order, key)
	if head, ok := headName(fact); ok {
		fb.byHead[head] = removeByKey(fb.byHead[head], key)
	}
}

func removeByKey(facts []term.Term, key string) []term.Term {
	out := facts[:0:0]
	for _, f := range facts {
		if term.Key(f) != key {
			out = append(out, f)
		}
	}
	return out
}

// Contains reports whether fact is present, in O(1).
func (fb *FactBase) Contains(fact term.Term) bool {
	return fb.all[term.Key(fact)]
}

// Clear empties the fact base.
func (fb *FactBase) Clear() {
	fb.order = nil
	fb.all = make(map[string]bool)
	fb.byHead = make(map[string][]term.Term)
}

// Len returns the number of facts.
func (fb *FactBase) Len() int { return len(fb.order) }

// All returns every fact, in insertion order (facts removed and later
// re-asserted are appended at their new position).
func (fb *FactBase) All() []term.Term {
	out := make([]term.Term, len(fb.order))
	copy(out, fb.order)
	return out
}

// ByRelation returns the facts whose head is the symbol named head,
// possibly empty.
func (fb *FactBase) ByRelation(head string) []term.Term {
	facts := fb.byHead[head]
	out := make([]term.Term, len(facts))
	copy(out, facts)
	return out
}

func headName(fact term.Term) (string, bool) {
	c, ok := fact.(*term.Compound)
	if !ok {
		return "", false
	}
	s, ok := c.HeadSymbol()
	if !ok {
		return "", false
	}
	return s.Name(), true
}

// Candidates returns the narrowed candidate set for matching pattern:
// ByRelation(head) when pattern's head is a ground symbol, else All().
func (fb *FactBase) Candidates(pattern term.Term) []term.Term {
	if c, ok := pattern.(*term.Compound); ok {
		if head, ok := headName(c); ok {
			return fb.ByRelation(head)
		}
	}
	return fb.All()
}

// Query matches pattern against the narrowed candidate set, extending
// s0, and returns one substitution per matching fact.
func (fb *FactBase) Query(pattern term.Term, s0 *subst.Subst) []*subst.Subst {
	return unify.MatchAll(pattern, fb.Candidates(pattern), s0)
}
