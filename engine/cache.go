package engine

import (
	"github.com/spaolacci/murmur3"
)

// failureCache memoizes definite failures of ground goals in the
// backward prover. A ground goal's provability does not depend on the
// incoming substitution, and a goal that fails with remaining depth
// budget r also fails under any budget <= r, so each entry stores the
// largest budget at which failure was observed. Entries are only
// written and read when the loop-check stack is empty, so a failure
// caused by loop pruning is never generalized. The whole cache is
// flushed on any mutation of facts or rules; correctness does not
// depend on it.
type failureCache struct {
	entries map[uint64]failEntry
}

type failEntry struct {
	goalKey   string // verified on hit, so hash collisions cannot lose proofs
	remaining int
}

func newFailureCache() *failureCache {
	return &failureCache{entries: make(map[uint64]failEntry)}
}

func (c *failureCache) failed(goalKey string, remaining int) bool {
	e, ok := c.entries[murmur3.Sum64([]byte(goalKey))]
	return ok && e.goalKey == goalKey && remaining <= e.remaining
}

func (c *failureCache) record(goalKey string, remaining int) {
	h := murmur3.Sum64([]byte(goalKey))
	if e, ok := c.entries[h]; ok && (e.goalKey != goalKey || e.remaining >= remaining) {
		return
	}
	c.entries[h] = failEntry{goalKey: goalKey, remaining: remaining}
}

func (c *failureCache) clear() {
	c.entries = make(map[uint64]failEntry)
}
