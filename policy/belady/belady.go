// Package belady implements the optimal (Belady/OPT/MIN) victim-selection
// strategy: at a miss, evict the resident line whose next reference lies
// furthest in the future, using a future-reference index built ahead of
// time from the full trace.
package belady

import "github.com/archsim/beladyopt/policy"

// chooser is the per-configuration Belady instance bound to a future-index
// reader. It holds no state of its own beyond that binding: all mutable
// state (the cursors) lives in the index.
type chooser struct {
	idx policy.FutureIndexReader
}

type beladyPolicy struct{}

// New returns a Policy factory that constructs Belady chooser instances.
func New() policy.Policy { return beladyPolicy{} }

// New implements policy.Policy by binding a future-index reader and
// returning a ready-to-use Chooser.
func (beladyPolicy) New(idx policy.FutureIndexReader) policy.Chooser {
	return &chooser{idx: idx}
}

// ChooseVictim implements the four-step algorithm: invalid-first, translate,
// query with never-reused short-circuit, maximize with a lowest-way-index
// tie-break. It never advances a cursor itself: the victim is not actually
// referenced at t, it is merely evicted, and Update already advances every
// address that is referenced on the hit/fill that follows. Advancing here
// too would consume a future use that hasn't happened yet.
func (c *chooser) ChooseVictim(t uint64, resident []policy.ResidentBlock, tr policy.Translator) (int, uint64, bool) {
	for w, b := range resident {
		if !b.Valid {
			return w, 0, false
		}
	}

	var (
		bestWay  int
		bestNext uint64
		haveBest bool
	)

	for w, b := range resident {
		vaddr, ok := tr.Translate(b.Address)
		if !ok {
			// Translation failure is treated as never-reused: no larger
			// value can exist, so this way wins outright.
			return w, t, true
		}

		next, ok := c.idx.PeekNext(vaddr, t)
		if !ok {
			// Never reused again: the uniquely-optimal victim. Stop
			// scanning.
			return w, t, true
		}

		if !haveBest || next > bestNext {
			haveBest = true
			bestNext = next
			bestWay = w
		}
	}

	return bestWay, bestNext, false
}

// Update advances the cursor for the referenced address on every hit and
// fill, except writeback hits, keeping the index aligned with simulated
// time independent of eviction decisions.
func (c *chooser) Update(vaddr uint64, _ bool, writebackHit bool) {
	if writebackHit {
		return
	}
	c.idx.Advance(vaddr)
}
