// Package lru implements a baseline Least-Recently-Used Chooser, used to
// compare the optimal policy against a realizable one on the same trace.
package lru

import "github.com/archsim/beladyopt/policy"

// lruPolicy is a Policy factory: New binds no per-instance state of its own,
// mirroring how belady.New does it.
type lruPolicy struct{}

// New returns a Policy that selects the resident address least recently
// touched by Update.
func New() policy.Policy { return lruPolicy{} }

func (lruPolicy) New(_ policy.FutureIndexReader) policy.Chooser {
	return &chooser{seq: make(map[uint64]uint64)}
}

// chooser tracks per-address recency with a monotonic counter rather than
// the teacher's intrusive MRU/LRU list: the Chooser doesn't own the
// resident set's storage (the simulator does), so there is no list to
// splice — only a recency value per address, queried against whichever
// ways happen to be resident at ChooseVictim time.
type chooser struct {
	seq   map[uint64]uint64
	clock uint64
}

// ChooseVictim follows the same invalid-first rule as the optimal policy
// (§4 of the chosen policy's ChooseVictim contract): an empty way is always
// picked before any eviction decision is made. Among valid ways it picks
// the one with the smallest recency counter. LRU has no never-reused
// concept, so neverReused is always false.
func (c *chooser) ChooseVictim(t uint64, resident []policy.ResidentBlock, _ policy.Translator) (int, uint64, bool) {
	for w, b := range resident {
		if !b.Valid {
			return w, 0, false
		}
	}

	victim := 0
	var oldest uint64
	for w, b := range resident {
		s := c.seq[b.Address]
		if w == 0 || s < oldest {
			oldest = s
			victim = w
		}
	}
	return victim, t, false
}

// Update bumps the recency counter for vaddr unless this is a writeback
// hit, which the host does not count as a real use.
func (c *chooser) Update(vaddr uint64, _ bool, writebackHit bool) {
	if writebackHit {
		return
	}
	c.clock++
	c.seq[vaddr] = c.clock
}

var _ policy.Policy = lruPolicy{}
