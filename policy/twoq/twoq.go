// Package twoq implements a baseline 2Q eviction Chooser, used alongside
// lru as a realizable-policy comparison point for the optimal policy.
package twoq

import "github.com/archsim/beladyopt/policy"

// twoQPolicy is a Policy factory carrying the two queue capacities. Common
// choices: capIn ~ 25% of associativity, capGhost ~ 50-100% of associativity.
type twoQPolicy struct {
	capIn, capGhost int
}

// New constructs a 2Q policy factory with the given A1in and A1out (ghost)
// capacities.
func New(capIn, capGhost int) policy.Policy {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return twoQPolicy{capIn: capIn, capGhost: capGhost}
}

func (p twoQPolicy) New(_ policy.FutureIndexReader) policy.Chooser {
	return &chooser{
		capIn:    p.capIn,
		capGhost: p.capGhost,
		inSeq:    make(map[uint64]uint64),
		amSeq:    make(map[uint64]uint64),
		ghost:    make(map[uint64]uint64),
	}
}

// chooser classifies every resident address into one of two logical
// queues, A1in (first-time admissions) and Am (entries that proved
// useful), plus a ghost set A1out of recently evicted A1in addresses that
// earns a second chance on re-admission. Unlike the teacher's twoQ, this
// Chooser doesn't hold the cache storage itself (the simulator's resident
// array does) — it only tracks which queue each resident address belongs
// to and picks the eviction candidate from whichever queue is due.
type chooser struct {
	capIn, capGhost int
	clock           uint64

	inSeq map[uint64]uint64 // A1in: address -> admission/touch order
	amSeq map[uint64]uint64 // Am: address -> touch order
	ghost map[uint64]uint64 // A1out: address -> eviction order
}

// ChooseVictim evicts from A1in when it has grown past its quota among the
// resident set, otherwise evicts the coldest Am entry. The evicted
// address's queue membership is updated here, since this is the only point
// a victim is actually identified. 2Q has no never-reused concept, so
// neverReused is always false.
func (c *chooser) ChooseVictim(t uint64, resident []policy.ResidentBlock, _ policy.Translator) (int, uint64, bool) {
	for w, b := range resident {
		if !b.Valid {
			return w, 0, false
		}
	}

	inCount := 0
	for _, b := range resident {
		if _, ok := c.inSeq[b.Address]; ok {
			inCount++
		}
	}

	victim := -1
	if inCount > c.capIn {
		victim = c.coldest(resident, c.inSeq)
	}
	if victim < 0 {
		victim = c.coldest(resident, c.amSeq)
	}
	if victim < 0 {
		victim = c.coldest(resident, c.inSeq)
	}
	if victim < 0 {
		victim = 0
	}

	evicted := resident[victim].Address
	_, wasIn := c.inSeq[evicted]
	delete(c.inSeq, evicted)
	delete(c.amSeq, evicted)
	if wasIn {
		c.clock++
		c.ghost[evicted] = c.clock
		c.trimGhosts()
	}

	return victim, t, false
}

// coldest returns the resident way with the smallest seq in the given
// queue, or -1 if no resident address belongs to that queue.
func (c *chooser) coldest(resident []policy.ResidentBlock, seq map[uint64]uint64) int {
	victim := -1
	var oldest uint64
	for w, b := range resident {
		s, ok := seq[b.Address]
		if !ok {
			continue
		}
		if victim < 0 || s < oldest {
			oldest, victim = s, w
		}
	}
	return victim
}

// Update classifies vaddr: a hit promotes A1in entries into Am and
// refreshes Am entries; a miss admits into Am directly if vaddr carries a
// ghost (second chance), otherwise into A1in.
func (c *chooser) Update(vaddr uint64, hit bool, writebackHit bool) {
	if writebackHit {
		return
	}
	c.clock++

	if hit {
		if _, ok := c.inSeq[vaddr]; ok {
			delete(c.inSeq, vaddr)
		}
		c.amSeq[vaddr] = c.clock
		return
	}

	if _, ok := c.ghost[vaddr]; ok {
		delete(c.ghost, vaddr)
		c.amSeq[vaddr] = c.clock
		return
	}
	c.inSeq[vaddr] = c.clock
}

func (c *chooser) trimGhosts() {
	for len(c.ghost) > c.capGhost {
		var oldestAddr uint64
		var oldestSeq uint64
		first := true
		for addr, seq := range c.ghost {
			if first || seq < oldestSeq {
				oldestAddr, oldestSeq, first = addr, seq, false
			}
		}
		delete(c.ghost, oldestAddr)
	}
}

var _ policy.Policy = twoQPolicy{}
