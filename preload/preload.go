// Package preload implements the one-pass trace scan that populates a
// future-reference index before the host simulator starts issuing misses.
package preload

import (
	"errors"

	"github.com/archsim/beladyopt/futureindex"
	"github.com/archsim/beladyopt/trace"
)

// ErrTraceExhausted signals that the trace ended before warmup+simulation
// instructions were consumed. It is not fatal: the index is still
// internally consistent with whatever was read, and the caller should just
// log it.
var ErrTraceExhausted = errors.New("preload: trace ended before the requested window")

// Stats reports the number of memory operands observed during the scan,
// for diagnostic logging only; it has no bearing on correctness.
type Stats struct {
	Loads  uint64
	Stores uint64
}

// Run skips the first warmup instructions (still counting their indices),
// then inserts every non-zero source and destination memory address of
// each subsequent instruction into idx, keyed by the instruction index, up
// to (not including) instruction index warmup+sim. sim == 0 means
// unbounded: the scan runs to trace exhaustion instead of stopping after
// warmup instructions, and reaching the end of the trace past warmup is
// then not reported as ErrTraceExhausted. The trace is
// always rewound to its start before returning, whether or not it was
// exhausted early.
func Run(tr trace.Iterator, idx *futureindex.Index, warmup, sim uint64) (Stats, error) {
	var (
		stats     Stats
		ins       uint64
		exhausted bool
	)
	unbounded := sim == 0

	for ins < warmup {
		if _, ok := tr.Next(); !ok {
			exhausted = true
			break
		}
		ins++
	}

	for !exhausted {
		rec, ok := tr.Next()
		if !ok {
			exhausted = true
			break
		}

		for _, addr := range rec.SourceMemory {
			if addr == 0 {
				continue
			}
			idx.Insert(addr, ins)
			stats.Loads++
		}
		for _, addr := range rec.DestinationMemory {
			if addr == 0 {
				continue
			}
			idx.Insert(addr, ins)
			stats.Stores++
		}

		ins++
		if !unbounded && ins >= warmup+sim {
			break
		}
	}

	if err := tr.Rewind(); err != nil {
		return stats, err
	}
	if exhausted && (!unbounded || ins < warmup) {
		return stats, ErrTraceExhausted
	}
	return stats, nil
}
