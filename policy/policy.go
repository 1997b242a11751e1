// Package policy defines the host-facing contract a victim-selection
// strategy binds to: the resident-block view the host exposes at a miss,
// the address translator the host provides, and the factory/instance split
// that lets a strategy be configured once and instantiated per cache
// configuration without caring how the host represents its own blocks.
package policy

// ResidentBlock is the host's view of one resident way at victim-selection
// time. The core never owns these; they are read-only snapshots.
type ResidentBlock struct {
	Valid   bool
	Address uint64 // physical address; meaningless when Valid is false
}

// Translator maps a physical address to the virtual address the trace was
// recorded against. ok is false on translation failure, which the chooser
// must treat as "never reused" (select this way immediately).
type Translator interface {
	Translate(paddr uint64) (vaddr uint64, ok bool)
}

// FutureIndexReader is the read/advance surface a Chooser needs out of a
// future-reference index. It intentionally excludes Insert: victim selection
// never populates the index, only preload does.
type FutureIndexReader interface {
	PeekNext(addr, t uint64) (timestamp uint64, ok bool)
	Advance(addr uint64)
}

// Chooser picks a victim way at a miss and is later notified of hits and
// fills so it can keep any internal state (here, the future index's
// cursors) aligned with simulated time.
type Chooser interface {
	// ChooseVictim returns the way index to evict among resident, given the
	// current time t and the address translator for this access's cpu.
	// timestamp is the value a diagnostic log should attribute to the
	// decision: 0 for an invalid-way pick, t for a never-reused pick
	// (translation failure or exhausted queue), or the winning next-use
	// time for a maximal pick — mirroring the source's own log line, which
	// captures this value before the victim's cursor advances. neverReused
	// reports whether the pick was forced by a translation failure or an
	// exhausted/absent future-use queue; callers must use this, not a
	// timestamp == t comparison, to tell that case apart from a genuine
	// maximal pick whose winning next-use time happens to equal t.
	ChooseVictim(t uint64, resident []ResidentBlock, tr Translator) (way int, timestamp uint64, neverReused bool)

	// Update is called on every hit and fill. writebackHit suppresses the
	// cursor advance for writeback hits, per the core's update contract.
	Update(vaddr uint64, hit bool, writebackHit bool)
}

// Policy is a factory that binds a strategy to a FutureIndexReader and
// returns a ready-to-use Chooser. This module ships the optimal policy
// (package belady) and two baseline policies (packages lru and twoq); the
// split exists because the host-facing
// replacement-policy contract in trace-driven simulators is itself
// pluggable, and keeping that seam lets a host swap strategies without
// touching the plugin glue.
type Policy interface {
	New(idx FutureIndexReader) Chooser
}
