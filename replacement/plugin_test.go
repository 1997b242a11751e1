package replacement

import (
	"testing"

	"github.com/archsim/beladyopt/policy"
	"github.com/archsim/beladyopt/trace"
)

type identityTranslator struct{}

func (identityTranslator) Translate(paddr uint64) (uint64, bool) { return paddr, true }

type sliceIterator struct {
	recs []trace.Record
	pos  int
}

func (s *sliceIterator) Next() (trace.Record, bool) {
	if s.pos >= len(s.recs) {
		return trace.Record{}, false
	}
	r := s.recs[s.pos]
	s.pos++
	return r, true
}

func (s *sliceIterator) Rewind() error {
	s.pos = 0
	return nil
}

func loadTrace(addrs []uint64) *sliceIterator {
	recs := make([]trace.Record, len(addrs))
	for i, a := range addrs {
		recs[i] = trace.Record{SourceMemory: []uint64{a}, DestinationMemory: []uint64{0}}
	}
	return &sliceIterator{recs: recs}
}

// runTrace drives addrs through a single-set, associativity-W simulation
// loop on top of p, returning the number of misses.
func runTrace(p *Plugin, addrs []uint64, numWay int) int {
	resident := make([]policy.ResidentBlock, numWay)
	misses := 0
	tr := identityTranslator{}

	for i, addr := range addrs {
		t := uint64(i)
		hitWay := -1
		for w, b := range resident {
			if b.Valid && b.Address == addr {
				hitWay = w
				break
			}
		}
		if hitWay >= 0 {
			p.UpdateReplacementState(0, 0, hitWay, addr, 0, 0, 0, true)
			continue
		}
		misses++
		way := p.FindVictim(0, t, 0, resident, 0, addr, 0, tr)
		resident[way] = policy.ResidentBlock{Valid: true, Address: addr}
		p.UpdateReplacementState(0, 0, way, addr, 0, 0, 0, false)
	}
	return misses
}

func letterAddrs(s string) []uint64 {
	out := make([]uint64, len(s))
	for i, c := range s {
		out[i] = uint64(c-'A'+1) << 6 // distinct line-aligned addresses
	}
	return out
}

// Concrete scenario 1: the classic OPT example, W=3, must produce exactly
// 7 misses.
func TestPlugin_ClassicOPTExample(t *testing.T) {
	t.Parallel()

	addrs := letterAddrs("ABCDABEABCDE")
	p := New(Options{NumWay: 3, SimulationInstructions: uint64(len(addrs))})

	it := loadTrace(addrs)
	if err := p.InitializeReplacement(it); err != nil {
		t.Fatalf("InitializeReplacement: %v", err)
	}

	if misses := runTrace(p, addrs, 3); misses != 7 {
		t.Fatalf("classic OPT example: got %d misses, want 7", misses)
	}
}

// An entirely-invalid resident set returns way 0 (boundary case, also
// exercised at the chooser level).
func TestPlugin_FindVictim_AllInvalid(t *testing.T) {
	t.Parallel()

	p := New(Options{NumWay: 2, SimulationInstructions: 2})
	it := loadTrace(letterAddrs("AB"))
	if err := p.InitializeReplacement(it); err != nil {
		t.Fatalf("InitializeReplacement: %v", err)
	}

	resident := []policy.ResidentBlock{{}, {}}
	if way := p.FindVictim(0, 0, 0, resident, 0, 0x40, 0, identityTranslator{}); way != 0 {
		t.Fatalf("all-invalid resident set must return way 0, got %d", way)
	}
}

// UpdateReplacementState must not advance the cursor on a writeback hit.
func TestPlugin_UpdateReplacementState_WritebackHitIsNoop(t *testing.T) {
	t.Parallel()

	p := New(Options{NumWay: 1, SimulationInstructions: 2})
	it := loadTrace(letterAddrs("AA"))
	if err := p.InitializeReplacement(it); err != nil {
		t.Fatalf("InitializeReplacement: %v", err)
	}

	addr := letterAddrs("A")[0]
	before, okBefore := p.idx.PeekNext(addr, 0)

	p.UpdateReplacementState(0, 0, 0, addr, 0, 0, DefaultWritebackAccessType, true)

	after, okAfter := p.idx.PeekNext(addr, 0)
	if before != after || okBefore != okAfter {
		t.Fatalf("writeback hit must not move the cursor: before=%d,%v after=%d,%v", before, okBefore, after, okAfter)
	}
}

// Trace-rewind idempotence: InitializeReplacement must leave the iterator
// positioned exactly where it started.
func TestPlugin_InitializeReplacement_RewindsTrace(t *testing.T) {
	t.Parallel()

	p := New(Options{NumWay: 2, SimulationInstructions: 2})
	it := loadTrace(letterAddrs("AB"))
	if err := p.InitializeReplacement(it); err != nil {
		t.Fatalf("InitializeReplacement: %v", err)
	}
	if it.pos != 0 {
		t.Fatalf("trace must be rewound, pos=%d", it.pos)
	}
}

// FinalStats is a safe no-op when no diagnostic log was configured.
func TestPlugin_FinalStats_NoDiagLog(t *testing.T) {
	t.Parallel()

	p := New(Options{NumWay: 1})
	if err := p.FinalStats(); err != nil {
		t.Fatalf("FinalStats: %v", err)
	}
}

func TestNew_PanicsWithoutNumWay(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("New must panic when NumWay <= 0")
		}
	}()
	New(Options{})
}
