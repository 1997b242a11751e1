package twoq

import (
	"testing"

	"github.com/archsim/beladyopt/policy"
)

type identityTranslator struct{}

func (identityTranslator) Translate(paddr uint64) (uint64, bool) { return paddr, true }

// An entirely-invalid resident set returns way 0.
func TestChooseVictim_AllInvalid(t *testing.T) {
	t.Parallel()

	c := New(2, 4).New(nil)
	resident := []policy.ResidentBlock{{Valid: false}, {Valid: false}}
	if way, _, _ := c.ChooseVictim(1, resident, identityTranslator{}); way != 0 {
		t.Fatalf("all-invalid resident set must return way 0, got %d", way)
	}
}

// A first-time admission lands in A1in; once A1in exceeds its quota among
// the resident set, the coldest A1in entry is evicted ahead of anything in Am.
func TestChooseVictim_EvictsFromOverflowingA1in(t *testing.T) {
	t.Parallel()

	c := New(1, 4).New(nil)
	c.Update(0x10, false, false) // A1in
	c.Update(0x20, false, false) // A1in, overflowing capIn=1; 0x10 is coldest

	resident := []policy.ResidentBlock{
		{Valid: true, Address: 0x10},
		{Valid: true, Address: 0x20},
	}
	way, _, _ := c.ChooseVictim(2, resident, identityTranslator{})
	if resident[way].Address != 0x10 {
		t.Fatalf("want eviction of 0x10 (coldest A1in entry), got way %d addr %#x", way, resident[way].Address)
	}
}

// A hit promotes an A1in entry into Am, so it survives A1in pressure.
func TestChooseVictim_HitPromotesA1inToAm(t *testing.T) {
	t.Parallel()

	c := New(1, 4).New(nil)
	c.Update(0x10, false, false) // A1in
	c.Update(0x10, true, false)  // promoted to Am
	c.Update(0x20, false, false) // A1in, alone now

	resident := []policy.ResidentBlock{
		{Valid: true, Address: 0x10},
		{Valid: true, Address: 0x20},
	}
	// A1in count (1) does not exceed capIn (1): eviction falls back to Am,
	// whose only member is 0x10.
	way, _, _ := c.ChooseVictim(3, resident, identityTranslator{})
	if resident[way].Address != 0x10 {
		t.Fatalf("want eviction of promoted 0x10 from Am, got addr %#x", resident[way].Address)
	}
}

// An evicted A1in address earns a ghost entry; re-admission on a ghost hit
// bypasses A1in and lands directly in Am.
func TestUpdate_GhostReadmissionBypassesA1in(t *testing.T) {
	t.Parallel()

	c := New(1, 4).New(nil).(*chooser)
	c.Update(0x10, false, false)
	c.Update(0x20, false, false) // forces eviction decision below

	resident := []policy.ResidentBlock{
		{Valid: true, Address: 0x10},
		{Valid: true, Address: 0x20},
	}
	way, _, _ := c.ChooseVictim(2, resident, identityTranslator{})
	evicted := resident[way].Address
	if _, ok := c.ghost[evicted]; !ok {
		t.Fatalf("evicted address %#x must become a ghost", evicted)
	}

	c.Update(evicted, false, false) // re-admission: miss, but carries a ghost
	if _, ok := c.inSeq[evicted]; ok {
		t.Fatalf("ghost re-admission must bypass A1in")
	}
	if _, ok := c.amSeq[evicted]; !ok {
		t.Fatalf("ghost re-admission must land directly in Am")
	}
	if _, ok := c.ghost[evicted]; ok {
		t.Fatalf("ghost entry must be consumed on re-admission")
	}
}

// Writeback hits must not affect queue membership.
func TestUpdate_WritebackHitIsNoop(t *testing.T) {
	t.Parallel()

	c := New(2, 4).New(nil).(*chooser)
	c.Update(0x10, false, true)
	if len(c.inSeq) != 0 || len(c.amSeq) != 0 {
		t.Fatalf("writeback hit must not classify the address into any queue")
	}
}
