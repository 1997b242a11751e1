package futureindex

// Four-level radix tree keyed on the 58 significant address bits (the low
// 6 bits, the 64-byte line offset, are masked off by the caller before any
// lookup reaches here). Split 16/16/16/10, matching the layout called out
// as design-intended: intermediate levels are allocated lazily so memory is
// spent only on the address ranges a trace actually touches, and every
// lookup is a bounded four-pointer chase with no hashing and no collisions.
const (
	rl1Bits = 16
	rl2Bits = 16
	rl3Bits = 16
	rl4Bits = 10

	rl1Size = 1 << rl1Bits
	rl2Size = 1 << rl2Bits
	rl3Size = 1 << rl3Bits
	rl4Size = 1 << rl4Bits

	rl1Shift = 64 - rl1Bits
	rl2Shift = rl1Shift - rl2Bits
	rl3Shift = rl2Shift - rl3Bits
	rl4Shift = rl3Shift - rl4Bits // == 6, the line-offset width

	rl2Mask = rl2Size - 1
	rl3Mask = rl3Size - 1
	rl4Mask = rl4Size - 1
)

type rl2Table struct{ entries [rl2Size]*rl3Table }
type rl3Table struct{ entries [rl3Size]*rl4Table }
type rl4Table struct{ entries [rl4Size]*usageQueue }

// radixIndex is the BackendRadix storage.
type radixIndex struct {
	root    []*rl2Table // length rl1Size, allocated once at construction
	resident int
}

func newRadixIndex() *radixIndex {
	return &radixIndex{root: make([]*rl2Table, rl1Size)}
}

func (r *radixIndex) indices(key uint64) (i1, i2, i3, i4 uint64) {
	i1 = (key >> rl1Shift) & (rl1Size - 1)
	i2 = (key >> rl2Shift) & rl2Mask
	i3 = (key >> rl3Shift) & rl3Mask
	i4 = (key >> rl4Shift) & rl4Mask
	return
}

func (r *radixIndex) getOrCreate(key uint64) *usageQueue {
	i1, i2, i3, i4 := r.indices(key)

	l2 := r.root[i1]
	if l2 == nil {
		l2 = &rl2Table{}
		r.root[i1] = l2
	}
	l3 := l2.entries[i2]
	if l3 == nil {
		l3 = &rl3Table{}
		l2.entries[i2] = l3
	}
	l4 := l3.entries[i3]
	if l4 == nil {
		l4 = &rl4Table{}
		l3.entries[i3] = l4
	}
	q := l4.entries[i4]
	if q == nil {
		q = &usageQueue{}
		l4.entries[i4] = q
		r.resident++
	}
	return q
}

func (r *radixIndex) get(key uint64) (*usageQueue, bool) {
	i1, i2, i3, i4 := r.indices(key)

	l2 := r.root[i1]
	if l2 == nil {
		return nil, false
	}
	l3 := l2.entries[i2]
	if l3 == nil {
		return nil, false
	}
	l4 := l3.entries[i3]
	if l4 == nil {
		return nil, false
	}
	q := l4.entries[i4]
	if q == nil {
		return nil, false
	}
	return q, true
}

func (r *radixIndex) len() int { return r.resident }
