//go:build go1.18

package futureindex

import "testing"

// Fuzz the queue invariants directly: monotonic cursor, strictly increasing
// insert order, and "peek never returns a past value" under arbitrary
// advance/peek interleavings.
func FuzzUsageQueue_Invariants(f *testing.F) {
	f.Add(uint64(1), uint64(2), uint64(3), uint8(0))
	f.Add(uint64(10), uint64(10), uint64(10), uint8(5))
	f.Add(uint64(0), uint64(1), uint64(1<<63), uint8(255))

	f.Fuzz(func(t *testing.T, a, b, c uint64, advances uint8) {
		q := &usageQueue{}

		// Force strictly increasing timestamps regardless of fuzzer input,
		// since that's the only precondition insert relies on.
		ts := []uint64{a}
		if b <= ts[len(ts)-1] {
			b = ts[len(ts)-1] + 1
		}
		ts = append(ts, b)
		if c <= ts[len(ts)-1] {
			c = ts[len(ts)-1] + 1
		}
		ts = append(ts, c)

		for _, v := range ts {
			q.insert(v)
		}
		if q.len() != len(ts) {
			t.Fatalf("len() = %d, want %d", q.len(), len(ts))
		}

		prevCursor := q.cursor
		for i := 0; i < int(advances); i++ {
			q.advance()
			if q.cursor < prevCursor {
				t.Fatalf("cursor went backwards: %d -> %d", prevCursor, q.cursor)
			}
			if q.cursor > q.len() {
				t.Fatalf("cursor %d exceeded queue length %d", q.cursor, q.len())
			}
			prevCursor = q.cursor
		}

		queryAt := ts[0]
		if got, ok := q.peekNext(queryAt); ok && got < queryAt {
			t.Fatalf("peekNext(%d) returned %d, which is in the past", queryAt, got)
		}
	})
}
