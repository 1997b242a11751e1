package trace

import (
	"encoding/binary"
	"io"
)

// BinaryIterator reads fixed-size little-endian uint64 operand records from
// a seekable stream: NumSources source-memory addresses followed by
// NumDestinations destination-memory addresses, repeated per instruction.
// It is the reference Iterator used by cmd/optsim and by this module's own
// tests; production hosts bring their own Iterator matching their trace
// format.
type BinaryIterator struct {
	r               io.ReadSeeker
	numSources      int
	numDestinations int
}

// NewBinaryIterator constructs a BinaryIterator over r with the given
// per-instruction operand counts.
func NewBinaryIterator(r io.ReadSeeker, numSources, numDestinations int) *BinaryIterator {
	return &BinaryIterator{r: r, numSources: numSources, numDestinations: numDestinations}
}

// Next reads one record. ok is false at end of stream, including when the
// stream ends partway through a record (treated as trace-exhausted, not a
// fatal error).
func (b *BinaryIterator) Next() (Record, bool) {
	rec := Record{
		SourceMemory:      make([]uint64, b.numSources),
		DestinationMemory: make([]uint64, b.numDestinations),
	}
	for i := range rec.SourceMemory {
		if err := binary.Read(b.r, binary.LittleEndian, &rec.SourceMemory[i]); err != nil {
			return Record{}, false
		}
	}
	for i := range rec.DestinationMemory {
		if err := binary.Read(b.r, binary.LittleEndian, &rec.DestinationMemory[i]); err != nil {
			return Record{}, false
		}
	}
	return rec, true
}

// Rewind seeks the underlying stream back to its start.
func (b *BinaryIterator) Rewind() error {
	_, err := b.r.Seek(0, io.SeekStart)
	return err
}

var _ Iterator = (*BinaryIterator)(nil)
