package futureindex

// lineMask clears the 64-byte line offset so two addresses in the same
// cache line are treated as the same key.
const lineMask = ^uint64(0x3F)

// Backend selects which storage shape an Index uses. Both are equivalent
// in externally observable semantics. The zero value is BackendRadix, so a
// default-constructed Options gets the radix-tree backend.
type Backend int

const (
	// BackendRadix keeps a four-level lazily allocated radix tree.
	BackendRadix Backend = iota
	// BackendHash keeps a plain Go map keyed by line-aligned address.
	BackendHash
)

// Index is the future-reference index: address -> ordered queue of future
// reference timestamps. The zero value is not usable; construct with New
// or a Builder.
type Index struct {
	s storage
}

// New constructs an Index with the given backend. Most callers should use
// Builder instead, which also lets the preload and victim-selection packages
// share one construction path.
func New(backend Backend) *Index {
	switch backend {
	case BackendRadix:
		return &Index{s: newRadixIndex()}
	default:
		return &Index{s: newHashIndex()}
	}
}

// Insert appends t to the queue for addr, creating the queue if this is the
// first time addr is seen. Callers must pass strictly increasing timestamps
// per address (trace order); Insert does not re-validate this.
func (idx *Index) Insert(addr, t uint64) {
	idx.s.getOrCreate(addr & lineMask).insert(t)
}

// PeekNext returns the current-cursor timestamp for addr if one exists and
// is >= t. ok is false when addr has never been seen, or its queue is
// exhausted, or its current entry is older than t — all three mean
// "never reused" from the caller's point of view.
func (idx *Index) PeekNext(addr, t uint64) (timestamp uint64, ok bool) {
	q, found := idx.s.get(addr & lineMask)
	if !found {
		return 0, false
	}
	return q.peekNext(t)
}

// Advance moves addr's cursor forward by one, consuming its current future
// reference. A no-op if addr was never seen or its queue is exhausted.
func (idx *Index) Advance(addr uint64) {
	q, ok := idx.s.get(addr & lineMask)
	if !ok {
		return
	}
	q.advance()
}

// Contains reports whether addr has ever been inserted.
func (idx *Index) Contains(addr uint64) bool {
	_, ok := idx.s.get(addr & lineMask)
	return ok
}

// Len reports the number of distinct addresses tracked by the index.
func (idx *Index) Len() int { return idx.s.len() }

// Builder constructs an Index with a fluent configuration surface, mirroring
// the functional-options builders used elsewhere for multi-parameter
// constructors.
type Builder struct {
	backend Backend
}

// NewBuilder returns a Builder defaulting to BackendRadix, the
// design-intended shape.
func NewBuilder() Builder { return Builder{backend: BackendRadix} }

// WithBackend selects the storage backend.
func (b Builder) WithBackend(backend Backend) Builder {
	b.backend = backend
	return b
}

// Build constructs the configured Index.
func (b Builder) Build() *Index { return New(b.backend) }
