// Package futureindex implements the future-reference index: for every
// address touched by a trace, an ordered queue of the timestamps at which
// it will next be used. It answers "when is this address referenced next,
// at or after time t" in O(1), and exposes a monotonic per-address cursor
// that the caller advances as references are consumed.
//
// Design
//
//   - Storage: two interchangeable backends behind the same Index type,
//     selected with Builder.WithBackend. BackendHash keeps a plain Go map
//     keyed by line-aligned address. BackendRadix keeps a four-level tree
//     split on the address bits (16/16/16/10), allocating child levels
//     lazily so memory is spent only on address ranges actually touched.
//     Both backends are equivalent in semantics; callers should not be
//     able to tell which one is active from query results.
//
//   - Queue growth: each address owns a doubling array of timestamps plus
//     a read cursor (see queue.go). Initial capacity is 4; the array never
//     shrinks, matching the batch-job memory policy: the index lives for
//     the process lifetime and is discarded wholesale at shutdown.
//
//   - Address masking: the six low-order bits (64-byte line offset) never
//     distinguish two keys. Insert/PeekNext/Advance/Contains all mask them
//     off before touching storage, so callers may pass either line-aligned
//     or byte-exact addresses.
//
// Concurrency: Index has no internal locking. It is built once, single
// threaded, during preload (append-only), then queried and cursor-advanced
// single threaded during simulation. This matches the host's cooperative,
// single-threaded execution model; wrap an Index in a mutex if a caller
// ever needs it from more than one goroutine at a time.
package futureindex
