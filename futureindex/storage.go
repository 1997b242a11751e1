package futureindex

// storage is the address -> usageQueue lookup surface shared by both
// backends. getOrCreate is used during preload (build phase); get is used
// during simulation (query phase) and never allocates.
type storage interface {
	getOrCreate(key uint64) *usageQueue
	get(key uint64) (*usageQueue, bool)
	len() int
}
