package replacement

// VictimReason classifies why a victim was chosen, for observability only.
type VictimReason int

const (
	// VictimInvalid — an unused way was available and taken immediately.
	VictimInvalid VictimReason = iota
	// VictimNeverReused — the chosen way's address (or its translation)
	// has no remaining future reference.
	VictimNeverReused
	// VictimMaximal — the chosen way won the next-use maximization.
	VictimMaximal
)

// Metrics exposes plugin-level observability hooks. A NoopMetrics
// implementation is provided and used by default.
type Metrics interface {
	// Preloaded reports the load/store operand counts observed by one
	// InitializeReplacement call.
	Preloaded(loads, stores uint64)
	// VictimChosen is called once per FindVictim call with the reason the
	// returned way was selected.
	VictimChosen(reason VictimReason)
	// IndexSize reports the number of distinct addresses currently tracked
	// by the future-reference index.
	IndexSize(resident int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Preloaded(loads, stores uint64) {}
func (NoopMetrics) VictimChosen(VictimReason)      {}
func (NoopMetrics) IndexSize(int)                  {}

var _ Metrics = NoopMetrics{}
