package replacement

import (
	"github.com/archsim/beladyopt/futureindex"
	"github.com/archsim/beladyopt/policy"
)

// DefaultWritebackAccessType is the access-type value ChampSim-style hosts
// use to mark writeback traffic. UpdateReplacementState compares against
// this (or Options.WritebackAccessType, if set) to suppress the cursor
// advance on writeback hits, per the core's update contract.
const DefaultWritebackAccessType = 3

// Options configures a Plugin. Zero values are safe except NumWay, which
// must be set; sane defaults are applied in New():
//   - nil Metrics              => NoopMetrics
//   - nil Policy                => belady.New()
//   - NumInstrSources <= 0      => trace.DefaultNumInstrSources
//   - NumInstrDestinations <= 0 => trace.DefaultNumInstrDestinations
//   - WritebackAccessType == 0  => DefaultWritebackAccessType
type Options struct {
	// NumWay is the cache associativity. Required, must be > 0.
	NumWay int

	// WarmupInstructions and SimulationInstructions bound the preload scan
	// window, counted from the start of the trace. SimulationInstructions
	// == 0 means unbounded: preload scans to trace exhaustion instead of
	// stopping after warmup instructions. A short, explicit
	// SimulationInstructions on a long trace primes the future-reference
	// index over only part of it, which is a real (if unusual) request;
	// leaving it at its zero value to mean "a little" instead of
	// "everything" is the mistake this field is meant to prevent.
	WarmupInstructions     uint64
	SimulationInstructions uint64

	// NumInstrSources and NumInstrDestinations record the per-instruction
	// operand counts of the host's trace format. New fills in their
	// defaults, but the Plugin does not otherwise read them: preload ranges
	// over whatever operand slices the trace.Iterator returns.
	NumInstrSources      int
	NumInstrDestinations int

	// WritebackAccessType identifies writeback traffic in the access-type
	// values passed to UpdateReplacementState.
	WritebackAccessType uint32

	// Backend selects the future-reference index's storage shape; the zero
	// value is futureindex.BackendRadix.
	Backend futureindex.Backend

	// Policy selects the victim-selection strategy; nil => belady.New().
	Policy policy.Policy

	// Metrics receives observability signals; nil => NoopMetrics.
	Metrics Metrics

	// DiagLog enables the CSV diagnostic log (§6). DiagLogPath sets an
	// explicit file path; if empty while DiagLog is true, a unique default
	// name is generated.
	DiagLog     bool
	DiagLogPath string
}
