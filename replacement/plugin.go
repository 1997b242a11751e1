// Package replacement ties the future-reference index, the trace
// preloader, and a victim-selection strategy together behind the four
// methods a trace-driven cache simulator calls into: initialize, find a
// victim, observe an update, and tear down.
package replacement

import (
	"log"

	"github.com/archsim/beladyopt/futureindex"
	"github.com/archsim/beladyopt/policy"
	"github.com/archsim/beladyopt/policy/belady"
	"github.com/archsim/beladyopt/preload"
	"github.com/archsim/beladyopt/trace"
)

// Plugin is the core-provided replacement policy: one future-reference
// index, one bound Chooser, and the ambient options/metrics/diagnostics
// around them. A Plugin is single-threaded: it is built once and driven by
// one simulated cache instance's callbacks in trace order (§5).
type Plugin struct {
	idx     *futureindex.Index
	chooser policy.Chooser
	opt     Options
	diag    *diagLog
}

// New constructs a Plugin. It panics if opt.NumWay <= 0: the plugin cannot
// operate without a known associativity, and this is a configuration
// error, not a runtime condition a caller should need to check for.
func New(opt Options) *Plugin {
	if opt.NumWay <= 0 {
		panic("replacement: NumWay must be > 0")
	}
	if opt.NumInstrSources <= 0 {
		opt.NumInstrSources = trace.DefaultNumInstrSources
	}
	if opt.NumInstrDestinations <= 0 {
		opt.NumInstrDestinations = trace.DefaultNumInstrDestinations
	}
	if opt.WritebackAccessType == 0 {
		opt.WritebackAccessType = DefaultWritebackAccessType
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = belady.New()
	}

	idx := futureindex.NewBuilder().WithBackend(opt.Backend).Build()
	p := &Plugin{
		idx:     idx,
		chooser: opt.Policy.New(idx),
		opt:     opt,
	}

	if opt.DiagLog {
		d, err := newDiagLog(opt.DiagLogPath)
		if err != nil {
			log.Printf("replacement: diagnostic log disabled: %v", err)
		} else {
			p.diag = d
		}
	}
	return p
}

// InitializeReplacement runs the trace preloader over tr, rewinds it, and
// reports diagnostic counters. A non-nil error is ErrTraceExhausted (or a
// Rewind failure) and is never fatal to the caller.
func (p *Plugin) InitializeReplacement(tr trace.Iterator) error {
	stats, err := preload.Run(tr, p.idx, p.opt.WarmupInstructions, p.opt.SimulationInstructions)
	p.opt.Metrics.Preloaded(stats.Loads, stats.Stores)
	p.opt.Metrics.IndexSize(p.idx.Len())
	log.Printf("replacement: saw %d loads and %d stores, index holds %d addresses",
		stats.Loads, stats.Stores, p.idx.Len())
	if err != nil {
		log.Printf("replacement: %v", err)
	}
	return err
}

// FindVictim runs the configured Chooser over the current resident set and
// returns the way to evict. tr translates each resident way's physical
// address to the virtual address the trace recorded.
func (p *Plugin) FindVictim(
	cpu uint32,
	t uint64,
	setID uint32,
	resident []policy.ResidentBlock,
	ip, fullAddr uint64,
	accessType uint32,
	tr policy.Translator,
) int {
	way, timestamp, neverReused := p.chooser.ChooseVictim(t, resident, tr)
	p.opt.Metrics.VictimChosen(victimReason(resident, way, neverReused))

	if p.diag != nil {
		p.diag.writeRow(cpu, t, setID, way, timestamp, fullAddr, ip, accessType)
	}
	return way
}

// UpdateReplacementState advances the cursor for address, unless this call
// reports a writeback hit.
func (p *Plugin) UpdateReplacementState(
	cpu uint32,
	setID uint32,
	way int,
	address uint64,
	ip uint64,
	victimAddr uint64,
	accessType uint32,
	hit bool,
) {
	writebackHit := hit && accessType == p.opt.WritebackAccessType
	p.chooser.Update(address, hit, writebackHit)
}

// FinalStats releases diagnostic resources.
func (p *Plugin) FinalStats() error {
	if p.diag == nil {
		return nil
	}
	return p.diag.Close()
}

func victimReason(resident []policy.ResidentBlock, way int, neverReused bool) VictimReason {
	if way < len(resident) && !resident[way].Valid {
		return VictimInvalid
	}
	if neverReused {
		return VictimNeverReused
	}
	return VictimMaximal
}
