// Command optsim drives the optimal (Belady/MIN) replacement plugin, or one
// of the realizable baseline policies, over a binary memory trace and
// reports the resulting miss rate. It optionally serves pprof and
// Prometheus endpoints, mirroring how the rest of this module's tooling
// exposes observability.
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"

	"github.com/archsim/beladyopt/futureindex"
	pmet "github.com/archsim/beladyopt/metrics/prom"
	"github.com/archsim/beladyopt/policy"
	"github.com/archsim/beladyopt/policy/belady"
	"github.com/archsim/beladyopt/policy/lru"
	"github.com/archsim/beladyopt/policy/twoq"
	"github.com/archsim/beladyopt/replacement"
	"github.com/archsim/beladyopt/trace"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		tracePath  = flag.String("trace", "", "binary memory trace path; empty runs the built-in reference scenario")
		numWay     = flag.Int("ways", 3, "cache associativity (number of ways per set)")
		warmup     = flag.Uint64("warmup", 0, "instructions to skip before simulation starts")
		sim        = flag.Uint64("sim", 0, "instructions to simulate; 0 = until trace exhaustion")
		backend    = flag.String("backend", "radix", "future-reference index backend: radix | hash")
		policyName = flag.String("policy", "belady", "replacement policy: belady | lru | 2q")
		diagLog    = flag.Bool("diag-log", false, "write a CSV victim-decision log")
		diagPath   = flag.String("diag-log-path", "", "diagnostic log path; empty auto-generates one")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	var metrics replacement.Metrics
	if *metricsAddr != "" {
		m := pmet.New(nil, "optsim", "run", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
		metrics = m
	}

	var pol policy.Policy
	switch *policyName {
	case "belady":
		pol = belady.New()
	case "lru":
		pol = lru.New()
	case "2q":
		pol = twoq.New(*numWay/4, *numWay/2)
	default:
		log.Fatalf("unknown policy: %q (use belady, lru, or 2q)", *policyName)
	}

	var be futureindex.Backend
	switch *backend {
	case "radix":
		be = futureindex.BackendRadix
	case "hash":
		be = futureindex.BackendHash
	default:
		log.Fatalf("unknown backend: %q (use radix or hash)", *backend)
	}

	it, closeFn, err := openTrace(*tracePath)
	if err != nil {
		log.Fatalf("optsim: %v", err)
	}
	defer closeFn()

	p := replacement.New(replacement.Options{
		NumWay:                 *numWay,
		WarmupInstructions:     *warmup,
		SimulationInstructions: *sim,
		Backend:                be,
		Policy:                 pol,
		Metrics:                metrics,
		DiagLog:                *diagLog,
		DiagLogPath:            *diagPath,
	})

	if err := p.InitializeReplacement(it); err != nil {
		log.Printf("optsim: %v", err)
	}

	misses, accesses := simulate(p, it, *numWay, *warmup, *sim)

	missRate := 0.0
	if accesses > 0 {
		missRate = float64(misses) / float64(accesses) * 100
	}
	log.Printf("policy=%s backend=%s ways=%d accesses=%d misses=%d miss-rate=%.2f%%",
		*policyName, *backend, *numWay, accesses, misses, missRate)

	if err := p.FinalStats(); err != nil {
		log.Fatalf("optsim: %v", err)
	}
}

// openTrace returns a fresh iterator over the requested binary trace, or
// over the synthetic classic-OPT-example scenario ("ABCDABEABCDE") when no
// path is given.
func openTrace(path string) (trace.Iterator, func(), error) {
	if path == "" {
		return newLetterIterator("ABCDABEABCDE"), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	it := trace.NewBinaryIterator(f, trace.DefaultNumInstrSources, trace.DefaultNumInstrDestinations)
	return it, func() { _ = f.Close() }, nil
}

// letterIterator replays a short string as a trace, one record per letter,
// mapping distinct letters to distinct line-aligned addresses. It exists
// only to give the reference scenario something to run without requiring a
// trace file on disk.
type letterIterator struct {
	addrs []uint64
	pos   int
}

func newLetterIterator(s string) *letterIterator {
	addrs := make([]uint64, len(s))
	for i, c := range s {
		addrs[i] = uint64(c-'A'+1) << 6
	}
	return &letterIterator{addrs: addrs}
}

func (it *letterIterator) Next() (trace.Record, bool) {
	if it.pos >= len(it.addrs) {
		return trace.Record{}, false
	}
	r := trace.Record{SourceMemory: []uint64{it.addrs[it.pos]}, DestinationMemory: []uint64{0}}
	it.pos++
	return r, true
}

func (it *letterIterator) Rewind() error {
	it.pos = 0
	return nil
}

// identityTranslator treats every physical address as already virtual;
// real hosts supply their own page-table-backed Translator.
type identityTranslator struct{}

func (identityTranslator) Translate(paddr uint64) (uint64, bool) { return paddr, true }

// simulate drives a single-set, numWay-associative simulation loop over it,
// calling into p exactly as a trace-driven cache simulator would. It skips
// the first warmup instructions without issuing any FindVictim/Update
// calls, then simulates up to sim instructions (sim == 0: until trace
// exhaustion), starting its own timestamp counter at warmup, so the
// simulated time base lines up with the index preload already populated
// (preload.Run keys the first scanned instruction past warmup as
// timestamp warmup, not 0).
func simulate(p *replacement.Plugin, it trace.Iterator, numWay int, warmup, sim uint64) (misses, accesses uint64) {
	resident := make([]policy.ResidentBlock, numWay)
	tr := identityTranslator{}

	for i := uint64(0); i < warmup; i++ {
		if _, ok := it.Next(); !ok {
			return 0, 0
		}
	}

	t := warmup
	for sim == 0 || t < warmup+sim {
		rec, ok := it.Next()
		if !ok {
			break
		}
		for _, addr := range append(append([]uint64{}, rec.SourceMemory...), rec.DestinationMemory...) {
			if addr == 0 {
				continue
			}
			accesses++
			hitWay := -1
			for w, b := range resident {
				if b.Valid && b.Address == addr {
					hitWay = w
					break
				}
			}
			if hitWay >= 0 {
				p.UpdateReplacementState(0, 0, hitWay, addr, 0, 0, 0, true)
				continue
			}
			misses++
			way := p.FindVictim(0, t, 0, resident, 0, addr, 0, tr)
			resident[way] = policy.ResidentBlock{Valid: true, Address: addr}
			p.UpdateReplacementState(0, 0, way, addr, 0, 0, 0, false)
		}
		t++
	}
	return misses, accesses
}
