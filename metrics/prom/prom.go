// Package prom implements replacement.Metrics with Prometheus counters and
// gauges.
package prom

import (
	"github.com/archsim/beladyopt/replacement"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements replacement.Metrics and exports Prometheus counters
// and gauges. Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	loads        prometheus.Counter
	stores       prometheus.Counter
	victims      *prometheus.CounterVec
	residentSize prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "preload_loads_total",
			Help:        "Load operands observed during preload",
			ConstLabels: constLabels,
		}),
		stores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "preload_stores_total",
			Help:        "Store operands observed during preload",
			ConstLabels: constLabels,
		}),
		victims: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "victims_total",
				Help:        "Victim selections by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		residentSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "index_resident_addresses",
			Help:        "Distinct addresses currently tracked by the future-reference index",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.loads, a.stores, a.victims, a.residentSize)
	return a
}

// Preloaded adds the load/store counts observed by one preload pass.
func (a *Adapter) Preloaded(loads, stores uint64) {
	a.loads.Add(float64(loads))
	a.stores.Add(float64(stores))
}

// VictimChosen increments the victim counter with a reason label.
func (a *Adapter) VictimChosen(r replacement.VictimReason) {
	a.victims.WithLabelValues(reason(r)).Inc()
}

// IndexSize sets the resident-address gauge.
func (a *Adapter) IndexSize(resident int) {
	a.residentSize.Set(float64(resident))
}

func reason(r replacement.VictimReason) string {
	switch r {
	case replacement.VictimInvalid:
		return "invalid"
	case replacement.VictimNeverReused:
		return "never_reused"
	default:
		return "maximal"
	}
}

// Compile-time check: ensure Adapter implements replacement.Metrics.
var _ replacement.Metrics = (*Adapter)(nil)
