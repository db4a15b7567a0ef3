// Package metrics collects run counters on a private Prometheus registry and
// writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	reg *prometheus.Registry

	ProfilesLoaded prometheus.Counter
	ProfilesPruned prometheus.Counter
	Flagged        prometheus.Gauge
	Stored         prometheus.Gauge
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	PhaseDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ProfilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strdb_profiles_loaded_total",
			Help: "Profiles read from the input database, duplicates included.",
		}),
		ProfilesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strdb_profiles_pruned_total",
			Help: "Profiles removed because they were not of interest.",
		}),
		Flagged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "strdb_profiles_flagged",
			Help: "Profiles currently flagged as of interest.",
		}),
		Stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "strdb_profiles_stored",
			Help: "Profiles currently held in the store.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strdb_occurrence_cache_hits_total",
			Help: "STR occurrence lookups answered from the memo.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strdb_occurrence_cache_misses_total",
			Help: "STR occurrence lookups that scanned the unknown sequences.",
		}),
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "strdb_phase_duration_seconds",
			Help:    "Wall time of each processing phase.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"phase"}),
	}
	m.reg.MustRegister(m.ProfilesLoaded, m.ProfilesPruned, m.Flagged, m.Stored,
		m.CacheHits, m.CacheMisses, m.PhaseDuration)
	return m
}

// Time runs fn and records its duration under phase.
func (m *Metrics) Time(phase string, fn func()) {
	start := time.Now()
	fn()
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteFile writes all metrics to path atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
