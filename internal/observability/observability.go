// Package observability exports cache counters from the domain registry and
// the quadrature source. Deployments that prefer process-local metrics use
// the expvar recorder; scraped deployments register the Prometheus collector.
package observability

import (
	"expvar"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"spectralcore/internal/quadrature"
	"spectralcore/pkg/domain"
)

var expvarSeq uint64

// Snapshot captures a read-only view of the cache counters.
type Snapshot struct {
	DomainRegistry domain.RegistryStats `json:"domain_registry"`
	Quadrature     quadrature.Stats     `json:"quadrature"`
	RecordedAt     time.Time            `json:"recorded_at"`
}

// ExpvarRecorder publishes cache counters via expvar for deployments without
// external metrics infrastructure.
type ExpvarRecorder struct {
	name string
	quad *quadrature.Source
}

// NewExpvarRecorder publishes a recorder under the supplied name. When name
// is empty, a unique identifier is generated. A nil quadrature source leaves
// the quadrature counters zero.
func NewExpvarRecorder(name string, quad *quadrature.Source) *ExpvarRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("spectralcore_cache_metrics_%d", id)
	}
	rec := &ExpvarRecorder{name: name, quad: quad}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarRecorder) Name() string { return r.name }

// Snapshot returns the current counters.
func (r *ExpvarRecorder) Snapshot() Snapshot {
	snap := Snapshot{
		DomainRegistry: domain.DomainRegistryStats(),
		RecordedAt:     time.Now().UTC(),
	}
	if r.quad != nil {
		snap.Quadrature = r.quad.Stats()
	}
	return snap
}

// Collector exposes the same counters as a prometheus.Collector.
type Collector struct {
	quad *quadrature.Source

	registryHits    *prometheus.Desc
	registryMisses  *prometheus.Desc
	registrySize    *prometheus.Desc
	quadHits        *prometheus.Desc
	quadMisses      *prometheus.Desc
	quadStoreHits   *prometheus.Desc
	quadStoreErrors *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector over the domain registry and an optional
// quadrature source.
func NewCollector(quad *quadrature.Source) *Collector {
	return &Collector{
		quad: quad,
		registryHits: prometheus.NewDesc("spectralcore_domain_registry_hits_total",
			"Domain registry cache hits.", nil, nil),
		registryMisses: prometheus.NewDesc("spectralcore_domain_registry_misses_total",
			"Domain registry cache misses (constructions).", nil, nil),
		registrySize: prometheus.NewDesc("spectralcore_domain_registry_entries",
			"Domains held in the registry.", nil, nil),
		quadHits: prometheus.NewDesc("spectralcore_quadrature_hits_total",
			"Quadrature table cache hits.", nil, nil),
		quadMisses: prometheus.NewDesc("spectralcore_quadrature_misses_total",
			"Quadrature tables computed from scratch.", nil, nil),
		quadStoreHits: prometheus.NewDesc("spectralcore_quadrature_store_hits_total",
			"Quadrature tables hydrated from the persistent store.", nil, nil),
		quadStoreErrors: prometheus.NewDesc("spectralcore_quadrature_store_errors_total",
			"Persistent store failures on quadrature table load or save.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.registryHits
	ch <- c.registryMisses
	ch <- c.registrySize
	ch <- c.quadHits
	ch <- c.quadMisses
	ch <- c.quadStoreHits
	ch <- c.quadStoreErrors
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	reg := domain.DomainRegistryStats()
	ch <- prometheus.MustNewConstMetric(c.registryHits, prometheus.CounterValue, float64(reg.Hits))
	ch <- prometheus.MustNewConstMetric(c.registryMisses, prometheus.CounterValue, float64(reg.Misses))
	ch <- prometheus.MustNewConstMetric(c.registrySize, prometheus.GaugeValue, float64(reg.Size))

	var quad quadrature.Stats
	if c.quad != nil {
		quad = c.quad.Stats()
	}
	ch <- prometheus.MustNewConstMetric(c.quadHits, prometheus.CounterValue, float64(quad.Hits))
	ch <- prometheus.MustNewConstMetric(c.quadMisses, prometheus.CounterValue, float64(quad.Misses))
	ch <- prometheus.MustNewConstMetric(c.quadStoreHits, prometheus.CounterValue, float64(quad.StoreHits))
	ch <- prometheus.MustNewConstMetric(c.quadStoreErrors, prometheus.CounterValue, float64(quad.StoreErrors))
}
