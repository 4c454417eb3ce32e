package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry. It satisfies the small
// metrics interfaces consumed by the directions adapter and the services.
type Collector struct {
	reg *prometheus.Registry

	ProviderRequests *prometheus.CounterVec // labels: mode, outcome
	RouteCacheHits   prometheus.Counter
	RouteCacheMisses prometheus.Counter

	ShuttleSyntheses *prometheus.CounterVec // label: outcome
	MatrixPairs      *prometheus.CounterVec // label: outcome

	AggregationDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripplanner_provider_requests_total",
			Help: "Directions provider requests by mode and outcome.",
		}, []string{"mode", "outcome"}),
		RouteCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripplanner_route_cache_hits_total",
			Help: "Directions response cache hits.",
		}),
		RouteCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripplanner_route_cache_misses_total",
			Help: "Directions response cache misses.",
		}),
		ShuttleSyntheses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripplanner_shuttle_syntheses_total",
			Help: "Shuttle synthesis attempts by outcome.",
		}, []string{"outcome"}),
		MatrixPairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripplanner_matrix_pairs_total",
			Help: "Distance matrix pair computations by outcome.",
		}, []string{"outcome"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripplanner_aggregation_duration_seconds",
			Help:    "Duration of full route aggregation cycles.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	reg.MustRegister(
		c.ProviderRequests,
		c.RouteCacheHits, c.RouteCacheMisses,
		c.ShuttleSyntheses, c.MatrixPairs,
		c.AggregationDuration,
	)

	return c
}

func (c *Collector) ProviderRequestInc(mode, outcome string) {
	c.ProviderRequests.WithLabelValues(mode, outcome).Inc()
}

func (c *Collector) RouteCacheHitInc()  { c.RouteCacheHits.Inc() }
func (c *Collector) RouteCacheMissInc() { c.RouteCacheMisses.Inc() }

func (c *Collector) ShuttleSynthesisInc(outcome string) {
	c.ShuttleSyntheses.WithLabelValues(outcome).Inc()
}

func (c *Collector) MatrixPairInc(outcome string) {
	c.MatrixPairs.WithLabelValues(outcome).Inc()
}

func (c *Collector) AggregationObserve(seconds float64) {
	c.AggregationDuration.Observe(seconds)
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on its own listener.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
