// Package metrics exposes pool and transport activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsSource is satisfied by *pool.Pool.
type StatsSource interface {
	Stats() pool.Stats
}

// Collector holds all Prometheus metrics of the server. It registers into
// its own registry so several instances can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	// Pool activity
	Events     *prometheus.CounterVec
	Selections *prometheus.CounterVec

	// Pool state, read from StatsSource at scrape time
	Entries     prometheus.GaugeFunc
	NSFW        prometheus.GaugeFunc
	SaveForever prometheus.GaugeFunc
	Viewers     prometheus.GaugeFunc

	// Transports
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	RPCRequests  *prometheus.CounterVec
}

func NewCollector(namespace string, src StatsSource) *Collector {
	registry := prometheus.NewRegistry()

	stat := func(name, help string, pick func(pool.Stats) int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(pick(src.Stats())) })
	}

	c := &Collector{
		registry: registry,
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "events_total",
				Help:      "Pool state changes by kind and removal reason",
			},
			[]string{"kind", "reason"},
		),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "selections_total",
				Help:      "Random selections by outcome tier and whether the filter fallback was used",
			},
			[]string{"tier", "fallback"},
		),
		Entries:     stat("entries", "Live entries in the pool", func(s pool.Stats) int { return s.Entries }),
		NSFW:        stat("nsfw_entries", "Live entries flagged NSFW", func(s pool.Stats) int { return s.NSFW }),
		SaveForever: stat("save_forever_entries", "Live entries exempt from expiry", func(s pool.Stats) int { return s.SaveForever }),
		Viewers:     stat("viewers", "Viewers with a view history", func(s pool.Stats) int { return s.Viewers }),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grpc_requests_total",
				Help:      "Total number of gRPC requests",
			},
			[]string{"method", "code"},
		),
	}

	registry.MustRegister(
		c.Events, c.Selections,
		c.Entries, c.NSFW, c.SaveForever, c.Viewers,
		c.HTTPRequests, c.HTTPDuration, c.RPCRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// HandleEvent makes the collector a pool listener.
func (c *Collector) HandleEvent(ev pool.Event) {
	c.Events.WithLabelValues(string(ev.Kind), string(ev.Reason)).Inc()
}

func (c *Collector) ObserveSelection(tier pool.Tier, fallback bool) {
	c.Selections.WithLabelValues(tier.String(), strconv.FormatBool(fallback)).Inc()
}

func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) ObserveRPC(method, code string) {
	c.RPCRequests.WithLabelValues(method, code).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry is exposed for tests and for adding process-level collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
