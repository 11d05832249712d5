// Package metrics provides Prometheus metrics collection.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/minsu-kang/steamrec/ports"
)

// Collector implements ports.Metrics on Prometheus.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimitDenied *prometheus.CounterVec
	samplerAttempts prometheus.Histogram
	extractionCache *prometheus.CounterVec
}

// New creates a collector with all metrics registered on the default
// registry.
func New() *Collector {
	return &Collector{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "steamrec",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "steamrec",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		rateLimitDenied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "steamrec",
				Name:      "rate_limit_denied_total",
				Help:      "Requests rejected by the rate limiter",
			},
			[]string{"pattern"},
		),
		samplerAttempts: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "steamrec",
				Name:      "sampler_attempts",
				Help:      "Catalog lookups needed per recommendation sampling",
				Buckets:   []float64{1, 2, 3, 4, 5},
			},
		),
		extractionCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "steamrec",
				Name:      "extraction_cache_total",
				Help:      "Extraction cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RequestServed records one handled HTTP request.
func (c *Collector) RequestServed(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RateLimitDenied records a request rejected by the limiter.
func (c *Collector) RateLimitDenied(pattern string) {
	c.rateLimitDenied.WithLabelValues(pattern).Inc()
}

// SamplerAttempts records how many lookup attempts one sampling took.
func (c *Collector) SamplerAttempts(n int) {
	c.samplerAttempts.Observe(float64(n))
}

// ExtractionCache records an extraction cache hit or miss.
func (c *Collector) ExtractionCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	c.extractionCache.WithLabelValues(outcome).Inc()
}

// Noop discards all metrics.
type Noop struct{}

func (Noop) RequestServed(method, route string, status int, duration time.Duration) {}
func (Noop) RateLimitDenied(pattern string)                                         {}
func (Noop) SamplerAttempts(n int)                                                  {}
func (Noop) ExtractionCache(hit bool)                                               {}

// Ensure interface compliance.
var (
	_ ports.Metrics = (*Collector)(nil)
	_ ports.Metrics = Noop{}
)
