// Package metrics exposes Prometheus metrics for the login relay.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	OutcomeSuccess = "success"
)

// Collector records login outcomes and provider latency.
type Collector struct {
	logins          *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	rateLimited     prometheus.Counter
	gatherer        prometheus.Gatherer
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_logins_total",
			Help: "Completed login callbacks by outcome.",
		}, []string{"outcome"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_provider_request_seconds",
			Help:    "Latency of calls to the identity provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"call", "result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(c.logins, c.providerLatency, c.rateLimited)
	return c
}

// RecordLogin counts a finished callback. outcome is OutcomeSuccess or an error kind name.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// ObserveProviderCall records the latency of one call to the identity provider.
func (c *Collector) ObserveProviderCall(call string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.providerLatency.WithLabelValues(call, result).Observe(elapsed.Seconds())
}

func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
