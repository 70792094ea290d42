// Package metrics holds the Prometheus instruments for the API server and
// the segment resolver. A Collector owns its own registry so tests can
// construct isolated instances without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec // labels: method, status
	HTTPDuration prometheus.Histogram

	RoutingLookups  *prometheus.CounterVec // outcome label: ok|fallback
	RoutingDuration prometheus.Histogram

	ResolvePasses    prometheus.Counter
	ResolveDiscarded prometheus.Counter // superseded passes whose results were dropped
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "itinera_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		RoutingLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_routing_lookups_total",
			Help: "Total per-gap routing lookups by outcome.",
		}, []string{"outcome"}),
		RoutingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "itinera_routing_lookup_duration_seconds",
			Help:    "Duration of external routing lookups.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		ResolvePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "itinera_resolve_passes_total",
			Help: "Total segment resolution passes started.",
		}),
		ResolveDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "itinera_resolve_passes_discarded_total",
			Help: "Resolution passes superseded before their results surfaced.",
		}),
	}

	reg.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.RoutingLookups, c.RoutingDuration,
		c.ResolvePasses, c.ResolveDiscarded,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
