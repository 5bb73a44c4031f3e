// Package observability holds the Prometheus metric set for the
// ingestion pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProxyAttempts counts proxy-chain attempts by proxy name and outcome
	// (success, timeout, error, rejected).
	ProxyAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hazardwatch",
		Name:      "proxy_attempts_total",
		Help:      "Proxy fetch attempts by proxy and outcome.",
	}, []string{"proxy", "outcome"})

	// SourceFetches counts upstream source fetches by source name and outcome.
	SourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hazardwatch",
		Name:      "source_fetches_total",
		Help:      "Upstream source fetches by source and outcome.",
	}, []string{"source", "outcome"})

	// TopicItems tracks the number of items currently surfaced per topic.
	TopicItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hazardwatch",
		Name:      "topic_items",
		Help:      "Items currently surfaced per topic.",
	}, []string{"topic"})

	// RefreshDuration observes the duration of a topic refresh task.
	RefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hazardwatch",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a complete topic refresh.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"topic"})

	// RelayRequests counts proxy relay requests by decision
	// (forwarded, cached, missing_url, invalid_url, forbidden, upstream_error).
	RelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hazardwatch",
		Name:      "relay_requests_total",
		Help:      "Proxy relay requests by decision.",
	}, []string{"decision"})
)
