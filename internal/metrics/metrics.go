// Package metrics provides Prometheus metrics for the catalog backend.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optcg_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Upstream API Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_upstream_requests_total",
			Help: "Requests made to the upstream card API by endpoint and result",
		},
		[]string{"endpoint", "result"}, // endpoint: "sets" or "cards", result: "success" or "error"
	)

	// Ingestion Metrics
	SetsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optcg_sets_ingested_total",
			Help: "Total number of sets saved by the ingest pipeline",
		},
	)

	CardsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optcg_cards_ingested_total",
			Help: "Total number of cards upserted by the ingest pipeline",
		},
	)

	IngestBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optcg_ingest_batch_duration_seconds",
			Help:    "Time taken to fetch and save one set's card batch",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	IngestRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optcg_ingest_run_duration_seconds",
			Help:    "Time taken for a full ingestion run over all sets",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// Catalog Metrics
	CardLookupCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optcg_card_lookup_cache_hits_total",
			Help: "Single-card lookups served from the LRU cache",
		},
	)

	CardLookupCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optcg_card_lookup_cache_misses_total",
			Help: "Single-card lookups that fell through to the database",
		},
	)
)
