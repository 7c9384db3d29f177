package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered on the default registry and served by the /metrics endpoint.
var (
	documentsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstruct_documents_parsed_total",
		Help: "Documents processed, labeled by final job status.",
	}, []string{"status"})

	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docstruct_parse_duration_seconds",
		Help:    "End-to-end processing time per document.",
		Buckets: prometheus.DefBuckets,
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docstruct_queue_depth",
		Help: "Jobs waiting in the parse queue.",
	})
)
