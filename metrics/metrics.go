// Package metrics defines the Prometheus collectors the service exports on
// GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semshape_snapshot_builds_total",
		Help: "Snapshot builds, by outcome.",
	}, []string{"outcome"})

	SnapshotBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "semshape_snapshot_build_seconds",
		Help:    "Wall time of snapshot builds.",
		Buckets: prometheus.DefBuckets,
	})

	DocumentsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "semshape_documents_loaded",
		Help: "Healthy documents in the current snapshot.",
	})

	DocumentsQuarantined = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "semshape_documents_quarantined",
		Help: "Quarantined documents in the current snapshot.",
	})

	SchemasServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semshape_schemas_served_total",
		Help: "Schema documents served, by representation.",
	}, []string{"format"})

	Validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semshape_validations_total",
		Help: "Validation runs, by result.",
	}, []string{"result"})

	CompileConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semshape_compile_conflicts_total",
		Help: "Shape compilations that produced at least one conflict.",
	})

	FederationCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semshape_federation_calls_total",
		Help: "Outbound federation requests, by outcome.",
	}, []string{"outcome"})
)
