package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connection metrics
	ConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kvd_connections_total",
			Help: "Total number of accepted connections",
		},
	)

	DroppedConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kvd_dropped_connections_total",
			Help: "Connections dropped without a response because no request line could be parsed",
		},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvd_requests_total",
			Help: "Total number of handled requests",
		},
		[]string{"route"},
	)

	// KV store metrics
	KVOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvd_kv_operations_total",
			Help: "Total number of KV store operations",
		},
		[]string{"operation", "status"},
	)

	KVStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kvd_kv_store_size",
			Help: "Number of keys in the KV store",
		},
	)

	// Snapshot metrics
	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvd_snapshots_total",
			Help: "Total number of store snapshots written after handled requests",
		},
		[]string{"status"},
	)

	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kvd_snapshot_duration_seconds",
			Help:    "Store snapshot write latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// System metrics
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kvd_build_info",
			Help: "Build information about kvd",
		},
		[]string{"version", "go_version"},
	)
)
