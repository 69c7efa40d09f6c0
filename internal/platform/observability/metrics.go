package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_index_ingest_total",
		Help: "Video uploads handled, by outcome",
	}, []string{"outcome"})

	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_index_storage_errors_total",
		Help: "Document store failures, by operation",
	}, []string{"op"})

	StorageOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "video_index_storage_op_duration_seconds",
		Help:    "Duration of document store sessions (open, work, close)",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_index_commands_total",
		Help: "Bot commands received, by command",
	}, []string{"command"})

	ProgressActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "video_index_progress_active",
		Help: "Progress sequences currently being emitted",
	})

	Bindings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "video_index_bindings",
		Help: "Users with a configured storage target",
	})
)
