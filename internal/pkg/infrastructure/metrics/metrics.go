package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LocationBatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_batches_total",
			Help: "Total number of location batches received",
		},
	)

	LocationBatchesRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_batches_rejected_total",
			Help: "Total number of location batches rejected by validation",
		},
	)

	LocationPointsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_points_total",
			Help: "Total number of location points stored",
		},
	)

	PositionUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "position_updates_total",
			Help: "Total number of current position cache updates",
		},
	)

	BatchProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "location_batch_processing_duration_seconds",
			Help:    "Duration of location batch processing",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(LocationBatchesTotal)
	prometheus.MustRegister(LocationBatchesRejectedTotal)
	prometheus.MustRegister(LocationPointsTotal)
	prometheus.MustRegister(PositionUpdatesTotal)
	prometheus.MustRegister(BatchProcessingDuration)
}
