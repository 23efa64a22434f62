package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the indicator engine. All are auto-registered
// against the default registry via promauto and exposed on /metrics.

var (
	QuotesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ta_quotes_consumed_total",
			Help: "Total number of finalized quotes consumed from the input stream",
		},
		[]string{"stream"},
	)

	QuotesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ta_quotes_rejected_total",
			Help: "Total number of quotes dropped during validation or decoding",
		},
		[]string{"reason"},
	)

	IndicatorUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ta_indicator_updates_total",
			Help: "Total number of indicator update operations",
		},
		[]string{"indicator"},
	)

	UpdateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ta_quote_update_duration_seconds",
			Help:    "Time spent updating all indicators for one quote",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
		},
		[]string{"symbol"},
	)

	SnapshotsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ta_snapshots_published_total",
			Help: "Total number of indicator snapshots published to the output stream",
		},
		[]string{"stream"},
	)

	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ta_publish_errors_total",
			Help: "Total number of failed publish attempts",
		},
		[]string{"stream"},
	)

	TrackedSymbols = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ta_tracked_symbols",
			Help: "Number of symbols with live indicator state",
		},
	)
)
