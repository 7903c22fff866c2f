// Package metrics holds the Prometheus instrumentation for the activation
// engine. Collectors register on the default registry; host applications
// expose them through their own /metrics handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Activations counts activation batches by outcome
	Activations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenkit_activations_total",
			Help: "Total number of token activation batches",
		},
		[]string{"status"},
	)

	// Updates counts per-token balance/price refreshes by outcome
	Updates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenkit_updates_total",
			Help: "Total number of token balance/price updates",
		},
		[]string{"status"},
	)

	// UpdateDuration tracks how long a balance/price refresh takes
	UpdateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tokenkit_update_duration_seconds",
			Help:    "Duration of token balance/price updates in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Transfers counts submitted transfer transactions by outcome
	Transfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenkit_transfers_total",
			Help: "Total number of submitted transfer transactions",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		Activations,
		Updates,
		UpdateDuration,
		Transfers,
	)
}
