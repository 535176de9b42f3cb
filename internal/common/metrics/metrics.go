// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_total",
			Help: "Total number of dialog turns processed, by intent and directive",
		},
		[]string{"intent", "directive"},
	)

	EnqueueFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "request_enqueue_failures_total",
			Help: "Validated requests that could not be written to the queue",
		},
	)

	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_messages_processed_total",
			Help: "Queue messages processed by the suggestion worker, by outcome",
		},
		[]string{"outcome"},
	)

	MessagesAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_messages_abandoned_total",
			Help: "Malformed or poison queue messages acknowledged away",
		},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "suggestion_processing_duration_seconds",
			Help: "Duration of per-message suggestion processing",
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Suggestion digests dispatched, by channel and status",
		},
		[]string{"channel", "status"},
	)
)
