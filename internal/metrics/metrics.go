package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Postback outcomes are only visible to partners, never to end users, so the
// counters below are the primary alerting surface for the credit pipeline.
var (
	PostbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offermart",
			Subsystem: "postback",
			Name:      "received_total",
			Help:      "Postbacks received, partitioned by partner and result.",
		},
		[]string{"partner", "result"},
	)

	CreditedCents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offermart",
			Subsystem: "postback",
			Name:      "credited_cents_total",
			Help:      "Total cents credited through postbacks, by partner.",
		},
		[]string{"partner"},
	)

	FanoutFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offermart",
			Subsystem: "postback",
			Name:      "fanout_failures_total",
			Help:      "Fan-out side effects that failed after a committed credit.",
		},
		[]string{"effect"},
	)

	WithdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offermart",
			Subsystem: "withdrawal",
			Name:      "transitions_total",
			Help:      "Withdrawal state transitions, partitioned by new status.",
		},
		[]string{"status"},
	)
)

const (
	ResultCredited  = "credited"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultError     = "error"
)
