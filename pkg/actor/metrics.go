package actor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const (
	outcomeSucceeded = "succeeded"
	outcomeCancelled = "cancelled"
	outcomeFailed    = "failed"
	outcomeRejected  = "rejected"
)

var tracer = otel.Tracer("bitbench.actor")

var (
	actionsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bitbench_actions_in_flight",
		Help: "Plugin actions currently running",
	}, []string{"kind"})

	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bitbench_actions_total",
		Help: "Plugin actions by outcome",
	}, []string{"kind", "plugin", "outcome"})

	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bitbench_action_duration_seconds",
		Help:    "Time from dispatch to terminal notification",
		Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60},
	}, []string{"kind"})
)
