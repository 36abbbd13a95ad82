package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vporto/almanac/pkg/domain"
)

var (
	invocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almanac_tool_invocations_total",
		Help: "Tool invocations by tool name and outcome.",
	}, []string{"tool", "outcome"})

	invocationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "almanac_tool_duration_seconds",
		Help:    "Tool invocation latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
)

func observe(tool string, outcome domain.Outcome, elapsed time.Duration) {
	invocationsTotal.WithLabelValues(tool, outcome.String()).Inc()
	invocationDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
