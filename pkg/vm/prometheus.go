package vm

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	//instructionsExecuted prometheus metric.
	instructionsExecuted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of executed instructions",
			Name:      "instructions_executed_total",
			Namespace: "hypervm",
		},
	)
	//executionsFinished prometheus metric.
	executionsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of finished executions by final state",
			Name:      "executions_finished_total",
			Namespace: "hypervm",
		},
		[]string{"state"},
	)
	//gasConsumed prometheus metric.
	gasConsumed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Help:      "Gas consumed by finished executions",
			Name:      "gas_consumed",
			Namespace: "hypervm",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		},
	)
	//liveItems prometheus metric.
	liveItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Live stack items at the end of the last execution",
			Name:      "live_items",
			Namespace: "hypervm",
		},
	)
)

func init() {
	prometheus.MustRegister(
		instructionsExecuted,
		executionsFinished,
		gasConsumed,
		liveItems,
	)
}

func observeExecution(st State, gas uint64, items int) {
	executionsFinished.WithLabelValues(st.String()).Inc()
	gasConsumed.Observe(float64(gas))
	liveItems.Set(float64(items))
}
