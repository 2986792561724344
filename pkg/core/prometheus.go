package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	//scriptsDeployed prometheus metric.
	scriptsDeployed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of scripts put into the script table",
			Name:      "scripts_deployed_total",
			Namespace: "hypervm",
		},
	)
	//scriptCacheMisses prometheus metric.
	scriptCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of script lookups that missed the cache",
			Name:      "script_cache_misses_total",
			Namespace: "hypervm",
		},
	)
	//invocations prometheus metric.
	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of host invocations by trigger",
			Name:      "invocations_total",
			Namespace: "hypervm",
		},
		[]string{"trigger"},
	)
)

func init() {
	prometheus.MustRegister(
		scriptsDeployed,
		scriptCacheMisses,
		invocations,
	)
}
