package interop

import "github.com/prometheus/client_golang/prometheus"

// syscallsInvoked prometheus metric.
var syscallsInvoked = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Help:      "Number of interop services invoked",
		Name:      "syscalls_invoked_total",
		Namespace: "hypervm",
	},
	[]string{"method"},
)

func init() {
	prometheus.MustRegister(syscallsInvoked)
}
