package metrics

import (
	"net/http"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsPath is the path engine and host metrics are exposed at.
const MetricsPath = "/metrics"

// NewPrometheusService creates a service exposing the metrics of the default
// registry, engine, interop and host collectors are registered there.
func NewPrometheusService(cfg config.BasicService, log *zap.Logger) *Service {
	if log == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog:      zap.NewStdLog(log),
		ErrorHandling: promhttp.ContinueOnError,
	}))
	return NewService("Prometheus", newServers(cfg, mux), cfg, log)
}
