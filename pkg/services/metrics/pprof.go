package metrics

import (
	"net/http"
	"net/http/pprof"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"go.uber.org/zap"
)

var pprofHandlers = map[string]http.HandlerFunc{
	"/debug/pprof/":        pprof.Index,
	"/debug/pprof/cmdline": pprof.Cmdline,
	"/debug/pprof/profile": pprof.Profile,
	"/debug/pprof/symbol":  pprof.Symbol,
	"/debug/pprof/trace":   pprof.Trace,
}

// NewPprofService creates a service exposing runtime profiles of the process,
// it's mostly useful for profiling long invocations.
func NewPprofService(cfg config.BasicService, log *zap.Logger) *Service {
	if log == nil {
		return nil
	}
	mux := http.NewServeMux()
	for path, h := range pprofHandlers {
		mux.HandleFunc(path, h)
	}
	return NewService("Pprof", newServers(cfg, mux), cfg, log)
}
