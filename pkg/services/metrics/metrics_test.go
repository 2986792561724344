package metrics

import (
	"io"
	"net/http"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func get(t *testing.T, url string) string {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPrometheusService(t *testing.T) {
	cfg := config.BasicService{Enabled: true, Addresses: []string{"localhost:0"}}
	srv := NewPrometheusService(cfg, zaptest.NewLogger(t))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.ShutDown)

	addrs := srv.Addresses()
	require.Len(t, addrs, 1)
	require.NotEqual(t, "localhost:0", addrs[0])
	require.Contains(t, get(t, "http://"+addrs[0]+"/metrics"), "go_goroutines")

	// The second start is a no-op.
	require.NoError(t, srv.Start())
}

func TestPprofService(t *testing.T) {
	cfg := config.BasicService{Enabled: true, Addresses: []string{"localhost:0"}}
	srv := NewPprofService(cfg, zaptest.NewLogger(t))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.ShutDown)
	require.Contains(t, get(t, "http://"+srv.Addresses()[0]+"/debug/pprof/"), "goroutine")
}

func TestDisabledService(t *testing.T) {
	srv := NewPrometheusService(config.BasicService{Addresses: []string{"localhost:0"}}, zaptest.NewLogger(t))
	require.NoError(t, srv.Start())
	require.Equal(t, []string{"localhost:0"}, srv.Addresses())
	srv.ShutDown()

	require.Nil(t, NewPrometheusService(config.BasicService{}, nil))
}

func TestStartError(t *testing.T) {
	cfg := config.BasicService{Enabled: true, Addresses: []string{"256.0.0.1:1"}}
	srv := NewPrometheusService(cfg, zaptest.NewLogger(t))
	require.Error(t, srv.Start())
}
