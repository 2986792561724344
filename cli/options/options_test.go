package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetConfigFromContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hypervm.yml")
		require.NoError(t, os.WriteFile(path, []byte("VM:\n  MaxGas: 100\n"), 0644))
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", path, "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 100, cfg.VM.MaxGas)
	})

	t.Run("missing file", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", filepath.Join(t.TempDir(), "nothing.yml"), "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})
}

func TestHandleLoggingParams(t *testing.T) {
	d := t.TempDir()
	testLog := filepath.Join(d, "file.log")

	t.Run("logdir is a file", func(t *testing.T) {
		logfile := filepath.Join(d, "logdir")
		require.NoError(t, os.WriteFile(logfile, []byte{1, 2, 3}, os.ModePerm))
		cfg := config.Logger{
			LogPath: filepath.Join(logfile, "file.log"),
		}
		_, lvl, err := HandleLoggingParams(false, cfg)
		require.Error(t, err)
		require.Nil(t, lvl)
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.Logger{
			LogPath:  testLog,
			LogLevel: "qwerty",
		}
		_, lvl, err := HandleLoggingParams(false, cfg)
		require.Error(t, err)
		require.Nil(t, lvl)
	})

	t.Run("default", func(t *testing.T) {
		cfg := config.Logger{
			LogPath: testLog,
		}
		logger, lvl, err := HandleLoggingParams(false, cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = logger.Sync()
		})
		require.Equal(t, zapcore.InfoLevel, lvl.Level())
	})

	t.Run("warn", func(t *testing.T) {
		cfg := config.Logger{
			LogPath:  testLog,
			LogLevel: "warn",
		}
		logger, lvl, err := HandleLoggingParams(false, cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = logger.Sync()
		})
		require.Equal(t, zapcore.WarnLevel, lvl.Level())
	})

	t.Run("debug", func(t *testing.T) {
		cfg := config.Logger{
			LogPath:     testLog,
			LogEncoding: "json",
		}
		logger, lvl, err := HandleLoggingParams(true, cfg)
		require.NoError(t, err)
		logger.Debug("entry")
		require.NoError(t, logger.Sync())
		require.Equal(t, zapcore.DebugLevel, lvl.Level())

		data, err := os.ReadFile(testLog)
		require.NoError(t, err)
		require.Contains(t, string(data), `"msg":"entry"`)
	})
}

func TestScriptOutputOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := ScriptOutputOnly(zap.New(core)).With(zap.String("session", "1"))

	log.Info("runtime log", zap.String("msg", "hello"))
	log.Info("script deployed")
	log.Debug("runtime notification")
	log.Warn("problem")

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, "runtime log", entries[0].Message)
	require.Equal(t, "1", entries[0].ContextMap()["session"])
	require.Equal(t, "runtime notification", entries[1].Message)
	require.Equal(t, "problem", entries[2].Message)
}

func TestStartMonitoring(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics = config.BasicService{Enabled: true, Addresses: []string{"localhost:0"}}
	stop, err := StartMonitoring(cfg, zap.NewNop())
	require.NoError(t, err)
	stop()

	cfg.Pprof = config.BasicService{Enabled: true, Addresses: []string{"256.0.0.1:1"}}
	_, err = StartMonitoring(cfg, zap.NewNop())
	require.Error(t, err)
}
