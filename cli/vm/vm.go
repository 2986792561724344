package vm

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/nspcc-dev/neo-hypervm/cli/options"
	"github.com/urfave/cli"
)

// NewCommands returns 'vm' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:   "vm",
		Usage:  "Start the virtual machine",
		Action: startVMPrompt,
		Flags:  []cli.Flag{options.ConfigFile, options.Debug},
	}}
}

func startVMPrompt(ctx *cli.Context) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.Logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()
	if !ctx.Bool("debug") {
		log = options.ScriptOutputOnly(log)
	}
	stop, err := options.StartMonitoring(cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer stop()

	rc := &readline.Config{
		// Unlike readline.Config.Stdin, ctx.App.Reader is an io.Reader, so it
		// can't be used here.
		Stdin:  readline.NewCancelableStdin(os.Stdin),
		Stdout: ctx.App.Writer,
		Stderr: ctx.App.ErrWriter,
	}
	p, err := NewWithConfig(true, os.Exit, rc, cfg, log)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to create VM CLI: %w", err), 1)
	}
	defer func() { _ = p.Close() }()
	return p.Run()
}
