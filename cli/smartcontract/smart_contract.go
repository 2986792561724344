package smartcontract

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nspcc-dev/neo-hypervm/cli/cmdargs"
	"github.com/nspcc-dev/neo-hypervm/cli/options"
	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/nspcc-dev/neo-hypervm/pkg/core"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	errNoInput      = errors.New("no input file was found, specify an input file with the '--in or -i' flag")
	errNoScriptHash = errors.New("no script hash was provided, specify one as the first argument")
)

var inFlag = cli.StringFlag{
	Name:  "in, i",
	Usage: "Input file with the script (binary, hex or base64)",
}

// NewCommands returns 'contract' command.
func NewCommands() []cli.Command {
	baseFlags := []cli.Flag{options.ConfigFile, options.Debug}
	return []cli.Command{{
		Name:  "contract",
		Usage: "Deploy and invoke scripts",
		Subcommands: []cli.Command{
			{
				Name:      "deploy",
				Usage:     "Store the script in the script table",
				UsageText: "hypervm contract deploy -i script.avm [--config-file file]",
				Description: `Puts the script into the configured storage so that it can be
   called with APPCALL and TAILCALL, the script hash and the address are printed.
`,
				Action: deploy,
				Flags:  append([]cli.Flag{inFlag}, baseFlags...),
			},
			{
				Name:      "invoke",
				Usage:     "Execute the script and print the result",
				UsageText: "hypervm contract invoke -i script.avm [--trigger type] [--gas n] [--container hex] [--message hex] [--config-file file] [-- <param>...]",
				Description: `Executes the script from the input file (or a deployed one with the
   --hash flag) and prints the execution result as JSON. Storage changes are
   committed if the script halts.

` + cmdargs.ParamsParsingDoc + `
`,
				Action: invoke,
				Flags: append([]cli.Flag{
					inFlag,
					cli.StringFlag{
						Name:  "hash",
						Usage: "LE hash or address of the deployed script to invoke",
					},
					cli.StringFlag{
						Name:  "trigger, t",
						Usage: "Trigger type (Application or Verification)",
						Value: trigger.Application.String(),
					},
					cli.Uint64Flag{
						Name:  "gas, g",
						Usage: "Gas limit, the configured one is used if not set",
					},
					cli.StringFlag{
						Name:  "container",
						Usage: "Hex-encoded script container returned by GetScriptContainer",
					},
					cli.StringFlag{
						Name:  "message, m",
						Usage: "Hex-encoded message checked by signature opcodes",
					},
				}, baseFlags...),
			},
			{
				Name:      "list",
				Usage:     "List deployed scripts",
				UsageText: "hypervm contract list [--config-file file]",
				Action:    list,
				Flags:     baseFlags,
			},
			{
				Name:      "dump",
				Usage:     "Print the hex-encoded deployed script",
				UsageText: "hypervm contract dump <hash> [--config-file file]",
				Action:    dump,
				Flags:     baseFlags,
			},
		},
	}}
}

// readScript reads the script from the file, hex and base64 texts are
// decoded, anything else is taken as is.
func readScript(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the script: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if b, err := hex.DecodeString(strings.TrimPrefix(text, "0x")); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(text); err == nil {
		return b, nil
	}
	return data, nil
}

// parseHash accepts both LE hashes and addresses.
func parseHash(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}
	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}

// withHost runs f with a host created from the context configuration.
func withHost(ctx *cli.Context, f func(h *core.Host, cfg config.Config, log *zap.Logger) error) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.Logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to open storage: %w", err), 1)
	}
	h, err := core.NewHost(cfg, store, log)
	if err != nil {
		_ = store.Close()
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = h.Close() }()
	return f(h, cfg, log)
}

func deploy(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	in := ctx.String("in")
	if len(in) == 0 {
		return cli.NewExitError(errNoInput, 1)
	}
	script, err := readScript(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return withHost(ctx, func(h *core.Host, _ config.Config, _ *zap.Logger) error {
		u, err := h.Deploy(script)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("failed to deploy: %w", err), 1)
		}
		fmt.Fprintf(ctx.App.Writer, "Script hash: %s\nAddress: %s\n", u.StringLE(), address.Uint160ToString(u))
		return nil
	})
}

func invoke(ctx *cli.Context) error {
	var (
		in   = ctx.String("in")
		hash = ctx.String("hash")
		inv  core.Invocation
		err  error
	)
	if len(in) == 0 && len(hash) == 0 {
		return cli.NewExitError(errNoInput, 1)
	}
	if len(in) != 0 {
		inv.Script, err = readScript(in)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	inv.Trigger, err = trigger.FromString(ctx.String("trigger"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	inv.MaxGas = ctx.Uint64("gas")
	if c := ctx.String("container"); c != "" {
		inv.Container, err = hex.DecodeString(c)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid container: %w", err), 1)
		}
	}
	if m := ctx.String("message"); m != "" {
		msg, err := hex.DecodeString(m)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid message: %w", err), 1)
		}
		inv.Messages = map[uint32][]byte{0: msg}
	}
	inv.Arguments, err = cmdargs.ParamsToScript(ctx.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return withHost(ctx, func(h *core.Host, cfg config.Config, log *zap.Logger) error {
		if len(hash) != 0 {
			u, err := parseHash(hash)
			if err != nil {
				return cli.NewExitError(fmt.Errorf("invalid script hash: %w", err), 1)
			}
			inv.Script, err = h.Scripts().GetScript(u)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
		}
		stop, err := options.StartMonitoring(cfg, log)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer stop()

		res, err := h.Invoke(inv)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(ctx.App.Writer, string(b))
		return nil
	})
}

func list(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	return withHost(ctx, func(h *core.Host, _ config.Config, _ *zap.Logger) error {
		return h.Scripts().ForEach(func(u util.Uint160) bool {
			fmt.Fprintf(ctx.App.Writer, "%s (%s)\n", u.StringLE(), address.Uint160ToString(u))
			return true
		})
	})
}

func dump(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 1 {
		return cli.NewExitError(errNoScriptHash, 1)
	}
	u, err := parseHash(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid script hash: %w", err), 1)
	}
	return withHost(ctx, func(h *core.Host, _ config.Config, _ *zap.Logger) error {
		script, err := h.Scripts().GetScript(u)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(script))
		return nil
	})
}
