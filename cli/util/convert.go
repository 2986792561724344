package util

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	vmcli "github.com/nspcc-dev/neo-hypervm/cli/vm"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
	"github.com/urfave/cli"
)

// NewCommands returns util commands for hypervm CLI.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:  "util",
			Usage: "Various helper commands",
			Subcommands: []cli.Command{
				{
					Name:  "convert",
					Usage: "Convert provided argument into other possible formats",
					UsageText: `convert <arg>

<arg> is an argument which is tried to be interpreted as an item of different types
        and converted to other formats. Strings are escaped and output in quotes.`,
					Action: handleParse,
				},
				{
					Name:      "ops",
					Usage:     "Pretty-print VM opcodes of the given base64- or hex- encoded script (base64 is checked first). If the input file is specified, then the script is taken from the file.",
					UsageText: "ops [-i path-to-file] [--hex] <base64/hex-encoded script>",
					Action:    handleOps,
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "in, i",
							Usage: "Input file containing base64- or hex- encoded script representation",
						},
						cli.BoolFlag{
							Name:  "hex",
							Usage: "Use hex encoding and do not check base64",
						},
					},
				},
				newSignCommand(),
			},
		},
	}
}

func handleParse(ctx *cli.Context) error {
	res, err := vmcli.Parse(ctx.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprint(ctx.App.Writer, res)
	return nil
}

func handleOps(ctx *cli.Context) error {
	var (
		s   string
		err error
		b   []byte
	)
	in := ctx.String("in")
	if len(in) != 0 {
		b, err := os.ReadFile(in)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("failed to read file: %w", err), 1)
		}
		s = strings.TrimSpace(string(b))
	} else {
		if !ctx.Args().Present() {
			return cli.NewExitError("missing script", 1)
		}
		s = ctx.Args().First()
	}
	b, err = base64.StdEncoding.DecodeString(s)
	if err != nil || ctx.Bool("hex") {
		b, err = hex.DecodeString(s)
	}
	if err != nil {
		return cli.NewExitError("unknown encoding: base64 or hex are supported", 1)
	}
	v := vm.New(nil)
	if _, err := v.LoadScript(b, -1); err != nil {
		return cli.NewExitError(err, 1)
	}
	v.PrintOps(ctx.App.Writer)
	return nil
}
