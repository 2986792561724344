package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/neo-hypervm/cli/smartcontract"
	"github.com/nspcc-dev/neo-hypervm/cli/util"
	"github.com/nspcc-dev/neo-hypervm/cli/vm"
	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "HyperVM\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a HyperVM instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "hypervm"
	ctl.Version = config.Version
	ctl.Usage = "Stack-based script engine with a debugging shell"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, vm.NewCommands()...)
	ctl.Commands = append(ctl.Commands, smartcontract.NewCommands()...)
	ctl.Commands = append(ctl.Commands, util.NewCommands()...)
	return ctl
}
