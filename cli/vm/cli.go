package vm

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nspcc-dev/neo-hypervm/cli/cmdargs"
	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/nspcc-dev/neo-hypervm/pkg/core"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage/dbconfig"
	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/util/slice"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	hostKey             = "host"
	icKey               = "ic"
	triggerKey          = "trigger"
	messageKey          = "message"
	exitFuncKey         = "exitFunc"
	readlineInstanceKey = "readlineKey"
	printLogoKey        = "printLogoKey"
)

var commands = []cli.Command{
	{
		Name:        "exit",
		Usage:       "Exit the VM prompt",
		Description: "Exit the VM prompt",
		Action:      handleExit,
	},
	{
		Name:        "ip",
		Usage:       "Show current instruction",
		Description: "Show current instruction",
		Action:      handleIP,
	},
	{
		Name:      "break",
		Usage:     "Place a breakpoint",
		UsageText: `break <ip>`,
		Description: `break <ip>
<ip> is mandatory parameter, example:
> break 12`,
		Action: handleBreak,
	},
	{
		Name:        "estack",
		Usage:       "Show evaluation stack contents",
		Description: "Show evaluation stack contents",
		Action:      handleXStack,
	},
	{
		Name:        "astack",
		Usage:       "Show alt stack contents",
		Description: "Show alt stack contents",
		Action:      handleXStack,
	},
	{
		Name:        "istack",
		Usage:       "Show invocation stack contents",
		Description: "Show invocation stack contents",
		Action:      handleXStack,
	},
	{
		Name:        "rstack",
		Usage:       "Show result stack contents",
		Description: "Show result stack contents",
		Action:      handleXStack,
	},
	{
		Name:      "loadbase64",
		Usage:     "Load a base64-encoded script string into the VM",
		UsageText: `loadbase64 <string>`,
		Description: `loadbase64 <string>

<string> is mandatory parameter, example:
> loadbase64 UVKT`,
		Action: handleLoadBase64,
	},
	{
		Name:      "loadhex",
		Usage:     "Load a hex-encoded script string into the VM",
		UsageText: `loadhex <string>`,
		Description: `loadhex <string>

<string> is mandatory parameter, example:
> loadhex 515293`,
		Action: handleLoadHex,
	},
	{
		Name:      "loadfile",
		Usage:     "Load a binary script file into the VM",
		UsageText: `loadfile <file>`,
		Description: `loadfile <file>

<file> is mandatory parameter, example:
> loadfile /path/to/script.avm`,
		Action: handleLoadFile,
	},
	{
		Name:      "deploy",
		Usage:     "Store a hex-encoded script in the script table",
		UsageText: `deploy <string>`,
		Description: `deploy <string>

Makes the script available to APPCALL and TAILCALL by its hash, example:
> deploy 93`,
		Action: handleDeploy,
	},
	{
		Name:   "reset",
		Usage:  "Unload the script from the VM",
		Action: handleReset,
	},
	{
		Name:      "trigger",
		Usage:     "Show or set the trigger used for the next loaded script",
		UsageText: `trigger [<type>]`,
		Description: `trigger [<type>]

<type> is either Application or Verification, example:
> trigger Verification`,
		Action: handleTrigger,
	},
	{
		Name:      "message",
		Usage:     "Set the hex-encoded message checked by signature opcodes",
		UsageText: `message <string>`,
		Action:    handleMessage,
	},
	{
		Name:      "parse",
		Usage:     "Parse provided argument and convert it into other possible formats",
		UsageText: `parse <arg>`,
		Description: `parse <arg>

<arg> is an argument which is tried to be interpreted as an item of different types
and converted to other formats. Strings are escaped and output in quotes.`,
		Action: handleParse,
	},
	{
		Name:      "run",
		Usage:     "Execute the current loaded script",
		UsageText: `run [<parameter>...]`,
		Description: `run [<parameter>...]

<parameter> is a parameter (can be repeated multiple times) that is pushed onto
        the stack before the execution continues.

` + cmdargs.ParamsParsingDoc + `

Example:
> run string:"Something to put" 42`,
		Action: handleRun,
	},
	{
		Name:        "cont",
		Usage:       "Continue execution of the current loaded script",
		Description: "Continue execution of the current loaded script",
		Action:      handleCont,
	},
	{
		Name:      "step",
		Usage:     "Step (n) instruction in the program",
		UsageText: `step [<n>]`,
		Description: `step [<n>]
<n> is optional parameter to specify number of instructions to run, example:
> step 10`,
		Action: handleStep,
	},
	{
		Name:  "stepinto",
		Usage: "Stepinto instruction to take in the debugger",
		Description: `Usage: stepInto
example:
> stepinto`,
		Action: handleStepInto,
	},
	{
		Name:  "stepout",
		Usage: "Stepout instruction to take in the debugger",
		Description: `stepOut
example:
> stepout`,
		Action: handleStepOut,
	},
	{
		Name:  "stepover",
		Usage: "Stepover instruction to take in the debugger",
		Description: `stepOver
example:
> stepover`,
		Action: handleStepOver,
	},
	{
		Name:        "ops",
		Usage:       "Dump opcodes of the current loaded program",
		Description: "Dump opcodes of the current loaded program",
		Action:      handleOps,
	},
	{
		Name:        "gas",
		Usage:       "Show gas consumed by the current loaded program",
		Description: "Show gas consumed by the current loaded program",
		Action:      handleGas,
	},
	{
		Name:        "events",
		Usage:       "Dump events emitted by the current loaded program",
		Description: "Dump events emitted by the current loaded program",
		Action:      handleEvents,
	},
}

var completer *readline.PrefixCompleter

func init() {
	var pcItems []readline.PrefixCompleterInterface
	for _, c := range commands {
		if !c.Hidden {
			var flagsItems []readline.PrefixCompleterInterface
			for _, f := range c.Flags {
				names := strings.SplitN(f.GetName(), ", ", 2) // only long name will be offered
				flagsItems = append(flagsItems, readline.PcItem("--"+names[0]))
			}
			pcItems = append(pcItems, readline.PcItem(c.Name, flagsItems...))
		}
	}
	completer = readline.NewPrefixCompleter(pcItems...)
}

// Various errors.
var (
	ErrMissingParameter = errors.New("missing argument")
	ErrInvalidParameter = errors.New("can't parse argument")
)

// VMCLI object for interacting with the VM.
type VMCLI struct {
	host  *core.Host
	shell *cli.App
}

// NewWithConfig returns new VMCLI instance using provided config. Scripts
// and storage are kept in the store the config points to.
func NewWithConfig(printLogotype bool, onExit func(int), c *readline.Config, cfg config.Config, log *zap.Logger) (*VMCLI, error) {
	if c.AutoComplete == nil {
		// Autocomplete commands/flags on TAB.
		c.AutoComplete = completer
	}
	l, err := readline.NewEx(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	ctl := cli.NewApp()
	ctl.Name = "VM CLI"

	// Note: need to set empty `ctl.HelpName` and `ctl.UsageText`, otherwise
	// `filepath.Base(os.Args[0])` will be used which is `hypervm`.
	ctl.HelpName = ""
	ctl.UsageText = ""

	ctl.Writer = l.Stdout()
	ctl.ErrWriter = l.Stderr()
	ctl.Version = config.Version
	ctl.Usage = "HyperVM debugging shell"

	// Override default error handler in order not to exit on error.
	ctl.ExitErrHandler = func(context *cli.Context, err error) {}

	ctl.Commands = commands

	if log == nil {
		log = zap.NewNop()
	}
	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		writeErr(ctl.ErrWriter, fmt.Errorf("failed to open DB, clean in-memory storage will be used: %w", err))
		cfg.Storage.Type = dbconfig.InMemoryDB
		store = storage.NewMemoryStore()
	}
	host, err := core.NewHost(cfg, store, log)
	if err != nil {
		_ = store.Close()
		_ = l.Close()
		return nil, cli.NewExitError(fmt.Errorf("could not initialize host: %w", err), 1)
	}

	exitF := func(i int) {
		_ = host.Close()
		onExit(i)
	}

	vmcli := VMCLI{
		host:  host,
		shell: ctl,
	}

	vmcli.shell.Metadata = map[string]any{
		hostKey:             host,
		icKey:               (*interop.Context)(nil),
		triggerKey:          trigger.Application,
		messageKey:          []byte(nil),
		exitFuncKey:         exitF,
		readlineInstanceKey: l,
		printLogoKey:        printLogotype,
	}
	changePrompt(vmcli.shell)
	return &vmcli, nil
}

func getExitFuncFromContext(app *cli.App) func(int) {
	return app.Metadata[exitFuncKey].(func(int))
}

func getReadlineInstanceFromContext(app *cli.App) *readline.Instance {
	return app.Metadata[readlineInstanceKey].(*readline.Instance)
}

func getHostFromContext(app *cli.App) *core.Host {
	return app.Metadata[hostKey].(*core.Host)
}

func getInteropContextFromContext(app *cli.App) *interop.Context {
	return app.Metadata[icKey].(*interop.Context)
}

// getVMFromContext returns the engine of the loaded script or nil.
func getVMFromContext(app *cli.App) *vm.Engine {
	ic := getInteropContextFromContext(app)
	if ic == nil {
		return nil
	}
	return ic.VM
}

func getTriggerFromContext(app *cli.App) trigger.Type {
	return app.Metadata[triggerKey].(trigger.Type)
}

func getMessageFromContext(app *cli.App) []byte {
	return app.Metadata[messageKey].([]byte)
}

func getPrintLogoFromContext(app *cli.App) bool {
	return app.Metadata[printLogoKey].(bool)
}

func setInteropContextInContext(app *cli.App, ic *interop.Context) {
	app.Metadata[icKey] = ic
}

func isReady(v *vm.Engine) bool {
	return v != nil && v.CurrentContext() != nil && !v.State().IsTerminal()
}

func checkVMIsReady(app *cli.App) bool {
	if !isReady(getVMFromContext(app)) {
		writeErr(app.Writer, errors.New("VM is not ready: no program loaded"))
		return false
	}
	return true
}

func handleExit(c *cli.Context) error {
	finalizeInteropContext(c.App)
	l := getReadlineInstanceFromContext(c.App)
	_ = l.Close()
	exit := getExitFuncFromContext(c.App)
	fmt.Fprintln(c.App.Writer, "Bye!")
	exit(0)
	return nil
}

func handleIP(c *cli.Context) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	ctx := getVMFromContext(c.App).CurrentContext()
	if ctx.NextIP() < ctx.LenInstr() {
		ip, opcode := ctx.NextInstr()
		fmt.Fprintf(c.App.Writer, "instruction pointer at %d (%s)\n", ip, opcode)
	} else {
		fmt.Fprintln(c.App.Writer, "execution has finished")
	}
	return nil
}

func handleBreak(c *cli.Context) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	v := getVMFromContext(c.App)
	args := c.Args()
	if len(args) != 1 {
		return fmt.Errorf("%w: <ip>", ErrMissingParameter)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}

	v.AddBreakPoint(n)
	fmt.Fprintf(c.App.Writer, "breakpoint added at instruction %d\n", n)
	return nil
}

func handleXStack(c *cli.Context) error {
	v := getVMFromContext(c.App)
	if v == nil {
		return errors.New("no program loaded")
	}
	var stackDump string
	switch c.Command.Name {
	case "estack":
		stackDump = vm.DumpStack(v.Estack())
	case "astack":
		stackDump = vm.DumpStack(v.Astack())
	case "istack":
		stackDump = v.DumpIStack()
	case "rstack":
		stackDump = vm.DumpStack(v.ResultStack())
	default:
		return errors.New("unknown stack")
	}
	fmt.Fprintln(c.App.Writer, stackDump)
	return nil
}

// loadScript replaces the interop context with a new one and loads the
// script into its engine.
func loadScript(app *cli.App, prog []byte) error {
	resetState(app)
	host := getHostFromContext(app)
	ic := host.NewContext(getTriggerFromContext(app), nil)
	if msg := getMessageFromContext(app); msg != nil {
		ic.SetMessage(0, msg)
	}
	v := host.SpawnVM(ic)
	if _, err := v.LoadScript(prog, -1); err != nil {
		v.Dispose()
		return fmt.Errorf("failed to load script: %w", err)
	}
	setInteropContextInContext(app, ic)
	fmt.Fprintf(app.Writer, "READY: loaded %d instructions\n", v.CurrentContext().LenInstr())
	changePrompt(app)
	return nil
}

func handleLoadBase64(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	b, err := base64.StdEncoding.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return loadScript(c.App, b)
}

func handleLoadHex(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return loadScript(c.App, b)
}

func handleLoadFile(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <file>", ErrMissingParameter)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return loadScript(c.App, b)
}

func handleDeploy(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	u, err := getHostFromContext(c.App).Deploy(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deployed %s (%s)\n", u.StringLE(), address.Uint160ToString(u))
	return nil
}

func handleReset(c *cli.Context) error {
	resetState(c.App)
	changePrompt(c.App)
	return nil
}

func handleTrigger(c *cli.Context) error {
	args := c.Args()
	if len(args) == 0 {
		fmt.Fprintln(c.App.Writer, getTriggerFromContext(c.App))
		return nil
	}
	t, err := trigger.FromString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	c.App.Metadata[triggerKey] = t
	fmt.Fprintf(c.App.Writer, "trigger is set to %s\n", t)
	return nil
}

func handleMessage(c *cli.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: <string>", ErrMissingParameter)
	}
	msg, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	c.App.Metadata[messageKey] = msg
	if ic := getInteropContextFromContext(c.App); ic != nil {
		ic.SetMessage(0, msg)
	}
	fmt.Fprintf(c.App.Writer, "message is set (%d bytes)\n", len(msg))
	return nil
}

// finalizeInteropContext releases the engine of the current interop context.
func finalizeInteropContext(app *cli.App) {
	if v := getVMFromContext(app); v != nil {
		v.Dispose()
	}
}

// resetState drops the current interop context so that the shell is ready
// to load a new program.
func resetState(app *cli.App) {
	finalizeInteropContext(app)
	setInteropContextInContext(app, nil)
}

func handleRun(c *cli.Context) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	v := getVMFromContext(c.App)
	args := c.Args()
	if len(args) != 0 {
		params, err := cmdargs.ParamsToScript(args)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
		}
		if _, err := v.LoadPushOnlyScript(params); err != nil {
			return fmt.Errorf("failed to push parameters: %w", err)
		}
	}
	runVMWithHandling(c)
	changePrompt(c.App)
	return nil
}

// runVMWithHandling runs VM with handling errors and additional state messages.
// Storage changes are committed when the script halts.
func runVMWithHandling(c *cli.Context) {
	v := getVMFromContext(c.App)
	v.Execute(v.Limits().MaxGas)
	reportState(c)
}

func reportState(c *cli.Context) {
	v := getVMFromContext(c.App)
	var (
		message string
		dumpNtf bool
	)
	switch {
	case v.HasFailed():
		writeErr(c.App.ErrWriter, v.FaultError())
		dumpNtf = true
	case v.HasHalted():
		if err := getInteropContextFromContext(c.App).Commit(); err != nil {
			writeErr(c.App.ErrWriter, fmt.Errorf("failed to commit storage changes: %w", err))
		}
		message = vm.DumpStack(v.ResultStack())
		dumpNtf = true
	case v.AtBreakpoint():
		ctx := v.CurrentContext()
		if ctx.NextIP() < ctx.LenInstr() {
			i, op := ctx.NextInstr()
			message = fmt.Sprintf("at breakpoint %d (%s)", i, op)
		} else {
			message = "execution has finished"
		}
	}
	if dumpNtf {
		e, err := dumpEvents(c.App)
		if err == nil && len(e) != 0 {
			if message != "" {
				message += "\n"
			}
			message += "Events:\n" + e
		}
	}
	if message != "" {
		fmt.Fprintln(c.App.Writer, message)
	}
}

func handleCont(c *cli.Context) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	runVMWithHandling(c)
	changePrompt(c.App)
	return nil
}

func handleStep(c *cli.Context) error {
	var (
		n   = 1
		err error
	)

	if !checkVMIsReady(c.App) {
		return nil
	}
	v := getVMFromContext(c.App)
	args := c.Args()
	if len(args) > 0 {
		n, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
		}
	}
	v.AddBreakPointRel(n)
	runVMWithHandling(c)
	changePrompt(c.App)
	return nil
}

func handleStepInto(c *cli.Context) error {
	return handleStepType(c, "into")
}

func handleStepOut(c *cli.Context) error {
	return handleStepType(c, "out")
}

func handleStepOver(c *cli.Context) error {
	return handleStepType(c, "over")
}

func handleStepType(c *cli.Context, stepType string) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	v := getVMFromContext(c.App)
	switch stepType {
	case "into":
		v.StepInto()
	case "out":
		v.StepOut()
	case "over":
		v.StepOver()
	}
	if isReady(v) {
		_ = handleIP(c)
	} else {
		reportState(c)
	}
	changePrompt(c.App)
	return nil
}

func handleOps(c *cli.Context) error {
	if !checkVMIsReady(c.App) {
		return nil
	}
	v := getVMFromContext(c.App)
	out := bytes.NewBuffer(nil)
	v.PrintOps(out)
	fmt.Fprintln(c.App.Writer, out.String())
	return nil
}

func handleGas(c *cli.Context) error {
	v := getVMFromContext(c.App)
	if v == nil {
		return errors.New("no program loaded")
	}
	fmt.Fprintf(c.App.Writer, "gas consumed: %d\n", v.ConsumedGas())
	return nil
}

func changePrompt(app *cli.App) {
	v := getVMFromContext(app)
	l := getReadlineInstanceFromContext(app)
	if isReady(v) && v.CurrentContext().NextIP() < v.CurrentContext().LenInstr() {
		l.SetPrompt(fmt.Sprintf("\033[32mHYPERVM %d >\033[0m ", v.CurrentContext().NextIP()))
	} else {
		l.SetPrompt("\033[32mHYPERVM >\033[0m ")
	}
}

func handleEvents(c *cli.Context) error {
	e, err := dumpEvents(c.App)
	if err != nil {
		writeErr(c.App.ErrWriter, err)
		return nil
	}
	fmt.Fprintln(c.App.Writer, e)
	return nil
}

func dumpEvents(app *cli.App) (string, error) {
	ic := getInteropContextFromContext(app)
	if ic == nil || len(ic.Notifications) == 0 {
		return "", nil
	}
	b, err := json.MarshalIndent(ic.Notifications, "", "\t")
	if err != nil {
		return "", fmt.Errorf("failed to marshal notifications: %w", err)
	}
	return string(b), nil
}

// Run waits for user input from Stdin and executes the passed command.
func (c *VMCLI) Run() error {
	if getPrintLogoFromContext(c.shell) {
		printLogo(c.shell.Writer)
	}
	l := getReadlineInstanceFromContext(c.shell)
	for {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err) // Critical error, stop execution.
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue // Not a critical error, continue execution.
		}
		if len(args) == 0 {
			continue
		}

		err = c.shell.Run(append([]string{"vm"}, args...))
		if err != nil {
			writeErr(c.shell.ErrWriter, err) // Various command/flags parsing errors and execution errors.
		}
	}
}

// Close releases the engine and the store of the shell.
func (c *VMCLI) Close() error {
	finalizeInteropContext(c.shell)
	_ = getReadlineInstanceFromContext(c.shell).Close()
	return c.host.Close()
}

func handleParse(c *cli.Context) error {
	res, err := Parse(c.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, res)
	return nil
}

// Parse converts it's argument to other formats.
func Parse(args []string) (string, error) {
	if len(args) < 1 {
		return "", ErrMissingParameter
	}
	arg := args[0]
	buf := bytes.NewBuffer(nil)
	if val, ok := new(big.Int).SetString(arg, 10); ok {
		bs := bigint.ToBytes(val)
		buf.WriteString(fmt.Sprintf("Integer to Hex\t%s\n", hex.EncodeToString(bs)))
		buf.WriteString(fmt.Sprintf("Integer to Base64\t%s\n", base64.StdEncoding.EncodeToString(bs)))
	}
	noX := strings.TrimPrefix(arg, "0x")
	if rawStr, err := hex.DecodeString(noX); err == nil {
		if val, err := util.Uint160DecodeBytesBE(rawStr); err == nil {
			buf.WriteString(fmt.Sprintf("BE ScriptHash to Address\t%s\n", address.Uint160ToString(val)))
			buf.WriteString(fmt.Sprintf("LE ScriptHash to Address\t%s\n", address.Uint160ToString(val.Reverse())))
		}
		if pub, err := keys.NewPublicKeyFromBytes(rawStr); err == nil {
			sh := pub.GetScriptHash()
			buf.WriteString(fmt.Sprintf("Public key to BE ScriptHash\t%s\n", sh))
			buf.WriteString(fmt.Sprintf("Public key to LE ScriptHash\t%s\n", sh.Reverse()))
			buf.WriteString(fmt.Sprintf("Public key to Address\t%s\n", address.Uint160ToString(sh)))
		}
		buf.WriteString(fmt.Sprintf("Hex to String\t%s\n", fmt.Sprintf("%q", string(rawStr))))
		buf.WriteString(fmt.Sprintf("Hex to Integer\t%s\n", bigint.FromBytes(rawStr)))
		buf.WriteString(fmt.Sprintf("Swap Endianness\t%s\n", hex.EncodeToString(slice.CopyReverse(rawStr))))
	}
	if addr, err := address.StringToUint160(arg); err == nil {
		buf.WriteString(fmt.Sprintf("Address to BE ScriptHash\t%s\n", addr))
		buf.WriteString(fmt.Sprintf("Address to LE ScriptHash\t%s\n", addr.Reverse()))
		buf.WriteString(fmt.Sprintf("Address to Base64 (BE)\t%s\n", base64.StdEncoding.EncodeToString(addr.BytesBE())))
		buf.WriteString(fmt.Sprintf("Address to Base64 (LE)\t%s\n", base64.StdEncoding.EncodeToString(addr.BytesLE())))
	}
	if rawStr, err := base64.StdEncoding.DecodeString(arg); err == nil {
		buf.WriteString(fmt.Sprintf("Base64 to String\t%s\n", fmt.Sprintf("%q", string(rawStr))))
		buf.WriteString(fmt.Sprintf("Base64 to BigInteger\t%s\n", bigint.FromBytes(rawStr)))
		if u, err := util.Uint160DecodeBytesBE(rawStr); err == nil {
			buf.WriteString(fmt.Sprintf("Base64 to BE ScriptHash\t%s\n", u.StringBE()))
			buf.WriteString(fmt.Sprintf("Base64 to LE ScriptHash\t%s\n", u.StringLE()))
			buf.WriteString(fmt.Sprintf("Base64 to Address (BE)\t%s\n", address.Uint160ToString(u)))
			buf.WriteString(fmt.Sprintf("Base64 to Address (LE)\t%s\n", address.Uint160ToString(u.Reverse())))
		}
	}

	buf.WriteString(fmt.Sprintf("String to Hex\t%s\n", hex.EncodeToString([]byte(arg))))
	buf.WriteString(fmt.Sprintf("String to Base64\t%s\n", base64.StdEncoding.EncodeToString([]byte(arg))))

	out := buf.Bytes()
	buf = bytes.NewBuffer(nil)
	w := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	if _, err := w.Write(out); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const logo = `
    __  __                      _    ____  ___
   / / / /_  ______  ___  _____| |  / /  |/  /
  / /_/ / / / / __ \/ _ \/ ___/| | / / /|_/ /
 / __  / /_/ / /_/ /  __/ /    | |/ / /  / /
/_/ /_/\__, / .___/\___/_/     |___/_/  /_/
      /____/_/
`

func printLogo(w io.Writer) {
	fmt.Fprint(w, logo)
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
