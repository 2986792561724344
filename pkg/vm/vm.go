package vm

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"go.uber.org/zap"
)

// Errors the engine faults with.
var (
	// ErrStackUnderflow is returned when there are not enough elements on
	// the stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidOpcode is returned for unknown instructions.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrPushOnly is returned when a push-only script contains a non-push
	// instruction.
	ErrPushOnly = errors.New("push-only script")
	// ErrCallDepth is returned when the invocation stack is too deep.
	ErrCallDepth = errors.New("invocation stack is too deep")
	// ErrHostFailure is returned when a host callback fails.
	ErrHostFailure = errors.New("host failure")
	// ErrInvalidScriptIndex is returned for unknown script table indices.
	ErrInvalidScriptIndex = errors.New("invalid script index")
	// ErrGasExhausted is returned when the gas limit is exceeded.
	ErrGasExhausted = errors.New("gas limit exceeded")
	// ErrNoContext is returned when there is nothing to execute.
	ErrNoContext = errors.New("no execution context")
	// ErrThrow is returned by THROW and THROWIFNOT.
	ErrThrow = errors.New("script has thrown an exception")
)

// Engine represents the virtual machine.
type Engine struct {
	state State

	host    Host
	log     *zap.Logger
	limits  Limits
	metrics bool

	items   *stackitem.Arena
	scripts *scriptTable
	istack  *ContextStack
	rstack  *Stack

	// scratch keeps items popped during the current instruction, they are
	// released once it's finished.
	scratch []stackitem.Item
	journal journal

	gasConsumed uint64
	gasLimit    uint64
	iteration   uint32

	faultErr error
	reported bool
}

// New returns a new Engine using the given host, nil host means NopHost.
func New(host Host, opts ...Option) *Engine {
	if host == nil {
		host = NopHost{}
	}
	e := &Engine{
		host:   host,
		log:    zap.NewNop(),
		limits: DefaultLimits(),
	}
	for _, o := range opts {
		o(e)
	}
	e.gasLimit = e.limits.MaxGas
	e.items = stackitem.NewArena(e.limits.MaxItemCount)
	e.journal.arena = e.items
	e.items.SetRoots(e.markRoots)
	e.scripts = newScriptTable()
	e.istack = newContextStack(e.limits.MaxInvocationStackSize, e.scripts)
	e.rstack = NewStack(e.items, "result")
	e.rstack.j = &e.journal
	return e
}

// NewFromConfig returns a new Engine configured with the given VM settings.
func NewFromConfig(cfg config.VM, host Host, log *zap.Logger) *Engine {
	return New(host,
		WithLimits(Limits{
			MaxItemCount:           cfg.MaxItemCount,
			MaxInvocationStackSize: cfg.MaxInvocationStackSize,
			MaxItemSize:            cfg.MaxItemSize,
			MaxArraySize:           cfg.MaxArraySize,
			MaxGas:                 cfg.MaxGas,
		}),
		WithLogger(log),
		WithMetrics(cfg.EnableMetrics),
	)
}

// State returns the state of the engine.
func (e *Engine) State() State {
	return e.state
}

// HasFailed returns whether the engine is in the failed state now.
func (e *Engine) HasFailed() bool {
	return e.state.HasFlag(FaultState | FaultByGasState)
}

// HasHalted returns whether the engine is in the halted state.
func (e *Engine) HasHalted() bool {
	return e.state.HasFlag(HaltState)
}

// AtBreakpoint returns whether the engine is at breakpoint.
func (e *Engine) AtBreakpoint() bool {
	return e.state.HasFlag(BreakState)
}

// FaultError returns the error that caused the fault, if any.
func (e *Engine) FaultError() error {
	return e.faultErr
}

// Limits returns the engine limits.
func (e *Engine) Limits() Limits {
	return e.limits
}

// ConsumedGas returns the amount of GAS consumed during execution.
func (e *Engine) ConsumedGas() uint64 {
	return e.gasConsumed
}

// MaxGas returns the current gas limit.
func (e *Engine) MaxGas() uint64 {
	return e.gasLimit
}

// Iteration returns the current verification iteration.
func (e *Engine) Iteration() uint32 {
	return e.iteration
}

// SetIteration sets the current verification iteration passed to
// Host.GetMessage.
func (e *Engine) SetIteration(i uint32) {
	e.iteration = i
}

// Items returns the item arena of the engine.
func (e *Engine) Items() *stackitem.Arena {
	return e.items
}

// Istack returns the invocation stack.
func (e *Engine) Istack() *ContextStack {
	return e.istack
}

// ResultStack returns the stack receiving the values returned by the entry
// context.
func (e *Engine) ResultStack() *Stack {
	return e.rstack
}

// CurrentContext returns the current context, nil if there is none.
func (e *Engine) CurrentContext() *Context {
	return e.istack.Peek(0)
}

// CallingContext returns the context that called the current one, nil if
// there is none.
func (e *Engine) CallingContext() *Context {
	return e.istack.Peek(1)
}

// EntryContext returns the first context loaded, nil if there is none.
func (e *Engine) EntryContext() *Context {
	return e.istack.Peek(-1)
}

// Estack returns the evaluation stack of the current context, nil if there
// is no context.
func (e *Engine) Estack() *Stack {
	if ctx := e.CurrentContext(); ctx != nil {
		return ctx.estack
	}
	return nil
}

// Astack returns the alt stack of the current context, nil if there is no
// context.
func (e *Engine) Astack() *Stack {
	if ctx := e.CurrentContext(); ctx != nil {
		return ctx.astack
	}
	return nil
}

// ScriptCount returns the number of scripts in the script table.
func (e *Engine) ScriptCount() int {
	return len(e.scripts.list)
}

// Script returns the script and its hash by script table index.
func (e *Engine) Script(index int) ([]byte, util.Uint160, error) {
	s := e.scripts.get(index)
	if s == nil {
		return nil, util.Uint160{}, fmt.Errorf("%w: %d", ErrInvalidScriptIndex, index)
	}
	return s.prog, s.hash, nil
}

// AddScript registers the script in the script table without loading it and
// returns its index.
func (e *Engine) AddScript(prog []byte) int {
	return e.scripts.add(prog).index
}

// LoadScript registers the script and pushes a new context for it returning
// rvcount values (-1 means all) to the caller.
func (e *Engine) LoadScript(prog []byte, rvcount int) (*Context, error) {
	return e.loadScript(e.scripts.add(prog), rvcount, false)
}

// LoadScriptIndex pushes a new context for an already registered script.
func (e *Engine) LoadScriptIndex(index int, rvcount int) (*Context, error) {
	s := e.scripts.get(index)
	if s == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScriptIndex, index)
	}
	return e.loadScript(s, rvcount, false)
}

// LoadPushOnlyScript pushes a new context that only allows push
// instructions, it returns all values.
func (e *Engine) LoadPushOnlyScript(prog []byte) (*Context, error) {
	return e.loadScript(e.scripts.add(prog), -1, true)
}

// newContext creates a context whose stacks are journaled by the engine.
func (e *Engine) newContext(s *script, rvcount int) *Context {
	ctx := newContext(e.items, s, rvcount)
	ctx.estack.j = &e.journal
	ctx.astack.j = &e.journal
	return ctx
}

func (e *Engine) loadScript(s *script, rvcount int, pushOnly bool) (*Context, error) {
	ctx := e.newContext(s, rvcount)
	ctx.pushOnly = pushOnly
	if err := e.istack.Push(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// AddBreakPoint adds a breakpoint to the current context.
func (e *Engine) AddBreakPoint(n int) {
	if ctx := e.CurrentContext(); ctx != nil {
		ctx.AddBreakPoint(n)
	}
}

// AddBreakPointRel adds a breakpoint relative to the current
// instruction pointer.
func (e *Engine) AddBreakPointRel(n int) {
	if ctx := e.CurrentContext(); ctx != nil {
		ctx.AddBreakPoint(ctx.nextip + n)
	}
}

// AddGasCost adds the given amount to the consumed gas. It returns false and
// moves the engine into FAULT_BY_GAS state when the result exceeds the limit,
// the consumed gas saturates at math.MaxUint64.
func (e *Engine) AddGasCost(cost uint64) bool {
	sum, carry := bits.Add64(e.gasConsumed, cost, 0)
	if carry != 0 {
		sum = math.MaxUint64
	}
	e.gasConsumed = sum
	if carry != 0 || sum > e.gasLimit {
		e.state = FaultByGasState
		if e.faultErr == nil {
			e.faultErr = fmt.Errorf("%w: %d", ErrGasExhausted, e.gasLimit)
		}
		return false
	}
	return true
}

// Execute runs the engine with the given absolute gas limit until it halts,
// faults or reaches a breakpoint.
func (e *Engine) Execute(gas uint64) State {
	e.gasLimit = gas
	e.state &^= BreakState
	for !e.state.IsTerminal() && !e.state.HasFlag(BreakState) {
		e.step()
		if e.state == NoneState {
			if ctx := e.CurrentContext(); ctx != nil && ctx.atBreakPoint() {
				e.state |= BreakState
			}
		}
	}
	e.finish()
	return e.state
}

// Run executes the loaded scripts with the configured gas limit and returns
// an error if the engine has failed.
func (e *Engine) Run() error {
	if e.istack.Len() == 0 {
		e.fault(ErrNoContext)
		e.finish()
		return e.faultErr
	}
	switch st := e.Execute(e.limits.MaxGas); {
	case st.HasFlag(FaultState | FaultByGasState):
		return e.faultErr
	case st.HasFlag(HaltState):
		return nil
	default:
		return fmt.Errorf("execution stopped in %s state", st)
	}
}

// StepInto executes the next instruction.
func (e *Engine) StepInto() {
	if e.state.IsTerminal() {
		return
	}
	e.state &^= BreakState
	e.step()
	e.pause()
}

// StepOver executes the next instruction, running the whole function if it's
// a call.
func (e *Engine) StepOver() {
	if e.state.IsTerminal() {
		return
	}
	e.state &^= BreakState
	depth := e.istack.Len()
	e.step()
	for e.state == NoneState && e.istack.Len() > depth {
		e.step()
	}
	e.pause()
}

// StepOut executes instructions until the current function returns.
func (e *Engine) StepOut() {
	if e.state.IsTerminal() {
		return
	}
	e.state &^= BreakState
	depth := e.istack.Len()
	e.step()
	for e.state == NoneState && e.istack.Len() >= depth {
		e.step()
	}
	e.pause()
}

// pause puts the engine into BREAK state unless it has finished.
func (e *Engine) pause() {
	if e.state == NoneState {
		e.state = BreakState
	}
	e.finish()
}

// Clean resets the engine for another pass keeping the script table: all
// contexts and results are dropped, state and gas are reset and every item
// is freed.
func (e *Engine) Clean(iteration uint32) {
	e.istack.Clear()
	e.rstack.Clear()
	e.releaseScratch()
	e.items.Reset()
	e.state = NoneState
	e.gasConsumed = 0
	e.gasLimit = e.limits.MaxGas
	e.faultErr = nil
	e.reported = false
	e.iteration = iteration
}

// Dispose releases everything the engine holds including the script table.
func (e *Engine) Dispose() {
	e.Clean(0)
	e.scripts.reset()
}

// fault moves the engine into FAULT state unless it has already failed
// because of gas.
func (e *Engine) fault(err error) {
	if !e.state.HasFlag(FaultByGasState) {
		e.state = FaultState
	}
	if e.faultErr == nil || !e.state.HasFlag(FaultByGasState) {
		e.faultErr = err
	}
	var (
		ip int
		op opcode.Opcode
	)
	if ctx := e.CurrentContext(); ctx != nil {
		ip, op = ctx.CurrInstr()
	}
	e.log.Debug("engine fault",
		zap.Int("ip", ip),
		zap.Stringer("op", op),
		zap.Stringer("state", e.state),
		zap.Error(err))
}

// step executes one instruction in the current context.
func (e *Engine) step() {
	ctx := e.CurrentContext()
	if ctx == nil {
		e.fault(ErrNoContext)
		return
	}
	op, param, next, err := ctx.decode(ctx.nextip)
	if err != nil {
		e.fault(err)
		return
	}
	if ctx.pushOnly && op > opcode.PUSH16 && op != opcode.RET {
		e.fault(fmt.Errorf("%w: %s", ErrPushOnly, op))
		return
	}
	if !e.AddGasCost(e.getPrice(ctx, op)) {
		e.fault(e.faultErr)
		return
	}
	if err := e.execute(ctx, op, param, next); err != nil {
		e.fault(err)
	}
	if e.metrics {
		instructionsExecuted.Inc()
	}
}

// execute notifies the host and runs a single decoded instruction, any panic
// in opcode handlers is converted to an error.
func (e *Engine) execute(ctx *Context, op opcode.Opcode, param []byte, next int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch t := r.(type) {
			case error:
				err = t
			default:
				err = fmt.Errorf("%v", t)
			}
		}
		if err != nil {
			e.journal.rollback()
		} else {
			e.journal.commit()
		}
		e.releaseScratch()
		e.items.Settle()
	}()
	e.host.OnStep(ctx, op)
	e.journal.begin()
	ctx.ip, ctx.nextip = ctx.nextip, next
	e.dispatch(ctx, op, param)
	return nil
}

// markRoots marks every item the engine holds: context stacks, the result
// stack and items used by the current instruction.
func (e *Engine) markRoots(mark func(stackitem.Item)) {
	for _, ctx := range e.istack.elems {
		for _, it := range ctx.estack.elems {
			mark(it)
		}
		for _, it := range ctx.astack.elems {
			mark(it)
		}
	}
	for _, it := range e.rstack.elems {
		mark(it)
	}
	for _, it := range e.scratch {
		mark(it)
	}
	e.journal.held(mark)
}

// finish reports metrics once the engine reaches a terminal state.
func (e *Engine) finish() {
	if !e.state.IsTerminal() || e.reported {
		return
	}
	e.reported = true
	if e.metrics {
		observeExecution(e.state, e.gasConsumed, e.items.Live())
	}
}

// getPrice returns the gas price of the opcode.
func (e *Engine) getPrice(ctx *Context, op opcode.Opcode) uint64 {
	switch op {
	case opcode.APPCALL, opcode.TAILCALL,
		opcode.CALL_E, opcode.CALL_ED, opcode.CALL_ET, opcode.CALL_EDT:
		return 10
	case opcode.SHA1, opcode.SHA256:
		return 10
	case opcode.HASH160, opcode.HASH256:
		return 20
	case opcode.CHECKSIG, opcode.VERIFY:
		return 100
	case opcode.CHECKMULTISIG:
		item := ctx.estack.Top()
		if item == nil {
			return 1
		}
		var n int
		switch t := item.(type) {
		case *stackitem.Array:
			n = t.Len()
		case *stackitem.Struct:
			n = t.Len()
		default:
			v, err := stackitem.ToInt32(item)
			if err != nil {
				return 1
			}
			n = int(v)
		}
		if n < 1 {
			return 1
		}
		return 100 * uint64(n)
	default:
		return 1
	}
}

// CreateBool creates a new Boolean item, the engine faults and nil is
// returned if the item limit is exceeded.
func (e *Engine) CreateBool(v bool) *stackitem.Bool {
	it, err := e.items.NewBool(v)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateInteger creates a new Integer item, the engine faults and nil is
// returned on failure.
func (e *Engine) CreateInteger(v *big.Int) *stackitem.BigInteger {
	it, err := e.items.NewBigInteger(v)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateByteArray creates a new ByteArray item owning b, the engine faults
// and nil is returned on failure.
func (e *Engine) CreateByteArray(b []byte) *stackitem.ByteArray {
	it, err := e.items.NewByteArray(b)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateInterop creates a new Interop item, the engine faults and nil is
// returned on failure.
func (e *Engine) CreateInterop(payload []byte) *stackitem.Interop {
	it, err := e.items.NewInterop(payload)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateArray creates a new Array claiming the given items, the engine
// faults and nil is returned on failure.
func (e *Engine) CreateArray(items []stackitem.Item) *stackitem.Array {
	it, err := e.items.NewArray(items)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateStruct creates a new Struct claiming the given items, the engine
// faults and nil is returned on failure.
func (e *Engine) CreateStruct(items []stackitem.Item) *stackitem.Struct {
	it, err := e.items.NewStruct(items)
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}

// CreateMap creates a new empty Map, the engine faults and nil is returned
// on failure.
func (e *Engine) CreateMap() *stackitem.Map {
	it, err := e.items.NewMap()
	if err != nil {
		e.fault(err)
		return nil
	}
	return it
}
