package interop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/state"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"go.uber.org/zap"
)

var (
	// ErrDynamicInvoke is returned for calls with the script hash taken from
	// the stack when those are disabled.
	ErrDynamicInvoke = errors.New("dynamic invocation is not allowed")
	// ErrUnknownInterop is returned for syscalls not registered in the
	// context.
	ErrUnknownInterop = errors.New("unknown interop")
	// ErrNoMessage is returned when there is no message for the requested
	// iteration.
	ErrNoMessage = errors.New("no message for iteration")
)

// ScriptGetter resolves scripts by their hashes.
type ScriptGetter interface {
	GetScript(util.Uint160) ([]byte, error)
}

// StepObserver is notified about every instruction executed.
type StepObserver func(ctx *vm.Context, op opcode.Opcode)

// Context represents context in which interops are executed. It implements
// vm.Host and is bound to a single engine.
type Context struct {
	ID            uuid.UUID
	Trigger       trigger.Type
	Container     []byte
	Scripts       ScriptGetter
	Store         storage.Store
	Functions     []Function
	Notifications []state.NotificationEvent
	VM            *vm.Engine
	Log           *zap.Logger

	// AllowDynamicInvoke permits calls with the script hash taken from the
	// evaluation stack.
	AllowDynamicInvoke bool
	// Trace enables logging of every executed instruction.
	Trace bool
	// Observer is an optional step callback.
	Observer StepObserver

	messages map[uint32][]byte
	changes  map[string][]byte
}

// Function binds function name, id with the function itself and price,
// it's supposed to be inited once for all interopContexts.
type Function struct {
	ID    uint32
	Name  string
	Func  func(*Context) error
	Price uint64
	// ParamCount is the number of items the function takes from the stack.
	ParamCount int
}

// NewContext returns new interop context.
func NewContext(t trigger.Type, scripts ScriptGetter, store storage.Store, container []byte, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Context{
		ID:        id,
		Trigger:   t,
		Container: container,
		Scripts:   scripts,
		Store:     store,
		Log:       log.With(zap.Stringer("session", id)),
		messages:  make(map[uint32][]byte),
		changes:   make(map[string][]byte),
	}
}

// SpawnVM creates a new engine bound to this context.
func (ic *Context) SpawnVM(cfg config.VM) *vm.Engine {
	ic.VM = vm.NewFromConfig(cfg, ic, ic.Log)
	return ic.VM
}

// SetMessage sets the message signature opcodes verify for the given
// iteration.
func (ic *Context) SetMessage(iteration uint32, msg []byte) {
	ic.messages[iteration] = msg
}

// LoadScript implements the vm.Host interface.
func (ic *Context) LoadScript(e *vm.Engine, hash util.Uint160, dynamic bool, rvcount int) error {
	if dynamic && !ic.AllowDynamicInvoke {
		return ErrDynamicInvoke
	}
	if ic.Scripts == nil {
		return fmt.Errorf("no script table to resolve %s", hash.StringLE())
	}
	prog, err := ic.Scripts.GetScript(hash)
	if err != nil {
		return fmt.Errorf("script %s: %w", hash.StringLE(), err)
	}
	_, err = e.LoadScript(prog, rvcount)
	return err
}

// InvokeInterop implements the vm.Host interface. The method is either
// a name or a 4-byte little-endian ID.
func (ic *Context) InvokeInterop(e *vm.Engine, method []byte) error {
	id := interopnames.ToID(method)
	if len(method) == 4 {
		if f := ic.GetFunction(binary.LittleEndian.Uint32(method)); f != nil {
			id = f.ID
		}
	}
	f := ic.GetFunction(id)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownInterop, method)
	}
	if e.Estack().Len() < f.ParamCount {
		return fmt.Errorf("%s: %w", f.Name, vm.ErrStackUnderflow)
	}
	if !e.AddGasCost(f.Price) {
		return vm.ErrGasExhausted
	}
	if ic.VM != e {
		ic.VM = e
	}
	syscallsInvoked.WithLabelValues(f.Name).Inc()
	return f.Func(ic)
}

// GetMessage implements the vm.Host interface.
func (ic *Context) GetMessage(iteration uint32) ([]byte, error) {
	msg, ok := ic.messages[iteration]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrNoMessage, iteration)
	}
	return msg, nil
}

// OnStep implements the vm.Host interface.
func (ic *Context) OnStep(ctx *vm.Context, op opcode.Opcode) {
	if ic.Trace {
		ic.Log.Debug("step",
			zap.Stringer("script", ctx.ScriptHash()),
			zap.Int("ip", ctx.NextIP()),
			zap.Stringer("op", op))
	}
	if ic.Observer != nil {
		ic.Observer(ctx, op)
	}
}

// GetFunction returns metadata for interop with the specified id.
func (ic *Context) GetFunction(id uint32) *Function {
	n := sort.Search(len(ic.Functions), func(i int) bool {
		return ic.Functions[i].ID >= id
	})
	if n < len(ic.Functions) && ic.Functions[n].ID == id {
		return &ic.Functions[n]
	}
	return nil
}

// Sort sorts interop functions by their IDs, it must be called for every
// list assigned to Functions.
func Sort(fs []Function) {
	for i := range fs {
		fs[i].ID = interopnames.ToID([]byte(fs[i].Name))
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].ID < fs[j].ID })
}

// GetStorage returns the value stored under the key taking pending changes
// into account, nil is returned for missing keys.
func (ic *Context) GetStorage(key []byte) ([]byte, error) {
	if v, ok := ic.changes[string(key)]; ok {
		return v, nil
	}
	if ic.Store == nil {
		return nil, nil
	}
	v, err := ic.Store.Get(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return v, err
}

// PutStorage stores the value until Commit, nil value deletes the key.
func (ic *Context) PutStorage(key, value []byte) {
	ic.changes[string(key)] = value
}

// Commit flushes pending storage changes into the store.
func (ic *Context) Commit() error {
	if len(ic.changes) == 0 {
		return nil
	}
	if ic.Store == nil {
		return errors.New("no storage to commit to")
	}
	if err := ic.Store.PutChangeSet(ic.changes); err != nil {
		return err
	}
	ic.changes = make(map[string][]byte)
	return nil
}

// Pop pops an item from the current evaluation stack.
func (ic *Context) Pop() (stackitem.Item, error) {
	return ic.VM.Pop()
}

// PopBytes pops an item from the current evaluation stack and converts it
// to a byte slice.
func (ic *Context) PopBytes() ([]byte, error) {
	it, err := ic.VM.Pop()
	if err != nil {
		return nil, err
	}
	return it.TryBytes()
}

// Push pushes the item onto the current evaluation stack, the stack takes
// over the caller's claim.
func (ic *Context) Push(it stackitem.Item) {
	ic.VM.Estack().Push(it)
}

// PushBytes pushes a new ByteArray owning b.
func (ic *Context) PushBytes(b []byte) error {
	it, err := ic.VM.Items().NewByteArray(b)
	if err != nil {
		return err
	}
	ic.Push(it)
	return nil
}

// PushInt pushes a new Integer.
func (ic *Context) PushInt(v int64) error {
	it, err := ic.VM.Items().NewBigInteger(big.NewInt(v))
	if err != nil {
		return err
	}
	ic.Push(it)
	return nil
}

// PushInterop pushes a new Interop item with the given payload.
func (ic *Context) PushInterop(payload []byte) error {
	it, err := ic.VM.Items().NewInterop(payload)
	if err != nil {
		return err
	}
	ic.Push(it)
	return nil
}

// Execution collects the results of the engine run.
func (ic *Context) Execution() (*state.Execution, error) {
	res := &state.Execution{
		SessionID:   ic.ID,
		Trigger:     ic.Trigger,
		VMState:     ic.VM.State(),
		GasConsumed: ic.VM.ConsumedGas(),
		Events:      ic.Notifications,
	}
	stack, err := ic.VM.ResultStack().MarshalJSON()
	if err != nil {
		return nil, err
	}
	res.Stack = stack
	if err := ic.VM.FaultError(); err != nil {
		res.FaultException = err.Error()
	}
	return res, nil
}
