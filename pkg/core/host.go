package core

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/config"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/interop"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/state"
	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage"
	"github.com/nspcc-dev/neo-hypervm/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm"
	"go.uber.org/zap"
)

// Host is the reference environment for the engine: it keeps deployed
// scripts and script storage and runs invocations against them.
type Host struct {
	config  config.Config
	store   storage.Store
	scripts *ScriptTable
	log     *zap.Logger
}

// Invocation describes a single script execution.
type Invocation struct {
	Trigger trigger.Type
	// Script is the script executed.
	Script []byte
	// Arguments is an optional push-only script executed before Script,
	// everything it leaves on the stack is passed to Script.
	Arguments []byte
	// Container is the payload returned by GetScriptContainer.
	Container []byte
	// Messages are checked by signature opcodes, indexed by iteration.
	Messages map[uint32][]byte
	// MaxGas overrides the configured gas limit when not zero.
	MaxGas uint64
}

// NewHost creates a host over the given store.
func NewHost(cfg config.Config, store storage.Store, log *zap.Logger) (*Host, error) {
	if store == nil {
		return nil, errors.New("no store")
	}
	if log == nil {
		log = zap.NewNop()
	}
	scripts, err := NewScriptTable(store, cfg.Host.ScriptCacheSize)
	if err != nil {
		return nil, err
	}
	return &Host{
		config:  cfg,
		store:   store,
		scripts: scripts,
		log:     log,
	}, nil
}

// Scripts returns the script table of the host.
func (h *Host) Scripts() *ScriptTable {
	return h.scripts
}

// Deploy stores the script in the script table.
func (h *Host) Deploy(script []byte) (util.Uint160, error) {
	u, err := h.scripts.Put(script)
	if err != nil {
		return util.Uint160{}, err
	}
	h.log.Info("script deployed", zap.Stringer("hash", u), zap.Int("size", len(script)))
	return u, nil
}

// NewContext creates an interop context with all the system interops.
func (h *Host) NewContext(t trigger.Type, container []byte) *interop.Context {
	ic := interop.NewContext(t, h.scripts, h.store, container, h.log)
	ic.Functions = systemInterops
	ic.AllowDynamicInvoke = h.config.Host.AllowDynamicInvoke
	ic.Trace = h.config.Host.Trace
	return ic
}

// SpawnVM returns an engine bound to the interop context and configured
// with the host limits.
func (h *Host) SpawnVM(ic *interop.Context) *vm.Engine {
	return ic.SpawnVM(h.config.VM)
}

// Prepare creates an interop context and an engine with the invocation
// scripts loaded, the engine isn't run.
func (h *Host) Prepare(inv Invocation) (*interop.Context, error) {
	if len(inv.Script) == 0 {
		return nil, errors.New("empty script")
	}
	ic := h.NewContext(inv.Trigger, inv.Container)
	for i, msg := range inv.Messages {
		ic.SetMessage(i, msg)
	}
	e := h.SpawnVM(ic)
	if _, err := e.LoadScript(inv.Script, -1); err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	if len(inv.Arguments) != 0 {
		if _, err := e.LoadPushOnlyScript(inv.Arguments); err != nil {
			return nil, fmt.Errorf("failed to load arguments: %w", err)
		}
	}
	return ic, nil
}

// Invoke runs the invocation to completion. Storage changes are committed
// only if the engine halts.
func (h *Host) Invoke(inv Invocation) (*state.Execution, error) {
	ic, err := h.Prepare(inv)
	if err != nil {
		return nil, err
	}
	e := ic.VM
	defer e.Dispose()

	invocations.WithLabelValues(inv.Trigger.String()).Inc()
	gas := inv.MaxGas
	if gas == 0 {
		gas = e.Limits().MaxGas
	}
	e.Execute(gas)
	if e.HasHalted() {
		if err := ic.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit storage changes: %w", err)
		}
	} else {
		h.log.Info("invocation failed",
			zap.Stringer("session", ic.ID),
			zap.Stringer("state", e.State()),
			zap.Error(e.FaultError()))
	}
	return ic.Execution()
}

// Close closes the underlying store.
func (h *Host) Close() error {
	return h.store.Close()
}
