package vm

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// Host is the environment the engine runs in. It resolves scripts for
// inter-contract calls, implements SYSCALLs, supplies the message checked by
// signature opcodes and observes every executed instruction.
type Host interface {
	// LoadScript resolves the script with the given hash and loads it into
	// the engine via Engine.LoadScript with the given rvcount. The dynamic
	// flag is set when the hash was taken from the evaluation stack.
	LoadScript(e *Engine, hash util.Uint160, dynamic bool, rvcount int) error
	// InvokeInterop executes the named interop service. It operates on the
	// current context's evaluation stack and may charge additional gas via
	// Engine.AddGasCost.
	InvokeInterop(e *Engine, method []byte) error
	// GetMessage returns the message signed by CHECKSIG/CHECKMULTISIG
	// signatures for the given iteration.
	GetMessage(iteration uint32) ([]byte, error)
	// OnStep is called before every instruction after its gas is charged.
	OnStep(ctx *Context, op opcode.Opcode)
}

// ErrNotSupported is returned by NopHost for every request.
var ErrNotSupported = errors.New("not supported by host")

// NopHost is a Host that supports neither external scripts nor interops.
type NopHost struct{}

// LoadScript implements the Host interface.
func (NopHost) LoadScript(_ *Engine, hash util.Uint160, _ bool, _ int) error {
	return fmt.Errorf("%w: script %s", ErrNotSupported, hash.StringLE())
}

// InvokeInterop implements the Host interface.
func (NopHost) InvokeInterop(_ *Engine, method []byte) error {
	return fmt.Errorf("%w: syscall %q", ErrNotSupported, method)
}

// GetMessage implements the Host interface.
func (NopHost) GetMessage(uint32) ([]byte, error) {
	return nil, fmt.Errorf("%w: message", ErrNotSupported)
}

// OnStep implements the Host interface.
func (NopHost) OnStep(*Context, opcode.Opcode) {}
