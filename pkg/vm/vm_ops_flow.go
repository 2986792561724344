package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// Flow control

func (e *Engine) opFlow(ctx *Context, op opcode.Opcode, param []byte) {
	switch op {
	case opcode.NOP:

	case opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT:
		offset := getJumpOffset(ctx, param)
		cond := true
		if op != opcode.JMP {
			cond = e.popBool() == (op == opcode.JMPIF)
		}
		if cond {
			e.jump(ctx, offset)
		}

	case opcode.CALL:
		newCtx := e.call(ctx, -1, getJumpOffset(ctx, param))
		check(ctx.estack.MoveTo(newCtx.estack, -1))

	case opcode.CALL_I:
		rvcount, pcount := int(param[0]), int(param[1])
		if ctx.estack.Len() < pcount {
			panic(fmt.Errorf("%w: %d parameters expected", ErrStackUnderflow, pcount))
		}
		newCtx := e.call(ctx, rvcount, getJumpOffset(ctx, param[2:]))
		check(ctx.estack.MoveTo(newCtx.estack, pcount))

	case opcode.RET:
		e.ret()

	case opcode.APPCALL, opcode.TAILCALL:
		h, dynamic := e.callHash(param)
		newCtx := e.loadByHash(h, dynamic, -1)
		check(ctx.estack.CopyTo(newCtx.estack, -1))
		if op == opcode.TAILCALL {
			check(e.istack.Remove(1))
		} else {
			ctx.estack.Clear()
		}

	case opcode.CALL_E, opcode.CALL_ED, opcode.CALL_ET, opcode.CALL_EDT:
		rvcount, pcount := int(param[0]), int(param[1])
		if ctx.estack.Len() < pcount {
			panic(fmt.Errorf("%w: %d parameters expected", ErrStackUnderflow, pcount))
		}
		tail := op == opcode.CALL_ET || op == opcode.CALL_EDT
		if tail && ctx.rvcount != rvcount {
			panic(fmt.Errorf("tail call returns %d values instead of %d", rvcount, ctx.rvcount))
		}
		var (
			h       util.Uint160
			dynamic bool
		)
		if op == opcode.CALL_ED || op == opcode.CALL_EDT {
			h, dynamic = e.popHash(), true
		} else {
			h = decodeHash(param[2:])
		}
		newCtx := e.loadByHash(h, dynamic, rvcount)
		if tail {
			check(ctx.estack.CopyTo(newCtx.estack, pcount))
			check(e.istack.Remove(1))
		} else {
			check(ctx.estack.MoveTo(newCtx.estack, pcount))
		}

	case opcode.SYSCALL:
		if err := e.host.InvokeInterop(e, param); err != nil {
			panic(fmt.Errorf("%w: syscall %s: %w", ErrHostFailure, param, err))
		}

	default:
		panic(fmt.Sprintf("unknown flow opcode %s", op))
	}
}

// getJumpOffset returns the absolute jump target encoded relative to the
// current instruction.
func getJumpOffset(ctx *Context, param []byte) int {
	return ctx.ip + int(int16(binary.LittleEndian.Uint16(param)))
}

func (e *Engine) jump(ctx *Context, pos int) {
	check(ctx.Jump(pos))
}

// call creates a new context for the same script starting at pos.
func (e *Engine) call(ctx *Context, rvcount int, pos int) *Context {
	s := e.scripts.get(ctx.scriptIndex)
	if s == nil {
		panic(fmt.Errorf("%w: %d", ErrInvalidScriptIndex, ctx.scriptIndex))
	}
	newCtx := e.newContext(s, rvcount)
	e.jump(newCtx, pos)
	check(e.istack.Push(newCtx))
	return newCtx
}

// ret returns from the current context moving its return values to the
// caller or to the result stack.
func (e *Engine) ret() {
	ctx := e.istack.Peek(0)
	rvcount := ctx.rvcount
	if rvcount == -1 {
		rvcount = ctx.estack.Len()
	}
	if ctx.estack.Len() < rvcount {
		panic(fmt.Errorf("%w: %d return values expected, %d available",
			ErrStackUnderflow, rvcount, ctx.estack.Len()))
	}
	e.istack.pop()
	defer e.istack.dispose(ctx)

	caller := e.istack.Peek(0)
	if rvcount > 0 {
		dst := e.rstack
		if caller != nil {
			dst = caller.estack
		}
		check(ctx.estack.CopyTo(dst, rvcount))
	}
	if ctx.rvcount == -1 && caller != nil {
		check(ctx.astack.CopyTo(caller.astack, -1))
	}
	if caller == nil {
		e.state = HaltState
	}
}

// callHash returns the script hash for APPCALL and TAILCALL, all-zero hash
// means the hash is on the stack.
func (e *Engine) callHash(param []byte) (util.Uint160, bool) {
	for _, b := range param {
		if b != 0 {
			return decodeHash(param), false
		}
	}
	return e.popHash(), true
}

func (e *Engine) popHash() util.Uint160 {
	b := e.popBytes()
	if len(b) != util.Uint160Size {
		panic(fmt.Errorf("invalid script hash length %d", len(b)))
	}
	return decodeHash(b)
}

func decodeHash(b []byte) util.Uint160 {
	h, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		panic(err)
	}
	return h
}

// loadByHash asks the host to load the script and returns the new context.
func (e *Engine) loadByHash(h util.Uint160, dynamic bool, rvcount int) *Context {
	depth := e.istack.Len()
	if err := e.host.LoadScript(e, h, dynamic, rvcount); err != nil {
		panic(fmt.Errorf("%w: load %s: %w", ErrHostFailure, h.StringLE(), err))
	}
	if e.istack.Len() != depth+1 {
		panic(fmt.Errorf("%w: script %s was not loaded", ErrHostFailure, h.StringLE()))
	}
	return e.istack.Peek(0)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
