package vm

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// Opcode handlers below panic on failures, execute recovers and faults the
// engine. Items popped with pop are released after the instruction, so
// handlers only claim what they put back.

// dispatch executes the instruction in the given context.
func (e *Engine) dispatch(ctx *Context, op opcode.Opcode, param []byte) {
	switch {
	case op <= opcode.PUSHDATA4:
		e.opPushData(op, param)
	case op <= opcode.PUSH16:
		e.opPushInt(op)
	case op <= opcode.TAILCALL, op >= opcode.CALL_I && op <= opcode.CALL_EDT:
		e.opFlow(ctx, op, param)
	case op <= opcode.TUCK:
		e.opStack(ctx, op)
	case op <= opcode.SIZE:
		e.opSplice(op)
	case op <= opcode.EQUAL:
		e.opBitwise(op)
	case op <= opcode.WITHIN:
		e.opMaths(op)
	case op <= opcode.CHECKMULTISIG:
		e.opCrypto(op)
	case op <= opcode.VALUES:
		e.opArrays(op)
	case op == opcode.THROW:
		panic(ErrThrow)
	case op == opcode.THROWIFNOT:
		if !e.popBool() {
			panic(ErrThrow)
		}
	default:
		panic(fmt.Errorf("%w: %s", ErrInvalidOpcode, op))
	}
}

func (e *Engine) opPushData(op opcode.Opcode, param []byte) {
	if op == opcode.PUSH0 {
		e.push(e.newBytes(nil))
		return
	}
	e.push(e.newBytes(slices.Clone(param)))
}

func (e *Engine) opPushInt(op opcode.Opcode) {
	switch {
	case op == opcode.PUSHM1:
		e.push(e.newInt(big.NewInt(-1)))
	case op >= opcode.PUSH1:
		e.push(e.newInt(big.NewInt(int64(op) - int64(opcode.PUSH1) + 1)))
	default:
		panic(fmt.Errorf("%w: %s", ErrInvalidOpcode, op))
	}
}

// estack returns the evaluation stack of the current context.
func (e *Engine) estack() *Stack {
	ctx := e.CurrentContext()
	if ctx == nil {
		panic(ErrNoContext)
	}
	return ctx.estack
}

// push pushes a new item onto the evaluation stack handing the caller's
// claim over to the stack.
func (e *Engine) push(it stackitem.Item) {
	e.estack().Push(it)
}

// pushItem pushes an item already owned by somebody else.
func (e *Engine) pushItem(it stackitem.Item) {
	e.estack().Push(e.items.Claim(it))
}

// track releases the item after the current instruction.
func (e *Engine) track(it stackitem.Item) stackitem.Item {
	e.scratch = append(e.scratch, it)
	return it
}

func (e *Engine) releaseScratch() {
	e.items.ReleaseAll(e.scratch...)
	clear(e.scratch)
	e.scratch = e.scratch[:0]
}

// pop removes the top item of the evaluation stack, it stays valid until
// the end of the instruction.
func (e *Engine) pop() stackitem.Item {
	it := e.estack().Pop()
	if it == nil {
		panic(ErrStackUnderflow)
	}
	return e.track(it)
}

// Pop removes the top item of the current evaluation stack for interop
// services. The item stays valid until the current instruction completes.
func (e *Engine) Pop() (stackitem.Item, error) {
	ctx := e.CurrentContext()
	if ctx == nil {
		return nil, ErrNoContext
	}
	it := ctx.estack.Pop()
	if it == nil {
		return nil, ErrStackUnderflow
	}
	return e.track(it), nil
}

// peek returns the n-th item from the top without claiming it.
func (e *Engine) peek(n int) stackitem.Item {
	it := e.estack().at(n)
	if it == nil {
		panic(fmt.Errorf("%w: no item %d", ErrStackUnderflow, n))
	}
	return it
}

func (e *Engine) popInt() *big.Int {
	v, err := e.pop().TryInteger()
	if err != nil {
		panic(err)
	}
	return v
}

func (e *Engine) popInt32() int {
	v, err := stackitem.ToInt32(e.pop())
	if err != nil {
		panic(err)
	}
	return int(v)
}

// popCount pops a non-negative int32.
func (e *Engine) popCount() int {
	n := e.popInt32()
	if n < 0 {
		panic(fmt.Errorf("%w: negative count %d", stackitem.ErrInvalidValue, n))
	}
	return n
}

func (e *Engine) popBool() bool {
	v, err := e.pop().TryBool()
	if err != nil {
		panic(err)
	}
	return v
}

func (e *Engine) popBytes() []byte {
	v, err := e.pop().TryBytes()
	if err != nil {
		panic(err)
	}
	return v
}

// popKey pops an item that can be used as a container key.
func (e *Engine) popKey() stackitem.Item {
	key := e.pop()
	if !stackitem.IsValidMapKey(key) {
		panic(fmt.Errorf("%w: %s key", stackitem.ErrInvalidValue, key))
	}
	return key
}

func (e *Engine) newInt(v *big.Int) stackitem.Item {
	it, err := e.items.NewBigInteger(v)
	if err != nil {
		panic(err)
	}
	return it
}

func (e *Engine) newBool(v bool) stackitem.Item {
	it, err := e.items.NewBool(v)
	if err != nil {
		panic(err)
	}
	return it
}

// newBytes creates a ByteArray owning b.
func (e *Engine) newBytes(b []byte) stackitem.Item {
	if len(b) > e.limits.MaxItemSize {
		panic(fmt.Errorf("%w: %d bytes", stackitem.ErrTooBig, len(b)))
	}
	it, err := e.items.NewByteArray(b)
	if err != nil {
		panic(err)
	}
	return it
}

// clone returns an item to be stored in a container: Structs are copied,
// everything else is shared. The result is released after the instruction.
func (e *Engine) clone(it stackitem.Item) stackitem.Item {
	if _, ok := it.(*stackitem.Struct); !ok {
		return it
	}
	c, err := e.items.Clone(it)
	if err != nil {
		panic(err)
	}
	return e.track(c)
}
