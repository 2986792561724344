package vm

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// Stack manipulation

func (e *Engine) opStack(ctx *Context, op opcode.Opcode) {
	es := ctx.estack
	switch op {
	case opcode.DUPFROMALTSTACK:
		it := ctx.astack.Peek(0)
		if it == nil {
			panic(fmt.Errorf("%w: alt stack is empty", ErrStackUnderflow))
		}
		es.Push(it)

	case opcode.TOALTSTACK:
		it := es.Pop()
		if it == nil {
			panic(ErrStackUnderflow)
		}
		ctx.astack.Push(it)

	case opcode.FROMALTSTACK:
		it := ctx.astack.Pop()
		if it == nil {
			panic(fmt.Errorf("%w: alt stack is empty", ErrStackUnderflow))
		}
		es.Push(it)

	case opcode.XDROP:
		n := e.popCount()
		it, err := es.Remove(n)
		check(err)
		e.track(it)

	case opcode.XSWAP:
		n := e.popCount()
		check(es.Swap(0, n))

	case opcode.XTUCK:
		n := e.popInt32()
		if n <= 0 {
			panic(fmt.Errorf("%w: XTUCK position %d", stackitem.ErrInvalidValue, n))
		}
		e.insert(es, n, e.peek(0))

	case opcode.DEPTH:
		e.push(e.newInt(big.NewInt(int64(es.Len()))))

	case opcode.DROP:
		e.pop()

	case opcode.DUP:
		e.pushItem(e.peek(0))

	case opcode.NIP:
		it, err := es.Remove(1)
		check(err)
		e.track(it)

	case opcode.OVER:
		e.pushItem(e.peek(1))

	case opcode.PICK:
		n := e.popCount()
		e.pushItem(e.peek(n))

	case opcode.ROLL:
		n := e.popCount()
		check(es.Roll(n))

	case opcode.ROT:
		check(es.Roll(2))

	case opcode.SWAP:
		check(es.Swap(0, 1))

	case opcode.TUCK:
		e.insert(es, 2, e.peek(0))

	default:
		panic(fmt.Sprintf("unknown stack opcode %s", op))
	}
}

// insert puts an additional reference to the item at position n.
func (e *Engine) insert(es *Stack, n int, it stackitem.Item) {
	if err := es.Insert(n, e.items.Claim(it)); err != nil {
		e.items.Release(it)
		panic(err)
	}
}
