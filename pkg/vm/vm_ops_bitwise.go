package vm

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// Splice

func (e *Engine) opSplice(op opcode.Opcode) {
	switch op {
	case opcode.CAT:
		b := e.popBytes()
		a := e.popBytes()
		l := len(a) + len(b)
		if l > e.limits.MaxItemSize {
			panic(fmt.Errorf("too big item: %d", l))
		}
		ab := make([]byte, l)
		copy(ab, a)
		copy(ab[len(a):], b)
		e.push(e.newBytes(ab))

	case opcode.SUBSTR:
		count := e.popCount()
		index := e.popCount()
		s := e.popBytes()
		if index > len(s) {
			panic(fmt.Errorf("SUBSTR index %d is out of range (%d)", index, len(s)))
		}
		count = min(count, len(s)-index)
		res := make([]byte, count)
		copy(res, s[index:index+count])
		e.push(e.newBytes(res))

	case opcode.LEFT:
		count := e.popCount()
		s := e.popBytes()
		count = min(count, len(s))
		res := make([]byte, count)
		copy(res, s[:count])
		e.push(e.newBytes(res))

	case opcode.RIGHT:
		count := e.popCount()
		s := e.popBytes()
		if count > len(s) {
			panic(fmt.Errorf("RIGHT count %d is out of range (%d)", count, len(s)))
		}
		res := make([]byte, count)
		copy(res, s[len(s)-count:])
		e.push(e.newBytes(res))

	case opcode.SIZE:
		it := e.pop()
		b, err := it.TryBytes()
		check(err)
		e.push(e.newInt(big.NewInt(int64(len(b)))))

	default:
		panic(fmt.Sprintf("unknown splice opcode %s", op))
	}
}

// Bitwise logic

func (e *Engine) opBitwise(op opcode.Opcode) {
	switch op {
	case opcode.INVERT:
		a := bigint.Uint256FromBig(e.popInt())
		e.push(e.newInt(bigint.Uint256ToBig(a.Not(a))))

	case opcode.AND, opcode.OR, opcode.XOR:
		b := bigint.Uint256FromBig(e.popInt())
		a := bigint.Uint256FromBig(e.popInt())
		var res = new(uint256.Int)
		switch op {
		case opcode.AND:
			res.And(a, b)
		case opcode.OR:
			res.Or(a, b)
		default:
			res.Xor(a, b)
		}
		e.push(e.newInt(bigint.Uint256ToBig(res)))

	case opcode.EQUAL:
		b := e.pop()
		a := e.pop()
		e.push(e.newBool(a.Equals(b)))

	default:
		panic(fmt.Sprintf("unknown bitwise opcode %s", op))
	}
}
