package vm

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// maxSHLArg is the maximum absolute shift for SHL and SHR.
const maxSHLArg = 256

var bigOne = big.NewInt(1)

// Arithmetic

func (e *Engine) opMaths(op opcode.Opcode) {
	switch op {
	case opcode.INC:
		x := e.popInt()
		e.push(e.newInt(new(big.Int).Add(x, bigOne)))

	case opcode.DEC:
		x := e.popInt()
		e.push(e.newInt(new(big.Int).Sub(x, bigOne)))

	case opcode.SIGN:
		x := e.popInt()
		e.push(e.newInt(big.NewInt(int64(x.Sign()))))

	case opcode.NEGATE:
		x := e.popInt()
		e.push(e.newInt(new(big.Int).Neg(x)))

	case opcode.ABS:
		x := e.popInt()
		e.push(e.newInt(new(big.Int).Abs(x)))

	case opcode.NOT:
		x := e.popBool()
		e.push(e.newBool(!x))

	case opcode.NZ:
		x := e.popInt()
		e.push(e.newBool(x.Sign() != 0))

	case opcode.ADD:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newInt(new(big.Int).Add(a, b)))

	case opcode.SUB:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newInt(new(big.Int).Sub(a, b)))

	case opcode.MUL:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newInt(new(big.Int).Mul(a, b)))

	case opcode.DIV:
		b := e.popInt()
		a := e.popInt()
		if b.Sign() == 0 {
			panic("division by zero")
		}
		e.push(e.newInt(new(big.Int).Quo(a, b)))

	case opcode.MOD:
		b := e.popInt()
		a := e.popInt()
		if b.Sign() == 0 {
			panic("division by zero")
		}
		e.push(e.newInt(new(big.Int).Rem(a, b)))

	case opcode.SHL, opcode.SHR:
		n := e.popInt32()
		if n > maxSHLArg || n < -maxSHLArg {
			panic(fmt.Sprintf("operand must be between %d and %d", -maxSHLArg, maxSHLArg))
		}
		x := e.popInt()
		if op == opcode.SHR {
			n = -n
		}
		var res = new(big.Int)
		if n >= 0 {
			res.Lsh(x, uint(n))
		} else {
			res.Rsh(x, uint(-n))
		}
		e.push(e.newInt(res))

	case opcode.BOOLAND:
		b := e.popBool()
		a := e.popBool()
		e.push(e.newBool(a && b))

	case opcode.BOOLOR:
		b := e.popBool()
		a := e.popBool()
		e.push(e.newBool(a || b))

	case opcode.NUMEQUAL:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) == 0))

	case opcode.NUMNOTEQUAL:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) != 0))

	case opcode.LT:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) < 0))

	case opcode.GT:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) > 0))

	case opcode.LTE:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) <= 0))

	case opcode.GTE:
		b := e.popInt()
		a := e.popInt()
		e.push(e.newBool(a.Cmp(b) >= 0))

	case opcode.MIN:
		b := e.popInt()
		a := e.popInt()
		val := a
		if a.Cmp(b) > 0 {
			val = b
		}
		e.push(e.newInt(val))

	case opcode.MAX:
		b := e.popInt()
		a := e.popInt()
		val := a
		if a.Cmp(b) < 0 {
			val = b
		}
		e.push(e.newInt(val))

	case opcode.WITHIN:
		b := e.popInt()
		a := e.popInt()
		x := e.popInt()
		e.push(e.newBool(a.Cmp(x) <= 0 && x.Cmp(b) < 0))

	default:
		panic(fmt.Sprintf("unknown arithmetic opcode %s", op))
	}
}
