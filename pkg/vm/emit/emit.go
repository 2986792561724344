package emit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// MaxSyscallLen is the maximum length of an interop method name.
const MaxSyscallLen = 252

// Instruction emits a VM Instruction with data to the given buffer.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcodes emits single VM Instructions without arguments to the given buffer.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Bool emits a bool type the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcodes(w, opcode.PUSHT)
		return
	}
	Opcodes(w, opcode.PUSHF)
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	BigInt(w, big.NewInt(i))
}

// BigInt emits a big integer to the given buffer, small values get their own
// PUSHn instructions, the others are pushed as byte arrays.
func BigInt(w *io.BinWriter, n *big.Int) {
	switch {
	case n.IsInt64() && n.Int64() == -1:
		Opcodes(w, opcode.PUSHM1)
	case n.Sign() == 0:
		Opcodes(w, opcode.PUSH0)
	case n.IsInt64() && n.Int64() > 0 && n.Int64() <= 16:
		Opcodes(w, opcode.PUSH1-1+opcode.Opcode(n.Int64()))
	default:
		Bytes(w, bigint.ToBytes(n))
	}
}

// Array emits array of elements to the given buffer, the first element ends
// up at index 0.
func Array(w *io.BinWriter, es ...any) {
	for i := len(es) - 1; i >= 0; i-- {
		switch e := es[i].(type) {
		case int:
			Int(w, int64(e))
		case int64:
			Int(w, e)
		case *big.Int:
			BigInt(w, e)
		case string:
			String(w, e)
		case util.Uint160:
			Bytes(w, e.BytesBE())
		case []byte:
			Bytes(w, e)
		case bool:
			Bool(w, e)
		default:
			w.Err = fmt.Errorf("unsupported type %T", e)
			return
		}
	}
	Int(w, int64(len(es)))
	Opcodes(w, opcode.PACK)
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer using the shortest push
// instruction.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n == 0:
		Opcodes(w, opcode.PUSH0)
		return
	case n <= int(opcode.PUSHBYTES75):
		Opcodes(w, opcode.Opcode(n))
	case n < 0x100:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n < 0x10000:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Syscall emits the syscall API to the given buffer.
// Syscall API string cannot be 0.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	} else if len(api) > MaxSyscallLen {
		w.Err = fmt.Errorf("syscall api is too long: %d", len(api))
		return
	}
	Opcodes(w, opcode.SYSCALL)
	w.WriteVarBytes([]byte(api))
}

// Jmp emits a jump Instruction with the offset relative to this instruction.
func Jmp(w *io.BinWriter, op opcode.Opcode, offset int16) {
	if w.Err != nil {
		return
	} else if !isInstructionJmp(op) {
		w.Err = fmt.Errorf("opcode %s is not a jump or call type", op.String())
		return
	}
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(offset))
	Instruction(w, op, buf)
}

// Call emits a CALL instruction with the offset relative to this
// instruction.
func Call(w *io.BinWriter, offset int16) {
	Jmp(w, opcode.CALL, offset)
}

// CallI emits a CALL_I instruction passing pcount parameters and expecting
// rvcount results.
func CallI(w *io.BinWriter, rvcount, pcount byte, offset int16) {
	buf := make([]byte, 4)
	buf[0], buf[1] = rvcount, pcount
	binary.LittleEndian.PutUint16(buf[2:], uint16(offset))
	Instruction(w, opcode.CALL_I, buf)
}

// CallE emits CALL_E (or CALL_ET for tail calls) of the given script.
func CallE(w *io.BinWriter, rvcount, pcount byte, scriptHash util.Uint160, tail bool) {
	op := opcode.CALL_E
	if tail {
		op = opcode.CALL_ET
	}
	Instruction(w, op, append([]byte{rvcount, pcount}, scriptHash.BytesBE()...))
}

// CallED emits CALL_ED (or CALL_EDT for tail calls), the script hash is
// taken from the stack.
func CallED(w *io.BinWriter, rvcount, pcount byte, tail bool) {
	op := opcode.CALL_ED
	if tail {
		op = opcode.CALL_EDT
	}
	Instruction(w, op, []byte{rvcount, pcount})
}

// AppCall emits APPCALL (or TAILCALL) of the provided contract.
func AppCall(w *io.BinWriter, scriptHash util.Uint160, tail bool) {
	op := opcode.APPCALL
	if tail {
		op = opcode.TAILCALL
	}
	Instruction(w, op, scriptHash.BytesBE())
}

// AppCallWithOperationAndArgs emits an APPCALL with the given operation and arguments.
func AppCallWithOperationAndArgs(w *io.BinWriter, scriptHash util.Uint160, operation string, args ...any) {
	Array(w, args...)
	String(w, operation)
	AppCall(w, scriptHash, false)
}

func isInstructionJmp(op opcode.Opcode) bool {
	return opcode.JMP <= op && op <= opcode.CALL
}
