package vm

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/emit"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// testHost is a Host with in-memory scripts and syscalls.
type testHost struct {
	scripts      map[util.Uint160][]byte
	syscalls     map[string]func(*Engine) error
	messages     map[uint32][]byte
	allowDynamic bool
	steps        []opcode.Opcode
}

func newTestHost() *testHost {
	return &testHost{
		scripts:      make(map[util.Uint160][]byte),
		syscalls:     make(map[string]func(*Engine) error),
		messages:     make(map[uint32][]byte),
		allowDynamic: true,
	}
}

func (h *testHost) addScript(prog []byte) util.Uint160 {
	u := hash.Hash160(prog)
	h.scripts[u] = prog
	return u
}

func (h *testHost) LoadScript(e *Engine, u util.Uint160, dynamic bool, rvcount int) error {
	if dynamic && !h.allowDynamic {
		return errors.New("dynamic invoke is not allowed")
	}
	prog, ok := h.scripts[u]
	if !ok {
		return errors.New("unknown script")
	}
	_, err := e.LoadScript(prog, rvcount)
	return err
}

func (h *testHost) InvokeInterop(e *Engine, method []byte) error {
	f, ok := h.syscalls[string(method)]
	if !ok {
		return errors.New("unknown syscall")
	}
	return f(e)
}

func (h *testHost) GetMessage(iteration uint32) ([]byte, error) {
	msg, ok := h.messages[iteration]
	if !ok {
		return nil, errors.New("no message")
	}
	return msg, nil
}

func (h *testHost) OnStep(_ *Context, op opcode.Opcode) {
	h.steps = append(h.steps, op)
}

func makeProgram(opcodes ...opcode.Opcode) []byte {
	prog := make([]byte, len(opcodes)+1) // RET
	for i := range opcodes {
		prog[i] = byte(opcodes[i])
	}
	prog[len(prog)-1] = byte(opcode.RET)
	return prog
}

// makeScript builds a script with the given builder.
func makeScript(t *testing.T, f func(w *io.BinWriter)) []byte {
	buf := io.NewBufBinWriter()
	f(buf.BinWriter)
	require.NoError(t, buf.Err)
	return buf.Bytes()
}

func load(t *testing.T, e *Engine, prog []byte) *Context {
	ctx, err := e.LoadScript(prog, -1)
	require.NoError(t, err)
	return ctx
}

// runProgram executes the program in a fresh engine and returns it.
func runProgram(t *testing.T, prog []byte, opts ...Option) *Engine {
	e := New(nil, opts...)
	load(t, e, prog)
	e.Execute(DefaultMaxGas)
	return e
}

func emitArgs(w *io.BinWriter, args ...any) {
	for _, a := range args {
		switch v := a.(type) {
		case int:
			emit.Int(w, int64(v))
		case *big.Int:
			emit.BigInt(w, v)
		case []byte:
			emit.Bytes(w, v)
		case string:
			emit.String(w, v)
		case bool:
			emit.Bool(w, v)
		default:
			panic("unsupported argument")
		}
	}
}

// checkOp runs op over args and compares the single result with the
// expected value, nil result means a fault is expected.
func checkOp(t *testing.T, op opcode.Opcode, result any, args ...any) {
	prog := makeScript(t, func(w *io.BinWriter) {
		emitArgs(w, args...)
		emit.Opcodes(w, op, opcode.RET)
	})
	e := runProgram(t, prog)
	if result == nil {
		require.Equal(t, FaultState, e.State(), "expected fault")
		return
	}
	require.Equal(t, HaltState, e.State(), e.FaultError())
	require.Equal(t, 1, e.ResultStack().Len())
	checkItem(t, result, e.ResultStack().Top())
}

func checkItem(t *testing.T, expected any, it stackitem.Item) {
	switch v := expected.(type) {
	case int:
		require.IsType(t, (*stackitem.BigInteger)(nil), it)
		require.Equal(t, int64(v), it.(*stackitem.BigInteger).Big().Int64())
	case *big.Int:
		require.IsType(t, (*stackitem.BigInteger)(nil), it)
		require.Equal(t, 0, v.Cmp(it.(*stackitem.BigInteger).Big()))
	case bool:
		require.IsType(t, (*stackitem.Bool)(nil), it)
		require.Equal(t, v, it.Value())
	case []byte:
		require.IsType(t, (*stackitem.ByteArray)(nil), it)
		require.Equal(t, v, it.Value())
	default:
		t.Fatalf("unsupported expected value %T", expected)
	}
}

// resultInts returns the result stack as int64 values, the bottom first.
func resultInts(t *testing.T, s *Stack) []int64 {
	res := make([]int64, 0, s.Len())
	for _, it := range s.ToArray() {
		v, err := it.TryInteger()
		require.NoError(t, err)
		res = append(res, v.Int64())
	}
	return res
}

func bigInt(n int64) *big.Int {
	return big.NewInt(n)
}
