package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/emit"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func TestEngine_Debug(t *testing.T) {
	// CALL +4; RET; PUSH2; PUSH3; ADD; RET
	prog := makeScript(t, func(w *io.BinWriter) {
		emit.Call(w, 4)
		emit.Opcodes(w, opcode.RET, opcode.PUSH2, opcode.PUSH3, opcode.ADD, opcode.RET)
	})
	newEngine := func(t *testing.T) *Engine {
		e := New(nil)
		load(t, e, prog)
		return e
	}

	t.Run("BreakPoint", func(t *testing.T) {
		e := newEngine(t)
		e.AddBreakPoint(3)
		require.Equal(t, BreakState, e.Execute(DefaultMaxGas))
		require.True(t, e.AtBreakpoint())
		require.Equal(t, 3, e.CurrentContext().NextIP())
		require.Equal(t, []int64{5}, resultInts(t, e.Estack()))

		require.Equal(t, HaltState, e.Execute(DefaultMaxGas))
		require.Equal(t, []int64{5}, resultInts(t, e.ResultStack()))
	})

	t.Run("relative BreakPoint", func(t *testing.T) {
		e := newEngine(t)
		e.AddBreakPointRel(3)
		require.Equal(t, []int{3}, e.CurrentContext().BreakPoints())
	})

	t.Run("StepInto", func(t *testing.T) {
		e := newEngine(t)
		e.StepInto()
		require.Equal(t, BreakState, e.State())
		require.Equal(t, 2, e.Istack().Len())
		require.Equal(t, 4, e.CurrentContext().NextIP())

		e.StepOut()
		require.Equal(t, BreakState, e.State())
		require.Equal(t, 1, e.Istack().Len())
		require.Equal(t, 3, e.CurrentContext().NextIP())
		require.Equal(t, []int64{5}, resultInts(t, e.Estack()))

		e.StepInto()
		require.Equal(t, HaltState, e.State())
		e.StepInto()
		require.Equal(t, HaltState, e.State())
	})

	t.Run("StepOver", func(t *testing.T) {
		e := newEngine(t)
		e.StepOver()
		require.Equal(t, BreakState, e.State())
		require.Equal(t, 1, e.Istack().Len())
		require.Equal(t, 3, e.CurrentContext().NextIP())
		require.Equal(t, []int64{5}, resultInts(t, e.Estack()))
		require.EqualValues(t, 5, e.ConsumedGas())
	})

	t.Run("StepOut of entry", func(t *testing.T) {
		e := newEngine(t)
		e.StepOut()
		require.Equal(t, HaltState, e.State())
		require.Equal(t, []int64{5}, resultInts(t, e.ResultStack()))
	})

	t.Run("fault while stepping", func(t *testing.T) {
		e := New(nil)
		load(t, e, makeProgram(opcode.ADD))
		e.StepOver()
		require.Equal(t, FaultState, e.State())
		require.ErrorIs(t, e.FaultError(), ErrStackUnderflow)
	})
}

func TestEngine_PrintOps(t *testing.T) {
	prog := makeScript(t, func(w *io.BinWriter) {
		emit.Int(w, 1)
		emit.Jmp(w, opcode.JMP, 3)
		emit.Syscall(w, "System.Runtime.Log")
		emit.Bytes(w, []byte{0xab, 0xcd})
	})
	e := New(nil)
	load(t, e, prog)
	e.AddBreakPoint(1)

	buf := new(bytes.Buffer)
	e.PrintOps(buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[0], "OPCODE")
	require.Contains(t, lines[1], "PUSH1")
	require.Contains(t, lines[1], "<<")
	require.Contains(t, lines[2], "JMP")
	require.Contains(t, lines[2], "3")
	require.Contains(t, lines[2], "*")
	require.Contains(t, lines[3], "System.Runtime.Log")
	require.Contains(t, lines[4], "abcd")
}

func TestEngine_DumpIStack(t *testing.T) {
	e := New(nil)
	require.Equal(t, "[]", e.DumpIStack())
	load(t, e, makeProgram(opcode.PUSH1))
	e.StepInto()
	require.Contains(t, e.DumpIStack(), `"nextip": 1`)
	require.Contains(t, DumpStack(e.Estack()), `"Integer"`)
	require.Equal(t, "[]", DumpStack(nil))
}
