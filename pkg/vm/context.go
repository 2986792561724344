package vm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// maxSyscallNameLen is the maximum length of SYSCALL method name.
const maxSyscallNameLen = 252

// Context represents the current execution context of the engine.
type Context struct {
	// Instruction pointer.
	ip int

	// The next instruction pointer.
	nextip int

	// The raw program script shared with the engine's script table.
	prog []byte

	// Index of the script in the engine's script table.
	scriptIndex int

	// Script hash of the prog.
	scriptHash util.Uint160

	// Breakpoints.
	breakPoints []int

	// Evaluation and alt stacks.
	estack *Stack
	astack *Stack

	// rvcount specifies number of return values, -1 means all.
	rvcount int

	pushOnly bool
}

var errNoInstParam = errors.New("failed to read instruction parameter")

func newContext(a *stackitem.Arena, s *script, rvcount int) *Context {
	return &Context{
		prog:        s.prog,
		scriptIndex: s.index,
		scriptHash:  s.hash,
		estack:      NewStack(a, "evaluation"),
		astack:      NewStack(a, "alt"),
		rvcount:     rvcount,
	}
}

// Estack returns the evaluation stack of c.
func (c *Context) Estack() *Stack {
	return c.estack
}

// Astack returns the alt stack of c.
func (c *Context) Astack() *Stack {
	return c.astack
}

// IP returns the offset of the instruction being executed (or the last one
// executed) in the context script.
func (c *Context) IP() int {
	return c.ip
}

// NextIP returns next instruction pointer.
func (c *Context) NextIP() int {
	return c.nextip
}

// Jump unconditionally moves the next instruction pointer to specified location.
func (c *Context) Jump(pos int) error {
	if pos < 0 || pos > len(c.prog) {
		return fmt.Errorf("invalid jump offset %d (script length %d)", pos, len(c.prog))
	}
	c.nextip = pos
	return nil
}

// RVCount returns the number of values this context returns, -1 means all.
func (c *Context) RVCount() int {
	return c.rvcount
}

// PushOnly tells whether this context only allows push instructions.
func (c *Context) PushOnly() bool {
	return c.pushOnly
}

// ScriptHash returns a hash of the script in the current context.
func (c *Context) ScriptHash() util.Uint160 {
	return c.scriptHash
}

// ScriptIndex returns the index of the context script in the engine's script
// table.
func (c *Context) ScriptIndex() int {
	return c.scriptIndex
}

// Program returns the loaded program. It must not be modified.
func (c *Context) Program() []byte {
	return c.prog
}

// LenInstr returns the number of instructions loaded.
func (c *Context) LenInstr() int {
	return len(c.prog)
}

// Next returns the next instruction to execute with its parameter if any.
// The parameter is not copied and shouldn't be written to. The instruction
// pointer is not moved.
func (c *Context) Next() (opcode.Opcode, []byte, error) {
	op, param, _, err := c.decode(c.nextip)
	return op, param, err
}

// decode reads an instruction at pos, returning it along with the position of
// the following instruction. End of script is an implicit RET.
func (c *Context) decode(pos int) (opcode.Opcode, []byte, int, error) {
	if pos >= len(c.prog) {
		return opcode.RET, nil, pos, nil
	}

	instr := opcode.Opcode(c.prog[pos])
	if !opcode.IsValid(instr) {
		return instr, nil, pos, fmt.Errorf("%w: 0x%02x at %d", ErrInvalidOpcode, byte(instr), pos)
	}
	next := pos + 1

	var numtoread int
	switch instr {
	case opcode.PUSHDATA1, opcode.SYSCALL:
		if next >= len(c.prog) {
			return instr, nil, pos, errNoInstParam
		}
		numtoread = int(c.prog[next])
		next++
		if instr == opcode.SYSCALL && numtoread > maxSyscallNameLen {
			return instr, nil, pos, fmt.Errorf("syscall name is too long: %d", numtoread)
		}
	case opcode.PUSHDATA2:
		if next+1 >= len(c.prog) {
			return instr, nil, pos, errNoInstParam
		}
		numtoread = int(binary.LittleEndian.Uint16(c.prog[next : next+2]))
		next += 2
	case opcode.PUSHDATA4:
		if next+3 >= len(c.prog) {
			return instr, nil, pos, errNoInstParam
		}
		var n = binary.LittleEndian.Uint32(c.prog[next : next+4])
		if n > stackitem.MaxItemSize {
			return instr, nil, pos, errors.New("parameter is too big")
		}
		numtoread = int(n)
		next += 4
	default:
		numtoread, _ = opcode.FixedOperandSize(instr)
		if numtoread == 0 {
			return instr, nil, next, nil
		}
	}
	if next+numtoread > len(c.prog) {
		return instr, nil, pos, errNoInstParam
	}
	return instr, c.prog[next : next+numtoread], next + numtoread, nil
}

// CurrInstr returns the current instruction and opcode.
func (c *Context) CurrInstr() (int, opcode.Opcode) {
	if c.ip >= len(c.prog) {
		return c.ip, opcode.RET
	}
	return c.ip, opcode.Opcode(c.prog[c.ip])
}

// NextInstr returns the next instruction and opcode.
func (c *Context) NextInstr() (int, opcode.Opcode) {
	op := opcode.RET
	if c.nextip < len(c.prog) {
		op = opcode.Opcode(c.prog[c.nextip])
	}
	return c.nextip, op
}

// String implements the fmt.Stringer interface.
func (c *Context) String() string {
	return "execution context"
}

// AddBreakPoint adds a breakpoint at the given script offset.
func (c *Context) AddBreakPoint(n int) {
	if !slices.Contains(c.breakPoints, n) {
		c.breakPoints = append(c.breakPoints, n)
	}
}

// BreakPoints returns breakpoints set for the context.
func (c *Context) BreakPoints() []int {
	return slices.Clone(c.breakPoints)
}

func (c *Context) atBreakPoint() bool {
	return slices.Contains(c.breakPoints, c.nextip)
}

// release drops both stacks of the context.
func (c *Context) release() {
	c.estack.Clear()
	c.astack.Clear()
}
