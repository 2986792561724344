package vm

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// PrintOps prints the opcodes of the current context to the given writer,
// the next instruction is marked with an arrow and breakpoints with a star.
func (e *Engine) PrintOps(out io.Writer) {
	ctx := e.CurrentContext()
	if ctx == nil {
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	fmt.Fprintln(w, "INDEX\tOPCODE\tPARAMETER")
	for pos := 0; pos < len(ctx.prog); {
		op, param, next, err := ctx.decode(pos)
		cursor := ""
		if pos == ctx.nextip {
			cursor = "\t<<"
		} else if slices.Contains(ctx.breakPoints, pos) {
			cursor = "\t*"
		}
		if err != nil {
			fmt.Fprintf(w, "%d\t%s\tERROR: %s%s\n", pos, op, err, cursor)
			break
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\n", pos, op, formatParam(op, param), cursor)
		pos = next
	}
	w.Flush()
}

func formatParam(op opcode.Opcode, param []byte) string {
	switch op {
	case opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.CALL:
		if len(param) == 2 {
			return fmt.Sprintf("%d", int16(binary.LittleEndian.Uint16(param)))
		}
	case opcode.SYSCALL:
		return string(param)
	case opcode.APPCALL, opcode.TAILCALL:
		if u, err := util.Uint160DecodeBytesBE(param); err == nil {
			return u.StringLE()
		}
	}
	if len(param) == 0 {
		return ""
	}
	return hex.EncodeToString(param)
}

type contextInfo struct {
	Hash   string `json:"hash"`
	IP     int    `json:"ip"`
	NextIP int    `json:"nextip"`
	Index  int    `json:"index"`
}

// DumpIStack returns the invocation stack as JSON, the innermost context
// first.
func (e *Engine) DumpIStack() string {
	res := make([]contextInfo, 0, e.istack.Len())
	for i := 0; i < e.istack.Len(); i++ {
		c := e.istack.Peek(i)
		res = append(res, contextInfo{
			Hash:   c.ScriptHash().StringLE(),
			IP:     c.IP(),
			NextIP: c.NextIP(),
			Index:  c.ScriptIndex(),
		})
	}
	b, _ := json.MarshalIndent(res, "", "    ")
	return string(b)
}

// DumpStack returns the stack as JSON.
func DumpStack(s *Stack) string {
	if s == nil {
		return "[]"
	}
	b, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}
