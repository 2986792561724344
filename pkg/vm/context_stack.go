package vm

import (
	"fmt"
	"slices"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
)

// ContextStack is the invocation stack of the engine. The innermost context
// is on top, Peek(0) is the current one.
type ContextStack struct {
	elems   []*Context
	max     int
	scripts *scriptTable
}

func newContextStack(max int, t *scriptTable) *ContextStack {
	return &ContextStack{
		elems:   make([]*Context, 0, 8),
		max:     max,
		scripts: t,
	}
}

// Len returns the number of contexts.
func (s *ContextStack) Len() int {
	return len(s.elems)
}

// Peek returns the n-th context from the top, negative values count from the
// bottom (-1 is the entry context). It returns nil if there is no such
// context.
func (s *ContextStack) Peek(n int) *Context {
	if n < 0 {
		n = -n - 1
	} else {
		n = len(s.elems) - 1 - n
	}
	if n < 0 || n >= len(s.elems) {
		return nil
	}
	return s.elems[n]
}

// Push adds a new innermost context.
func (s *ContextStack) Push(c *Context) error {
	if len(s.elems) >= s.max {
		return fmt.Errorf("%w: %d", ErrCallDepth, s.max)
	}
	s.scripts.claim(c.scriptIndex)
	s.elems = append(s.elems, c)
	return nil
}

// pop removes the innermost context without releasing it.
func (s *ContextStack) pop() *Context {
	l := len(s.elems)
	if l == 0 {
		return nil
	}
	c := s.elems[l-1]
	s.elems[l-1] = nil
	s.elems = s.elems[:l-1]
	return c
}

// Pop removes and releases the innermost context, returns false when there
// is none.
func (s *ContextStack) Pop() bool {
	c := s.pop()
	if c == nil {
		return false
	}
	s.dispose(c)
	return true
}

// Remove removes and releases the n-th context from the top.
func (s *ContextStack) Remove(n int) error {
	if n < 0 || n >= len(s.elems) {
		return fmt.Errorf("%w: no context %d", ErrStackUnderflow, n)
	}
	idx := len(s.elems) - 1 - n
	c := s.elems[idx]
	s.elems = slices.Delete(s.elems, idx, idx+1)
	s.dispose(c)
	return nil
}

// Drop releases up to n innermost contexts and returns the number dropped.
func (s *ContextStack) Drop(n int) int {
	var dropped int
	for ; dropped < n && s.Pop(); dropped++ {
	}
	return dropped
}

// Clear releases all contexts.
func (s *ContextStack) Clear() {
	s.Drop(len(s.elems))
}

func (s *ContextStack) dispose(c *Context) {
	c.release()
	s.scripts.release(c.scriptIndex)
}

// script is a script table entry.
type script struct {
	prog  []byte
	hash  util.Uint160
	index int
	refs  int
}

// scriptTable keeps every script loaded into the engine, deduplicated by hash.
// Indices are stable for the lifetime of the engine.
type scriptTable struct {
	list   []*script
	byHash map[util.Uint160]*script
}

func newScriptTable() *scriptTable {
	return &scriptTable{byHash: make(map[util.Uint160]*script)}
}

// add registers a copy of the program unless a script with the same hash is
// already known.
func (t *scriptTable) add(prog []byte) *script {
	h := hash.Hash160(prog)
	if s, ok := t.byHash[h]; ok {
		return s
	}
	s := &script{
		prog:  slices.Clone(prog),
		hash:  h,
		index: len(t.list),
	}
	t.list = append(t.list, s)
	t.byHash[h] = s
	return s
}

func (t *scriptTable) get(i int) *script {
	if i < 0 || i >= len(t.list) {
		return nil
	}
	return t.list[i]
}

func (t *scriptTable) claim(i int) {
	if s := t.get(i); s != nil {
		s.refs++
	}
}

func (t *scriptTable) release(i int) {
	if s := t.get(i); s != nil && s.refs > 0 {
		s.refs--
	}
}

func (t *scriptTable) reset() {
	t.list = nil
	clear(t.byHash)
}
