package vm

import (
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

type undoKind byte

const (
	undoPush undoKind = iota
	undoPop
	undoRemove
	undoInsert
	undoSwap
	undoReverse
	undoMove
)

// undo is a single stack mutation recorded by the journal. Removed items are
// claimed by the journal until the instruction is either committed or
// rolled back.
type undo struct {
	kind undoKind
	s    *Stack
	dst  *Stack
	item stackitem.Item
	a, b int
}

// journal records stack mutations made by the instruction being executed, a
// faulting instruction leaves every stack as it was before it started.
type journal struct {
	arena   *stackitem.Arena
	active  bool
	entries []undo
}

func (j *journal) begin() {
	j.active = true
}

func (j *journal) recording() bool {
	return j != nil && j.active
}

func (j *journal) add(u undo) {
	if u.item != nil {
		j.arena.Claim(u.item)
	}
	j.entries = append(j.entries, u)
}

// commit forgets the recorded mutations.
func (j *journal) commit() {
	j.active = false
	for i := range j.entries {
		if it := j.entries[i].item; it != nil {
			j.arena.Release(it)
		}
	}
	j.reset()
}

// rollback undoes the recorded mutations in reverse order.
func (j *journal) rollback() {
	j.active = false
	for i := len(j.entries) - 1; i >= 0; i-- {
		u := j.entries[i]
		switch u.kind {
		case undoPush:
			j.arena.Release(u.s.Pop())
		case undoPop:
			u.s.Push(u.item)
		case undoRemove:
			_ = u.s.Insert(u.a, u.item)
		case undoInsert:
			it, err := u.s.Remove(u.a)
			if err == nil {
				j.arena.Release(it)
			}
		case undoSwap:
			_ = u.s.Swap(u.a, u.b)
		case undoReverse:
			_ = u.s.Reverse(u.a)
		case undoMove:
			_ = u.dst.MoveTo(u.s, u.a)
		}
	}
	j.reset()
}

func (j *journal) reset() {
	clear(j.entries)
	j.entries = j.entries[:0]
}

// held returns the items claimed by the journal.
func (j *journal) held(mark func(stackitem.Item)) {
	for i := range j.entries {
		if it := j.entries[i].item; it != nil {
			mark(it)
		}
	}
}
