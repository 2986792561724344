package vm

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// Stack implementation for the engine. The stack with its LIFO semantics is
// emulated from a simple slice where the top of the stack corresponds to the
// latest element of this slice. Pushes are appends to this slice, pops are
// slice resizes.
//
// Every element on the stack holds one claim on its item. Push transfers the
// pusher's claim to the stack, Pop transfers it back to the caller.
type Stack struct {
	elems []stackitem.Item
	arena *stackitem.Arena
	name  string
	j     *journal
}

// NewStack returns a new stack named by the given name and bound to the arena.
func NewStack(a *stackitem.Arena, n string) *Stack {
	return &Stack{
		elems: make([]stackitem.Item, 0, 16),
		arena: a,
		name:  n,
	}
}

// Name returns the name of the stack.
func (s *Stack) Name() string { return s.name }

// Len returns the number of elements that are on the stack.
func (s *Stack) Len() int { return len(s.elems) }

// Push pushes the item onto the stack taking over the caller's claim on it.
func (s *Stack) Push(it stackitem.Item) {
	s.elems = append(s.elems, it)
	if s.j.recording() {
		s.j.add(undo{kind: undoPush, s: s})
	}
}

// Pop removes and returns the element on top of the stack, the caller becomes
// responsible for releasing it. It returns nil if the stack is empty.
func (s *Stack) Pop() stackitem.Item {
	l := len(s.elems)
	if l == 0 {
		return nil
	}
	it := s.elems[l-1]
	s.elems[l-1] = nil
	s.elems = s.elems[:l-1]
	if s.j.recording() {
		s.j.add(undo{kind: undoPop, s: s, item: it})
	}
	return it
}

// Peek returns the element (n) far away from the top of the stack with an
// additional claim the caller has to release. It returns nil if there is no
// such element.
func (s *Stack) Peek(n int) stackitem.Item {
	it := s.at(n)
	if it == nil {
		return nil
	}
	return s.arena.Claim(it)
}

// Top returns the element on top of the stack without claiming it. Nil if
// the stack is empty.
func (s *Stack) Top() stackitem.Item {
	return s.at(0)
}

// at returns the element (n) far away from the top without claiming it.
func (s *Stack) at(n int) stackitem.Item {
	if n < 0 || n >= len(s.elems) {
		return nil
	}
	return s.elems[len(s.elems)-1-n]
}

// Drop releases up to n elements from the top of the stack and returns the
// number of elements dropped.
func (s *Stack) Drop(n int) int {
	var dropped int
	for ; dropped < n && len(s.elems) > 0; dropped++ {
		s.arena.Release(s.Pop())
	}
	return dropped
}

// Clear releases all elements on the stack.
func (s *Stack) Clear() {
	s.Drop(len(s.elems))
}

// Remove removes the element (n) far away from the top and returns it
// transferring the stack's claim to the caller.
func (s *Stack) Remove(n int) (stackitem.Item, error) {
	if n < 0 || n >= len(s.elems) {
		return nil, fmt.Errorf("%w: remove %d from %d elements", ErrStackUnderflow, n, len(s.elems))
	}
	idx := len(s.elems) - 1 - n
	it := s.elems[idx]
	copy(s.elems[idx:], s.elems[idx+1:])
	s.elems[len(s.elems)-1] = nil
	s.elems = s.elems[:len(s.elems)-1]
	if s.j.recording() {
		s.j.add(undo{kind: undoRemove, s: s, item: it, a: n})
	}
	return it, nil
}

// Insert puts the item at position n from the top (0 is the top itself),
// the stack takes over the caller's claim.
func (s *Stack) Insert(n int, it stackitem.Item) error {
	if n < 0 || n > len(s.elems) {
		return fmt.Errorf("%w: insert at %d into %d elements", ErrStackUnderflow, n, len(s.elems))
	}
	idx := len(s.elems) - n
	s.elems = append(s.elems, nil)
	copy(s.elems[idx+1:], s.elems[idx:])
	s.elems[idx] = it
	if s.j.recording() {
		s.j.add(undo{kind: undoInsert, s: s, a: n})
	}
	return nil
}

// Swap swaps two elements on the stack without popping and pushing them.
func (s *Stack) Swap(n1, n2 int) error {
	if n1 < 0 || n2 < 0 || n1 >= len(s.elems) || n2 >= len(s.elems) {
		return fmt.Errorf("%w: swap %d and %d in %d elements", ErrStackUnderflow, n1, n2, len(s.elems))
	}
	if n1 == n2 {
		return nil
	}
	i1, i2 := len(s.elems)-1-n1, len(s.elems)-1-n2
	s.elems[i1], s.elems[i2] = s.elems[i2], s.elems[i1]
	if s.j.recording() {
		s.j.add(undo{kind: undoSwap, s: s, a: n1, b: n2})
	}
	return nil
}

// Roll brings an item with the given index to the top of the stack moving all
// the other elements down accordingly.
func (s *Stack) Roll(n int) error {
	if n == 0 {
		return nil
	}
	it, err := s.Remove(n)
	if err != nil {
		return err
	}
	s.Push(it)
	return nil
}

// Reverse reverses the order of the top n elements on the stack.
func (s *Stack) Reverse(n int) error {
	if n < 0 || n > len(s.elems) {
		return fmt.Errorf("%w: reverse %d of %d elements", ErrStackUnderflow, n, len(s.elems))
	}
	for i, j := len(s.elems)-n, len(s.elems)-1; i < j; i, j = i+1, j-1 {
		s.elems[i], s.elems[j] = s.elems[j], s.elems[i]
	}
	if s.j.recording() {
		s.j.add(undo{kind: undoReverse, s: s, a: n})
	}
	return nil
}

// CopyTo pushes count top elements of the stack onto dst keeping their order,
// every copied element gets an additional claim. Negative count copies the
// whole stack.
func (s *Stack) CopyTo(dst *Stack, count int) error {
	if count < 0 {
		count = len(s.elems)
	}
	if count > len(s.elems) {
		return fmt.Errorf("%w: copy %d of %d elements", ErrStackUnderflow, count, len(s.elems))
	}
	for _, it := range s.elems[len(s.elems)-count:] {
		dst.Push(s.arena.Claim(it))
	}
	return nil
}

// MoveTo moves count top elements of the stack onto dst keeping their order.
// Negative count moves the whole stack.
func (s *Stack) MoveTo(dst *Stack, count int) error {
	if count < 0 {
		count = len(s.elems)
	}
	if count > len(s.elems) {
		return fmt.Errorf("%w: move %d of %d elements", ErrStackUnderflow, count, len(s.elems))
	}
	idx := len(s.elems) - count
	dst.elems = append(dst.elems, s.elems[idx:]...)
	clear(s.elems[idx:])
	s.elems = s.elems[:idx]
	if s.j.recording() {
		s.j.add(undo{kind: undoMove, s: s, dst: dst, a: count})
	}
	return nil
}

// ToArray converts the stack to an array of stack items with the top item
// being the last. Items are not claimed.
func (s *Stack) ToArray() []stackitem.Item {
	items := make([]stackitem.Item, len(s.elems))
	copy(items, s.elems)
	return items
}

// MarshalJSON implements the JSON marshalling interface, the top item comes
// first.
func (s *Stack) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(s.elems))
	for i := len(s.elems) - 1; i >= 0; i-- {
		data, err := stackitem.ToJSONWithTypes(s.elems[i])
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return json.Marshal(items)
}
