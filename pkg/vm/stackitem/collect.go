package stackitem

// SetRoots sets the function enumerating the items held outside of the
// arena. Once it is set, the arena frees unreachable items (reference cycles
// that claims alone can't release) before refusing to allocate more.
func (a *Arena) SetRoots(roots func(mark func(Item))) {
	a.roots = roots
}

// Settle forgets about items created since the previous call, from now on
// they survive Collect only when reachable from the roots.
func (a *Arena) Settle() {
	clear(a.fresh)
	a.fresh = a.fresh[:0]
}

// Collect frees every item that is neither reachable from the roots nor
// created since the last Settle and returns the number of freed items. It's
// a no-op without roots.
func (a *Arena) Collect() int {
	if a.roots == nil {
		return 0
	}
	var (
		marked = make([]bool, len(a.slots))
		queue  []Item
	)
	mark := func(it Item) {
		if !a.Valid(it) || marked[it.hdr().handle.Slot] {
			return
		}
		marked[it.hdr().handle.Slot] = true
		queue = append(queue, it)
	}
	a.roots(mark)
	for _, it := range a.fresh {
		mark(it)
	}
	for len(queue) > 0 {
		it := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		children(it, mark)
	}

	var garbage []Item
	for i := range a.slots {
		if it := a.slots[i].item; it != nil && !marked[i] {
			garbage = append(garbage, it)
		}
	}
	// Surviving children lose the claims of their dead containers.
	for _, it := range garbage {
		children(it, func(c Item) {
			if a.Valid(c) && marked[c.hdr().handle.Slot] {
				c.hdr().claims--
			}
		})
	}
	for _, it := range garbage {
		a.vacate(it.hdr())
		switch t := it.(type) {
		case *Array:
			t.value = nil
		case *Struct:
			t.value = nil
		case *Map:
			t.value = nil
		}
	}
	return len(garbage)
}

func children(it Item, f func(Item)) {
	switch t := it.(type) {
	case *Array:
		for _, c := range t.value {
			f(c)
		}
	case *Struct:
		for _, c := range t.value {
			f(c)
		}
	case *Map:
		for i := range t.value {
			f(t.value[i].Key)
			f(t.value[i].Value)
		}
	}
}
