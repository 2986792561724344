package vm

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/stackitem"
)

// elements is implemented by Array and Struct.
type elements interface {
	stackitem.Item
	Len() int
	At(i int) stackitem.Item
	Append(stackitem.Item)
	Set(i int, it stackitem.Item)
	Remove(i int)
	Reverse()
}

func (e *Engine) popElements() elements {
	it := e.pop()
	arr, ok := it.(elements)
	if !ok {
		panic(fmt.Errorf("%w: %s is not an array", stackitem.ErrInvalidConversion, it))
	}
	return arr
}

func toIndex(key stackitem.Item, l int) int {
	idx, err := stackitem.ToInt32(key)
	check(err)
	if idx < 0 || int(idx) >= l {
		panic(fmt.Sprintf("index %d is out of range (%d)", idx, l))
	}
	return int(idx)
}

// Arrays and maps

func (e *Engine) opArrays(op opcode.Opcode) {
	switch op {
	case opcode.ARRAYSIZE:
		it := e.pop()
		var n int
		switch t := it.(type) {
		case elements:
			n = t.Len()
		case *stackitem.Map:
			n = t.Len()
		default:
			b, err := it.TryBytes()
			check(err)
			n = len(b)
		}
		e.push(e.newInt(big.NewInt(int64(n))))

	case opcode.PACK:
		n := e.popCount()
		if n > e.estack().Len() || n > e.limits.MaxArraySize {
			panic(fmt.Sprintf("invalid PACK size %d", n))
		}
		items := make([]stackitem.Item, n)
		for i := range items {
			items[i] = e.pop()
		}
		arr, err := e.items.NewArray(items)
		check(err)
		e.push(arr)

	case opcode.UNPACK:
		arr := e.popElements()
		l := arr.Len()
		for i := l - 1; i >= 0; i-- {
			e.pushItem(arr.At(i))
		}
		e.push(e.newInt(big.NewInt(int64(l))))

	case opcode.PICKITEM:
		key := e.popKey()
		switch t := e.pop().(type) {
		case elements:
			e.pushItem(t.At(toIndex(key, t.Len())))
		case *stackitem.Map:
			v := t.Get(key)
			if v == nil {
				panic("key not found in Map")
			}
			e.pushItem(v)
		default:
			panic(fmt.Errorf("%w: PICKITEM from %s", stackitem.ErrInvalidConversion, t))
		}

	case opcode.SETITEM:
		value := e.clone(e.pop())
		key := e.popKey()
		switch t := e.pop().(type) {
		case elements:
			t.Set(toIndex(key, t.Len()), value)
		case *stackitem.Map:
			if !t.Has(key) && t.Len() >= e.limits.MaxArraySize {
				panic("too many Map elements")
			}
			check(t.Set(key, value))
		default:
			panic(fmt.Errorf("%w: SETITEM on %s", stackitem.ErrInvalidConversion, t))
		}

	case opcode.NEWARRAY, opcode.NEWSTRUCT:
		e.newContainer(op == opcode.NEWSTRUCT)

	case opcode.NEWMAP:
		m, err := e.items.NewMap()
		check(err)
		e.push(m)

	case opcode.APPEND:
		value := e.clone(e.pop())
		arr := e.popElements()
		if arr.Len() >= e.limits.MaxArraySize {
			panic("too many array elements")
		}
		arr.Append(value)

	case opcode.REVERSE:
		e.popElements().Reverse()

	case opcode.REMOVE:
		key := e.popKey()
		switch t := e.pop().(type) {
		case elements:
			t.Remove(toIndex(key, t.Len()))
		case *stackitem.Map:
			if i := t.Index(key); i >= 0 {
				t.Drop(i)
			}
		default:
			panic(fmt.Errorf("%w: REMOVE from %s", stackitem.ErrInvalidConversion, t))
		}

	case opcode.HASKEY:
		key := e.popKey()
		switch t := e.pop().(type) {
		case elements:
			idx, err := stackitem.ToInt32(key)
			check(err)
			if idx < 0 {
				panic("negative index")
			}
			e.push(e.newBool(int(idx) < t.Len()))
		case *stackitem.Map:
			e.push(e.newBool(t.Has(key)))
		default:
			panic(fmt.Errorf("%w: HASKEY on %s", stackitem.ErrInvalidConversion, t))
		}

	case opcode.KEYS:
		m, ok := e.pop().(*stackitem.Map)
		if !ok {
			panic(fmt.Errorf("%w: KEYS of a non-Map", stackitem.ErrInvalidConversion))
		}
		arr, err := e.items.NewArray(m.Keys())
		check(err)
		e.push(arr)

	case opcode.VALUES:
		var src []stackitem.Item
		switch t := e.pop().(type) {
		case elements:
			src = t.Value().([]stackitem.Item)
		case *stackitem.Map:
			src = t.Values()
		default:
			panic(fmt.Errorf("%w: VALUES of %s", stackitem.ErrInvalidConversion, t))
		}
		values := make([]stackitem.Item, len(src))
		for i := range src {
			values[i] = e.clone(src[i])
		}
		arr, err := e.items.NewArray(values)
		check(err)
		e.push(arr)

	default:
		panic(fmt.Sprintf("unknown array opcode %s", op))
	}
}

// newContainer implements NEWARRAY and NEWSTRUCT: an integer creates a
// container of false Booleans, an Array or a Struct is converted.
func (e *Engine) newContainer(isStruct bool) {
	it := e.pop()
	switch t := it.(type) {
	case *stackitem.Array:
		if !isStruct {
			e.pushItem(t)
			return
		}
		st, err := e.items.NewStruct(t.Value().([]stackitem.Item))
		check(err)
		e.push(st)
	case *stackitem.Struct:
		if isStruct {
			e.pushItem(t)
			return
		}
		arr, err := e.items.NewArray(t.Value().([]stackitem.Item))
		check(err)
		e.push(arr)
	default:
		n, err := stackitem.ToInt32(it)
		check(err)
		if n < 0 || int(n) > e.limits.MaxArraySize {
			panic(fmt.Sprintf("invalid container size %d", n))
		}
		var res stackitem.Item
		if isStruct {
			res, err = e.items.NewStructOf(int(n))
		} else {
			res, err = e.items.NewArrayOf(int(n))
		}
		check(err)
		e.push(res)
	}
}
