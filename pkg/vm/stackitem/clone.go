package stackitem

import (
	"fmt"
	"slices"
)

// Clone makes a copy of the item inside the arena, the caller owns one claim
// on the result. Primitive items and Interops are copied, Structs are copied
// deeply (nested Structs are cloned, self references point to the copy),
// Arrays and Maps are shared with an additional claim.
func (a *Arena) Clone(it Item) (Item, error) {
	switch t := it.(type) {
	case *Bool:
		return a.NewBool(t.value)
	case *BigInteger:
		return a.NewBigInteger(t.value)
	case *ByteArray:
		return a.NewByteArray(slices.Clone(t.value))
	case *Interop:
		return a.NewInterop(slices.Clone(t.value))
	case *Struct:
		var limit = MaxClonableNumOfItems - 1 // For this struct itself.
		return a.cloneStruct(t, &limit, make(map[*Struct]*Struct))
	case *Array, *Map:
		return a.Claim(it), nil
	default:
		return nil, fmt.Errorf("%w: can't clone %T", ErrInvalidType, it)
	}
}

func (a *Arena) cloneStruct(s *Struct, limit *int, seen map[*Struct]*Struct) (*Struct, error) {
	if c, ok := seen[s]; ok {
		a.Claim(c)
		return c, nil
	}
	ret, err := a.NewStruct(nil)
	if err != nil {
		return nil, err
	}
	seen[s] = ret
	ret.value = make([]Item, 0, len(s.value))
	for _, e := range s.value {
		*limit--
		if *limit < 0 {
			a.Release(ret)
			return nil, errTooBigElements
		}
		if sub, ok := e.(*Struct); ok {
			c, err := a.cloneStruct(sub, limit, seen)
			if err != nil {
				a.Release(ret)
				return nil, err
			}
			ret.appendOwned(c)
			continue
		}
		ret.appendOwned(a.Claim(e))
	}
	return ret, nil
}
