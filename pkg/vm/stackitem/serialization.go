package stackitem

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
)

var (
	// ErrRecursive is returned upon an attempt to serialize some recursive
	// stack item (like an array including an item with a reference to the
	// same array).
	ErrRecursive = errors.New("recursive item")
	// ErrInvalidType is returned when an unknown type tag is met during
	// deserialization or a container is used as a map key.
	ErrInvalidType = errors.New("invalid type")
)

// serContext is an internal serialization context.
type serContext struct {
	seen map[Item]bool
}

// Serialize encodes the given Item into a byte slice.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinary(item, w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// EncodeBinary encodes the given Item into the given BinWriter. Errors are
// reported via w.Err.
func EncodeBinary(item Item, w *io.BinWriter) {
	sc := serContext{seen: make(map[Item]bool)}
	sc.serialize(item, w)
}

func (s *serContext) serialize(item Item, w *io.BinWriter) {
	if w.Err != nil {
		return
	}
	switch t := item.(type) {
	case *ByteArray:
		w.WriteB(byte(ByteArrayT))
		w.WriteVarBytes(t.value)
	case *Bool:
		w.WriteB(byte(BooleanT))
		w.WriteBool(t.value)
	case *BigInteger:
		w.WriteB(byte(IntegerT))
		w.WriteVarBytes(bigint.ToBytes(t.value))
	case *Interop:
		w.WriteB(byte(InteropT))
		w.WriteVarBytes(t.value)
	case *Array, *Struct:
		if s.seen[item] {
			w.Err = ErrRecursive
			return
		}
		s.seen[item] = true
		elems := item.Value().([]Item)
		w.WriteB(byte(item.Type()))
		w.WriteVarUint(uint64(len(elems)))
		for i := range elems {
			s.serialize(elems[i], w)
		}
		delete(s.seen, item)
	case *Map:
		if s.seen[item] {
			w.Err = ErrRecursive
			return
		}
		s.seen[item] = true
		w.WriteB(byte(MapT))
		w.WriteVarUint(uint64(len(t.value)))
		for i := range t.value {
			s.serialize(t.value[i].Key, w)
			s.serialize(t.value[i].Value, w)
		}
		delete(s.seen, item)
	default:
		w.Err = fmt.Errorf("%w: %T", ErrInvalidType, item)
	}
}

// SerializedSize returns the exact number of bytes Serialize produces for the
// item.
func SerializedSize(item Item) (int, error) {
	return serializedSize(item, make(map[Item]bool))
}

func serializedSize(item Item, seen map[Item]bool) (int, error) {
	switch t := item.(type) {
	case *ByteArray:
		return 1 + io.GetVarBytesSize(len(t.value)), nil
	case *Bool:
		return 2, nil
	case *BigInteger:
		return 1 + io.GetVarBytesSize(len(bigint.ToBytes(t.value))), nil
	case *Interop:
		return 1 + io.GetVarBytesSize(len(t.value)), nil
	case *Array, *Struct:
		if seen[item] {
			return 0, ErrRecursive
		}
		seen[item] = true
		elems := item.Value().([]Item)
		size := 1 + io.GetVarSize(len(elems))
		for i := range elems {
			n, err := serializedSize(elems[i], seen)
			if err != nil {
				return 0, err
			}
			size += n
		}
		delete(seen, item)
		return size, nil
	case *Map:
		if seen[item] {
			return 0, ErrRecursive
		}
		seen[item] = true
		size := 1 + io.GetVarSize(len(t.value))
		for i := range t.value {
			k, err := serializedSize(t.value[i].Key, seen)
			if err != nil {
				return 0, err
			}
			v, err := serializedSize(t.value[i].Value, seen)
			if err != nil {
				return 0, err
			}
			size += k + v
		}
		delete(seen, item)
		return size, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidType, item)
	}
}

// Deserialize decodes an Item from the given byte slice allocating it in the
// arena. The caller owns one claim on the result.
func Deserialize(a *Arena, data []byte) (Item, error) {
	r := io.NewBinReaderFromBuf(data)
	item := DecodeBinary(a, r)
	if r.Err != nil {
		return nil, r.Err
	}
	return item, nil
}

// DecodeBinary decodes a previously serialized Item from the given
// reader. Errors are reported via r.Err, partially decoded items are
// released.
func DecodeBinary(a *Arena, r *io.BinReader) Item {
	if r.Err != nil {
		return nil
	}

	var (
		item Item
		err  error
	)
	t := Type(r.ReadB())
	if r.Err != nil {
		return nil
	}

	switch t {
	case ByteArrayT:
		data := r.ReadVarBytes(MaxItemSize)
		if r.Err != nil {
			return nil
		}
		item, err = a.NewByteArray(data)
	case BooleanT:
		v := r.ReadBool()
		if r.Err != nil {
			return nil
		}
		item, err = a.NewBool(v)
	case IntegerT:
		data := r.ReadVarBytes(MaxBigIntegerSize)
		if r.Err != nil {
			return nil
		}
		item, err = a.NewBigInteger(bigint.FromBytes(data))
	case InteropT:
		data := r.ReadVarBytes(MaxItemSize)
		if r.Err != nil {
			return nil
		}
		item, err = a.NewInterop(data)
	case ArrayT, StructT:
		return decodeContainer(a, r, t)
	case MapT:
		return decodeMap(a, r)
	default:
		r.Err = fmt.Errorf("%w: %d", ErrInvalidType, t)
		return nil
	}
	if err != nil {
		r.Err = err
		return nil
	}
	return item
}

func readCount(r *io.BinReader) int {
	size := r.ReadVarUint()
	if r.Err == nil && size > MaxArraySize {
		r.Err = fmt.Errorf("%w: %d elements", errTooBigElements, size)
	}
	return int(size)
}

func decodeContainer(a *Arena, r *io.BinReader, t Type) Item {
	size := readCount(r)
	if r.Err != nil {
		return nil
	}
	var (
		c    *container
		item Item
	)
	if t == ArrayT {
		arr, err := a.NewArray(nil)
		if err != nil {
			r.Err = err
			return nil
		}
		c, item = &arr.container, arr
	} else {
		st, err := a.NewStruct(nil)
		if err != nil {
			r.Err = err
			return nil
		}
		c, item = &st.container, st
	}
	for i := 0; i < size; i++ {
		elem := DecodeBinary(a, r)
		if r.Err != nil {
			a.Release(item)
			return nil
		}
		c.appendOwned(elem)
	}
	return item
}

func decodeMap(a *Arena, r *io.BinReader) Item {
	size := readCount(r)
	if r.Err != nil {
		return nil
	}
	m, err := a.NewMap()
	if err != nil {
		r.Err = err
		return nil
	}
	for i := 0; i < size; i++ {
		key := DecodeBinary(a, r)
		value := DecodeBinary(a, r)
		if r.Err == nil && !IsValidMapKey(key) {
			r.Err = fmt.Errorf("%w: %s map key", ErrInvalidType, key.Type())
		}
		if r.Err == nil {
			r.Err = m.Set(key, value)
		}
		a.Release(key)
		a.Release(value)
		if r.Err != nil {
			a.Release(m)
			return nil
		}
	}
	return m
}
