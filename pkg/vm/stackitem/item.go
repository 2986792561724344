package stackitem

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
)

const (
	// MaxBigIntegerSize is the maximum size of an Integer item in bytes.
	MaxBigIntegerSize = bigint.MaxBytesLen
	// MaxItemSize is the maximum size of a ByteArray or Interop payload.
	MaxItemSize = 1024 * 1024
	// MaxArraySize is the maximum number of elements in a container.
	MaxArraySize = 1024
	// MaxComparableNumOfItems is the maximum number of items that can be compared for structs.
	MaxComparableNumOfItems = DefaultMaxItems
	// MaxClonableNumOfItems is the maximum number of items that can be cloned in structs.
	MaxClonableNumOfItems = DefaultMaxItems
)

// Item represents the "real" value that is pushed on the stack. Only this
// package implements it.
type Item interface {
	fmt.Stringer
	Value() any
	// TryBool converts Item to a boolean value.
	TryBool() (bool, error)
	// TryBytes converts Item to a byte slice. If the underlying type is a
	// byte slice, it's returned as is without copying.
	TryBytes() ([]byte, error)
	// TryInteger converts Item to an integer.
	TryInteger() (*big.Int, error)
	// Equals checks if 2 StackItems are equal.
	Equals(s Item) bool
	// Type returns stack item type.
	Type() Type
	// Claims returns the number of owners of the item.
	Claims() int
	// Handle returns item's arena handle.
	Handle() Handle

	hdr() *header
}

var (
	// ErrInvalidConversion is returned upon an attempt to make an incorrect
	// conversion between item types.
	ErrInvalidConversion = errors.New("invalid conversion")
	// ErrTooBig is returned when an item exceeds some size constraints, like
	// the maximum allowed integer value or the number of elements in an array.
	ErrTooBig = errors.New("too big")
	// ErrItemLimit is returned when an arena can't hold more items.
	ErrItemLimit = errors.New("item limit exceeded")
	// ErrInvalidValue is returned for values not fitting some constraints.
	ErrInvalidValue = errors.New("invalid value")

	errTooBigComparable = fmt.Errorf("%w: uncomparable", ErrTooBig)
	errTooBigInteger    = fmt.Errorf("%w: integer", ErrTooBig)
	errTooBigSize       = fmt.Errorf("%w: size", ErrTooBig)
	errTooBigElements   = fmt.Errorf("%w: many elements", ErrTooBig)
)

// mkInvConversion creates a conversion error with additional metadata (from and
// to types).
func mkInvConversion(from Item, to Type) error {
	return fmt.Errorf("%w: %s/%s", ErrInvalidConversion, from, to)
}

// ToInt32 converts an item to int32 failing on values outside of int32 range.
func ToInt32(it Item) (int32, error) {
	bi, err := it.TryInteger()
	if err != nil {
		return 0, err
	}
	if !bi.IsInt64() || bi.Int64() > math.MaxInt32 || bi.Int64() < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s is out of int32 range", ErrInvalidConversion, bi)
	}
	return int32(bi.Int64()), nil
}

// ByteSize returns the length of the item's byte projection.
func ByteSize(it Item) (int, error) {
	b, err := it.TryBytes()
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// primitiveBytes returns the byte projection of Bool, Integer and ByteArray.
func primitiveBytes(it Item) ([]byte, bool) {
	switch t := it.(type) {
	case *Bool, *BigInteger, *ByteArray:
		b, err := t.TryBytes()
		return b, err == nil
	default:
		return nil, false
	}
}

// Bool represents a boolean Item.
type Bool struct {
	header
	value bool
}

// Value implements the Item interface.
func (i *Bool) Value() any { return i.value }

// String implements the Item interface.
func (i *Bool) String() string { return "Boolean" }

// TryBool implements the Item interface.
func (i *Bool) TryBool() (bool, error) { return i.value, nil }

// Bytes converts Bool to bytes.
func (i *Bool) Bytes() []byte {
	if i.value {
		return []byte{1}
	}
	return []byte{0}
}

// TryBytes implements the Item interface.
func (i *Bool) TryBytes() ([]byte, error) { return i.Bytes(), nil }

// TryInteger implements the Item interface.
func (i *Bool) TryInteger() (*big.Int, error) {
	if i.value {
		return big.NewInt(1), nil
	}
	return big.NewInt(0), nil
}

// Equals implements the Item interface.
func (i *Bool) Equals(s Item) bool {
	if i == s {
		return true
	}
	if val, ok := s.(*Bool); ok {
		return i.value == val.value
	}
	b, ok := primitiveBytes(s)
	return ok && bytes.Equal(i.Bytes(), b)
}

// Type implements the Item interface.
func (i *Bool) Type() Type { return BooleanT }

// BigInteger represents a big integer on the stack.
type BigInteger struct {
	header
	value *big.Int
}

// Big returns the underlying value, it must not be modified.
func (i *BigInteger) Big() *big.Int { return i.value }

// Bytes converts BigInteger to a minimal little-endian slice.
func (i *BigInteger) Bytes() []byte { return bigint.ToBytes(i.value) }

// Value implements the Item interface.
func (i *BigInteger) Value() any { return i.value }

// String implements the Item interface.
func (i *BigInteger) String() string { return "Integer" }

// TryBool implements the Item interface.
func (i *BigInteger) TryBool() (bool, error) { return i.value.Sign() != 0, nil }

// TryBytes implements the Item interface.
func (i *BigInteger) TryBytes() ([]byte, error) { return i.Bytes(), nil }

// TryInteger implements the Item interface.
func (i *BigInteger) TryInteger() (*big.Int, error) { return i.value, nil }

// Equals implements the Item interface.
func (i *BigInteger) Equals(s Item) bool {
	if i == s {
		return true
	}
	if val, ok := s.(*BigInteger); ok {
		return i.value.Cmp(val.value) == 0
	}
	b, ok := primitiveBytes(s)
	return ok && bytes.Equal(i.Bytes(), b)
}

// Type implements the Item interface.
func (i *BigInteger) Type() Type { return IntegerT }

// ByteArray represents a byte slice on the stack.
type ByteArray struct {
	header
	value []byte
}

// Value implements the Item interface.
func (i *ByteArray) Value() any { return i.value }

// String implements the Item interface.
func (i *ByteArray) String() string { return "ByteArray" }

// TryBool implements the Item interface. Any non-zero byte makes it true.
func (i *ByteArray) TryBool() (bool, error) {
	for _, b := range i.value {
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}

// TryBytes implements the Item interface.
func (i *ByteArray) TryBytes() ([]byte, error) { return i.value, nil }

// TryInteger implements the Item interface.
func (i *ByteArray) TryInteger() (*big.Int, error) {
	if len(i.value) > MaxBigIntegerSize {
		return nil, fmt.Errorf("%w: %d bytes to integer", errTooBigInteger, len(i.value))
	}
	return bigint.FromBytes(i.value), nil
}

// Equals implements the Item interface.
func (i *ByteArray) Equals(s Item) bool {
	if i == s {
		return true
	}
	b, ok := primitiveBytes(s)
	return ok && bytes.Equal(i.value, b)
}

// Type implements the Item interface.
func (i *ByteArray) Type() Type { return ByteArrayT }

// Interop represents an opaque host object handle.
type Interop struct {
	header
	value []byte
}

// Value implements the Item interface.
func (i *Interop) Value() any { return i.value }

// String implements the Item interface.
func (i *Interop) String() string { return "Interop" }

// TryBool implements the Item interface.
func (i *Interop) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i *Interop) TryBytes() ([]byte, error) { return nil, mkInvConversion(i, ByteArrayT) }

// TryInteger implements the Item interface.
func (i *Interop) TryInteger() (*big.Int, error) { return nil, mkInvConversion(i, IntegerT) }

// Equals implements the Item interface. Interops are equal when they hold
// the same payload.
func (i *Interop) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Interop)
	return ok && bytes.Equal(i.value, val.value)
}

// Type implements the Item interface.
func (i *Interop) Type() Type { return InteropT }

// container is the shared representation of Array and Struct.
type container struct {
	header
	value []Item
}

// Value implements the Item interface.
func (c *container) Value() any { return c.value }

// Len returns the number of elements.
func (c *container) Len() int { return len(c.value) }

// At returns the element at index i without claiming it.
func (c *container) At(i int) Item { return c.value[i] }

// TryBool implements the Item interface.
func (c *container) TryBool() (bool, error) { return true, nil }

// Append adds an element, the container claims it.
func (c *container) Append(it Item) {
	c.value = append(c.value, c.arena.Claim(it))
}

// appendOwned adds an element transferring the caller's claim.
func (c *container) appendOwned(it Item) {
	c.value = append(c.value, it)
}

// Set replaces the element at index i, the old one is released.
func (c *container) Set(i int, it Item) {
	old := c.value[i]
	c.value[i] = c.arena.Claim(it)
	c.arena.Release(old)
}

// Remove deletes the element at index i.
func (c *container) Remove(i int) {
	old := c.value[i]
	c.value = append(c.value[:i], c.value[i+1:]...)
	c.arena.Release(old)
}

// Reverse reverses elements in place.
func (c *container) Reverse() {
	for i, j := 0, len(c.value)-1; i < j; i, j = i+1, j-1 {
		c.value[i], c.value[j] = c.value[j], c.value[i]
	}
}

// Clear releases all elements.
func (c *container) Clear() {
	old := c.value
	c.value = nil
	c.arena.releaseAll(old)
}

// Array represents a mutable list of items compared by reference.
type Array struct {
	container
}

// String implements the Item interface.
func (i *Array) String() string { return "Array" }

// TryBytes implements the Item interface.
func (i *Array) TryBytes() ([]byte, error) { return projectBytes(i) }

// TryInteger implements the Item interface.
func (i *Array) TryInteger() (*big.Int, error) { return nil, mkInvConversion(i, IntegerT) }

// Equals implements the Item interface.
func (i *Array) Equals(s Item) bool { return i == s }

// Type implements the Item interface.
func (i *Array) Type() Type { return ArrayT }

// Struct represents a struct on the stack, it has value semantics.
type Struct struct {
	container
}

// String implements the Item interface.
func (i *Struct) String() string { return "Struct" }

// TryBytes implements the Item interface.
func (i *Struct) TryBytes() ([]byte, error) { return projectBytes(i) }

// TryInteger implements the Item interface.
func (i *Struct) TryInteger() (*big.Int, error) { return nil, mkInvConversion(i, IntegerT) }

// Type implements the Item interface.
func (i *Struct) Type() Type { return StructT }

type structPair struct {
	a, b *Struct
}

// Equals implements the Item interface. Structs are compared element-wise.
// It panics with ErrTooBig if more than MaxComparableNumOfItems elements
// have to be compared.
func (i *Struct) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Struct)
	if !ok {
		return false
	}
	var limit = MaxComparableNumOfItems - 1 // For this struct itself.
	return i.equalStruct(val, &limit, make(map[structPair]struct{}))
}

func (i *Struct) equalStruct(s *Struct, limit *int, visited map[structPair]struct{}) bool {
	if i == s {
		return true
	} else if len(i.value) != len(s.value) {
		return false
	}
	p := structPair{i, s}
	if _, ok := visited[p]; ok {
		return true
	}
	visited[p] = struct{}{}
	for j := range i.value {
		*limit--
		if *limit < 0 {
			panic(errTooBigElements)
		}
		sa, oka := i.value[j].(*Struct)
		sb, okb := s.value[j].(*Struct)
		if oka && okb {
			if !sa.equalStruct(sb, limit, visited) {
				return false
			}
		} else if !i.value[j].Equals(s.value[j]) {
			return false
		}
	}
	return true
}

// MapElement is a key-value pair of the Map.
type MapElement struct {
	Key   Item
	Value Item
}

// Map represents an insertion-ordered map of primitive keys to items.
type Map struct {
	header
	value []MapElement
}

// Value implements the Item interface.
func (i *Map) Value() any { return i.value }

// Len returns the number of entries.
func (i *Map) Len() int { return len(i.value) }

// String implements the Item interface.
func (i *Map) String() string { return "Map" }

// TryBool implements the Item interface.
func (i *Map) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i *Map) TryBytes() ([]byte, error) { return nil, mkInvConversion(i, ByteArrayT) }

// TryInteger implements the Item interface.
func (i *Map) TryInteger() (*big.Int, error) { return nil, mkInvConversion(i, IntegerT) }

// Equals implements the Item interface.
func (i *Map) Equals(s Item) bool { return i == s }

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

// Index returns the index of the key in the map or -1.
func (i *Map) Index(key Item) int {
	for k := range i.value {
		if i.value[k].Key.Equals(key) {
			return k
		}
	}
	return -1
}

// Has checks if the map has the specified key.
func (i *Map) Has(key Item) bool {
	return i.Index(key) >= 0
}

// Get returns the value stored under key (not claimed) or nil.
func (i *Map) Get(key Item) Item {
	if k := i.Index(key); k >= 0 {
		return i.value[k].Value
	}
	return nil
}

// Keys returns map keys in insertion order.
func (i *Map) Keys() []Item {
	res := make([]Item, len(i.value))
	for k := range i.value {
		res[k] = i.value[k].Key
	}
	return res
}

// Values returns map values in insertion order.
func (i *Map) Values() []Item {
	res := make([]Item, len(i.value))
	for k := range i.value {
		res[k] = i.value[k].Value
	}
	return res
}

// Set adds or replaces the value for the key. The map claims both.
func (i *Map) Set(key, value Item) error {
	if !IsValidMapKey(key) {
		return fmt.Errorf("%w: %s can't be a map key", ErrInvalidValue, key)
	}
	if k := i.Index(key); k >= 0 {
		old := i.value[k].Value
		i.value[k].Value = i.arena.Claim(value)
		i.arena.Release(old)
		return nil
	}
	i.value = append(i.value, MapElement{
		Key:   i.arena.Claim(key),
		Value: i.arena.Claim(value),
	})
	return nil
}

// Drop removes the element at index.
func (i *Map) Drop(index int) {
	el := i.value[index]
	i.value = append(i.value[:index], i.value[index+1:]...)
	i.arena.Release(el.Key)
	i.arena.Release(el.Value)
}

// Clear releases all entries.
func (i *Map) Clear() {
	old := i.value
	i.value = nil
	for k := range old {
		i.arena.Release(old[k].Key)
		i.arena.Release(old[k].Value)
	}
}

// IsValidMapKey checks whether it's possible to use the given Item as a Map
// key.
func IsValidMapKey(key Item) bool {
	return key != nil && key.Type().IsPrimitive()
}

// projectBytes builds the byte projection of an Array or a Struct: var-uint
// element count followed by var-bytes projections of elements.
func projectBytes(it Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	err := project(w.BinWriter, it, make(map[Item]bool))
	if err != nil {
		return nil, err
	}
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

func project(w *io.BinWriter, it Item, seen map[Item]bool) error {
	var elems []Item
	switch t := it.(type) {
	case *Array:
		elems = t.value
	case *Struct:
		elems = t.value
	default:
		return mkInvConversion(it, ByteArrayT)
	}
	if seen[it] {
		return ErrRecursive
	}
	seen[it] = true
	w.WriteVarUint(uint64(len(elems)))
	for _, e := range elems {
		switch e.(type) {
		case *Array, *Struct:
			sub := io.NewBufBinWriter()
			if err := project(sub.BinWriter, e, seen); err != nil {
				return err
			}
			w.WriteVarBytes(sub.Bytes())
		default:
			b, err := e.TryBytes()
			if err != nil {
				return err
			}
			w.WriteVarBytes(b)
		}
	}
	delete(seen, it)
	return nil
}

// Dump returns a short human-readable representation of the item value used
// in logs and the CLI.
func Dump(it Item) string {
	switch t := it.(type) {
	case *Bool:
		return fmt.Sprintf("%t", t.value)
	case *BigInteger:
		return t.value.String()
	case *ByteArray:
		return hex.EncodeToString(t.value)
	case *Interop:
		return "interop:" + hex.EncodeToString(t.value)
	case *Array:
		return fmt.Sprintf("Array[%d]", t.Len())
	case *Struct:
		return fmt.Sprintf("Struct[%d]", t.Len())
	case *Map:
		return fmt.Sprintf("Map[%d]", t.Len())
	default:
		return "<nil>"
	}
}
