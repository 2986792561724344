package stackitem

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/bigint"
)

// DefaultMaxItems is the default number of items that can be alive in a
// single arena.
const DefaultMaxItems = 2048

// Handle identifies an item inside its arena. A handle becomes stale once the
// item is freed: the slot may be reused, but with a different generation.
type Handle struct {
	Slot int32
	Gen  uint32
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Slot, h.Gen)
}

// header is embedded into every item, it links the item to its arena slot and
// keeps the claim counter.
type header struct {
	arena  *Arena
	handle Handle
	claims int
}

func (h *header) hdr() *header { return h }

// Claims returns the number of outstanding claims on the item.
func (h *header) Claims() int { return h.claims }

// Handle returns the arena handle of the item.
func (h *header) Handle() Handle { return h.handle }

type slot struct {
	item Item
	gen  uint32
}

// Arena owns every item created by an engine and bounds their number. It
// is not safe for concurrent use, each engine has its own arena.
type Arena struct {
	slots []slot
	free  []int32
	live  int
	max   int

	roots func(mark func(Item))
	fresh []Item
}

// NewArena creates an arena that allows at most maxItems live items at any
// moment. Non-positive values mean DefaultMaxItems.
func NewArena(maxItems int) *Arena {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Arena{max: maxItems}
}

// Live returns the number of currently allocated items.
func (a *Arena) Live() int { return a.live }

// MaxItems returns the arena capacity.
func (a *Arena) MaxItems() int { return a.max }

// reserve checks that n more items fit into the arena.
func (a *Arena) reserve(n int) error {
	if n >= 0 && a.live+n > a.max {
		a.Collect()
	}
	if n < 0 || a.live+n > a.max {
		return fmt.Errorf("%w: %d live, %d requested, %d allowed", ErrItemLimit, a.live, n, a.max)
	}
	return nil
}

// register places an item into a free slot. Space must be reserved first.
func (a *Arena) register(it Item) {
	var (
		h   = it.hdr()
		idx int32
	)
	if l := len(a.free); l > 0 {
		idx = a.free[l-1]
		a.free = a.free[:l-1]
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	a.slots[idx].item = it
	h.arena = a
	h.handle = Handle{Slot: idx, Gen: a.slots[idx].gen}
	h.claims = 1
	a.live++
	if a.roots != nil {
		a.fresh = append(a.fresh, it)
	}
}

// Valid reports whether it is a live item of this arena.
func (a *Arena) Valid(it Item) bool {
	if it == nil {
		return false
	}
	h := it.hdr()
	if h.arena != a || h.handle.Slot < 0 || int(h.handle.Slot) >= len(a.slots) {
		return false
	}
	s := a.slots[h.handle.Slot]
	return s.gen == h.handle.Gen && s.item == it
}

// Claim adds a claim on the item and returns it. Stale items are returned
// untouched.
func (a *Arena) Claim(it Item) Item {
	if a.Valid(it) {
		it.hdr().claims++
	}
	return it
}

// Release removes a claim from the item, freeing it when no claims are left.
// Releasing a stale item is a no-op.
func (a *Arena) Release(it Item) {
	if !a.Valid(it) {
		return
	}
	h := it.hdr()
	h.claims--
	if h.claims > 0 {
		return
	}
	a.vacate(h)
	switch t := it.(type) {
	case *Array:
		a.releaseAll(t.value)
		t.value = nil
	case *Struct:
		a.releaseAll(t.value)
		t.value = nil
	case *Map:
		for i := range t.value {
			a.Release(t.value[i].Key)
			a.Release(t.value[i].Value)
		}
		t.value = nil
	}
}

// ReleaseAll releases every item in the list.
func (a *Arena) ReleaseAll(items ...Item) {
	a.releaseAll(items)
}

func (a *Arena) releaseAll(items []Item) {
	for _, it := range items {
		a.Release(it)
	}
}

// vacate frees the slot and bumps its generation, so that every reference
// to the item left in a cycle becomes stale.
func (a *Arena) vacate(h *header) {
	s := &a.slots[h.handle.Slot]
	s.item = nil
	s.gen++
	h.claims = 0
	a.free = append(a.free, h.handle.Slot)
	a.live--
}

// Reset frees every item at once, including unreachable cycles.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	for i := range a.slots {
		if it := a.slots[i].item; it != nil {
			it.hdr().claims = 0
		}
		a.slots[i].item = nil
		a.slots[i].gen++
		a.free = append(a.free, int32(len(a.slots)-1-i))
	}
	a.live = 0
	a.Settle()
}

// NewBool creates a new Boolean item.
func (a *Arena) NewBool(v bool) (*Bool, error) {
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &Bool{value: v}
	a.register(it)
	return it, nil
}

// NewBigInteger creates a new Integer item holding a copy of v.
func (a *Arena) NewBigInteger(v *big.Int) (*BigInteger, error) {
	if err := CheckIntegerSize(v); err != nil {
		return nil, err
	}
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &BigInteger{value: new(big.Int).Set(v)}
	a.register(it)
	return it, nil
}

// NewByteArray creates a new ByteArray item. The item takes ownership of b.
func (a *Arena) NewByteArray(b []byte) (*ByteArray, error) {
	if len(b) > MaxItemSize {
		return nil, fmt.Errorf("%w: %d bytes", errTooBigSize, len(b))
	}
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	it := &ByteArray{value: b}
	a.register(it)
	return it, nil
}

// NewInterop creates a new Interop item wrapping an opaque host payload.
func (a *Arena) NewInterop(payload []byte) (*Interop, error) {
	if len(payload) > MaxItemSize {
		return nil, fmt.Errorf("%w: %d bytes", errTooBigSize, len(payload))
	}
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &Interop{value: payload}
	a.register(it)
	return it, nil
}

// NewArray creates an Array holding the given items. The array adds its own
// claim on every element.
func (a *Arena) NewArray(items []Item) (*Array, error) {
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &Array{container{value: a.claimCopy(items)}}
	a.register(it)
	return it, nil
}

// NewStruct creates a Struct holding the given items. The struct adds its own
// claim on every element.
func (a *Arena) NewStruct(items []Item) (*Struct, error) {
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &Struct{container{value: a.claimCopy(items)}}
	a.register(it)
	return it, nil
}

// NewMap creates an empty Map.
func (a *Arena) NewMap() (*Map, error) {
	if err := a.reserve(1); err != nil {
		return nil, err
	}
	it := &Map{}
	a.register(it)
	return it, nil
}

// NewArrayOf creates an Array of n false Booleans, 1+n items are allocated.
func (a *Arena) NewArrayOf(n int) (*Array, error) {
	elems, err := a.falseBools(n)
	if err != nil {
		return nil, err
	}
	it := &Array{container{value: elems}}
	a.register(it)
	return it, nil
}

// NewStructOf creates a Struct of n false Booleans, 1+n items are allocated.
func (a *Arena) NewStructOf(n int) (*Struct, error) {
	elems, err := a.falseBools(n)
	if err != nil {
		return nil, err
	}
	it := &Struct{container{value: elems}}
	a.register(it)
	return it, nil
}

// falseBools reserves space for n Booleans plus their container.
func (a *Arena) falseBools(n int) ([]Item, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidValue, n)
	}
	if err := a.reserve(1 + n); err != nil {
		return nil, err
	}
	elems := make([]Item, n)
	for i := range elems {
		b := &Bool{}
		a.register(b)
		elems[i] = b
	}
	return elems, nil
}

func (a *Arena) claimCopy(items []Item) []Item {
	res := make([]Item, len(items))
	for i := range items {
		res[i] = a.Claim(items[i])
	}
	return res
}

// Make creates an item from a Go value: bool, integer types, *big.Int,
// []byte, string, []Item (Array).
func (a *Arena) Make(v any) (Item, error) {
	switch val := v.(type) {
	case bool:
		return a.NewBool(val)
	case int:
		return a.NewBigInteger(big.NewInt(int64(val)))
	case int64:
		return a.NewBigInteger(big.NewInt(val))
	case uint32:
		return a.NewBigInteger(big.NewInt(int64(val)))
	case uint64:
		return a.NewBigInteger(new(big.Int).SetUint64(val))
	case *big.Int:
		return a.NewBigInteger(val)
	case []byte:
		return a.NewByteArray(val)
	case string:
		return a.NewByteArray([]byte(val))
	case []Item:
		return a.NewArray(val)
	case Item:
		return a.Claim(val), nil
	default:
		return nil, fmt.Errorf("%w: can't make item from %T", ErrInvalidValue, v)
	}
}

// CheckIntegerSize checks that the value fits into MaxBigIntegerSize bytes.
func CheckIntegerSize(v *big.Int) error {
	if v.BitLen() < MaxBigIntegerSize*8 {
		return nil
	}
	if len(bigint.ToBytes(v)) > MaxBigIntegerSize {
		return errTooBigInteger
	}
	return nil
}
