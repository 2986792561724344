package stackitem

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaItemLimit(t *testing.T) {
	a := NewArena(4)
	require.Equal(t, 4, a.MaxItems())

	_, err := a.NewArrayOf(3) // 1 + 3 items
	require.NoError(t, err)
	require.Equal(t, 4, a.Live())

	_, err = a.NewBool(true)
	require.True(t, errors.Is(err, ErrItemLimit))
	require.Equal(t, 4, a.Live(), "failed creation must not allocate")

	a.Reset()
	require.Equal(t, 0, a.Live())
	_, err = a.NewArrayOf(4)
	require.True(t, errors.Is(err, ErrItemLimit))
	require.Equal(t, 0, a.Live())
}

func TestArenaExactLimit(t *testing.T) {
	a := NewArena(DefaultMaxItems)
	for i := 0; i < DefaultMaxItems; i++ {
		_, err := a.NewBigInteger(big.NewInt(int64(i)))
		require.NoError(t, err)
	}
	require.Equal(t, DefaultMaxItems, a.Live())
	_, err := a.NewMap()
	require.True(t, errors.Is(err, ErrItemLimit))
}

func TestArenaClaimRelease(t *testing.T) {
	a := NewArena(0)
	b, err := a.NewByteArray([]byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, 1, b.Claims())

	a.Claim(b)
	require.Equal(t, 2, b.Claims())
	a.Release(b)
	require.True(t, a.Valid(b))
	a.Release(b)
	require.False(t, a.Valid(b))
	require.Equal(t, 0, a.Live())

	// Stale items are ignored.
	a.Release(b)
	a.Claim(b)
	require.Equal(t, 0, a.Live())
	require.Equal(t, 0, b.Claims())
}

func TestArenaSlotReuse(t *testing.T) {
	a := NewArena(0)
	first, err := a.NewBool(true)
	require.NoError(t, err)
	h := first.Handle()
	a.Release(first)

	second, err := a.NewBool(false)
	require.NoError(t, err)
	require.Equal(t, h.Slot, second.Handle().Slot)
	require.NotEqual(t, h.Gen, second.Handle().Gen)
	require.False(t, a.Valid(first))
	require.True(t, a.Valid(second))
}

func TestArenaContainerRelease(t *testing.T) {
	a := NewArena(0)
	i1, _ := a.NewBigInteger(big.NewInt(1))
	i2, _ := a.NewBigInteger(big.NewInt(2))
	arr, err := a.NewArray([]Item{i1, i2})
	require.NoError(t, err)
	require.Equal(t, 2, i1.Claims())
	a.ReleaseAll(i1, i2)
	require.Equal(t, 3, a.Live())

	a.Release(arr)
	require.Equal(t, 0, a.Live())
	require.False(t, a.Valid(i1))
	require.False(t, a.Valid(i2))
}

func TestArenaCycleRelease(t *testing.T) {
	a := NewArena(0)
	arr, err := a.NewArray(nil)
	require.NoError(t, err)
	arr.Append(arr)
	require.Equal(t, 2, arr.Claims())

	// The only external claim is gone, the cycle keeps the array alive.
	a.Release(arr)
	require.Equal(t, 1, a.Live())

	// Breaking the cycle frees it without touching the stale self reference.
	arr.Clear()
	require.Equal(t, 0, a.Live())

	m, err := a.NewMap()
	require.NoError(t, err)
	st, err := a.NewStruct(nil)
	require.NoError(t, err)
	k, _ := a.NewByteArray([]byte("k"))
	require.NoError(t, m.Set(k, st))
	st.Append(m)
	a.ReleaseAll(k, st, m)
	require.Equal(t, 3, a.Live())
	a.Reset()
	require.Equal(t, 0, a.Live())
	require.False(t, a.Valid(m))
}

func TestArenaMake(t *testing.T) {
	a := NewArena(0)
	for _, v := range []any{true, 1, int64(2), uint32(3), uint64(4), big.NewInt(5), []byte{6}, "7", []Item{}} {
		it, err := a.Make(v)
		require.NoError(t, err)
		require.NotNil(t, it)
	}
	_, err := a.Make(1.5)
	require.True(t, errors.Is(err, ErrInvalidValue))
}

func TestArenaSizeLimits(t *testing.T) {
	a := NewArena(0)
	_, err := a.NewByteArray(make([]byte, MaxItemSize+1))
	require.True(t, errors.Is(err, ErrTooBig))
	_, err = a.NewInterop(make([]byte, MaxItemSize+1))
	require.True(t, errors.Is(err, ErrTooBig))
	_, err = a.NewBigInteger(new(big.Int).Lsh(big.NewInt(1), 256))
	require.True(t, errors.Is(err, ErrTooBig))
	_, err = a.NewBigInteger(new(big.Int).Lsh(big.NewInt(1), 254))
	require.NoError(t, err)
	_, err = a.NewArrayOf(-1)
	require.True(t, errors.Is(err, ErrInvalidValue))
	require.Equal(t, 1, a.Live())
}
