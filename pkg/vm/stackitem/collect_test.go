package stackitem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newRootedArena(limit int, held *[]Item) *Arena {
	a := NewArena(limit)
	a.SetRoots(func(mark func(Item)) {
		for _, it := range *held {
			mark(it)
		}
	})
	return a
}

func TestArenaCollect(t *testing.T) {
	t.Run("no roots", func(t *testing.T) {
		a := NewArena(0)
		arr, err := a.NewArray(nil)
		require.NoError(t, err)
		arr.Append(arr)
		a.Release(arr)
		require.Equal(t, 0, a.Collect())
		require.Equal(t, 1, a.Live())
	})

	t.Run("self-referencing array", func(t *testing.T) {
		var held []Item
		a := newRootedArena(0, &held)
		b, err := a.NewBool(true)
		require.NoError(t, err)
		held = append(held, b)
		arr, err := a.NewArray([]Item{b})
		require.NoError(t, err)
		arr.Append(arr)
		a.Release(arr)
		require.Equal(t, 2, b.Claims())
		a.Settle()

		require.Equal(t, 1, a.Collect())
		require.Equal(t, 1, a.Live())
		require.False(t, a.Valid(arr))
		require.True(t, a.Valid(b))
		require.Equal(t, 1, b.Claims())
	})

	t.Run("cloned self-referencing struct", func(t *testing.T) {
		var held []Item
		a := newRootedArena(0, &held)
		st, err := a.NewStruct(nil)
		require.NoError(t, err)
		st.Append(st)
		c, err := a.Clone(st)
		require.NoError(t, err)
		require.Same(t, c, c.(*Struct).At(0))
		a.ReleaseAll(st, c)
		require.Equal(t, 2, a.Live())

		a.Settle()
		require.Equal(t, 2, a.Collect())
		require.Equal(t, 0, a.Live())
	})

	t.Run("reachable map cycle", func(t *testing.T) {
		var held []Item
		a := newRootedArena(0, &held)
		m, err := a.NewMap()
		require.NoError(t, err)
		st, err := a.NewStruct(nil)
		require.NoError(t, err)
		k, err := a.NewByteArray([]byte("k"))
		require.NoError(t, err)
		require.NoError(t, m.Set(k, st))
		st.Append(m)
		a.ReleaseAll(k, st)
		held = append(held, m)
		a.Settle()

		require.Equal(t, 0, a.Collect())
		require.Equal(t, 3, a.Live())
	})

	t.Run("new items survive until settled", func(t *testing.T) {
		var held []Item
		a := newRootedArena(0, &held)
		b, err := a.NewBool(false)
		require.NoError(t, err)
		require.Equal(t, 0, a.Collect())
		require.True(t, a.Valid(b))

		a.Settle()
		require.Equal(t, 1, a.Collect())
		require.False(t, a.Valid(b))
	})

	t.Run("on item limit", func(t *testing.T) {
		var held []Item
		a := newRootedArena(2, &held)
		for i := 0; i < 2; i++ {
			arr, err := a.NewArray(nil)
			require.NoError(t, err)
			arr.Append(arr)
			a.Release(arr)
		}
		require.Equal(t, 2, a.Live())

		// Unsettled garbage is kept.
		_, err := a.NewBool(true)
		require.ErrorIs(t, err, ErrItemLimit)

		a.Settle()
		b, err := a.NewBool(true)
		require.NoError(t, err)
		require.Equal(t, 1, a.Live())

		held = append(held, b)
		_, err = a.NewBool(false)
		require.NoError(t, err)
		_, err = a.NewBool(true)
		require.ErrorIs(t, err, ErrItemLimit)
	})
}
