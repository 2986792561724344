package stackitem

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/stretchr/testify/require"
)

func testSerialize(t *testing.T, a *Arena, item Item) Item {
	data, err := Serialize(item)
	require.NoError(t, err)

	size, err := SerializedSize(item)
	require.NoError(t, err)
	require.Equal(t, len(data), size, "serialized size mismatch for %s", spew.Sdump(item))

	actual, err := Deserialize(a, data)
	require.NoError(t, err)
	require.Equal(t, item.Type(), actual.Type())
	return actual
}

func TestSerializeRoundTrip(t *testing.T) {
	a := NewArena(0)

	t.Run("primitives", func(t *testing.T) {
		for _, it := range []Item{
			mkBool(t, a, true),
			mkBool(t, a, false),
			mkInt(t, a, 0),
			mkInt(t, a, -129),
			mkInt(t, a, 1<<40),
			mkBytes(t, a, []byte{}),
			mkBytes(t, a, make([]byte, 300)),
		} {
			actual := testSerialize(t, a, it)
			require.True(t, it.Equals(actual), spew.Sdump(it, actual))
		}
	})
	t.Run("interop", func(t *testing.T) {
		in, err := a.NewInterop([]byte{1, 2, 3})
		require.NoError(t, err)
		actual := testSerialize(t, a, in)
		require.True(t, in.Equals(actual))
	})
	t.Run("struct", func(t *testing.T) {
		inner, _ := a.NewStruct([]Item{mkBool(t, a, true)})
		st, _ := a.NewStruct([]Item{mkInt(t, a, 1), inner, mkBytes(t, a, []byte("abc"))})
		actual := testSerialize(t, a, st)
		require.True(t, st.Equals(actual))
	})
	t.Run("array", func(t *testing.T) {
		arr, _ := a.NewArray([]Item{mkInt(t, a, 1), mkBytes(t, a, []byte{2})})
		actual := testSerialize(t, a, arr).(*Array)
		require.False(t, arr.Equals(actual))
		require.Equal(t, arr.Len(), actual.Len())
		for i := 0; i < arr.Len(); i++ {
			require.True(t, arr.At(i).Equals(actual.At(i)))
		}
	})
	t.Run("map", func(t *testing.T) {
		m, _ := a.NewMap()
		require.NoError(t, m.Set(mkBytes(t, a, []byte("k")), mkInt(t, a, 42)))
		require.NoError(t, m.Set(mkInt(t, a, 7), mkBool(t, a, false)))
		actual := testSerialize(t, a, m).(*Map)
		require.Equal(t, m.Len(), actual.Len())
		for i := range m.value {
			require.True(t, m.value[i].Key.Equals(actual.value[i].Key))
			require.True(t, m.value[i].Value.Equals(actual.value[i].Value))
		}
	})
}

func TestSerializeFormat(t *testing.T) {
	a := NewArena(0)
	arr, _ := a.NewArray([]Item{mkBool(t, a, true), mkInt(t, a, 5)})
	data, err := Serialize(arr)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x02, 0x01, 0x01, 0x02, 0x01, 0x05}, data)

	data, err = Serialize(mkBytes(t, a, []byte{0xaa}))
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01, 0xaa}, data)
}

func TestSerializeRecursive(t *testing.T) {
	a := NewArena(0)
	arr, _ := a.NewArray(nil)
	arr.Append(arr)
	_, err := Serialize(arr)
	require.True(t, errors.Is(err, ErrRecursive))
	_, err = SerializedSize(arr)
	require.True(t, errors.Is(err, ErrRecursive))

	m, _ := a.NewMap()
	require.NoError(t, m.Set(mkInt(t, a, 1), m))
	_, err = Serialize(m)
	require.True(t, errors.Is(err, ErrRecursive))

	// Shared, non-cyclic references are fine.
	leaf, _ := a.NewArray(nil)
	root, _ := a.NewArray([]Item{leaf, leaf})
	_, err = Serialize(root)
	require.NoError(t, err)
}

func TestDeserializeErrors(t *testing.T) {
	a := NewArena(0)
	for name, data := range map[string][]byte{
		"empty":         {},
		"unknown type":  {0x33},
		"short bytes":   {0x00, 0x05, 0x01},
		"big integer":   append([]byte{0x02, 33}, make([]byte, 33)...),
		"short array":   {0x80, 0x02, 0x01, 0x01},
		"too many":      {0x80, 0xfd, 0x01, 0x04},
		"container key": {0x82, 0x01, 0x80, 0x00, 0x01, 0x01},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Deserialize(a, data)
			require.Error(t, err)
			require.Equal(t, 0, a.Live())
		})
	}
}

func TestDeserializeItemLimit(t *testing.T) {
	a := NewArena(2)
	data := []byte{0x80, 0x02, 0x01, 0x01, 0x01, 0x00}
	_, err := Deserialize(a, data)
	require.True(t, errors.Is(err, ErrItemLimit))
	require.Equal(t, 0, a.Live())
}

func TestEncodeBinaryWriterError(t *testing.T) {
	a := NewArena(0)
	w := io.NewBufBinWriter()
	w.Err = errors.New("failed")
	EncodeBinary(mkInt(t, a, 1), w.BinWriter)
	require.EqualError(t, w.Err, "failed")
}
