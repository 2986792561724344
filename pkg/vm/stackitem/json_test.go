package stackitem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSONWithTypes(t *testing.T) {
	a := NewArena(0)
	m, _ := a.NewMap()
	require.NoError(t, m.Set(mkBytes(t, a, []byte("a")), mkInt(t, a, 1)))
	in, _ := a.NewInterop([]byte{0xab})
	arr, _ := a.NewArray([]Item{mkBool(t, a, true), m, in})

	data, err := ToJSONWithTypes(arr)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Array","value":[
		{"type":"Boolean","value":true},
		{"type":"Map","value":[{"key":{"type":"ByteArray","value":"YQ=="},"value":{"type":"Integer","value":"1"}}]},
		{"type":"Interop","value":"ab"}]}`, string(data))

	arr.Append(arr)
	_, err = ToJSONWithTypes(arr)
	require.True(t, errors.Is(err, ErrRecursive))
}
