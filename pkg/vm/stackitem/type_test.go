package stackitem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	typs := []Type{ByteArrayT, BooleanT, IntegerT, InteropT, ArrayT, StructT, MapT}
	for _, typ := range typs {
		actual, err := FromString(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, actual)
		require.True(t, typ.IsValid())
	}

	_, err := FromString("Buffer")
	require.Error(t, err)
	require.False(t, InvalidT.IsValid())
	require.Equal(t, "INVALID", Type(0x33).String())
}

func TestIsPrimitive(t *testing.T) {
	require.True(t, ByteArrayT.IsPrimitive())
	require.True(t, IntegerT.IsPrimitive())
	require.True(t, BooleanT.IsPrimitive())
	require.False(t, InteropT.IsPrimitive())
	require.False(t, StructT.IsPrimitive())
	require.False(t, MapT.IsPrimitive())
}
