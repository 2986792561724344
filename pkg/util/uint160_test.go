package util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160DecodeString(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	val, err := Uint160DecodeStringBE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	valLE, err := Uint160DecodeStringLE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeStringLE(hexStr[1:])
	assert.Error(t, err)

	_, err = Uint160DecodeStringBE(hexStr[1:])
	assert.Error(t, err)

	hexStr = "zz3b96ae1bcc5a585e075e3b81920210dec16302"
	_, err = Uint160DecodeStringBE(hexStr)
	assert.Error(t, err)
}

func TestUint160DecodeBytes(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b, err := hex.DecodeString(hexStr)
	require.NoError(t, err)

	val, err := Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	valLE, err := Uint160DecodeBytesLE(b)
	require.NoError(t, err)
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeBytesLE(b[1:])
	assert.Error(t, err)

	_, err = Uint160DecodeBytesBE(b[1:])
	assert.Error(t, err)
}

func TestUint160JSON(t *testing.T) {
	u, err := Uint160DecodeStringLE("2d3b96ae1bcc5a585e075e3b81920210dec16302")
	require.NoError(t, err)

	data, err := u.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"0x2d3b96ae1bcc5a585e075e3b81920210dec16302"`, string(data))

	var actual Uint160
	require.NoError(t, actual.UnmarshalJSON(data))
	assert.True(t, u.Equals(actual))

	require.Error(t, actual.UnmarshalJSON([]byte(`123`)))
}

func TestUint160Equals(t *testing.T) {
	a := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b := "4d3b96ae1bcc5a585e075e3b81920210dec16302"

	ua, err := Uint160DecodeStringBE(a)
	require.NoError(t, err)

	ub, err := Uint160DecodeStringBE(b)
	require.NoError(t, err)
	assert.False(t, ua.Equals(ub), "%s and %s cannot be equal", ua, ub)
	assert.True(t, ua.Equals(ua), "%s and %s must be equal", ua, ua)
	assert.Equal(t, ua.BytesLE(), ua.Reverse().BytesBE())
	assert.Equal(t, a, ua.Reverse().StringLE())
}
