package bigint

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCases = []struct {
	number int64
	buf    []byte
}{
	{0, []byte{}},
	{1, []byte{1}},
	{-1, []byte{255}},
	{2, []byte{2}},
	{-2, []byte{254}},
	{127, []byte{127}},
	{-127, []byte{129}},
	{128, []byte{128, 0}},
	{-128, []byte{128}},
	{255, []byte{255, 0}},
	{-255, []byte{1, 255}},
	{256, []byte{0, 1}},
	{-256, []byte{0, 255}},
	{123456789, []byte{21, 205, 91, 7}},
	{-123456789, []byte{235, 50, 164, 248}},
	{math.MaxInt64, []byte{255, 255, 255, 255, 255, 255, 255, 127}},
	{math.MinInt64, []byte{0, 0, 0, 0, 0, 0, 0, 128}},
}

func TestIntToBytes(t *testing.T) {
	for _, tc := range testCases {
		buf := ToBytes(big.NewInt(tc.number))
		require.Equal(t, tc.buf, buf, "error while converting %d", tc.number)
	}
}

func TestBytesToInt(t *testing.T) {
	for _, tc := range testCases {
		num := FromBytes(tc.buf)
		require.Equalf(t, tc.number, num.Int64(), "error while converting %d", tc.number)
	}

	t.Run("non-minimal encoding", func(t *testing.T) {
		require.Equal(t, int64(1), FromBytes([]byte{1, 0, 0}).Int64())
		require.Equal(t, int64(-1), FromBytes([]byte{0xff, 0xff}).Int64())
		require.Equal(t, int64(0), FromBytes(nil).Int64())
	})
}

func TestUint256RoundTrip(t *testing.T) {
	for _, tc := range testCases {
		in := append([]byte{}, tc.buf...)
		u := Uint256FromBytes(in)
		require.Equal(t, tc.buf, in, "input must not be modified")
		require.Equal(t, tc.buf, Uint256ToBytes(u), "error while converting %d", tc.number)
		require.Equal(t, tc.number, Uint256ToBig(u).Int64())
		require.Equal(t, u, Uint256FromBig(big.NewInt(tc.number)))
	}
}

func TestFromBytesUnsigned(t *testing.T) {
	require.Equal(t, int64(255), FromBytesUnsigned([]byte{0xff}).Int64())
	require.Equal(t, int64(0x0100), FromBytesUnsigned([]byte{0x00, 0x01}).Int64())
}

func TestToPreallocatedBytes(t *testing.T) {
	buf := make([]byte, 0, MaxBytesLen)
	for _, tc := range testCases {
		n := big.NewInt(tc.number)
		require.Equal(t, tc.buf, ToPreallocatedBytes(n, buf))
		require.Equal(t, tc.number, n.Int64(), "argument must not be modified")
	}
}
