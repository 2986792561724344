package base58

import (
	"errors"
	"testing"

	mrbase58 "github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestCheckEncodeDecode(t *testing.T) {
	var b58CsumEncoded = "KxhEDBQyyEFymvfJD96q8stMbJMbZUb6D1PmXqBWZDU2WvbvVs9o"
	var b58CsumDecodedHex = []byte{
		0x80, 0x2b, 0xfe, 0x58, 0xab, 0x6d, 0x9f, 0xd5, 0x75, 0xbd, 0xc3, 0xa6,
		0x24, 0xe4, 0x82, 0x5d, 0xd2, 0xb3, 0x75, 0xd6, 0x4a, 0xc0, 0x33, 0xfb,
		0xc4, 0x6e, 0xa7, 0x9d, 0xba, 0xb4, 0xf6, 0x9a, 0x3e, 0x01,
	}

	encoded := CheckEncode(b58CsumDecodedHex)
	decoded, err := CheckDecode(b58CsumEncoded)
	require.NoError(t, err)
	require.Equal(t, encoded, b58CsumEncoded)
	require.Equal(t, decoded, b58CsumDecodedHex)
}

func TestCheckDecodeFailures(t *testing.T) {
	badbase58 := "BASE%*"
	_, err := CheckDecode(badbase58)
	require.Error(t, err)

	shortbase58 := "THqY"
	_, err = CheckDecode(shortbase58)
	require.Error(t, err)

	raw := []byte{1, 2, 3, 4, 5, 0, 0, 0, 0}
	_, err = CheckDecode(mrbase58.Encode(raw))
	require.True(t, errors.Is(err, ErrChecksum))
}
