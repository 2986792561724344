package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivHex = "a7e9ea6e4c3a9e0e2c6c3b0c2f3bd0fa1c2c5b1b9ef7f74ad3c4b6b0cbd7e3f2"

func TestPubKeyVerify(t *testing.T) {
	var data = []byte("sample")
	hashedData := sha256.Sum256(data)

	for name, gen := range map[string]func() (*PrivateKey, error){
		"secp256r1": NewPrivateKey,
		"secp256k1": NewSecp256k1PrivateKey,
	} {
		t.Run(name, func(t *testing.T) {
			privKey, err := gen()
			require.NoError(t, err)
			signedData := privKey.Sign(data)
			require.Len(t, signedData, SignatureLen)
			pubKey := privKey.PublicKey()
			require.True(t, pubKey.Verify(signedData, hashedData[:]))

			otherKey, err := gen()
			require.NoError(t, err)
			require.False(t, otherKey.PublicKey().Verify(signedData, hashedData[:]))
			require.False(t, pubKey.Verify(signedData[:10], hashedData[:]))
		})
	}
}

func TestDeterministicSign(t *testing.T) {
	priv, err := NewPrivateKeyFromHex(testPrivHex)
	require.NoError(t, err)
	require.Equal(t, testPrivHex, priv.String())
	assert.Equal(t, priv.Sign([]byte{1, 2, 3}), priv.Sign([]byte{1, 2, 3}))
}

func TestDecodeCompressed(t *testing.T) {
	priv, err := NewPrivateKeyFromHex(testPrivHex)
	require.NoError(t, err)
	pub := priv.PublicKey()

	dec, err := NewPublicKeyFromBytes(pub.Bytes())
	require.NoError(t, err)
	require.True(t, pub.Equal(dec))

	dec, err = NewPublicKeyFromString(pub.String())
	require.NoError(t, err)
	require.True(t, pub.Equal(dec))
}

func TestDecodeUncompressed(t *testing.T) {
	priv, err := NewSecp256k1PrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	raw := make([]byte, 65)
	raw[0] = 0x04
	pub.X.FillBytes(raw[1:33])
	pub.Y.FillBytes(raw[33:])
	dec, err := NewSecp256k1PublicKeyFromBytes(raw)
	require.NoError(t, err)
	require.True(t, pub.Equal(dec))

	compressed, err := NewSecp256k1PublicKeyFromBytes(pub.Bytes())
	require.NoError(t, err)
	require.True(t, pub.Equal(compressed))
}

func TestDecodeBad(t *testing.T) {
	for _, s := range []string{
		"",
		"00",
		"05" + "2a" + "0000000000000000000000000000000000000000000000000000000000000000"[2:],
		"04" + "0000000000000000000000000000000000000000000000000000000000000001" +
			"0000000000000000000000000000000000000000000000000000000000000001",
	} {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		_, err = NewPublicKeyFromBytes(b)
		require.True(t, errors.Is(err, ErrInvalidKey), s)
	}
}

func TestVerificationScript(t *testing.T) {
	priv, err := NewPrivateKeyFromHex(testPrivHex)
	require.NoError(t, err)
	pub := priv.PublicKey()

	script := pub.GetVerificationScript()
	require.Len(t, script, 35)
	require.Equal(t, byte(0x21), script[0])
	require.Equal(t, byte(0xAC), script[34])
	require.Equal(t, hash.Hash160(script), pub.GetScriptHash())
	require.Equal(t, byte('A'), pub.Address()[0])
}
