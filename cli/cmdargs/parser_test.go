package cmdargs

import (
	"encoding/hex"
	"flag"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/io"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/emit"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestNewParameterFromString(t *testing.T) {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	pub := k.PublicKey()
	u := util.Uint160{0xab, 0xcd, 0xef}
	sig := strings.Repeat("ab", 64)
	h256 := "hash256:" + strings.Repeat("01", 31) + "02"

	var testCases = []struct {
		in  string
		out Parameter
	}{
		{"qwerty", Parameter{StringType, "qwerty"}},
		{"42", Parameter{IntegerType, big.NewInt(42)}},
		{"-1", Parameter{IntegerType, big.NewInt(-1)}},
		{"true", Parameter{BoolType, true}},
		{"bool:false", Parameter{BoolType, false}},
		{"dead", Parameter{BytesType, []byte{0xde, 0xad}}},
		{"string:dead", Parameter{StringType, "dead"}},
		{`string\:string`, Parameter{StringType, "string:string"}},
		{`\4\2`, Parameter{IntegerType, big.NewInt(42)}},
		{`\\4\2`, Parameter{StringType, `\42`}},
		{"string:a:b", Parameter{StringType, "a:b"}},
		{address.Uint160ToString(u), Parameter{Hash160Type, u.BytesBE()}},
		{u.StringLE(), Parameter{Hash160Type, u.BytesBE()}},
		{"hash160:0x" + u.StringLE(), Parameter{Hash160Type, u.BytesBE()}},
		{hex.EncodeToString(pub.Bytes()), Parameter{KeyType, pub.Bytes()}},
		{sig, Parameter{SignatureType, mustHex(t, sig)}},
		{h256, Parameter{Hash256Type, append([]byte{2}, mustHex(t, strings.Repeat("01", 31))...)}},
		{"", Parameter{BytesType, []byte{}}},
	}
	for _, tc := range testCases {
		p, err := NewParameterFromString(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out.Type, p.Type, tc.in)
		require.Equal(t, tc.out.Value, p.Value, tc.in)
	}

	errCases := []string{
		"unknown:1",
		"bool:yes",
		"int:1.5",
		"int:" + strings.Repeat("9", 100),
		"hash160:zz",
		"hash256:0102",
		"bytes:xyz",
		"key:0102",
		"signature:0102",
		"filebytes:" + filepath.Join(t.TempDir(), "none"),
		"bad\xffstring",
	}
	for _, s := range errCases {
		_, err := NewParameterFromString(s)
		require.Error(t, err, s)
	}
}

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))
	p, err := NewParameterFromString("filebytes:" + path)
	require.NoError(t, err)
	require.Equal(t, BytesType, p.Type)
	require.Equal(t, []byte{1, 2, 3}, p.Value)
}

func TestParamsToScript(t *testing.T) {
	b, err := ParamsToScript([]string{"1", "true", "str", "bytes:0a", "int:-1"})
	require.NoError(t, err)
	expected := io.NewBufBinWriter()
	emit.Int(expected.BinWriter, -1)
	emit.Bytes(expected.BinWriter, []byte{0x0a})
	emit.String(expected.BinWriter, "str")
	emit.Bool(expected.BinWriter, true)
	emit.Int(expected.BinWriter, 1)
	require.Equal(t, expected.Bytes(), b)

	b, err = ParamsToScript(nil)
	require.NoError(t, err)
	require.Empty(t, b)

	_, err = ParamsToScript([]string{"1", "bool:1"})
	require.ErrorContains(t, err, "argument #2")
}

func TestEnsureNone(t *testing.T) {
	set := flag.NewFlagSet("flagSet", flag.ExitOnError)
	ctx := cli.NewContext(cli.NewApp(), set, nil)
	require.Nil(t, EnsureNone(ctx))

	require.NoError(t, set.Parse([]string{"something"}))
	require.NotNil(t, EnsureNone(ctx))
}
