package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func runUtil(args ...string) (string, error) {
	out := new(bytes.Buffer)
	app := cli.NewApp()
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Commands = NewCommands()
	err := app.Run(append([]string{"hypervm", "util"}, args...))
	return out.String(), err
}

func TestUtilConvert(t *testing.T) {
	u := util.Uint160{1, 2, 3}
	out, err := runUtil("convert", u.StringLE())
	require.NoError(t, err)
	require.Regexp(t, `BE ScriptHash to Address\s+`+address.Uint160ToString(u.Reverse()), out)
	require.Regexp(t, `LE ScriptHash to Address\s+`+address.Uint160ToString(u), out)
	require.Regexp(t, `Swap Endianness\s+0102030000000000000000000000000000000000`, out)

	_, err = runUtil("convert")
	require.Error(t, err)
}

func TestUtilOps(t *testing.T) {
	base64Str := "UWY="
	hexStr := "5166"

	check := func(t *testing.T, out string) {
		require.Regexp(t, `INDEX\s+OPCODE\s+PARAMETER\n0\s+PUSH1\s+<<\n1\s+RET\s*\n$`, out)
	}

	out, err := runUtil("ops", base64Str)
	require.NoError(t, err)
	check(t, out)

	// Hex input is valid base64 too, so it's decoded into garbage by default.
	out, err = runUtil("ops", hexStr)
	require.NoError(t, err)
	require.Contains(t, out, "ERROR: invalid opcode")

	out, err = runUtil("ops", "--hex", hexStr)
	require.NoError(t, err)
	check(t, out)

	_, err = runUtil("ops", "%&~*")
	require.ErrorContains(t, err, "unknown encoding")

	_, err = runUtil("ops")
	require.ErrorContains(t, err, "missing script")

	tmp := filepath.Join(t.TempDir(), "script_base64.txt")
	require.NoError(t, os.WriteFile(tmp, []byte(base64Str+"\n"), os.ModePerm))
	out, err = runUtil("ops", "--in", tmp)
	require.NoError(t, err)
	check(t, out)

	tmp = filepath.Join(t.TempDir(), "script_hex.txt")
	require.NoError(t, os.WriteFile(tmp, []byte(hexStr), os.ModePerm))
	out, err = runUtil("ops", "--hex", "--in", tmp)
	require.NoError(t, err)
	check(t, out)

	_, err = runUtil("ops", "--in", filepath.Join(t.TempDir(), "none"))
	require.ErrorContains(t, err, "failed to read file")
}

func TestUtilSign(t *testing.T) {
	msg := []byte{1, 2, 3}
	digest := sha256.Sum256(msg)

	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	out, err := runUtil("sign", k.String(), hex.EncodeToString(msg))
	require.NoError(t, err)
	require.NotContains(t, out, "Private key")
	require.Contains(t, out, "Public key: "+k.PublicKey().String()+"\n")
	require.Contains(t, out, "Address: "+k.PublicKey().Address()+"\n")
	// Signatures are deterministic.
	require.Contains(t, out, "Signature: "+hex.EncodeToString(k.Sign(msg))+"\n")

	parse := func(t *testing.T, out string) (string, []byte, []byte) {
		m := regexp.MustCompile(`Private key: ([0-9a-f]+)\nPublic key: ([0-9a-f]+)\n.*\nSignature: ([0-9a-f]+)\n`).FindStringSubmatch(out)
		require.Len(t, m, 4, out)
		pub, err := hex.DecodeString(m[2])
		require.NoError(t, err)
		sig, err := hex.DecodeString(m[3])
		require.NoError(t, err)
		return m[1], pub, sig
	}

	t.Run("generate", func(t *testing.T) {
		out, err := runUtil("sign", "--generate", hex.EncodeToString(msg))
		require.NoError(t, err)
		priv, pubBytes, sig := parse(t, out)
		pub, err := keys.NewPublicKeyFromBytes(pubBytes)
		require.NoError(t, err)
		require.True(t, pub.Verify(sig, digest[:]))

		k, err := keys.NewPrivateKeyFromHex(priv)
		require.NoError(t, err)
		require.True(t, k.PublicKey().Equal(pub))
	})
	t.Run("generate secp256k1", func(t *testing.T) {
		out, err := runUtil("sign", "--generate", "--secp256k1", hex.EncodeToString(msg))
		require.NoError(t, err)
		_, pubBytes, sig := parse(t, out)
		pub, err := keys.NewSecp256k1PublicKeyFromBytes(pubBytes)
		require.NoError(t, err)
		require.True(t, pub.Verify(sig, digest[:]))
	})
	t.Run("bad arguments", func(t *testing.T) {
		_, err := runUtil("sign")
		require.ErrorContains(t, err, "expected a hex-encoded private key")
		_, err = runUtil("sign", k.String())
		require.Error(t, err)
		_, err = runUtil("sign", "--generate", k.String(), "01")
		require.Error(t, err)
		_, err = runUtil("sign", "zz", "01")
		require.ErrorContains(t, err, "invalid private key")
		_, err = runUtil("sign", "0102", "01")
		require.ErrorContains(t, err, "invalid private key")
		_, err = runUtil("sign", k.String(), "zz")
		require.ErrorContains(t, err, "invalid message")
	})
}
