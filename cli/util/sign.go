package util

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/keys"
	"github.com/urfave/cli"
)

var errSignArgs = errors.New("expected a hex-encoded private key and a hex-encoded message")

func newSignCommand() cli.Command {
	return cli.Command{
		Name:  "sign",
		Usage: "Sign the message for CHECKSIG, VERIFY and CHECKMULTISIG",
		UsageText: `sign [--generate [--secp256k1]] [<key>] <message>

<key> is a hex-encoded Secp256r1 private key, with --generate a new random key
        is used instead. <message> is hex-encoded, the same value should be
        set with the 'message' VM CLI command (or passed with the --message
        flag of 'contract invoke') for signature opcodes to check it.`,
		Action: handleSign,
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "generate",
				Usage: "Generate a new private key",
			},
			cli.BoolFlag{
				Name:  "secp256k1",
				Usage: "Generate a Secp256k1 key instead of Secp256r1 one",
			},
		},
	}
}

func handleSign(ctx *cli.Context) error {
	var (
		args = ctx.Args()
		key  *keys.PrivateKey
		err  error
	)
	switch {
	case ctx.Bool("generate") && len(args) == 1:
		if ctx.Bool("secp256k1") {
			key, err = keys.NewSecp256k1PrivateKey()
		} else {
			key, err = keys.NewPrivateKey()
		}
	case !ctx.Bool("generate") && len(args) == 2:
		key, err = keys.NewPrivateKeyFromHex(args[0])
		args = args[1:]
	default:
		return cli.NewExitError(errSignArgs, 1)
	}
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid private key: %w", err), 1)
	}
	msg, err := hex.DecodeString(args[0])
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid message: %w", err), 1)
	}

	pub := key.PublicKey()
	w := ctx.App.Writer
	if ctx.Bool("generate") {
		fmt.Fprintf(w, "Private key: %s\n", key)
	}
	fmt.Fprintf(w, "Public key: %s\n", pub)
	fmt.Fprintf(w, "Address: %s\n", pub.Address())
	fmt.Fprintf(w, "Signature: %s\n", hex.EncodeToString(key.Sign(msg)))
	return nil
}
