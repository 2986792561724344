package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/address"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
	"github.com/nspcc-dev/neo-hypervm/pkg/vm/opcode"
)

// SignatureLen is the length of a plain r||s signature.
const SignatureLen = 64

// ErrInvalidKey is returned for public keys with bad size, prefix or point.
var ErrInvalidKey = errors.New("invalid public key")

// PublicKey represents a public key and provides a high level
// API around the X/Y point.
type PublicKey ecdsa.PublicKey

// PublicKeys is a list of public keys.
type PublicKeys []*PublicKey

// Contains checks whether passed param contained in PublicKeys.
func (keys PublicKeys) Contains(pKey *PublicKey) bool {
	for _, key := range keys {
		if key.Equal(pKey) {
			return true
		}
	}
	return false
}

// NewPublicKeyFromBytes decodes a secp256r1 key from the compressed or
// uncompressed form.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	return NewPublicKeyFromBytesOnCurve(b, elliptic.P256())
}

// NewSecp256k1PublicKeyFromBytes decodes a secp256k1 key.
func NewSecp256k1PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	return NewPublicKeyFromBytesOnCurve(b, secp256k1.S256())
}

// NewPublicKeyFromString returns a secp256r1 public key created from the
// given hex string.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

// NewPublicKeyFromBytesOnCurve decodes a point on the curve c.
func NewPublicKeyFromBytesOnCurve(data []byte, c elliptic.Curve) (*PublicKey, error) {
	var (
		x, y *big.Int
		err  error
		cp   = c.Params()
	)
	switch {
	case len(data) == 33 && (data[0] == 0x02 || data[0] == 0x03):
		x = new(big.Int).SetBytes(data[1:])
		y, err = decodeCompressedY(x, uint(data[0]&0x1), c)
		if err != nil {
			return nil, err
		}
	case len(data) == 65 && data[0] == 0x04:
		x = new(big.Int).SetBytes(data[1:33])
		y = new(big.Int).SetBytes(data[33:])
		if !c.IsOnCurve(x, y) {
			return nil, fmt.Errorf("%w: point is not on the %s curve", ErrInvalidKey, cp.Name)
		}
	default:
		return nil, fmt.Errorf("%w: bad size/prefix", ErrInvalidKey)
	}
	if x.Cmp(cp.P) >= 0 || y.Cmp(cp.P) >= 0 {
		return nil, fmt.Errorf("%w: X or Y is bigger than P", ErrInvalidKey)
	}
	return &PublicKey{Curve: c, X: x, Y: y}, nil
}

// decodeCompressedY performs decompression of Y coordinate for given X and Y's least significant bit.
// Two short Weierstrass curves are supported:
// 1. Secp256k1 (Koblitz curve): y² = x³ + b,
// 2. Secp256r1 (Random curve): y² = x³ - 3x + b.
func decodeCompressedY(x *big.Int, ylsb uint, curve elliptic.Curve) (*big.Int, error) {
	var a *big.Int
	switch curve.(type) {
	case *secp256k1.KoblitzCurve:
		a = big.NewInt(0)
	default:
		a = big.NewInt(3)
	}
	cp := curve.Params()
	xCubed := new(big.Int).Exp(x, big.NewInt(3), cp.P)
	aX := new(big.Int).Mul(x, a)
	aX.Mod(aX, cp.P)
	ySquared := new(big.Int).Sub(xCubed, aX)
	ySquared.Add(ySquared, cp.B)
	ySquared.Mod(ySquared, cp.P)
	y := new(big.Int).ModSqrt(ySquared, cp.P)
	if y == nil {
		return nil, fmt.Errorf("%w: can't compute Y for compressed point", ErrInvalidKey)
	}
	if y.Bit(0) != ylsb {
		y.Neg(y)
		y.Mod(y, cp.P)
	}
	return y, nil
}

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.X.Cmp(key.X) == 0 && p.Y.Cmp(key.Y) == 0
}

// Bytes returns the compressed byte representation of the public key.
func (p *PublicKey) Bytes() []byte {
	var (
		x       = p.X.Bytes()
		paddedX = append(bytes.Repeat([]byte{0x00}, 32-len(x)), x...)
		prefix  = byte(0x03)
	)

	if p.Y.Bit(0) == 0 {
		prefix = byte(0x02)
	}

	return append([]byte{prefix}, paddedX...)
}

// GetVerificationScript returns VM bytecode with CHECKSIG command for the
// public key.
func (p *PublicKey) GetVerificationScript() []byte {
	b := p.Bytes()
	b = append([]byte{byte(opcode.PUSHBYTES33)}, b...)
	b = append(b, byte(opcode.CHECKSIG))

	return b
}

// GetScriptHash returns a Hash160 of verification script for the key.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns a base58-encoded address based on the key hash.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// Verify returns true if the r||s signature is valid and corresponds
// to the hash and public key.
func (p *PublicKey) Verify(signature []byte, hash []byte) bool {
	if p.X == nil || p.Y == nil || len(signature) != SignatureLen {
		return false
	}
	rBytes := new(big.Int).SetBytes(signature[0:32])
	sBytes := new(big.Int).SetBytes(signature[32:64])
	return ecdsa.Verify((*ecdsa.PublicKey)(p), hash, rBytes, sBytes)
}

// String implements the Stringer interface.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}
