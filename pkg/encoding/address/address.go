// Package address converts script hashes to and from their base58check
// representation.
package address

import (
	"errors"

	"github.com/nspcc-dev/neo-hypervm/pkg/encoding/base58"
	"github.com/nspcc-dev/neo-hypervm/pkg/util"
)

// DefaultPrefix is the default byte of address prefix.
const DefaultPrefix = 0x17

// Prefix is the byte used to prepend to addresses when encoding them, it can
// be changed and defaults to 23 (0x17).
var Prefix = byte(DefaultPrefix)

// ErrBadPrefix is returned when the decoded address has a wrong version byte.
var ErrBadPrefix = errors.New("wrong address prefix")

// Uint160ToString returns the address string from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	b := append([]byte{Prefix}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given address string into a Uint160.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errors.New("wrong address length")
	}
	if b[0] != Prefix {
		return u, ErrBadPrefix
	}
	return util.Uint160DecodeBytesBE(b[1:])
}
