package interopnames

import (
	"encoding/binary"
	"errors"

	"github.com/nspcc-dev/neo-hypervm/pkg/crypto/hash"
)

var errNotFound = errors.New("interop not found")

// ToID returns an identificator of the method based on its name.
func ToID(name []byte) uint32 {
	h := hash.Sha256(name)
	return binary.LittleEndian.Uint32(h.BytesBE()[:4])
}

// FromID returns interop name from its ID.
func FromID(id uint32) (string, error) {
	for i := range names {
		if id == ToID([]byte(names[i])) {
			return names[i], nil
		}
	}
	return "", errNotFound
}
