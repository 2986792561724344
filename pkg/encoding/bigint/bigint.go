// Package bigint converts VM integers to and from their little-endian two's
// complement byte representation.
package bigint

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-hypervm/pkg/util/slice"
)

// MaxBytesLen is the maximum length of a serialized integer suitable for the VM.
const MaxBytesLen = 32 // 256-bit signed integer

var bigOne = big.NewInt(1)

// FromBytesUnsigned converts data in little-endian format to an unsigned integer.
func FromBytesUnsigned(data []byte) *big.Int {
	return new(big.Int).SetBytes(slice.CopyReverse(data))
}

// FromBytes converts data in little-endian two's complement format to an
// integer. An empty slice is zero.
func FromBytes(data []byte) *big.Int {
	size := len(data)
	if size == 0 {
		return new(big.Int)
	}
	be := slice.CopyReverse(data)
	n := new(big.Int).SetBytes(be)
	if be[0]&0x80 == 0 {
		return n
	}
	// n - 2^(8*size)
	mod := new(big.Int).Lsh(bigOne, uint(size*8))
	return n.Sub(n, mod)
}

// ToBytes converts an integer to a slice in little-endian format. Zero is
// represented by an empty slice, other values use the minimal number of bytes
// able to hold the sign bit.
func ToBytes(n *big.Int) []byte {
	return ToPreallocatedBytes(n, []byte{})
}

// ToPreallocatedBytes converts an integer to a slice in little-endian format
// using the given byte array for conversion result.
func ToPreallocatedBytes(n *big.Int, data []byte) []byte {
	sign := n.Sign()
	if sign == 0 {
		return data[:0]
	}

	var abs = n
	if sign < 0 {
		// Two's complement of a negative number is the unsigned value of
		// ^(|n|-1), computed on |n|-1 here.
		abs = new(big.Int).Neg(n)
		abs.Sub(abs, bigOne)
		if abs.Sign() == 0 { // n == -1
			return append(data[:0], 0xFF)
		}
	}

	lb := abs.BitLen()/8 + 1
	if cap(data) < lb {
		data = make([]byte, lb)
	} else {
		data = data[:lb]
	}
	abs.FillBytes(data)
	slice.Reverse(data)

	if sign < 0 {
		for i := range data {
			data[i] = ^data[i]
		}
	}
	return data
}

// Uint256FromBytes converts little-endian two's complement data into a
// 256-bit word. Bytes above MaxBytesLen are ignored, data is not modified.
func Uint256FromBytes(data []byte) *uint256.Int {
	var buf [MaxBytesLen]byte
	if len(data) == 0 {
		return new(uint256.Int)
	}
	if len(data) > MaxBytesLen {
		data = data[:MaxBytesLen]
	}
	if data[len(data)-1]&0x80 != 0 {
		for i := range buf {
			buf[i] = 0xFF
		}
	}
	// buf is big-endian, data is little-endian.
	for i, b := range data {
		buf[MaxBytesLen-1-i] = b
	}
	return new(uint256.Int).SetBytes(buf[:])
}

// Uint256ToBytes converts a 256-bit two's complement word into the minimal
// little-endian representation (empty for zero).
func Uint256ToBytes(n *uint256.Int) []byte {
	if n.IsZero() {
		return []byte{}
	}
	fill := true
	var filler byte
	b := n.Bytes()
	if n.Sign() < 0 {
		var sig int
		for ; sig < len(b); sig++ {
			if b[sig] != 0xff {
				if b[sig] >= 0x80 {
					fill = false
				}
				break
			}
		}
		b = b[sig:]
		filler = 0xff
	} else if b[0] < 0x80 {
		fill = false
	}
	slice.Reverse(b)
	if fill {
		b = append(b, filler)
	}
	return b
}

// Uint256FromBig converts a big integer fitting into MaxBytesLen bytes into
// its 256-bit two's complement form.
func Uint256FromBig(n *big.Int) *uint256.Int {
	return Uint256FromBytes(ToBytes(n))
}

// Uint256ToBig converts a 256-bit two's complement word back to a signed big
// integer.
func Uint256ToBig(n *uint256.Int) *big.Int {
	return FromBytes(Uint256ToBytes(n))
}
