package io

// GetVarSize returns the number of bytes a var-int encoding of value takes,
// it is always consistent with PutVarUint.
func GetVarSize(value int) int {
	switch {
	case value < 0xFD:
		return 1 // uint8
	case value <= 0xFFFF:
		return 3 // byte + uint16
	case value <= 0xFFFFFFFF:
		return 5 // byte + uint32
	default:
		return 9 // byte + uint64
	}
}

// GetVarBytesSize returns the size of a var-bytes encoded slice of the given
// length (length prefix included).
func GetVarBytesSize(n int) int {
	return GetVarSize(n) + n
}
