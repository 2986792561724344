// Package slice contains byte slice helpers.
package slice

import "slices"

// Copy returns a copy of b, it's never nil.
func Copy(b []byte) []byte {
	return append(make([]byte, 0, len(b)), b...)
}

// CopyReverse returns a reversed copy of b.
func CopyReverse(b []byte) []byte {
	res := Copy(b)
	slices.Reverse(res)
	return res
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	slices.Reverse(b)
}
