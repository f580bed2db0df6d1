// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// UintBE reads an n-byte big-endian unsigned integer from b, 0 <= n <= 8.
// Returns 0 when b holds fewer than n bytes. Variable-width fields of the
// bag-of-cells header (cell count, offsets, reference indices) are packed to
// the minimum number of bytes, so n is data-dependent.
func UintBE(b []byte, n int) uint64 {
	if n < 0 || n > 8 || len(b) < n {
		return 0
	}
	var v uint64
	for _, c := range b[:n] {
		v = v<<8 | uint64(c)
	}
	return v
}

// PutUintBE writes v into b as an n-byte big-endian unsigned integer.
// The caller must ensure v fits in n bytes and len(b) >= n.
func PutUintBE(b []byte, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
