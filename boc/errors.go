package boc

import "errors"

var (
	// ErrMalformedHeader indicates a structurally invalid byte stream.
	ErrMalformedHeader = errors.New("boc: malformed header")
	// ErrDanglingReference indicates a reference index that cannot be resolved
	// to a later cell in the stream.
	ErrDanglingReference = errors.New("boc: dangling reference")
	// ErrChecksumMismatch indicates the CRC-32C trailer does not match the stream.
	ErrChecksumMismatch = errors.New("boc: checksum mismatch")
)
