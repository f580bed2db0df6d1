// Package bitstr implements fixed-capacity, MSB-first bit strings.
//
// A Writer accumulates bits up to a declared capacity and never performs a
// partial write: an operation either fits entirely or fails with
// ErrCapacityExceeded before touching the buffer. A Reader is a cursor over
// an existing bit string and fails with ErrUnexpectedEndOfData on underflow.
// Numeric fields are big-endian at the bit level (most significant bit
// first) for both signed and unsigned values.
package bitstr

import "errors"

var (
	// ErrCapacityExceeded indicates a write would cross the declared bit capacity.
	ErrCapacityExceeded = errors.New("bitstr: capacity exceeded")
	// ErrValueOutOfRange indicates a numeric value does not fit the declared width.
	ErrValueOutOfRange = errors.New("bitstr: value out of range")
	// ErrUnexpectedEndOfData indicates a read requested more bits than remain.
	ErrUnexpectedEndOfData = errors.New("bitstr: unexpected end of data")
)

// MaxIntWidth is the widest integer the primitive helpers accept. Wider
// encodings are composed from multiple calls (see the big-integer codec in
// the cell package).
const MaxIntWidth = 64
