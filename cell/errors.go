package cell

import (
	"errors"

	"github.com/cellkit/cellkit/internal/bitstr"
)

var (
	// ErrCapacityExceeded indicates a store would exceed 1023 bits or 4 references.
	ErrCapacityExceeded = bitstr.ErrCapacityExceeded
	// ErrValueOutOfRange indicates a numeric value does not fit the declared bit width.
	ErrValueOutOfRange = bitstr.ErrValueOutOfRange
	// ErrUnexpectedEndOfData indicates a load requested more bits than remain.
	ErrUnexpectedEndOfData = bitstr.ErrUnexpectedEndOfData
	// ErrTrailingData indicates an exact-consumption parse left unread bits or references.
	ErrTrailingData = errors.New("cell: trailing data")
	// ErrReferenceIndexOutOfRange indicates more references were requested than the cell holds.
	ErrReferenceIndexOutOfRange = errors.New("cell: reference index out of range")
	// ErrBuilderFinalized indicates use of a builder that was already consumed by Finalize.
	ErrBuilderFinalized = errors.New("cell: builder already finalized")
	// ErrMalformedExoticCell indicates an exotic cell whose payload violates its kind's layout.
	ErrMalformedExoticCell = errors.New("cell: malformed exotic cell")
)
