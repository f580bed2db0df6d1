// Package tlb defines the generic store/load contract that schema types
// implement to serialize themselves into a cell.Builder and reconstruct
// themselves from a cell.Parser.
//
// Records store and load their fields in declared order with no padding
// beyond each field's own encoding. Tagged unions store a discriminant bit
// pattern first, then the variant's payload; loads that see a discriminant
// matching no known variant fail with ErrUnknownDiscriminant.
//
// The package knows nothing about concrete domain types: addresses, coin
// amounts and message records are built on top of it elsewhere.
package tlb
