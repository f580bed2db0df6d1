// Package boc serializes a DAG of cells to and from a single flat byte
// stream (a "bag of cells").
//
// # Stream Structure
//
// A serialized bag of cells consists of:
//
//	[magic - 4B] [flags+size - 1B] [off_bytes - 1B]
//	[cells] [roots] [absent] [tot_cells_size]
//	[root index list] [optional per-cell offset index]
//	[cell 0] [cell 1] ... [cell N-1]
//	[optional CRC-32C trailer - 4B, little-endian]
//
// Each cell is two descriptor bytes, the payload rounded to whole bytes
// (with a stop bit completing a partial final byte), and one reference
// index per child. The multi-byte count and offset fields are packed to the
// minimum number of big-endian bytes that fit the cell count and the total
// cell-data size.
//
// # Ordering
//
// Cells are deduplicated by content hash and numbered in reverse postorder
// of a depth-first traversal from the roots, so every reference points to a
// strictly higher index than the referencing cell. Decoding reconstructs
// cells bottom-up and is all-or-nothing: a malformed stream never exposes a
// partial DAG.
package boc
