// Package cell implements the hash-linked cell model: bounded bit strings
// with up to four ordered references to other cells, forming a directed
// acyclic graph with shared subtrees.
//
// # Overview
//
// A Cell holds at most 1023 bits of payload and at most 4 references. Cells
// are immutable: the only ways to obtain one are finalizing a Builder or
// decoding a bag of cells (see the boc package). Every cell memoizes a
// SHA-256 representation hash and a depth per verification level, computed
// bottom-up at construction and never recomputed.
//
// # Key Types
//
// The main types provided by this package are:
//
//   - Cell: an immutable bit string + reference list node of the DAG
//   - Builder: a write-once accumulator that composes bits and references
//   - Parser: a read cursor over one cell's bits and references
//   - Kind: ordinary or one of the four exotic cell kinds
//   - LevelMask: which hash/depth levels a cell carries
//
// # Building and Parsing
//
//	b := cell.NewBuilder()
//	if err := b.StoreUint(42, 8); err != nil {
//	    return err
//	}
//	c, err := b.Finalize()
//	if err != nil {
//	    return err
//	}
//
//	p := c.Parse()
//	v, err := p.LoadUint(8)
//	// ...
//	if err := p.EnsureEmpty(); err != nil {
//	    return err
//	}
//
// # Exotic Cells
//
// Pruned branches, library references, merkle proofs and merkle updates
// represent a cut-off subtree by its hash and depth instead of its content.
// Their payload layout is validated at Finalize, and their stored hashes let
// Hash and Depth answer for masked-off levels without the full subtree.
//
// # Thread Safety
//
// Cells are immutable after finalization and safe for concurrent readers.
// Builders and Parsers hold exclusive cursor state and must not be shared.
package cell
