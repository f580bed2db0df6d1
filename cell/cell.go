package cell

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// MaxBits is the maximum payload size of a single cell in bits.
	MaxBits = 1023
	// MaxRefs is the maximum number of references a single cell may hold.
	MaxRefs = 4
	// HashSize is the size of a cell representation hash in bytes.
	HashSize = 32
	// depthSize is the size of an encoded depth field in bytes (big-endian uint16).
	depthSize = 2
)

// Cell is an immutable node of the DAG: a bounded bit string plus an ordered
// list of references to other cells. Cells are shared by pointer; a cell may
// be referenced by any number of parents and never references a parent.
//
// Construction is only reachable via Builder.Finalize or boc decoding, which
// enforce the capacity invariants and memoize hash/depth per level.
type Cell struct {
	kind   Kind
	bits   []byte // ceil(bitLen/8) bytes, padding bits zero
	bitLen int
	refs   []*Cell
	mask   LevelMask

	// Memoized bottom-up at construction; hashes[i]/depths[i] belong to the
	// i-th significant level. Pruned branches memoize only their own
	// representation hash and serve masked-off levels from the payload.
	hashes [][HashSize]byte
	depths []uint16
}

// Kind returns the structural type of the cell.
func (c *Cell) Kind() Kind { return c.kind }

// BitLen returns the payload length in bits.
func (c *Cell) BitLen() int { return c.bitLen }

// Bits returns the payload packed MSB-first, right-padded with zero bits to
// a whole byte. The returned slice is a view into the cell and must not be
// modified.
func (c *Cell) Bits() []byte { return c.bits }

// RefCount returns the number of references.
func (c *Cell) RefCount() int { return len(c.refs) }

// Ref returns the i-th reference.
func (c *Cell) Ref(i int) (*Cell, error) {
	if i < 0 || i >= len(c.refs) {
		return nil, fmt.Errorf("cell: reference %d of %d: %w", i, len(c.refs), ErrReferenceIndexOutOfRange)
	}
	return c.refs[i], nil
}

// Refs returns the ordered reference list as a fresh slice (the referenced
// cells themselves are shared).
func (c *Cell) Refs() []*Cell {
	out := make([]*Cell, len(c.refs))
	copy(out, c.refs)
	return out
}

// LevelMask returns the cell's level mask.
func (c *Cell) LevelMask() LevelMask { return c.mask }

// Level returns the cell's highest significant level, 0..3.
func (c *Cell) Level() int { return c.mask.Level() }

// Hash returns the cell's representation hash at the given level. Levels
// outside [0, 3] are clamped. For pruned branches, masked-off levels are
// served from the hashes stored in the payload.
func (c *Cell) Hash(level int) [HashSize]byte {
	level = clampLevel(level)
	idx := c.mask.Apply(level).HashIndex()
	if c.kind == KindPrunedBranch {
		own := c.mask.HashIndex()
		if idx != own {
			var h [HashSize]byte
			copy(h[:], c.bits[2+idx*HashSize:])
			return h
		}
		idx = 0
	}
	return c.hashes[idx]
}

// Depth returns the depth of the cell at the given level: 0 for a childless
// cell, otherwise 1 + the maximum child depth at the corresponding level.
func (c *Cell) Depth(level int) uint16 {
	level = clampLevel(level)
	idx := c.mask.Apply(level).HashIndex()
	if c.kind == KindPrunedBranch {
		own := c.mask.HashIndex()
		if idx != own {
			off := 2 + own*HashSize + idx*depthSize
			return binary.BigEndian.Uint16(c.bits[off:])
		}
		idx = 0
	}
	return c.depths[idx]
}

// Equal reports content identity: two cells built independently from
// identical bits, kind and child hashes compare equal.
func (c *Cell) Equal(other *Cell) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.Hash(maxLevel) == other.Hash(maxLevel)
}

// Parse returns a fresh read cursor over the cell's bits and references.
func (c *Cell) Parse() *Parser {
	return newParser(c)
}

const maxLevel = 3

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}

// String renders a one-line summary: kind, level, refs, depth and payload.
func (c *Cell) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:L%d:R%d:D%d:%d[0x%s]",
		c.kind, c.Level(), len(c.refs), c.Depth(0), c.bitLen,
		strings.ToUpper(hex.EncodeToString(c.bits)))
	return sb.String()
}
