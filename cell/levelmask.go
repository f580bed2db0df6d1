package cell

import "math/bits"

// LevelMask records which hash/depth levels above level 0 a cell carries.
// Bit i-1 set means level i is significant. Level 0 is always significant.
//
// Derivation at construction:
//
//	Ordinary          OR of child masks
//	PrunedBranch      mask byte stored in the payload
//	LibraryReference  0
//	MerkleProof       child mask >> 1
//	MerkleUpdate      (child0 mask | child1 mask) >> 1
type LevelMask uint8

// Level returns the highest significant level, 0..3.
func (m LevelMask) Level() int { return bits.Len8(uint8(m)) }

// HashIndex returns the number of significant levels above 0, which is also
// the index of the cell's own representation hash in its memoized hash list.
func (m LevelMask) HashIndex() int { return bits.OnesCount8(uint8(m)) }

// Apply clips the mask to levels <= level.
func (m LevelMask) Apply(level int) LevelMask {
	if level >= 8 {
		return m
	}
	return m & LevelMask(1<<level-1)
}

// IsSignificant reports whether the cell carries a distinct hash at level.
func (m LevelMask) IsSignificant(level int) bool {
	return level == 0 || uint8(m)>>(level-1)&1 == 1
}
