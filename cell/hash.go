package cell

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Descriptors returns the two descriptor bytes of the cell's standard
// representation: d1 packs the reference count, the exotic flag and the
// level mask; d2 encodes the payload length in bits as
// floor(bits/8) + ceil(bits/8), so an odd d2 marks a partial final byte.
func (c *Cell) Descriptors() (d1, d2 byte) {
	return c.refsDescriptor(c.mask), c.bitsDescriptor()
}

func (c *Cell) refsDescriptor(mask LevelMask) byte {
	d1 := byte(len(c.refs)) | byte(mask)<<5
	if c.kind.IsExotic() {
		d1 |= 0x08
	}
	return d1
}

func (c *Cell) bitsDescriptor() byte {
	return byte(c.bitLen/8) + byte((c.bitLen+7)/8)
}

// PaddedData returns the payload rounded up to whole bytes. A partial final
// byte is completed with a single stop bit followed by zeros, which keeps
// the exact bit length recoverable from the bytes alone.
func (c *Cell) PaddedData() []byte {
	out := make([]byte, (c.bitLen+7)/8)
	copy(out, c.bits)
	if rest := c.bitLen % 8; rest != 0 {
		out[len(out)-1] |= 1 << (7 - uint(rest))
	}
	return out
}

// deriveMask computes the level mask from the kind and children. For pruned
// branches the mask comes from the payload and must have been validated.
func (c *Cell) deriveMask() LevelMask {
	switch c.kind {
	case KindPrunedBranch:
		return LevelMask(c.bits[1])
	case KindLibraryReference:
		return 0
	case KindMerkleProof:
		return c.refs[0].mask >> 1
	case KindMerkleUpdate:
		return (c.refs[0].mask | c.refs[1].mask) >> 1
	default:
		var m LevelMask
		for _, r := range c.refs {
			m |= r.mask
		}
		return m
	}
}

// validateExotic checks the fixed payload layout of the exotic kinds and,
// for merkle kinds, that the stored hash/depth match the referenced cell.
func (c *Cell) validateExotic() error {
	switch c.kind {
	case KindOrdinary:
		return nil

	case KindPrunedBranch:
		if len(c.refs) != 0 {
			return fmt.Errorf("cell: pruned branch with %d references: %w", len(c.refs), ErrMalformedExoticCell)
		}
		if c.bitLen < 16 || c.bits[0] != tagPrunedBranch {
			return fmt.Errorf("cell: pruned branch payload: %w", ErrMalformedExoticCell)
		}
		mask := LevelMask(c.bits[1])
		if mask == 0 || mask.Level() > maxLevel {
			return fmt.Errorf("cell: pruned branch level mask %#x: %w", uint8(mask), ErrMalformedExoticCell)
		}
		n := mask.HashIndex()
		if c.bitLen != 16+n*(HashSize+depthSize)*8 {
			return fmt.Errorf("cell: pruned branch payload of %d bits for %d levels: %w", c.bitLen, n, ErrMalformedExoticCell)
		}
		return nil

	case KindLibraryReference:
		if len(c.refs) != 0 || c.bitLen != 8+HashSize*8 || c.bits[0] != tagLibraryReference {
			return fmt.Errorf("cell: library reference payload: %w", ErrMalformedExoticCell)
		}
		return nil

	case KindMerkleProof:
		if len(c.refs) != 1 || c.bitLen != 8+(HashSize+depthSize)*8 || c.bits[0] != tagMerkleProof {
			return fmt.Errorf("cell: merkle proof payload: %w", ErrMalformedExoticCell)
		}
		if err := checkMerkleField(c.bits[1:], c.refs[0]); err != nil {
			return fmt.Errorf("cell: merkle proof: %w", err)
		}
		return nil

	case KindMerkleUpdate:
		if len(c.refs) != 2 || c.bitLen != 8+2*(HashSize+depthSize)*8 || c.bits[0] != tagMerkleUpdate {
			return fmt.Errorf("cell: merkle update payload: %w", ErrMalformedExoticCell)
		}
		for i, r := range c.refs {
			if err := checkMerkleField(c.bits[1+i*(HashSize+depthSize):], r); err != nil {
				return fmt.Errorf("cell: merkle update side %d: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("cell: unknown kind %d: %w", c.kind, ErrMalformedExoticCell)
}

// checkMerkleField verifies one stored hash+depth pair against the subtree
// it claims to prove (at level 0, where pruned descendants answer with the
// hashes of the content they replaced).
func checkMerkleField(field []byte, ref *Cell) error {
	want := ref.Hash(0)
	if [HashSize]byte(field[:HashSize]) != want {
		return fmt.Errorf("stored hash does not match subtree: %w", ErrMalformedExoticCell)
	}
	if binary.BigEndian.Uint16(field[HashSize:]) != ref.Depth(0) {
		return fmt.Errorf("stored depth does not match subtree: %w", ErrMalformedExoticCell)
	}
	return nil
}

// computeHashes fills the memoized hash/depth lists bottom-up. For each
// significant level the digest covers the descriptor bytes, the padded
// payload (replaced by the previous level's hash above the base level),
// then the child depths and child hashes at the corresponding level. Merkle
// kinds consult their children one level higher; pruned branches hash only
// their own payload, their lower levels being stored, not computed.
func (c *Cell) computeHashes() {
	totalHashCount := c.mask.HashIndex() + 1
	hashCount := totalHashCount
	if c.kind == KindPrunedBranch {
		hashCount = 1
	}
	hashIndexOffset := totalHashCount - hashCount

	c.hashes = make([][HashSize]byte, 0, hashCount)
	c.depths = make([]uint16, 0, hashCount)

	hashIndex := 0
	for level := 0; level <= c.mask.Level(); level++ {
		if !c.mask.IsSignificant(level) {
			continue
		}
		if hashIndex < hashIndexOffset {
			hashIndex++
			continue
		}

		h := sha256.New()
		h.Write([]byte{c.refsDescriptor(c.mask.Apply(level)), c.bitsDescriptor()})
		if hashIndex == hashIndexOffset {
			h.Write(c.PaddedData())
		} else {
			prev := c.hashes[hashIndex-hashIndexOffset-1]
			h.Write(prev[:])
		}

		childLevel := level
		if c.kind == KindMerkleProof || c.kind == KindMerkleUpdate {
			childLevel = level + 1
		}

		var depth uint16
		for _, r := range c.refs {
			d := r.Depth(childLevel)
			h.Write([]byte{byte(d >> 8), byte(d)})
			if d > depth {
				depth = d
			}
		}
		if len(c.refs) > 0 {
			depth++
		}
		for _, r := range c.refs {
			rh := r.Hash(childLevel)
			h.Write(rh[:])
		}

		var sum [HashSize]byte
		h.Sum(sum[:0])
		c.hashes = append(c.hashes, sum)
		c.depths = append(c.depths, depth)
		hashIndex++
	}
}
