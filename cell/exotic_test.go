package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// prunedBranch replaces c with a level-1 stub carrying its hash and depth.
func prunedBranch(t *testing.T, c *Cell) *Cell {
	t.Helper()
	b := NewBuilder().SetKind(KindPrunedBranch)
	require.NoError(t, b.StoreUint(uint64(tagPrunedBranch), 8))
	require.NoError(t, b.StoreUint(0b01, 8)) // level mask
	h := c.Hash(0)
	require.NoError(t, b.StoreBytes(h[:]))
	require.NoError(t, b.StoreUint(uint64(c.Depth(0)), 16))
	return mustFinalize(t, b)
}

func merkleProof(t *testing.T, body *Cell) *Cell {
	t.Helper()
	b := NewBuilder().SetKind(KindMerkleProof)
	require.NoError(t, b.StoreUint(uint64(tagMerkleProof), 8))
	h := body.Hash(0)
	require.NoError(t, b.StoreBytes(h[:]))
	require.NoError(t, b.StoreUint(uint64(body.Depth(0)), 16))
	require.NoError(t, b.StoreRef(body))
	return mustFinalize(t, b)
}

func TestPrunedBranch(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(0x0F, 32))
	leaf := mustFinalize(t, lb)

	pb := prunedBranch(t, leaf)
	require.Equal(t, KindPrunedBranch, pb.Kind())
	require.Equal(t, LevelMask(1), pb.LevelMask())
	require.Equal(t, 1, pb.Level())

	// Level 0 answers with the pruned subtree's identity.
	require.Equal(t, leaf.Hash(0), pb.Hash(0))
	require.Equal(t, leaf.Depth(0), pb.Depth(0))

	// Level 1 is the stub's own representation hash.
	require.NotEqual(t, leaf.Hash(0), pb.Hash(1))
	require.EqualValues(t, 0, pb.Depth(1))
}

func TestPrunedBranchMalformed(t *testing.T) {
	mk := func(f func(b *Builder)) error {
		b := NewBuilder().SetKind(KindPrunedBranch)
		f(b)
		_, err := b.Finalize()
		return err
	}

	// Zero level mask.
	require.ErrorIs(t, mk(func(b *Builder) {
		require.NoError(t, b.StoreUint(uint64(tagPrunedBranch), 8))
		require.NoError(t, b.StoreUint(0, 8))
		require.NoError(t, b.StoreBytes(make([]byte, HashSize+depthSize)))
	}), ErrMalformedExoticCell)

	// Payload length does not match the mask's level count.
	require.ErrorIs(t, mk(func(b *Builder) {
		require.NoError(t, b.StoreUint(uint64(tagPrunedBranch), 8))
		require.NoError(t, b.StoreUint(0b11, 8))
		require.NoError(t, b.StoreBytes(make([]byte, HashSize+depthSize)))
	}), ErrMalformedExoticCell)

	// Wrong tag byte.
	require.ErrorIs(t, mk(func(b *Builder) {
		require.NoError(t, b.StoreUint(uint64(tagLibraryReference), 8))
		require.NoError(t, b.StoreUint(0b01, 8))
		require.NoError(t, b.StoreBytes(make([]byte, HashSize+depthSize)))
	}), ErrMalformedExoticCell)

	// References are not allowed.
	leaf := mustFinalize(t, NewBuilder())
	require.ErrorIs(t, mk(func(b *Builder) {
		require.NoError(t, b.StoreUint(uint64(tagPrunedBranch), 8))
		require.NoError(t, b.StoreUint(0b01, 8))
		require.NoError(t, b.StoreBytes(make([]byte, HashSize+depthSize)))
		require.NoError(t, b.StoreRef(leaf))
	}), ErrMalformedExoticCell)
}

func TestLibraryReference(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(7, 8))
	lib := mustFinalize(t, lb)

	b := NewBuilder().SetKind(KindLibraryReference)
	require.NoError(t, b.StoreUint(uint64(tagLibraryReference), 8))
	h := lib.Hash(0)
	require.NoError(t, b.StoreBytes(h[:]))
	c := mustFinalize(t, b)

	require.Equal(t, KindLibraryReference, c.Kind())
	require.Equal(t, 0, c.Level())
	require.Equal(t, LevelMask(0), c.LevelMask())

	// Payload must be exactly tag plus one hash.
	short := NewBuilder().SetKind(KindLibraryReference)
	require.NoError(t, short.StoreUint(uint64(tagLibraryReference), 8))
	require.NoError(t, short.StoreBytes(make([]byte, HashSize-1)))
	_, err := short.Finalize()
	require.ErrorIs(t, err, ErrMalformedExoticCell)
}

func TestMerkleProofTransparency(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(0x0F, 32))
	leaf := mustFinalize(t, lb)

	full := NewBuilder()
	require.NoError(t, full.StoreUint(0x0B, 24))
	require.NoError(t, full.StoreRef(leaf))
	body := mustFinalize(t, full)

	// Same cell with the child pruned away.
	cut := NewBuilder()
	require.NoError(t, cut.StoreUint(0x0B, 24))
	require.NoError(t, cut.StoreRef(prunedBranch(t, leaf)))
	stub := mustFinalize(t, cut)

	// At level 0 the pruned body is indistinguishable from the full one.
	require.Equal(t, 1, stub.Level())
	require.Equal(t, body.Hash(0), stub.Hash(0))
	require.Equal(t, body.Depth(0), stub.Depth(0))
	require.NotEqual(t, stub.Hash(0), stub.Hash(1))

	proof := merkleProof(t, stub)
	require.Equal(t, KindMerkleProof, proof.Kind())
	require.Equal(t, 0, proof.Level())
}

func TestMerkleProofMismatch(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(0x0F, 32))
	leaf := mustFinalize(t, lb)

	b := NewBuilder().SetKind(KindMerkleProof)
	require.NoError(t, b.StoreUint(uint64(tagMerkleProof), 8))
	require.NoError(t, b.StoreBytes(make([]byte, HashSize))) // not leaf's hash
	require.NoError(t, b.StoreUint(uint64(leaf.Depth(0)), 16))
	require.NoError(t, b.StoreRef(leaf))
	_, err := b.Finalize()
	require.ErrorIs(t, err, ErrMalformedExoticCell)

	// Correct hash, wrong depth.
	b = NewBuilder().SetKind(KindMerkleProof)
	require.NoError(t, b.StoreUint(uint64(tagMerkleProof), 8))
	h := leaf.Hash(0)
	require.NoError(t, b.StoreBytes(h[:]))
	require.NoError(t, b.StoreUint(uint64(leaf.Depth(0))+1, 16))
	require.NoError(t, b.StoreRef(leaf))
	_, err = b.Finalize()
	require.ErrorIs(t, err, ErrMalformedExoticCell)
}

func TestMerkleUpdate(t *testing.T) {
	mkLeaf := func(v uint64) *Cell {
		b := NewBuilder()
		require.NoError(t, b.StoreUint(v, 32))
		return mustFinalize(t, b)
	}
	before, after := mkLeaf(1), mkLeaf(2)

	b := NewBuilder().SetKind(KindMerkleUpdate)
	require.NoError(t, b.StoreUint(uint64(tagMerkleUpdate), 8))
	for _, side := range []*Cell{before, after} {
		h := side.Hash(0)
		require.NoError(t, b.StoreBytes(h[:]))
		require.NoError(t, b.StoreUint(uint64(side.Depth(0)), 16))
	}
	require.NoError(t, b.StoreRef(before))
	require.NoError(t, b.StoreRef(after))
	c := mustFinalize(t, b)

	require.Equal(t, KindMerkleUpdate, c.Kind())
	require.Equal(t, 2, c.RefCount())
	require.Equal(t, 0, c.Level())

	// Swapping the sides breaks the stored pairs.
	b = NewBuilder().SetKind(KindMerkleUpdate)
	require.NoError(t, b.StoreUint(uint64(tagMerkleUpdate), 8))
	for _, side := range []*Cell{before, after} {
		h := side.Hash(0)
		require.NoError(t, b.StoreBytes(h[:]))
		require.NoError(t, b.StoreUint(uint64(side.Depth(0)), 16))
	}
	require.NoError(t, b.StoreRef(after))
	require.NoError(t, b.StoreRef(before))
	_, err := b.Finalize()
	require.ErrorIs(t, err, ErrMalformedExoticCell)
}

func TestOrdinaryMaskFollowsChildren(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(9, 8))
	leaf := mustFinalize(t, lb)

	b := NewBuilder()
	require.NoError(t, b.StoreRef(prunedBranch(t, leaf)))
	c := mustFinalize(t, b)

	require.Equal(t, LevelMask(1), c.LevelMask())
	require.Equal(t, 1, c.Level())
}
