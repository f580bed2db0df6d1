package cell

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexHash(t *testing.T, s string) [HashSize]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, HashSize)
	return [HashSize]byte(raw)
}

func TestHashLeaf(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0x0F, 32))
	c := mustFinalize(t, b)

	d1, d2 := c.Descriptors()
	require.Equal(t, byte(0x00), d1)
	require.Equal(t, byte(0x08), d2)
	require.Equal(t,
		hexHash(t, "57b520dbcb9d135863fc33963cde9f6db2ded1430d88056810a2c9434a3860f9"),
		c.Hash(0))
	require.EqualValues(t, 0, c.Depth(0))
	require.Equal(t, 0, c.Level())
}

func TestHashWithReferences(t *testing.T) {
	lb := NewBuilder()
	require.NoError(t, lb.StoreUint(0x0F, 32))
	leaf := mustFinalize(t, lb)

	b := NewBuilder()
	require.NoError(t, b.StoreUint(0x0B, 24))
	require.NoError(t, b.StoreRef(leaf))
	require.NoError(t, b.StoreRef(leaf))
	c := mustFinalize(t, b)

	d1, d2 := c.Descriptors()
	require.Equal(t, byte(0x02), d1)
	require.Equal(t, byte(0x06), d2)
	require.Equal(t,
		hexHash(t, "f345277cc6cfa747f001367e1e873dcfa8a936b8492431248b7a3eeafa8030e7"),
		c.Hash(0))
	require.EqualValues(t, 1, c.Depth(0))
}

func TestHashZeroByte(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0, 8))
	c := mustFinalize(t, b)

	require.Equal(t,
		hexHash(t, "dbbc7025e89eb9b1ec9e8e2c7a2db6869dbb50fba21bf374c86529dc311cede9"),
		c.Hash(0))
}

func TestHashDeterministic(t *testing.T) {
	build := func(v uint64) *Cell {
		b := NewBuilder()
		require.NoError(t, b.StoreUint(v, 48))
		return mustFinalize(t, b)
	}

	a, b := build(0xC0FFEE), build(0xC0FFEE)
	require.Equal(t, a.Hash(0), b.Hash(0))
	require.True(t, a.Equal(b))

	// A single flipped bit must change the hash.
	c := build(0xC0FFEF)
	require.NotEqual(t, a.Hash(0), c.Hash(0))
	require.False(t, a.Equal(c))
}

func TestHashDependsOnBitLength(t *testing.T) {
	// 0b10 in 2 bits and 0b100 in 3 bits pad to the same byte only if the
	// stop bit is ignored; the hash must tell them apart.
	b2 := NewBuilder()
	require.NoError(t, b2.StoreUint(0b10, 2))
	c2 := mustFinalize(t, b2)

	b3 := NewBuilder()
	require.NoError(t, b3.StoreUint(0b100, 3))
	c3 := mustFinalize(t, b3)

	require.NotEqual(t, c2.Hash(0), c3.Hash(0))
}

func TestPaddedDataStopBit(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0b101, 3))
	c := mustFinalize(t, b)

	require.Equal(t, []byte{0xB0}, c.PaddedData())

	_, d2 := c.Descriptors()
	require.Equal(t, byte(0x01), d2)
}

func TestDepthGrowsPerHop(t *testing.T) {
	c := mustFinalize(t, NewBuilder())
	for i := 1; i <= 5; i++ {
		b := NewBuilder()
		require.NoError(t, b.StoreRef(c))
		c = mustFinalize(t, b)
		require.EqualValues(t, i, c.Depth(0))
	}
}

func TestDepthIsMaxOverChildren(t *testing.T) {
	leaf := mustFinalize(t, NewBuilder())

	mid := NewBuilder()
	require.NoError(t, mid.StoreRef(leaf))
	deep := mustFinalize(t, mid)

	b := NewBuilder()
	require.NoError(t, b.StoreRef(leaf)) // depth 0
	require.NoError(t, b.StoreRef(deep)) // depth 1
	c := mustFinalize(t, b)

	require.EqualValues(t, 2, c.Depth(0))
}
