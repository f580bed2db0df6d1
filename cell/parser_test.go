package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParserLoadRef(t *testing.T) {
	c1 := mustFinalize(t, NewBuilder())
	b2 := NewBuilder()
	require.NoError(t, b2.StoreUint(2, 8))
	c2 := mustFinalize(t, b2)

	b := NewBuilder()
	require.NoError(t, b.StoreRef(c1))
	require.NoError(t, b.StoreRef(c2))
	c := mustFinalize(t, b)

	p := c.Parse()
	require.Equal(t, 2, p.RemainingRefs())

	r1, err := p.LoadRef()
	require.NoError(t, err)
	require.True(t, r1.Equal(c1))

	r2, err := p.LoadRef()
	require.NoError(t, err)
	require.True(t, r2.Equal(c2))

	_, err = p.LoadRef()
	require.ErrorIs(t, err, ErrReferenceIndexOutOfRange)
}

func TestParserUnderflow(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0xAB, 8))
	c := mustFinalize(t, b)

	p := c.Parse()
	_, err := p.LoadUint(9)
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	// A failed load must not advance the cursor.
	require.Equal(t, 8, p.RemainingBits())

	v, err := p.LoadUint(8)
	require.NoError(t, err)
	require.EqualValues(t, 0xAB, v)

	_, err = p.LoadBit()
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestParserEnsureEmpty(t *testing.T) {
	ref := mustFinalize(t, NewBuilder())
	b := NewBuilder()
	require.NoError(t, b.StoreUint(1, 4))
	require.NoError(t, b.StoreRef(ref))
	c := mustFinalize(t, b)

	p := c.Parse()
	require.ErrorIs(t, p.EnsureEmpty(), ErrTrailingData)

	_, err := p.LoadUint(4)
	require.NoError(t, err)
	require.ErrorIs(t, p.EnsureEmpty(), ErrTrailingData) // ref not consumed

	_, err = p.LoadRef()
	require.NoError(t, err)
	require.NoError(t, p.EnsureEmpty())
}

func TestParsersAreIndependent(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0xDEAD, 16))
	c := mustFinalize(t, b)

	p1, p2 := c.Parse(), c.Parse()
	v1, err := p1.LoadUint(16)
	require.NoError(t, err)
	v2, err := p2.LoadUint(16)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

func TestParserBitSlice(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreBitSlice([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 29))
	c := mustFinalize(t, b)
	require.Equal(t, 29, c.BitLen())

	p := c.Parse()
	got, err := p.LoadBitSlice(29)
	require.NoError(t, err)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xE8}, got)
	require.NoError(t, p.EnsureEmpty())
}

func TestCellString(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreUint(0x0B, 24))
	require.NoError(t, b.StoreRef(mustFinalize(t, NewBuilder())))
	c := mustFinalize(t, b)

	s := c.String()
	require.Contains(t, s, "Ordinary")
	require.Contains(t, s, "24")
}
