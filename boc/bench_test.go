package boc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cellkit/cellkit/boc"
	"github.com/cellkit/cellkit/cell"
)

// benchTree builds a binary tree of the given depth with distinct payloads,
// 2^depth - 1 unique cells.
func benchTree(b *testing.B, depth int, salt uint64) *cell.Cell {
	b.Helper()
	var build func(level int, path uint64) *cell.Cell
	build = func(level int, path uint64) *cell.Cell {
		cb := cell.NewBuilder()
		require.NoError(b, cb.StoreUint(salt^path, 64))
		if level > 1 {
			require.NoError(b, cb.StoreRef(build(level-1, path<<1)))
			require.NoError(b, cb.StoreRef(build(level-1, path<<1|1)))
		}
		c, err := cb.Finalize()
		require.NoError(b, err)
		return c
	}
	return build(depth, 1)
}

func BenchmarkEncode(b *testing.B) {
	root := benchTree(b, 10, 0x9E3779B97F4A7C15)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := boc.Encode([]*cell.Cell{root}, boc.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	root := benchTree(b, 10, 0x9E3779B97F4A7C15)
	data, err := boc.Encode([]*cell.Cell{root}, boc.Options{WithCRC: true})
	require.NoError(b, err)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := boc.Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
