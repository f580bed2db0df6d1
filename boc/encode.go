package boc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math/bits"

	"github.com/cellkit/cellkit/cell"
	"github.com/cellkit/cellkit/internal/buf"
)

// Stream magics. Encoding always emits the generic form; decoding also
// accepts the two legacy indexed forms.
const (
	magicGeneric    = 0xb5ee9c72
	magicIndexed    = 0x68ff65f3
	magicIndexedCRC = 0xacc3a728
)

// Flag bits of the generic header's flags+size byte. The low 3 bits hold
// the byte width of cell counts and reference indices.
const (
	flagHasIndex     = 0x80
	flagHasCRC       = 0x40
	flagHasCacheBits = 0x20
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Options selects the optional parts of the encoded stream.
type Options struct {
	// WithIndex emits the per-cell offset table between the root list and
	// the cell data.
	WithIndex bool
	// WithCRC appends a CRC-32C checksum of all preceding bytes.
	WithCRC bool
}

// Encode flattens the DAGs rooted at the given cells into one byte stream.
// Structurally identical subtrees are stored once and referenced by index.
func Encode(roots []*cell.Cell, opts Options) ([]byte, error) {
	if len(roots) == 0 {
		return nil, errors.New("boc: no root cells")
	}
	for _, r := range roots {
		if r == nil {
			return nil, errors.New("boc: nil root cell")
		}
	}

	ordered, index := orderCells(roots)
	cellCount := len(ordered)
	sizeBytes := minBytesFor(uint64(cellCount))
	if sizeBytes > 4 {
		return nil, fmt.Errorf("boc: cell count %d does not fit 4 bytes", cellCount)
	}

	var total uint64
	offsets := make([]uint64, cellCount)
	for i, c := range ordered {
		offsets[i] = total
		total += uint64(2 + len(c.PaddedData()) + c.RefCount()*sizeBytes)
	}
	offBytes := minBytesFor(total)

	var out bytes.Buffer
	var scratch [8]byte
	binary.BigEndian.PutUint32(scratch[:4], magicGeneric)
	out.Write(scratch[:4])

	flags := byte(sizeBytes)
	if opts.WithIndex {
		flags |= flagHasIndex
	}
	if opts.WithCRC {
		flags |= flagHasCRC
	}
	out.WriteByte(flags)
	out.WriteByte(byte(offBytes))

	writeUvar := func(v uint64, n int) {
		buf.PutUintBE(scratch[:n], v, n)
		out.Write(scratch[:n])
	}
	writeUvar(uint64(cellCount), sizeBytes)
	writeUvar(uint64(len(roots)), sizeBytes)
	writeUvar(0, sizeBytes) // absent cells: complete bags only
	writeUvar(total, offBytes)
	for _, r := range roots {
		writeUvar(uint64(index[contentKey(r)]), sizeBytes)
	}
	if opts.WithIndex {
		for _, off := range offsets {
			writeUvar(off, offBytes)
		}
	}

	for _, c := range ordered {
		d1, d2 := c.Descriptors()
		out.WriteByte(d1)
		out.WriteByte(d2)
		out.Write(c.PaddedData())
		for _, r := range c.Refs() {
			writeUvar(uint64(index[contentKey(r)]), sizeBytes)
		}
	}

	data := out.Bytes()
	if opts.WithCRC {
		binary.LittleEndian.PutUint32(scratch[:4], crc32.Checksum(data, castagnoli))
		data = append(data, scratch[:4]...)
	}
	return data, nil
}

// contentKey is the deduplication identity of a cell: its representation
// hash at the highest level, which covers kind, payload and children.
func contentKey(c *cell.Cell) [cell.HashSize]byte {
	return c.Hash(3)
}

// orderCells numbers the deduplicated DAG in reverse postorder of a
// depth-first traversal, roots first, so that every reference points to a
// strictly higher index than its source.
func orderCells(roots []*cell.Cell) ([]*cell.Cell, map[[cell.HashSize]byte]int) {
	type frame struct {
		c    *cell.Cell
		next int
	}
	var post []*cell.Cell
	seen := make(map[[cell.HashSize]byte]bool)

	for _, root := range roots {
		if seen[contentKey(root)] {
			continue
		}
		seen[contentKey(root)] = true
		stack := []frame{{c: root}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < f.c.RefCount() {
				child, _ := f.c.Ref(f.next)
				f.next++
				if k := contentKey(child); !seen[k] {
					seen[k] = true
					stack = append(stack, frame{c: child})
				}
				continue
			}
			post = append(post, f.c)
			stack = stack[:len(stack)-1]
		}
	}

	n := len(post)
	ordered := make([]*cell.Cell, n)
	index := make(map[[cell.HashSize]byte]int, n)
	for i, c := range post {
		ordered[n-1-i] = c
	}
	for i, c := range ordered {
		index[contentKey(c)] = i
	}
	return ordered, index
}

// minBytesFor returns the least number of bytes that can represent v, at
// least one.
func minBytesFor(v uint64) int {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		return 1
	}
	return n
}
