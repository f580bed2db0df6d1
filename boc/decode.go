package boc

import (
	"fmt"
	"hash/crc32"
	"math/bits"

	"github.com/cellkit/cellkit/cell"
	"github.com/cellkit/cellkit/internal/buf"
)

// reader is a bounds-checked byte cursor over the encoded stream.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) take(n int) ([]byte, error) {
	end, err := buf.CheckListBounds(len(r.data), r.pos, n, 1)
	if err != nil {
		return nil, fmt.Errorf("boc: truncated stream (%v): %w", err, ErrMalformedHeader)
	}
	b := r.data[r.pos:end]
	r.pos = end
	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uvar(n int) (uint64, error) {
	b, err := r.take(n)
	if err != nil {
		return 0, err
	}
	return buf.UintBE(b, n), nil
}

// rawCell is a decoded but not yet reconstructed cell record.
type rawCell struct {
	exotic bool
	data   []byte
	bitLen int
	refs   []uint64
}

// Decode parses a byte stream produced by Encode (or a compatible encoder)
// and reconstructs the cell DAG bottom-up, returning the root cells.
// Decoding is all-or-nothing: any structural violation fails before any
// partial DAG is returned.
func Decode(data []byte) ([]*cell.Cell, error) {
	r := &reader{data: data}

	magicB, err := r.take(4)
	if err != nil {
		return nil, err
	}
	magic := buf.U32BE(magicB)

	var hasIdx, hasCRC bool
	var sizeBytes int
	switch magic {
	case magicGeneric:
		fl, err := r.byte()
		if err != nil {
			return nil, err
		}
		hasIdx = fl&flagHasIndex != 0
		hasCRC = fl&flagHasCRC != 0
		if fl>>3&0x03 != 0 {
			return nil, fmt.Errorf("boc: reserved flags set: %w", ErrMalformedHeader)
		}
		sizeBytes = int(fl & 0x07)
	case magicIndexed, magicIndexedCRC:
		hasIdx = true
		hasCRC = magic == magicIndexedCRC
		sz, err := r.byte()
		if err != nil {
			return nil, err
		}
		sizeBytes = int(sz)
	default:
		return nil, fmt.Errorf("boc: magic %#x: %w", magic, ErrMalformedHeader)
	}
	if sizeBytes < 1 || sizeBytes > 4 {
		return nil, fmt.Errorf("boc: size width %d: %w", sizeBytes, ErrMalformedHeader)
	}

	offB, err := r.byte()
	if err != nil {
		return nil, err
	}
	offBytes := int(offB)
	if offBytes < 1 || offBytes > 8 {
		return nil, fmt.Errorf("boc: offset width %d: %w", offBytes, ErrMalformedHeader)
	}

	cellCount, err := r.uvar(sizeBytes)
	if err != nil {
		return nil, err
	}
	rootCount, err := r.uvar(sizeBytes)
	if err != nil {
		return nil, err
	}
	absentCount, err := r.uvar(sizeBytes)
	if err != nil {
		return nil, err
	}
	total, err := r.uvar(offBytes)
	if err != nil {
		return nil, err
	}
	switch {
	case cellCount == 0:
		return nil, fmt.Errorf("boc: zero cells: %w", ErrMalformedHeader)
	case rootCount == 0:
		return nil, fmt.Errorf("boc: zero roots: %w", ErrMalformedHeader)
	case absentCount != 0:
		return nil, fmt.Errorf("boc: absent cells not supported: %w", ErrMalformedHeader)
	case rootCount > cellCount:
		return nil, fmt.Errorf("boc: %d roots for %d cells: %w", rootCount, cellCount, ErrMalformedHeader)
	case total > uint64(len(data)):
		return nil, fmt.Errorf("boc: declared data size %d exceeds stream: %w", total, ErrMalformedHeader)
	case total < 2*cellCount:
		// Every cell occupies at least its two descriptor bytes.
		return nil, fmt.Errorf("boc: declared data size %d too small for %d cells: %w", total, cellCount, ErrMalformedHeader)
	}

	rootIdx := make([]uint64, rootCount)
	if magic == magicGeneric {
		for i := range rootIdx {
			if rootIdx[i], err = r.uvar(sizeBytes); err != nil {
				return nil, err
			}
			if rootIdx[i] >= cellCount {
				return nil, fmt.Errorf("boc: root index %d of %d cells: %w", rootIdx[i], cellCount, ErrMalformedHeader)
			}
		}
	} else {
		// The legacy indexed forms have no root list; the single root is cell 0.
		if rootCount != 1 {
			return nil, fmt.Errorf("boc: legacy stream with %d roots: %w", rootCount, ErrMalformedHeader)
		}
	}

	if hasIdx {
		if _, err := r.take(int(cellCount) * offBytes); err != nil {
			return nil, err
		}
	}

	region, err := r.take(int(total))
	if err != nil {
		return nil, err
	}

	if hasCRC {
		body := data[:r.pos]
		trailer, err := r.take(4)
		if err != nil {
			return nil, err
		}
		if buf.U32LE(trailer) != crc32.Checksum(body, castagnoli) {
			return nil, ErrChecksumMismatch
		}
	}
	if r.pos != len(data) {
		return nil, fmt.Errorf("boc: %d trailing bytes: %w", len(data)-r.pos, ErrMalformedHeader)
	}

	raws, err := parseRawCells(region, int(cellCount), sizeBytes)
	if err != nil {
		return nil, err
	}

	built, err := buildCells(raws)
	if err != nil {
		return nil, err
	}

	roots := make([]*cell.Cell, rootCount)
	for i, idx := range rootIdx {
		roots[i] = built[idx]
	}
	return roots, nil
}

// parseRawCells splits the cell-data region into per-cell records without
// resolving references yet.
func parseRawCells(region []byte, cellCount, sizeBytes int) ([]rawCell, error) {
	r := &reader{data: region}
	raws := make([]rawCell, cellCount)
	for i := range raws {
		d1, err := r.byte()
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		refCount := int(d1 & 0x07)
		if refCount > cell.MaxRefs {
			return nil, fmt.Errorf("boc: cell %d declares %d references: %w", i, refCount, ErrMalformedHeader)
		}
		exotic := d1&0x08 != 0

		d2, err := r.byte()
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		dataBytes := int(d2>>1) + int(d2&1)
		payload, err := r.take(dataBytes)
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}

		bitLen := 8 * dataBytes
		if d2&1 == 1 {
			// Partial final byte: the stop bit marks the true length.
			last := payload[dataBytes-1]
			if last == 0 {
				return nil, fmt.Errorf("boc: cell %d missing stop bit: %w", i, ErrMalformedHeader)
			}
			bitLen -= bits.TrailingZeros8(last) + 1
		}

		refs := make([]uint64, refCount)
		for j := range refs {
			if refs[j], err = r.uvar(sizeBytes); err != nil {
				return nil, fmt.Errorf("boc: cell %d: %w", i, err)
			}
		}
		raws[i] = rawCell{exotic: exotic, data: payload, bitLen: bitLen, refs: refs}
	}
	if r.pos != len(region) {
		return nil, fmt.Errorf("boc: %d unused cell-data bytes: %w", len(region)-r.pos, ErrMalformedHeader)
	}
	return raws, nil
}

// buildCells reconstructs immutable cells bottom-up so hash and depth are
// computed at construction. Reference indices must be strictly forward.
func buildCells(raws []rawCell) ([]*cell.Cell, error) {
	built := make([]*cell.Cell, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		raw := raws[i]
		b := cell.NewBuilder()
		if raw.exotic {
			if raw.bitLen < 8 {
				return nil, fmt.Errorf("boc: cell %d: exotic cell without type tag: %w", i, ErrMalformedHeader)
			}
			kind, ok := cell.KindForTag(raw.data[0])
			if !ok {
				return nil, fmt.Errorf("boc: cell %d: exotic tag %#x: %w", i, raw.data[0], ErrMalformedHeader)
			}
			b.SetKind(kind)
		}
		if err := b.StoreBitSlice(raw.data, raw.bitLen); err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		for _, ri := range raw.refs {
			switch {
			case ri >= uint64(len(raws)):
				return nil, fmt.Errorf("boc: cell %d references %d of %d cells: %w", i, ri, len(raws), ErrDanglingReference)
			case ri <= uint64(i):
				return nil, fmt.Errorf("boc: cell %d references earlier cell %d: %w", i, ri, ErrDanglingReference)
			}
			if err := b.StoreRef(built[ri]); err != nil {
				return nil, fmt.Errorf("boc: cell %d: %w", i, err)
			}
		}
		c, err := b.Finalize()
		if err != nil {
			return nil, fmt.Errorf("boc: cell %d: %w", i, err)
		}
		built[i] = c
	}
	return built, nil
}
