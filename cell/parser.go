package cell

import (
	"fmt"
	"math/big"

	"github.com/cellkit/cellkit/internal/bitstr"
)

// Parser is a read cursor over one cell's bits and references. All cursor
// state lives in the parser; the underlying cell is never mutated, so any
// number of parsers may read the same cell concurrently.
//
// Call EnsureEmpty after loading to assert exact consumption (the normal
// round-trip contract), or skip it to permit a remainder for
// forward-compatible schemas.
type Parser struct {
	cell   *Cell
	r      *bitstr.Reader
	refIdx int
}

func newParser(c *Cell) *Parser {
	return &Parser{cell: c, r: bitstr.NewReader(c.bits, c.bitLen)}
}

// Cell returns the cell being parsed.
func (p *Parser) Cell() *Cell { return p.cell }

// RemainingBits returns the number of unread bits.
func (p *Parser) RemainingBits() int { return p.r.Remaining() }

// RemainingRefs returns the number of unread references.
func (p *Parser) RemainingRefs() int { return len(p.cell.refs) - p.refIdx }

// LoadBit consumes and returns one bit.
func (p *Parser) LoadBit() (bool, error) {
	return p.r.ReadBit()
}

// LoadUint consumes width bits as a big-endian unsigned field, width in [0, 64].
func (p *Parser) LoadUint(width uint) (uint64, error) {
	return p.r.ReadUint(width)
}

// LoadInt consumes width bits as a two's complement field, width in [0, 64].
func (p *Parser) LoadInt(width uint) (int64, error) {
	return p.r.ReadInt(width)
}

// LoadBytes consumes 8*n bits and returns them as n bytes.
func (p *Parser) LoadBytes(n int) ([]byte, error) {
	return p.r.ReadBytes(n)
}

// LoadBitSlice consumes count bits and returns them packed MSB-first,
// right-padded with zero bits to a whole byte.
func (p *Parser) LoadBitSlice(count int) ([]byte, error) {
	return p.r.ReadBits(count)
}

// LoadBigUint consumes width bits as an unsigned big-endian integer of
// arbitrary width.
func (p *Parser) LoadBigUint(width uint) (*big.Int, error) {
	raw, err := p.r.ReadBits(int(width))
	if err != nil {
		return nil, err
	}
	pad := uint(8*len(raw)) - width
	return new(big.Int).Rsh(new(big.Int).SetBytes(raw), pad), nil
}

// LoadBigInt consumes width bits as a two's complement integer of arbitrary
// width.
func (p *Parser) LoadBigInt(width uint) (*big.Int, error) {
	v, err := p.LoadBigUint(width)
	if err != nil {
		return nil, err
	}
	if width > 0 && v.Bit(int(width-1)) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), width))
	}
	return v, nil
}

// LoadRef consumes and returns the next reference as a shared handle.
func (p *Parser) LoadRef() (*Cell, error) {
	if p.refIdx >= len(p.cell.refs) {
		return nil, fmt.Errorf("cell: reference %d of %d: %w", p.refIdx, len(p.cell.refs), ErrReferenceIndexOutOfRange)
	}
	r := p.cell.refs[p.refIdx]
	p.refIdx++
	return r, nil
}

// EnsureEmpty fails with ErrTrailingData unless all bits and references
// have been consumed.
func (p *Parser) EnsureEmpty() error {
	if bits, refs := p.RemainingBits(), p.RemainingRefs(); bits != 0 || refs != 0 {
		return fmt.Errorf("cell: %d bits and %d references left: %w", bits, refs, ErrTrailingData)
	}
	return nil
}
