package cell

import (
	"fmt"
	"math/big"

	"github.com/cellkit/cellkit/internal/bitstr"
)

// Builder is a write-once accumulator that composes bits and references into
// a Cell. Every store operation is all-or-nothing: it fails with
// ErrCapacityExceeded before writing anything when the 1023-bit or
// 4-reference ceiling would be crossed.
//
// Finalize consumes the builder; any use afterwards fails with
// ErrBuilderFinalized.
//
// Builders are not safe for concurrent use.
type Builder struct {
	w    *bitstr.Writer
	refs []*Cell
	kind Kind
	done bool
}

// NewBuilder returns an empty builder for an ordinary cell.
func NewBuilder() *Builder {
	return &Builder{w: bitstr.NewWriter(MaxBits)}
}

// SetKind marks the cell under construction as the given kind. Exotic kinds
// have their payload layout validated at Finalize.
func (b *Builder) SetKind(k Kind) *Builder {
	b.kind = k
	return b
}

// BitsLeft returns the remaining bit capacity.
func (b *Builder) BitsLeft() int {
	if b.done {
		return 0
	}
	return b.w.CapacityLeft()
}

// RefsLeft returns the remaining reference capacity.
func (b *Builder) RefsLeft() int {
	if b.done {
		return 0
	}
	return MaxRefs - len(b.refs)
}

// BitLen returns the number of bits stored so far.
func (b *Builder) BitLen() int { return b.w.Len() }

func (b *Builder) ensureLive() error {
	if b.done {
		return ErrBuilderFinalized
	}
	return nil
}

// StoreBit appends a single bit.
func (b *Builder) StoreBit(bit bool) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	return b.w.WriteBit(bit)
}

// StoreUint appends v as a width-bit big-endian unsigned field, width in [0, 64].
func (b *Builder) StoreUint(v uint64, width uint) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	return b.w.WriteUint(v, width)
}

// StoreInt appends v as a width-bit two's complement field, width in [0, 64].
func (b *Builder) StoreInt(v int64, width uint) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	return b.w.WriteInt(v, width)
}

// StoreBytes appends all bits of p.
func (b *Builder) StoreBytes(p []byte) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	return b.w.WriteBytes(p)
}

// StoreBitSlice appends the first count bits of src (packed MSB-first).
func (b *Builder) StoreBitSlice(src []byte, count int) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	return b.w.WriteBits(src, count)
}

// StoreBigUint appends v as a width-bit big-endian unsigned field. Any width
// up to the remaining capacity is accepted; the value is chunked through the
// primitive writer in byte windows, preserving big-endian order.
func (b *Builder) StoreBigUint(v *big.Int, width uint) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	if v.Sign() < 0 || uint(v.BitLen()) > width {
		return fmt.Errorf("cell: %s does not fit %d unsigned bits: %w", v, width, ErrValueOutOfRange)
	}
	return b.storeBigBits(v, width)
}

// StoreBigInt appends v as a width-bit two's complement field.
func (b *Builder) StoreBigInt(v *big.Int, width uint) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	if width == 0 {
		if v.Sign() != 0 {
			return fmt.Errorf("cell: %s does not fit 0 signed bits: %w", v, ErrValueOutOfRange)
		}
		return nil
	}
	// Representable range is [-2^(width-1), 2^(width-1)-1].
	if v.Sign() >= 0 {
		if uint(v.BitLen()) > width-1 {
			return fmt.Errorf("cell: %s does not fit %d signed bits: %w", v, width, ErrValueOutOfRange)
		}
		return b.storeBigBits(v, width)
	}
	limit := new(big.Int).Lsh(big.NewInt(1), width-1)
	if new(big.Int).Neg(v).Cmp(limit) > 0 {
		return fmt.Errorf("cell: %s does not fit %d signed bits: %w", v, width, ErrValueOutOfRange)
	}
	// Two's complement: v + 2^width.
	u := new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), width))
	return b.storeBigBits(u, width)
}

// storeBigBits writes the low width bits of the non-negative u, MSB first.
func (b *Builder) storeBigBits(u *big.Int, width uint) error {
	n := int(width+7) / 8
	pad := uint(8*n) - width
	buf := new(big.Int).Lsh(u, pad).FillBytes(make([]byte, n))
	return b.w.WriteBits(buf, int(width))
}

// StoreRef appends a reference to an already-finalized cell. Ownership is
// shared: the referenced cell may be linked from any number of parents.
func (b *Builder) StoreRef(c *Cell) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("cell: nil reference")
	}
	if len(b.refs) >= MaxRefs {
		return fmt.Errorf("cell: more than %d references: %w", MaxRefs, ErrCapacityExceeded)
	}
	b.refs = append(b.refs, c)
	return nil
}

// StoreCell copies another cell's bits and references into the current
// builder ("same-cell" composition). The copy is all-or-nothing: if either
// the bits or the references would not fit, nothing is written.
func (b *Builder) StoreCell(c *Cell) error {
	if err := b.ensureLive(); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("cell: nil cell")
	}
	if c.bitLen > b.w.CapacityLeft() || len(c.refs) > MaxRefs-len(b.refs) {
		return fmt.Errorf("cell: inline copy of %d bits and %d references: %w", c.bitLen, len(c.refs), ErrCapacityExceeded)
	}
	if err := b.w.WriteBits(c.bits, c.bitLen); err != nil {
		return err
	}
	b.refs = append(b.refs, c.refs...)
	return nil
}

// Finalize freezes the accumulated content into an immutable Cell, deriving
// the level mask, validating exotic payload layout and memoizing hash and
// depth per level. The builder is spent afterwards.
func (b *Builder) Finalize() (*Cell, error) {
	if err := b.ensureLive(); err != nil {
		return nil, err
	}
	b.done = true

	c := &Cell{
		kind:   b.kind,
		bits:   b.w.Bytes(),
		bitLen: b.w.Len(),
		refs:   b.refs,
	}
	if c.kind.IsExotic() {
		if err := c.validateExotic(); err != nil {
			return nil, err
		}
	}
	c.mask = c.deriveMask()
	c.computeHashes()
	return c, nil
}
