package tlb

import (
	"errors"
	"fmt"

	"github.com/cellkit/cellkit/cell"
)

// ErrUnknownDiscriminant indicates a tagged-union load saw a bit pattern
// matching no known variant.
var ErrUnknownDiscriminant = errors.New("tlb: unknown discriminant")

// Storer is implemented by types that can serialize themselves into a
// builder.
type Storer interface {
	Store(b *cell.Builder) error
}

// Loader is implemented by types that can reconstruct themselves from a
// parser.
type Loader interface {
	Load(p *cell.Parser) error
}

// StorerWith is a Storer parameterized by encode-time arguments, e.g. a bit
// width chosen by the caller.
type StorerWith[A any] interface {
	StoreWith(b *cell.Builder, args A) error
}

// LoaderWith is a Loader parameterized by decode-time arguments.
type LoaderWith[A any] interface {
	LoadWith(p *cell.Parser, args A) error
}

// Ptr constrains a pointer to T that implements Loader. It lets FromCell
// allocate the value and load into it without reflection.
type Ptr[T any] interface {
	Loader
	*T
}

// PtrWith is the argument-taking counterpart of Ptr.
type PtrWith[T, A any] interface {
	LoaderWith[A]
	*T
}

// ToCell serializes v into a fresh ordinary cell.
func ToCell(v Storer) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := v.Store(b); err != nil {
		return nil, err
	}
	return b.Finalize()
}

// ToCellWith serializes v with encode-time arguments into a fresh cell.
func ToCellWith[A any](v StorerWith[A], args A) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := v.StoreWith(b, args); err != nil {
		return nil, err
	}
	return b.Finalize()
}

// FromCell reconstructs a T from c, asserting exact consumption.
func FromCell[T any, PT Ptr[T]](c *cell.Cell) (T, error) {
	var v T
	p := c.Parse()
	if err := PT(&v).Load(p); err != nil {
		return v, err
	}
	if err := p.EnsureEmpty(); err != nil {
		return v, err
	}
	return v, nil
}

// FromCellPartial reconstructs a T from c, permitting unread remainder bits
// and references (forward-compatible schemas).
func FromCellPartial[T any, PT Ptr[T]](c *cell.Cell) (T, error) {
	var v T
	if err := PT(&v).Load(c.Parse()); err != nil {
		return v, err
	}
	return v, nil
}

// FromCellWith reconstructs a T from c with decode-time arguments, asserting
// exact consumption.
func FromCellWith[T, A any, PT PtrWith[T, A]](c *cell.Cell, args A) (T, error) {
	var v T
	p := c.Parse()
	if err := PT(&v).LoadWith(p, args); err != nil {
		return v, err
	}
	if err := p.EnsureEmpty(); err != nil {
		return v, err
	}
	return v, nil
}

// StoreRef serializes v into its own cell laid behind a reference of b.
func StoreRef(b *cell.Builder, v Storer) error {
	c, err := ToCell(v)
	if err != nil {
		return err
	}
	return b.StoreRef(c)
}

// LoadRef loads the next reference of p as a fully-consumed T.
func LoadRef[T any, PT Ptr[T]](p *cell.Parser) (T, error) {
	c, err := p.LoadRef()
	if err != nil {
		var zero T
		return zero, err
	}
	return FromCell[T, PT](c)
}

// StoreTag stores a fixed-width union discriminant.
func StoreTag(b *cell.Builder, tag uint64, width uint) error {
	return b.StoreUint(tag, width)
}

// LoadTag loads a fixed-width union discriminant. The caller matches it
// against the known variants and reports ErrUnknownDiscriminant for the
// rest; see ExpectTag for single-constructor types.
func LoadTag(p *cell.Parser, width uint) (uint64, error) {
	return p.LoadUint(width)
}

// ExpectTag loads a width-bit discriminant and fails with
// ErrUnknownDiscriminant unless it equals tag.
func ExpectTag(p *cell.Parser, tag uint64, width uint) error {
	got, err := p.LoadUint(width)
	if err != nil {
		return err
	}
	if got != tag {
		return fmt.Errorf("tlb: tag %#x, want %#x: %w", got, tag, ErrUnknownDiscriminant)
	}
	return nil
}
