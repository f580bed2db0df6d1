package tlb

import "github.com/cellkit/cellkit/cell"

// Either is the classic two-variant union:
//
//	left$0  {X:Type} {Y:Type} value:X = Either X Y;
//	right$1 {X:Type} {Y:Type} value:Y = Either X Y;
type Either[L, R any] struct {
	IsRight bool
	Left    L
	Right   R
}

// Left returns an Either holding the left variant.
func Left[L, R any](v L) Either[L, R] {
	return Either[L, R]{Left: v}
}

// Right returns an Either holding the right variant.
func Right[L, R any](v R) Either[L, R] {
	return Either[L, R]{IsRight: true, Right: v}
}

// StoreEither stores the one-bit discriminant, then the selected variant.
func StoreEither[L, R Storer](b *cell.Builder, e Either[L, R]) error {
	if err := b.StoreBit(e.IsRight); err != nil {
		return err
	}
	if e.IsRight {
		return e.Right.Store(b)
	}
	return e.Left.Store(b)
}

// LoadEither loads the one-bit discriminant, then the selected variant.
func LoadEither[L, R any, PL Ptr[L], PR Ptr[R]](p *cell.Parser) (Either[L, R], error) {
	var e Either[L, R]
	right, err := p.LoadBit()
	if err != nil {
		return e, err
	}
	e.IsRight = right
	if right {
		err = PR(&e.Right).Load(p)
	} else {
		err = PL(&e.Left).Load(p)
	}
	return e, err
}

// StoreMaybe stores a presence bit, then v when non-nil:
//
//	nothing$0 {X:Type} = Maybe X;
//	just$1 {X:Type} value:X = Maybe X;
func StoreMaybe[T Storer](b *cell.Builder, v *T) error {
	if err := b.StoreBit(v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return (*v).Store(b)
}

// LoadMaybe loads a presence bit, then the value when present.
func LoadMaybe[T any, PT Ptr[T]](p *cell.Parser) (*T, error) {
	present, err := p.LoadBit()
	if err != nil || !present {
		return nil, err
	}
	var v T
	if err := PT(&v).Load(p); err != nil {
		return nil, err
	}
	return &v, nil
}
