package bitstr

// Writer is a write cursor over a fixed-capacity bit string. The zero value
// is not usable; create one with NewWriter.
type Writer struct {
	data []byte
	len  int // bits written so far
	cap  int // maximum bits
}

// NewWriter returns a writer that accepts up to capBits bits.
func NewWriter(capBits int) *Writer {
	return &Writer{
		data: make([]byte, (capBits+7)/8),
		cap:  capBits,
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int { return w.len }

// CapacityLeft returns the number of bits that can still be written.
func (w *Writer) CapacityLeft() int { return w.cap - w.len }

// Bytes returns the accumulated bits packed MSB-first, right-padded with
// zero bits to a whole byte. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte { return w.data[:(w.len+7)/8] }

// setBit appends one bit without a capacity check.
func (w *Writer) setBit(bit bool) {
	if bit {
		w.data[w.len>>3] |= 1 << (7 - uint(w.len&7))
	}
	w.len++
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) error {
	if w.len >= w.cap {
		return ErrCapacityExceeded
	}
	w.setBit(bit)
	return nil
}

// WriteUint appends the low width bits of v, most significant bit first.
// width must be in [0, 64] and v must fit in width bits.
func (w *Writer) WriteUint(v uint64, width uint) error {
	if width > MaxIntWidth {
		return ErrValueOutOfRange
	}
	if width < MaxIntWidth && v>>width != 0 {
		return ErrValueOutOfRange
	}
	if int(width) > w.CapacityLeft() {
		return ErrCapacityExceeded
	}
	for i := int(width) - 1; i >= 0; i-- {
		w.setBit(v>>uint(i)&1 == 1)
	}
	return nil
}

// WriteInt appends v as a width-bit two's complement integer, most
// significant bit first. width must be in [0, 64] and v must be
// representable in width signed bits.
func (w *Writer) WriteInt(v int64, width uint) error {
	if width > MaxIntWidth {
		return ErrValueOutOfRange
	}
	if width == 0 {
		if v != 0 {
			return ErrValueOutOfRange
		}
		return nil
	}
	if width < MaxIntWidth {
		min := -(int64(1) << (width - 1))
		max := int64(1)<<(width-1) - 1
		if v < min || v > max {
			return ErrValueOutOfRange
		}
	}
	u := uint64(v)
	if width < MaxIntWidth {
		u &= 1<<width - 1
	}
	if int(width) > w.CapacityLeft() {
		return ErrCapacityExceeded
	}
	for i := int(width) - 1; i >= 0; i-- {
		w.setBit(u>>uint(i)&1 == 1)
	}
	return nil
}

// WriteBytes appends all bits of p.
func (w *Writer) WriteBytes(p []byte) error {
	return w.WriteBits(p, 8*len(p))
}

// WriteBits appends the first count bits of src (packed MSB-first).
func (w *Writer) WriteBits(src []byte, count int) error {
	if count < 0 || count > 8*len(src) {
		return ErrValueOutOfRange
	}
	if count > w.CapacityLeft() {
		return ErrCapacityExceeded
	}
	if w.len&7 == 0 {
		// Byte-aligned fast path.
		n := count / 8
		copy(w.data[w.len>>3:], src[:n])
		w.len += 8 * n
		for i := 8 * n; i < count; i++ {
			w.setBit(src[i>>3]>>(7-uint(i&7))&1 == 1)
		}
		return nil
	}
	for i := 0; i < count; i++ {
		w.setBit(src[i>>3]>>(7-uint(i&7))&1 == 1)
	}
	return nil
}
