package bitstr

// Reader is a read cursor over an MSB-first bit string. It never mutates the
// underlying bytes.
type Reader struct {
	data []byte
	off  int // next bit to read
	len  int // total bits
}

// NewReader returns a reader over the first bitLen bits of data.
func NewReader(data []byte, bitLen int) *Reader {
	return &Reader{data: data, len: bitLen}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return r.len - r.off }

// getBit consumes one bit without a bounds check.
func (r *Reader) getBit() bool {
	bit := r.data[r.off>>3]>>(7-uint(r.off&7))&1 == 1
	r.off++
	return bit
}

// ReadBit consumes and returns a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.off >= r.len {
		return false, ErrUnexpectedEndOfData
	}
	return r.getBit(), nil
}

// ReadUint consumes width bits and returns them as an unsigned integer,
// most significant bit first. width must be in [0, 64].
func (r *Reader) ReadUint(width uint) (uint64, error) {
	if width > MaxIntWidth {
		return 0, ErrValueOutOfRange
	}
	if int(width) > r.Remaining() {
		return 0, ErrUnexpectedEndOfData
	}
	var v uint64
	for i := uint(0); i < width; i++ {
		v <<= 1
		if r.getBit() {
			v |= 1
		}
	}
	return v, nil
}

// ReadInt consumes width bits and returns them as a two's complement signed
// integer. width must be in [0, 64].
func (r *Reader) ReadInt(width uint) (int64, error) {
	u, err := r.ReadUint(width)
	if err != nil {
		return 0, err
	}
	if width == 0 || width == MaxIntWidth {
		return int64(u), nil
	}
	if u>>(width-1)&1 == 1 {
		u |= ^uint64(0) << width
	}
	return int64(u), nil
}

// ReadBytes consumes 8*n bits and returns them as n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.ReadBits(8 * n)
}

// ReadBits consumes count bits and returns them packed MSB-first,
// right-padded with zero bits to a whole byte.
func (r *Reader) ReadBits(count int) ([]byte, error) {
	if count < 0 {
		return nil, ErrValueOutOfRange
	}
	if count > r.Remaining() {
		return nil, ErrUnexpectedEndOfData
	}
	out := make([]byte, (count+7)/8)
	if r.off&7 == 0 {
		// Byte-aligned fast path.
		n := count / 8
		copy(out, r.data[r.off>>3:r.off>>3+n])
		r.off += 8 * n
		for i := 8 * n; i < count; i++ {
			if r.getBit() {
				out[i>>3] |= 1 << (7 - uint(i&7))
			}
		}
		return out, nil
	}
	for i := 0; i < count; i++ {
		if r.getBit() {
			out[i>>3] |= 1 << (7 - uint(i&7))
		}
	}
	return out, nil
}
