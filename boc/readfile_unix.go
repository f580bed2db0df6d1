//go:build linux || darwin

package boc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/cellkit/cellkit/cell"
)

// ReadFile memory-maps the file at path read-only and decodes it. Decoded
// cells copy their payload, so the mapping is released before returning.
func ReadFile(path string) ([]*cell.Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		return nil, fmt.Errorf("boc: empty file %s: %w", path, ErrMalformedHeader)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("boc: mmap %s: %w", path, err)
	}
	defer func() { _ = unix.Munmap(data) }()

	return Decode(data)
}
