//go:build !linux && !darwin

package boc

import (
	"fmt"
	"os"

	"github.com/cellkit/cellkit/cell"
)

// ReadFile loads the file at path into memory and decodes it.
func ReadFile(path string) ([]*cell.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("boc: empty file %s: %w", path, ErrMalformedHeader)
	}
	return Decode(data)
}
