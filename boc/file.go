package boc

import (
	"fmt"
	"os"

	"github.com/cellkit/cellkit/cell"
)

// WriteFile encodes the DAG rooted at the given cells and writes the stream
// to path.
func WriteFile(path string, roots []*cell.Cell, opts Options) error {
	data, err := Encode(roots, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("boc: write %s: %w", path, err)
	}
	return nil
}
