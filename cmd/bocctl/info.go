package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/cellkit/cellkit/boc"
	"github.com/cellkit/cellkit/cell"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Decode a BOC file and report its structure",
		Long: `The info command decodes a bag-of-cells file and displays basic
metadata: root cells, unique cell count, maximum depth and root hashes.

Example:
  bocctl info state.boc
  bocctl info state.boc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type bocInfo struct {
	File       string         `json:"file"`
	SizeBytes  int64          `json:"size_bytes"`
	Roots      int            `json:"roots"`
	Cells      int            `json:"cells"`
	MaxDepth   uint16         `json:"max_depth"`
	Kinds      map[string]int `json:"kinds"`
	RootHashes []string       `json:"root_hashes"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Decoding: %s\n", path)

	roots, err := boc.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	info := bocInfo{
		File:  path,
		Roots: len(roots),
		Kinds: make(map[string]int),
	}
	if stat, err := os.Stat(path); err == nil {
		info.SizeBytes = stat.Size()
	}

	seen := make(map[*cell.Cell]bool)
	var walk func(c *cell.Cell)
	walk = func(c *cell.Cell) {
		if seen[c] {
			return
		}
		seen[c] = true
		info.Cells++
		info.Kinds[c.Kind().String()]++
		for _, r := range c.Refs() {
			walk(r)
		}
	}
	for _, r := range roots {
		walk(r)
		if d := r.Depth(0); d > info.MaxDepth {
			info.MaxDepth = d
		}
		h := r.Hash(0)
		info.RootHashes = append(info.RootHashes, hex.EncodeToString(h[:]))
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nBag-of-cells:\n")
	printInfo("  File: %s\n", info.File)
	printInfo("  Size: %d bytes\n", info.SizeBytes)
	printInfo("  Roots: %d\n", info.Roots)
	printInfo("  Cells: %d\n", info.Cells)
	printInfo("  Max depth: %d\n", info.MaxDepth)
	for kind, n := range info.Kinds {
		printInfo("  %s: %d\n", kind, n)
	}
	printInfo("\nRoot hashes:\n")
	for i, h := range info.RootHashes {
		printInfo("  %d: %s\n", i, h)
	}
	return nil
}
