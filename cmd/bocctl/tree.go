package main

import (
	"fmt"
	"strings"

	"github.com/cellkit/cellkit/boc"
	"github.com/cellkit/cellkit/cell"
	"github.com/spf13/cobra"
)

var treeDepth int

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the cell tree of a BOC file",
		Long: `The tree command displays the decoded cell DAG as an indented tree.
Cells that appear more than once are expanded only at their first occurrence.

Example:
  bocctl tree state.boc
  bocctl tree state.boc --depth 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]

	printVerbose("Decoding: %s\n", path)

	roots, err := boc.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	seen := make(map[*cell.Cell]bool)
	var walk func(c *cell.Cell, depth int)
	walk = func(c *cell.Cell, depth int) {
		printInfo("%s%s\n", strings.Repeat("  ", depth), c)
		if seen[c] {
			if c.RefCount() > 0 {
				printInfo("%s(shared subtree, shown above)\n", strings.Repeat("  ", depth+1))
			}
			return
		}
		seen[c] = true
		if treeDepth > 0 && depth+1 >= treeDepth {
			return
		}
		for _, r := range c.Refs() {
			walk(r, depth+1)
		}
	}
	for i, r := range roots {
		printInfo("root %d:\n", i)
		walk(r, 1)
	}
	return nil
}
