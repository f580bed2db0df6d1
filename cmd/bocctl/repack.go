package main

import (
	"fmt"

	"github.com/cellkit/cellkit/boc"
	"github.com/spf13/cobra"
)

var (
	repackIndex bool
	repackCRC   bool
)

func init() {
	cmd := newRepackCmd()
	cmd.Flags().BoolVar(&repackIndex, "index", false, "Emit the per-cell offset index")
	cmd.Flags().BoolVar(&repackCRC, "crc", false, "Append a CRC-32C checksum")
	rootCmd.AddCommand(cmd)
}

func newRepackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repack <in> <out>",
		Short: "Re-encode a BOC file with different stream options",
		Long: `The repack command decodes a bag-of-cells file and encodes it again,
normalizing the stream: legacy headers become generic, duplicate subtrees
collapse, and the offset index and checksum follow the given flags.

Example:
  bocctl repack legacy.boc state.boc
  bocctl repack state.boc checked.boc --crc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepack(args)
		},
	}
	return cmd
}

func runRepack(args []string) error {
	inPath, outPath := args[0], args[1]

	printVerbose("Decoding: %s\n", inPath)

	roots, err := boc.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", inPath, err)
	}

	opts := boc.Options{WithIndex: repackIndex, WithCRC: repackCRC}
	if err := boc.WriteFile(outPath, roots, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	printInfo("Repacked %d root(s) into %s\n", len(roots), outPath)
	return nil
}
