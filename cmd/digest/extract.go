package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
)

func newExtractCmd() *cobra.Command {
	var opts config.ExtractiveConfig

	cmd := &cobra.Command{
		Use:   "extract INPUT",
		Short: "Print the extractive summary of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if opts.Ratio <= 0 || opts.Ratio > 1 {
				return fmt.Errorf("--ratio must be in (0,1], got %v", opts.Ratio)
			}

			fmt.Fprintln(cmd.OutOrStdout(), newScorer(opts).Summarize(string(data)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.Ratio, "ratio", 0.3, "share of sentences to keep")
	cmd.Flags().IntVar(&opts.MaxLength, "max-length", 200, "maximum summary length in characters")
	cmd.Flags().IntVar(&opts.MinLength, "min-length", 50, "texts shorter than this are returned unchanged")
	return cmd
}
