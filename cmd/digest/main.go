package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := &cobra.Command{
		Use:   "digest",
		Short: "Summarize transcripts into meeting minutes",
		Long: `digest watches a directory for transcripts and writes a summary for each
new or changed file, either extractively or through an LLM rewrite with a
stride-sampled fallback.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newWatchCmd(), newSummarizeCmd(), newExtractCmd())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
