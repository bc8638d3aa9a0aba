// Command bpeforge is the CLI entry point: train builds a vocabulary and
// embeddings from a text corpus, tokenize reloads a trained vocabulary
// and segments a sentence against it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bpeforge/bpeforge/internal/bpeerr"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a failure's bpeerr.Kind to the process exit code
// documented in the CLI's external interface: 1 for a configuration
// problem the caller can fix, 2 for anything else fatal.
func exitCode(err error) int {
	if bpeerr.KindOf(err) == bpeerr.KindConfig {
		return 1
	}
	return 2
}
