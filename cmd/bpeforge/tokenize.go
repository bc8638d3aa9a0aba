package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bpeforge/bpeforge/internal/bpeerr"
	"github.com/bpeforge/bpeforge/internal/logging"
	"github.com/bpeforge/bpeforge/pkg/bpeforge"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize --artifacts <dir> \"sentence to segment\"",
	Short: "Reload a trained vocabulary and segment a sentence",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("artifacts", "", "directory holding _final_token_stats.csv")
	tokenizeCmd.Flags().String("log-level", "info", "debug, info, warn, or error")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	artifactsDir, _ := cmd.Flags().GetString("artifacts")
	if artifactsDir == "" {
		return bpeerr.Config("tokenize.runTokenize", "--artifacts is required")
	}
	level, _ := cmd.Flags().GetString("log-level")

	log := logging.New(level, isTerminal())

	tok, err := bpeforge.LoadTokenizer(artifactsDir, log)
	if err != nil {
		return bpeerr.Wrap(bpeerr.KindIO, "tokenize.runTokenize", err)
	}

	sentence := strings.Join(args, " ")
	symbols := tok.Segment(sentence)
	fmt.Println(strings.Join(symbols, " "))
	return nil
}
