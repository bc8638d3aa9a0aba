package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "bpeforge",
	Short:         "Train and apply byte-pair-encoded subword vocabularies",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(tokenizeCmd)
}
