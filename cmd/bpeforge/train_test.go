package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// execRoot runs rootCmd with args against a fresh flag state. Cobra keeps
// flag values from an earlier invocation, so every subcommand flag is
// reset to its default first; config.New builds a new viper instance on
// every run.
func execRoot(t *testing.T, args ...string) error {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.ExecuteContext(context.Background())
}

func TestTrainThenTokenizeRoundTrip(t *testing.T) {
	corpusDir := t.TempDir()
	outDir := t.TempDir()
	writeCorpusFile(t, corpusDir, "a.txt", "low low low lower newest widest widest\n")

	err := execRoot(t, "train",
		"--corpus", corpusDir,
		"--out", outDir,
		"--merges", "10",
		"--dim", "4",
		"--divisor", "2",
		"--workers", "1",
	)
	require.NoError(t, err)

	for _, name := range []string{
		"_unique_initial_tokens.csv",
		"_final_token_stats.csv",
		"_final_embeddings.csv",
		"_seedsForEmbeddings.csv",
	} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, statErr, "expected %s to be written", name)
	}

	err = execRoot(t, "tokenize", "--artifacts", outDir, "low widest")
	require.NoError(t, err)
}

func TestTrainRejectsMissingCorpusDir(t *testing.T) {
	outDir := t.TempDir()
	err := execRoot(t, "train",
		"--corpus", filepath.Join(outDir, "does-not-exist"),
		"--out", outDir,
		"--merges", "1",
		"--dim", "2",
		"--divisor", "1",
	)
	require.Error(t, err)
}

func TestTokenizeRequiresArtifactsFlag(t *testing.T) {
	err := execRoot(t, "tokenize", "hello world")
	require.Error(t, err)
}
