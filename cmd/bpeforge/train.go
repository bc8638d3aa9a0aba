package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"github.com/bpeforge/bpeforge/internal/artifact"
	"github.com/bpeforge/bpeforge/internal/bpe"
	"github.com/bpeforge/bpeforge/internal/bpeerr"
	"github.com/bpeforge/bpeforge/internal/config"
	"github.com/bpeforge/bpeforge/internal/corpus"
	"github.com/bpeforge/bpeforge/internal/embedding"
	"github.com/bpeforge/bpeforge/internal/logging"
	"github.com/bpeforge/bpeforge/internal/progress"
	"github.com/bpeforge/bpeforge/internal/stats"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Learn a BPE vocabulary and embeddings from a text corpus",
	RunE:  runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.String("corpus", "", "directory of UTF-8 text files to train on")
	f.String("out", "", "destination directory for trained artifacts")
	f.Int("merges", 0, "number of BPE merge rounds")
	f.Int("dim", 64, "embedding dimension")
	f.Int("divisor", 1, "formula divisor d_val")
	f.String("formula", "deterministic", "embedding scheme: deterministic or uniform")
	f.String("seed-range", "0,1", "comma-separated seed range \"min,max\"")
	f.String("log-level", "info", "debug, info, warn, or error")
	f.Int("workers", 0, "consumer worker count (0 chooses from hardware parallelism)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	for _, flag := range []struct{ name, key string }{
		{"corpus", "corpus"},
		{"out", "out"},
		{"merges", "merges"},
		{"dim", "dim"},
		{"divisor", "divisor"},
		{"formula", "formula"},
		{"log-level", "log_level"},
		{"workers", "workers"},
	} {
		if err := v.BindPFlag(flag.key, cmd.Flags().Lookup(flag.name)); err != nil {
			return bpeerr.Config("train.runTrain", "binding --%s: %v", flag.name, err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	if seedRange, _ := cmd.Flags().GetString("seed-range"); cmd.Flags().Changed("seed-range") && seedRange != "" {
		min, max, err := parseSeedRange(seedRange)
		if err != nil {
			return bpeerr.Config("train.runTrain", "parsing --seed-range %q: %v", seedRange, err)
		}
		cfg.SeedMin, cfg.SeedMax = min, max
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, isTerminal())
	runID := uuid.New().String()
	log = log.With().Str("run_id", runID).Logger()

	paths, totalBytes, err := listCorpusFiles(cfg.CorpusDir)
	if err != nil {
		return bpeerr.Wrap(bpeerr.KindIO, "train.runTrain", err)
	}
	log.Info().Int("files", len(paths)).Int64("bytes", totalBytes).Msg("starting corpus read")

	prog := progress.New(totalBytes, len(paths))
	readOpts := corpus.Options{Consumers: cfg.Workers}

	type readResult struct {
		freq map[string]int
		err  error
	}
	resultCh := make(chan readResult, 1)
	go func() {
		freq, err := corpus.Read(cmd.Context(), paths, readOpts, prog, log)
		resultCh <- readResult{freq: freq, err: err}
	}()

	bar := progressbar.New(int(totalBytes))
	var lastBytes int64
	for {
		snap, done := prog.Next()
		if d := snap.BytesRead - lastBytes; d > 0 {
			bar.Add(int(d))
			lastBytes = snap.BytesRead
		}
		if done {
			break
		}
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	result := <-resultCh
	if result.err != nil {
		return bpeerr.Wrap(bpeerr.KindIO, "train.runTrain", result.err)
	}
	log.Info().Int("distinct_keys", len(result.freq)).Msg("corpus read complete")

	learner := bpe.NewLearner()
	learner.Setup(result.freq)
	initialTokens := append([]string(nil), learner.Vocab().Symbols()...)

	learner.MergeLoop(cfg.NumMerges)
	vocab, merges, endedEarly := learner.Finalize()
	log.Info().Int("merges_applied", len(merges)).Bool("ended_early", endedEarly).Msg("BPE training complete")

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sigma := stats.Build(result.freq, vocab.Symbols(), workers)

	var scheme embedding.Scheme
	if cfg.Formula == "uniform" {
		scheme = embedding.UniformRandom
	}
	table, err := embedding.Build(vocab.Symbols(), embedding.Config{
		Dim:     cfg.Dim,
		Divisor: cfg.Divisor,
		Scheme:  scheme,
		Min:     cfg.SeedMin,
		Max:     cfg.SeedMax,
	})
	if err != nil {
		// computeMatrix already classifies its own failures (KindConfig
		// for an unimplemented accelerator stub); pass the Kind through
		// rather than relabeling it.
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return bpeerr.Wrap(bpeerr.KindIO, "train.runTrain", err)
	}

	writers := []struct {
		name string
		fn   func() error
	}{
		{"_unique_initial_tokens.csv", func() error {
			return artifact.WriteUniqueInitialTokens(filepath.Join(cfg.OutDir, "_unique_initial_tokens.csv"), initialTokens)
		}},
		{"_final_token_stats.csv", func() error {
			return artifact.WriteFinalTokenStats(filepath.Join(cfg.OutDir, "_final_token_stats.csv"), sigma)
		}},
		{"_final_embeddings.csv", func() error {
			return artifact.WriteEmbeddings(filepath.Join(cfg.OutDir, "_final_embeddings.csv"), table)
		}},
		{"_seedsForEmbeddings.csv", func() error {
			return artifact.WriteSeeds(filepath.Join(cfg.OutDir, "_seedsForEmbeddings.csv"), table.Tokens, table.Seeds)
		}},
	}
	for _, w := range writers {
		if err := w.fn(); err != nil {
			return bpeerr.Wrap(bpeerr.KindIO, "train.runTrain", fmt.Errorf("writing %s: %w", w.name, err))
		}
	}

	log.Info().Str("out", cfg.OutDir).Int("vocab_size", vocab.Len()).Msg("training artifacts written")
	return nil
}

// listCorpusFiles walks dir recursively and returns every regular file's
// path plus the sum of their sizes, for sizing the progress bar before
// corpus.Read starts.
func listCorpusFiles(dir string) ([]string, int64, error) {
	var paths []string
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		paths = append(paths, path)
		total += info.Size()
		return nil
	})
	return paths, total, err
}

func parseSeedRange(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want \"min,max\", got %q", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func isTerminal() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
