package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bpeforge/bpeforge/internal/progress"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestReadBuildsWordFrequencyMap(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTempFile(t, dir, "a.txt", "low low low\n"),
		writeTempFile(t, dir, "b.txt", "lower, lower!\n"),
	}

	freq, err := Read(context.Background(), paths, Options{Producers: 1, Consumers: 1}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if freq["low"] != 3 {
		t.Errorf("low = %d, want 3", freq["low"])
	}
	if freq["lower"] != 2 {
		t.Errorf("lower = %d, want 2", freq["lower"])
	}
	if freq[","] != 1 {
		t.Errorf(", = %d, want 1", freq[","])
	}
	if freq["!"] != 1 {
		t.Errorf("! = %d, want 1", freq["!"])
	}
}

func TestReadEmptyPathListYieldsEmptyMap(t *testing.T) {
	freq, err := Read(context.Background(), nil, Options{}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(freq) != 0 {
		t.Errorf("expected empty map, got %d entries", len(freq))
	}
}

func TestReadSkipsUnopenableFileAndStillConverges(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "good.txt", "cat dog\n")
	missing := filepath.Join(dir, "does-not-exist.txt")

	prog := progress.New(0, 2)
	freq, err := Read(context.Background(), []string{good, missing}, Options{Producers: 1, Consumers: 1}, prog, zerolog.Nop())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if freq["cat"] != 1 || freq["dog"] != 1 {
		t.Fatalf("unexpected frequency map: %+v", freq)
	}

	snap, done := prog.Next()
	if !done {
		t.Fatalf("expected progress to converge, got snapshot %+v", snap)
	}
	if snap.FilesComplete != 2 {
		t.Errorf("FilesComplete = %d, want 2 (missing file still counts)", snap.FilesComplete)
	}
}

func TestParallelEquivalenceAcrossConsumerCounts(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTempFile(t, dir, "1.txt", "the quick brown fox jumps over the lazy dog\n"),
		writeTempFile(t, dir, "2.txt", "the Quick Brown FOX, jumps! over the lazy dog?\n"),
	}

	var results []map[string]int
	for _, consumers := range []int{1, 2, 4} {
		freq, err := Read(context.Background(), paths, Options{Producers: 1, Consumers: consumers}, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("Read(consumers=%d): %v", consumers, err)
		}
		results = append(results, freq)
	}

	for i := 1; i < len(results); i++ {
		if len(results[i]) != len(results[0]) {
			t.Fatalf("result %d has %d keys, result 0 has %d", i, len(results[i]), len(results[0]))
		}
		for k, v := range results[0] {
			if results[i][k] != v {
				t.Errorf("result %d: %q = %d, want %d", i, k, results[i][k], v)
			}
		}
	}
}
