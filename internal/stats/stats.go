// Package stats implements C7: the final per-token frequency table Σ.
// Every BPE word in W is re-segmented against the finished vocabulary and
// each emitted symbol's share of W[w] is tallied; atomic tokens carry
// their own count straight across. The partitioning and worker-pool shape
// is grounded on the same sourcegraph/conc pool usage the corpus reader
// (C3) uses for its own fan-out, per
// cristian1one-virtual-vectorfs/vvfs/filesystem/concurrent_traverser.go.
package stats

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/bpeforge/bpeforge/internal/bpe"
	"github.com/bpeforge/bpeforge/internal/segment"
	"github.com/bpeforge/bpeforge/internal/wordfreq"
)

// Build computes Σ from freq (W) and a vocabulary already sorted by
// descending symbol length. Work is partitioned into shards processed by
// up to workers goroutines, each accumulating a local map, merged at the
// end via the C4 tree-reduce. workers <= 1 runs single-threaded.
func Build(freq wordfreq.Map, vocabSortedByLengthDesc []string, workers int) wordfreq.Map {
	if workers < 1 {
		workers = 1
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	if len(words) == 0 {
		return wordfreq.New()
	}
	if workers > len(words) {
		workers = len(words)
	}

	shards := make([]wordfreq.Map, workers)
	shardSize := (len(words) + workers - 1) / workers

	p := pool.New().WithMaxGoroutines(workers).WithContext(context.Background())
	for shardIdx := 0; shardIdx < workers; shardIdx++ {
		shardIdx := shardIdx
		start := shardIdx * shardSize
		end := start + shardSize
		if start >= len(words) {
			shards[shardIdx] = wordfreq.New()
			continue
		}
		if end > len(words) {
			end = len(words)
		}

		p.Go(func(ctx context.Context) error {
			local := wordfreq.New()
			seg := segment.New(vocabSortedByLengthDesc)
			for _, w := range words[start:end] {
				accumulate(local, seg, w, freq[w])
			}
			shards[shardIdx] = local
			return nil
		})
	}
	// Errors are impossible here (accumulate never fails); Wait only
	// synchronizes completion.
	_ = p.Wait()

	return wordfreq.Merge(shards)
}

// accumulate adds one word's contribution to Σ: an atomic token adds its
// own count directly, a BPE word is re-segmented (EOW retained) and its
// count is added once per emitted symbol.
func accumulate(sigma wordfreq.Map, seg *segment.Segmenter, w string, count int) {
	if !bpe.IsBPEWord(w) {
		sigma.Add(w, count)
		return
	}
	for _, sym := range seg.SegmentWord(w) {
		sigma.Add(sym, count)
	}
}
