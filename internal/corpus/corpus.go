// Package corpus implements C3: the producer/consumer pipeline that
// turns a directory of text files into a word-frequency map. Producers
// read files and chunk lines onto the bounded queue of C2; consumers
// drain the queue, pre-split and lowercase words via C1, and build local
// frequency maps merged at the end via C4. The worker-pool shape is
// grounded on sourcegraph/conc/pool usage in
// cristian1one-virtual-vectorfs/vvfs/filesystem/concurrent_traverser.go.
package corpus

import (
	"bufio"
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/bpeforge/bpeforge/internal/presplit"
	"github.com/bpeforge/bpeforge/internal/progress"
	"github.com/bpeforge/bpeforge/internal/textscan"
	"github.com/bpeforge/bpeforge/internal/workqueue"
	"github.com/bpeforge/bpeforge/internal/wordfreq"
)

// Options parameterizes Read. Zero-value fields are filled in with the
// defaults described below.
type Options struct {
	// ChunkLines is the number of lines batched per queue push. Zero
	// defaults to 10000.
	ChunkLines int
	// QueueCapacity bounds the work queue (C2). Zero defaults to 64.
	QueueCapacity int
	// Producers and Consumers size the worker pools. Zero for either
	// chooses "1 producer if <= 4 cores else 2; consumers consume the
	// rest", split across runtime.NumCPU().
	Producers int
	Consumers int
}

func (o Options) withDefaults() Options {
	if o.ChunkLines <= 0 {
		o.ChunkLines = 10000
	}
	if o.QueueCapacity <= 0 {
		o.QueueCapacity = 64
	}
	if o.Producers <= 0 || o.Consumers <= 0 {
		cores := runtime.NumCPU()
		producers := 1
		if cores > 4 {
			producers = 2
		}
		consumers := cores - producers
		if consumers < 1 {
			consumers = 1
		}
		if o.Producers <= 0 {
			o.Producers = producers
		}
		if o.Consumers <= 0 {
			o.Consumers = consumers
		}
	}
	return o
}

type lineChunk struct {
	lines []string
	bytes int64
}

// Read ingests paths (a flat list of text file paths) and returns a
// word-frequency map of lowercased words and atomic tokens.
// prog, if non-nil, receives byte/file progress events as the pipeline
// runs; the caller is responsible for consuming them via prog.Next in a
// separate goroutine if it wants live progress output.
func Read(ctx context.Context, paths []string, opts Options, prog *progress.Progress, log zerolog.Logger) (wordfreq.Map, error) {
	opts = opts.withDefaults()

	if len(paths) == 0 {
		return wordfreq.New(), nil
	}

	queue := workqueue.New[lineChunk](opts.QueueCapacity)

	consumerResults := make([]wordfreq.Map, opts.Consumers)
	consumerPool := pool.New().WithMaxGoroutines(opts.Consumers)
	for i := 0; i < opts.Consumers; i++ {
		i := i
		consumerPool.Go(func() {
			consumerResults[i] = consume(queue)
		})
	}

	shares := partition(paths, opts.Producers)
	producerPool := pool.New().WithMaxGoroutines(opts.Producers).WithContext(ctx)
	for _, share := range shares {
		share := share
		producerPool.Go(func(ctx context.Context) error {
			produce(ctx, share, opts.ChunkLines, queue, prog, log)
			return nil
		})
	}

	// Errors are impossible: produce() handles every file-level failure
	// locally and never returns one through the pool.
	_ = producerPool.Wait()
	queue.Close()
	consumerPool.Wait()

	return wordfreq.Merge(consumerResults), nil
}

// partition splits paths into n shares by count, with the remainder
// distributed to the earliest shares.
func partition(paths []string, n int) [][]string {
	if n > len(paths) {
		n = len(paths)
	}
	if n <= 0 {
		n = 1
	}

	shares := make([][]string, n)
	base := len(paths) / n
	remainder := len(paths) % n

	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < remainder {
			size++
		}
		shares[i] = paths[idx : idx+size]
		idx += size
	}
	return shares
}

// produce opens each of its files in order, chunking lines onto queue
// and reporting progress. A file that fails to open is skipped (still
// counted complete); a read error mid-file drops the remainder of that
// file only. Neither aborts the producer or any other worker.
func produce(ctx context.Context, files []string, chunkLines int, queue *workqueue.Queue[lineChunk], prog *progress.Progress, log zerolog.Logger) {
	for _, path := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}

		f, err := os.Open(path)
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("failed to open corpus file, skipping")
			if prog != nil {
				prog.CompleteFile(path)
			}
			continue
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

		var buf []string
		var bufBytes int64
		flush := func() {
			if len(buf) == 0 {
				return
			}
			queue.Push(lineChunk{lines: buf, bytes: bufBytes})
			if prog != nil {
				prog.AddBytes(bufBytes)
			}
			buf = nil
			bufBytes = 0
		}

		for scanner.Scan() {
			line := scanner.Text()
			buf = append(buf, line)
			bufBytes += int64(len(line)) + 1
			if len(buf) >= chunkLines {
				flush()
			}
		}
		flush()

		if err := scanner.Err(); err != nil {
			log.Warn().Str("file", path).Err(err).Msg("read error mid-file, dropping remainder")
		}

		f.Close()
		if prog != nil {
			prog.CompleteFile(path)
		}
	}
}

// consume drains queue until closed and empty, building a local
// frequency map from every chunk's lines via the textscan byte-walk and
// C1 pre-splitting.
func consume(queue *workqueue.Queue[lineChunk]) wordfreq.Map {
	local := wordfreq.New()
	for {
		chunk, ok := queue.WaitAndPop()
		if !ok {
			return local
		}
		for _, line := range chunk.lines {
			textscan.Walk(line,
				func(word string) {
					for _, sub := range presplit.Split(word) {
						local.Add(lower(sub), 1)
					}
				},
				func(b byte) {
					local.Add(string(b), 1)
				},
			)
		}
	}
}

// lower is an ASCII-only lowercase, matching the core's stated scope of
// inspecting only the ASCII subset for alphabetic classification.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
