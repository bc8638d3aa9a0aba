// Package progress implements the shared, event-driven progress record
// consulted by the corpus reader (C3): total/consumed byte counts and a
// completed-file counter, guarded by a mutex and signalled through a
// condition variable rather than polled. It is scoped to a single
// training run and owned by the driver goroutine that starts it — never a
// process-global.
package progress

import "sync"

// Progress tracks byte and file progress for one corpus read.
type Progress struct {
	mu   sync.Mutex
	cond *sync.Cond

	totalBytes    int64
	bytesRead     int64
	filesTotal    int
	filesComplete int
	lastFile      string
	done          bool
}

// New returns a Progress scoped to totalBytes of input spread across
// filesTotal files.
func New(totalBytes int64, filesTotal int) *Progress {
	p := &Progress{totalBytes: totalBytes, filesTotal: filesTotal}
	p.cond = sync.NewCond(&p.mu)
	if filesTotal == 0 {
		p.done = true
	}
	return p
}

// AddBytes records that a producer has pushed a full chunk of n bytes.
func (p *Progress) AddBytes(n int64) {
	p.mu.Lock()
	p.bytesRead += n
	p.mu.Unlock()
}

// CompleteFile records that a producer finished (or skipped) one file and
// wakes any goroutine waiting in Next.
func (p *Progress) CompleteFile(path string) {
	p.mu.Lock()
	p.filesComplete++
	p.lastFile = path
	if p.filesComplete >= p.filesTotal {
		p.done = true
	}
	p.cond.Signal()
	p.mu.Unlock()
}

// Snapshot is an immutable view of progress state at one point in time.
type Snapshot struct {
	TotalBytes    int64
	BytesRead     int64
	FilesTotal    int
	FilesComplete int
	LastFile      string
}

// Next blocks until the next file-completion event (or until every file
// has completed) and returns a snapshot plus whether the run is finished.
// It is event-driven: callers are expected to call Next in a loop rather
// than poll, emitting one line per increment. If multiple files complete
// before a blocked caller is rescheduled, those completions coalesce into
// one snapshot rather than one Next call each.
func (p *Progress) Next() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	startComplete := p.filesComplete
	for p.filesComplete == startComplete && !p.done {
		p.cond.Wait()
	}

	snap := Snapshot{
		TotalBytes:    p.totalBytes,
		BytesRead:     p.bytesRead,
		FilesTotal:    p.filesTotal,
		FilesComplete: p.filesComplete,
		LastFile:      p.lastFile,
	}
	return snap, p.done
}
