package progress

import (
	"testing"
	"time"
)

func TestEmptyCorpusIsImmediatelyDone(t *testing.T) {
	p := New(0, 0)
	snap, done := p.Next()
	if !done {
		t.Fatal("expected done=true for zero files")
	}
	if snap.FilesComplete != 0 || snap.FilesTotal != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestConvergesAfterNFileCompletions(t *testing.T) {
	const n = 5
	p := New(1000, n)

	go func() {
		for i := 0; i < n; i++ {
			time.Sleep(time.Millisecond)
			p.AddBytes(100)
			p.CompleteFile("file")
		}
	}()

	lines := 0
	done := false
	for !done {
		var snap Snapshot
		snap, done = p.Next()
		lines++
		if snap.FilesComplete > n {
			t.Fatalf("filesComplete exceeded total: %+v", snap)
		}
	}

	if lines != n {
		t.Fatalf("emitted %d progress lines, want exactly %d", lines, n)
	}
}
