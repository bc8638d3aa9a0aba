package bpe

import (
	"testing"

	"github.com/bpeforge/bpeforge/internal/vocab"
	"github.com/bpeforge/bpeforge/internal/wordfreq"
)

func lowerWidestCorpus() wordfreq.Map {
	return wordfreq.Map{
		"low":    5,
		"lower":  2,
		"newest": 6,
		"widest": 3,
	}
}

func TestZeroMergesYieldsCharacterVocab(t *testing.T) {
	l := NewLearner()
	l.Setup(lowerWidestCorpus())
	l.MergeLoop(0)
	v, merges, endedEarly := l.Finalize()

	if len(merges) != 0 {
		t.Fatalf("expected no merges, got %d", len(merges))
	}
	if endedEarly {
		t.Fatal("0 merges should not be reported as ended early")
	}

	want := []string{"l", "o", "w", "e", "r", "n", "s", "t", "i", "d", vocab.EOW}
	for _, sym := range want {
		if _, ok := v.Lookup(sym); !ok {
			t.Errorf("expected symbol %q in vocab after 0 merges", sym)
		}
	}
}

func TestFirstMergeIsHighestFrequencyPair(t *testing.T) {
	l := NewLearner()
	l.Setup(lowerWidestCorpus())
	l.MergeLoop(1)
	v, merges, _ := l.Finalize()

	if len(merges) != 1 {
		t.Fatalf("expected 1 merge, got %d", len(merges))
	}

	if _, ok := v.Lookup("es"); !ok {
		t.Fatalf("expected 'es' to be the first merge (freq 9 from newest+widest), vocab=%v", v.Symbols())
	}
}

func TestMergeProducesWholeWordTokensEventually(t *testing.T) {
	l := NewLearner()
	l.Setup(lowerWidestCorpus())
	l.MergeLoop(20)
	v, _, endedEarly := l.Finalize()

	for _, whole := range []string{"low" + vocab.EOW, "newest" + vocab.EOW, "widest" + vocab.EOW} {
		if _, ok := v.Lookup(whole); !ok {
			t.Errorf("expected whole-word token %q to appear, ended early=%v, vocab=%v", whole, endedEarly, v.Symbols())
		}
	}
}

func TestPairStatsMatchRecomputeAfterEveryMerge(t *testing.T) {
	l := NewLearner()
	l.Setup(lowerWidestCorpus())

	for i := 0; i < 10; i++ {
		if len(l.pairStats) == 0 {
			break
		}
		l.MergeLoop(1)
		assertPairStatsConsistent(t, l)
	}
}

// assertPairStatsConsistent recomputes pair frequencies directly from the
// current splits and compares against the incrementally maintained P, per
// the testable property in spec section 8.
func assertPairStatsConsistent(t *testing.T, l *Learner) {
	t.Helper()
	recomputed := make(map[Pair]int64)
	for wid, split := range l.splits {
		f := int64(l.counts[wid])
		for k := 0; k+1 < len(split); k++ {
			recomputed[Pair{A: split[k], B: split[k+1]}] += f
		}
	}

	if len(recomputed) != len(l.pairStats) {
		t.Fatalf("pairStats has %d entries, recompute has %d", len(l.pairStats), len(recomputed))
	}
	for p, want := range recomputed {
		got, ok := l.pairStats[p]
		if !ok || got != want {
			t.Fatalf("pairStats[%v] = %d (ok=%v), want %d", p, got, ok, want)
		}
	}
}

func TestInvertedIndexNeverUnderInclusive(t *testing.T) {
	l := NewLearner()
	l.Setup(lowerWidestCorpus())
	l.MergeLoop(5)

	for p, count := range l.pairStats {
		_ = count
		listed := make(map[int32]bool)
		for _, wid := range l.invertedIndex[p] {
			listed[wid] = true
		}
		for wid, split := range l.splits {
			if containsPair(split, p) && !listed[int32(wid)] {
				t.Fatalf("word %d contains pair %v but is missing from inverted index", wid, p)
			}
		}
	}
}

func containsPair(split []vocab.ID, p Pair) bool {
	for k := 0; k+1 < len(split); k++ {
		if split[k] == p.A && split[k+1] == p.B {
			return true
		}
	}
	return false
}

func TestAtomicWordsNeverEnterSplits(t *testing.T) {
	freq := wordfreq.Map{
		"a":   4, // single letter: atomic
		",":   10,
		"cat": 2,
	}
	l := NewLearner()
	l.Setup(freq)

	if len(l.splits) != 1 {
		t.Fatalf("expected only 'cat' to be a BPE word, got %d splits", len(l.splits))
	}
	if l.words[0] != "cat" {
		t.Fatalf("expected 'cat' as the only BPE word, got %q", l.words[0])
	}

	v := l.Vocab()
	if _, ok := v.Lookup("a"); !ok {
		t.Error("expected atomic word 'a' in vocab")
	}
	if _, ok := v.Lookup(","); !ok {
		t.Error("expected atomic token ',' in vocab")
	}
}

func TestOverlappingOccurrenceMergesBothNonOverlapping(t *testing.T) {
	// "abab" with pair (a,b) should merge both non-overlapping
	// occurrences in one pass.
	freq := wordfreq.Map{"abab": 1}
	l := NewLearner()
	l.Setup(freq)

	// (a,b) is selected first: it occurs twice in the single word, so
	// its count is 2 against 1 for (b,a) and (b,</w>).
	l.MergeLoop(1)

	split := l.splits[0]
	// After merging (a,b)->ab once across the whole word: [ab, ab, </w>]
	if len(split) != 3 {
		t.Fatalf("expected 3 symbols after first merge, got %d: %v", len(split), split)
	}
}
