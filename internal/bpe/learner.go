// Package bpe implements C5: the incremental BPE learner. Its merge loop
// is the dominant cost of training, so the whole package is built around
// an inverted-index trick — P and I are kept in lockstep as merges are
// applied, so the per-merge cost is proportional to the words containing
// the winning pair, not to the whole corpus.
package bpe

import (
	"sort"

	"github.com/bpeforge/bpeforge/internal/vocab"
	"github.com/bpeforge/bpeforge/internal/wordfreq"
)

// Learner owns W', S, P, and I for the duration of one training run. It
// is single-threaded by design: every field below is touched only by the
// goroutine driving MergeLoop, per the concurrency model in the design
// doc — any parallel implementation would need explicit sharding of P
// and I, which this implementation does not attempt.
type Learner struct {
	vocab *vocab.Vocab
	eow   vocab.ID

	words  []string    // wordID -> original word text, diagnostics only
	counts []int32     // wordID -> W'[w]
	splits [][]vocab.ID // wordID -> S[w]

	pairStats     map[Pair]int64
	pairSeq       map[Pair]int64 // creation order, used only to break ties deterministically
	invertedIndex map[Pair][]int32
	seqCounter    int64

	seenRound []int32 // wordID -> last round (1-based) it was processed in, for on-the-fly dedup
	merges    []MergeOp
	endedEarly bool
}

// NewLearner returns an empty Learner.
func NewLearner() *Learner {
	return &Learner{
		pairStats:     make(map[Pair]int64),
		pairSeq:       make(map[Pair]int64),
		invertedIndex: make(map[Pair][]int32),
	}
}

// Setup classifies every key of freq into atomic tokens (inserted
// directly into V) and BPE words (kept in W' with an initial
// character-level split terminated by EOW), then builds the initial pair
// statistics and inverted index by scanning every split once.
func (l *Learner) Setup(freq wordfreq.Map) {
	l.vocab = vocab.New()
	l.eow = l.vocab.Intern(vocab.EOW)

	// Sort keys for a stable build order; map iteration order is random
	// in Go and would otherwise make pairSeq (and thus tie-breaking)
	// nondeterministic across runs on the same input.
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Strings(words)

	for _, w := range words {
		count := freq[w]
		if !isBPEWord(w) {
			l.vocab.Intern(w)
			continue
		}

		split := make([]vocab.ID, 0, len(w)+1)
		for i := 0; i < len(w); i++ {
			split = append(split, l.vocab.Intern(string(w[i])))
		}
		split = append(split, l.eow)

		l.words = append(l.words, w)
		l.counts = append(l.counts, int32(count))
		l.splits = append(l.splits, split)
	}

	l.seenRound = make([]int32, len(l.splits))
	l.buildPairStats()
}

// isBPEWord reports whether w is a BPE word rather than an atomic token:
// non-empty, starting with an ASCII letter, and longer than one byte.
func isBPEWord(w string) bool {
	if len(w) == 0 || len(w) == 1 {
		return false
	}
	c := w[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsBPEWord exports the same classification used during Setup, so other
// packages (notably internal/stats) that need to walk W the same way C5
// did don't have to duplicate or drift from this rule.
func IsBPEWord(w string) bool { return isBPEWord(w) }

func (l *Learner) buildPairStats() {
	for wid, split := range l.splits {
		f := int64(l.counts[wid])
		for k := 0; k+1 < len(split); k++ {
			p := Pair{A: split[k], B: split[k+1]}
			l.incPair(p, f)
			l.appendIndex(p, int32(wid))
		}
	}
}

func (l *Learner) incPair(p Pair, f int64) {
	if _, ok := l.pairStats[p]; !ok {
		l.pairSeq[p] = l.seqCounter
		l.seqCounter++
	}
	l.pairStats[p] += f
}

func (l *Learner) decPair(p Pair, f int64) {
	v, ok := l.pairStats[p]
	if !ok {
		return
	}
	v -= f
	if v <= 0 {
		delete(l.pairStats, p)
		return
	}
	l.pairStats[p] = v
}

func (l *Learner) appendIndex(p Pair, wid int32) {
	l.invertedIndex[p] = append(l.invertedIndex[p], wid)
}

// MergeLoop runs at most numMerges merge steps. It stops early (recording
// EndedEarly) if P is exhausted before numMerges is reached — both are
// normal terminations.
func (l *Learner) MergeLoop(numMerges int) {
	for round := 0; round < numMerges; round++ {
		if len(l.pairStats) == 0 {
			l.endedEarly = true
			return
		}

		p := l.selectBest()
		t := l.vocab.Intern(l.vocab.Symbol(p.A) + l.vocab.Symbol(p.B))

		wordIDs := l.invertedIndex[p]
		marker := int32(len(l.merges) + 1) // 0 is the zero-value sentinel for "never seen"
		for _, wid := range wordIDs {
			if l.seenRound[wid] == marker {
				continue
			}
			l.seenRound[wid] = marker

			newSplit, changed := l.rebuildWord(l.splits[wid], p.A, p.B, t, int64(l.counts[wid]), int32(wid))
			if changed {
				l.splits[wid] = newSplit
			}
		}

		delete(l.pairStats, p)
		delete(l.invertedIndex, p)
		l.merges = append(l.merges, MergeOp{A: p.A, B: p.B, New: t})
	}
}

// selectBest finds the pair maximizing P[p], breaking ties by the pair's
// creation order (first encountered), making the result deterministic
// across runs despite Go's randomized map iteration order. A linear
// max-scan in place of a priority structure keeps per-merge cost
// proportional to the live pair count.
func (l *Learner) selectBest() Pair {
	var best Pair
	var bestCount, bestSeq int64
	first := true

	for p, c := range l.pairStats {
		seq := l.pairSeq[p]
		if first || c > bestCount || (c == bestCount && seq < bestSeq) {
			best, bestCount, bestSeq, first = p, c, seq, false
		}
	}
	return best
}

// rebuildWord replays one word's symbol sequence against the winning
// pair (a, b) -> t. It deliberately reads neighbor symbols from the
// ORIGINAL sym slice (sym[k-1], sym[k+2]) rather than from the
// in-progress rebuild: a naive left-to-right scan over the original
// symbols, since using the freshly merged neighbor instead would change
// the resulting frequencies for inputs like "a b a b".
func (l *Learner) rebuildWord(sym []vocab.ID, a, b, t vocab.ID, f int64, wid int32) ([]vocab.ID, bool) {
	n := len(sym)
	out := make([]vocab.ID, 0, n)
	changed := false

	k := 0
	for k < n {
		if k+1 < n && sym[k] == a && sym[k+1] == b {
			changed = true

			if k > 0 {
				left := sym[k-1]
				l.decPair(Pair{A: left, B: a}, f)
				l.incPair(Pair{A: left, B: t}, f)
				l.appendIndex(Pair{A: left, B: t}, wid)
			}
			if k+2 < n {
				right := sym[k+2]
				l.decPair(Pair{A: b, B: right}, f)
				l.incPair(Pair{A: t, B: right}, f)
				l.appendIndex(Pair{A: t, B: right}, wid)
			}

			out = append(out, t)
			k += 2
		} else {
			out = append(out, sym[k])
			k++
		}
	}

	if !changed {
		return sym, false
	}

	return out, true
}

// Finalize sorts V by descending symbol length (so C6 can greedy
// longest-prefix match) and returns the finished vocabulary, the merge
// history, and whether training ended before exhausting its merge
// budget. The sort renumbers vocabulary IDs; the MergeOp IDs in the
// history keep the numbering from before the sort.
func (l *Learner) Finalize() (*vocab.Vocab, []MergeOp, bool) {
	l.vocab.SortDescendingLength()
	return l.vocab, l.merges, l.endedEarly
}

// Vocab exposes the in-progress vocabulary, primarily for tests that want
// to inspect state mid-training without finalizing (and thus sorting) it.
func (l *Learner) Vocab() *vocab.Vocab { return l.vocab }
