// Package segment implements C6: greedy longest-match tokenization of a
// word or sentence against a trained vocabulary. Segmenter holds
// immutable model data, safe for concurrent use once built, and matches
// by a greedy longest-prefix scan rather than byte-level merge-rank
// encoding.
package segment

import (
	"strings"

	"github.com/bpeforge/bpeforge/internal/textscan"
	"github.com/bpeforge/bpeforge/internal/vocab"
)

// Segmenter holds a vocabulary already sorted by descending symbol
// length, the order C6's greedy scan requires. Safe for concurrent use:
// SegmentWord and SegmentSentence never mutate it.
type Segmenter struct {
	sorted []string
}

// New returns a Segmenter over vocabSortedByLengthDesc. Callers are
// responsible for having called (*vocab.Vocab).SortDescendingLength (or
// equivalently sorted a reloaded symbol list) before constructing one.
func New(vocabSortedByLengthDesc []string) *Segmenter {
	cp := make([]string, len(vocabSortedByLengthDesc))
	copy(cp, vocabSortedByLengthDesc)
	return &Segmenter{sorted: cp}
}

// SegmentWord tokenizes a single lowercased word using greedy
// longest-prefix matching against the sorted vocabulary. The fallback
// (emit the first byte verbatim) is defined for robustness only and
// should not trigger against a correctly trained vocabulary.
func (s *Segmenter) SegmentWord(w string) []string {
	cur := w + vocab.EOW
	var out []string

	for len(cur) > 0 {
		matched := false
		for _, sym := range s.sorted {
			if sym == "" {
				continue
			}
			if strings.HasPrefix(cur, sym) {
				out = append(out, sym)
				cur = cur[len(sym):]
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, cur[:1])
			cur = cur[1:]
		}
	}
	return out
}

// SegmentSentence tokenizes a full sentence: maximal letter runs are
// lowercased and segmented via SegmentWord, individual non-letter,
// non-whitespace characters are emitted verbatim, and whitespace is
// discarded.
func (s *Segmenter) SegmentSentence(sentence string) []string {
	var out []string
	textscan.Walk(sentence,
		func(word string) {
			out = append(out, s.SegmentWord(strings.ToLower(word))...)
		},
		func(b byte) {
			out = append(out, string(b))
		},
	)
	return out
}
