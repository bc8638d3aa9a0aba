// Package bpeforge is the small public facade over the training core:
// Tokenizer, LoadTokenizer, and Encoder/Decoder interfaces backed by this
// domain's CSV artifacts and greedy word/sentence segmenter instead of a
// raw-byte GPT-2 vocabulary.
package bpeforge

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/bpeforge/bpeforge/internal/artifact"
	"github.com/bpeforge/bpeforge/internal/segment"
)

// Encoder turns text into tokens incrementally. Feed may emit zero or
// more completed tokens per call; Flush drains whatever remains
// buffered and resets the encoder for reuse.
type Encoder interface {
	Feed(chunk string) []string
	Flush() []string
}

// Decoder turns a token stream back into text.
type Decoder interface {
	Feed(tokens []string) string
}

// Tokenizer holds an immutable, loaded vocabulary: safe for concurrent
// use once LoadTokenizer returns.
type Tokenizer struct {
	symbols   []string // sorted by descending length, for greedy matching
	segmenter *segment.Segmenter
}

// LoadTokenizer reloads a trained vocabulary from an artifacts
// directory, needing only _final_token_stats.csv for the symbol list —
// the embedding file itself is only needed by callers that want vectors,
// not by the tokenizer.
func LoadTokenizer(artifactsDir string, log zerolog.Logger) (*Tokenizer, error) {
	sigma, err := artifact.ReadFinalTokenStats(artifactsDir+"/_final_token_stats.csv", log)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(sigma))
	for sym := range sigma {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return len(symbols[i]) > len(symbols[j])
	})

	return &Tokenizer{
		symbols:   symbols,
		segmenter: segment.New(symbols),
	}, nil
}

// Segment tokenizes a full sentence using the greedy longest-match
// algorithm (C6), equivalent to (one-shot, non-streaming) NewEncoder.
func (t *Tokenizer) Segment(sentence string) []string {
	return t.segmenter.SegmentSentence(sentence)
}

// NewEncoder returns a streaming Encoder over this Tokenizer.
func (t *Tokenizer) NewEncoder() Encoder {
	return newStreamingEncoder(t)
}

// NewDecoder returns a Decoder over this Tokenizer.
func (t *Tokenizer) NewDecoder() Decoder {
	return &decoder{}
}
