package bpe

import "github.com/bpeforge/bpeforge/internal/vocab"

// Pair is an ordered pair of interned symbol IDs. A small comparable
// struct makes a cheaper map key than hashing two strings would.
type Pair = vocab.Pair

// MergeOp records one committed merge: symbols A and B combined into New.
type MergeOp struct {
	A   vocab.ID
	B   vocab.ID
	New vocab.ID
}
