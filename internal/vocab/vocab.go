// Package vocab interns BPE symbols (characters, atomic tokens, merge
// products) into small integer IDs: once a symbol is added here, every other
// package refers to it by ID rather than by repeating the string, so pair
// hashing in the learner is a hash of two ints instead of two strings.
package vocab

import "sort"

// ID identifies an interned symbol. IDs are assigned in insertion order and
// stay stable until SortDescendingLength renumbers them by position in the
// sorted table.
type ID int32

// Pair is an ordered pair of symbol IDs, used as a map key by the learner
// for its pair statistics and inverted index. A small comparable struct
// hashes far cheaper than the pair of strings it stands in for.
type Pair struct {
	A ID
	B ID
}

// EOW is the distinguished end-of-word marker appended to every BPE word's
// symbol sequence before merging begins.
const EOW = "</w>"

// Vocab is the ordered, deduplicated symbol table. It is not safe for
// concurrent use; the BPE learner owns it exclusively
// during training.
type Vocab struct {
	symbols []string
	index   map[string]ID
}

// New returns an empty Vocab.
func New() *Vocab {
	return &Vocab{index: make(map[string]ID)}
}

// Intern returns the ID for sym, assigning it a new one if this is the
// first time sym has been seen.
func (v *Vocab) Intern(sym string) ID {
	if id, ok := v.index[sym]; ok {
		return id
	}
	id := ID(len(v.symbols))
	v.symbols = append(v.symbols, sym)
	v.index[sym] = id
	return id
}

// Lookup returns the ID for sym without inserting it.
func (v *Vocab) Lookup(sym string) (ID, bool) {
	id, ok := v.index[sym]
	return id, ok
}

// Symbol returns the string form of id. Panics if id is out of range,
// which would indicate a caller holding a stale ID — a programming error.
func (v *Vocab) Symbol(id ID) string {
	return v.symbols[id]
}

// Len returns the number of distinct interned symbols.
func (v *Vocab) Len() int { return len(v.symbols) }

// Symbols returns the symbol table in insertion order. The returned slice
// aliases internal storage and must be treated as read-only.
func (v *Vocab) Symbols() []string { return v.symbols }

// SortDescendingLength reorders the symbol table in place so index 0 holds
// the longest symbol, breaking ties by insertion order (stable sort). This
// is the form C6 (the segmenter) requires for greedy longest-prefix
// matching, and is only ever called once, at the end of training.
func (v *Vocab) SortDescendingLength() {
	type entry struct {
		sym string
		pos int
	}
	entries := make([]entry, len(v.symbols))
	for i, s := range v.symbols {
		entries[i] = entry{s, i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].sym) > len(entries[j].sym)
	})

	newSymbols := make([]string, len(entries))
	for i, e := range entries {
		newSymbols[i] = e.sym
	}
	v.symbols = newSymbols
	for id, s := range v.symbols {
		v.index[s] = ID(id)
	}
}
