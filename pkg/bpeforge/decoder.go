package bpeforge

import "strings"

// decoder is a stateless reversal of Segment/Encoder output: EOW markers
// become word boundaries (a space, except before punctuation or at the
// very start), everything else is concatenated verbatim. There is no
// internal buffer to flush since this domain never needs to hold a
// partial multi-byte token across calls.
type decoder struct{}

// Feed reassembles a token stream into text.
func (d *decoder) Feed(tokens []string) string {
	var b strings.Builder
	needsSpace := false

	for _, tok := range tokens {
		word, isWordPiece := strings.CutSuffix(tok, "</w>")
		if isWordPiece {
			if needsSpace {
				b.WriteByte(' ')
			}
			b.WriteString(word)
			needsSpace = true
			continue
		}

		// Atomic (punctuation/digit/symbol) token: attach directly, no
		// leading space, matching how the original sentence had no
		// whitespace before it either.
		b.WriteString(tok)
		needsSpace = true
	}

	return b.String()
}
