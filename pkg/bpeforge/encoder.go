package bpeforge

import "github.com/bpeforge/bpeforge/internal/textscan"

// streamingEncoder buffers incoming text and greedily flushes any prefix
// guaranteed not to change once more text arrives. A raw-byte encoder
// would need to hold back a fixed tail because any byte can participate
// in a future merge; here a merge never crosses the EOW boundary, so the
// only text that can still change shape is a letter run still touching
// the end of the buffer. Everything through the last completed run (or
// the whitespace/punctuation after it) is safe to segment and emit now.
type streamingEncoder struct {
	tok *Tokenizer

	buf    []byte
	outBuf []string
}

func newStreamingEncoder(t *Tokenizer) *streamingEncoder {
	return &streamingEncoder{tok: t}
}

// Feed consumes the next chunk of text and returns any tokens now known
// to be final.
func (e *streamingEncoder) Feed(chunk string) []string {
	e.outBuf = e.outBuf[:0]
	if len(chunk) > 0 {
		e.buf = append(e.buf, chunk...)
	}
	e.emitCommitted()

	if len(e.outBuf) == 0 {
		return nil
	}
	return append([]string(nil), e.outBuf...)
}

// Flush encodes whatever text remains buffered and resets the encoder
// for reuse on a fresh stream.
func (e *streamingEncoder) Flush() []string {
	e.outBuf = e.outBuf[:0]
	if len(e.buf) > 0 {
		e.outBuf = append(e.outBuf, e.tok.segmenter.SegmentSentence(string(e.buf))...)
		e.buf = e.buf[:0]
	}

	if len(e.outBuf) == 0 {
		return nil
	}
	return append([]string(nil), e.outBuf...)
}

func (e *streamingEncoder) emitCommitted() {
	boundary := safeBoundary(e.buf)
	if boundary == 0 {
		return
	}

	safe := e.buf[:boundary]
	e.outBuf = append(e.outBuf, e.tok.segmenter.SegmentSentence(string(safe))...)
	e.buf = e.buf[boundary:]
}

// safeBoundary returns how many leading bytes of buf are guaranteed to
// segment the same way regardless of what's appended next. If buf ends
// mid letter-run, that run is still growable, so only the bytes before
// its start are safe; any other trailing byte (whitespace or
// punctuation) already closes off every run before it.
func safeBoundary(buf []byte) int {
	n := len(buf)
	if n == 0 || !textscan.IsAlpha(buf[n-1]) {
		return n
	}
	i := n - 1
	for i > 0 && textscan.IsAlpha(buf[i-1]) {
		i--
	}
	return i
}
