package artifact

import (
	"bufio"
	"os"

	"github.com/rs/zerolog"
)

// WriteUniqueInitialTokens writes the _unique_initial_tokens.csv shape:
// one column, header "token", one pre-BPE unique token per row, in the
// order given.
func WriteUniqueInitialTokens(path string, tokens []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeRow(w, []string{"token"}); err != nil {
		return err
	}
	for _, t := range tokens {
		if err := writeRow(w, []string{quoteText(t)}); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadUniqueInitialTokens reads back a file in the shape
// WriteUniqueInitialTokens produces, tolerating a missing header.
func ReadUniqueInitialTokens(path string, log zerolog.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	warned := 0
	rows := readAllRecords(f, func(lineNo int, err error) {
		if warned >= maxWarnLines {
			return
		}
		warned++
		log.Warn().Str("file", path).Int("line", lineNo).Err(err).Msg("skipping malformed CSV row")
	})
	if len(rows) == 0 {
		return nil, nil
	}

	start := 0
	if looksLikeHeader(rows[0]) {
		start = 1
	}

	tokens := make([]string, 0, len(rows)-start)
	for _, row := range rows[start:] {
		if len(row) == 0 {
			continue
		}
		tokens = append(tokens, row[0])
	}
	return tokens, nil
}
