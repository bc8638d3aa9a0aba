package artifact

import (
	"bufio"
	"os"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bpeforge/bpeforge/internal/wordfreq"
)

// WriteFinalTokenStats writes the _final_token_stats.csv shape: two
// columns token,repetitions, alphabetically sorted by token, matching
// C7's output ordering.
func WriteFinalTokenStats(path string, sigma wordfreq.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tokens := make([]string, 0, len(sigma))
	for t := range sigma {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	w := bufio.NewWriter(f)
	if err := writeRow(w, []string{"token", "repetitions"}); err != nil {
		return err
	}
	for _, t := range tokens {
		row := []string{quoteText(t), strconv.Itoa(sigma[t])}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadFinalTokenStats reads back a _final_token_stats.csv file. A
// malformed repetitions column logs a warning and defaults to 0 rather
// than aborting the load.
func ReadFinalTokenStats(path string, log zerolog.Logger) (wordfreq.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	warned := 0
	warn := func(lineNo int, err error) {
		if warned >= maxWarnLines {
			return
		}
		warned++
		log.Warn().Str("file", path).Int("line", lineNo).Err(err).Msg("skipping malformed CSV row")
	}

	rows := readAllRecords(f, warn)
	sigma := wordfreq.New()
	if len(rows) == 0 {
		return sigma, nil
	}

	start := 0
	if looksLikeHeader(rows[0]) {
		start = 1
	}

	for i, row := range rows[start:] {
		if len(row) < 2 {
			warn(start+i+1, errShortRow)
			continue
		}
		n, err := strconv.Atoi(row[1])
		if err != nil {
			warn(start+i+1, err)
			n = 0
		}
		sigma.Add(row[0], n)
	}
	return sigma, nil
}
