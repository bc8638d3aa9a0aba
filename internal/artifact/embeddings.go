package artifact

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bpeforge/bpeforge/internal/embedding"
)

// WriteEmbeddings writes the _final_embeddings.csv / _embeddings_only.csv
// shape: first column token (quoted when needed), followed by d numeric
// columns.
func WriteEmbeddings(path string, table *embedding.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, dim := table.Matrix.Dims()
	header := make([]string, 0, dim+1)
	header = append(header, "token")
	for j := 0; j < dim; j++ {
		header = append(header, fmt.Sprintf("dim%d", j))
	}

	w := bufio.NewWriter(f)
	if err := writeRow(w, header); err != nil {
		return err
	}

	row := make([]string, dim+1)
	for i, tok := range table.Tokens {
		row[0] = quoteText(tok)
		vec := table.Row(i)
		for j := 0; j < dim; j++ {
			row[j+1] = strconv.FormatFloat(vec[j], 'g', -1, 64)
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadEmbeddings reads back an embeddings file into token order and a
// dense matrix. A malformed numeric column logs a warning and defaults
// to 0.
func ReadEmbeddings(path string, log zerolog.Logger) (tokens []string, matrix [][]float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	warned := 0
	warn := func(lineNo int, e error) {
		if warned >= maxWarnLines {
			return
		}
		warned++
		log.Warn().Str("file", path).Int("line", lineNo).Err(e).Msg("skipping malformed CSV row")
	}

	rows := readAllRecords(f, warn)
	if len(rows) == 0 {
		return nil, nil, nil
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
		vec := make([]float64, len(row)-1)
		for j, field := range row[1:] {
			v, parseErr := strconv.ParseFloat(field, 64)
			if parseErr != nil {
				warn(start+i+1, parseErr)
				v = 0
			}
			vec[j] = v
		}
		tokens = append(tokens, row[0])
		matrix = append(matrix, vec)
	}
	return tokens, matrix, nil
}

// WriteSeeds writes the _seedsForEmbeddings.csv shape: two columns
// token,seed.
func WriteSeeds(path string, tokens []string, seeds []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeRow(w, []string{"token", "seed"}); err != nil {
		return err
	}
	for i, tok := range tokens {
		row := []string{quoteText(tok), strconv.FormatFloat(seeds[i], 'g', -1, 64)}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadSeeds reads back a _seedsForEmbeddings.csv file.
func ReadSeeds(path string, log zerolog.Logger) (tokens []string, seeds []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	warned := 0
	warn := func(lineNo int, e error) {
		if warned >= maxWarnLines {
			return
		}
		warned++
		log.Warn().Str("file", path).Int("line", lineNo).Err(e).Msg("skipping malformed CSV row")
	}

	rows := readAllRecords(f, warn)
	if len(rows) == 0 {
		return nil, nil, nil
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
		v, parseErr := strconv.ParseFloat(row[1], 64)
		if parseErr != nil {
			warn(start+i+1, parseErr)
			v = 0
		}
		tokens = append(tokens, row[0])
		seeds = append(seeds, v)
	}
	return tokens, seeds, nil
}
