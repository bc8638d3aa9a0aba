// Package artifact implements C8: the handful of CSV file shapes that
// carry the trained vocabulary, its final statistics, and its embeddings
// across a training/inference boundary. No example repo in the corpus
// reaches for a CSV library — encoding/csv from the standard library is
// the only parser used here, documented as the one deliberate stdlib
// exception in DESIGN.md.
package artifact

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// errShortRow marks a data row with fewer columns than its file shape
// requires; treated the same as any other malformed-field warning.
var errShortRow = errors.New("row has too few columns")

// maxWarnLines bounds how many malformed-row warnings a single read
// emits before going quiet.
const maxWarnLines = 20

// headerTokens are the column names the heuristic header detector
// matches against to tell a header row from a data row.
var headerTokens = map[string]bool{
	"token":       true,
	"count":       true,
	"repetitions": true,
	"embedding":   true,
	"seed":        true,
}

// looksLikeHeader reports whether row's fields match enough known
// header tokens to be treated as a header rather than a data row.
func looksLikeHeader(row []string) bool {
	for _, f := range row {
		if headerTokens[strings.ToLower(strings.TrimSpace(f))] {
			return true
		}
	}
	return false
}

// needsQuote reports whether a text field must be wrapped in double
// quotes on output: empty, whitespace-only, or containing a comma,
// double quote, or newline.
func needsQuote(s string) bool {
	if s == "" || strings.TrimSpace(s) == "" {
		return true
	}
	return strings.ContainsAny(s, ",\"\n")
}

// quoteText formats a text field for output, doubling any internal
// quotes. Numeric fields never go through this — they are always
// unquoted on output.
func quoteText(s string) string {
	if !needsQuote(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// writeRow writes fields (already formatted by the caller, quoted or
// not) as one comma-joined CSV line.
func writeRow(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, ",")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// readAllRecords reads every row from r tolerantly: a record that fails
// to parse (malformed quoting) is skipped via onWarn rather than
// aborting the whole read, so one bad line costs an entry, not the file.
func readAllRecords(r io.Reader, onWarn func(lineNo int, err error)) [][]string {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	lineNo := 0
	for {
		lineNo++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if onWarn != nil {
				onWarn(lineNo, err)
			}
			continue
		}
		rows = append(rows, record)
	}
	return rows
}
