package markdown

import (
	"regexp"
	"strings"
)

// Table is one parsed markdown table. Every row has exactly len(Headers)
// cells; rows that could not be reconciled with the header are dropped and
// counted on the ParseResult.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseResult holds the tables found in a document together with the
// interleaved non-table lines, in source order.
type ParseResult struct {
	Tables []Table
	// Prose contains every line that did not end up inside a table block,
	// including the lines of candidate runs that turned out not to be tables.
	Prose []string
	// DroppedRows counts data rows discarded because their cell count did
	// not match the header. A diagnostic, not an error: malformed LLM tables
	// are expected input.
	DroppedRows int
}

// separatorRe matches a markdown table separator line: pipes, dashes, colons
// and whitespace only. A dash is required so a row of empty cells ("| | |")
// is not mistaken for a separator.
var separatorRe = regexp.MustCompile(`^[|:\-\s]+$`)

func isSeparatorLine(line string) bool {
	return strings.Contains(line, "-") && separatorRe.MatchString(line)
}

func isCandidateLine(line string) bool {
	return strings.Contains(line, "|")
}

// splitCells splits a table row on pipes, discarding the fragments before
// the leading pipe and after the trailing pipe, and trims each cell.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}
	cells := make([]string, 0, len(parts)-2)
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// ParseTables scans text for markdown tables. A table is a contiguous run of
// lines containing a pipe where the second line is a separator line: the
// first line is the header, the separator is discarded, the remaining lines
// of the run are data rows. Runs that do not match (missing or malformed
// separator, empty header) are passed through as prose.
//
// The parser holds no state between calls; it is safe to invoke repeatedly
// and concurrently on different documents.
func ParseTables(text string) ParseResult {
	var res ParseResult
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !isCandidateLine(line) {
			res.Prose = append(res.Prose, lines[i])
			i++
			continue
		}

		// Collect the contiguous candidate run.
		run := []string{line}
		j := i + 1
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if !isCandidateLine(next) {
				break
			}
			run = append(run, next)
			j++
		}

		table, dropped, ok := parseRun(run)
		if ok {
			res.Tables = append(res.Tables, table)
			res.DroppedRows += dropped
		} else {
			res.Prose = append(res.Prose, lines[i:j]...)
		}
		i = j
	}
	return res
}

// parseRun reconciles one candidate run into a table. It reports ok=false
// when the run has no valid separator as its second line or the header has
// no non-empty cells.
func parseRun(run []string) (Table, int, bool) {
	if len(run) < 2 || !isSeparatorLine(run[1]) {
		return Table{}, 0, false
	}

	rawHeader := splitCells(run[0])
	headers := make([]string, 0, len(rawHeader))
	for _, h := range rawHeader {
		if h != "" {
			headers = append(headers, h)
		}
	}
	if len(headers) == 0 {
		return Table{}, 0, false
	}

	t := Table{Headers: headers}
	dropped := 0
	for _, line := range run[2:] {
		if isSeparatorLine(line) {
			continue
		}
		cells := splitCells(line)
		if allEmpty(cells) {
			// Accidental table continuation, e.g. trailing blank rows.
			continue
		}
		if len(cells) != len(headers) {
			dropped++
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, dropped, true
}
