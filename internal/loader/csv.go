package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tablehash/internal/table"
)

// delimiterCandidates is the fixed trial order for delimiter sniffing.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// readCSV decodes a delimited text file. A non-zero forced rune pins the
// delimiter (used for .tsv); otherwise the delimiter is sniffed from a
// bounded sample.
func readCSV(path string, opts Options, forced rune) (*table.Table, Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("read %s: %w", path, err)
	}
	data, err := decodeCharset(raw)
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode %s: %w", path, err)
	}

	delim := forced
	if delim == 0 {
		delim = sniffDelimiter(data, opts.SampleBytes)
	}
	decimal := detectDecimal(data, delim, opts.DecimalSampleRows)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	records, err := reader.ReadAll()
	if err != nil {
		return nil, Info{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, Info{}, fmt.Errorf("parse %s: no header row", path)
	}

	header := records[0]
	cols := make([]table.Column, len(header))
	for c, name := range header {
		cells := make([]table.Cell, 0, len(records)-1)
		for _, record := range records[1:] {
			cells = append(cells, inferCell(record[c], decimal))
		}
		cols[c] = table.Column{Name: name, Cells: cells}
	}
	tbl, err := table.New(cols...)
	if err != nil {
		return nil, Info{}, err
	}
	return tbl, Info{Format: FormatCSV, Delimiter: delim, Decimal: decimal}, nil
}

// decodeCharset strips a UTF-8 BOM and transcodes UTF-16 input (detected by
// BOM) to UTF-8. BOM-less input passes through unchanged.
func decodeCharset(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	return out, err
}

// sniffDelimiter picks the candidate whose per-line count is non-zero and
// consistent across the sampled lines, preferring higher counts. Falls back
// to comma.
func sniffDelimiter(data []byte, sampleBytes int) rune {
	truncated := false
	sample := data
	if len(sample) > sampleBytes {
		sample = sample[:sampleBytes]
		truncated = true
	}
	lines := strings.Split(string(sample), "\n")
	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1] // drop the cut-off tail line
	}
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	if len(cleaned) == 0 {
		return ','
	}

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		count := countUnquoted(cleaned[0], cand)
		consistent := count > 0
		for _, line := range cleaned[1:] {
			if countUnquoted(line, cand) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best, bestCount = cand, count
		}
	}
	return best
}

// countUnquoted counts occurrences of cand outside double-quoted regions.
func countUnquoted(line string, cand rune) int {
	count := 0
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == cand && !inQuote:
			count++
		}
	}
	return count
}

// detectDecimal samples the first data rows and counts values shaped like
// digits-separator-digits for each candidate separator. Comma wins only on a
// strict majority, mirroring the point-decimal default of every supported
// binary format.
func detectDecimal(data []byte, delim rune, sampleRows int) rune {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	counts := map[rune]int{',': 0, '.': 0}
	if _, err := reader.Read(); err != nil { // header
		return '.'
	}
	for i := 0; i < sampleRows; i++ {
		record, err := reader.Read()
		if err != nil {
			break
		}
		for _, value := range record {
			stripped := stripToDigitsAndSeparators(value)
			for _, sep := range []rune{',', '.'} {
				parts := strings.Split(stripped, string(sep))
				if len(parts) == 2 && allDigits(parts[0]) && allDigits(parts[1]) {
					counts[sep]++
				}
			}
		}
	}
	if counts[','] > counts['.'] {
		return ','
	}
	return '.'
}

func stripToDigitsAndSeparators(value string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
