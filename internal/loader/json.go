package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"tablehash/internal/table"
)

// readJSON decodes an array of flat JSON objects. Column order follows first
// appearance across the records; keys absent from a record yield missing
// cells. The token-level walk preserves key order, which map decoding would
// destroy.
func readJSON(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var names []string
	index := make(map[string]int)
	var rows []map[string]table.Cell

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		row := make(map[string]table.Cell)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("parse %s: object key is not a string", path)
			}
			valTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			cell, err := cellFromJSONToken(valTok)
			if err != nil {
				return nil, fmt.Errorf("parse %s: field %q: %w", path, key, err)
			}
			if _, seen := index[key]; !seen {
				index[key] = len(names)
				names = append(names, key)
			}
			row[key] = cell
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cols := make([]table.Column, len(names))
	for c, name := range names {
		cells := make([]table.Cell, len(rows))
		for r, row := range rows {
			if cell, ok := row[name]; ok {
				cells[r] = cell
			} else {
				cells[r] = table.Missing()
			}
		}
		cols[c] = table.Column{Name: name, Cells: cells}
	}
	return table.New(cols...)
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

func cellFromJSONToken(tok json.Token) (table.Cell, error) {
	switch v := tok.(type) {
	case nil:
		return table.Missing(), nil
	case bool:
		return table.Bool(v), nil
	case string:
		return table.Text(v), nil
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return table.Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return table.Cell{}, fmt.Errorf("number %q: %w", v.String(), err)
		}
		return table.Float(f), nil
	case json.Delim:
		return table.Cell{}, fmt.Errorf("nested value %v is not tabular", v)
	default:
		return table.Cell{}, fmt.Errorf("unsupported token %T", tok)
	}
}
