package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"tablehash/internal/table"
)

// Format identifies the decoder that produced a table.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatFeather Format = "feather"
)

// Info describes how a file was decoded. Delimiter and Decimal are only
// meaningful for delimited text formats.
type Info struct {
	Format    Format
	Delimiter rune
	Decimal   rune
}

// Options tunes the loader. The zero value picks the defaults below.
type Options struct {
	// SampleBytes bounds the sample used for delimiter sniffing.
	SampleBytes int
	// DecimalSampleRows bounds the data rows sampled for decimal-separator
	// detection.
	DecimalSampleRows int
	// NoGuessFallback disables the try-every-decoder fallback when the
	// extension-selected decoder fails.
	NoGuessFallback bool
}

const (
	defaultSampleBytes       = 2048
	defaultDecimalSampleRows = 10
)

func (o Options) withDefaults() Options {
	if o.SampleBytes <= 0 {
		o.SampleBytes = defaultSampleBytes
	}
	if o.DecimalSampleRows <= 0 {
		o.DecimalSampleRows = defaultDecimalSampleRows
	}
	return o
}

// UnsupportedFormatError reports that no decoder could interpret a file.
type UnsupportedFormatError struct {
	Path     string
	Attempts []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no supported decoder could read %s (tried %s)", e.Path, strings.Join(e.Attempts, ", "))
}

// Load reads the file at path into a table. A known extension selects its
// decoder directly; an unknown extension, or a failed decoder, triggers the
// guess fallback unless disabled.
func Load(path string, opts Options) (*table.Table, Info, error) {
	opts = opts.withDefaults()

	var (
		tbl  *table.Table
		info Info
		err  error
	)
	known := true
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		tbl, info, err = readCSV(path, opts, 0)
	case ".tsv":
		tbl, info, err = readCSV(path, opts, '\t')
		if err == nil {
			info.Format = FormatTSV
		}
	case ".json":
		tbl, err = readJSON(path)
		info = Info{Format: FormatJSON}
	case ".parquet":
		tbl, err = readParquet(path)
		info = Info{Format: FormatParquet}
	case ".feather", ".arrow", ".ipc":
		tbl, err = readFeather(path)
		info = Info{Format: FormatFeather}
	default:
		known = false
	}
	if known {
		if err == nil {
			return tbl, info, nil
		}
		if opts.NoGuessFallback {
			return nil, Info{}, err
		}
	}
	return guess(path, opts)
}

// guess tries every decoder in a fixed order; the first success wins.
func guess(path string, opts Options) (*table.Table, Info, error) {
	var attempts []string

	if tbl, info, err := readCSV(path, opts, 0); err == nil {
		return tbl, info, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("csv: %v", err))
	}
	if tbl, err := readJSON(path); err == nil {
		return tbl, Info{Format: FormatJSON}, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("json: %v", err))
	}
	if tbl, err := readParquet(path); err == nil {
		return tbl, Info{Format: FormatParquet}, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("parquet: %v", err))
	}
	if tbl, err := readFeather(path); err == nil {
		return tbl, Info{Format: FormatFeather}, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("feather: %v", err))
	}

	return nil, Info{}, &UnsupportedFormatError{Path: path, Attempts: attempts}
}
