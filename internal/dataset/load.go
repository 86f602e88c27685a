package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported indicates a file format the loader does not read.
var ErrUnsupported = errors.New("unsupported dataset format")

// Options controls how a delimited file is loaded.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
}

// DefaultOptions returns loader defaults: no row limit, delimiter by extension.
func DefaultOptions() Options {
	return Options{}
}

// Load reads a dataset, choosing the reader by extension.
func Load(path string, opt Options) (*Dataset, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		return LoadCSV(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// LoadCSV reads a delimited file with a header row into a Dataset.
func LoadCSV(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	ds, err := ReadCSV(f, delim, opt.MaxRows)
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// ReadCSV reads delimited records from r. The first record is the header.
// Records shorter than the header are padded with empty fields; extra fields
// are dropped.
func ReadCSV(r io.Reader, delim rune, maxRows int) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	ds := &Dataset{Columns: cols}
	if len(cols) == 0 {
		return ds, nil
	}
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}

	for n := 0; len(ds.Rows) < maxRows; n++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", n+1, err)
		}
		row := make(Row, len(cols))
		for j, c := range cols {
			if j < len(rec) {
				row[c] = rec[j]
			} else {
				row[c] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
