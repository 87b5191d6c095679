// Package csvstream reads header-keyed CSV rows one at a time.
package csvstream

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ErrHeader is returned when the header row is unusable
var ErrHeader = errors.New("invalid csv header")

// Row maps header names to trimmed field values
type Row map[string]string

// Get returns the first non-empty value among the given column names
func (r Row) Get(names ...string) string {
	for _, name := range names {
		if v := r[name]; v != "" {
			return v
		}
	}
	return ""
}

// Reader pulls rows from a CSV stream whose first record is the header.
// Blank lines are skipped. Every row must have as many fields as the header.
type Reader struct {
	csv    *csv.Reader
	header []string
	rows   int
	done   bool
}

// NewReader wraps src. Nothing is read until the first call to Next.
func NewReader(src io.Reader) *Reader {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = 0
	cr.LazyQuotes = false
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// Header returns the column names once the header has been read
func (r *Reader) Header() []string {
	return r.header
}

// Rows returns the number of data rows returned so far
func (r *Reader) Rows() int {
	return r.rows
}

// Next returns the next data row, or io.EOF when the stream is exhausted.
// Any other error means the input is malformed and the stream should be abandoned.
func (r *Reader) Next() (Row, error) {
	if r.done {
		return nil, io.EOF
	}

	if r.header == nil {
		if err := r.readHeader(); err != nil {
			r.done = true
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		r.done = true
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("csv row %d: %w", r.rows+1, err)
	}

	row := make(Row, len(r.header))
	for i, name := range r.header {
		row[name] = strings.TrimSpace(record[i])
	}
	r.rows++
	return row, nil
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("%w: %v", ErrHeader, err)
	}

	header := make([]string, len(record))
	seen := make(map[string]struct{}, len(record))
	for i, name := range record {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrHeader, i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrHeader, name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}

	r.header = header
	return nil
}
