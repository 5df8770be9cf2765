package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a header plus data rows. Every row has len(Header) cells.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table with the given header and no rows.
func NewTable(header []string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
}

// Column returns the position of name in the header.
func (t *Table) Column(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// Value returns the cell of row under column name, or "" when the column is
// absent.
func (t *Table) Value(row []string, name string) string {
	i, ok := t.Column(name)
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Require returns the positions of every named column or a
// *MalformedRecordError for the first one missing.
func (t *Table) Require(names ...string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.Column(name)
		if !ok {
			return nil, &MalformedRecordError{Path: t.Path, Field: name}
		}
		positions[i] = pos
	}
	return positions, nil
}

// Missing lists the names absent from the header.
func (t *Table) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := t.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, fitRow(row, len(t.Header)))
}

// Select returns a new table holding only the named columns, in that order.
func (t *Table) Select(names ...string) (*Table, error) {
	positions, err := t.Require(names...)
	if err != nil {
		return nil, err
	}
	out := NewTable(names)
	out.Path = t.Path
	out.Rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		projected := make([]string, len(positions))
		for i, pos := range positions {
			projected[i] = row[pos]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out, nil
}

// ReadFile loads a delimited file.
func ReadFile(path string, delim rune) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := Read(bytes.NewReader(data), delim)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// Read parses a delimited stream whose first row is the header. An empty
// stream yields a table with no header and no rows.
func Read(r io.Reader, delim rune) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	t := NewTable(header)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		t.Append(row)
	}
	return t, nil
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
