package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// IDColumn is the column AddID prepends.
const IDColumn = "id"

// Convert re-encodes every record of r, header included, from one delimiter
// to another and returns the number of records written.
func Convert(r io.Reader, w io.Writer, from, to rune) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.Comma = from
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(w)
	writer.Comma = to
	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("record %d: %w", count+1, err)
		}
		if err := writer.Write(record); err != nil {
			return count, err
		}
		count++
	}
	writer.Flush()
	return count, writer.Error()
}

// AddID returns a copy of t with a 1-based sequential id column in front.
// An existing id column is replaced.
func AddID(t *Table) *Table {
	keep := make([]int, 0, len(t.Header))
	header := []string{IDColumn}
	for i, h := range t.Header {
		if h == IDColumn {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}
	out := NewTable(header)
	out.Path = t.Path
	out.Rows = make([][]string, 0, len(t.Rows))
	for n, row := range t.Rows {
		next := make([]string, 0, len(header))
		next = append(next, strconv.Itoa(n+1))
		for _, i := range keep {
			next = append(next, row[i])
		}
		out.Rows = append(out.Rows, next)
	}
	return out
}
