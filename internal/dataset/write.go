package dataset

import (
	"bytes"
	"encoding/csv"
	"io"

	"mediacat/internal/fileutil"
)

// Write encodes header and rows with delim and "\n" line endings.
func Write(w io.Writer, delim rune, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if header != nil {
		if err := writer.Write(header); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteTable encodes t to w.
func WriteTable(w io.Writer, delim rune, t *Table) error {
	return Write(w, delim, t.Header, t.Rows)
}

// WriteFile replaces path with the encoded table.
func WriteFile(path string, delim rune, header []string, rows [][]string) error {
	var buf bytes.Buffer
	if err := Write(&buf, delim, header, rows); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
