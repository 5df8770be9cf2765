package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"mediacat/internal/fileutil"
)

// WriteJSON writes {"<key>": items} indented by four spaces without
// escaping HTML or non-ASCII characters.
func WriteJSON(w io.Writer, key string, items []json.RawMessage) error {
	if items == nil {
		items = []json.RawMessage{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string][]json.RawMessage{key: items}); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return nil
}

// WriteJSONFile writes the document to path atomically.
func WriteJSONFile(path, key string, items []json.RawMessage) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, key, items); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
