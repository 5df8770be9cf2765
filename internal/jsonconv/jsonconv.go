// Package jsonconv flattens {"<key>": [objects]} documents into tables.
//
// Column order follows the keys of the first object as they appear in the
// document, which is why the input is walked with gjson instead of being
// decoded into Go maps.
package jsonconv

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"mediacat/internal/dataset"
)

// DroppedColumn never makes it into the output.
const DroppedColumn = "list_url"

// ErrNoItems reports a missing or empty item array.
var ErrNoItems = errors.New("no items found")

// Options controls the flattening.
type Options struct {
	// AddID prepends a sequential 1-based id that replaces any source id.
	AddID bool
}

// Convert flattens the array stored under key.
func Convert(data []byte, key string, opts Options) (*dataset.Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("json document must be an object")
	}
	items := member(doc, key)
	if !items.Exists() {
		return nil, fmt.Errorf("%w: %q", ErrNoItems, key)
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("%q must be an array", key)
	}
	elements := items.Array()
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoItems, key)
	}
	if !elements[0].IsObject() {
		return nil, fmt.Errorf("%q must contain objects", key)
	}

	var columns []string
	elements[0].ForEach(func(k, _ gjson.Result) bool {
		name := k.String()
		if name == DroppedColumn || (opts.AddID && name == dataset.IDColumn) {
			return true
		}
		columns = append(columns, name)
		return true
	})

	header := columns
	if opts.AddID {
		header = append([]string{dataset.IDColumn}, columns...)
	}
	table := dataset.NewTable(header)
	for i, element := range elements {
		values := make(map[string]string, len(columns))
		element.ForEach(func(k, v gjson.Result) bool {
			values[k.String()] = cell(v)
			return true
		})
		row := make([]string, 0, len(header))
		if opts.AddID {
			row = append(row, strconv.Itoa(i+1))
		}
		for _, col := range columns {
			row = append(row, values[col])
		}
		table.Append(row)
	}
	return table, nil
}

func member(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

func cell(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
