package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingFile reports that a required input path does not exist.
var ErrMissingFile = errors.New("input file not found")

// MalformedRecordError reports a required field that is absent or does not
// parse. Row 0 refers to the header.
type MalformedRecordError struct {
	Path  string
	Row   int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: missing required column %q", e.Path, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: row %d: field %q value %q: %v", e.Path, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: row %d: field %q value %q is invalid", e.Path, e.Row, e.Field, e.Value)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
