package dataset

import (
	"strconv"
	"strings"

	"mediacat/internal/relation"
	"mediacat/internal/resolve"
)

// Column names shared by the catalog tables.
const (
	ColumnID          = "id"
	ColumnName        = "name"
	ColumnDisplayName = "display_name"
	ColumnRuby        = "ruby"
	ColumnAlias       = "alias"
	ColumnAliasID     = "alias_id"
	ColumnDisplayID   = "display_id"
	ColumnActress     = "actress"
	ColumnGenre       = "genre"
	ColumnMakers      = "makers"
	ColumnSeries      = "series"
)

// ReferenceOptions describes how a reference table is laid out.
type ReferenceOptions struct {
	Delimiter rune
	// SecondaryField is the optional column holding an alternate display
	// name ("display_name", or "ruby" for series).
	SecondaryField string
}

// LoadReferences reads id/name/secondary rows from a reference table.
func LoadReferences(path string, opts ReferenceOptions) ([]resolve.Reference, error) {
	t, err := ReadFile(path, opts.Delimiter)
	if err != nil {
		return nil, err
	}
	return ReferencesFromTable(t, opts.SecondaryField)
}

// ReferencesFromTable converts an already loaded reference table.
func ReferencesFromTable(t *Table, secondaryField string) ([]resolve.Reference, error) {
	cols, err := t.Require(ColumnID, ColumnName)
	if err != nil {
		return nil, err
	}
	out := make([]resolve.Reference, 0, len(t.Rows))
	for i, row := range t.Rows {
		id, err := parseID(t, i, ColumnID, row[cols[0]])
		if err != nil {
			return nil, err
		}
		ref := resolve.Reference{ID: id, Name: strings.TrimSpace(row[cols[1]])}
		if secondaryField != "" {
			ref.SecondaryName = strings.TrimSpace(t.Value(row, secondaryField))
		}
		out = append(out, ref)
	}
	return out, nil
}

// LoadAliases reads name/alias/alias_id rows from an alias table.
func LoadAliases(path string, delim rune) ([]resolve.Alias, error) {
	t, err := ReadFile(path, delim)
	if err != nil {
		return nil, err
	}
	return AliasesFromTable(t)
}

// AliasesFromTable converts an already loaded alias table.
func AliasesFromTable(t *Table) ([]resolve.Alias, error) {
	cols, err := t.Require(ColumnName, ColumnAlias, ColumnAliasID)
	if err != nil {
		return nil, err
	}
	out := make([]resolve.Alias, 0, len(t.Rows))
	for i, row := range t.Rows {
		id, err := parseID(t, i, ColumnAliasID, row[cols[2]])
		if err != nil {
			return nil, err
		}
		out = append(out, resolve.Alias{
			Name:    strings.TrimSpace(row[cols[0]]),
			Alias:   strings.TrimSpace(row[cols[1]]),
			AliasID: id,
		})
	}
	return out, nil
}

// LoadVideos reads the primary video table.
func LoadVideos(path string, delim rune) ([]relation.Record, error) {
	t, err := ReadFile(path, delim)
	if err != nil {
		return nil, err
	}
	return VideosFromTable(t)
}

// VideosFromTable converts an already loaded video table. Only the id column
// is required.
func VideosFromTable(t *Table) ([]relation.Record, error) {
	cols, err := t.Require(ColumnID)
	if err != nil {
		return nil, err
	}
	out := make([]relation.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		id, err := parseID(t, i, ColumnID, row[cols[0]])
		if err != nil {
			return nil, err
		}
		out = append(out, relation.Record{
			ID:        id,
			Code:      strings.TrimSpace(t.Value(row, ColumnDisplayID)),
			Actresses: strings.TrimSpace(t.Value(row, ColumnActress)),
			Genres:    strings.TrimSpace(t.Value(row, ColumnGenre)),
			Maker:     strings.TrimSpace(t.Value(row, ColumnMakers)),
			Series:    strings.TrimSpace(t.Value(row, ColumnSeries)),
		})
	}
	return out, nil
}

func parseID(t *Table, rowIndex int, field, value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &MalformedRecordError{Path: t.Path, Row: rowIndex + 1, Field: field, Value: value, Err: err}
	}
	return id, nil
}
