// Package dedupe removes rows that repeat a compound key.
package dedupe

import (
	"fmt"
	"strings"

	"mediacat/internal/dataset"
)

// Options selects the key columns and the removal mode.
type Options struct {
	Columns []string
	// Prune drops every row whose key repeats, the first occurrence included.
	Prune bool
}

// MissingColumnsError lists key columns absent from the header.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("columns %v not found in file; available columns: %v", e.Missing, e.Available)
}

// Result splits the input rows into kept and removed.
type Result struct {
	Header  []string
	Columns []string
	Kept    [][]string
	Removed [][]string
	// Duplicated counts rows whose key occurs more than once.
	Duplicated int
	Total      int

	positions []int
}

// ParseColumns splits a comma-separated column list, trimming each entry.
func ParseColumns(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if col := strings.TrimSpace(part); col != "" {
			out = append(out, col)
		}
	}
	return out
}

// Apply partitions t according to opts. Input order is preserved in both
// partitions.
func Apply(t *dataset.Table, opts Options) (*Result, error) {
	if len(opts.Columns) == 0 {
		return nil, fmt.Errorf("at least one key column is required")
	}
	if missing := t.Missing(opts.Columns...); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Available: append([]string(nil), t.Header...)}
	}
	positions, err := t.Require(opts.Columns...)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(t.Rows))
	counts := make(map[string]int, len(t.Rows))
	for i, row := range t.Rows {
		keys[i] = compoundKey(row, positions)
		counts[keys[i]]++
	}

	res := &Result{
		Header:    t.Header,
		Columns:   opts.Columns,
		Total:     len(t.Rows),
		positions: positions,
	}
	seen := make(map[string]bool, len(counts))
	for i, row := range t.Rows {
		key := keys[i]
		repeated := counts[key] > 1
		if repeated {
			res.Duplicated++
		}
		switch {
		case opts.Prune && repeated:
			res.Removed = append(res.Removed, row)
		case !opts.Prune && seen[key]:
			res.Removed = append(res.Removed, row)
		default:
			res.Kept = append(res.Kept, row)
		}
		seen[key] = true
	}
	return res, nil
}

// KeyRows projects rows onto the key columns, keeping at most limit rows.
func (r *Result) KeyRows(rows [][]string, limit int) [][]string {
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		projected := make([]string, len(r.positions))
		for i, pos := range r.positions {
			projected[i] = row[pos]
		}
		out = append(out, projected)
	}
	return out
}

func compoundKey(row []string, positions []int) string {
	parts := make([]string, len(positions))
	for i, pos := range positions {
		parts[i] = row[pos]
	}
	return strings.Join(parts, "\x1f")
}
