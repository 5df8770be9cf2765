package relation

import (
	"strings"

	"mediacat/internal/resolve"
)

// Kind names a relation table.
type Kind string

const (
	KindActress Kind = "actress"
	KindGenre   Kind = "genre"
	KindMaker   Kind = "maker"
	KindSeries  Kind = "series"
)

// Kinds lists every relation in output order.
var Kinds = []Kind{KindActress, KindGenre, KindMaker, KindSeries}

// Record is one primary (video) row.
type Record struct {
	ID        int
	Code      string
	Actresses string
	Genres    string
	Maker     string
	Series    string
}

// Pair is an edge between a primary record and a reference entity.
type Pair struct {
	PrimaryID   int
	ReferenceID int
}

// Indexes bundles the lookup tables. Alias indexes are optional; actresses
// have none.
type Indexes struct {
	Actress     *resolve.ReferenceIndex
	Genre       *resolve.ReferenceIndex
	Maker       *resolve.ReferenceIndex
	Series      *resolve.ReferenceIndex
	GenreAlias  *resolve.AliasIndex
	MakerAlias  *resolve.AliasIndex
	SeriesAlias *resolve.AliasIndex
}

func (ix Indexes) lookup(kind Kind) (*resolve.ReferenceIndex, *resolve.AliasIndex) {
	switch kind {
	case KindActress:
		return ix.Actress, nil
	case KindGenre:
		return ix.Genre, ix.GenreAlias
	case KindMaker:
		return ix.Maker, ix.MakerAlias
	case KindSeries:
		return ix.Series, ix.SeriesAlias
	default:
		return nil, nil
	}
}

// Table is the outcome for one relation kind.
type Table struct {
	Kind       Kind
	Pairs      []Pair
	Unresolved *Unresolved
	Tokens     int
	Steps      map[resolve.Step]int
}

// Result holds one Table per relation kind.
type Result struct {
	Records int
	Tables  map[Kind]*Table
}

// Table returns the table for kind, never nil.
func (r *Result) Table(kind Kind) *Table {
	if t, ok := r.Tables[kind]; ok {
		return t
	}
	return newTable(kind)
}

// TotalPairs sums the pairs across every relation.
func (r *Result) TotalPairs() int {
	total := 0
	for _, t := range r.Tables {
		total += len(t.Pairs)
	}
	return total
}

func newTable(kind Kind) *Table {
	return &Table{Kind: kind, Unresolved: NewUnresolved(), Steps: make(map[resolve.Step]int)}
}

// SplitNames splits a comma-separated field into trimmed, non-empty tokens,
// keeping order and duplicates.
func SplitNames(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// Extract resolves every relation field of every record.
func Extract(records []Record, ix Indexes) *Result {
	result := &Result{Records: len(records), Tables: make(map[Kind]*Table, len(Kinds))}
	for _, kind := range Kinds {
		result.Tables[kind] = newTable(kind)
	}

	for _, rec := range records {
		for _, name := range SplitNames(rec.Actresses) {
			result.add(KindActress, ix, rec, name)
		}
		for _, name := range SplitNames(rec.Genres) {
			result.add(KindGenre, ix, rec, name)
		}
		if name := strings.TrimSpace(rec.Maker); name != "" {
			result.add(KindMaker, ix, rec, name)
		}
		if name := strings.TrimSpace(rec.Series); name != "" {
			result.add(KindSeries, ix, rec, name)
		}
	}
	return result
}

func (r *Result) add(kind Kind, ix Indexes, rec Record, name string) {
	table := r.Tables[kind]
	table.Tokens++
	ref, alias := ix.lookup(kind)
	id, step := resolve.ResolveStep(name, ref, alias)
	table.Steps[step]++
	if step == resolve.StepNone {
		table.Unresolved.Add(name, rec.Code)
		return
	}
	table.Pairs = append(table.Pairs, Pair{PrimaryID: rec.ID, ReferenceID: id})
}

// ResolveSingle resolves a single-valued field, returning false for blank or
// unknown names.
func ResolveSingle(field string, ref *resolve.ReferenceIndex, alias *resolve.AliasIndex) (int, bool) {
	name := strings.TrimSpace(field)
	if name == "" {
		return 0, false
	}
	return resolve.Resolve(name, ref, alias)
}
