package resolve

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reference is one row of a reference table.
type Reference struct {
	ID            int
	Name          string
	SecondaryName string
}

// Collision records a name that was inserted twice with different IDs.
type Collision struct {
	Name     string
	Previous int
	Current  int
}

// ReferenceIndex maps display names to canonical IDs. Later inserts win on
// name collision; the name keeps the position of its first insert.
type ReferenceIndex struct {
	names      *orderedmap.OrderedMap[string, int]
	folded     map[string]string
	caser      cases.Caser
	collisions []Collision
}

// NewReferenceIndex returns an empty index.
func NewReferenceIndex() *ReferenceIndex {
	return &ReferenceIndex{
		names:  orderedmap.New[string, int](),
		folded: make(map[string]string),
		caser:  cases.Lower(language.Und),
	}
}

// BuildReferenceIndex indexes each record by its trimmed name and, when it
// differs, its trimmed secondary name.
func BuildReferenceIndex(records []Reference) *ReferenceIndex {
	idx := NewReferenceIndex()
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		secondary := strings.TrimSpace(rec.SecondaryName)
		if name != "" {
			idx.Insert(name, rec.ID)
		}
		if secondary != "" && secondary != name {
			idx.Insert(secondary, rec.ID)
		}
	}
	return idx
}

// Insert maps name to id.
func (r *ReferenceIndex) Insert(name string, id int) {
	if prev, present := r.names.Set(name, id); present && prev != id {
		r.collisions = append(r.collisions, Collision{Name: name, Previous: prev, Current: id})
	}
	key := r.fold(name)
	if _, ok := r.folded[key]; !ok {
		r.folded[key] = name
	}
}

// Lookup performs an exact, case-sensitive lookup.
func (r *ReferenceIndex) Lookup(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	return r.names.Get(name)
}

// LookupFold returns the ID of the first name, in insertion order, that
// equals name ignoring case.
func (r *ReferenceIndex) LookupFold(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	original, ok := r.folded[r.fold(name)]
	if !ok {
		return 0, false
	}
	return r.names.Get(original)
}

// Len returns the number of indexed names.
func (r *ReferenceIndex) Len() int {
	if r == nil {
		return 0
	}
	return r.names.Len()
}

// DistinctIDs returns the number of unique IDs reachable from the index.
func (r *ReferenceIndex) DistinctIDs() int {
	if r == nil {
		return 0
	}
	seen := make(map[int]struct{}, r.names.Len())
	for pair := r.names.Oldest(); pair != nil; pair = pair.Next() {
		seen[pair.Value] = struct{}{}
	}
	return len(seen)
}

// Names returns the indexed names in insertion order.
func (r *ReferenceIndex) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, r.names.Len())
	for pair := r.names.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Collisions lists every insert that overwrote a different ID.
func (r *ReferenceIndex) Collisions() []Collision {
	if r == nil {
		return nil
	}
	return append([]Collision(nil), r.collisions...)
}

func (r *ReferenceIndex) fold(s string) string {
	return r.caser.String(s)
}
