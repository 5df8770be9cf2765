package resolve

import "strings"

// Alias is one row of an alias table.
type Alias struct {
	Name    string
	Alias   string
	AliasID int
}

// Canonical is the target of an alias lookup.
type Canonical struct {
	Name string
	ID   int
}

// AliasIndex maps alternate and canonical names to their canonical entity.
type AliasIndex struct {
	entries map[string]Canonical
}

// BuildAliasIndex maps each alias and each canonical name to the canonical
// (name, id) pair, so a lookup succeeds whether the query is the alias or
// already canonical.
func BuildAliasIndex(records []Alias) *AliasIndex {
	idx := &AliasIndex{entries: make(map[string]Canonical, len(records)*2)}
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		alias := strings.TrimSpace(rec.Alias)
		target := Canonical{Name: name, ID: rec.AliasID}
		if alias != "" {
			idx.entries[alias] = target
		}
		if name != "" {
			idx.entries[name] = target
		}
	}
	return idx
}

// Lookup performs an exact lookup. A nil index never matches.
func (a *AliasIndex) Lookup(name string) (Canonical, bool) {
	if a == nil {
		return Canonical{}, false
	}
	c, ok := a.entries[name]
	return c, ok
}

// Len returns the number of alias entries.
func (a *AliasIndex) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}
