package relation

import "sort"

// Entry is a name that failed to resolve and the records it appeared in.
type Entry struct {
	Name  string
	Codes []string
}

// Count returns the number of occurrences.
func (e Entry) Count() int { return len(e.Codes) }

// Unresolved accumulates misses in first-seen order.
type Unresolved struct {
	order []string
	codes map[string][]string
}

// NewUnresolved returns an empty accumulator.
func NewUnresolved() *Unresolved {
	return &Unresolved{codes: make(map[string][]string)}
}

// Add records that name was not found in the record identified by code.
func (u *Unresolved) Add(name, code string) {
	if _, ok := u.codes[name]; !ok {
		u.order = append(u.order, name)
	}
	u.codes[name] = append(u.codes[name], code)
}

// Len returns the number of distinct names.
func (u *Unresolved) Len() int {
	if u == nil {
		return 0
	}
	return len(u.order)
}

// Occurrences returns the total number of misses.
func (u *Unresolved) Occurrences() int {
	if u == nil {
		return 0
	}
	total := 0
	for _, codes := range u.codes {
		total += len(codes)
	}
	return total
}

// Entries returns the accumulated names in first-seen order.
func (u *Unresolved) Entries() []Entry {
	if u == nil {
		return nil
	}
	out := make([]Entry, 0, len(u.order))
	for _, name := range u.order {
		codes := u.codes[name]
		out = append(out, Entry{Name: name, Codes: append([]string(nil), codes...)})
	}
	return out
}

// Report is the sorted view of an Unresolved accumulator.
type Report struct {
	Entries []Entry
}

// NewReport sorts entries by occurrence count, most frequent first. Ties
// keep first-seen order.
func NewReport(u *Unresolved) Report {
	entries := u.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count() > entries[j].Count()
	})
	return Report{Entries: entries}
}

// Preview returns at most limit entries and the number left out. A
// non-positive limit returns everything.
func (r Report) Preview(limit int) ([]Entry, int) {
	if limit <= 0 || len(r.Entries) <= limit {
		return r.Entries, 0
	}
	return r.Entries[:limit], len(r.Entries) - limit
}
