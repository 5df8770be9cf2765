package resolve

import (
	"regexp"
	"strings"
)

// Step identifies which pass of the cascade produced a match.
type Step int

const (
	StepNone Step = iota
	StepExact
	StepFold
	StepStripped
	StepAlias
)

func (s Step) String() string {
	switch s {
	case StepExact:
		return "exact"
	case StepFold:
		return "case_insensitive"
	case StepStripped:
		return "parenthetical"
	case StepAlias:
		return "alias"
	default:
		return "none"
	}
}

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// StripParenthetical removes every "(...)" group and trims the result.
func StripParenthetical(name string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(name, ""))
}

// Resolve looks name up in ref, falling back to alias (which may be nil).
func Resolve(name string, ref *ReferenceIndex, alias *AliasIndex) (int, bool) {
	id, step := ResolveStep(name, ref, alias)
	return id, step != StepNone
}

// ResolveStep is Resolve, also reporting the pass that matched.
func ResolveStep(name string, ref *ReferenceIndex, alias *AliasIndex) (int, Step) {
	if id, ok := ref.Lookup(name); ok {
		return id, StepExact
	}
	if id, ok := ref.LookupFold(name); ok {
		return id, StepFold
	}
	if stripped := StripParenthetical(name); stripped != name {
		if id, ok := ref.Lookup(stripped); ok {
			return id, StepStripped
		}
	}
	if c, ok := alias.Lookup(name); ok {
		return c.ID, StepAlias
	}
	return 0, StepNone
}
