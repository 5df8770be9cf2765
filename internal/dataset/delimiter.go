package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseDelimiter accepts a literal delimiter or an escaped form such as
// `\t`, `\x1f` or the word "tab".
func ParseDelimiter(raw string) (rune, error) {
	if raw == "" {
		return 0, fmt.Errorf("delimiter must not be empty")
	}
	value := raw
	switch strings.ToLower(raw) {
	case "tab":
		value = "\t"
	case "comma":
		value = ","
	case "pipe":
		value = "|"
	default:
		if strings.Contains(raw, `\`) {
			unquoted, err := strconv.Unquote(`"` + strings.ReplaceAll(raw, `"`, `\"`) + `"`)
			if err != nil {
				return 0, fmt.Errorf("delimiter %q: %w", raw, err)
			}
			value = unquoted
		}
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", raw)
	}
	r, _ := utf8.DecodeRuneInString(value)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return 0, fmt.Errorf("delimiter %q is not allowed", raw)
	}
	return r, nil
}

// MustDelimiter is ParseDelimiter for compile-time constants.
func MustDelimiter(raw string) rune {
	r, err := ParseDelimiter(raw)
	if err != nil {
		panic(err)
	}
	return r
}
