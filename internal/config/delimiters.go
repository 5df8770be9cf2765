package config

import "mediacat/internal/dataset"

// Delimiters are the parsed table delimiters. Validate guarantees they parse.
type Delimiters struct {
	Reference rune
	Series    rune
	Alias     rune
	Video     rune
}

// Delimiters returns the parsed per-table delimiters.
func (c *Config) Delimiters() Delimiters {
	return Delimiters{
		Reference: dataset.MustDelimiter(c.Tables.ReferenceDelimiter),
		Series:    dataset.MustDelimiter(c.Tables.SeriesDelimiter),
		Alias:     dataset.MustDelimiter(c.Tables.AliasDelimiter),
		Video:     dataset.MustDelimiter(c.Tables.VideoDelimiter),
	}
}
