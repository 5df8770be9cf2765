// Package relate runs the relationship extraction batch end to end.
//
// Run loads the reference and alias tables, optionally writes the normalized
// video dataset, resolves every video's actress, genre, maker and series
// names, and writes one pair table plus one not-found report per relation
// into the output directory. The output directory is locked for the duration
// of the run. When a SQLite path is configured the same result is exported
// there as well.
package relate
