// Package store exports relation results into a SQLite database.
//
// The database mirrors the TSV outputs: one video_<kind> table per relation
// plus a not_found table keyed by relation. Each Write replaces the previous
// content in a single transaction and records the run in the runs table.
package store
