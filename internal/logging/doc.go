// Package logging assembles structured slog loggers for mediacat commands.
//
// It owns the console and JSON handlers, level parsing, and the writer
// plumbing that sends logs to stderr (stdout carries command output) plus an
// optional log file. Every logger built for a command run carries a run_id so
// lines from one batch can be correlated across files.
package logging
