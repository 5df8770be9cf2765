// Package preflight runs environment checks before batch jobs.
//
// Checks cover the output and log directories, readability of input tables,
// and reachability of the series catalog API when credentials are present.
// Each check returns a Result rather than an error so callers can render the
// full list.
package preflight
