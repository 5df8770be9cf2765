// Package main hosts the mediacat CLI entrypoint and command graph.
//
// Each subcommand is a batch job over catalog files: relationship extraction,
// deduplication, re-delimiting, JSON flattening, column projection, id
// numbering, and the paginated series fetch. This package resolves
// configuration and logging once per invocation and renders summaries; the
// transformations themselves live in internal packages.
package main
