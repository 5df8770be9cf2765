// Package config loads, normalizes, and validates mediacat configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as APP_ID and
// AFFILIATE_ID for the catalog API. Per-table delimiters live here so the
// series table's "|" convention is a setting rather than a special case in
// the loaders.
package config
