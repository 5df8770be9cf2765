package preflight

import (
	"context"

	"mediacat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Skipped marks checks that did not apply to the current config.
	Skipped bool
	Detail  string
}

// RunAll executes the configuration checks followed by one readability
// check per input path.
func RunAll(ctx context.Context, cfg *config.Config, inputs []string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir)}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if err := cfg.RequireDMMCredentials(); err != nil {
		results = append(results, Result{Name: "Series API", Skipped: true, Detail: "credentials not configured"})
	} else {
		results = append(results, CheckSeriesAPI(ctx, cfg.DMM))
	}
	for _, path := range inputs {
		results = append(results, CheckInputFile(path))
	}
	return results
}

// Failed reports whether any non-skipped check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Skipped {
			return true
		}
	}
	return false
}
