package config

const (
	defaultOutputDir          = "data"
	defaultReferenceDelimiter = ","
	defaultSeriesDelimiter    = "|"
	defaultAliasDelimiter     = `\t`
	defaultVideoDelimiter     = `\t`
	defaultPreviewLimit       = 20
	defaultDMMBaseURL         = "https://api.dmm.com/affiliate/v3/SeriesSearch"
	defaultDMMFloorID         = 43
	defaultDMMHits            = 500
	defaultDMMTimeoutSeconds  = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Tables: Tables{
			ReferenceDelimiter: defaultReferenceDelimiter,
			SeriesDelimiter:    defaultSeriesDelimiter,
			AliasDelimiter:     defaultAliasDelimiter,
			VideoDelimiter:     defaultVideoDelimiter,
		},
		Report: Report{
			PreviewLimit: defaultPreviewLimit,
		},
		DMM: DMM{
			BaseURL:        defaultDMMBaseURL,
			FloorID:        defaultDMMFloorID,
			Hits:           defaultDMMHits,
			TimeoutSeconds: defaultDMMTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
