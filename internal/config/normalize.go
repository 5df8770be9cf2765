package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTables()
	c.normalizeReport()
	c.normalizeDMM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTables() {
	if c.Tables.ReferenceDelimiter == "" {
		c.Tables.ReferenceDelimiter = defaultReferenceDelimiter
	}
	if c.Tables.SeriesDelimiter == "" {
		c.Tables.SeriesDelimiter = defaultSeriesDelimiter
	}
	if c.Tables.AliasDelimiter == "" {
		c.Tables.AliasDelimiter = defaultAliasDelimiter
	}
	if c.Tables.VideoDelimiter == "" {
		c.Tables.VideoDelimiter = defaultVideoDelimiter
	}
}

func (c *Config) normalizeReport() {
	if c.Report.PreviewLimit < 0 {
		c.Report.PreviewLimit = 0
	}
}

func (c *Config) normalizeDMM() {
	c.DMM.BaseURL = strings.TrimSpace(c.DMM.BaseURL)
	if c.DMM.BaseURL == "" {
		c.DMM.BaseURL = defaultDMMBaseURL
	}
	c.DMM.AppID = strings.TrimSpace(c.DMM.AppID)
	if c.DMM.AppID == "" {
		if value, ok := os.LookupEnv("APP_ID"); ok {
			c.DMM.AppID = strings.TrimSpace(value)
		}
	}
	c.DMM.AffiliateID = strings.TrimSpace(c.DMM.AffiliateID)
	if c.DMM.AffiliateID == "" {
		if value, ok := os.LookupEnv("AFFILIATE_ID"); ok {
			c.DMM.AffiliateID = strings.TrimSpace(value)
		}
	}
	if c.DMM.TimeoutSeconds == 0 {
		c.DMM.TimeoutSeconds = defaultDMMTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
