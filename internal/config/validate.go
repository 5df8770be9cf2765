package config

import (
	"errors"
	"fmt"

	"mediacat/internal/dataset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTables(); err != nil {
		return err
	}
	if err := c.validateDMM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTables() error {
	for key, value := range map[string]string{
		"tables.reference_delimiter": c.Tables.ReferenceDelimiter,
		"tables.series_delimiter":    c.Tables.SeriesDelimiter,
		"tables.alias_delimiter":     c.Tables.AliasDelimiter,
		"tables.video_delimiter":     c.Tables.VideoDelimiter,
	} {
		if _, err := dataset.ParseDelimiter(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateDMM() error {
	if err := ensurePositiveMap(map[string]int{
		"dmm.floor_id":        c.DMM.FloorID,
		"dmm.hits":            c.DMM.Hits,
		"dmm.timeout_seconds": c.DMM.TimeoutSeconds,
	}); err != nil {
		return err
	}
	return nil
}

// RequireDMMCredentials reports whether the catalog API can be called.
func (c *Config) RequireDMMCredentials() error {
	if c.DMM.AppID == "" || c.DMM.AffiliateID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/mediacat/config.toml"
		}
		return errors.New("dmm.app_id and dmm.affiliate_id are required. Set APP_ID and AFFILIATE_ID env vars or edit " + defaultPath + " (create with 'mediacat config init')")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
