package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediacat/internal/config"
)

func TestLoadDefaultConfigUsesEnvCredentialsAndExpandsPaths(t *testing.T) {
	t.Setenv("APP_ID", "app-123")
	t.Setenv("AFFILIATE_ID", "aff-456")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "mediacat", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) || filepath.Base(cfg.Paths.OutputDir) != "data" {
		t.Fatalf("expected absolute output dir ending in data, got %q", cfg.Paths.OutputDir)
	}
	if cfg.DMM.AppID != "app-123" || cfg.DMM.AffiliateID != "aff-456" {
		t.Fatalf("expected DMM credentials from env, got %q/%q", cfg.DMM.AppID, cfg.DMM.AffiliateID)
	}
	if err := cfg.RequireDMMCredentials(); err != nil {
		t.Fatalf("RequireDMMCredentials: %v", err)
	}
	if cfg.DMM.FloorID != 43 || cfg.DMM.Hits != 500 {
		t.Fatalf("unexpected DMM paging defaults: floor=%d hits=%d", cfg.DMM.FloorID, cfg.DMM.Hits)
	}
	if cfg.Report.PreviewLimit != 20 {
		t.Fatalf("unexpected preview limit: %d", cfg.Report.PreviewLimit)
	}

	delims := cfg.Delimiters()
	if delims.Reference != ',' || delims.Series != '|' || delims.Alias != '\t' || delims.Video != '\t' {
		t.Fatalf("unexpected delimiters: %+v", delims)
	}
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	t.Setenv("APP_ID", "from-env")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
			LogDir    string `toml:"log_dir"`
		} `toml:"paths"`
		Tables struct {
			ReferenceDelimiter string `toml:"reference_delimiter"`
		} `toml:"tables"`
		Report struct {
			PreviewLimit int `toml:"preview_limit"`
		} `toml:"report"`
		DMM struct {
			AppID string `toml:"app_id"`
			Hits  int    `toml:"hits"`
		} `toml:"dmm"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	var p payload
	p.Paths.OutputDir = "~/catalog/out"
	p.Paths.LogDir = "~/catalog/logs"
	p.Tables.ReferenceDelimiter = `\t`
	p.Report.PreviewLimit = 5
	p.DMM.AppID = "from-file"
	p.DMM.Hits = 100
	p.Logging.Format = "JSON"
	p.Logging.Level = "Debug"

	data, err := toml.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected explicit config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "catalog", "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, "catalog", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.DMM.AppID != "from-file" {
		t.Fatalf("expected file value to win over env, got %q", cfg.DMM.AppID)
	}
	if cfg.DMM.Hits != 100 {
		t.Fatalf("unexpected hits: %d", cfg.DMM.Hits)
	}
	if cfg.Report.PreviewLimit != 5 {
		t.Fatalf("unexpected preview limit: %d", cfg.Report.PreviewLimit)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.Delimiters().Reference != '\t' {
		t.Fatalf("expected tab reference delimiter, got %q", cfg.Delimiters().Reference)
	}
	if cfg.Delimiters().Series != '|' {
		t.Fatalf("expected default series delimiter to survive partial config")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}

func TestLoadRejectsMissingExplicitPath(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "multi-character delimiter",
			mutate: func(c *config.Config) { c.Tables.SeriesDelimiter = "||" },
			want:   "tables.series_delimiter",
		},
		{
			name:   "quote delimiter",
			mutate: func(c *config.Config) { c.Tables.VideoDelimiter = `"` },
			want:   "tables.video_delimiter",
		},
		{
			name:   "zero hits",
			mutate: func(c *config.Config) { c.DMM.Hits = 0 },
			want:   "dmm.hits must be positive",
		},
		{
			name:   "negative floor",
			mutate: func(c *config.Config) { c.DMM.FloorID = -1 },
			want:   "dmm.floor_id must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRequireDMMCredentials(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireDMMCredentials(); err == nil {
		t.Fatal("expected error without credentials")
	}
	cfg.DMM.AppID = "a"
	cfg.DMM.AffiliateID = "b"
	if err := cfg.RequireDMMCredentials(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Tables.SeriesDelimiter != "|" {
		t.Fatalf("unexpected series delimiter in sample: %q", cfg.Tables.SeriesDelimiter)
	}
	if cfg.Delimiters().Alias != '\t' {
		t.Fatalf("expected tab alias delimiter from sample, got %q", cfg.Delimiters().Alias)
	}
}
