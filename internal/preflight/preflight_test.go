package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mediacat/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || result.Detail == "" {
		t.Fatalf("expected failure with detail for missing dir, got %+v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "videos.tsv")
	if err := os.WriteFile(f, []byte("id\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckInputFile(f); !result.Passed || result.Detail != "5 bytes" {
		t.Fatalf("expected pass with size, got %+v", result)
	}
	if result := CheckInputFile(filepath.Join(dir, "absent.tsv")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
	if result := CheckInputFile(dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckSeriesAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_id") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("hits") != "1" {
			t.Errorf("expected single-item probe, got %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"status":200,"series":[{"series_id":1}]}}`))
	}))
	defer srv.Close()

	cfg := config.Default().DMM
	cfg.BaseURL = srv.URL
	cfg.AffiliateID = "aff"

	cfg.AppID = "good"
	if result := CheckSeriesAPI(context.Background(), cfg); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	cfg.AppID = "bad"
	if result := CheckSeriesAPI(context.Background(), cfg); result.Passed {
		t.Fatal("expected failure for rejected credentials")
	}
}

func TestRunAllSkipsSeriesAPIWithoutCredentials(t *testing.T) {
	t.Setenv("APP_ID", "")
	t.Setenv("AFFILIATE_ID", "")
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()

	results := RunAll(context.Background(), &cfg, []string{filepath.Join(cfg.Paths.OutputDir, "missing.csv")})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	if !results[1].Skipped {
		t.Fatalf("expected series api check to be skipped, got %+v", results[1])
	}
	if !Failed(results) {
		t.Fatal("expected missing input to fail the run")
	}
	if Failed(results[:2]) {
		t.Fatal("skipped checks must not count as failures")
	}
}
