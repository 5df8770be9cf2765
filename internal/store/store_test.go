package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mediacat/internal/relation"
	"mediacat/internal/resolve"
	"mediacat/internal/store"
)

func sampleResult() *relation.Result {
	ix := relation.Indexes{
		Actress: resolve.BuildReferenceIndex([]resolve.Reference{{ID: 10, Name: "Alice"}}),
		Genre:   resolve.BuildReferenceIndex([]resolve.Reference{{ID: 20, Name: "Drama"}}),
		Maker:   resolve.BuildReferenceIndex(nil),
		Series:  resolve.BuildReferenceIndex(nil),
	}
	return relation.Extract([]relation.Record{
		{ID: 1, Code: "AAA-001", Actresses: "Alice, Bob", Genres: "Drama", Maker: "Acme"},
		{ID: 2, Code: "AAA-002", Actresses: "Bob", Maker: "Acme"},
	}, ix)
}

func TestWriteExportsPairsAndNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "export", "relations.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Write(ctx, "run-a", sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	wantCounts := map[relation.Kind]int{
		relation.KindActress: 1,
		relation.KindGenre:   1,
		relation.KindMaker:   0,
		relation.KindSeries:  0,
	}
	for kind, want := range wantCounts {
		got, err := s.PairCount(ctx, kind)
		if err != nil {
			t.Fatalf("PairCount(%s): %v", kind, err)
		}
		if got != want {
			t.Fatalf("PairCount(%s) = %d, want %d", kind, got, want)
		}
	}

	actresses, err := s.NotFound(ctx, relation.KindActress)
	if err != nil {
		t.Fatalf("NotFound: %v", err)
	}
	if len(actresses) != 1 || actresses[0].Name != "Bob" || actresses[0].Videos != "AAA-001,AAA-002" || actresses[0].Occurrences != 2 {
		t.Fatalf("unexpected actress not_found rows: %+v", actresses)
	}
	makers, err := s.NotFound(ctx, relation.KindMaker)
	if err != nil {
		t.Fatalf("NotFound: %v", err)
	}
	if len(makers) != 1 || makers[0].Name != "Acme" {
		t.Fatalf("unexpected maker not_found rows: %+v", makers)
	}
}

func TestWriteReplacesPreviousContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "relations.db")
	s, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, run := range []string{"run-a", "run-b"} {
		if err := s.Write(ctx, run, sampleResult()); err != nil {
			t.Fatalf("Write(%s): %v", run, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	count, err := reopened.PairCount(ctx, relation.KindActress)
	if err != nil {
		t.Fatalf("PairCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rewrite to replace rows, got %d", count)
	}
	runs, err := reopened.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if runs != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", runs)
	}
}

func TestWriteRejectsNilResult(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "relations.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Write(ctx, "run", nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestOpenRejectsForeignSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "relations.db")
	s, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.BumpSchemaVersionForTest(ctx); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = s.Close()

	if _, err := store.Open(ctx, path); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
