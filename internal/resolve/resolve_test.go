package resolve_test

import (
	"strings"
	"testing"

	"mediacat/internal/resolve"
)

func TestBuildReferenceIndexIsReflexive(t *testing.T) {
	records := []resolve.Reference{
		{ID: 1, Name: "Jane Doe", SecondaryName: "じぇーん"},
		{ID: 2, Name: "  Mary Major ", SecondaryName: "Mary Major"},
		{ID: 3, Name: "Solo"},
	}
	idx := resolve.BuildReferenceIndex(records)

	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		id, ok := resolve.Resolve(name, idx, nil)
		if !ok || id != rec.ID {
			t.Fatalf("expected %q to resolve to %d, got %d (ok=%v)", rec.Name, rec.ID, id, ok)
		}
	}
	if id, ok := idx.Lookup("じぇーん"); !ok || id != 1 {
		t.Fatalf("expected secondary name to map to 1, got %d (ok=%v)", id, ok)
	}
	if got := idx.Len(); got != 4 {
		t.Fatalf("expected 4 names (duplicate secondary skipped), got %d", got)
	}
	if got := idx.DistinctIDs(); got != 3 {
		t.Fatalf("expected 3 distinct ids, got %d", got)
	}
}

func TestBuildReferenceIndexLastWriteWins(t *testing.T) {
	idx := resolve.BuildReferenceIndex([]resolve.Reference{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
		{ID: 3, Name: "Alpha"},
	})
	if id, _ := idx.Lookup("Alpha"); id != 3 {
		t.Fatalf("expected later record to win, got %d", id)
	}
	names := idx.Names()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Fatalf("expected first-insert order to be kept, got %v", names)
	}
	collisions := idx.Collisions()
	if len(collisions) != 1 || collisions[0].Name != "Alpha" || collisions[0].Previous != 1 || collisions[0].Current != 3 {
		t.Fatalf("unexpected collisions: %#v", collisions)
	}
}

func TestResolveCascade(t *testing.T) {
	ref := resolve.BuildReferenceIndex([]resolve.Reference{
		{ID: 1, Name: "Jane"},
		{ID: 2, Name: "Acme"},
		{ID: 3, Name: "ACME"},
	})
	alias := resolve.BuildAliasIndex([]resolve.Alias{
		{Name: "Acme", Alias: "Acme Inc", AliasID: 7},
		{Name: "Widgets", Alias: "Widget Co", AliasID: 9},
	})

	tests := []struct {
		name     string
		query    string
		alias    *resolve.AliasIndex
		wantID   int
		wantStep resolve.Step
	}{
		{"exact", "Acme", alias, 2, resolve.StepExact},
		{"exact wins over alias", "Acme", alias, 2, resolve.StepExact},
		{"case insensitive first in order", "acme", alias, 2, resolve.StepFold},
		{"parenthetical", "Jane (Doe)", alias, 1, resolve.StepStripped},
		{"alias", "Acme Inc", alias, 7, resolve.StepAlias},
		{"alias canonical self", "Widgets", alias, 9, resolve.StepAlias},
		{"alias is exact only", "acme inc", alias, 0, resolve.StepNone},
		{"no alias table", "Acme Inc", nil, 0, resolve.StepNone},
		{"unknown", "Nobody", alias, 0, resolve.StepNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, step := resolve.ResolveStep(tt.query, ref, tt.alias)
			if id != tt.wantID || step != tt.wantStep {
				t.Fatalf("ResolveStep(%q) = (%d, %s), want (%d, %s)", tt.query, id, step, tt.wantID, tt.wantStep)
			}
		})
	}
}

func TestResolveAliasOnlyAfterReferencePasses(t *testing.T) {
	ref := resolve.BuildReferenceIndex([]resolve.Reference{{ID: 4, Name: "Studio"}})
	alias := resolve.BuildAliasIndex([]resolve.Alias{{Name: "Other", Alias: "studio", AliasID: 99}})

	id, step := resolve.ResolveStep("studio", ref, alias)
	if id != 4 || step != resolve.StepFold {
		t.Fatalf("expected case-insensitive hit before alias, got (%d, %s)", id, step)
	}
}

func TestStripParentheticalNoOp(t *testing.T) {
	ref := resolve.BuildReferenceIndex([]resolve.Reference{{ID: 1, Name: "Plain"}})
	if got := resolve.StripParenthetical("Plain"); got != "Plain" {
		t.Fatalf("expected unchanged name, got %q", got)
	}
	if got := resolve.StripParenthetical("A (b) C (d)"); got != "A  C" {
		t.Fatalf("unexpected strip result %q", got)
	}
	if _, step := resolve.ResolveStep("Missing", ref, nil); step != resolve.StepNone {
		t.Fatalf("expected no match, got %s", step)
	}
}

func TestNilIndexesNeverMatch(t *testing.T) {
	var ref *resolve.ReferenceIndex
	var alias *resolve.AliasIndex
	if _, ok := resolve.Resolve("x", ref, alias); ok {
		t.Fatal("expected nil indexes to miss")
	}
	if ref.Len() != 0 || alias.Len() != 0 {
		t.Fatal("expected zero lengths for nil indexes")
	}
}
