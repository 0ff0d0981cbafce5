package repository

import (
	"context"
	"testing"

	"github.com/josephvaleri/mlmp/internal/entity"
)

func openTestDictionary(t *testing.T) *SQLiteDictionary {
	t.Helper()
	dict, err := OpenSQLiteDictionary(context.Background(), ":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { dict.Close() })
	return dict
}

func TestSQLiteDictionaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	dict := openTestDictionary(t)

	entries := []entity.EntreeName{
		{Name: "Lobster Newburg", Normalized: "lobster newburg", Category: "seafood", Synonyms: []string{"lobster a la newburg"}},
		{Name: "Grilled Salmon", Normalized: "grilled salmon", Category: "seafood"},
		{Name: "Ribeye Steak", Normalized: "ribeye steak", Category: "steak"},
	}
	n, err := dict.Upsert(ctx, entries)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != len(entries) {
		t.Fatalf("upsert wrote %d, want %d", n, len(entries))
	}

	count, err := dict.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(entries) {
		t.Fatalf("count = %d, want %d", count, len(entries))
	}

	got, err := dict.Lookup(ctx, "lobster newburg")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var found *entity.EntreeName
	for i := range got {
		if got[i].Normalized == "lobster newburg" {
			found = &got[i]
		}
	}
	if found == nil {
		t.Fatalf("exact entry not returned: %v", got)
	}
	if len(found.Synonyms) != 1 || found.Synonyms[0] != "lobster a la newburg" {
		t.Errorf("synonyms did not survive round trip: %v", found.Synonyms)
	}
}

func TestSQLiteDictionaryTokenPrefilter(t *testing.T) {
	ctx := context.Background()
	dict := openTestDictionary(t)

	if _, err := dict.Upsert(ctx, []entity.EntreeName{
		{Name: "Grilled Salmon", Normalized: "grilled salmon"},
		{Name: "Smoked Salmon Tartine", Normalized: "smoked salmon tartine"},
		{Name: "Ribeye Steak", Normalized: "ribeye steak"},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := dict.Lookup(ctx, "salmon")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("token prefilter returned %d entries, want 2: %v", len(got), got)
	}
}

func TestSQLiteDictionaryUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	dict := openTestDictionary(t)

	first := []entity.EntreeName{{Name: "Grilled Salmon", Normalized: "grilled salmon", Category: "fish"}}
	if _, err := dict.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second := []entity.EntreeName{{Name: "Grilled Salmon", Normalized: "grilled salmon", Category: "seafood"}}
	if _, err := dict.Upsert(ctx, second); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	count, err := dict.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 after overwrite", count)
	}
	got, err := dict.Lookup(ctx, "grilled salmon")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(got) != 1 || got[0].Category != "seafood" {
		t.Fatalf("overwrite not applied: %v", got)
	}
}

func TestSQLiteDictionaryEmptyQuery(t *testing.T) {
	dict := openTestDictionary(t)
	got, err := dict.Lookup(context.Background(), "  ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("blank query returned entries: %v", got)
	}
}
