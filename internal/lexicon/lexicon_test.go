package lexicon

import "testing"

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Entrées":          "entrees",
		"PLATS PRINCIPAUX": "plats principaux",
		"Café":             "cafe",
		"plain":            "plain",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWordBoundaryMatching(t *testing.T) {
	lex := Default()

	// "tea" must not match inside "Won Tons" style substrings.
	if lex.ContainsHeaderWord("Won Tons") {
		t.Error("ContainsHeaderWord matched inside a larger word")
	}
	if !lex.ContainsHeaderWord("ENTREES") {
		t.Error("ContainsHeaderWord missed ENTREES")
	}
	if !lex.ContainsHeaderWord("Plats Principaux") {
		t.Error("ContainsHeaderWord missed accent-folded French header")
	}
	if !lex.ContainsHeaderWord("Entrées du Jour") {
		t.Error("ContainsHeaderWord missed embedded header phrase")
	}
}

func TestBlacklist(t *testing.T) {
	lex := Default()
	for _, s := range []string{"Desserts", "WINE LIST", "contains allergen information"} {
		if !lex.IsBlacklisted(s) {
			t.Errorf("IsBlacklisted(%q) = false, want true", s)
		}
	}
	if lex.IsBlacklisted("Grilled Salmon") {
		t.Error("IsBlacklisted flagged a dish name")
	}
}

func TestEntreeCategory(t *testing.T) {
	lex := Default()
	for _, s := range []string{"ENTREES", "Secondi Piatti", "Plats Principaux", "Main Courses"} {
		if !lex.IsEntreeCategory(s) {
			t.Errorf("IsEntreeCategory(%q) = false, want true", s)
		}
	}
	if lex.IsEntreeCategory("Desserts") {
		t.Error("IsEntreeCategory flagged Desserts")
	}
}

func TestWordSets(t *testing.T) {
	lex := Default()
	if !lex.IsStopWord("the") || !lex.IsStopWord("avec") {
		t.Error("stop-word set incomplete")
	}
	if !lex.IsArticle("les") {
		t.Error("article set missing les")
	}
	if lex.IsStopWord("salmon") {
		t.Error("salmon is not a stop word")
	}
	if !lex.IsCompoundMarker("Rolls") {
		t.Error("compound marker set missing rolls")
	}
	if !lex.HasNameSuffix("Mario's Trattoria") {
		t.Error("name suffix set missing trattoria")
	}
	if lex.HasNameSuffix("Trattoria-style gnocchi bake") {
		t.Error("HasNameSuffix should only inspect the final word")
	}
}

func TestDishAnchors(t *testing.T) {
	lex := Default()
	if !lex.HasDishAnchor("Soft Shell Crab") {
		t.Error("anchor crab not matched")
	}
	if !lex.HasDishAnchor("Lobster Newburg") {
		t.Error("anchor newburg not matched")
	}
	if lex.HasDishAnchor("Crabapple Tart") {
		t.Error("anchor matched inside a larger word")
	}
}

func TestParseRejectsUnversioned(t *testing.T) {
	if _, err := Parse([]byte("headers: [entrees]")); err == nil {
		t.Error("expected error for lexicon without version")
	}
}
