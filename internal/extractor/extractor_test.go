package extractor

import (
	"context"
	"testing"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/entree"
	"github.com/josephvaleri/mlmp/internal/header"
	"github.com/josephvaleri/mlmp/internal/lexicon"
	"github.com/josephvaleri/mlmp/internal/scoring"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

type memDict struct {
	entries []entity.EntreeName
}

func (d *memDict) Lookup(_ context.Context, _ string) ([]entity.EntreeName, error) {
	return d.entries, nil
}

func newExtractor(t *testing.T, names ...string) *Extractor {
	t.Helper()
	lex := lexicon.Default()
	det := header.NewDetector(lex, header.DefaultConfig(), nil)
	var matcher *entree.Matcher
	if len(names) > 0 {
		d := &memDict{}
		for _, n := range names {
			d.entries = append(d.entries, entity.EntreeName{Name: n, Normalized: entree.Normalize(n)})
		}
		matcher = entree.NewMatcher(d, entree.DefaultConfig(), nil)
	}
	scorer := scoring.NewScorer(nil, nil)
	return New(lex, det, matcher, scorer, DefaultConfig(), nil)
}

func page(texts ...string) entity.OcrPage {
	p := entity.OcrPage{PageNumber: 1, Confidence: 0.9}
	for _, t := range texts {
		p.Lines = append(p.Lines, entity.OcrLine{Text: t, Confidence: 0.9})
	}
	return p
}

func texts(cands []entity.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func TestScenarioAllCapsWithPrice(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page("SAUTEED MAINE SEA SCALLOP $24"), 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(got), texts(got))
	}
	c := got[0]
	if c.Text != "SAUTEED MAINE SEA SCALLOP" {
		t.Errorf("text = %q", c.Text)
	}
	if textutil.HasDigit(c.Text) || textutil.HasCurrencySymbol(c.Text) {
		t.Errorf("cleaned text still carries price content: %q", c.Text)
	}
	if !c.Features.AllCaps {
		t.Error("all-caps feature not set")
	}
	// The all-caps path boosts well past the plain heuristic score.
	if c.Confidence < 0.9 {
		t.Errorf("confidence = %v, want boosted near 1", c.Confidence)
	}
}

func TestScenarioNamePriceSplitDropsTrailingClause(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page("Lobster Newburg $18.50, a rich buttery bisque with sherry"), 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(got), texts(got))
	}
	if got[0].Text != "Lobster Newburg" {
		t.Errorf("text = %q, want Lobster Newburg", got[0].Text)
	}
}

func TestScenarioMarketPriceOnly(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page("market price"), 10)
	if len(got) != 0 {
		t.Fatalf("got %d candidates, want 0: %v", len(got), texts(got))
	}
}

func TestScenarioHeaderContext(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page("ENTREES", "Grilled Salmon $24"), 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(got), texts(got))
	}
	c := got[0]
	if c.Text != "Grilled Salmon" {
		t.Errorf("text = %q", c.Text)
	}
	if !c.Features.UnderEntreeHeader {
		t.Error("under-entree-header feature not set")
	}
	if c.HeaderContext != "entrees" {
		t.Errorf("header context = %q, want entrees", c.HeaderContext)
	}
	withoutHeader := e.Extract(context.Background(), page("Grilled Salmon $24"), 10)
	if len(withoutHeader) != 1 {
		t.Fatalf("got %d candidates without header, want 1", len(withoutHeader))
	}
	if c.Confidence < withoutHeader[0].Confidence {
		t.Errorf("header context should not lower confidence: %v < %v",
			c.Confidence, withoutHeader[0].Confidence)
	}
}

func TestScenarioDescriptionLineFiltered(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page(
		"Ribeye Steak $42",
		"Served with garlic mashed potatoes and seasonal vegetables",
	), 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(got), texts(got))
	}
	if got[0].Text != "Ribeye Steak" {
		t.Errorf("text = %q, want Ribeye Steak", got[0].Text)
	}
}

func TestDeterminism(t *testing.T) {
	e := newExtractor(t)
	p := page(
		"ENTREES",
		"Grilled Salmon $24",
		"Lobster Newburg $18.50",
		"Ribeye Steak $42",
		"Served with garlic mashed potatoes and seasonal vegetables",
	)
	first := e.Extract(context.Background(), p, 10)
	for run := 0; run < 3; run++ {
		again := e.Extract(context.Background(), p, 10)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d candidates vs %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i].Text != first[i].Text || again[i].Confidence != first[i].Confidence {
				t.Errorf("run %d: candidate %d differs: %q/%v vs %q/%v",
					run, i, again[i].Text, again[i].Confidence, first[i].Text, first[i].Confidence)
			}
		}
	}
}

func TestTopNTruncation(t *testing.T) {
	e := newExtractor(t)
	p := page(
		"Grilled Salmon $24",
		"Lobster Newburg $18.50",
		"Ribeye Steak $42",
		"Duck Confit $28",
	)
	got := e.Extract(context.Background(), p, 2)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Confidence < got[1].Confidence {
		t.Error("candidates not sorted by confidence descending")
	}
}

func TestBlacklistAndHeaderLinesRejected(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page(
		"Desserts",
		"consuming raw or undercooked meats may increase your risk",
	), 10)
	if len(got) != 0 {
		t.Fatalf("got %d candidates, want 0: %v", len(got), texts(got))
	}
}

func TestRestaurantNameRejected(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page(
		"Mario's Trattoria",
		"ENTREES",
		"Chicken Parmigiana $19",
	), 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %v", len(got), texts(got))
	}
	if got[0].Text != "Chicken Parmigiana" {
		t.Errorf("text = %q, want Chicken Parmigiana", got[0].Text)
	}
}

func TestDictionaryBoostRaisesConfidence(t *testing.T) {
	plain := newExtractor(t)
	boosted := newExtractor(t, "Lobster Newburg")

	p := page("Lobster Newburg $18.50")
	a := plain.Extract(context.Background(), p, 10)
	b := boosted.Extract(context.Background(), p, 10)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("unexpected candidate counts: %d, %d", len(a), len(b))
	}
	if b[0].Match == nil {
		t.Fatal("expected a dictionary match")
	}
	if b[0].Confidence < a[0].Confidence {
		t.Errorf("dictionary match should not lower confidence: %v < %v", b[0].Confidence, a[0].Confidence)
	}
}

func TestCompoundMarkerSplit(t *testing.T) {
	e := newExtractor(t)
	parts := splitCompoundMarkers(e, "Vegetable Egg Rolls Pepper Crusted Steak")
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2: %v", len(parts), parts)
	}
	if parts[0] != "Vegetable Egg Rolls" || parts[1] != "Pepper Crusted Steak" {
		t.Errorf("unexpected parts: %v", parts)
	}
	if got := splitCompoundMarkers(e, "Grilled Salmon"); got != nil {
		t.Errorf("two-word line should not split: %v", got)
	}
}

func TestHeaderWordInSplitPartRejected(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page(
		"Starters Crab Cakes $14",
		"Crab Cakes $14",
	), 10)
	for _, c := range got {
		if c.Text == "Starters Crab Cakes" {
			t.Fatalf("part carrying a header word was emitted: %v", texts(got))
		}
	}
	if len(got) != 1 || got[0].Text != "Crab Cakes" {
		t.Fatalf("clean line should still be emitted, got %v", texts(got))
	}
}

func TestBusinessNameInSplitPartRejected(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract(context.Background(), page("Mario's Grill Crab Cakes $12"), 10)
	if len(got) != 0 {
		t.Fatalf("part carrying a business name was emitted: %v", texts(got))
	}
}

func TestUniformConfidenceLinesNotBold(t *testing.T) {
	e := newExtractor(t)
	p := entity.OcrPage{PageNumber: 1}
	for i := 0; i < 6; i++ {
		p.Lines = append(p.Lines, entity.OcrLine{Text: "with roasted garlic", Confidence: 0.9})
	}
	avgHeight, avgGap, avgConf := pageGeometry(p.Lines)
	for i := range p.Lines {
		c := &lineContext{page: &p, index: i, text: p.Lines[i].Text, avgHeight: avgHeight, avgGap: avgGap, avgConf: avgConf}
		if got := e.hierarchyScore(c); got != 0 {
			t.Fatalf("line %d scored %v on a uniform-confidence page, want 0", i, got)
		}
	}

	// A genuinely depressed confidence still reads as bold.
	p.Lines[3].Confidence = 0.5
	_, _, avgConf = pageGeometry(p.Lines)
	c := &lineContext{page: &p, index: 3, text: p.Lines[3].Text, avgConf: avgConf}
	if got := e.hierarchyScore(c); got != 0.3 {
		t.Fatalf("low-confidence line scored %v, want 0.3", got)
	}
}

func TestIsValidEntreeName(t *testing.T) {
	lex := lexicon.Default()
	valid := []string{"Grilled Salmon", "Lobster Newburg", "Chicken Parmigiana"}
	for _, s := range valid {
		if !IsValidEntreeName(s, lex) {
			t.Errorf("IsValidEntreeName(%q) = false, want true", s)
		}
	}
	invalid := []string{
		"and Salmon",       // leading conjunction
		"Salmon, grilled",  // mid-string comma
		"Sal",              // too short
		"Salmon",           // one word
		"Grilled Salmon 24", // standalone number survives
	}
	for _, s := range invalid {
		if IsValidEntreeName(s, lex) {
			t.Errorf("IsValidEntreeName(%q) = true, want false", s)
		}
	}
}

func TestEmptyPage(t *testing.T) {
	e := newExtractor(t)
	if got := e.Extract(context.Background(), entity.OcrPage{PageNumber: 1}, 10); len(got) != 0 {
		t.Fatalf("empty page produced %d candidates", len(got))
	}
	if got := e.Extract(context.Background(), page("", " ", "x"), 10); len(got) != 0 {
		t.Fatalf("degenerate lines produced %d candidates", len(got))
	}
}
