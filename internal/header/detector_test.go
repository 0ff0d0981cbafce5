package header

import (
	"testing"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/lexicon"
)

func lines(texts ...string) []entity.OcrLine {
	out := make([]entity.OcrLine, len(texts))
	for i, t := range texts {
		out[i] = entity.OcrLine{Text: t, Confidence: 0.9}
	}
	return out
}

func newDetector(t *testing.T) *Detector {
	t.Helper()
	return NewDetector(lexicon.Default(), DefaultConfig(), nil)
}

func TestDetect(t *testing.T) {
	d := newDetector(t)
	got := d.Detect(lines(
		"ENTREES",
		"Grilled Salmon $24",
		"",
		"Desserts",
		"Chocolate Cake 8",
	))
	if len(got) != 2 {
		t.Fatalf("Detect returned %d headers, want 2: %+v", len(got), got)
	}
	if got[0].LineIndex != 0 || got[0].Text != "entrees" {
		t.Errorf("unexpected first header: %+v", got[0])
	}
	if got[1].LineIndex != 3 || got[1].Text != "desserts" {
		t.Errorf("unexpected second header: %+v", got[1])
	}
}

func TestScorePenalties(t *testing.T) {
	d := newDetector(t)

	// An exact vocabulary hit with no penalties scores 1.0.
	if s := d.Score("Entrees"); s < 0.99 {
		t.Errorf("Score(Entrees) = %v, want ~1.0", s)
	}
	// A priced line cannot be a header even if it contains a header word.
	if s := d.Score("Entrees $24"); s > 0.51 {
		t.Errorf("Score(priced header) = %v, want penalized below threshold", s)
	}
	// Food nouns argue against headerness.
	if s := d.Score("Chicken"); s > 0.5 {
		t.Errorf("Score(Chicken) = %v, want penalized", s)
	}
}

func TestNearestAbove(t *testing.T) {
	headers := []entity.SectionHeader{
		{Text: "entrees", LineIndex: 2},
		{Text: "desserts", LineIndex: 20},
	}
	if h := NearestAbove(5, headers, 10); h == nil || h.Text != "entrees" {
		t.Fatalf("NearestAbove(5) = %+v, want entrees", h)
	}
	// Outside the distance window.
	if h := NearestAbove(15, headers, 10); h != nil {
		t.Fatalf("NearestAbove(15) = %+v, want nil", h)
	}
	// Headers at or below the index never match.
	if h := NearestAbove(2, headers, 10); h != nil {
		t.Fatalf("NearestAbove(2) = %+v, want nil", h)
	}
	if h := NearestAbove(21, headers, 10); h == nil || h.Text != "desserts" {
		t.Fatalf("NearestAbove(21) = %+v, want desserts", h)
	}
}

func TestIsUnderEntree(t *testing.T) {
	d := newDetector(t)
	headers := []entity.SectionHeader{
		{Text: "entrees", LineIndex: 0},
		{Text: "desserts", LineIndex: 8},
	}
	if !d.IsUnderEntree(3, headers) {
		t.Error("line 3 should be under the entree header")
	}
	if d.IsUnderEntree(9, headers) {
		t.Error("line 9 is under desserts, not entrees")
	}
	// No header above within the window.
	if d.IsUnderEntree(0, headers) {
		t.Error("line 0 has no header above it")
	}
	if d.IsUnderEntree(3, nil) {
		t.Error("no headers at all")
	}
}

func TestIsUnderEntreeMultilingual(t *testing.T) {
	d := newDetector(t)
	for _, h := range []string{"secondi piatti", "plats principaux", "platos principales", "main courses"} {
		headers := []entity.SectionHeader{{Text: h, LineIndex: 0}}
		if !d.IsUnderEntree(2, headers) {
			t.Errorf("header %q not recognized as entree category", h)
		}
	}
}
