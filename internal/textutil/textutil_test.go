package textutil

import (
	"testing"

	"github.com/josephvaleri/mlmp/internal/lexicon"
)

func TestIsAllCaps(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"SAUTEED MAINE SEA SCALLOP", true},
		{"FISH & CHIPS", true},
		{"CHEF'S SPECIAL", true},
		{"Grilled Salmon", false},
		{"GRILLED salmon", false},
		{"1234 $$", false}, // no letters
		{"", false},
	}
	for _, c := range cases {
		if got := IsAllCaps(c.in); got != c.want {
			t.Errorf("IsAllCaps(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Grilled Salmon", true},
		{"Lobster Newburg", true},
		{"Grilled salmon", false},
		{"GRILLED SALMON", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsTitleCase(c.in); got != c.want {
			t.Errorf("IsTitleCase(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRatiosGuardZeroDenominator(t *testing.T) {
	for _, fn := range []func(string) float64{LetterRatio, UppercaseRatio, PunctuationDensity, AvgTokenLength} {
		got := fn("")
		if got != got { // NaN check
			t.Fatal("ratio returned NaN for empty input")
		}
		if got != 0 {
			t.Errorf("ratio on empty input = %v, want 0", got)
		}
	}
}

func TestRatios(t *testing.T) {
	if got := LetterRatio("ab12"); got != 0.5 {
		t.Errorf("LetterRatio = %v, want 0.5", got)
	}
	if got := UppercaseRatio("AbCd"); got != 0.5 {
		t.Errorf("UppercaseRatio = %v, want 0.5", got)
	}
	if got := PunctuationDensity("a,b;c:d,"); got != 0.5 {
		t.Errorf("PunctuationDensity = %v, want 0.5", got)
	}
	if got := AvgTokenLength("ab cdef"); got != 3 {
		t.Errorf("AvgTokenLength = %v, want 3", got)
	}
}

func TestStopWordChecks(t *testing.T) {
	lex := lexicon.Default()
	if !StartsWithArticle("The Big Plate", lex) {
		t.Error("StartsWithArticle missed 'The'")
	}
	if StartsWithArticle("Grilled Salmon", lex) {
		t.Error("StartsWithArticle false positive")
	}
	if !EndsWithStopword("Steak and", lex) {
		t.Error("EndsWithStopword missed 'and'")
	}
	if got := MeaningfulWordCount("the catch of the day", lex); got != 2 {
		t.Errorf("MeaningfulWordCount = %d, want 2", got)
	}
}

func TestIsDigitsOrPunct(t *testing.T) {
	if !IsDigitsOrPunct("12 - 34.") {
		t.Error("expected true for digits and punctuation")
	}
	if IsDigitsOrPunct("a1") {
		t.Error("expected false when letters present")
	}
}
