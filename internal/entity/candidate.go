package entity

import (
	"github.com/google/uuid"

	"github.com/josephvaleri/mlmp/constants"
)

// CandidateFeatures is the fixed-schema feature vector describing one
// candidate span. It is the unit exchanged with the external scorer/trainer,
// so fields map 1:1 onto constants.FeatureNames.
type CandidateFeatures struct {
	TokenCount int `json:"token_count"`

	HasDigit            bool `json:"has_digit"`
	HasCurrency         bool `json:"has_currency"`
	AllCaps             bool `json:"all_caps"`
	TitleCase           bool `json:"title_case"`
	PriceOnLine         bool `json:"price_on_line"`
	PriceNearby         bool `json:"price_nearby"`
	UnderEntreeHeader   bool `json:"under_entree_header"`
	NextLineDescription bool `json:"next_line_description"`
	PrevLineHeader      bool `json:"prev_line_header"`
	StartsWithArticle   bool `json:"starts_with_article"`
	EndsWithStopword    bool `json:"ends_with_stopword"`

	PunctuationDensity float64 `json:"punctuation_density"`
	UppercaseRatio     float64 `json:"uppercase_ratio"`
	LetterRatio        float64 `json:"letter_ratio"`
	AvgTokenLength     float64 `json:"avg_token_length"`
	FontSizeRatio      float64 `json:"font_size_ratio"`

	Confidence float32 `json:"confidence"`
}

// AsMap flattens the vector into the feature-name -> value mapping consumed
// by the trained scorer and persisted as the training corpus. Booleans encode
// as 0/1.
func (f CandidateFeatures) AsMap() map[string]float64 {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	return map[string]float64{
		constants.FeatTokenCount:          float64(f.TokenCount),
		constants.FeatHasDigit:            b(f.HasDigit),
		constants.FeatHasCurrency:         b(f.HasCurrency),
		constants.FeatAllCaps:             b(f.AllCaps),
		constants.FeatTitleCase:           b(f.TitleCase),
		constants.FeatPriceOnLine:         b(f.PriceOnLine),
		constants.FeatPriceNearby:         b(f.PriceNearby),
		constants.FeatUnderEntreeHeader:   b(f.UnderEntreeHeader),
		constants.FeatNextLineDescription: b(f.NextLineDescription),
		constants.FeatPrevLineHeader:      b(f.PrevLineHeader),
		constants.FeatStartsWithArticle:   b(f.StartsWithArticle),
		constants.FeatEndsWithStopword:    b(f.EndsWithStopword),
		constants.FeatPunctuationDensity:  f.PunctuationDensity,
		constants.FeatUppercaseRatio:      f.UppercaseRatio,
		constants.FeatLetterRatio:         f.LetterRatio,
		constants.FeatAvgTokenLength:      f.AvgTokenLength,
		constants.FeatFontSizeRatio:       f.FontSizeRatio,
	}
}

// Candidate is a scored, positioned span of text considered a possible dish
// name. Cleaned text never contains a currency symbol or a standalone 2+
// digit number; the price validator enforces that before emission.
type Candidate struct {
	ID            uuid.UUID         `json:"id"`
	PageNumber    int               `json:"page_number"`
	Text          string            `json:"text"`
	Box           *BoundingBox      `json:"box,omitempty"`
	HeaderContext string            `json:"header_context,omitempty"`
	Match         *EntreeMatch      `json:"match,omitempty"`
	Features      CandidateFeatures `json:"features"`
	Confidence    float32           `json:"confidence"`
}
