package scoring

import "github.com/josephvaleri/mlmp/internal/entity"

// Hand-tuned additive weights for heuristic mode. Kept as named constants so
// the trainer's learned weights can be compared against them field by field.
const (
	baseScore = 0.1

	tokenSweetSpotBonus  = 0.3  // 2-4 tokens
	tokenExtremesPenalty = 0.2  // 1 token or more than 6
	priceOnLineBonus     = 0.2
	priceNearbyBonus     = 0.15
	underEntreeBonus     = 0.25
	titleCaseBonus       = 0.2
	allCapsBonus         = 0.35
	digitPenalty         = 0.3
	currencyPenalty      = 0.2
	punctuationPenalty   = 0.15 // density above 0.1
	nextLineDescBonus    = 0.1
	lowLetterPenalty     = 0.2 // letter ratio below 0.6
)

// Heuristic computes the default-mode confidence: the base score plus the
// dictionary boost, adjusted by fixed per-feature weights, clamped to [0,1].
func Heuristic(f entity.CandidateFeatures, match *entity.EntreeMatch) float32 {
	score := float64(baseScore)
	if match != nil {
		score += float64(match.Boost)
	}

	switch {
	case f.TokenCount >= 2 && f.TokenCount <= 4:
		score += tokenSweetSpotBonus
	case f.TokenCount <= 1 || f.TokenCount > 6:
		score -= tokenExtremesPenalty
	}

	if f.PriceOnLine {
		score += priceOnLineBonus
	}
	if f.PriceNearby {
		score += priceNearbyBonus
	}
	if f.UnderEntreeHeader {
		score += underEntreeBonus
	}
	if f.TitleCase {
		score += titleCaseBonus
	}
	if f.AllCaps {
		score += allCapsBonus
	}

	score += fontSizeBand(f.FontSizeRatio)

	if f.HasDigit {
		score -= digitPenalty
	}
	if f.HasCurrency {
		score -= currencyPenalty
	}
	if f.PunctuationDensity > 0.1 {
		score -= punctuationPenalty
	}
	if f.NextLineDescription {
		score += nextLineDescBonus
	}
	if f.LetterRatio < 0.6 {
		score -= lowLetterPenalty
	}

	return clamp(score)
}

// fontSizeBand maps the line-height ratio onto a banded adjustment from
// -0.15 (notably smaller than page average) to +0.35 (much larger).
func fontSizeBand(ratio float64) float64 {
	switch {
	case ratio == 0: // no geometry available
		return 0
	case ratio >= 1.4:
		return 0.35
	case ratio >= 1.2:
		return 0.25
	case ratio >= 1.05:
		return 0.1
	case ratio >= 0.85:
		return 0
	default:
		return -0.15
	}
}

func clamp(v float64) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return float32(v)
}
