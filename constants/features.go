package constants

// Canonical feature names. These are the keys of the feature map exchanged
// with the external trainer, so they must stay stable across releases: the
// trainer's weight mapping is keyed by these exact strings.
const (
	FeatTokenCount          = "token_count"
	FeatHasDigit            = "has_digit"
	FeatHasCurrency         = "has_currency"
	FeatAllCaps             = "all_caps"
	FeatTitleCase           = "title_case"
	FeatPriceOnLine         = "price_on_line"
	FeatPriceNearby         = "price_nearby"
	FeatUnderEntreeHeader   = "under_entree_header"
	FeatNextLineDescription = "next_line_description"
	FeatPrevLineHeader      = "prev_line_header"
	FeatStartsWithArticle   = "starts_with_article"
	FeatEndsWithStopword    = "ends_with_stopword"
	FeatPunctuationDensity  = "punctuation_density"
	FeatUppercaseRatio      = "uppercase_ratio"
	FeatLetterRatio         = "letter_ratio"
	FeatAvgTokenLength      = "avg_token_length"
	FeatFontSizeRatio       = "font_size_ratio"
)

// FeatureNames lists every canonical feature name in a fixed order.
var FeatureNames = []string{
	FeatTokenCount,
	FeatHasDigit,
	FeatHasCurrency,
	FeatAllCaps,
	FeatTitleCase,
	FeatPriceOnLine,
	FeatPriceNearby,
	FeatUnderEntreeHeader,
	FeatNextLineDescription,
	FeatPrevLineHeader,
	FeatStartsWithArticle,
	FeatEndsWithStopword,
	FeatPunctuationDensity,
	FeatUppercaseRatio,
	FeatLetterRatio,
	FeatAvgTokenLength,
	FeatFontSizeRatio,
}
