package extractor

import (
	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// buildFeatures fills the fixed-schema vector for one cleaned candidate span.
// Every statistic guards its denominator, so no field is ever NaN.
func (e *Extractor) buildFeatures(c *lineContext, cleaned string) entity.CandidateFeatures {
	raw := c.text

	priceNearby := false
	for off := 1; off <= e.cfg.PriceLookahead; off++ {
		if t := c.lookahead(off); t != "" && price.ContainsAny(t) {
			priceNearby = true
			break
		}
	}

	nextDesc := false
	if n := c.next(); n != nil {
		nextDesc = e.isDescription(n.Text, c, c.index+1)
	}

	return entity.CandidateFeatures{
		TokenCount: textutil.TokenCount(cleaned),

		HasDigit:            textutil.HasDigit(cleaned),
		HasCurrency:         textutil.HasCurrencySymbol(cleaned),
		AllCaps:             textutil.IsAllCaps(cleaned),
		TitleCase:           textutil.IsTitleCase(cleaned),
		PriceOnLine:         price.ContainsAny(raw),
		PriceNearby:         priceNearby,
		UnderEntreeHeader:   e.headers.IsUnderEntree(c.index, c.headers),
		NextLineDescription: nextDesc,
		PrevLineHeader:      c.isHeaderLine(c.index - 1),
		StartsWithArticle:   textutil.StartsWithArticle(cleaned, e.lex),
		EndsWithStopword:    textutil.EndsWithStopword(cleaned, e.lex),

		PunctuationDensity: textutil.PunctuationDensity(cleaned),
		UppercaseRatio:     textutil.UppercaseRatio(cleaned),
		LetterRatio:        textutil.LetterRatio(cleaned),
		AvgTokenLength:     textutil.AvgTokenLength(cleaned),
		FontSizeRatio:      c.fontRatio(),
	}
}
