package extractor

import (
	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// confEpsilon absorbs float32 rounding when comparing a line's OCR
// confidence against the page average.
const confEpsilon = 1e-3

// hierarchyScore measures how visually prominent a line is, in [0,1]. Menu
// designers set dish names apart with capitals, larger or bolder type, an
// adjacent price, and whitespace above; each signal contributes additively.
func (e *Extractor) hierarchyScore(c *lineContext) float64 {
	score := 0.0

	if textutil.IsAllCaps(c.text) {
		score += 0.5
	}

	switch ratio := c.fontRatio(); {
	case ratio >= 1.5:
		score += 0.4
	case ratio >= 1.25:
		score += 0.25
	case ratio >= 1.1:
		score += 0.15
	}

	// Bold inference: heavy glyphs tend to depress OCR confidence, and bold
	// headings often rasterize taller than body text. The epsilon keeps
	// uniform-confidence pages from reading every line as below average.
	if (c.avgConf > 0 && float64(c.line().Confidence) < c.avgConf-confEpsilon) || c.fontRatio() >= 1.2 {
		score += 0.3
	}

	if price.ContainsAny(c.text) {
		score += 0.3
	} else {
		for off := 1; off <= 2; off++ {
			if t := c.lookahead(off); t != "" && price.ContainsAny(t) {
				score += 0.15
				break
			}
		}
	}

	if c.avgGap > 0 {
		switch gap := c.gapBefore(); {
		case gap >= 1.8*c.avgGap:
			score += 0.2
		case gap >= 1.3*c.avgGap:
			score += 0.1
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
