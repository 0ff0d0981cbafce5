package extractor

import (
	"strings"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// lineContext carries the per-line view the rules operate on: the line, its
// neighbors, the page's detected headers, and page-average geometry. Lines
// are processed strictly in order because these lookups depend on it.
type lineContext struct {
	page    *entity.OcrPage
	index   int
	text    string // trimmed line text
	headers []entity.SectionHeader

	avgHeight float64
	avgGap    float64
	avgConf   float64
}

func (c *lineContext) line() *entity.OcrLine {
	return &c.page.Lines[c.index]
}

func (c *lineContext) prev() *entity.OcrLine {
	if c.index == 0 {
		return nil
	}
	return &c.page.Lines[c.index-1]
}

func (c *lineContext) next() *entity.OcrLine {
	if c.index+1 >= len(c.page.Lines) {
		return nil
	}
	return &c.page.Lines[c.index+1]
}

// lookahead returns the trimmed text of the line at index+offset, or "".
func (c *lineContext) lookahead(offset int) string {
	i := c.index + offset
	if i <= c.index || i >= len(c.page.Lines) {
		return ""
	}
	return strings.TrimSpace(c.page.Lines[i].Text)
}

// fontRatio is the line height over the page-average line height, 0 when the
// page carries no usable geometry.
func (c *lineContext) fontRatio() float64 {
	if c.avgHeight <= 0 {
		return 0
	}
	return float64(c.line().Box.Height) / c.avgHeight
}

// gapBefore is the vertical whitespace between this line and the previous
// one, in pixels; 0 for the first line or without geometry.
func (c *lineContext) gapBefore() float64 {
	p := c.prev()
	if p == nil {
		return 0
	}
	gap := c.line().Box.Y - (p.Box.Y + p.Box.Height)
	if gap < 0 {
		return 0
	}
	return float64(gap)
}

// isHeaderLine reports whether line i was classified as a section header.
func (c *lineContext) isHeaderLine(i int) bool {
	for _, h := range c.headers {
		if h.LineIndex == i {
			return true
		}
	}
	return false
}

// pageGeometry computes the page averages the visual rules compare against.
// Zero-height lines are excluded so text-only pages yield zero averages
// rather than skewed ones.
func pageGeometry(lines []entity.OcrLine) (avgHeight, avgGap, avgConf float64) {
	heights, gaps := 0, 0
	var heightSum, gapSum, confSum float64
	for i := range lines {
		if h := lines[i].Box.Height; h > 0 {
			heightSum += float64(h)
			heights++
		}
		confSum += float64(lines[i].Confidence)
		if i > 0 {
			gap := lines[i].Box.Y - (lines[i-1].Box.Y + lines[i-1].Box.Height)
			if gap > 0 {
				gapSum += float64(gap)
				gaps++
			}
		}
	}
	if heights > 0 {
		avgHeight = heightSum / float64(heights)
	}
	if gaps > 0 {
		avgGap = gapSum / float64(gaps)
	}
	if len(lines) > 0 {
		avgConf = confSum / float64(len(lines))
	}
	return avgHeight, avgGap, avgConf
}
