package entity

import "time"

// BoundingBox is an axis-aligned box in page pixel coordinates.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Word is a single recognized token within an OCR line.
type Word struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Confidence float32     `json:"confidence"`
}

// OcrLine is one recognized row of text on a page, as produced by the OCR
// collaborator. Lines are read-only input to the extraction core.
type OcrLine struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Words      []Word      `json:"words,omitempty"`
	Confidence float32     `json:"confidence"`
}

// OcrPage is one page's OCR pass: an ordered (top-to-bottom) line sequence
// plus the page-level summary the OCR collaborator reports.
type OcrPage struct {
	PageNumber int           `json:"page_number"`
	Lines      []OcrLine     `json:"lines"`
	Confidence float32       `json:"confidence"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
}
