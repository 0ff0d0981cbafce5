package entity

// SectionHeader is a line classified as a menu section title ("ENTREES",
// "Secondi Piatti", ...). Derived transiently per page; never persisted.
type SectionHeader struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
	LineIndex  int     `json:"line_index"`
}
