package constants

// Language tags for the menu lexicon. Menus in the wild mix these freely on a
// single page, so most lookups run against the union of all four.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Italian Language = "it"
	Spanish Language = "es"
)

var AllLanguages = []Language{English, French, Italian, Spanish}
