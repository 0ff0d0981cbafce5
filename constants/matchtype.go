package constants

// MatchType describes how a candidate was matched against the entree dictionary.
type MatchType string

const (
	MatchExact   MatchType = "EXACT"
	MatchPartial MatchType = "PARTIAL"
	MatchFuzzy   MatchType = "FUZZY"
)
