package entity

import "github.com/josephvaleri/mlmp/constants"

// EntreeName is one entry of the reference dictionary of known dish names.
type EntreeName struct {
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	Category   string   `json:"category,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
}

// EntreeMatch is the result of a dictionary lookup. Ephemeral; computed per
// lookup call.
type EntreeMatch struct {
	Name       string              `json:"name"`
	Normalized string              `json:"normalized"`
	Category   string              `json:"category,omitempty"`
	Boost      float32             `json:"boost"`
	Type       constants.MatchType `json:"type"`
}
