package entity

import "time"

// TrainedWeights is the flat feature-name -> weight mapping produced by the
// external trainer. Read-only to the scorer.
type TrainedWeights struct {
	Version   int                `json:"version"`
	Weights   map[string]float64 `json:"weights"`
	FetchedAt time.Time          `json:"fetched_at"`
}
