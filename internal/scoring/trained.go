package scoring

import (
	"math"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// Trained computes the learned-mode confidence: base score plus dictionary
// boost, plus feature·weight for every feature present in the mapping, passed
// through a logistic squash and clamped to [0,1].
func Trained(f entity.CandidateFeatures, match *entity.EntreeMatch, weights map[string]float64) float32 {
	sum := float64(baseScore)
	if match != nil {
		sum += float64(match.Boost)
	}
	for name, value := range f.AsMap() {
		if w, ok := weights[name]; ok {
			sum += value * w
		}
	}
	return clamp(sigmoid(sum))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
