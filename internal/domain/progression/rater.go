package progression

import (
	"math"

	"github.com/okian/careersim/internal/domain/model"
	"github.com/okian/careersim/pkg/rng"
)

// Rater computes overall as a position-weighted mean of attributes.
type Rater struct {
	weights map[model.Position]map[model.Attribute]float64
}

// NewRater builds a Rater over the given weight table.
func NewRater(weights map[model.Position]map[model.Attribute]float64) *Rater {
	return &Rater{weights: weights}
}

// Overall implements model.Rater. Unknown positions, or positions whose weights
// sum to zero, fall back to the plain mean of outfield attributes.
func (r *Rater) Overall(attrs model.Attributes, pos model.Position) int {
	var sum, total float64
	for attr, w := range r.weights[pos] {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		sum += attrs.Value(attr) * w
		total += w
	}
	if total == 0 {
		for _, attr := range model.AllAttributes {
			if attr.Goalkeeping() {
				continue
			}
			sum += attrs.Value(attr)
			total++
		}
	}
	return rng.Round(rng.Clamp(sum/total, 1, model.AttributeMax))
}

// relevance returns how strongly pos weights attr, scaled so the heaviest
// attribute is 1.
func (r *Rater) relevance(attr model.Attribute, pos model.Position) float64 {
	var top float64
	for _, w := range r.weights[pos] {
		if w > top {
			top = w
		}
	}
	if top <= 0 {
		return 1
	}
	return rng.Clamp(r.weights[pos][attr]/top, 0, 1)
}
