package scoring

import "math"

// WeightedValue is one (value, weight) pair in a weighted average.
type WeightedValue struct {
	Value  float64
	Weight float64
}

// WeightedMean computes sum(v*w)/sum(w) over the given pairs. The second
// return value is false when the total weight is zero, meaning no eligible
// pairs contributed and no meaningful average exists. Callers decide what
// absence means; this function never substitutes a zero score.
func WeightedMean(pairs []WeightedValue) (float64, bool) {
	var sum, totalWeight float64
	for _, p := range pairs {
		sum += p.Value * p.Weight
		totalWeight += p.Weight
	}
	if totalWeight == 0 {
		return 0, false
	}
	return sum / totalWeight, true
}

// Round2 rounds to two decimal places, the precision used for every score
// in the report.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
