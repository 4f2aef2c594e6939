package discovery

import "math"

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computeConsistency maps multiple dispersion to [0,1]. The divisor is
// max(mean, 1), not the mean: not a standard coefficient of variation, but
// the score thresholds were tuned against exactly this formula.
func computeConsistency(multiples []float64, mean float64) float64 {
	stddev := computeStddev(multiples, mean)
	denom := mean
	if denom < 1 {
		denom = 1
	}
	c := 1 - stddev/denom
	if c < 0 {
		return 0
	}
	return c
}
