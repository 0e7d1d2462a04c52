package funnel

import "math"

// percent returns numerator/denominator*100 capped to [0,100]; 0 when the
// denominator is 0.
func percent(numerator, denominator int) float64 {
	if denominator <= 0 || numerator <= 0 {
		return 0
	}
	rate := float64(numerator) / float64(denominator) * 100
	return math.Min(rate, 100)
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
