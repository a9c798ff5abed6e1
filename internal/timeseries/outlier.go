package timeseries

import (
	"fmt"

	"auctionpulse/internal/domain"
)

// SuppressOutliers replaces statistically extreme values with a locally
// representative estimate in two passes. The first pass replaces values
// outside mean ± 2 stdev with the mean; the second recomputes the threshold
// over the cleaned data so a single extreme value cannot inflate the stdev
// and hide the remaining outliers. Original values that still violate the
// tightened threshold become the blend (m1+m2)/2.
//
// The result is deterministic for a given input. It returns
// domain.ErrInsufficientData for fewer than two values, where the standard
// deviation is undefined.
func SuppressOutliers(values []float64) ([]float64, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values, got %d", domain.ErrInsufficientData, len(values))
	}

	m1 := Mean(values)
	s1 := StdevSample(values)
	out := make([]float64, len(values))
	for i, x := range values {
		if x > m1+2*s1 || x < m1-2*s1 {
			out[i] = m1
		} else {
			out[i] = x
		}
	}

	m2 := Mean(out)
	s2 := StdevSample(out)
	for i, x := range values {
		// Thresholds apply to the original value, not the pass-1 result.
		if x > m2+2*s2 || x < m2-2*s2 {
			out[i] = (m1 + m2) / 2
		}
	}
	return out, nil
}
