package timeseries

import (
	"fmt"
	"math"

	"auctionpulse/internal/ports"
)

// RollingMean computes a trailing simple moving average with a window of w
// samples. Output i is the mean of inputs [i-w+1 .. i]; the first w-1
// outputs have no defined value and are marked NaN rather than fabricated.
// Chart builders skip NaN entries (see Bounds).
func RollingMean(values []float64, w int) ([]float64, error) {
	if w <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ports.ErrInvalidRequest, w)
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= w {
			sum -= values[i-w]
		}
		if i >= w-1 {
			out[i] = sum / float64(w)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
