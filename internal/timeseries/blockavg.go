package timeseries

import (
	"fmt"

	"auctionpulse/internal/domain"
	"auctionpulse/internal/ports"
)

// BlockAverage reduces sample density by averaging non-overlapping blocks of
// k consecutive samples. The first len(s) % k samples form an incomplete
// leading block and are dropped; this truncation is deliberate and lossy.
// Each output sample carries the arithmetic mean of its block's prices and
// quantities and the timestamp of the block's first sample.
//
// The divisor is always k, even if a trailing block ever came up short, so a
// short final block would be biased low. With the leading-remainder rule the
// remaining length is an exact multiple of k, so the case cannot arise.
func BlockAverage(s *domain.Series, k int) (*domain.Series, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", ports.ErrInvalidRequest, k)
	}
	n := s.Len()
	start := n % k
	out := domain.NewEmptySeries((n - start) / k)
	for i := start; i < n; i += k {
		end := i + k
		if end > n {
			end = n
		}
		priceSum, qtySum := 0.0, 0.0
		for j := i; j < end; j++ {
			priceSum += s.Prices[j]
			qtySum += s.Quantities[j]
		}
		out.Append(s.Times[i], priceSum/float64(k), qtySum/float64(k))
	}
	return out, nil
}
