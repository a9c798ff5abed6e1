package timeseries

import (
	"fmt"

	"auctionpulse/internal/domain"
)

// MapRange linearly maps v from the interval [inLo, inHi] onto
// [outLo, outHi]. Used to overlay the quantity series onto a price-scaled
// chart axis. When the input interval is degenerate (inHi == inLo) it
// returns domain.ErrZeroRange rather than producing NaN or Inf.
func MapRange(v, inLo, inHi, outLo, outHi float64) (float64, error) {
	if inHi == inLo {
		return 0, fmt.Errorf("%w: input interval [%v, %v]", domain.ErrZeroRange, inLo, inHi)
	}
	return (v-inLo)*(outHi-outLo)/(inHi-inLo) + outLo, nil
}
