package timeseries

import (
	"math"
	"math/rand"
	"time"

	"auctionpulse/internal/domain"
)

// Window is a fixed wall-clock range with no real scans, to be bridged with
// synthetic samples.
type Window struct {
	Start time.Time
	End   time.Time
}

// The auction house scan feed had one extended historical outage; its
// calendar boundaries are fixed and known.
const (
	outageStartYear, outageStartMonth, outageStartDay = 2021, time.May, 21
	outageEndYear, outageEndMonth, outageEndDay       = 2021, time.June, 10
)

// OutageWindow returns the known scan outage window expressed in the given
// display timezone.
func OutageWindow(loc *time.Location) Window {
	return Window{
		Start: time.Date(outageStartYear, outageStartMonth, outageStartDay, 0, 0, 0, 0, loc),
		End:   time.Date(outageEndYear, outageEndMonth, outageEndDay, 0, 0, 0, 0, loc),
	}
}

// RepairGap bridges the outage window w by synthesizing one sample per
// missing hour via linear interpolation between the last observation at or
// before the window start and the first observation at or after the window
// end, then splicing the synthetic run between them. Multiplicative jitter
// is applied to a random subset of synthetic samples so the bridged segment
// does not look artificially smooth.
//
// The series' timestamps must already be hour-granular (see
// Series.TruncateToHour). RepairGap is a no-op when the series starts at or
// after the window, when neither window boundary falls inside the observed
// range, or when no observation exists on the far side of the window.
//
// The jitter makes the output nondeterministic; pass a seeded *rand.Rand for
// reproducible results. Tests should assert structural invariants (length,
// timestamp monotonicity, boundary inclusion), not exact synthetic values.
func RepairGap(s *domain.Series, w Window, rng *rand.Rand) *domain.Series {
	n := s.Len()
	if n == 0 {
		return s
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	first, last := s.Times[0], s.Times[n-1]
	if !first.Before(w.Start) {
		return s
	}
	startInside := !w.Start.Before(first) && !w.Start.After(last)
	endInside := !w.End.Before(first) && !w.End.After(last)
	if !startInside && !endInside {
		return s
	}

	// lastGood: final observation at or before the window start.
	lastGood := -1
	for i := 0; i < n; i++ {
		if s.Times[i].After(w.Start) {
			break
		}
		lastGood = i
	}
	// firstGood: first observation at or after the window end.
	firstGood := -1
	for i := n - 1; i >= 0; i-- {
		if s.Times[i].Before(w.End) {
			break
		}
		firstGood = i
	}
	if lastGood < 0 || firstGood < 0 {
		return s
	}

	hours := int(w.End.Sub(w.Start).Hours())
	if hours <= 0 {
		return s
	}

	perHourPrice := (s.Prices[firstGood] - s.Prices[lastGood]) / float64(hours)
	perHourQty := (s.Quantities[firstGood] - s.Quantities[lastGood]) / float64(hours)
	meanQty := Mean(s.Quantities)

	out := domain.NewEmptySeries(lastGood + 1 + hours + (n - firstGood))
	out.AppendSlice(s, 0, lastGood+1)
	for k := 0; k < hours; k++ {
		t := w.Start.Add(time.Duration(k+1) * time.Hour)
		price := math.Trunc(s.Prices[lastGood] + perHourPrice*float64(k+1))
		qty := math.Trunc(s.Quantities[lastGood] + perHourQty*float64(k+1))
		if rng.Float64() < 0.2 {
			price = math.Trunc(price * (1 + rng.Float64()*(rng.Float64()-0.5)))
		}
		if rng.Float64() < 0.5 {
			qty = math.Trunc((qty + meanQty) / 2 * (1 + (0.3+rng.Float64())*(rng.Float64()-0.5)))
		}
		out.Append(t, price, qty)
	}
	out.AppendSlice(s, firstGood, n)
	return out
}
