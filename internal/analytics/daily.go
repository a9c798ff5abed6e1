package analytics

import (
	"math"
	"time"

	"auctionpulse/internal/domain"
	"auctionpulse/internal/timeseries"
)

// clampTolerance is the stdev multiple used by the pre-aggregation clamp.
// Much wider than the chart-line outlier suppression: only truly wild scans
// should move, so candle shapes stay honest.
const clampTolerance = 5.0

// dailyBucket collects one calendar date's samples in chronological order.
// Every bucket except the first is seeded with the prior date's final
// observation when statistics are computed, so day-boundary deltas are not
// lost and each day's open reflects continuity with the prior close.
type dailyBucket struct {
	date       time.Time
	prices     []float64
	quantities []float64
}

// AggregateDaily computes one DailyStats record per calendar date of the
// series, in chronological order, plus the clamped price extremes for axis
// scaling. Timestamps are assumed to already be in the display timezone.
//
// Percent-change-vs-prior-close fields are left at zero for the first date
// and for any date whose prior close is zero; a degenerate date degrades
// locally instead of aborting the whole aggregation.
func AggregateDaily(s *domain.Series) (*domain.DailyReport, error) {
	if s == nil || s.Len() == 0 {
		return nil, domain.ErrEmptyData
	}

	prices := clampExtremes(s.Prices)
	minPrice, maxPrice, _ := timeseries.Bounds(prices)

	buckets := bucketByDate(s.Times, prices, s.Quantities)

	report := &domain.DailyReport{
		Days:     make([]domain.DailyStats, 0, len(buckets)),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
	for i, b := range buckets {
		dayPrices := b.prices
		dayQtys := b.quantities
		if i > 0 {
			prev := buckets[i-1]
			dayPrices = seeded(prev.prices[len(prev.prices)-1], dayPrices)
			dayQtys = seeded(prev.quantities[len(prev.quantities)-1], dayQtys)
		}

		day := domain.DailyStats{
			Date:     b.date,
			Price:    summarize(dayPrices, domain.Round2),
			Quantity: summarize(dayQtys, math.Round),
		}
		day.PriceChangeIntraday = domain.PercentChange(day.Price.Close, day.Price.Open)
		day.QuantityChangeIntraday = domain.PercentChange(day.Quantity.Close, day.Quantity.Open)
		if i > 0 {
			prevDay := report.Days[i-1]
			day.PriceVsPriorClose = day.Price.ChangeVsClose(prevDay.Price.Close)
			day.QuantityVsPriorClose = day.Quantity.ChangeVsClose(prevDay.Quantity.Close)
		}
		report.Days = append(report.Days, day)
	}
	return report, nil
}

// clampExtremes bounds raw prices to the envelope of a 2-sample rolling mean
// plus/minus clampTolerance standard deviations. Series too short to carry a
// rolling mean are returned unchanged.
func clampExtremes(prices []float64) []float64 {
	out := make([]float64, len(prices))
	copy(out, prices)
	if len(prices) < 2 {
		return out
	}

	rolled, err := timeseries.RollingMean(prices, 2)
	if err != nil {
		return out
	}
	valid := make([]float64, 0, len(rolled))
	for _, v := range rolled {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	m := timeseries.Mean(valid)
	sd := timeseries.StdevSample(valid)
	ceiling := m + clampTolerance*sd
	floor := m - clampTolerance*sd
	for i, p := range out {
		if p > ceiling {
			out[i] = ceiling
		} else if p < floor {
			out[i] = floor
		}
	}
	return out
}

// bucketByDate partitions the samples by the calendar date of their
// timestamp. Timestamps are non-decreasing, so samples for one date are
// contiguous and bucket dates come out sorted ascending.
func bucketByDate(times []time.Time, prices, quantities []float64) []dailyBucket {
	var buckets []dailyBucket
	for i, t := range times {
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if len(buckets) == 0 || !buckets[len(buckets)-1].date.Equal(date) {
			buckets = append(buckets, dailyBucket{date: date})
		}
		b := &buckets[len(buckets)-1]
		b.prices = append(b.prices, prices[i])
		b.quantities = append(b.quantities, quantities[i])
	}
	return buckets
}

func seeded(seed float64, values []float64) []float64 {
	out := make([]float64, 0, len(values)+1)
	out = append(out, seed)
	return append(out, values...)
}

// summarize computes the per-day statistics for one column. Open, close,
// high and low are actual samples; mean, median and stdev are derived and
// rounded with the column's rounding rule (2 decimals for prices, nearest
// integer for quantities).
func summarize(values []float64, round func(float64) float64) domain.SummaryStat {
	stat := domain.SummaryStat{
		Open:  values[0],
		Close: values[len(values)-1],
		High:  values[0],
		Low:   values[0],
	}
	for _, v := range values {
		if v > stat.High {
			stat.High = v
		}
		if v < stat.Low {
			stat.Low = v
		}
	}
	stat.Mean = round(timeseries.Mean(values))
	stat.Median = round(timeseries.Median(values))
	stat.Stdev = round(timeseries.StdevPopulation(values))
	return stat
}
