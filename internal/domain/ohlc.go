package domain

import (
	"math"
	"time"
)

// SummaryStat holds the seven per-day statistics for one measured column
// (price or quantity).
type SummaryStat struct {
	Open   float64
	Close  float64
	High   float64
	Low    float64
	Mean   float64
	Median float64
	Stdev  float64 // Population standard deviation
}

// DailyStats is one calendar date's OHLC summary. The VsPriorClose fields
// hold the percent change of each statistic relative to the previous date's
// close; they stay at the zero value for the first date of a series and for
// any date whose prior close is zero.
type DailyStats struct {
	Date time.Time // Midnight, display timezone

	Price    SummaryStat
	Quantity SummaryStat

	// Intraday percent change: close vs open of the same day.
	PriceChangeIntraday    float64
	QuantityChangeIntraday float64

	// Percent change of each statistic vs the prior date's close.
	PriceVsPriorClose    SummaryStat
	QuantityVsPriorClose SummaryStat
}

// Round2 rounds v to two decimal places, the precision carried by every
// derived percentage and price statistic.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentChange returns (value - base) / base * 100 rounded to 2 decimals,
// or 0 when base is zero. The zero return is a sentinel, not an error: a
// degenerate base degrades that one figure instead of failing the caller.
func PercentChange(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return Round2((value - base) / base * 100)
}

// ChangeVsClose computes the percent change of each statistic against a
// prior close. A zero prior close leaves every field at the zero sentinel.
func (s SummaryStat) ChangeVsClose(priorClose float64) SummaryStat {
	if priorClose == 0 {
		return SummaryStat{}
	}
	return SummaryStat{
		Open:   PercentChange(s.Open, priorClose),
		Close:  PercentChange(s.Close, priorClose),
		High:   PercentChange(s.High, priorClose),
		Low:    PercentChange(s.Low, priorClose),
		Mean:   PercentChange(s.Mean, priorClose),
		Median: PercentChange(s.Median, priorClose),
		Stdev:  PercentChange(s.Stdev, priorClose),
	}
}

// DailyReport is the DailyAggregator output consumed by candlestick chart
// builders: chronological per-day records plus the clamped series extremes
// used for axis scaling.
type DailyReport struct {
	Days     []DailyStats
	MinPrice float64
	MaxPrice float64
}
