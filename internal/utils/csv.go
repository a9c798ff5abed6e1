package utils

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"auctionpulse/internal/domain"
)

// WriteSeriesToCSV exports one series row per sample.
func WriteSeriesToCSV(s *domain.Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"time", "price", "quantity"})

	for i := 0; i < s.Len(); i++ {
		writer.Write([]string{
			s.Times[i].Format(time.RFC3339),
			strconv.FormatFloat(s.Prices[i], 'f', -1, 64),
			strconv.FormatFloat(s.Quantities[i], 'f', -1, 64),
		})
	}
	return writer.Error()
}

// WriteDailyStatsToCSV exports one row per calendar date of the report.
func WriteDailyStatsToCSV(days []domain.DailyStats, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{
		"date",
		"price_open", "price_close", "price_high", "price_low", "price_mean", "price_median", "price_stdev",
		"qty_open", "qty_close", "qty_high", "qty_low", "qty_mean", "qty_median", "qty_stdev",
		"price_change_intraday", "qty_change_intraday",
	})

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, d := range days {
		writer.Write([]string{
			d.Date.Format("2006-01-02"),
			f(d.Price.Open), f(d.Price.Close), f(d.Price.High), f(d.Price.Low), f(d.Price.Mean), f(d.Price.Median), f(d.Price.Stdev),
			f(d.Quantity.Open), f(d.Quantity.Close), f(d.Quantity.High), f(d.Quantity.Low), f(d.Quantity.Mean), f(d.Quantity.Median), f(d.Quantity.Stdev),
			f(d.PriceChangeIntraday), f(d.QuantityChangeIntraday),
		})
	}
	return writer.Error()
}
