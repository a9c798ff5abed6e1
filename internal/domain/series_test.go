package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewSeries(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("Failed to load location: %v", err)
	}
	obs := []Observation{
		{Time: time.Date(2023, time.March, 1, 10, 15, 0, 0, loc), MarketValue: 1200, MinBuyout: 1100, Quantity: 40},
		{Time: time.Date(2023, time.March, 1, 11, 45, 0, 0, loc), MarketValue: 1250, MinBuyout: 1150, Quantity: 42},
	}

	s, err := NewSeries(obs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Expected 2 samples, got %d", s.Len())
	}
	if len(s.Prices) != len(s.Quantities) || len(s.Prices) != len(s.Times) {
		t.Fatal("Parallel slices diverged")
	}
	// Market value is the price column.
	if s.Prices[0] != 1200 || s.Quantities[0] != 40 {
		t.Errorf("Expected (1200, 40), got (%v, %v)", s.Prices[0], s.Quantities[0])
	}
}

func TestNewSeriesEmpty(t *testing.T) {
	_, err := NewSeries(nil)
	if err == nil {
		t.Fatal("Expected error for empty input")
	}
	if !errors.Is(err, ErrEmptyData) {
		t.Errorf("Expected ErrEmptyData, got %v", err)
	}
}

func TestSeriesTruncateToHour(t *testing.T) {
	base := time.Date(2023, time.March, 1, 10, 37, 12, 500, time.UTC)
	s := NewEmptySeries(1)
	s.Append(base, 100, 10)

	out := s.TruncateToHour()
	want := time.Date(2023, time.March, 1, 10, 0, 0, 0, time.UTC)
	if !out.Times[0].Equal(want) {
		t.Errorf("Expected %v, got %v", want, out.Times[0])
	}
	// The original is untouched.
	if !s.Times[0].Equal(base) {
		t.Error("TruncateToHour mutated its input")
	}
}

func TestSeriesClone(t *testing.T) {
	s := NewEmptySeries(2)
	s.Append(time.Now(), 1, 2)
	s.Append(time.Now(), 3, 4)

	c := s.Clone()
	c.Prices[0] = 99
	if s.Prices[0] == 99 {
		t.Error("Clone shares backing storage with the original")
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(110, 100); got != 10 {
		t.Errorf("Expected 10, got %f", got)
	}
	if got := PercentChange(100, 0); got != 0 {
		t.Errorf("Expected zero sentinel for zero base, got %f", got)
	}
	if got := PercentChange(100.333, 100); got != 0.33 {
		t.Errorf("Expected rounding to 0.33, got %f", got)
	}
}

func TestChangeVsClose(t *testing.T) {
	stat := SummaryStat{Open: 110, Close: 120, High: 130, Low: 90, Mean: 105, Median: 100, Stdev: 10}
	got := stat.ChangeVsClose(100)
	if got.Open != 10 || got.Close != 20 || got.High != 30 || got.Low != -10 {
		t.Errorf("Unexpected changes: %+v", got)
	}
	if got.Mean != 5 || got.Median != 0 || got.Stdev != -90 {
		t.Errorf("Unexpected derived-stat changes: %+v", got)
	}

	if zero := stat.ChangeVsClose(0); zero != (SummaryStat{}) {
		t.Errorf("Expected zero sentinel for zero prior close, got %+v", zero)
	}
}
