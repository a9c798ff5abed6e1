package domain

import "time"

// Observation is a single auction house scan record as delivered by the
// upstream API, already converted to the display timezone.
type Observation struct {
	Time        time.Time // Scan instant
	MarketValue int64     // Market value in the smallest currency unit (copper)
	MinBuyout   int64     // Cheapest listed buyout at scan time (copper)
	Quantity    int64     // Total listed quantity at scan time
}

// Series is the canonical in-memory representation of an item's price
// history: three parallel slices where index i across all three refers to
// the same observation. Timestamps are non-decreasing.
//
// Prices and quantities are float64 because downstream transforms (block
// averaging, rolling means) produce fractional values; the constructor
// widens the integral copper amounts.
type Series struct {
	Times      []time.Time
	Prices     []float64
	Quantities []float64
}

// NewSeries builds a Series from raw observations in input order, selecting
// the market value as the price column. It returns ErrEmptyData when
// there are no observations, which callers must treat identically to an
// upstream "no data" response.
func NewSeries(obs []Observation) (*Series, error) {
	if len(obs) == 0 {
		return nil, ErrEmptyData
	}
	s := &Series{
		Times:      make([]time.Time, len(obs)),
		Prices:     make([]float64, len(obs)),
		Quantities: make([]float64, len(obs)),
	}
	for i, o := range obs {
		s.Times[i] = o.Time
		s.Prices[i] = float64(o.MarketValue)
		s.Quantities[i] = float64(o.Quantity)
	}
	return s, nil
}

// NewEmptySeries returns a Series with capacity n. Used by transforms that
// build their result incrementally.
func NewEmptySeries(n int) *Series {
	return &Series{
		Times:      make([]time.Time, 0, n),
		Prices:     make([]float64, 0, n),
		Quantities: make([]float64, 0, n),
	}
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.Times)
}

// Append adds one observation to the series.
func (s *Series) Append(t time.Time, price, quantity float64) {
	s.Times = append(s.Times, t)
	s.Prices = append(s.Prices, price)
	s.Quantities = append(s.Quantities, quantity)
}

// AppendSlice adds the observations of src in [from, to) to the series.
func (s *Series) AppendSlice(src *Series, from, to int) {
	s.Times = append(s.Times, src.Times[from:to]...)
	s.Prices = append(s.Prices, src.Prices[from:to]...)
	s.Quantities = append(s.Quantities, src.Quantities[from:to]...)
}

// Clone returns a deep copy. Transforms never alias their input, so each
// pipeline stage owns the Series it returns.
func (s *Series) Clone() *Series {
	out := &Series{
		Times:      make([]time.Time, len(s.Times)),
		Prices:     make([]float64, len(s.Prices)),
		Quantities: make([]float64, len(s.Quantities)),
	}
	copy(out.Times, s.Times)
	copy(out.Prices, s.Prices)
	copy(out.Quantities, s.Quantities)
	return out
}

// TruncateToHour returns a copy whose timestamps have minutes, seconds and
// sub-seconds zeroed. Gap repair expects hour-granular input.
func (s *Series) TruncateToHour() *Series {
	out := s.Clone()
	for i, t := range out.Times {
		out.Times[i] = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	}
	return out
}
