package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"auctionpulse/config"
	"auctionpulse/internal/analytics"
	"auctionpulse/internal/domain"
	"auctionpulse/internal/ports"
	"auctionpulse/internal/timeseries"
)

// ChartData is the in-process boundary consumed by chart builders: repaired
// and density-reduced series for line/area charts, derived overlays, and the
// daily OHLC report for candlestick charts.
type ChartData struct {
	Server   string
	ItemSlug string

	// Hourly is the gap-repaired hourly series.
	Hourly *domain.Series
	// Averaged is Hourly reduced to one sample per block.
	Averaged *domain.Series

	// MovingAverages holds trailing means of the averaged price series,
	// keyed by wall-clock label ("4h", "12h", "24h"). Leading entries of
	// each slice are NaN missing markers.
	MovingAverages map[string][]float64

	// SuppressedPrices is the outlier-suppressed averaged price series,
	// used for the smoothed chart line. Nil when the averaged series is too
	// short for suppression.
	SuppressedPrices []float64

	// QuantityOverlay is the averaged quantity series mapped onto the price
	// axis range. Nil when either range is degenerate.
	QuantityOverlay []float64

	// Daily is the per-date OHLC report plus axis extremes.
	Daily *domain.DailyReport
}

// ChartService runs the batch reconstruction pipeline for one item: fetch,
// repair, reduce, derive, aggregate. It holds no cross-invocation state, so
// concurrent services for different items are safe by construction.
type ChartService struct {
	cfg     *config.Config
	logger  ports.Logger
	history ports.HistoryProvider
	repo    ports.SummaryRepository
	rng     *rand.Rand
}

// NewChartService creates a new application service instance. The summary
// repository is optional; pass nil to skip persistence of daily aggregates.
func NewChartService(
	cfg *config.Config,
	logger ports.Logger,
	history ports.HistoryProvider,
	repo ports.SummaryRepository,
) (*ChartService, error) {
	if cfg == nil || logger == nil || history == nil {
		return nil, fmt.Errorf("missing required dependencies for ChartService")
	}
	if cfg.BlockHours <= 0 {
		return nil, fmt.Errorf("configuration BlockHours must be positive")
	}
	if cfg.MAShortSamples <= 0 || cfg.MAMediumSamples <= 0 || cfg.MALongSamples <= 0 {
		return nil, fmt.Errorf("configuration moving average windows must be positive")
	}
	if cfg.TimerangeDays <= 0 {
		return nil, fmt.Errorf("configuration TimerangeDays must be positive")
	}

	seed := cfg.JitterSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ChartService{
		cfg:     cfg,
		logger:  logger,
		history: history,
		repo:    repo,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// BuildChartData fetches the configured item's history and runs the full
// pipeline over one batch snapshot. An upstream "no data" response surfaces
// as domain.ErrEmptyData.
func (s *ChartService) BuildChartData(ctx context.Context) (*ChartData, error) {
	obs, err := s.history.FetchPriceHistory(ctx, s.cfg.Server, s.cfg.ItemSlug, s.cfg.TimerangeDays)
	if err != nil {
		return nil, fmt.Errorf("fetching price history: %w", err)
	}
	series, err := domain.NewSeries(obs)
	if err != nil {
		return nil, fmt.Errorf("building series for %s/%s: %w", s.cfg.Server, s.cfg.ItemSlug, err)
	}
	s.logger.Info(ctx, "Price history fetched", map[string]interface{}{
		"server": s.cfg.Server, "item": s.cfg.ItemSlug, "observations": series.Len(),
	})

	hourly := timeseries.RepairGap(series.TruncateToHour(), timeseries.OutageWindow(s.cfg.Location), s.rng)
	if hourly.Len() > series.Len() {
		s.logger.Debug(ctx, "Outage window bridged with synthetic samples", map[string]interface{}{
			"synthetic": hourly.Len() - series.Len(),
		})
	}

	averaged, err := timeseries.BlockAverage(hourly, s.cfg.BlockHours)
	if err != nil {
		return nil, fmt.Errorf("block averaging: %w", err)
	}

	data := &ChartData{
		Server:         s.cfg.Server,
		ItemSlug:       s.cfg.ItemSlug,
		Hourly:         hourly,
		Averaged:       averaged,
		MovingAverages: make(map[string][]float64, 3),
	}

	for _, samples := range []int{s.cfg.MAShortSamples, s.cfg.MAMediumSamples, s.cfg.MALongSamples} {
		ma, err := timeseries.RollingMean(averaged.Prices, samples)
		if err != nil {
			return nil, fmt.Errorf("rolling mean (%d samples): %w", samples, err)
		}
		data.MovingAverages[fmt.Sprintf("%dh", samples*s.cfg.BlockHours)] = ma
	}

	suppressed, err := timeseries.SuppressOutliers(averaged.Prices)
	if err != nil {
		// Too few points to suppress; the raw line is still chartable.
		s.logger.Warn(ctx, "Skipping outlier suppression", map[string]interface{}{"reason": err.Error()})
	} else {
		data.SuppressedPrices = suppressed
	}

	data.QuantityOverlay = s.quantityOverlay(ctx, averaged)

	daily, err := analytics.AggregateDaily(hourly)
	if err != nil {
		return nil, fmt.Errorf("daily aggregation: %w", err)
	}
	data.Daily = daily

	return data, nil
}

// quantityOverlay maps the averaged quantity series onto the price axis so
// both can share one scale. A degenerate quantity or price range cannot be
// mapped; the overlay is omitted rather than failing the whole build.
func (s *ChartService) quantityOverlay(ctx context.Context, averaged *domain.Series) []float64 {
	qLo, qHi, ok := timeseries.Bounds(averaged.Quantities)
	if !ok {
		return nil
	}
	pLo, pHi, ok := timeseries.Bounds(averaged.Prices)
	if !ok {
		return nil
	}
	overlay := make([]float64, len(averaged.Quantities))
	for i, q := range averaged.Quantities {
		v, err := timeseries.MapRange(q, qLo, qHi, pLo, pHi)
		if err != nil {
			s.logger.Warn(ctx, "Skipping quantity overlay", map[string]interface{}{"reason": err.Error()})
			return nil
		}
		overlay[i] = v
	}
	return overlay
}

// StoreDailySummaries persists the report's daily aggregates when a summary
// repository is configured.
func (s *ChartService) StoreDailySummaries(ctx context.Context, data *ChartData) error {
	if s.repo == nil {
		s.logger.Debug(ctx, "No summary repository configured, skipping persistence")
		return nil
	}
	if data == nil || data.Daily == nil {
		return fmt.Errorf("no daily report to store: %w", domain.ErrEmptyData)
	}
	if err := s.repo.SaveDailySummaries(ctx, data.Server, data.ItemSlug, data.Daily.Days); err != nil {
		return fmt.Errorf("storing daily summaries: %w", err)
	}
	s.logger.Info(ctx, "Daily summaries stored", map[string]interface{}{
		"server": data.Server, "item": data.ItemSlug, "days": len(data.Daily.Days),
	})
	return nil
}
