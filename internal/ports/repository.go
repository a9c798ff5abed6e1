package ports

import (
	"context"
	"time"

	"auctionpulse/internal/domain"
)

// SummaryRepository defines the interface for storing and retrieving derived
// daily OHLC summaries. Raw scan data is never persisted; only aggregates
// computed by the pipeline are.
type SummaryRepository interface {
	// SaveDailySummaries upserts one row per calendar date for the given
	// item/server pair.
	SaveDailySummaries(ctx context.Context, server, itemSlug string, days []domain.DailyStats) error
	// DailySummaries returns stored summaries for the item/server pair with
	// dates in [from, to], ordered by date ascending.
	DailySummaries(ctx context.Context, server, itemSlug string, from, to time.Time) ([]domain.DailyStats, error)
	// Close releases the underlying database handle.
	Close() error
}
