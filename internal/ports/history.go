package ports

import (
	"context"

	"auctionpulse/internal/domain"
)

// HistoryProvider defines the interface for fetching auction house price
// history from an upstream API.
type HistoryProvider interface {
	// FetchPriceHistory retrieves the scanned price history for one item on
	// one server over the last `days` days. A "no data" upstream response
	// (including non-2xx statuses) yields an empty slice and a nil error;
	// only transport-level failures return an error.
	FetchPriceHistory(ctx context.Context, server, itemSlug string, days int) ([]domain.Observation, error)
}
