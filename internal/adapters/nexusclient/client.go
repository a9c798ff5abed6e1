package nexusclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"auctionpulse/internal/domain"
	"auctionpulse/internal/ports"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.nexushub.co"

// Client implements the ports.HistoryProvider interface against the NexusHub
// classic auction house API.
type Client struct {
	http     *resty.Client
	logger   ports.Logger
	location *time.Location
}

// Config holds configuration specific to the NexusHub client adapter.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Logger   ports.Logger
	Location *time.Location // Display timezone applied to every scan timestamp
}

// New creates a new NexusHub client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for NexusHub client")
	}
	if cfg.Location == nil {
		return nil, fmt.Errorf("display location is required for NexusHub client")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	cfg.Logger.Info(context.Background(), "NexusHub client configured", map[string]interface{}{"baseURL": baseURL, "timeout": timeout.String()})

	return &Client{http: http, logger: cfg.Logger, location: cfg.Location}, nil
}

// historyResponse is the upstream price history payload.
type historyResponse struct {
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Timerange int             `json:"timerange"`
	Data      []historyRecord `json:"data"`
}

type historyRecord struct {
	MarketValue int64  `json:"marketValue"`
	MinBuyout   int64  `json:"minBuyout"`
	Quantity    int64  `json:"quantity"`
	ScannedAt   string `json:"scannedAt"` // ISO-8601 UTC
}

// FetchPriceHistory retrieves the scan history for one item on one server.
// A non-2xx status is treated as "no data" and yields an empty slice, per
// the upstream contract; only transport failures surface as errors.
// Timestamps are converted from UTC to the configured display timezone here,
// before the pipeline ever sees them.
func (c *Client) FetchPriceHistory(ctx context.Context, server, itemSlug string, days int) ([]domain.Observation, error) {
	op := "FetchPriceHistory"
	if server == "" || itemSlug == "" {
		return nil, fmt.Errorf("%s failed: %w: server and item slug are required", op, ports.ErrInvalidRequest)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%s failed: %w: day window must be positive, got %d", op, ports.ErrInvalidRequest, days)
	}

	var payload historyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("timerange", strconv.Itoa(days)).
		SetResult(&payload).
		Get(fmt.Sprintf("/wow-classic/v1/items/%s/%s/prices", server, itemSlug))
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}
	if resp.IsError() {
		c.logger.Warn(ctx, op+": upstream returned non-success status, treating as no data", map[string]interface{}{
			"server": server, "item": itemSlug, "status": resp.StatusCode(),
		})
		return nil, nil
	}

	obs := make([]domain.Observation, 0, len(payload.Data))
	for _, rec := range payload.Data {
		o, err := translateRecord(rec, c.location)
		if err != nil {
			return nil, c.handleError(ctx, fmt.Errorf("failed to translate scan record: %w", err), op)
		}
		obs = append(obs, o)
	}
	c.logger.Debug(ctx, op+" successful", map[string]interface{}{"server": server, "item": itemSlug, "count": len(obs)})
	return obs, nil
}

// handleError translates transport errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}
	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var finalErr error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	case strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset by peer") ||
		strings.Contains(err.Error(), "no such host"):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	default:
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUpstreamUnavailable, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

func translateRecord(rec historyRecord, loc *time.Location) (domain.Observation, error) {
	scanned, err := time.Parse(time.RFC3339, rec.ScannedAt)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parsing scannedAt '%s': %w", rec.ScannedAt, err)
	}
	return domain.Observation{
		Time:        scanned.In(loc),
		MarketValue: rec.MarketValue,
		MinBuyout:   rec.MinBuyout,
		Quantity:    rec.Quantity,
	}, nil
}
