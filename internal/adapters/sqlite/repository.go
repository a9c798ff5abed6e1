package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"auctionpulse/internal/domain"
	"auctionpulse/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.SummaryRepository interface using SQLite.
// Only derived daily aggregates are stored; raw upstream scans never touch
// the database.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/auctionpulse.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w: %w", filepath.Dir(dbPath), ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite summary store ready", map[string]interface{}{"path": dbPath})
	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS daily_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		server TEXT NOT NULL,
		item_slug TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		price_open REAL NOT NULL,
		price_close REAL NOT NULL,
		price_high REAL NOT NULL,
		price_low REAL NOT NULL,
		price_mean REAL NOT NULL,
		price_median REAL NOT NULL,
		price_stdev REAL NOT NULL,
		qty_open REAL NOT NULL,
		qty_close REAL NOT NULL,
		qty_high REAL NOT NULL,
		qty_low REAL NOT NULL,
		qty_mean REAL NOT NULL,
		qty_median REAL NOT NULL,
		qty_stdev REAL NOT NULL,
		price_change_intraday REAL NOT NULL,
		qty_change_intraday REAL NOT NULL,
		UNIQUE (server, item_slug, date)
	);
	CREATE INDEX IF NOT EXISTS idx_daily_summaries_item_date ON daily_summaries (server, item_slug, date);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// SaveDailySummaries upserts one row per calendar date. Percent-change
// columns vs the prior close are not stored; they are recomputed on read
// from the stored closes.
func (r *Repository) SaveDailySummaries(ctx context.Context, server, itemSlug string, days []domain.DailyStats) error {
	const query = `
	INSERT INTO daily_summaries (
		server, item_slug, date,
		price_open, price_close, price_high, price_low, price_mean, price_median, price_stdev,
		qty_open, qty_close, qty_high, qty_low, qty_mean, qty_median, qty_stdev,
		price_change_intraday, qty_change_intraday)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (server, item_slug, date) DO UPDATE SET
		price_open = excluded.price_open, price_close = excluded.price_close,
		price_high = excluded.price_high, price_low = excluded.price_low,
		price_mean = excluded.price_mean, price_median = excluded.price_median,
		price_stdev = excluded.price_stdev,
		qty_open = excluded.qty_open, qty_close = excluded.qty_close,
		qty_high = excluded.qty_high, qty_low = excluded.qty_low,
		qty_mean = excluded.qty_mean, qty_median = excluded.qty_median,
		qty_stdev = excluded.qty_stdev,
		price_change_intraday = excluded.price_change_intraday,
		qty_change_intraday = excluded.qty_change_intraday`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin summary transaction: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer tx.Rollback()

	for _, d := range days {
		_, err := tx.ExecContext(ctx, query,
			server, itemSlug, d.Date,
			d.Price.Open, d.Price.Close, d.Price.High, d.Price.Low, d.Price.Mean, d.Price.Median, d.Price.Stdev,
			d.Quantity.Open, d.Quantity.Close, d.Quantity.High, d.Quantity.Low, d.Quantity.Mean, d.Quantity.Median, d.Quantity.Stdev,
			d.PriceChangeIntraday, d.QuantityChangeIntraday)
		if err != nil {
			return fmt.Errorf("failed to upsert summary for %s/%s on %s: %w: %w",
				server, itemSlug, d.Date.Format("2006-01-02"), ports.ErrUpdateFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summary transaction: %w: %w", ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Daily summaries saved", map[string]interface{}{"server": server, "item": itemSlug, "days": len(days)})
	return nil
}

// DailySummaries returns stored summaries for the item/server pair with
// dates in [from, to], ordered by date ascending.
func (r *Repository) DailySummaries(ctx context.Context, server, itemSlug string, from, to time.Time) ([]domain.DailyStats, error) {
	const query = `
	SELECT date,
		price_open, price_close, price_high, price_low, price_mean, price_median, price_stdev,
		qty_open, qty_close, qty_high, qty_low, qty_mean, qty_median, qty_stdev,
		price_change_intraday, qty_change_intraday
	FROM daily_summaries
	WHERE server = ? AND item_slug = ? AND date >= ? AND date <= ?
	ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, server, itemSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summaries for %s/%s: %w: %w", server, itemSlug, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	days := make([]domain.DailyStats, 0)
	for rows.Next() {
		var d domain.DailyStats
		err := rows.Scan(&d.Date,
			&d.Price.Open, &d.Price.Close, &d.Price.High, &d.Price.Low, &d.Price.Mean, &d.Price.Median, &d.Price.Stdev,
			&d.Quantity.Open, &d.Quantity.Close, &d.Quantity.High, &d.Quantity.Low, &d.Quantity.Mean, &d.Quantity.Median, &d.Quantity.Stdev,
			&d.PriceChangeIntraday, &d.QuantityChangeIntraday)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily summary row: %w: %w", ports.ErrQueryFailed, err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily summary rows: %w: %w", ports.ErrQueryFailed, err)
	}

	// Rebuild the vs-prior-close percentages from the stored closes.
	for i := 1; i < len(days); i++ {
		days[i].PriceVsPriorClose = days[i].Price.ChangeVsClose(days[i-1].Price.Close)
		days[i].QuantityVsPriorClose = days[i].Quantity.ChangeVsClose(days[i-1].Quantity.Close)
	}
	return days, nil
}
