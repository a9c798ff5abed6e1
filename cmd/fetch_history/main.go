package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"auctionpulse/config"
	"auctionpulse/internal/adapters/logger"
	"auctionpulse/internal/adapters/nexusclient"
	"auctionpulse/internal/app"
	"auctionpulse/internal/utils"
)

// Fetches one item's price history, runs the reconstruction pipeline, and
// exports the hourly series and daily OHLC summaries as CSV.
func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Upstream Client (NexusHub Adapter)
	client, err := nexusclient.New(nexusclient.Config{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.HTTPTimeout,
		Logger:   appLogger,
		Location: cfg.Location,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize NexusHub client")
		log.Fatalf("FATAL: Failed to initialize NexusHub client: %v", err)
	}

	// 4. Run the pipeline without persistence.
	chartService, err := app.NewChartService(cfg, appLogger, client, nil)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize chart service")
		log.Fatalf("FATAL: Failed to initialize chart service: %v", err)
	}

	ctx := context.Background()
	fmt.Printf("Fetching %d days of history for %s on %s...\n", cfg.TimerangeDays, cfg.ItemSlug, cfg.Server)
	data, err := chartService.BuildChartData(ctx)
	if err != nil {
		appLogger.Error(ctx, err, "Error building chart data")
		log.Fatalf("Error building chart data: %v", err)
	}
	appLogger.Info(ctx, "Pipeline complete", map[string]interface{}{
		"hourlyPoints": data.Hourly.Len(),
		"blockPoints":  data.Averaged.Len(),
		"days":         len(data.Daily.Days),
	})

	// 5. Export CSVs.
	if err := os.MkdirAll("data", 0755); err != nil {
		log.Fatalf("Error creating data directory: %v", err)
	}
	stamp := time.Now().Format("20060102")
	seriesFile := filepath.Join("data", fmt.Sprintf("%s_%s_hourly_%s.csv", cfg.Server, cfg.ItemSlug, stamp))
	if err := utils.WriteSeriesToCSV(data.Hourly, seriesFile); err != nil {
		appLogger.Error(ctx, err, "Error writing series CSV")
		log.Fatalf("Error writing series CSV: %v", err)
	}
	dailyFile := filepath.Join("data", fmt.Sprintf("%s_%s_daily_%s.csv", cfg.Server, cfg.ItemSlug, stamp))
	if err := utils.WriteDailyStatsToCSV(data.Daily.Days, dailyFile); err != nil {
		appLogger.Error(ctx, err, "Error writing daily CSV")
		log.Fatalf("Error writing daily CSV: %v", err)
	}
	appLogger.Info(ctx, "Saved CSV exports", map[string]interface{}{"series": seriesFile, "daily": dailyFile})
}
