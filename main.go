package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"auctionpulse/config"
	"auctionpulse/internal/adapters/logger"
	"auctionpulse/internal/adapters/nexusclient"
	"auctionpulse/internal/adapters/sqlite"
	"auctionpulse/internal/app"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Summary Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize summary repository")
		log.Fatalf("FATAL: Failed to initialize summary repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing summary repository")
		}
	}()

	// 4. Initialize Upstream Client (NexusHub Adapter)
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

	// 5. Initialize Application Service
	chartService, err := app.NewChartService(cfg, appLogger, client, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize chart service")
		log.Fatalf("FATAL: Failed to initialize chart service: %v", err)
	}

	// 6. Run one batch pipeline and persist the daily aggregates.
	ctx := context.Background()
	data, err := chartService.BuildChartData(ctx)
	if err != nil {
		appLogger.Error(ctx, err, "Pipeline failed")
		log.Fatalf("FATAL: Pipeline failed: %v", err)
	}
	appLogger.Info(ctx, "Pipeline complete", map[string]interface{}{
		"server":       data.Server,
		"item":         data.ItemSlug,
		"hourlyPoints": data.Hourly.Len(),
		"blockPoints":  data.Averaged.Len(),
		"days":         len(data.Daily.Days),
	})

	if err := chartService.StoreDailySummaries(ctx, data); err != nil {
		appLogger.Error(ctx, err, "Failed to store daily summaries")
		log.Fatalf("FATAL: Failed to store daily summaries: %v", err)
	}

	appLogger.Info(ctx, "Application finished gracefully.")
}
