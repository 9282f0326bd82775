// Package main provides the worker command that fetches the catalog and folds
// the results into the price history.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"pricewatch/internal/config"
	"pricewatch/internal/formatter"
	"pricewatch/internal/logger"
	"pricewatch/internal/pipeline"
	"pricewatch/internal/report"
)

func main() {
	configFile := flag.String("config", "configs/monitor.yaml", "Path to YAML configuration file")
	baseURL := flag.String("base-url", "", "Catalog base URL (overrides config)")
	healthcheck := flag.Bool("healthcheck", false, "Validate the worker runs and exit")

	flag.Parse()

	if *healthcheck {
		fmt.Printf("[ok] pricewatch worker | utc=%s\n", time.Now().UTC().Format(time.RFC3339))

		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *baseURL != "" {
		cfg.Monitor.Source.BaseURL = *baseURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Invalid base URL override: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.New(cfg.Monitor.Logging.Level)

	log.Info("🚀 Starting pricewatch run")
	log.Info(fmt.Sprintf("📍 Catalog: %s (%d pages)", cfg.Monitor.Source.BaseURL, len(cfg.Monitor.Source.Pages)))

	startTime := time.Now()

	merged, err := pipeline.New(cfg, log).Run()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Run failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ History holds %d rows (%v)", len(merged), time.Since(startTime)))

	ctx := report.PrepareContext(merged)

	fmt.Println()
	fmt.Print(formatter.LatestTable(ctx.Latest))
}
