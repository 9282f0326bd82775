// Package pipeline wires one monitor execution end to end: fetch, validate,
// cache images, merge into history and persist.
package pipeline

import (
	"fmt"
	"time"

	"pricewatch/internal/config"
	"pricewatch/internal/crawler"
	"pricewatch/internal/history"
	"pricewatch/internal/logger"
	"pricewatch/internal/media"
	"pricewatch/internal/models"
	"pricewatch/internal/normalizer"
	"pricewatch/internal/storage"
)

// Pipeline runs one monitor pass against the configured catalog.
type Pipeline struct {
	cfg       *config.Config
	log       *logger.Logger
	source    crawler.Source
	images    *media.Cache
	validator *normalizer.Validator
}

// New creates a pipeline from configuration with default collaborators.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	scraper := crawler.NewScraperWithConfig(&cfg.Monitor.Retry, 0)
	source := crawler.NewCatalogSource(&cfg.Monitor.Source, scraper)
	images := media.NewCache(cfg.Monitor.Output.ImagesDir, scraper)

	return NewWithDeps(cfg, log, source, images)
}

// NewWithDeps creates a pipeline with injected collaborators.
func NewWithDeps(cfg *config.Config, log *logger.Logger, source crawler.Source, images *media.Cache) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		log:       log,
		source:    source,
		images:    images,
		validator: normalizer.NewValidator(),
	}
}

// Run executes one monitor pass and returns the merged history. The run
// timestamp is assigned once, so every product fetched in this pass shares
// the same capture instant.
func (p *Pipeline) Run() ([]models.Snapshot, error) {
	now := time.Now().UTC()

	fetched, err := p.source.Fetch(now)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s failed: %w", p.source.Name(), err)
	}

	p.log.Info("fetched snapshots", "source", p.source.Name(), "count", len(fetched))

	if err := p.validator.ValidateBatch(fetched); err != nil {
		return nil, fmt.Errorf("fetched batch is invalid: %w", err)
	}

	for i := range fetched {
		path, err := p.images.Ensure(fetched[i].ImageURL, fetched[i].Model)
		if err != nil {
			return nil, err
		}

		fetched[i].ImagePath = path
	}

	existing, err := storage.ReadJSONIfExists(p.cfg.Monitor.Output.JSONPath)
	if err != nil {
		return nil, err
	}

	p.log.Debug("loaded existing history", "rows", len(existing))

	merged := history.Merge(existing, fetched)

	if err := storage.WriteJSON(p.cfg.Monitor.Output.JSONPath, merged, p.cfg.Monitor.Output.PrettyPrint); err != nil {
		return nil, err
	}

	if err := storage.WriteCSV(p.cfg.Monitor.Output.CSVPath, merged); err != nil {
		return nil, err
	}

	p.log.Info("history persisted", "rows", len(merged), "added", len(merged)-len(existing))

	return merged, nil
}
