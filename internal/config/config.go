// Package config provides configuration management for the price monitor.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingSourceName        = errors.New("source.name is required")
	ErrMissingBaseURL           = errors.New("source.base_url is required")
	ErrInvalidBaseURL           = errors.New("base URL must be absolute http(s)")
	ErrNoPages                  = errors.New("at least one source page is required")
	ErrEmptyPage                = errors.New("source page paths cannot be empty")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingJSONPath          = errors.New("output.json_path is required")
	ErrMissingCSVPath           = errors.New("output.csv_path is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete monitor configuration.
type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

// MonitorConfig contains monitor-specific settings.
type MonitorConfig struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Retry   RetryPolicy   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig describes the tracked catalog.
type SourceConfig struct {
	Name           string   `yaml:"name"`
	BaseURL        string   `yaml:"base_url"`
	BackupBaseURLs []string `yaml:"backup_base_urls"`
	Pages          []string `yaml:"pages"`
	Currency       string   `yaml:"currency"`
}

// AllBaseURLs returns the primary base URL followed by the mirrors.
func (s *SourceConfig) AllBaseURLs() []string {
	urls := []string{s.BaseURL}

	return append(urls, s.BackupBaseURLs...)
}

// OutputConfig defines where run artifacts are written.
type OutputConfig struct {
	JSONPath     string `yaml:"json_path"`
	CSVPath      string `yaml:"csv_path"`
	ImagesDir    string `yaml:"images_dir"`
	ReportHTML   string `yaml:"report_html"`
	TemplatesDir string `yaml:"templates_dir"`
	PrettyPrint  bool   `yaml:"pretty_print"`
}

// RetryPolicy defines fetch retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads and validates configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills optional settings the file may leave out.
func (c *Config) applyDefaults() {
	out := &c.Monitor.Output
	if out.ImagesDir == "" {
		out.ImagesDir = "docs/images"
	}

	if out.ReportHTML == "" {
		out.ReportHTML = "docs/index.html"
	}

	if out.TemplatesDir == "" {
		out.TemplatesDir = "web/templates"
	}

	if c.Monitor.Logging.Level == "" {
		c.Monitor.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	src := &c.Monitor.Source
	if src.Name == "" {
		return ErrMissingSourceName
	}

	if src.BaseURL == "" {
		return ErrMissingBaseURL
	}

	for _, base := range src.AllBaseURLs() {
		if !isHTTPURL(base) {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
		}
	}

	if len(src.Pages) == 0 {
		return ErrNoPages
	}

	for i, page := range src.Pages {
		if page == "" {
			return fmt.Errorf("%w: pages[%d]", ErrEmptyPage, i)
		}
	}

	retry := &c.Monitor.Retry
	if retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Monitor.Output.JSONPath == "" {
		return ErrMissingJSONPath
	}

	if c.Monitor.Output.CSVPath == "" {
		return ErrMissingCSVPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Monitor.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Pages: %d, MaxAttempts: %d, JSON: %s}",
		len(c.Monitor.Source.Pages),
		c.Monitor.Retry.MaxAttempts,
		c.Monitor.Output.JSONPath,
	)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
