// Package main provides the report command that renders the static HTML
// report from the persisted price history.
package main

import (
	"flag"
	"fmt"
	"os"

	"pricewatch/internal/config"
	"pricewatch/internal/report"
)

func main() {
	configFile := flag.String("config", "configs/monitor.yaml", "Path to YAML configuration file")
	jsonPath := flag.String("json", "", "History JSON path (overrides config)")
	outHTML := flag.String("out", "", "Report HTML output path (overrides config)")
	templatesDir := flag.String("templates", "", "Templates directory (overrides config)")

	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	in := cfg.Monitor.Output.JSONPath
	if *jsonPath != "" {
		in = *jsonPath
	}

	out := cfg.Monitor.Output.ReportHTML
	if *outHTML != "" {
		out = *outHTML
	}

	templates := cfg.Monitor.Output.TemplatesDir
	if *templatesDir != "" {
		templates = *templatesDir
	}

	if err := report.Render(in, out, templates); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Report rendering failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Report written to %s\n", out)
}
