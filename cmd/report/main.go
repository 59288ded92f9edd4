package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"artistpulse/internal/config"
	"artistpulse/internal/exporter"
	"artistpulse/internal/infrastructure"
	"artistpulse/internal/services"
)

func main() {
	period := flag.String("period", "Last 30 Days", "reporting period (e.g. \"Last 7 Days\", \"Last 90 Days\")")
	formats := flag.String("formats", "csv,xlsx,json", "comma-separated output formats")
	outputDir := flag.String("out", "", "output directory (defaults to the configured export dir)")
	timeout := flag.Duration("timeout", 2*time.Minute, "maximum time for the report run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	dir := cfg.Export.Dir
	if *outputDir != "" {
		dir = *outputDir
	}

	dashboard := services.NewDashboardService(cfg, logger)
	reports := exporter.NewReportService(dashboard, dir, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	manifest, err := reports.Generate(ctx, *period, splitFormats(*formats))
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Report %s complete: %d file(s) in %s\n", manifest.RunID, len(manifest.Files), dir)
	for _, f := range manifest.Files {
		fmt.Printf("  %s\n", f)
	}
}

func splitFormats(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
