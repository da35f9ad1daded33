package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sapreports/internal/config"
	"sapreports/internal/infrastructure"
	"sapreports/internal/reports"
)

// Diagnostic tool: shows the raw leading rows of each configured export and
// how the header locator scored them, for the cases where detection picks
// the wrong row and an explicit header_row needs to be configured.
func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to standard locations)")
	report := flag.String("report", "", "diagnose a single report (defaults to all configured reports)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
	}
	defer infrastructure.CloseLogFile()

	names := make([]string, 0, len(cfg.Reports))
	if *report != "" {
		names = append(names, *report)
	} else {
		for _, entry := range cfg.Reports {
			names = append(names, entry.Name)
		}
	}

	failed := false
	for _, name := range names {
		if err := diagnoseOne(cfg, name); err != nil {
			fmt.Printf("ERROR: %s: %v\n\n", name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func diagnoseOne(cfg *config.Config, name string) error {
	d, err := reports.Diagnose(cfg, name)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("RAW FILE INSPECTION: %s\n", d.Name)
	fmt.Printf("Path: %s\n", d.Path)
	fmt.Println(strings.Repeat("=", 70))

	if d.Empty {
		fmt.Println("Sheet is empty: no rows to score.")
		fmt.Println()
		return nil
	}

	fmt.Printf("\nFirst %d rows (0-indexed):\n", len(d.Preview))
	for i, row := range d.Preview {
		fmt.Printf("Row %d:\n", i)
		for c, value := range row {
			if strings.TrimSpace(value) == "" {
				continue
			}
			if len(value) > 50 {
				value = value[:50]
			}
			fmt.Printf("  Col %d: %s\n", c, value)
		}
	}

	fmt.Println("\nHEADER CANDIDATE SCORES")
	for _, cand := range d.Candidates {
		marker := "  "
		if cand.RowIndex == d.Chosen.RowIndex {
			marker = "->"
		}
		fmt.Printf("%s Row %d: score %.3f (%s)\n", marker, cand.RowIndex, cand.Score, strings.Join(cand.Reasons, "; "))
	}

	confidence := "confident"
	if !d.Confident {
		confidence = "NOT confident, loader will use the fallback row"
	}
	fmt.Printf("\nChosen header row: %d (score %.3f, %s)\n\n", d.Chosen.RowIndex, d.Chosen.Score, confidence)

	return nil
}
