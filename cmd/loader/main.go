package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sapreports/internal/config"
	"sapreports/internal/exporter"
	"sapreports/internal/infrastructure"
	"sapreports/internal/reports"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to standard locations)")
	explore := flag.String("explore", "", "print a detailed summary of one loaded report")
	find := flag.String("find", "", "report to search for assignments (defaults to cost_estimating with -user)")
	user := flag.String("user", "", "user name to search for (defaults to the configured user)")
	column := flag.String("column", "", "explicit assignment column (auto-detected when empty)")
	out := flag.String("out", "", "write assignment matches to this CSV file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	logger.Info("Loading SAP reports",
		slog.String("base_folder", cfg.BaseFolder),
		slog.Int("configured", len(cfg.Reports)))

	catalog, outcomes := reports.LoadAll(ctx, cfg, logger)
	printLoadSummary(cfg, catalog, outcomes)

	if *explore != "" {
		if err := printExploration(catalog, *explore); err != nil {
			logger.Error("Explore failed", slog.String("report", *explore), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	searchUser := *user
	if searchUser == "" && (*find != "" || *out != "") {
		searchUser = cfg.UserName
	}
	if searchUser == "" && *find == "" {
		return
	}

	reportName := *find
	if reportName == "" {
		reportName = "cost_estimating"
	}

	matchedColumn, matches, err := catalog.FindAssignments(reportName, *column, searchUser)
	if err != nil {
		logger.Error("Assignment search failed",
			slog.String("report", reportName),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	printMatches(catalog, reportName, matchedColumn, searchUser, matches)

	if *out != "" {
		table, err := catalog.Get(reportName)
		if err != nil {
			logger.Error("Report lookup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := exporter.WriteMatchesFile(*out, table.Columns, matches); err != nil {
			logger.Error("CSV export failed", slog.String("path", *out), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Matches exported", slog.String("path", *out), slog.Int("count", len(matches)))
		fmt.Printf("Wrote %d matches to %s\n", len(matches), *out)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func printLoadSummary(cfg *config.Config, catalog *reports.Catalog, outcomes []reports.Outcome) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SAP REPORT DATA LOADER")
	fmt.Println(strings.Repeat("=", 60))

	for _, o := range outcomes {
		if o.OK {
			detail := fmt.Sprintf("%d rows x %d columns, header row %d", o.RowCount, o.ColumnCount, o.HeaderRow)
			if o.Detected {
				detail += fmt.Sprintf(" (detected, score %.2f)", o.Confidence)
			}
			fmt.Printf("  [ok]   %-20s %s\n", o.Name, detail)
			if o.Warning != "" {
				fmt.Printf("         warning: %s\n", o.Warning)
			}
		} else {
			fmt.Printf("  [fail] %-20s %s\n", o.Name, o.Error)
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Loaded %d/%d reports (snapshot %s)\n", catalog.Len(), len(cfg.Reports), catalog.SnapshotID)
}

func printExploration(catalog *reports.Catalog, name string) error {
	summary, err := catalog.Explore(name, reports.DefaultSampleSize)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("REPORT EXPLORER: %s\n", strings.ToUpper(name))
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Shape: %d rows x %d columns\n\n", summary.RowCount, summary.ColumnCount)

	fmt.Printf("Columns (%d):\n", summary.ColumnCount)
	for i, col := range summary.Columns {
		pct := 0.0
		if summary.RowCount > 0 {
			pct = 100 * float64(summary.RowCount-col.NonEmpty) / float64(summary.RowCount)
		}
		fmt.Printf("  %2d. %-40s %d values (%.1f%% empty)\n", i+1, col.Name, col.NonEmpty, pct)
	}

	if len(summary.Sample) > 0 {
		fmt.Printf("\nFirst %d rows:\n", len(summary.Sample))
		for _, row := range summary.Sample {
			printRow(summary, row)
		}
	}

	return nil
}

func printRow(summary *reports.Summary, row reports.Row) {
	parts := make([]string, 0, len(summary.Columns))
	for _, col := range summary.Columns {
		v := row[col.Name]
		if len(v) > 30 {
			v = v[:30] + "..."
		}
		parts = append(parts, fmt.Sprintf("%s=%s", col.Name, v))
	}
	fmt.Printf("  %s\n", strings.Join(parts, " | "))
}

func printMatches(catalog *reports.Catalog, name, column, user string, matches []reports.Match) {
	fmt.Println()
	fmt.Printf("Found %d rows assigned to %s in %s (column %q)\n", len(matches), user, name, column)
	if len(matches) == 0 {
		return
	}

	table, err := catalog.Get(name)
	if err != nil {
		return
	}

	columns := table.Columns
	for _, m := range matches {
		parts := make([]string, 0, len(columns))
		for _, col := range columns {
			if v := m.Row[col]; v != "" {
				parts = append(parts, fmt.Sprintf("%s=%s", col, v))
			}
		}
		fmt.Printf("  row %d: %s\n", m.RowIndex, strings.Join(parts, " | "))
	}
}
