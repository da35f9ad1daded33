package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sapreports/internal/config"
	"sapreports/internal/headerdetect"
)

// Outcome records how loading one configured report entry went
type Outcome struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	OK          bool    `json:"ok"`
	HeaderRow   int     `json:"header_row"`
	Detected    bool    `json:"detected"`
	Confidence  float64 `json:"confidence,omitempty"`
	Warning     string  `json:"warning,omitempty"`
	Error       string  `json:"error,omitempty"`
	RowCount    int     `json:"row_count"`
	ColumnCount int     `json:"column_count"`
}

// Catalog is an immutable snapshot of all successfully loaded reports.
// A reload produces a new Catalog value; existing snapshots are never
// mutated, so concurrent readers of a snapshot need no locking.
type Catalog struct {
	SnapshotID string
	LoadedAt   time.Time

	tables map[string]*Table
	names  []string
}

// Get returns the table for a logical name, or ErrReportNotFound when the
// name is absent from the snapshot (never configured, or its load failed).
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
	}
	return t, nil
}

// Names returns the logical names present in the snapshot, in load order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of loaded reports
func (c *Catalog) Len() int {
	return len(c.tables)
}

// LoadAll materializes every configured report into an immutable catalog.
// Entries fail independently: a missing or unreadable file is recorded in
// its outcome and skipped, and the remaining entries still load. The
// returned outcomes are in configuration order, one per entry.
func LoadAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Catalog, []Outcome) {
	catalog := &Catalog{
		SnapshotID: uuid.New().String(),
		LoadedAt:   time.Now(),
		tables:     make(map[string]*Table, len(cfg.Reports)),
	}

	outcomes := make([]Outcome, 0, len(cfg.Reports))
	for _, entry := range cfg.Reports {
		outcome, table := loadEntry(ctx, cfg, entry, logger)
		outcomes = append(outcomes, outcome)

		if !outcome.OK {
			logger.WarnContext(ctx, "report skipped",
				slog.String("report", entry.Name),
				slog.String("path", outcome.Path),
				slog.String("error", outcome.Error))
			continue
		}

		// The table is attached only once the entry fully loaded, so a
		// snapshot never exposes a half-loaded report
		catalog.tables[entry.Name] = table
		catalog.names = append(catalog.names, entry.Name)

		logger.InfoContext(ctx, "report loaded",
			slog.String("report", entry.Name),
			slog.Int("header_row", outcome.HeaderRow),
			slog.Bool("detected", outcome.Detected),
			slog.Int("rows", outcome.RowCount),
			slog.Int("columns", outcome.ColumnCount))
	}

	return catalog, outcomes
}

func loadEntry(ctx context.Context, cfg *config.Config, entry config.ReportEntry, logger *slog.Logger) (Outcome, *Table) {
	outcome := Outcome{Name: entry.Name, Path: cfg.ReportPath(entry)}

	rows, err := readRawRows(outcome.Path, entry.Sheet)
	if err != nil {
		outcome.Error = err.Error()
		return outcome, nil
	}

	// An empty sheet loads as an empty table rather than failing
	if len(rows) == 0 {
		outcome.OK = true
		outcome.Warning = "sheet is empty"
		return outcome, &Table{}
	}

	headerRow, err := resolveHeaderRow(ctx, cfg, entry, rows, &outcome, logger)
	if err != nil {
		outcome.Error = err.Error()
		return outcome, nil
	}

	table := NewTable(rows[headerRow], rows[headerRow+1:])
	outcome.OK = true
	outcome.HeaderRow = headerRow
	outcome.RowCount = table.RowCount()
	outcome.ColumnCount = table.ColumnCount()

	return outcome, table
}

// resolveHeaderRow applies the explicit configuration when present and
// falls back to detection otherwise. A low-confidence detection does not
// fail the entry: the configured fallback row is used and a warning is
// recorded, since ingestion prioritizes availability over perfect
// detection.
func resolveHeaderRow(ctx context.Context, cfg *config.Config, entry config.ReportEntry, rows [][]string, outcome *Outcome, logger *slog.Logger) (int, error) {
	if entry.HeaderRow != nil {
		row := *entry.HeaderRow
		if row >= len(rows) {
			return 0, fmt.Errorf("configured header row %d is beyond the %d rows present", row, len(rows))
		}
		return row, nil
	}

	result, err := headerdetect.Detect(rows, detectOptions(cfg))
	if err != nil {
		return 0, err
	}

	outcome.Detected = true
	outcome.Confidence = result.Best.Score

	if !result.Confident {
		fallback := cfg.Detection.FallbackRow
		if fallback >= len(rows) {
			fallback = 0
		}
		outcome.Warning = fmt.Sprintf(
			"no confident header candidate (best score %.2f at row %d), using fallback row %d",
			result.Best.Score, result.Best.RowIndex, fallback)
		logger.WarnContext(ctx, "header detection not confident",
			slog.String("report", entry.Name),
			slog.Float64("best_score", result.Best.Score),
			slog.Int("fallback_row", fallback))
		return fallback, nil
	}

	return result.Best.RowIndex, nil
}

func detectOptions(cfg *config.Config) headerdetect.Options {
	return headerdetect.Options{
		WindowSize: cfg.Detection.WindowSize,
		MinScore:   cfg.Detection.MinScore,
		Keywords:   cfg.Detection.Keywords,
	}
}
