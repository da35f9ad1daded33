package reports

import (
	"errors"
	"fmt"

	"sapreports/internal/config"
	"sapreports/internal/headerdetect"
)

// Diagnosis is a human-facing view of header detection for one file: the
// raw leading rows, every candidate's score, and the chosen row. It is
// rendered on demand and never persisted.
type Diagnosis struct {
	Name       string                   `json:"name"`
	Path       string                   `json:"path"`
	Empty      bool                     `json:"empty"`
	Preview    [][]string               `json:"preview"`
	Candidates []headerdetect.Candidate `json:"candidates"`
	Chosen     headerdetect.Candidate   `json:"chosen"`
	Confident  bool                     `json:"confident"`
}

// Diagnose re-reads the raw rows of one configured report and scores each
// row in the detection window, regardless of any explicitly configured
// header row.
func Diagnose(cfg *config.Config, name string) (*Diagnosis, error) {
	entry, ok := findEntry(cfg, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
	}

	d := &Diagnosis{Name: name, Path: cfg.ReportPath(entry)}

	rows, err := readRawRows(d.Path, entry.Sheet)
	if err != nil {
		return nil, err
	}

	opts := headerdetect.Options{
		WindowSize: cfg.Detection.WindowSize,
		MinScore:   cfg.Detection.MinScore,
		Keywords:   cfg.Detection.Keywords,
	}

	result, err := headerdetect.Detect(rows, opts)
	if errors.Is(err, headerdetect.ErrEmptySheet) {
		d.Empty = true
		return d, nil
	}
	if err != nil {
		return nil, err
	}

	window := rows
	if len(window) > cfg.Detection.WindowSize {
		window = window[:cfg.Detection.WindowSize]
	}

	d.Preview = window
	d.Candidates = headerdetect.ScoreRows(rows, opts)
	d.Chosen = result.Best
	d.Confident = result.Confident

	return d, nil
}

func findEntry(cfg *config.Config, name string) (config.ReportEntry, bool) {
	for _, entry := range cfg.Reports {
		if entry.Name == name {
			return entry, true
		}
	}
	return config.ReportEntry{}, false
}
