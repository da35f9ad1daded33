package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sapreports/internal/reports"
)

// WriteTable writes a loaded table as CSV: one header record, then the
// rows in table order.
func WriteTable(w io.Writer, table *reports.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMatches writes assignment matches as CSV using the table's column
// order, preserving match order.
func WriteMatches(w io.Writer, columns []string, matches []reports.Match) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, m := range matches {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = m.Row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMatchesFile writes assignment matches to a CSV file, creating the
// parent directory if needed.
func WriteMatchesFile(path string, columns []string, matches []reports.Match) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteMatches(file, columns, matches)
}
