package reports

import (
	"fmt"
	"strings"
)

// Row maps column name to cell value. Every declared column is present;
// missing cells hold the empty string.
type Row map[string]string

// Table is an immutable named-column view of one loaded report
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a Table from a raw header row and the data rows beneath
// it. Column labels are trimmed, blank labels are dropped along with their
// cells, and duplicate labels get a deterministic _2, _3... suffix so every
// cell keeps a stable key.
func NewTable(header []string, data [][]string) *Table {
	columns, indices := normalizeColumns(header)

	rows := make([]Row, 0, len(data))
	for _, raw := range data {
		row := make(Row, len(columns))
		for c, col := range columns {
			i := indices[c]
			if i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// HasColumn reports whether the table declares the given column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// normalizeColumns returns the cleaned column names and, for each, the
// index of its source cell in the raw header row
func normalizeColumns(header []string) ([]string, []int) {
	columns := make([]string, 0, len(header))
	indices := make([]int, 0, len(header))
	used := make(map[string]bool, len(header))

	for i, label := range header {
		name := strings.TrimSpace(label)
		if name == "" {
			continue
		}

		// A suffixed name can itself collide with a literal label such as
		// "A_2", so keep counting until the name is actually free
		if used[name] {
			base := name
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true

		columns = append(columns, name)
		indices = append(indices, i)
	}

	return columns, indices
}
