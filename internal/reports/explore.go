package reports

// ColumnStat describes one column in an exploration summary
type ColumnStat struct {
	Name     string `json:"name"`
	NonEmpty int    `json:"non_empty"`
}

// Summary is a read-only overview of one loaded report
type Summary struct {
	Name        string       `json:"name"`
	RowCount    int          `json:"row_count"`
	ColumnCount int          `json:"column_count"`
	Columns     []ColumnStat `json:"columns"`
	Sample      []Row        `json:"sample"`
}

// DefaultSampleSize is how many leading rows Explore includes by default
const DefaultSampleSize = 5

// Explore returns a summary of a loaded report: shape, per-column non-empty
// counts, and the first sampleN rows. It never mutates the catalog.
func (c *Catalog) Explore(name string, sampleN int) (*Summary, error) {
	table, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	if sampleN <= 0 {
		sampleN = DefaultSampleSize
	}
	if sampleN > len(table.Rows) {
		sampleN = len(table.Rows)
	}

	columns := make([]ColumnStat, 0, len(table.Columns))
	for _, col := range table.Columns {
		stat := ColumnStat{Name: col}
		for _, row := range table.Rows {
			if row[col] != "" {
				stat.NonEmpty++
			}
		}
		columns = append(columns, stat)
	}

	return &Summary{
		Name:        name,
		RowCount:    table.RowCount(),
		ColumnCount: table.ColumnCount(),
		Columns:     columns,
		Sample:      table.Rows[:sampleN],
	}, nil
}
