package reports

import (
	"fmt"
	"strings"
)

// assignmentAliases are checked in priority order; the first column whose
// name contains an alias wins. Deterministic by construction.
var assignmentAliases = []string{"assign", "estimator", "owner"}

// Match is one row whose chosen column matched the user name
type Match struct {
	RowIndex int    `json:"row_index"`
	Column   string `json:"column"`
	Value    string `json:"value"`
	Row      Row    `json:"row"`
}

// FindAssignments scans one column of one report for rows whose value
// contains the user name (trimmed, case-folded substring match). With an
// empty column argument the column is auto-selected from the assignment
// aliases. The column that was actually scanned comes back alongside the
// matches, so callers learn the auto-selected name even when nothing
// matched. Rows come back in original order; no matches is an empty slice,
// not an error.
func (c *Catalog) FindAssignments(name, column, user string) (string, []Match, error) {
	table, err := c.Get(name)
	if err != nil {
		return "", nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(user))
	if needle == "" {
		return "", nil, fmt.Errorf("user name is required")
	}

	if column == "" {
		column, err = pickAssignmentColumn(table.Columns)
		if err != nil {
			return "", nil, err
		}
	} else if !table.HasColumn(column) {
		return "", nil, fmt.Errorf("%w: %q in report %s", ErrColumnNotFound, column, name)
	}

	matches := []Match{}
	for i, row := range table.Rows {
		value := row[column]
		if strings.Contains(strings.ToLower(strings.TrimSpace(value)), needle) {
			matches = append(matches, Match{
				RowIndex: i,
				Column:   column,
				Value:    value,
				Row:      row,
			})
		}
	}

	return column, matches, nil
}

// pickAssignmentColumn returns the first column matching the highest
// priority alias
func pickAssignmentColumn(columns []string) (string, error) {
	for _, alias := range assignmentAliases {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), alias) {
				return col, nil
			}
		}
	}
	return "", &NoAssignmentColumnError{Considered: columns}
}
