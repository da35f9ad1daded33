package reports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalog builds a snapshot directly, bypassing file IO
func testCatalog(name string, table *Table) *Catalog {
	return &Catalog{
		tables: map[string]*Table{name: table},
		names:  []string{name},
	}
}

func estimatingTable() *Table {
	return NewTable(
		[]string{"Project ID", "Assigned Estimator", "Due Date"},
		[][]string{
			{"P001", "Shaun Sauer", "2024-05-01"},
			{"P002", "Alex Doe", "2024-05-02"},
			{"P003", "  SHAUN SAUER  ", "2024-05-03"},
			{"P004", "", "2024-05-04"},
		},
	)
}

func TestFindAssignmentsAutoColumn(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	column, matches, err := catalog.FindAssignments("cost_estimating", "", "shaun")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Original row order is preserved
	assert.Equal(t, "P001", matches[0].Row["Project ID"])
	assert.Equal(t, "P003", matches[1].Row["Project ID"])
	assert.Equal(t, "Assigned Estimator", column)
	assert.Equal(t, column, matches[0].Column)
}

func TestFindAssignmentsExplicitColumn(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	column, matches, err := catalog.FindAssignments("cost_estimating", "Project ID", "p002")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Project ID", column)
	assert.Equal(t, "P002", matches[0].Value)
}

func TestFindAssignmentsUnknownColumn(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	_, _, err := catalog.FindAssignments("cost_estimating", "Nope", "shaun")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFindAssignmentsNoMatchesIsNotAnError(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	column, matches, err := catalog.FindAssignments("cost_estimating", "", "nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NotNil(t, matches)

	// The auto-selected column is reported even with zero matches
	assert.Equal(t, "Assigned Estimator", column)
}

func TestFindAssignmentsNoAssignmentColumn(t *testing.T) {
	table := NewTable([]string{"Region", "Amount"}, [][]string{{"West", "100"}})
	catalog := testCatalog("order_data", table)

	_, _, err := catalog.FindAssignments("order_data", "", "shaun")

	var noCol *NoAssignmentColumnError
	require.ErrorAs(t, err, &noCol)
	assert.Equal(t, []string{"Region", "Amount"}, noCol.Considered)
}

func TestFindAssignmentsAliasPriority(t *testing.T) {
	// "assign" outranks "owner" even though Owner appears first
	table := NewTable(
		[]string{"Owner", "Assigned To"},
		[][]string{{"Shaun", "Alex"}},
	)
	catalog := testCatalog("milestone", table)

	column, matches, err := catalog.FindAssignments("milestone", "", "alex")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Assigned To", column)
	assert.Equal(t, "Assigned To", matches[0].Column)
}

func TestFindAssignmentsRequiresUser(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	_, _, err := catalog.FindAssignments("cost_estimating", "", "   ")
	assert.Error(t, err)
}

func TestFindAssignmentsUnknownReport(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	_, _, err := catalog.FindAssignments("milestone", "", "shaun")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestExplore(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	summary, err := catalog.Explore("cost_estimating", 2)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.RowCount)
	assert.Equal(t, 3, summary.ColumnCount)
	require.Len(t, summary.Sample, 2)
	assert.Equal(t, "P001", summary.Sample[0]["Project ID"])

	require.Len(t, summary.Columns, 3)
	// The estimator column has one empty cell
	assert.Equal(t, ColumnStat{Name: "Assigned Estimator", NonEmpty: 3}, summary.Columns[1])
}

func TestExploreSampleClamped(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	summary, err := catalog.Explore("cost_estimating", 100)
	require.NoError(t, err)
	assert.Len(t, summary.Sample, 4)
}

func TestExploreUnknownReport(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	_, err := catalog.Explore("nope", 5)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestCatalogNamesCopy(t *testing.T) {
	catalog := testCatalog("cost_estimating", estimatingTable())

	names := catalog.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"cost_estimating"}, catalog.Names())
}

func TestErrorTexts(t *testing.T) {
	err := &NoAssignmentColumnError{Considered: []string{"A", "B"}}
	assert.Contains(t, err.Error(), "A, B")
	assert.True(t, errors.As(error(err), new(*NoAssignmentColumnError)))
}
