package headerdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleExport mirrors the shape of a real SAP export: a title banner, a
// blank spacer row, the labels, then data.
var sampleExport = [][]string{
	{"SAP Export 2024"},
	{"", "", ""},
	{"Project ID", "Assigned Estimator", "Due Date"},
	{"P001", "Shaun", "2024-05-01"},
	{"P002", "Alex", "2024-05-02"},
}

func TestDetectFindsLabelRow(t *testing.T) {
	res, err := Detect(sampleExport, Options{WindowSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Best.RowIndex)
	assert.True(t, res.Confident)
	assert.Contains(t, res.Best.Reasons, "all values unique")
}

func TestDetectPrefersTextRowOverNumericRows(t *testing.T) {
	rows := [][]string{
		{"100", "200", "300"},
		{"Region", "Cost Center", "Amount"},
		{"400", "500", "600"},
	}

	res, err := Detect(rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Best.RowIndex)
}

func TestDetectEmptySheet(t *testing.T) {
	_, err := Detect(nil, Options{})
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Detect([][]string{}, Options{})
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestDetectTieBreaksToEarliestRow(t *testing.T) {
	rows := [][]string{
		{"alpha", "beta"},
		{"alpha", "beta"},
		{"alpha", "beta"},
	}

	res, err := Detect(rows, Options{})
	require.NoError(t, err)

	// Identical content: the position bias and strict comparison both
	// favor row 0, and repeated runs must agree.
	assert.Equal(t, 0, res.Best.RowIndex)

	again, err := Detect(rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, res.Best.RowIndex, again.Best.RowIndex)
	assert.Equal(t, res.Best.Score, again.Best.Score)
}

func TestDetectShortWindow(t *testing.T) {
	rows := [][]string{
		{"Task", "Owner"},
	}

	res, err := Detect(rows, Options{WindowSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Best.RowIndex)
	assert.True(t, res.Confident)
}

func TestDetectNotConfidentOnAllNumericRows(t *testing.T) {
	rows := [][]string{
		{"1", "1", "1"},
		{"2", "2", "2"},
	}

	res, err := Detect(rows, Options{MinScore: 0.6})
	require.NoError(t, err)
	assert.False(t, res.Confident)
	// The best-effort candidate is still in range
	assert.Less(t, res.Best.RowIndex, len(rows))
}

func TestDetectWindowBound(t *testing.T) {
	rows := [][]string{
		{"1"}, {"2"}, {"3"},
		{"Project", "Owner", "Date"},
	}

	res, err := Detect(rows, Options{WindowSize: 3})
	require.NoError(t, err)
	// The label row sits outside the window and must not be selected
	assert.Less(t, res.Best.RowIndex, 3)
}

func TestScoreRowsReturnsOneCandidatePerRow(t *testing.T) {
	cands := ScoreRows(sampleExport, Options{WindowSize: 10})
	require.Len(t, cands, len(sampleExport))

	for i, c := range cands {
		assert.Equal(t, i, c.RowIndex)
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 1.0)
	}

	// Row 1 is blank and scores zero
	assert.Zero(t, cands[1].Score)
	assert.Contains(t, cands[1].Reasons, "empty row")

	// The label row beats the banner and the data rows
	for i, c := range cands {
		if i == 2 {
			continue
		}
		assert.Greater(t, cands[2].Score, c.Score, "row %d should score below the label row", i)
	}
}

func TestScoreRowKeywordBonus(t *testing.T) {
	with := scoreRow(0, 1, 2, []string{"Project ID", "Assigned Estimator"}, DefaultKeywords)
	without := scoreRow(0, 1, 2, []string{"Foo", "Bar"}, DefaultKeywords)

	assert.Greater(t, with.Score, without.Score)
}

func TestLooksNumeric(t *testing.T) {
	assert.True(t, looksNumeric("42"))
	assert.True(t, looksNumeric("1,234.56"))
	assert.True(t, looksNumeric("-0.5"))
	assert.False(t, looksNumeric("P001"))
	assert.False(t, looksNumeric("Project"))
}

func TestLooksDate(t *testing.T) {
	assert.True(t, looksDate("2024-05-01"))
	assert.True(t, looksDate("05/01/2024"))
	assert.False(t, looksDate("Due Date"))
}
