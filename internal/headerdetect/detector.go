package headerdetect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrEmptySheet is returned when a sheet has no rows at all. It is distinct
// from a low-confidence detection: there is nothing to score.
var ErrEmptySheet = errors.New("sheet has no rows")

// DefaultKeywords are the label substrings commonly seen in SAP export
// header rows. A keyword hit raises a row's score.
var DefaultKeywords = []string{
	"project", "name", "date", "assigned", "estimator", "location", "owner",
}

const (
	// DefaultWindowSize bounds how many leading rows are scored
	DefaultWindowSize = 10
	// DefaultMinScore is the confidence threshold below which no candidate
	// is considered trustworthy
	DefaultMinScore = 0.35
)

// Options configures header detection
type Options struct {
	WindowSize int
	MinScore   float64
	Keywords   []string
}

// withDefaults fills zero-valued options
func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.MinScore <= 0 {
		o.MinScore = DefaultMinScore
	}
	if len(o.Keywords) == 0 {
		o.Keywords = DefaultKeywords
	}
	return o
}

// Candidate is a scored header-row candidate
type Candidate struct {
	RowIndex int      `json:"row_index"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

// Result is the outcome of header detection. Confident is false when every
// scanned row scored below the minimum threshold; Best still carries the
// highest-scoring row so callers can decide what to do with it.
type Result struct {
	Best      Candidate `json:"best"`
	Confident bool      `json:"confident"`
}

// Detect scores the leading rows of a sheet and returns the most likely
// header row. It is a pure function: the same rows and options always yield
// the same result. Ties resolve to the earliest row index.
func Detect(rows [][]string, opts Options) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrEmptySheet
	}

	opts = opts.withDefaults()
	candidates := ScoreRows(rows, opts)

	best := candidates[0]
	for _, c := range candidates[1:] {
		// Strict comparison keeps the earliest row on equal scores
		if c.Score > best.Score {
			best = c
		}
	}

	return Result{Best: best, Confident: best.Score >= opts.MinScore}, nil
}

// ScoreRows scores every row in the scan window and returns one candidate
// per row, in row order. The diagnostic surface renders these directly.
func ScoreRows(rows [][]string, opts Options) []Candidate {
	opts = opts.withDefaults()

	window := rows
	if len(window) > opts.WindowSize {
		window = window[:opts.WindowSize]
	}

	// The widest row in the window approximates the sheet width; sparse
	// rows (title banners, spacers) score down against it.
	width := 0
	for _, row := range window {
		if len(row) > width {
			width = len(row)
		}
	}

	candidates := make([]Candidate, len(window))
	for i, row := range window {
		candidates[i] = scoreRow(i, len(window), width, row, opts.Keywords)
	}
	return candidates
}

// Signal weights. Fill and text density dominate; the position bias is small
// enough that it only breaks near-ties between otherwise similar rows.
const (
	fillWeight       = 0.25
	textWeight       = 0.3
	nonNumericWeight = 0.15
	uniqueWeight     = 0.15
	positionWeight   = 0.05
	keywordWeight    = 0.1
)

func scoreRow(index, windowLen, width int, row []string, keywords []string) Candidate {
	filled := make([]string, 0, len(row))
	for _, cell := range row {
		if v := strings.TrimSpace(cell); v != "" {
			filled = append(filled, v)
		}
	}

	if len(filled) == 0 {
		return Candidate{RowIndex: index, Reasons: []string{"empty row"}}
	}

	textCount := 0
	numericCount := 0
	unique := make(map[string]struct{}, len(filled))
	for _, v := range filled {
		if looksNumeric(v) || looksDate(v) {
			numericCount++
		} else {
			textCount++
		}
		unique[strings.ToLower(v)] = struct{}{}
	}

	fillFrac := 1.0
	if width > 0 {
		fillFrac = float64(len(filled)) / float64(width)
	}
	textFrac := float64(textCount) / float64(len(filled))
	numericFrac := float64(numericCount) / float64(len(filled))
	uniqueFrac := float64(len(unique)) / float64(len(filled))

	// Earlier rows get a small bonus so ties between similar rows prefer
	// the top of the sheet
	positionFrac := 1.0
	if windowLen > 1 {
		positionFrac = 1.0 - float64(index)/float64(windowLen)
	}

	rowText := strings.ToLower(strings.Join(filled, " "))
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(rowText, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	keywordFrac := float64(len(hits)) / 2.0
	if keywordFrac > 1 {
		keywordFrac = 1
	}

	score := fillWeight*fillFrac +
		textWeight*textFrac +
		nonNumericWeight*(1-numericFrac) +
		uniqueWeight*uniqueFrac +
		positionWeight*positionFrac +
		keywordWeight*keywordFrac

	var reasons []string
	reasons = append(reasons, fmt.Sprintf("%d/%d cells filled", len(filled), width))
	reasons = append(reasons, fmt.Sprintf("%d text cells", textCount))
	if numericCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d numeric/date cells", numericCount))
	}
	if len(unique) == len(filled) {
		reasons = append(reasons, "all values unique")
	} else if len(unique) == 1 && len(filled) > 1 {
		reasons = append(reasons, "single repeated value, likely a title row")
	}
	if len(hits) > 0 {
		reasons = append(reasons, "header keywords: "+strings.Join(hits, ", "))
	}

	return Candidate{RowIndex: index, Score: score, Reasons: reasons}
}

// looksNumeric reports whether a cell holds a number, tolerating thousands
// separators as they appear in SAP exports
func looksNumeric(s string) bool {
	s = strings.ReplaceAll(s, ",", "")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// looksDate reports whether a cell parses as a date in any of the formats
// these exports have been seen to use
func looksDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
