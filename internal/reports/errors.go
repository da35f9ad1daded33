package reports

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReportNotFound is returned when a logical name is absent from the
// catalog, either because it was never configured or because its load
// failed.
var ErrReportNotFound = errors.New("report not found")

// ErrColumnNotFound is returned when an explicitly requested column does
// not exist in the table.
var ErrColumnNotFound = errors.New("column not found")

// NoAssignmentColumnError is returned when no column matches any of the
// assignment aliases. It carries the column names that were considered so
// callers can retry with an explicit choice.
type NoAssignmentColumnError struct {
	Considered []string
}

func (e *NoAssignmentColumnError) Error() string {
	return fmt.Sprintf("no assignment column found among: %s", strings.Join(e.Considered, ", "))
}
