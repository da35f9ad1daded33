package http

import (
	"context"

	"sapreports/internal/reports"
)

// CatalogService is the read surface the report handlers depend on.
// reports.Store satisfies it; tests substitute a mock.
type CatalogService interface {
	Outcomes() []reports.Outcome
	Explore(name string, sampleN int) (*reports.Summary, error)
	FindAssignments(name, column, user string) (string, []reports.Match, error)
	Diagnose(name string) (*reports.Diagnosis, error)
	Reload(ctx context.Context) []reports.Outcome
}
