package reports

import (
	"context"
	"log/slog"
	"sync"

	"sapreports/internal/config"
)

// Store holds the current catalog snapshot for long-running consumers such
// as the HTTP surface. Reload builds a complete new snapshot and swaps it
// in atomically; readers always see either the old snapshot or the new one,
// never a half-updated catalog.
type Store struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.RWMutex
	catalog  *Catalog
	outcomes []Outcome
}

// NewStore creates a store and performs the initial load
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Store {
	s := &Store{cfg: cfg, logger: logger}
	s.catalog, s.outcomes = LoadAll(ctx, cfg, logger)
	return s
}

// Catalog returns the current snapshot
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Outcomes returns the per-entry results of the load that produced the
// current snapshot
func (s *Store) Outcomes() []Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Reload rebuilds the catalog from the source files and swaps the snapshot
func (s *Store) Reload(ctx context.Context) []Outcome {
	catalog, outcomes := LoadAll(ctx, s.cfg, s.logger)

	s.mu.Lock()
	s.catalog = catalog
	s.outcomes = outcomes
	s.mu.Unlock()

	return outcomes
}

// Explore summarizes one report from the current snapshot
func (s *Store) Explore(name string, sampleN int) (*Summary, error) {
	return s.Catalog().Explore(name, sampleN)
}

// FindAssignments runs the assignment finder against the current snapshot
func (s *Store) FindAssignments(name, column, user string) (string, []Match, error) {
	return s.Catalog().FindAssignments(name, column, user)
}

// Diagnose scores header candidates for one configured report
func (s *Store) Diagnose(name string) (*Diagnosis, error) {
	return Diagnose(s.cfg, name)
}
