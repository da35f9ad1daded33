package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	custommw "sapreports/internal/middleware"
)

// NewRouter builds the full HTTP router: request-id, logging and panic
// recovery middleware around the report catalog API.
func NewRouter(service CatalogService, defaultUser string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))

	handler := NewReportHandler(service, defaultUser, logger)
	r.Mount("/api", handler.Routes())

	return r
}
