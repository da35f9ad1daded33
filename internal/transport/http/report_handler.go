package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sapreports/internal/errors"
	"sapreports/internal/reports"
)

// ReportHandler handles report catalog HTTP requests
type ReportHandler struct {
	service     CatalogService
	defaultUser string
	logger      *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service CatalogService, defaultUser string, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service:     service,
		defaultUser: defaultUser,
		logger:      logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/reports", h.ListReports)
	r.Post("/reload", h.Reload)

	r.Route("/reports/{name}", func(r chi.Router) {
		r.Use(h.NameCtx)
		r.Get("/", h.ExploreReport)
		r.Get("/assignments", h.GetAssignments)
		r.Get("/diagnosis", h.GetDiagnosis)
	})

	return r
}

// NameCtx validates the report name parameter
func (h *ReportHandler) NameCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") == "" {
			h.renderError(w, r, apierrors.ErrValidation("name", "report name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loadSummary is the response body for ListReports and Reload
type loadSummary struct {
	Loaded   int               `json:"loaded"`
	Failed   int               `json:"failed"`
	Outcomes []reports.Outcome `json:"outcomes"`
}

func newLoadSummary(outcomes []reports.Outcome) loadSummary {
	summary := loadSummary{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK {
			summary.Loaded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, newLoadSummary(h.service.Outcomes()))
}

// Reload handles POST /api/reload
func (h *ReportHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "reload requested")
	outcomes := h.service.Reload(r.Context())
	render.JSON(w, r, newLoadSummary(outcomes))
}

// ExploreReport handles GET /api/reports/{name}
func (h *ReportHandler) ExploreReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	sampleN := 0
	if raw := r.URL.Query().Get("sample"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.renderError(w, r, apierrors.ErrValidation("sample", "sample must be a non-negative integer"))
			return
		}
		sampleN = n
	}

	summary, err := h.service.Explore(name, sampleN)
	if err != nil {
		h.renderError(w, r, h.mapError(name, err))
		return
	}

	render.JSON(w, r, summary)
}

// assignmentsResponse is the response body for GetAssignments
type assignmentsResponse struct {
	Report  string          `json:"report"`
	Column  string          `json:"column"`
	User    string          `json:"user"`
	Count   int             `json:"count"`
	Matches []reports.Match `json:"matches"`
}

// GetAssignments handles GET /api/reports/{name}/assignments
func (h *ReportHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	user := r.URL.Query().Get("user")
	if user == "" {
		user = h.defaultUser
	}
	if user == "" {
		h.renderError(w, r, apierrors.ErrValidation("user", "user name is required"))
		return
	}
	requested := r.URL.Query().Get("column")

	column, matches, err := h.service.FindAssignments(name, requested, user)
	if err != nil {
		h.renderError(w, r, h.mapError(name, err))
		return
	}

	render.JSON(w, r, assignmentsResponse{
		Report:  name,
		Column:  column,
		User:    user,
		Count:   len(matches),
		Matches: matches,
	})
}

// GetDiagnosis handles GET /api/reports/{name}/diagnosis
func (h *ReportHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	diagnosis, err := h.service.Diagnose(name)
	if err != nil {
		h.renderError(w, r, h.mapError(name, err))
		return
	}

	render.JSON(w, r, diagnosis)
}

// mapError converts domain errors to API errors
func (h *ReportHandler) mapError(name string, err error) *apierrors.APIError {
	var noCol *reports.NoAssignmentColumnError

	switch {
	case errors.Is(err, reports.ErrReportNotFound):
		return apierrors.ReportNotFoundError(name)
	case errors.As(err, &noCol):
		return apierrors.NoAssignmentColumnError(noCol.Considered)
	case errors.Is(err, reports.ErrColumnNotFound):
		return apierrors.ErrValidation("column", err.Error())
	default:
		return apierrors.InternalError(err)
	}
}

func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", apiErr.Message))
	}
	if err := render.Render(w, r, apiErr); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", err.Error()))
	}
}
