package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sapreports/internal/reports"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Outcomes() []reports.Outcome {
	args := m.Called()
	return args.Get(0).([]reports.Outcome)
}

func (m *MockCatalogService) Explore(name string, sampleN int) (*reports.Summary, error) {
	args := m.Called(name, sampleN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Summary), args.Error(1)
}

func (m *MockCatalogService) FindAssignments(name, column, user string) (string, []reports.Match, error) {
	args := m.Called(name, column, user)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]reports.Match), args.Error(2)
}

func (m *MockCatalogService) Diagnose(name string) (*reports.Diagnosis, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Diagnosis), args.Error(1)
}

func (m *MockCatalogService) Reload(ctx context.Context) []reports.Outcome {
	args := m.Called()
	return args.Get(0).([]reports.Outcome)
}

func testHandler(service CatalogService) *ReportHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReportHandler(service, "Shaun Sauer", logger)
}

func TestListReports(t *testing.T) {
	service := new(MockCatalogService)
	service.On("Outcomes").Return([]reports.Outcome{
		{Name: "cost_estimating", OK: true, RowCount: 10},
		{Name: "milestone", OK: false, Error: "failed to open file"},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body loadSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Loaded)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Outcomes, 2)

	service.AssertExpectations(t)
}

func TestExploreReport(t *testing.T) {
	service := new(MockCatalogService)
	service.On("Explore", "cost_estimating", 0).Return(&reports.Summary{
		Name:        "cost_estimating",
		RowCount:    2,
		ColumnCount: 3,
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/cost_estimating", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"row_count":2`)

	service.AssertExpectations(t)
}

func TestExploreReportNotFound(t *testing.T) {
	service := new(MockCatalogService)
	service.On("Explore", "nope", 0).Return(nil, reports.ErrReportNotFound)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/nope", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "REPORT_NOT_FOUND")
}

func TestExploreReportInvalidSample(t *testing.T) {
	service := new(MockCatalogService)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/cost_estimating?sample=abc", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Explore")
}

func TestGetAssignments(t *testing.T) {
	service := new(MockCatalogService)
	service.On("FindAssignments", "cost_estimating", "", "shaun").Return("Assigned Estimator", []reports.Match{
		{RowIndex: 0, Column: "Assigned Estimator", Value: "Shaun", Row: reports.Row{"Project ID": "P001"}},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/cost_estimating/assignments?user=shaun", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body assignmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Assigned Estimator", body.Column)

	service.AssertExpectations(t)
}

func TestGetAssignmentsDefaultUser(t *testing.T) {
	service := new(MockCatalogService)
	service.On("FindAssignments", "cost_estimating", "", "Shaun Sauer").Return("Assigned Estimator", []reports.Match{}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/cost_estimating/assignments", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body assignmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Shaun Sauer", body.User)
	assert.Equal(t, 0, body.Count)

	// The auto-selected column is still reported when nothing matched
	assert.Equal(t, "Assigned Estimator", body.Column)

	service.AssertExpectations(t)
}

func TestGetAssignmentsNoColumn(t *testing.T) {
	service := new(MockCatalogService)
	service.On("FindAssignments", "order_data", "", "shaun").
		Return("", nil, &reports.NoAssignmentColumnError{Considered: []string{"Region", "Amount"}})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/order_data/assignments?user=shaun", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "NO_ASSIGNMENT_COLUMN")
	assert.Contains(t, w.Body.String(), "Region")
}

func TestGetDiagnosis(t *testing.T) {
	service := new(MockCatalogService)
	service.On("Diagnose", "cost_estimating").Return(&reports.Diagnosis{
		Name:      "cost_estimating",
		Confident: true,
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/reports/cost_estimating/diagnosis", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confident":true`)
}

func TestReload(t *testing.T) {
	service := new(MockCatalogService)
	service.On("Reload").Return([]reports.Outcome{
		{Name: "cost_estimating", OK: true},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/reload", nil)
	testHandler(service).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body loadSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Loaded)

	service.AssertExpectations(t)
}
