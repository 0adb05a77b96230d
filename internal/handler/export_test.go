package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newExportHTTPHandler wires a Server with only the export service mock.
func newExportHTTPHandler(exportSvc handler.ExportServicer) http.Handler {
	return handler.NewServer(nil, nil, exportSvc, nil).Routes()
}

func exportURL(query string) string {
	return "/trips/" + uuid.New().String() + "/itinerary/export" + query
}

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		TripID:        uuid.New().String(),
		TripName:      "Pacific Coast Tour",
		TripStartDate: "2024-06-15",
		TripEndDate:   "2024-06-30",
		ActivityID:    uuid.New().String(),
		Date:          "2024-06-16",
		Period:        domain.PeriodMorning,
		Order:         2,
		Description:   "Hike, then brunch",
		InRange:       true,
	}
}

func rowsOf(rows ...domain.ExportRow) *mockExportServicer {
	return &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) { return rows, nil },
	}
}

// ---- JSON ------------------------------------------------------------------

func TestExportItinerary_DefaultJSON_EmptyResult(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(rowsOf()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL(""), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestExportItinerary_FormatJSON_ExplicitParam(t *testing.T) {
	row := exportRowFixture()

	rec := httptest.NewRecorder()
	newExportHTTPHandler(rowsOf(row)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL("?format=json"), nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, row.TripName, rows[0].TripName)
	assert.Equal(t, row.ActivityID, rows[0].ActivityId.String())
	assert.Equal(t, domain.PeriodMorning, rows[0].Period)
	assert.Equal(t, 2, rows[0].Order)
	assert.True(t, rows[0].InRange)
}

func TestExportItinerary_PassesTripID(t *testing.T) {
	tripID := uuid.New()
	var got uuid.UUID
	svc := &mockExportServicer{
		export: func(_ context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
			got = id
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/itinerary/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tripID, got)
}

// ---- CSV -------------------------------------------------------------------

func TestExportItinerary_CSV_Headers(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(rowsOf()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL("?format=csv"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "trip_id,"), "CSV should start with header row, got: %q", body)
}

func TestExportItinerary_CSV_OneRow(t *testing.T) {
	row := exportRowFixture()

	rec := httptest.NewRecorder()
	newExportHTTPHandler(rowsOf(row)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL("?format=csv"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, []string{
		row.TripID, "Pacific Coast Tour", "2024-06-15", "2024-06-30",
		row.ActivityID, "2024-06-16", "morning", "2", "Hike, then brunch", "true",
	}, records[1])
}

// ---- error handling --------------------------------------------------------

func TestExportItinerary_UnknownFormat_Returns400(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(rowsOf()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL("?format=xml"), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportItinerary_NotFound_Returns404(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return nil, fmt.Errorf("service.ExportService.Export: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL(""), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportItinerary_ServiceError_Returns500(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return nil, fmt.Errorf("database unavailable")
		},
	}

	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, exportURL(""), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
