package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"activity_id", "date", "period", "order", "description", "in_range",
}

// ExportRow is the JSON representation of one exported activity.
type ExportRow struct {
	TripId        openapi_types.UUID `json:"trip_id"`
	TripName      string             `json:"trip_name"`
	TripStartDate string             `json:"trip_start_date"`
	TripEndDate   string             `json:"trip_end_date"`
	ActivityId    openapi_types.UUID `json:"activity_id"`
	Date          string             `json:"date"`
	Period        domain.Period      `json:"period"`
	Order         int                `json:"order"`
	Description   string             `json:"description"`
	InRange       bool               `json:"in_range"`
}

// ExportItinerary handles GET /trips/{tripId}/itinerary/export.
// It returns one row per activity. Use ?format=csv to receive CSV; the
// default is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid format: must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	if format == "csv" {
		writeCSV(w, tripID, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the JSON response rows.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSONRow(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, tripID uuid.UUID, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary-`+tripID.String()+`.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToJSONRow maps a domain.ExportRow to its JSON form. IDs were
// produced by the service from uuid values, so parse failures cannot occur.
func domainRowToJSONRow(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	activityID, _ := uuid.Parse(r.ActivityID)
	return ExportRow{
		TripId:        tripID,
		TripName:      r.TripName,
		TripStartDate: r.TripStartDate,
		TripEndDate:   r.TripEndDate,
		ActivityId:    activityID,
		Date:          r.Date,
		Period:        r.Period,
		Order:         r.Order,
		Description:   r.Description,
		InRange:       r.InRange,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.TripStartDate,
		r.TripEndDate,
		r.ActivityID,
		r.Date,
		string(r.Period),
		strconv.Itoa(r.Order),
		r.Description,
		strconv.FormatBool(r.InRange),
	}
}
