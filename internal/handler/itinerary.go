package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// CreateActivityRequest is the body of POST /trips/{tripId}/activities.
type CreateActivityRequest struct {
	Date        string        `json:"date"`
	Period      domain.Period `json:"period"`
	Description string        `json:"description"`
}

// ReassignRequest is the body of POST .../activities/{activityId}/reassign.
// Every field is optional: an omitted date or period falls back to the drop
// target's slot, then to the dragged activity's own slot.
type ReassignRequest struct {
	Date         string              `json:"date,omitempty"`
	Period       domain.Period       `json:"period,omitempty"`
	DropTargetId *openapi_types.UUID `json:"drop_target_id,omitempty"`
}

// ReassignResponse reports the outcome of a reassignment together with the
// trip's activity list as it now stands.
type ReassignResponse struct {
	Changed    bool              `json:"changed"`
	Reason     itinerary.Reason  `json:"reason,omitempty"`
	Activities []domain.Activity `json:"activities"`
}

// GetItinerary handles GET /trips/{tripId}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}

	view, err := s.itinerary.View(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CreateActivity handles POST /trips/{tripId}/activities.
// A rejected creation (blank description, date outside the trip, unknown
// period) is a 422 carrying the rejection reason.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body CreateActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	a, o, err := s.itinerary.CreateActivity(r.Context(), tripID, body.Date, body.Period, body.Description)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	if o.Rejected() {
		writeJSON(w, http.StatusUnprocessableEntity, rejectedBody(o.Reason))
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// DeleteActivity handles DELETE /trips/{tripId}/activities/{activityId}.
// Deleting an activity that is already gone is still a 204.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityId")
	if !ok {
		return
	}

	if _, err := s.itinerary.DeleteActivity(r.Context(), tripID, activityID); err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReassignActivity handles POST /trips/{tripId}/activities/{activityId}/reassign.
// Refused gestures are reported in the body with changed=false, not as errors.
func (s *Server) ReassignActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityId")
	if !ok {
		return
	}
	var body ReassignRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	req := itinerary.Reassignment{
		ActivityID: activityID,
		Date:       body.Date,
		Period:     body.Period,
	}
	if body.DropTargetId != nil {
		req.DropTargetID = *body.DropTargetId
	}

	o, acts, err := s.itinerary.ReassignActivity(r.Context(), tripID, req)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	if acts == nil {
		acts = []domain.Activity{}
	}

	writeJSON(w, http.StatusOK, ReassignResponse{Changed: o.Changed, Reason: o.Reason, Activities: acts})
}
