package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/planner"
)

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.Create(r.Context(), body.Name, body.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTrip handles PUT /api/trips/{tripID}/name.
func (s *Server) RenameTrip(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	s.edit(w, r, &body, func() planner.Command { return planner.Rename{Name: body.Name} })
}

// SetStartDate handles PUT /api/trips/{tripID}/start-date.
func (s *Server) SetStartDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate string `json:"start_date"`
	}
	s.edit(w, r, &body, func() planner.Command { return planner.SetStartDate{Date: body.StartDate} })
}

// SetCover handles PUT /api/trips/{tripID}/cover.
func (s *Server) SetCover(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CoverImage string `json:"cover_image"`
	}
	s.edit(w, r, &body, func() planner.Command { return planner.SetCoverImage{Cover: body.CoverImage} })
}

// AddDay handles POST /api/trips/{tripID}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.Edit(r.Context(), id, planner.AddDay{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// RemoveDay handles DELETE /api/trips/{tripID}/days/{dayID}.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	trip, err := s.trips.Edit(r.Context(), tripID, planner.RemoveDay{DayID: dayID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// AddStop handles POST /api/trips/{tripID}/days/{dayID}/stops.
// The body is a stop seed (typically from a place search result); identity,
// checklist, and stay-duration defaults are filled by the planner.
func (s *Server) AddStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	var stop domain.Stop
	if err := json.NewDecoder(r.Body).Decode(&stop); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.Edit(r.Context(), tripID, planner.AddStop{DayID: dayID, Stop: stop})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// UpdateStop handles PATCH /api/trips/{tripID}/days/{dayID}/stops/{stopID}.
// Merge semantics: only fields present in the body change.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	var patch domain.StopPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.Edit(r.Context(), tripID, planner.UpdateStop{DayID: dayID, StopID: stopID, Patch: patch})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// RemoveStop handles DELETE /api/trips/{tripID}/days/{dayID}/stops/{stopID}.
func (s *Server) RemoveStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	trip, err := s.trips.Edit(r.Context(), tripID, planner.RemoveStop{DayID: dayID, StopID: stopID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// ReorderStops handles PUT /api/trips/{tripID}/days/{dayID}/stops/order.
func (s *Server) ReorderStops(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	var body struct {
		StopIDs []uuid.UUID `json:"stop_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.Edit(r.Context(), tripID, planner.ReorderStops{DayID: dayID, StopIDs: body.StopIDs})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// SetSegmentMode handles PUT /api/trips/{tripID}/days/{dayID}/segments/{gap}/mode.
func (s *Server) SetSegmentMode(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	gap, err := strconv.Atoi(chi.URLParam(r, "gap"))
	if err != nil {
		writeBadRequest(w, "gap must be an integer")
		return
	}

	var body struct {
		Mode domain.TravelMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.Edit(r.Context(), tripID, planner.SetSegmentMode{DayID: dayID, Gap: gap, Mode: body.Mode})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// RecalculateTrip handles POST /api/trips/{tripID}/recalculate.
// Responds 200 with the trip when totals changed and were written, 204 when
// the recomputed snapshot matched the stored one and no write happened.
func (s *Server) RecalculateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, changed, err := s.trips.Recalculate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !changed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// edit decodes the body into dst, builds the command, and applies it to the
// trip named in the path. Shared by the single-field trip edits.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, dst any, cmd func() planner.Command) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}
	trip, err := s.trips.Edit(r.Context(), id, cmd())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// pathUUID parses the named chi path parameter as a UUID, writing a 400 and
// returning false when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
