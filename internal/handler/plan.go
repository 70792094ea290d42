package handler

import "net/http"

// PlanDay handles GET /api/trips/{tripID}/days/{dayID}/plan.
// Returns the derived view of the day: resolved segments, timeline
// validation, and the aggregate snapshot.
func (s *Server) PlanDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	plan, err := s.plans.PlanDay(r.Context(), tripID, dayID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// TripTotals handles GET /api/trips/{tripID}/totals.
func (s *Server) TripTotals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	totals, err := s.plans.Totals(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
