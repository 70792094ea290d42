package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sejin-oh/itinera/internal/domain"
)

// ExportTrip handles GET /api/trips/{tripID}/export.
// The body is the trip's JSON document; Content-Disposition suggests a
// filename built from the trip name and start date.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.exchange.Export(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	name := strings.ReplaceAll(trip.Name, " ", "_")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_%s.json"`, name, trip.StartDate))
	writeJSON(w, http.StatusOK, trip)
}

// ImportTrip handles POST /api/import.
// The body is a previously exported trip document; the stored copy gets a
// fresh identity.
func (s *Server) ImportTrip(w http.ResponseWriter, r *http.Request) {
	var doc domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeBadRequest(w, "malformed trip document")
		return
	}

	trip, err := s.exchange.Import(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}
