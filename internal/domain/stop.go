package domain

import "github.com/google/uuid"

// DefaultStayMinutes is the stay duration assigned to a newly created stop.
const DefaultStayMinutes = 60

// StopCategory classifies a stop for display grouping.
type StopCategory string

const (
	CategoryAttraction    StopCategory = "attraction"
	CategoryAccommodation StopCategory = "accommodation"
	CategoryTransport     StopCategory = "transport"
)

// Position is a WGS84 coordinate in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ChecklistItem is one entry of a stop's status checklist. The template ids
// are fixed and shared across all stops so progress can be compared.
type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// DefaultChecklist returns a fresh copy of the checklist template every stop
// starts with.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{ID: "1", Label: "Reservation made"},
		{ID: "2", Label: "Tickets bought"},
		{ID: "3", Label: "Visited"},
	}
}

// PlaceDetails carries place-search metadata attached to a stop. The planner
// treats it as opaque: it is persisted and echoed back, never computed on.
type PlaceDetails struct {
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	OpeningHours     []string `json:"opening_hours,omitempty"`
	IsOpen           *bool    `json:"is_open,omitempty"`
	ClosedOn         []string `json:"closed_on,omitempty"`
	PhoneNumber      string   `json:"phone_number,omitempty"`
	Website          string   `json:"website,omitempty"`
	PriceLevel       int      `json:"price_level,omitempty"`
}

// Stop is a single place entry in a day's itinerary.
// ID is the stop's own identity, distinct from the external PlaceID.
// StartTime is "HH:mm"; empty means the stop is unscheduled.
type Stop struct {
	ID          uuid.UUID       `json:"id"`
	PlaceID     string          `json:"place_id,omitempty"`
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	Position    Position        `json:"position"`
	StartTime   string          `json:"start_time,omitempty"`
	StayMinutes int             `json:"stay_minutes"`
	Budget      int             `json:"budget"`
	Memo        string          `json:"memo,omitempty"`
	Checklist   []ChecklistItem `json:"checklist"`
	Details     *PlaceDetails   `json:"details,omitempty"`
	Category    StopCategory    `json:"category,omitempty"`
}

// StopPatch is a partial update for a stop: only non-nil fields are applied
// (merge semantics).
type StopPatch struct {
	Name        *string          `json:"name,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Position    *Position        `json:"position,omitempty"`
	StartTime   *string          `json:"start_time,omitempty"`
	StayMinutes *int             `json:"stay_minutes,omitempty"`
	Budget      *int             `json:"budget,omitempty"`
	Memo        *string          `json:"memo,omitempty"`
	Checklist   *[]ChecklistItem `json:"checklist,omitempty"`
	Details     *PlaceDetails    `json:"details,omitempty"`
	Category    *StopCategory    `json:"category,omitempty"`
}
