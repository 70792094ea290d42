// Package domain contains the core data types for the Itinera planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (geo, routing, timeline, stats, planner, repo, service,
// handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: an ordered sequence of days, each owning
// an ordered sequence of stops and the per-gap travel mode selections.
type Trip struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date"` // "2006-01-02" formatted date
	CoverImage string    `json:"cover_image,omitempty"`
	Days       []Day     `json:"days"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Day owns its ordered stop sequence and the per-gap mode selections.
// Invariant: len(Modes) == max(0, len(Stops)-1).
//
// Totals is a persisted cache of the last aggregation. It is never trusted as
// input to further computation — stats.Aggregate is the single recomputation
// authority.
type Day struct {
	ID     uuid.UUID    `json:"id"`
	Date   string       `json:"date"` // "2006-01-02"; derived from trip start date + position
	Stops  []Stop       `json:"stops"`
	Modes  []TravelMode `json:"modes"`
	Totals DayStats     `json:"totals"`
}

// DayStats is the aggregate for one day. ModeStats holds a bucket only for
// modes that actually appear in the day's segments.
type DayStats struct {
	DistanceMeters  float64                   `json:"distance_meters"`
	DurationMinutes int                       `json:"duration_minutes"`
	Budget          int                       `json:"budget"`
	ModeStats       map[TravelMode]ModeTotals `json:"mode_stats,omitempty"`
}

// ModeTotals is the per-mode distance/duration subtotal within a DayStats.
type ModeTotals struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationMinutes int     `json:"duration_minutes"`
}
