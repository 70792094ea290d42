// Package stats derives day-level and trip-level aggregates from stops and
// segments. Aggregation is always a total recomputation from current state —
// never an incremental patch — so cached totals cannot drift.
package stats

import "github.com/sejin-oh/itinera/internal/domain"

// Aggregate folds the day's segments and stops into a DayStats snapshot.
// Budget is a stop property and independent of travel mode; distance and
// duration come from segments. Modes with no segments are absent from
// ModeStats rather than present with zeros.
func Aggregate(stops []domain.Stop, segments []domain.Segment) domain.DayStats {
	out := domain.DayStats{}

	for _, s := range segments {
		out.DistanceMeters += s.DistanceMeters
		out.DurationMinutes += s.DurationMinutes

		if s.Mode == "" {
			continue
		}
		if out.ModeStats == nil {
			out.ModeStats = make(map[domain.TravelMode]domain.ModeTotals)
		}
		mt := out.ModeStats[s.Mode]
		mt.DistanceMeters += s.DistanceMeters
		mt.DurationMinutes += s.DurationMinutes
		out.ModeStats[s.Mode] = mt
	}

	for _, p := range stops {
		out.Budget += p.Budget
	}

	return out
}

// Equal reports whether two DayStats snapshots are deeply equal. The hosting
// layer uses this to gate writes: a recomputed snapshot identical to the
// stored one must not trigger another persistence cycle.
func Equal(a, b domain.DayStats) bool {
	if a.DistanceMeters != b.DistanceMeters ||
		a.DurationMinutes != b.DurationMinutes ||
		a.Budget != b.Budget ||
		len(a.ModeStats) != len(b.ModeStats) {
		return false
	}
	for mode, mt := range a.ModeStats {
		if b.ModeStats[mode] != mt {
			return false
		}
	}
	return true
}

// TripTotals is the cross-day rollup shown on the trip dashboard.
type TripTotals struct {
	Days           int     `json:"days"`
	Stops          int     `json:"stops"`
	DistanceMeters float64 `json:"distance_meters"`
	Budget         int     `json:"budget"`
}

// Totals sums per-day aggregates across the whole trip. Day totals are
// recomputed from each day's stops and the provided per-day segments rather
// than read from the persisted cache.
func Totals(trip domain.Trip, segmentsByDay map[int][]domain.Segment) TripTotals {
	out := TripTotals{Days: len(trip.Days)}
	for i, d := range trip.Days {
		ds := Aggregate(d.Stops, segmentsByDay[i])
		out.Stops += len(d.Stops)
		out.DistanceMeters += ds.DistanceMeters
		out.Budget += ds.Budget
	}
	return out
}
