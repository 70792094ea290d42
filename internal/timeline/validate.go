// Package timeline checks whether a day's planned schedule is feasible:
// for each gap between consecutive stops, does the previous stop's departure
// plus travel time fit before the next stop's declared start?
package timeline

import (
	"fmt"

	"github.com/sejin-oh/itinera/internal/domain"
)

// Validate computes per-gap feasibility for the given stops and resolved
// segments. It is a pure function of its inputs.
//
// A gap is checked only when both adjacent stops carry a start time; otherwise
// it is skipped and produces no result. A missing or unresolved segment
// counts as zero travel time. Comparison is same-day only: a schedule that
// crosses midnight is reported as a large deficit rather than wrapped.
//
// Results:
//   - arrival after next start: error, with deficit minutes and the expected
//     arrival clock time, naming both stops.
//   - arrival exactly at next start: warning (still valid) — no slack.
//   - arrival before next start: nothing.
func Validate(stops []domain.Stop, segments []domain.Segment) []domain.ValidationResult {
	var results []domain.ValidationResult

	for i := 0; i+1 < len(stops); i++ {
		cur, next := stops[i], stops[i+1]
		if cur.StartTime == "" || next.StartTime == "" {
			continue
		}

		departure := ClockToMinutes(cur.StartTime) + cur.StayMinutes

		travel := 0
		if i < len(segments) {
			travel = segments[i].DurationMinutes
		}
		arrival := departure + travel
		target := ClockToMinutes(next.StartTime)

		switch {
		case arrival > target:
			deficit := arrival - target
			results = append(results, domain.ValidationResult{
				GapIndex: i,
				IsValid:  false,
				Severity: domain.SeverityError,
				Message: fmt.Sprintf("travel from %s to %s runs %d min short (expected arrival %s)",
					cur.Name, next.Name, deficit, MinutesToClock(arrival)),
			})
		case arrival == target:
			results = append(results, domain.ValidationResult{
				GapIndex: i,
				IsValid:  true,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("arrival at %s lands exactly on its start time; no slack", next.Name),
			})
		}
	}

	return results
}

// EndTime returns the "HH:mm" a stop ends at (start + stay), or "" when the
// stop is unscheduled.
func EndTime(stop domain.Stop) string {
	if stop.StartTime == "" {
		return ""
	}
	return MinutesToClock(ClockToMinutes(stop.StartTime) + stop.StayMinutes)
}

// ArrivalTime returns the expected "HH:mm" arrival at the next stop given the
// previous stop and the travel minutes between them, or "" when the previous
// stop is unscheduled.
func ArrivalTime(prev domain.Stop, travelMinutes int) string {
	if prev.StartTime == "" {
		return ""
	}
	return MinutesToClock(ClockToMinutes(prev.StartTime) + prev.StayMinutes + travelMinutes)
}
