// Package planner is the state-transition engine for itinerary edits.
// Every edit is an explicit Command applied to a Trip snapshot, producing a
// new Trip value: Apply(trip, cmd) -> trip'. The input is never mutated, so
// derived views (segments, validation, stats) can always be recomputed from a
// consistent snapshot after each transition.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
)

// Command is a single itinerary edit operation.
type Command interface {
	apply(t *domain.Trip) error
}

// Apply runs cmd against a deep copy of trip and returns the result.
// On any error the original trip is returned unchanged.
// The day mode-selection invariant len(Modes) == max(0, len(Stops)-1) holds
// for every day of the returned trip.
func Apply(trip domain.Trip, cmd Command) (domain.Trip, error) {
	next := trip.Clone()
	if err := cmd.apply(&next); err != nil {
		return trip, err
	}
	for i := range next.Days {
		normalizeModes(&next.Days[i])
	}
	refreshDates(&next)
	return next, nil
}

// normalizeModes trims or extends a day's mode selections to exactly one per
// gap, defaulting new gaps to walking.
func normalizeModes(d *domain.Day) {
	gaps := len(d.Stops) - 1
	if gaps < 0 {
		gaps = 0
	}
	for len(d.Modes) < gaps {
		d.Modes = append(d.Modes, domain.ModeWalking)
	}
	d.Modes = d.Modes[:gaps]
}

// refreshDates rederives each day's date from the trip start date and the
// day's position. An unparseable start date leaves day dates empty.
func refreshDates(t *domain.Trip) {
	start, err := time.Parse("2006-01-02", t.StartDate)
	if err != nil {
		for i := range t.Days {
			t.Days[i].Date = ""
		}
		return
	}
	for i := range t.Days {
		t.Days[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}
}

// findDay returns a pointer to the day with the given id.
func findDay(t *domain.Trip, dayID uuid.UUID) (*domain.Day, error) {
	for i := range t.Days {
		if t.Days[i].ID == dayID {
			return &t.Days[i], nil
		}
	}
	return nil, fmt.Errorf("planner: day %s: %w", dayID, domain.ErrNotFound)
}

// findStop returns the index of the stop with the given id within the day.
func findStop(d *domain.Day, stopID uuid.UUID) (int, error) {
	for i := range d.Stops {
		if d.Stops[i].ID == stopID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("planner: stop %s: %w", stopID, domain.ErrNotFound)
}
