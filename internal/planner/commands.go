package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
)

// AddDay appends an empty day to the trip.
type AddDay struct{}

func (AddDay) apply(t *domain.Trip) error {
	t.Days = append(t.Days, domain.Day{
		ID:    uuid.New(),
		Stops: []domain.Stop{},
		Modes: []domain.TravelMode{},
	})
	return nil
}

// RemoveDay deletes a day and everything it owns.
type RemoveDay struct {
	DayID uuid.UUID
}

func (c RemoveDay) apply(t *domain.Trip) error {
	for i := range t.Days {
		if t.Days[i].ID == c.DayID {
			t.Days = append(t.Days[:i], t.Days[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("planner: day %s: %w", c.DayID, domain.ErrNotFound)
}

// AddStop appends a stop to a day. Zero-valued fields get creation defaults:
// a fresh id, the shared checklist template, and the default stay duration.
type AddStop struct {
	DayID uuid.UUID
	Stop  domain.Stop
}

func (c AddStop) apply(t *domain.Trip) error {
	day, err := findDay(t, c.DayID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Stop.Name) == "" {
		return fmt.Errorf("%w: stop name is required", domain.ErrValidation)
	}

	stop := c.Stop
	if stop.ID == uuid.Nil {
		stop.ID = uuid.New()
	}
	if stop.StayMinutes <= 0 {
		stop.StayMinutes = domain.DefaultStayMinutes
	}
	if stop.Checklist == nil {
		stop.Checklist = domain.DefaultChecklist()
	}
	if stop.Category != "" {
		switch stop.Category {
		case domain.CategoryAttraction, domain.CategoryAccommodation, domain.CategoryTransport:
		default:
			return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, stop.Category)
		}
	}

	day.Stops = append(day.Stops, stop)
	return nil
}

// UpdateStop merges a partial patch into an existing stop: only fields set on
// the patch change.
type UpdateStop struct {
	DayID  uuid.UUID
	StopID uuid.UUID
	Patch  domain.StopPatch
}

func (c UpdateStop) apply(t *domain.Trip) error {
	day, err := findDay(t, c.DayID)
	if err != nil {
		return err
	}
	i, err := findStop(day, c.StopID)
	if err != nil {
		return err
	}

	stop := &day.Stops[i]
	p := c.Patch
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return fmt.Errorf("%w: stop name is required", domain.ErrValidation)
		}
		stop.Name = *p.Name
	}
	if p.Address != nil {
		stop.Address = *p.Address
	}
	if p.Position != nil {
		stop.Position = *p.Position
	}
	if p.StartTime != nil {
		stop.StartTime = *p.StartTime
	}
	if p.StayMinutes != nil {
		if *p.StayMinutes < 0 {
			return fmt.Errorf("%w: stay minutes must not be negative", domain.ErrValidation)
		}
		stop.StayMinutes = *p.StayMinutes
	}
	if p.Budget != nil {
		if *p.Budget < 0 {
			return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
		}
		stop.Budget = *p.Budget
	}
	if p.Memo != nil {
		stop.Memo = *p.Memo
	}
	if p.Checklist != nil {
		stop.Checklist = append([]domain.ChecklistItem(nil), (*p.Checklist)...)
	}
	if p.Details != nil {
		stop.Details = p.Details
	}
	if p.Category != nil {
		stop.Category = *p.Category
	}
	return nil
}

// RemoveStop deletes a stop together with its outbound gap's mode selection.
// For the last stop of the day the inbound gap disappears instead; either way
// normalization keeps one mode per remaining gap.
type RemoveStop struct {
	DayID  uuid.UUID
	StopID uuid.UUID
}

func (c RemoveStop) apply(t *domain.Trip) error {
	day, err := findDay(t, c.DayID)
	if err != nil {
		return err
	}
	i, err := findStop(day, c.StopID)
	if err != nil {
		return err
	}

	day.Stops = append(day.Stops[:i], day.Stops[i+1:]...)
	if len(day.Modes) > 0 {
		j := i
		if j >= len(day.Modes) {
			j = len(day.Modes) - 1
		}
		day.Modes = append(day.Modes[:j], day.Modes[j+1:]...)
	}
	return nil
}

// ReorderStops rearranges a day's stops to the given id sequence, which must
// be a permutation of the day's current stop ids.
type ReorderStops struct {
	DayID   uuid.UUID
	StopIDs []uuid.UUID
}

func (c ReorderStops) apply(t *domain.Trip) error {
	day, err := findDay(t, c.DayID)
	if err != nil {
		return err
	}
	if len(c.StopIDs) != len(day.Stops) {
		return fmt.Errorf("%w: reorder must list every stop exactly once", domain.ErrValidation)
	}

	byID := make(map[uuid.UUID]domain.Stop, len(day.Stops))
	for _, s := range day.Stops {
		byID[s.ID] = s
	}

	reordered := make([]domain.Stop, 0, len(c.StopIDs))
	for _, id := range c.StopIDs {
		s, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or duplicate stop %s in reorder", domain.ErrValidation, id)
		}
		delete(byID, id)
		reordered = append(reordered, s)
	}

	day.Stops = reordered
	return nil
}

// SetSegmentMode selects the travel mode for one gap. The selection persists
// independently of whether a routing lookup for the gap later succeeds.
type SetSegmentMode struct {
	DayID uuid.UUID
	Gap   int
	Mode  domain.TravelMode
}

func (c SetSegmentMode) apply(t *domain.Trip) error {
	day, err := findDay(t, c.DayID)
	if err != nil {
		return err
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown travel mode %q", domain.ErrValidation, c.Mode)
	}
	if c.Gap < 0 || c.Gap >= len(day.Stops)-1 {
		return fmt.Errorf("%w: gap %d out of range", domain.ErrValidation, c.Gap)
	}
	for len(day.Modes) <= c.Gap {
		day.Modes = append(day.Modes, domain.ModeWalking)
	}
	day.Modes[c.Gap] = c.Mode
	return nil
}

// SetStartDate changes the trip start date; day dates are rederived from it.
type SetStartDate struct {
	Date string
}

func (c SetStartDate) apply(t *domain.Trip) error {
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return fmt.Errorf("%w: start date must be YYYY-MM-DD", domain.ErrValidation)
	}
	t.StartDate = c.Date
	return nil
}

// Rename changes the trip name.
type Rename struct {
	Name string
}

func (c Rename) apply(t *domain.Trip) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	t.Name = c.Name
	return nil
}

// SetCoverImage changes the trip cover (a gradient spec or image URL; the
// planner does not interpret it).
type SetCoverImage struct {
	Cover string
}

func (c SetCoverImage) apply(t *domain.Trip) error {
	t.CoverImage = c.Cover
	return nil
}
