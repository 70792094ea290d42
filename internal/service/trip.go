// Package service contains the business logic for the Itinera API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// routing calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/planner"
	"github.com/sejin-oh/itinera/internal/repo"
	"github.com/sejin-oh/itinera/internal/stats"
)

// SegmentResolver is the routing capability the services depend on.
// Defining the interface here (in the consumer package) lets tests inject a
// fake resolver without any HTTP routing service.
type SegmentResolver interface {
	Resolve(ctx context.Context, stops []domain.Stop, modes []domain.TravelMode) []domain.Segment
}

// TripService implements business logic for trip operations. All edits go
// through planner commands so every mutation produces a whole new snapshot.
type TripService struct {
	repo     repo.TripRepo
	resolver SegmentResolver
}

// NewTripService constructs a TripService backed by the provided repo and resolver.
func NewTripService(r repo.TripRepo, resolver SegmentResolver) *TripService {
	return &TripService{repo: r, resolver: resolver}
}

// Create validates and persists a new trip. A first empty day is added
// automatically so stops can be placed immediately.
func (s *TripService) Create(ctx context.Context, name, startDate string) (domain.Trip, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if startDate == "" {
		startDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", startDate); err != nil {
		return domain.Trip{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", domain.ErrValidation)
	}

	trip := domain.Trip{Name: name, StartDate: startDate, Days: []domain.Day{}}
	trip, err := planner.Apply(trip, planner.AddDay{})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns the full trip aggregate.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trip headers.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Edit applies a planner command to the stored trip, refreshes the cached day
// totals from the new snapshot, and persists the result.
// Returns domain.ErrNotFound for an unknown trip, domain.ErrValidation when
// the command violates business rules.
func (s *TripService) Edit(ctx context.Context, id uuid.UUID, cmd planner.Command) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}

	next, err := planner.Apply(trip, cmd)
	if err != nil {
		return domain.Trip{}, err
	}
	s.refreshTotals(ctx, &next)

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}
	return saved, nil
}

// Recalculate rederives every day's cached totals from current stops and
// segments, persisting only when at least one day's snapshot differs from the
// stored one. The boolean reports whether a write happened; a second call
// with unchanged inputs must return false.
func (s *TripService) Recalculate(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Recalculate: %w", err)
	}

	next := trip.Clone()
	if !s.refreshTotals(ctx, &next) {
		return trip, false, nil
	}

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Recalculate: %w", err)
	}
	return saved, true, nil
}

// Delete removes a trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// refreshTotals recomputes each day's aggregate from its stops and freshly
// resolved segments, writing the cache only for days whose snapshot changed.
// Reports whether any day changed.
func (s *TripService) refreshTotals(ctx context.Context, trip *domain.Trip) bool {
	changed := false
	for i := range trip.Days {
		day := &trip.Days[i]
		segments := s.resolver.Resolve(ctx, day.Stops, day.Modes)
		fresh := stats.Aggregate(day.Stops, segments)
		if !stats.Equal(day.Totals, fresh) {
			day.Totals = fresh
			changed = true
		}
	}
	return changed
}
