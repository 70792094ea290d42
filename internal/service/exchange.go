package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/planner"
	"github.com/sejin-oh/itinera/internal/repo"
)

// ExchangeService implements the trip file exchange: a trip serializes
// losslessly to a JSON document mirroring the data model, and imports back
// under a fresh identity so it can never collide with a stored trip.
type ExchangeService struct {
	repo     repo.TripRepo
	resolver SegmentResolver
}

// NewExchangeService constructs an ExchangeService backed by the provided
// repo and resolver.
func NewExchangeService(r repo.TripRepo, resolver SegmentResolver) *ExchangeService {
	return &ExchangeService{repo: r, resolver: resolver}
}

// Export returns the full trip aggregate for serialization.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExchangeService) Export(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExchangeService.Export: %w", err)
	}
	return trip, nil
}

// Import stores a deserialized trip document as a new trip. Trip, day, and
// stop identities are reassigned to avoid collisions with any stored trip
// sharing the document's ids, the name is suffixed to mark the copy, and
// cached totals are recomputed rather than trusted from the document.
func (s *ExchangeService) Import(ctx context.Context, doc domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: trip document has no name", domain.ErrValidation)
	}
	if doc.Days == nil {
		return domain.Trip{}, fmt.Errorf("%w: trip document has no days", domain.ErrValidation)
	}

	trip := doc.Clone()
	trip.ID = uuid.Nil // repo assigns on insert
	trip.Name = doc.Name + " (imported)"
	for i := range trip.Days {
		trip.Days[i].ID = uuid.New()
		for j := range trip.Days[i].Stops {
			stop := &trip.Days[i].Stops[j]
			stop.ID = uuid.New()
			if stop.StayMinutes < 0 {
				return domain.Trip{}, fmt.Errorf("%w: negative stay duration on stop %q", domain.ErrValidation, stop.Name)
			}
			if stop.Budget < 0 {
				return domain.Trip{}, fmt.Errorf("%w: negative budget on stop %q", domain.ErrValidation, stop.Name)
			}
		}
	}

	// Renormalize the per-gap invariant and day dates via a no-op transition.
	trip, err := planner.Apply(trip, planner.SetCoverImage{Cover: trip.CoverImage})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExchangeService.Import: %w", err)
	}

	ts := TripService{repo: s.repo, resolver: s.resolver}
	ts.refreshTotals(ctx, &trip)

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ExchangeService.Import: %w", err)
	}
	return created, nil
}
