package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/repo"
	"github.com/sejin-oh/itinera/internal/stats"
	"github.com/sejin-oh/itinera/internal/timeline"
)

// DayPlan is the fully derived view of one day: resolved segments, timeline
// feasibility findings, and the aggregate snapshot. Everything in it is
// rederived per request; nothing here is authoritative state.
type DayPlan struct {
	Day        domain.Day                `json:"day"`
	Segments   []domain.Segment          `json:"segments"`
	Validation []domain.ValidationResult `json:"validation"`
	Stats      domain.DayStats           `json:"stats"`
}

// PlanService derives segment, validation, and aggregate views on demand.
type PlanService struct {
	repo     repo.TripRepo
	resolver SegmentResolver
}

// NewPlanService constructs a PlanService backed by the provided repo and resolver.
func NewPlanService(r repo.TripRepo, resolver SegmentResolver) *PlanService {
	return &PlanService{repo: r, resolver: resolver}
}

// PlanDay resolves and validates one day of a trip.
// Returns domain.ErrNotFound if the trip or day does not exist.
func (s *PlanService) PlanDay(ctx context.Context, tripID, dayID uuid.UUID) (DayPlan, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return DayPlan{}, fmt.Errorf("service.PlanService.PlanDay: %w", err)
	}

	for _, day := range trip.Days {
		if day.ID != dayID {
			continue
		}
		segments := s.resolver.Resolve(ctx, day.Stops, day.Modes)
		return DayPlan{
			Day:        day,
			Segments:   segments,
			Validation: emptyIfNil(timeline.Validate(day.Stops, segments)),
			Stats:      stats.Aggregate(day.Stops, segments),
		}, nil
	}
	return DayPlan{}, fmt.Errorf("service.PlanService.PlanDay: day %s: %w", dayID, domain.ErrNotFound)
}

// Totals resolves every day of the trip and returns the cross-day rollup.
func (s *PlanService) Totals(ctx context.Context, tripID uuid.UUID) (stats.TripTotals, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return stats.TripTotals{}, fmt.Errorf("service.PlanService.Totals: %w", err)
	}

	segmentsByDay := make(map[int][]domain.Segment, len(trip.Days))
	for i, day := range trip.Days {
		segmentsByDay[i] = s.resolver.Resolve(ctx, day.Stops, day.Modes)
	}
	return stats.Totals(trip, segmentsByDay), nil
}

// emptyIfNil keeps JSON responses rendering [] instead of null.
func emptyIfNil(results []domain.ValidationResult) []domain.ValidationResult {
	if results == nil {
		return []domain.ValidationResult{}
	}
	return results
}
