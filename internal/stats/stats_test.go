package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/stats"
)

// ---- Aggregate -------------------------------------------------------------

func TestAggregate_SumsBudgetsAndSegments(t *testing.T) {
	stops := []domain.Stop{
		{Name: "A", Budget: 1000},
		{Name: "B", Budget: 2000},
		{Name: "C", Budget: 0},
	}
	segments := []domain.Segment{
		{Mode: domain.ModeWalking, DistanceMeters: 100, DurationMinutes: 2},
		{Mode: domain.ModeWalking, DistanceMeters: 200, DurationMinutes: 3},
	}

	got := stats.Aggregate(stops, segments)

	assert.Equal(t, 3000, got.Budget)
	assert.Equal(t, 300.0, got.DistanceMeters)
	assert.Equal(t, 5, got.DurationMinutes)
	require.Len(t, got.ModeStats, 1, "only modes with segments get a bucket")
	assert.Equal(t, domain.ModeTotals{DistanceMeters: 300, DurationMinutes: 5}, got.ModeStats[domain.ModeWalking])
}

func TestAggregate_SplitsByMode(t *testing.T) {
	segments := []domain.Segment{
		{Mode: domain.ModeWalking, DistanceMeters: 500, DurationMinutes: 6},
		{Mode: domain.ModeDriving, DistanceMeters: 8000, DurationMinutes: 15},
	}

	got := stats.Aggregate(nil, segments)

	require.Len(t, got.ModeStats, 2)
	assert.Equal(t, 500.0, got.ModeStats[domain.ModeWalking].DistanceMeters)
	assert.Equal(t, 8000.0, got.ModeStats[domain.ModeDriving].DistanceMeters)
	assert.Equal(t, 8500.0, got.DistanceMeters)
}

func TestAggregate_Empty(t *testing.T) {
	got := stats.Aggregate(nil, nil)

	assert.Equal(t, domain.DayStats{}, got)
	assert.Nil(t, got.ModeStats, "no segments means no mode buckets at all")
}

func TestAggregate_Recomputation_Idempotent(t *testing.T) {
	stops := []domain.Stop{{Budget: 500}}
	segments := []domain.Segment{{Mode: domain.ModeTransit, DistanceMeters: 1200, DurationMinutes: 9}}

	first := stats.Aggregate(stops, segments)
	second := stats.Aggregate(stops, segments)

	assert.True(t, stats.Equal(first, second))
}

// ---- Equal -----------------------------------------------------------------

func TestEqual(t *testing.T) {
	a := domain.DayStats{
		DistanceMeters:  300,
		DurationMinutes: 5,
		Budget:          1000,
		ModeStats: map[domain.TravelMode]domain.ModeTotals{
			domain.ModeWalking: {DistanceMeters: 300, DurationMinutes: 5},
		},
	}
	b := domain.DayStats{
		DistanceMeters:  300,
		DurationMinutes: 5,
		Budget:          1000,
		ModeStats: map[domain.TravelMode]domain.ModeTotals{
			domain.ModeWalking: {DistanceMeters: 300, DurationMinutes: 5},
		},
	}

	assert.True(t, stats.Equal(a, b))

	b.Budget = 999
	assert.False(t, stats.Equal(a, b))
}

func TestEqual_ModeStatsDiffer(t *testing.T) {
	a := domain.DayStats{ModeStats: map[domain.TravelMode]domain.ModeTotals{
		domain.ModeWalking: {DistanceMeters: 100},
	}}
	b := domain.DayStats{ModeStats: map[domain.TravelMode]domain.ModeTotals{
		domain.ModeDriving: {DistanceMeters: 100},
	}}

	assert.False(t, stats.Equal(a, b))
}

func TestEqual_NilVsEmptyModeStats(t *testing.T) {
	a := domain.DayStats{}
	b := domain.DayStats{ModeStats: map[domain.TravelMode]domain.ModeTotals{}}

	assert.True(t, stats.Equal(a, b), "nil and empty mode maps are the same snapshot")
}

// ---- Totals ----------------------------------------------------------------

func TestTotals(t *testing.T) {
	trip := domain.Trip{Days: []domain.Day{
		{Stops: []domain.Stop{{Budget: 100}, {Budget: 200}}},
		{Stops: []domain.Stop{{Budget: 50}}},
		{},
	}}
	segmentsByDay := map[int][]domain.Segment{
		0: {{Mode: domain.ModeWalking, DistanceMeters: 400}},
	}

	got := stats.Totals(trip, segmentsByDay)

	assert.Equal(t, 3, got.Days)
	assert.Equal(t, 3, got.Stops)
	assert.Equal(t, 400.0, got.DistanceMeters)
	assert.Equal(t, 350, got.Budget)
}
