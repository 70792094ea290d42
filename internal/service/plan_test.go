package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/service"
)

// ---- PlanDay ---------------------------------------------------------------

func TestPlanService_PlanDay_OK(t *testing.T) {
	stored := storedTrip()
	svc := service.NewPlanService(echoRepo(stored), fakeResolver{})

	got, err := svc.PlanDay(context.Background(), stored.ID, stored.Days[0].ID)

	require.NoError(t, err)
	assert.Equal(t, stored.Days[0].ID, got.Day.ID)
	require.Len(t, got.Segments, 1, "one segment per gap")
	assert.Equal(t, domain.ModeWalking, got.Segments[0].Mode)
	assert.NotNil(t, got.Validation, "validation renders as [] rather than null")
	assert.Equal(t, 1500, got.Stats.Budget)
	assert.Greater(t, got.Stats.DistanceMeters, 0.0)
}

func TestPlanService_PlanDay_ReportsOverrun(t *testing.T) {
	stored := storedTrip()
	// Schedule the stops so tightly the gap cannot fit any travel.
	stored.Days[0].Stops[0].StartTime = "09:00"
	stored.Days[0].Stops[0].StayMinutes = 60
	stored.Days[0].Stops[1].StartTime = "10:00"
	svc := service.NewPlanService(echoRepo(stored), fakeResolver{})

	got, err := svc.PlanDay(context.Background(), stored.ID, stored.Days[0].ID)

	require.NoError(t, err)
	require.Len(t, got.Validation, 1)
	assert.Equal(t, domain.SeverityError, got.Validation[0].Severity)
	assert.False(t, got.Validation[0].IsValid)
}

func TestPlanService_PlanDay_SingleStopDay(t *testing.T) {
	stored := storedTrip()
	stored.Days[0].Stops = stored.Days[0].Stops[:1]
	stored.Days[0].Modes = nil
	svc := service.NewPlanService(echoRepo(stored), fakeResolver{})

	got, err := svc.PlanDay(context.Background(), stored.ID, stored.Days[0].ID)

	require.NoError(t, err)
	assert.Empty(t, got.Segments)
	assert.Empty(t, got.Validation)
	assert.Equal(t, 0, got.Stats.Budget)
}

func TestPlanService_PlanDay_TripNotFound(t *testing.T) {
	svc := service.NewPlanService(echoRepo(storedTrip()), fakeResolver{})

	_, err := svc.PlanDay(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanService_PlanDay_DayNotFound(t *testing.T) {
	stored := storedTrip()
	svc := service.NewPlanService(echoRepo(stored), fakeResolver{})

	_, err := svc.PlanDay(context.Background(), stored.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Totals ----------------------------------------------------------------

func TestPlanService_Totals(t *testing.T) {
	stored := storedTrip()
	stored.Days = append(stored.Days, domain.Day{
		ID:    uuid.New(),
		Stops: []domain.Stop{{ID: uuid.New(), Name: "Ramen", Budget: 900}},
	})
	svc := service.NewPlanService(echoRepo(stored), fakeResolver{})

	got, err := svc.Totals(context.Background(), stored.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Days)
	assert.Equal(t, 3, got.Stops)
	assert.Equal(t, 2400, got.Budget)
	assert.Greater(t, got.DistanceMeters, 0.0, "distance comes from the resolved day-one gap")
}
