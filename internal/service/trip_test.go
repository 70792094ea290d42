package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/geo"
	"github.com/sejin-oh/itinera/internal/planner"
	"github.com/sejin-oh/itinera/internal/repo"
	"github.com/sejin-oh/itinera/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Set only the method fields your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	save    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.save(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// fakeResolver produces deterministic segments without any routing service:
// straight-line distance, one minute per started kilometer.
type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, stops []domain.Stop, modes []domain.TravelMode) []domain.Segment {
	if len(stops) < 2 {
		return []domain.Segment{}
	}
	segments := make([]domain.Segment, len(stops)-1)
	for i := range segments {
		dist := geo.Distance(stops[i].Position, stops[i+1].Position)
		segments[i] = domain.Segment{
			Mode:            domain.ModeOrDefault(modes, i),
			DistanceMeters:  dist,
			DurationMinutes: int(dist/1000) + 1,
		}
	}
	return segments
}

var _ service.SegmentResolver = fakeResolver{}

// ---- helpers ---------------------------------------------------------------

// echoRepo wires getByID and save so edits flow through: Save returns its
// input, GetByID returns the stored fixture.
func echoRepo(stored domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != stored.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return stored, nil
		},
		save: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return trip, nil
		},
	}
}

func storedTrip() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Tokyo Long Weekend",
		StartDate: "2026-04-10",
		Days: []domain.Day{
			{
				ID: uuid.New(),
				Stops: []domain.Stop{
					{ID: uuid.New(), Name: "Meiji Shrine", Budget: 0, Position: domain.Position{Lat: 35.6764, Lng: 139.6993}},
					{ID: uuid.New(), Name: "Shibuya Crossing", Budget: 1500, Position: domain.Position{Lat: 35.6595, Lng: 139.7005}},
				},
				Modes: []domain.TravelMode{domain.ModeWalking},
			},
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_OK(t *testing.T) {
	var captured domain.Trip
	svc := service.NewTripService(&mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			captured = trip
			trip.ID = uuid.New()
			return trip, nil
		},
	}, fakeResolver{})

	got, err := svc.Create(context.Background(), "Tokyo Long Weekend", "2026-04-10")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	require.Len(t, captured.Days, 1, "a first empty day is added automatically")
	assert.Equal(t, "2026-04-10", captured.Days[0].Date)
	assert.Empty(t, captured.Days[0].Stops)
}

func TestTripService_Create_NameRequired(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, fakeResolver{})

	_, err := svc.Create(context.Background(), "  ", "2026-04-10")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_DefaultsStartDateToToday(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return trip, nil
		},
	}, fakeResolver{})

	got, err := svc.Create(context.Background(), "Spontaneous", "")

	require.NoError(t, err)
	assert.NotEmpty(t, got.StartDate)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, got.StartDate)
}

func TestTripService_Create_InvalidStartDate(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, fakeResolver{})

	_, err := svc.Create(context.Background(), "Trip", "next tuesday")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- GetByID / List --------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, fakeResolver{})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return nil, nil
		},
	}, fakeResolver{})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Edit ------------------------------------------------------------------

func TestTripService_Edit_AppliesCommandAndSaves(t *testing.T) {
	stored := storedTrip()
	var saved domain.Trip
	r := echoRepo(stored)
	r.save = func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
		saved = trip
		return trip, nil
	}
	svc := service.NewTripService(r, fakeResolver{})

	got, err := svc.Edit(context.Background(), stored.ID, planner.Rename{Name: "Kansai Instead"})

	require.NoError(t, err)
	assert.Equal(t, "Kansai Instead", got.Name)
	assert.Equal(t, "Kansai Instead", saved.Name, "the edited snapshot is what gets persisted")
}

func TestTripService_Edit_RefreshesDayTotals(t *testing.T) {
	stored := storedTrip()
	var saved domain.Trip
	r := echoRepo(stored)
	r.save = func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
		saved = trip
		return trip, nil
	}
	svc := service.NewTripService(r, fakeResolver{})

	_, err := svc.Edit(context.Background(), stored.ID, planner.Rename{Name: "Still Tokyo"})

	require.NoError(t, err)
	require.Len(t, saved.Days, 1)
	totals := saved.Days[0].Totals
	assert.Equal(t, 1500, totals.Budget)
	assert.Greater(t, totals.DistanceMeters, 0.0, "cached totals recomputed from resolved segments")
	assert.Contains(t, totals.ModeStats, domain.ModeWalking)
}

func TestTripService_Edit_TripNotFound(t *testing.T) {
	svc := service.NewTripService(echoRepo(storedTrip()), fakeResolver{})

	_, err := svc.Edit(context.Background(), uuid.New(), planner.AddDay{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Edit_ValidationErrorDoesNotSave(t *testing.T) {
	stored := storedTrip()
	r := echoRepo(stored)
	r.save = func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
		t.Fatal("save must not be called when the command fails")
		return domain.Trip{}, nil
	}
	svc := service.NewTripService(r, fakeResolver{})

	_, err := svc.Edit(context.Background(), stored.ID, planner.Rename{Name: ""})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Recalculate -----------------------------------------------------------

func TestTripService_Recalculate_WritesWhenStale(t *testing.T) {
	stored := storedTrip() // cached totals are zero-valued, so recompute differs
	saveCalls := 0
	r := echoRepo(stored)
	r.save = func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
		saveCalls++
		return trip, nil
	}
	svc := service.NewTripService(r, fakeResolver{})

	got, changed, err := svc.Recalculate(context.Background(), stored.ID)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, saveCalls)
	assert.Equal(t, 1500, got.Days[0].Totals.Budget)
}

func TestTripService_Recalculate_NoWriteWhenUnchanged(t *testing.T) {
	stored := storedTrip()
	r := echoRepo(stored)
	svc := service.NewTripService(r, fakeResolver{})

	// First pass computes and persists fresh totals.
	first, changed, err := svc.Recalculate(context.Background(), stored.ID)
	require.NoError(t, err)
	require.True(t, changed)

	// Second pass sees the already-fresh totals and must not write.
	r.getByID = func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
		return first, nil
	}
	r.save = func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
		t.Fatal("save must not be called when totals are unchanged")
		return domain.Trip{}, nil
	}

	_, changed, err = svc.Recalculate(context.Background(), stored.ID)

	require.NoError(t, err)
	assert.False(t, changed, "recomputing an identical snapshot must not persist")
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_PropagatesNotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}, fakeResolver{})

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- error propagation -----------------------------------------------------

func TestTripService_Edit_SaveError(t *testing.T) {
	stored := storedTrip()
	repoErr := errors.New("db exploded")
	r := echoRepo(stored)
	r.save = func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, repoErr
	}
	svc := service.NewTripService(r, fakeResolver{})

	_, err := svc.Edit(context.Background(), stored.ID, planner.AddDay{})

	assert.ErrorIs(t, err, repoErr)
}
