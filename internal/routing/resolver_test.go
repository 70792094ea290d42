package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/geo"
	"github.com/sejin-oh/itinera/internal/routing"
)

// ---- mock router -----------------------------------------------------------

// mockRouter is a hand-written test double for routing.Router.
type mockRouter struct {
	route func(ctx context.Context, origin, destination domain.Position, mode domain.TravelMode) (routing.Route, error)
}

func (m *mockRouter) Route(ctx context.Context, origin, destination domain.Position, mode domain.TravelMode) (routing.Route, error) {
	return m.route(ctx, origin, destination, mode)
}

// compile-time check: mockRouter must satisfy routing.Router.
var _ routing.Router = (*mockRouter)(nil)

// ---- helpers ---------------------------------------------------------------

func positionedStops(n int) []domain.Stop {
	stops := make([]domain.Stop, n)
	for i := range stops {
		stops[i] = domain.Stop{
			Name:     string(rune('A' + i)),
			Position: domain.Position{Lat: 35.65 + float64(i)*0.01, Lng: 139.70},
		}
	}
	return stops
}

// ---- Resolve ---------------------------------------------------------------

func TestResolver_FewerThanTwoStops(t *testing.T) {
	r := routing.NewResolver(&mockRouter{}, nil)

	got := r.Resolve(context.Background(), nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = r.Resolve(context.Background(), positionedStops(1), nil)
	assert.Empty(t, got)
}

func TestResolver_OneSegmentPerGap(t *testing.T) {
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, _, _ domain.Position, mode domain.TravelMode) (routing.Route, error) {
			return routing.Route{DistanceMeters: 1000, DurationSeconds: 600, Path: "poly"}, nil
		},
	}, nil)

	got := r.Resolve(context.Background(), positionedStops(4), nil)

	require.Len(t, got, 3)
	for _, seg := range got {
		assert.Equal(t, domain.ModeWalking, seg.Mode, "no selection defaults to walking")
		assert.Equal(t, 1000.0, seg.DistanceMeters)
		assert.Equal(t, 10, seg.DurationMinutes)
		assert.Equal(t, "poly", seg.Path)
	}
}

func TestResolver_SecondsRoundUpToMinutes(t *testing.T) {
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, _, _ domain.Position, _ domain.TravelMode) (routing.Route, error) {
			return routing.Route{DistanceMeters: 500, DurationSeconds: 61}, nil
		},
	}, nil)

	got := r.Resolve(context.Background(), positionedStops(2), nil)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].DurationMinutes)
}

func TestResolver_FailedGapFallsBackToEstimate(t *testing.T) {
	stops := positionedStops(3)
	// Only the first gap fails; the second resolves normally.
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, origin, _ domain.Position, _ domain.TravelMode) (routing.Route, error) {
			if origin == stops[0].Position {
				return routing.Route{}, errors.New("routing service down")
			}
			return routing.Route{DistanceMeters: 900, DurationSeconds: 300}, nil
		},
	}, nil)
	modes := []domain.TravelMode{domain.ModeTransit, domain.ModeDriving}

	got := r.Resolve(context.Background(), stops, modes)

	require.Len(t, got, 2)

	wantDist := geo.Distance(stops[0].Position, stops[1].Position)
	assert.Equal(t, domain.ModeTransit, got[0].Mode, "fallback keeps the requested mode")
	assert.InDelta(t, wantDist, got[0].DistanceMeters, 1e-9)
	assert.Equal(t, geo.WalkMinutes(wantDist), got[0].DurationMinutes)
	assert.Empty(t, got[0].Path)

	assert.Equal(t, domain.ModeDriving, got[1].Mode)
	assert.Equal(t, 900.0, got[1].DistanceMeters)
	assert.Equal(t, 5, got[1].DurationMinutes)
}

func TestResolver_NoRouteFallsBack(t *testing.T) {
	stops := positionedStops(2)
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, _, _ domain.Position, _ domain.TravelMode) (routing.Route, error) {
			return routing.Route{}, routing.ErrNoRoute
		},
	}, nil)

	got := r.Resolve(context.Background(), stops, []domain.TravelMode{domain.ModeDriving})

	require.Len(t, got, 1)
	assert.Equal(t, domain.ModeDriving, got[0].Mode)
	assert.Equal(t, geo.WalkMinutes(got[0].DistanceMeters), got[0].DurationMinutes)
}

func TestResolver_NegativeValuesTreatedAsFailure(t *testing.T) {
	stops := positionedStops(2)
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, _, _ domain.Position, _ domain.TravelMode) (routing.Route, error) {
			return routing.Route{DistanceMeters: -5, DurationSeconds: 60}, nil
		},
	}, nil)

	got := r.Resolve(context.Background(), stops, nil)

	require.Len(t, got, 1)
	wantDist := geo.Distance(stops[0].Position, stops[1].Position)
	assert.InDelta(t, wantDist, got[0].DistanceMeters, 1e-9)
}

func TestResolver_ResultsLandAtOwnIndex(t *testing.T) {
	stops := positionedStops(5)
	// Distance encodes the gap's origin latitude so each result is
	// distinguishable regardless of goroutine completion order.
	r := routing.NewResolver(&mockRouter{
		route: func(_ context.Context, origin, _ domain.Position, _ domain.TravelMode) (routing.Route, error) {
			return routing.Route{DistanceMeters: origin.Lat, DurationSeconds: 60}, nil
		},
	}, nil)

	got := r.Resolve(context.Background(), stops, nil)

	require.Len(t, got, 4)
	for i, seg := range got {
		assert.Equal(t, stops[i].Position.Lat, seg.DistanceMeters, "gap %d", i)
	}
}

func TestNullRouter_AlwaysFails(t *testing.T) {
	_, err := routing.NullRouter{}.Route(context.Background(), domain.Position{}, domain.Position{}, domain.ModeWalking)
	assert.Error(t, err)
}
