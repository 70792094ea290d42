package routing

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/geo"
	"github.com/sejin-oh/itinera/internal/metrics"
)

// Resolver turns an ordered stop list plus per-gap mode selections into one
// segment per adjacent pair.
type Resolver struct {
	router Router
	mx     *metrics.Collector // optional
}

// NewResolver constructs a Resolver. mx may be nil.
func NewResolver(router Router, mx *metrics.Collector) *Resolver {
	return &Resolver{router: router, mx: mx}
}

// Resolve produces len(stops)-1 segments in gap order (empty for fewer than
// two stops). Lookups for all gaps run concurrently and independently; a
// failed gap falls back to the straight-line estimate without affecting the
// others, so Resolve never returns an error for lookup failures. Each gap's
// result lands at its own index regardless of completion order.
func (r *Resolver) Resolve(ctx context.Context, stops []domain.Stop, modes []domain.TravelMode) []domain.Segment {
	if len(stops) < 2 {
		return []domain.Segment{}
	}

	segments := make([]domain.Segment, len(stops)-1)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i+1 < len(stops); i++ {
		g.Go(func() error {
			segments[i] = r.resolveGap(ctx, stops[i].Position, stops[i+1].Position, domain.ModeOrDefault(modes, i))
			return nil
		})
	}

	// Goroutines never return errors; Wait only fences completion.
	_ = g.Wait()
	return segments
}

// resolveGap looks up one gap, falling back to the geo estimate on failure.
// The requested mode is preserved either way.
func (r *Resolver) resolveGap(ctx context.Context, origin, destination domain.Position, mode domain.TravelMode) domain.Segment {
	start := time.Now()
	route, err := r.router.Route(ctx, origin, destination, mode)
	if r.mx != nil {
		r.mx.RoutingDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil || route.DistanceMeters < 0 || route.DurationSeconds < 0 {
		if r.mx != nil {
			r.mx.RoutingLookups.WithLabelValues("fallback").Inc()
		}
		dist := geo.Distance(origin, destination)
		return domain.Segment{
			Mode:            mode,
			DistanceMeters:  dist,
			DurationMinutes: geo.WalkMinutes(dist),
		}
	}

	if r.mx != nil {
		r.mx.RoutingLookups.WithLabelValues("ok").Inc()
	}
	return domain.Segment{
		Mode:            mode,
		DistanceMeters:  route.DistanceMeters,
		DurationMinutes: int(math.Ceil(float64(route.DurationSeconds) / 60)),
		Path:            route.Path,
	}
}
