// Package routing resolves the travel segments between consecutive stops.
// An external routing service supplies real distances and durations; when a
// lookup fails for any reason the gap falls back to a straight-line estimate,
// so resolution as a whole never fails.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sejin-oh/itinera/internal/domain"
)

// ErrNoRoute is returned by a Router when the service responded but found no
// route between the two positions. Callers treat it like any other lookup
// failure: fall back to the straight-line estimate.
var ErrNoRoute = errors.New("no route found")

// Route is one successful routing lookup result.
type Route struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
	Path            string  `json:"path,omitempty"` // encoded polyline
}

// Router is the external routing capability. Implementations must be safe for
// concurrent use: the resolver issues one call per gap, all in flight at once.
type Router interface {
	Route(ctx context.Context, origin, destination domain.Position, mode domain.TravelMode) (Route, error)
}

// NullRouter is the Router used when no routing service is configured.
// Every lookup fails, so every segment falls back to the straight-line
// estimate.
type NullRouter struct{}

func (NullRouter) Route(context.Context, domain.Position, domain.Position, domain.TravelMode) (Route, error) {
	return Route{}, errors.New("no routing service configured")
}

// HTTPRouter calls a routing service over HTTP:
// GET {base}/route?from=lat,lng&to=lat,lng&mode=MODE → Route JSON.
type HTTPRouter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRouter constructs an HTTPRouter for the given base URL.
// A non-positive timeout defaults to 10s.
func NewHTTPRouter(baseURL string, timeout time.Duration) *HTTPRouter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRouter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Route performs a single lookup. Any transport error, non-200 status, or
// undecodable body is returned as an error; a 404 maps to ErrNoRoute.
func (r *HTTPRouter) Route(ctx context.Context, origin, destination domain.Position, mode domain.TravelMode) (Route, error) {
	q := url.Values{}
	q.Set("from", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("to", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("mode", string(mode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return Route{}, fmt.Errorf("routing.HTTPRouter.Route: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("routing.HTTPRouter.Route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Route{}, ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("routing.HTTPRouter.Route: unexpected status %d", resp.StatusCode)
	}

	var out Route
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Route{}, fmt.Errorf("routing.HTTPRouter.Route: decode: %w", err)
	}
	return out, nil
}
