// Package geo provides straight-line distance and walking-time estimates.
// These back the routing fallback and cheap previews; they never fail and
// never return negative or NaN values for real coordinates.
package geo

import (
	"math"

	"github.com/sejin-oh/itinera/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// walkSpeedMetersPerMinute is a constant 5 km/h walking pace.
const walkSpeedMetersPerMinute = 5000.0 / 60.0

// Distance returns the great-circle distance in meters between two WGS84
// coordinates. Symmetric in its arguments; zero for identical points.
func Distance(a, b domain.Position) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// WalkMinutes estimates walking time for the given distance at 5 km/h,
// rounded up to whole minutes. Zero distance yields zero minutes.
func WalkMinutes(meters float64) int {
	if meters <= 0 {
		return 0
	}
	return int(math.Ceil(meters / walkSpeedMetersPerMinute))
}
