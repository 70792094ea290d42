package domain

// TravelMode is the mode of travel for one segment between adjacent stops.
type TravelMode string

const (
	ModeWalking TravelMode = "WALKING"
	ModeDriving TravelMode = "DRIVING"
	ModeTransit TravelMode = "TRANSIT"
)

// Valid reports whether m is one of the known travel modes.
func (m TravelMode) Valid() bool {
	switch m {
	case ModeWalking, ModeDriving, ModeTransit:
		return true
	}
	return false
}

// ModeOrDefault returns the mode at gap index i, or ModeWalking when the
// selection list is shorter than the gap count or holds an empty value.
func ModeOrDefault(modes []TravelMode, i int) TravelMode {
	if i >= 0 && i < len(modes) && modes[i] != "" {
		return modes[i]
	}
	return ModeWalking
}

// Segment is the derived travel leg between stop i and stop i+1.
// Segments are ephemeral: they are recomputed from stops + mode selections +
// routing results and never persisted as authoritative state.
type Segment struct {
	Mode            TravelMode `json:"mode"`
	DistanceMeters  float64    `json:"distance_meters"`
	DurationMinutes int        `json:"duration_minutes"`
	Path            string     `json:"path,omitempty"` // encoded polyline; empty for fallback estimates
}

// Severity grades a ValidationResult.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationResult is one timeline feasibility finding for a gap. Gaps that
// are comfortable, or that lack a start time on either side, produce none.
type ValidationResult struct {
	GapIndex int      `json:"gap_index"`
	IsValid  bool     `json:"is_valid"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
