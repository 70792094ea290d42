package timeline

import "fmt"

// ClockToMinutes converts an "HH:mm" string to minutes since midnight.
// Malformed or empty strings parse to 0; callers that care about presence
// must check for the empty string before calling.
func ClockToMinutes(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

// MinutesToClock formats minutes since midnight as "HH:mm".
// Values past 24h keep counting hours rather than wrapping, so an overrun
// arrival reads as e.g. "25:10".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
