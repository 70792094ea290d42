package domain

// Clone returns a deep copy of the trip. Edits always operate on whole-value
// copies so every computation step sees an immutable snapshot.
func (t Trip) Clone() Trip {
	out := t
	out.Days = make([]Day, len(t.Days))
	for i, d := range t.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	out.Stops = make([]Stop, len(d.Stops))
	for i, s := range d.Stops {
		out.Stops[i] = s.Clone()
	}
	out.Modes = append([]TravelMode(nil), d.Modes...)
	out.Totals = d.Totals.Clone()
	return out
}

// Clone returns a deep copy of the stop.
func (s Stop) Clone() Stop {
	out := s
	out.Checklist = append([]ChecklistItem(nil), s.Checklist...)
	if s.Details != nil {
		det := *s.Details
		det.OpeningHours = append([]string(nil), s.Details.OpeningHours...)
		det.ClosedOn = append([]string(nil), s.Details.ClosedOn...)
		if s.Details.IsOpen != nil {
			open := *s.Details.IsOpen
			det.IsOpen = &open
		}
		out.Details = &det
	}
	return out
}

// Clone returns a deep copy of the stats snapshot.
func (s DayStats) Clone() DayStats {
	out := s
	if s.ModeStats != nil {
		out.ModeStats = make(map[TravelMode]ModeTotals, len(s.ModeStats))
		for k, v := range s.ModeStats {
			out.ModeStats[k] = v
		}
	}
	return out
}
