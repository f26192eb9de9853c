package domain

import "strings"

// TimeSlot is a departure label with its parsed time of day.
type TimeSlot struct {
	Label string
	// Minute is minutes since midnight, or -1 when Label is not a clock time.
	Minute int
}

// ParseTimeSlot accepts "H:MM" and "HH:MM" with hour 0-23 and minute 0-59.
// Anything else keeps Minute = -1; the label is still usable as a group key.
func ParseTimeSlot(label string) TimeSlot {
	slot := TimeSlot{Label: label, Minute: -1}
	hh, mm, ok := strings.Cut(label, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return slot
	}
	h, okH := digits(hh)
	m, okM := digits(mm)
	if !okH || !okM || h > 23 || m > 59 {
		return slot
	}
	slot.Minute = h*60 + m
	return slot
}

func (s TimeSlot) IsClock() bool { return s.Minute >= 0 }

// Less orders clock times by time of day, then by label (so "8:00" and "08:00"
// stay in a fixed order). Non-clock labels go after every clock time, sorted
// lexicographically.
func (s TimeSlot) Less(o TimeSlot) bool {
	switch {
	case s.IsClock() && o.IsClock():
		if s.Minute != o.Minute {
			return s.Minute < o.Minute
		}
		return s.Label < o.Label
	case s.IsClock() != o.IsClock():
		return s.IsClock()
	}
	return s.Label < o.Label
}

func (s TimeSlot) String() string { return s.Label }

func digits(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
