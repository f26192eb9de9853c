package domain

import "fmt"

// TripKey identifies one departure: an operating date and its time slot label.
type TripKey struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

func (k TripKey) String() string {
	return fmt.Sprintf("%s %s", k.Date, k.TimeSlot)
}

// Filename-safe form, e.g. "2026-05-01-0800".
func (k TripKey) Slug() string {
	slot := make([]rune, 0, len(k.TimeSlot))
	for _, r := range k.TimeSlot {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			slot = append(slot, r)
		}
	}
	return fmt.Sprintf("%s-%s", k.Date, string(slot))
}
