package domain

import (
	"fmt"
	"sort"
	"strings"

	"shuttle/internal/domain/models"
)

// AdmissionPolicy decides what happens to bookings ranked after the first one
// that does not fit.
type AdmissionPolicy int

const (
	// PolicyFillGaps checks every booking on its own and admits any later
	// booking whose whole party still fits in the remaining seats.
	PolicyFillGaps AdmissionPolicy = iota
	// PolicyStrictPriority closes the trip at the first booking that does not
	// fit. Nothing ranked below it boards, even if it would fit.
	PolicyStrictPriority
)

func (p AdmissionPolicy) String() string {
	if p == PolicyStrictPriority {
		return "strict"
	}
	return "fill_gaps"
}

func ParseAdmissionPolicy(s string) (AdmissionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fill_gaps", "fill-gaps":
		return PolicyFillGaps, nil
	case "strict":
		return PolicyStrictPriority, nil
	}
	return PolicyFillGaps, ValidationError{Field: "admissionPolicy", Msg: fmt.Sprintf("unknown policy %q", s)}
}

// Consolidator groups one day's bookings into trips and allocates seats.
// It is a pure value: no I/O, no clock, safe for concurrent use.
type Consolidator struct {
	Capacity int
	Policy   AdmissionPolicy
}

// Consolidate runs the default fill-gaps consolidator with the given capacity.
func Consolidate(bookings []models.Booking, date string, capacity int) ([]models.Trip, error) {
	return Consolidator{Capacity: capacity}.Consolidate(bookings, date)
}

// Consolidate returns one trip per distinct time slot on date, in time-of-day
// order. Every input booking is validated, including those of other dates.
// The input slice is never modified.
func (c Consolidator) Consolidate(bookings []models.Booking, date string) ([]models.Trip, error) {
	if c.Capacity <= 0 {
		return nil, ValidationError{
			Field: "capacity",
			Msg:   fmt.Sprintf("must be positive, got %d", c.Capacity),
			Err:   ErrInvalidCapacity,
		}
	}
	if err := ValidateBookings(bookings); err != nil {
		return nil, err
	}

	groups := make(map[string][]models.Booking)
	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		groups[b.TimeSlot] = append(groups[b.TimeSlot], b)
	}

	slots := make([]TimeSlot, 0, len(groups))
	for label := range groups {
		slots = append(slots, ParseTimeSlot(label))
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Less(slots[j]) })

	trips := make([]models.Trip, 0, len(slots))
	for _, slot := range slots {
		trips = append(trips, c.allocate(date, slot.Label, groups[slot.Label]))
	}
	return trips, nil
}

// ValidateBookings rejects bookings no trip could be built from.
func ValidateBookings(bookings []models.Booking) error {
	for i, b := range bookings {
		if b.PaxCount <= 0 {
			return invalidBooking(i, "paxCount", fmt.Sprintf("must be positive, got %d", b.PaxCount))
		}
		if strings.TrimSpace(b.TimeSlot) == "" {
			return invalidBooking(i, "timeSlot", "is required")
		}
		if strings.TrimSpace(b.Date) == "" {
			return invalidBooking(i, "date", "is required")
		}
	}
	return nil
}

func (c Consolidator) allocate(date, slot string, group []models.Booking) models.Trip {
	ordered := make([]models.Booking, len(group))
	copy(ordered, group)
	sort.SliceStable(ordered, func(i, j int) bool { return ranksBefore(ordered[i], ordered[j]) })

	trip := models.Trip{
		Date:       date,
		Time:       slot,
		Capacity:   c.Capacity,
		Passengers: make([]models.Passenger, 0, len(ordered)),
	}
	load := 0
	closed := false
	for _, b := range ordered {
		trip.TotalPax += b.PaxCount
		overflow := closed || load+b.PaxCount > c.Capacity
		if overflow {
			closed = c.Policy == PolicyStrictPriority
		} else {
			load += b.PaxCount
		}
		trip.Passengers = append(trip.Passengers, models.Passenger{Booking: b, IsOverflow: overflow})
	}
	trip.AcceptedPax = load
	trip.OverflowPax = trip.TotalPax - load
	trip.IsOverCapacity = trip.TotalPax > c.Capacity
	return trip
}

// VIPs first, then earliest registration.
func ranksBefore(a, b models.Booking) bool {
	if a.IsVIP != b.IsVIP {
		return a.IsVIP
	}
	return a.BookingTime.Before(b.BookingTime)
}
