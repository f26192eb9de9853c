package models

import "time"

// ShuttleStatus is the dispatcher-driven lifecycle of a shuttle booking.
type ShuttleStatus string

const (
	StatusRegistered ShuttleStatus = "REGISTERED"
	StatusConfirmed  ShuttleStatus = "CONFIRMED"
	StatusPickedUp   ShuttleStatus = "PICKED_UP"
	StatusNoShow     ShuttleStatus = "NO_SHOW"
)

func (s ShuttleStatus) Valid() bool {
	switch s {
	case StatusRegistered, StatusConfirmed, StatusPickedUp, StatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether a dispatcher may move a booking from s to next.
// PICKED_UP and NO_SHOW are terminal.
func (s ShuttleStatus) CanTransition(next ShuttleStatus) bool {
	switch s {
	case StatusRegistered:
		return next == StatusConfirmed || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusPickedUp || next == StatusNoShow
	}
	return false
}

// Booking is one shuttle registration. All PaxCount seats travel together.
type Booking struct {
	ID             string        `json:"id"`
	GuestName      string        `json:"guestName"`
	GuestPhone     string        `json:"guestPhone"`
	PickupLocation string        `json:"pickupLocation"`
	Date           string        `json:"date"`
	TimeSlot       string        `json:"timeSlot"`
	PaxCount       int           `json:"paxCount"`
	Status         ShuttleStatus `json:"status"`
	Notes          string        `json:"notes,omitempty"`
	BookingTime    time.Time     `json:"bookingTime"`
	IsVIP          bool          `json:"isVIP"`
	RouteID        string        `json:"routeId,omitempty"`
	TotalPrice     int64         `json:"totalPrice,omitempty"`
}
