package models

import "time"

// Assignment binds a vehicle and a driver to one trip, keyed by date and slot.
type Assignment struct {
	Date       string     `json:"date"`
	TimeSlot   string     `json:"timeSlot"`
	VehicleID  string     `json:"vehicleId"`
	DriverID   string     `json:"driverId"`
	Notified   bool       `json:"notified"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Ready reports whether both a vehicle and a driver are set.
func (a Assignment) Ready() bool {
	return a.VehicleID != "" && a.DriverID != ""
}
