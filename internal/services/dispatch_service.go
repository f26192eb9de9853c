package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

// DispatchService owns vehicle/driver assignment and pickup notifications.
type DispatchService struct {
	Board       TripBoardService
	Assignments AssignmentStore
	Fleet       FleetStore
	Notifier    Notifier
	Settings    Settings
	Now         func() time.Time
	RequestID   string
}

// AssignInput is a partial update: nil fields keep their stored value and an
// empty string clears the field.
type AssignInput struct {
	VehicleID *string `json:"vehicleId"`
	DriverID  *string `json:"driverId"`
}

type Fleet struct {
	Vehicles []models.Vehicle `json:"vehicles"`
	Drivers  []models.Driver  `json:"drivers"`
}

func (s DispatchService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

func (s DispatchService) notifier() Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return LogNotifier{RequestID: s.RequestID}
}

func (s DispatchService) Assign(ctx context.Context, date, slot string, in AssignInput) (models.Assignment, error) {
	if err := checkTripKey(date, slot); err != nil {
		return models.Assignment{}, err
	}
	if in.VehicleID == nil && in.DriverID == nil {
		return models.Assignment{}, domain.ValidationError{Msg: "vehicleId or driverId is required"}
	}

	store := assignmentStore(s.Assignments)
	current, err := store.Get(ctx, date, slot)
	if err != nil && !domain.IsNotFound(err) {
		return models.Assignment{}, domain.InternalError{Msg: "failed to load assignment", Err: err}
	}
	if domain.IsNotFound(err) {
		current = models.Assignment{Date: date, TimeSlot: slot}
	}

	next := current
	if in.VehicleID != nil {
		id := strings.TrimSpace(*in.VehicleID)
		if id != "" && id != current.VehicleID {
			if err := s.checkVehicle(ctx, id); err != nil {
				return models.Assignment{}, err
			}
		}
		next.VehicleID = id
	}
	if in.DriverID != nil {
		id := strings.TrimSpace(*in.DriverID)
		if id != "" {
			if _, err := fleetStore(s.Fleet).GetDriver(ctx, id); err != nil {
				return models.Assignment{}, asValidation("driverId", err)
			}
		}
		next.DriverID = id
	}

	if next.VehicleID != current.VehicleID || next.DriverID != current.DriverID {
		// whoever was told before is no longer the crew
		next.Notified = false
		next.NotifiedAt = nil
	}
	next.UpdatedAt = s.now()

	if err := store.Save(ctx, next); err != nil {
		return models.Assignment{}, domain.InternalError{Msg: "failed to save assignment", Err: err}
	}
	utils.LogEventf(s.RequestID, "dispatch", "assign", "date=%s slot=%s vehicle=%s driver=%s", date, slot, next.VehicleID, next.DriverID)
	return next, nil
}

func (s DispatchService) checkVehicle(ctx context.Context, id string) error {
	v, err := fleetStore(s.Fleet).GetVehicle(ctx, id)
	if err != nil {
		return asValidation("vehicleId", err)
	}
	minSeats := s.Settings.filled().MinShuttleSeats
	if v.Seats < minSeats {
		return domain.ValidationError{Field: "vehicleId", Msg: fmt.Sprintf("vehicle %s has %d seats, shuttle needs at least %d", v.ID, v.Seats, minSeats)}
	}
	if v.Status != models.VehicleAvailable {
		return domain.ConflictError{Resource: "vehicle", Msg: fmt.Sprintf("vehicle %s is %s", v.ID, v.Status)}
	}
	return nil
}

// Notify tells the assigned crew and the accepted guests about the pickup.
// A trip is notified at most once until its crew changes.
func (s DispatchService) Notify(ctx context.Context, date, slot string, capacity int) (models.Assignment, error) {
	if err := checkTripKey(date, slot); err != nil {
		return models.Assignment{}, err
	}

	trip, err := s.Board.Trip(ctx, date, slot, capacity)
	if domain.IsNotFound(err) {
		return models.Assignment{}, domain.ValidationError{Msg: "trip has no passengers"}
	}
	if err != nil {
		return models.Assignment{}, err
	}
	if trip.TotalPax == 0 {
		return models.Assignment{}, domain.ValidationError{Msg: "trip has no passengers"}
	}
	if trip.Assignment == nil || !trip.Assignment.Ready() {
		return models.Assignment{}, domain.ValidationError{Msg: "assign a vehicle and driver before notifying"}
	}
	if trip.Assignment.Notified {
		return models.Assignment{}, domain.ConflictError{Resource: "trip", Msg: "pickup notification already sent"}
	}

	vehicle, err := fleetStore(s.Fleet).GetVehicle(ctx, trip.Assignment.VehicleID)
	if err != nil {
		return models.Assignment{}, asValidation("vehicleId", err)
	}
	driver, err := fleetStore(s.Fleet).GetDriver(ctx, trip.Assignment.DriverID)
	if err != nil {
		return models.Assignment{}, asValidation("driverId", err)
	}

	store := assignmentStore(s.Assignments)
	if err := store.ClaimNotified(ctx, date, slot, true); err != nil {
		return models.Assignment{}, err
	}

	sentAt := s.now()
	note := Notification{
		Date:         date,
		TripTime:     trip.Time,
		AcceptedPax:  trip.AcceptedPax,
		VehicleName:  vehicle.Name,
		VehiclePlate: vehicle.Plate,
		DriverName:   driver.Name,
		DriverPhone:  driver.Phone,
		Recipients:   recipientsOf(trip.Accepted()),
		SentAt:       sentAt,
	}
	if err := s.notifier().Notify(ctx, note); err != nil {
		if rerr := store.ClaimNotified(ctx, date, slot, false); rerr != nil {
			utils.LogEventf(s.RequestID, "dispatch", "notify_release_failed", "date=%s slot=%s err=%v", date, slot, rerr)
		}
		return models.Assignment{}, domain.InternalError{Msg: "failed to send pickup notification", Err: err}
	}

	out := *trip.Assignment
	out.Notified = true
	out.NotifiedAt = &sentAt
	out.UpdatedAt = sentAt
	utils.LogEventf(s.RequestID, "dispatch", "notify", "date=%s slot=%s accepted=%d recipients=%d", date, slot, note.AcceptedPax, len(note.Recipients))
	return out, nil
}

// EligibleFleet lists vehicles big enough for the shuttle, whatever their
// status, and every driver.
func (s DispatchService) EligibleFleet(ctx context.Context) (Fleet, error) {
	minSeats := s.Settings.filled().MinShuttleSeats
	vehicles, err := fleetStore(s.Fleet).ListVehicles(ctx)
	if err != nil {
		return Fleet{}, domain.InternalError{Msg: "failed to load vehicles", Err: err}
	}
	drivers, err := fleetStore(s.Fleet).ListDrivers(ctx)
	if err != nil {
		return Fleet{}, domain.InternalError{Msg: "failed to load drivers", Err: err}
	}

	out := Fleet{Vehicles: []models.Vehicle{}, Drivers: drivers}
	for _, v := range vehicles {
		if v.Seats >= minSeats {
			out.Vehicles = append(out.Vehicles, v)
		}
	}
	return out, nil
}

func checkTripKey(date, slot string) error {
	if !utils.IsDate(date) {
		return domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(slot) == "" {
		return domain.ValidationError{Field: "timeSlot", Msg: "is required"}
	}
	return nil
}

// asValidation turns a missing fleet record into a bad reference.
func asValidation(field string, err error) error {
	if domain.IsNotFound(err) {
		return domain.ValidationError{Field: field, Msg: "does not exist", Err: err}
	}
	return domain.InternalError{Msg: "failed to load fleet", Err: err}
}
