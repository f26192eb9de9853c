package services

import (
	"context"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
)

type BookingStore interface {
	Insert(ctx context.Context, b models.Booking) error
	GetByID(ctx context.Context, id string) (models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.ShuttleStatus) error
}

type AssignmentStore interface {
	Get(ctx context.Context, date, slot string) (models.Assignment, error)
	ListByDate(ctx context.Context, date string) ([]models.Assignment, error)
	Save(ctx context.Context, a models.Assignment) error
	ClaimNotified(ctx context.Context, date, slot string, claim bool) error
}

type FleetStore interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (models.Vehicle, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id string) (models.Driver, error)
}

// Settings carries the operating parameters of the shuttle line.
type Settings struct {
	Capacity         int
	Policy           domain.AdmissionPolicy
	MinShuttleSeats  int
	MaxPaxPerBooking int
	PricePerSeat     int64
	TimeSlots        []string
	Routes           []models.Route
}

func DefaultSettings() Settings {
	return Settings{
		Capacity:         18,
		Policy:           domain.PolicyFillGaps,
		MinShuttleSeats:  16,
		MaxPaxPerBooking: 18,
		PricePerSeat:     150000,
		TimeSlots: []string{
			"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
			"13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
		},
		Routes: models.DefaultRoutes(),
	}
}

// filled replaces unset fields with the defaults.
func (s Settings) filled() Settings {
	def := DefaultSettings()
	if s.Capacity <= 0 {
		s.Capacity = def.Capacity
	}
	if s.MinShuttleSeats <= 0 {
		s.MinShuttleSeats = def.MinShuttleSeats
	}
	if s.MaxPaxPerBooking <= 0 {
		s.MaxPaxPerBooking = def.MaxPaxPerBooking
	}
	if s.PricePerSeat <= 0 {
		s.PricePerSeat = def.PricePerSeat
	}
	if len(s.TimeSlots) == 0 {
		s.TimeSlots = def.TimeSlots
	}
	if len(s.Routes) == 0 {
		s.Routes = def.Routes
	}
	return s
}

func bookingStore(s BookingStore) BookingStore {
	if s != nil {
		return s
	}
	return repositories.BookingRepository{}
}

func assignmentStore(s AssignmentStore) AssignmentStore {
	if s != nil {
		return s
	}
	return repositories.AssignmentRepository{}
}

func fleetStore(s FleetStore) FleetStore {
	if s != nil {
		return s
	}
	return repositories.FleetRepository{}
}
