package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type memBookings struct {
	mu   sync.Mutex
	rows []models.Booking
}

func (m *memBookings) Insert(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, b)
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

func (m *memBookings) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.rows {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id string, from, to models.ShuttleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.rows {
		if b.ID == id && b.Status == from {
			m.rows[i].Status = to
			return nil
		}
	}
	return domain.ConflictError{Resource: "booking"}
}

type memAssignments struct {
	mu   sync.Mutex
	rows map[string]models.Assignment
}

func newMemAssignments(list ...models.Assignment) *memAssignments {
	m := &memAssignments{rows: map[string]models.Assignment{}}
	for _, a := range list {
		m.rows[a.Date+"|"+a.TimeSlot] = a
	}
	return m
}

func (m *memAssignments) Get(_ context.Context, date, slot string) (models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[date+"|"+slot]
	if !ok {
		return models.Assignment{}, domain.NotFoundError{Resource: "assignment"}
	}
	return a, nil
}

func (m *memAssignments) ListByDate(_ context.Context, date string) ([]models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Assignment{}
	for _, a := range m.rows {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssignments) Save(_ context.Context, a models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[a.Date+"|"+a.TimeSlot] = a
	return nil
}

func (m *memAssignments) ClaimNotified(_ context.Context, date, slot string, claim bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := date + "|" + slot
	a, ok := m.rows[key]
	if !ok || a.Notified == claim {
		return domain.ConflictError{Resource: "trip"}
	}
	a.Notified = claim
	if claim {
		now := time.Now().UTC()
		a.NotifiedAt = &now
	} else {
		a.NotifiedAt = nil
	}
	m.rows[key] = a
	return nil
}

type memFleet struct {
	vehicles map[string]models.Vehicle
	drivers  map[string]models.Driver
}

func newMemFleet() *memFleet {
	return &memFleet{
		vehicles: map[string]models.Vehicle{
			"v16":  {ID: "v16", Name: "Ford Transit", Plate: "60A-123.45", Seats: 16, Status: models.VehicleAvailable},
			"v29":  {ID: "v29", Name: "Thaco Town", Plate: "60B-555.55", Seats: 29, Status: models.VehicleAvailable},
			"v7":   {ID: "v7", Name: "Toyota Innova", Plate: "60A-678.90", Seats: 7, Status: models.VehicleAvailable},
			"vfix": {ID: "vfix", Name: "Hyundai Solati", Plate: "60A-000.01", Seats: 16, Status: models.VehicleMaintenance},
		},
		drivers: map[string]models.Driver{
			"d1": {ID: "d1", Name: "Anh Tuấn", Phone: "0901.234.567", Status: models.DriverReady},
			"d2": {ID: "d2", Name: "Chú Ba", Phone: "0909.888.777", Status: models.DriverReady},
		},
	}
}

func (m *memFleet) ListVehicles(context.Context) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	for _, id := range []string{"v29", "v16", "vfix", "v7"} {
		out = append(out, m.vehicles[id])
	}
	return out, nil
}

func (m *memFleet) GetVehicle(_ context.Context, id string) (models.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, nil
}

func (m *memFleet) ListDrivers(context.Context) ([]models.Driver, error) {
	return []models.Driver{m.drivers["d1"], m.drivers["d2"]}, nil
}

func (m *memFleet) GetDriver(_ context.Context, id string) (models.Driver, error) {
	d, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return d, nil
}

type recordingNotifier struct {
	sent []Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, note Notification) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, note)
	return nil
}

var errGatewayDown = errors.New("gateway down")

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seedBooking(id, slot string, pax int, vip bool, offset time.Duration) models.Booking {
	return models.Booking{
		ID:             id,
		GuestName:      "Guest " + id,
		GuestPhone:     "0988" + id,
		PickupLocation: "Trấn Biên (Điểm chuẩn)",
		Date:           "2026-05-03",
		TimeSlot:       slot,
		PaxCount:       pax,
		Status:         models.StatusRegistered,
		BookingTime:    fixedNow.Add(offset),
		IsVIP:          vip,
		RouteID:        "TB-BP",
	}
}
