package services

import (
	"context"
	"testing"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type memFleetWriter struct {
	vehicles []models.Vehicle
	drivers  []models.Driver
}

func (m *memFleetWriter) SaveVehicle(_ context.Context, v models.Vehicle) error {
	m.vehicles = append(m.vehicles, v)
	return nil
}

func (m *memFleetWriter) SaveDriver(_ context.Context, d models.Driver) error {
	m.drivers = append(m.drivers, d)
	return nil
}

func TestFleetServiceSaveVehicle(t *testing.T) {
	store := &memFleetWriter{}
	svc := FleetService{Store: store}

	v, err := svc.SaveVehicle(context.Background(), models.Vehicle{ID: "v16", Name: " Ford  Transit ", Plate: "60a-123.45", Seats: 16})
	if err != nil {
		t.Fatalf("SaveVehicle returned error: %v", err)
	}
	if v.Status != models.VehicleAvailable || v.Plate != "60A-123.45" || v.Name != "Ford Transit" {
		t.Fatalf("vehicle not normalized: %+v", v)
	}
	if len(store.vehicles) != 1 {
		t.Fatalf("vehicle not stored")
	}

	if _, err := svc.SaveVehicle(context.Background(), models.Vehicle{ID: "x", Name: "Bus", Seats: 0}); !domain.IsValidation(err) {
		t.Fatalf("zero seats accepted: %v", err)
	}
	if _, err := svc.SaveVehicle(context.Background(), models.Vehicle{ID: "x", Name: "Bus", Seats: 16, Status: "BROKEN"}); !domain.IsValidation(err) {
		t.Fatalf("unknown status accepted: %v", err)
	}
}

func TestFleetServiceSaveDriver(t *testing.T) {
	svc := FleetService{Store: &memFleetWriter{}}
	d, err := svc.SaveDriver(context.Background(), models.Driver{ID: "d9", Name: "Chú Ba", Phone: " 0909.888.777 "})
	if err != nil {
		t.Fatalf("SaveDriver returned error: %v", err)
	}
	if d.Status != models.DriverReady || d.Phone != "0909.888.777" {
		t.Fatalf("driver not normalized: %+v", d)
	}
	if _, err := svc.SaveDriver(context.Background(), models.Driver{ID: "d9"}); !domain.IsValidation(err) {
		t.Fatalf("driver without name accepted: %v", err)
	}
}
