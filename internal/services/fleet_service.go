package services

import (
	"context"
	"fmt"
	"strings"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

type FleetWriter interface {
	SaveVehicle(ctx context.Context, v models.Vehicle) error
	SaveDriver(ctx context.Context, d models.Driver) error
}

// FleetService registers the vehicles and drivers dispatch can pick from.
type FleetService struct {
	Store     FleetWriter
	RequestID string
}

func (s FleetService) store() FleetWriter {
	if s.Store != nil {
		return s.Store
	}
	return repositories.FleetRepository{}
}

func (s FleetService) SaveVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	v.ID = strings.TrimSpace(v.ID)
	v.Name = utils.NormalizeSpace(v.Name)
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	switch {
	case v.ID == "":
		return models.Vehicle{}, domain.ValidationError{Field: "id", Msg: "is required"}
	case v.Name == "":
		return models.Vehicle{}, domain.ValidationError{Field: "name", Msg: "is required"}
	case v.Seats <= 0:
		return models.Vehicle{}, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("must be positive, got %d", v.Seats)}
	}
	switch v.Status {
	case models.VehicleAvailable, models.VehicleInUse, models.VehicleMaintenance:
	default:
		return models.Vehicle{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown vehicle status %q", v.Status)}
	}

	if err := s.store().SaveVehicle(ctx, v); err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "failed to save vehicle", Err: err}
	}
	utils.LogEventf(s.RequestID, "fleet", "save_vehicle", "id=%s seats=%d status=%s", v.ID, v.Seats, v.Status)
	return v, nil
}

func (s FleetService) SaveDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = utils.NormalizeSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	if d.Status == "" {
		d.Status = models.DriverReady
	}
	if d.ID == "" {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	if d.Name == "" {
		return models.Driver{}, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	switch d.Status {
	case models.DriverReady, models.DriverDriving, models.DriverOffDuty:
	default:
		return models.Driver{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown driver status %q", d.Status)}
	}

	if err := s.store().SaveDriver(ctx, d); err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to save driver", Err: err}
	}
	utils.LogEventf(s.RequestID, "fleet", "save_driver", "id=%s status=%s", d.ID, d.Status)
	return d, nil
}
