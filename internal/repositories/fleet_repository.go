package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

// FleetRepository reads the vehicles and drivers that can serve shuttle trips.
type FleetRepository struct {
	DB *sql.DB
}

func (r FleetRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FleetRepository) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT id, name, plate, seats, status FROM shuttle_vehicles ORDER BY seats DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r FleetRepository) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return models.Vehicle{}, errNoDB
	}
	v, err := scanVehicle(db.QueryRowContext(ctx, `SELECT id, name, plate, seats, status FROM shuttle_vehicles WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	return v, err
}

func (r FleetRepository) SaveVehicle(ctx context.Context, v models.Vehicle) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO shuttle_vehicles (id, name, plate, seats, status) VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), plate = VALUES(plate), seats = VALUES(seats), status = VALUES(status)`,
		v.ID, v.Name, v.Plate, v.Seats, string(v.Status))
	return err
}

func (r FleetRepository) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	db := r.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT id, name, phone, status FROM shuttle_drivers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r FleetRepository) GetDriver(ctx context.Context, id string) (models.Driver, error) {
	db := r.db()
	if db == nil {
		return models.Driver{}, errNoDB
	}
	d, err := scanDriver(db.QueryRowContext(ctx, `SELECT id, name, phone, status FROM shuttle_drivers WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r FleetRepository) SaveDriver(ctx context.Context, d models.Driver) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO shuttle_drivers (id, name, phone, status) VALUES (?,?,?,?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), phone = VALUES(phone), status = VALUES(status)`,
		d.ID, d.Name, d.Phone, string(d.Status))
	return err
}

func scanVehicle(s rowScanner) (models.Vehicle, error) {
	var (
		v      models.Vehicle
		status string
	)
	if err := s.Scan(&v.ID, &v.Name, &v.Plate, &v.Seats, &status); err != nil {
		return models.Vehicle{}, err
	}
	v.Status = models.VehicleStatus(status)
	return v, nil
}

func scanDriver(s rowScanner) (models.Driver, error) {
	var (
		d      models.Driver
		status string
	)
	if err := s.Scan(&d.ID, &d.Name, &d.Phone, &status); err != nil {
		return models.Driver{}, err
	}
	d.Status = models.DriverStatus(status)
	return d, nil
}
