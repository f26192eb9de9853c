package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "shuttle/internal/db"
)

const ddlShuttleBookings = `
CREATE TABLE IF NOT EXISTS shuttle_bookings (
	seq BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	id VARCHAR(64) NOT NULL,
	guest_name VARCHAR(255) NOT NULL,
	guest_phone VARCHAR(64) NOT NULL,
	pickup_location VARCHAR(255) NOT NULL DEFAULT '',
	trip_date CHAR(10) NOT NULL,
	time_slot VARCHAR(16) NOT NULL,
	pax_count INT NOT NULL,
	status VARCHAR(16) NOT NULL,
	notes TEXT NULL,
	booking_time DATETIME(6) NOT NULL,
	is_vip TINYINT(1) NOT NULL DEFAULT 0,
	route_id VARCHAR(32) NOT NULL DEFAULT '',
	total_price BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_shuttle_booking_id (id),
	KEY idx_shuttle_booking_date_slot (trip_date, time_slot)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const ddlShuttleAssignments = `
CREATE TABLE IF NOT EXISTS shuttle_assignments (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	trip_date CHAR(10) NOT NULL,
	time_slot VARCHAR(16) NOT NULL,
	vehicle_id VARCHAR(64) NOT NULL DEFAULT '',
	driver_id VARCHAR(64) NOT NULL DEFAULT '',
	notified TINYINT(1) NOT NULL DEFAULT 0,
	notified_at DATETIME(6) NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_shuttle_assignment_trip (trip_date, time_slot)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const ddlShuttleVehicles = `
CREATE TABLE IF NOT EXISTS shuttle_vehicles (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	plate VARCHAR(32) NOT NULL DEFAULT '',
	seats INT NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'AVAILABLE'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const ddlShuttleDrivers = `
CREATE TABLE IF NOT EXISTS shuttle_drivers (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'READY'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

var shuttleTables = []struct {
	name string
	ddl  string
}{
	{"shuttle_bookings", ddlShuttleBookings},
	{"shuttle_assignments", ddlShuttleAssignments},
	{"shuttle_vehicles", ddlShuttleVehicles},
	{"shuttle_drivers", ddlShuttleDrivers},
}

// EnsureSchema creates the shuttle tables that are missing. Existing tables
// get the columns added after their first release.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, t := range shuttleTables {
		if err := intdb.EnsureTable(ctx, db, t.name, t.ddl); err != nil {
			return fmt.Errorf("ensure %s: %w", t.name, err)
		}
	}
	if err := intdb.EnsureColumn(ctx, db, "shuttle_bookings", "route_id",
		`ALTER TABLE shuttle_bookings ADD COLUMN route_id VARCHAR(32) NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("ensure shuttle_bookings.route_id: %w", err)
	}
	return nil
}
