package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

// AssignmentRepository keeps one vehicle/driver assignment per (date, slot).
type AssignmentRepository struct {
	DB *sql.DB
}

func (r AssignmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AssignmentRepository) Get(ctx context.Context, date, slot string) (models.Assignment, error) {
	db := r.db()
	if db == nil {
		return models.Assignment{}, errNoDB
	}
	row := db.QueryRowContext(ctx, `
		SELECT trip_date, time_slot, vehicle_id, driver_id, notified, notified_at, updated_at
		FROM shuttle_assignments
		WHERE trip_date = ? AND time_slot = ?
		LIMIT 1`, date, slot)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Assignment{}, domain.NotFoundError{Resource: "assignment", Err: err}
	}
	return a, err
}

func (r AssignmentRepository) ListByDate(ctx context.Context, date string) ([]models.Assignment, error) {
	db := r.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, `
		SELECT trip_date, time_slot, vehicle_id, driver_id, notified, notified_at, updated_at
		FROM shuttle_assignments
		WHERE trip_date = ?
		ORDER BY time_slot ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Save upserts the assignment on its (trip_date, time_slot) key.
func (r AssignmentRepository) Save(ctx context.Context, a models.Assignment) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	var notifiedAt any
	if a.NotifiedAt != nil {
		notifiedAt = *a.NotifiedAt
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO shuttle_assignments (trip_date, time_slot, vehicle_id, driver_id, notified, notified_at, updated_at)
		VALUES (?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			vehicle_id = VALUES(vehicle_id),
			driver_id = VALUES(driver_id),
			notified = VALUES(notified),
			notified_at = VALUES(notified_at),
			updated_at = VALUES(updated_at)`,
		a.Date, a.TimeSlot, a.VehicleID, a.DriverID, a.Notified, notifiedAt, stamp(a.UpdatedAt),
	)
	return err
}

// ClaimNotified flips the notified flag only from the opposite value, so of
// two concurrent claims exactly one succeeds. Releasing clears notified_at.
func (r AssignmentRepository) ClaimNotified(ctx context.Context, date, slot string, claim bool) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	now := time.Now().UTC()
	var notifiedAt any
	if claim {
		notifiedAt = now
	}
	res, err := db.ExecContext(ctx, `
		UPDATE shuttle_assignments
		SET notified = ?, notified_at = ?, updated_at = ?
		WHERE trip_date = ? AND time_slot = ? AND notified = ?`,
		claim, notifiedAt, now, date, slot, !claim)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if claim {
			return domain.ConflictError{Resource: "trip", Msg: "pickup notification already sent"}
		}
		return domain.ConflictError{Resource: "trip", Msg: "notification is not claimed"}
	}
	return nil
}

func scanAssignment(s rowScanner) (models.Assignment, error) {
	var (
		a          models.Assignment
		notifiedAt sql.NullTime
	)
	if err := s.Scan(&a.Date, &a.TimeSlot, &a.VehicleID, &a.DriverID, &a.Notified, &notifiedAt, &a.UpdatedAt); err != nil {
		return models.Assignment{}, err
	}
	if notifiedAt.Valid {
		t := notifiedAt.Time
		a.NotifiedAt = &t
	}
	return a, nil
}

// keep the zero time out of DATETIME columns
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
