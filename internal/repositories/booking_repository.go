package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

const bookingColumns = `id, guest_name, guest_phone, pickup_location, trip_date, time_slot,
	pax_count, status, notes, booking_time, is_vip, route_id, total_price`

// BookingRepository stores shuttle bookings. Rows come back in insertion
// order so ties in priority keep registration order.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) Insert(ctx context.Context, b models.Booking) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO shuttle_bookings (`+bookingColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.GuestName, b.GuestPhone, b.PickupLocation, b.Date, b.TimeSlot,
		b.PaxCount, string(b.Status), intdb.NullIfEmpty(b.Notes), b.BookingTime, b.IsVIP, b.RouteID, b.TotalPrice,
	)
	return err
}

func (r BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, errNoDB
	}
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM shuttle_bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

func (r BookingRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, errNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM shuttle_bookings WHERE trip_date = ? ORDER BY seq ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking from one status to another. It fails with a
// ConflictError when the stored status is no longer from.
func (r BookingRepository) UpdateStatus(ctx context.Context, id string, from, to models.ShuttleStatus) error {
	db := r.db()
	if db == nil {
		return errNoDB
	}
	res, err := db.ExecContext(ctx, `UPDATE shuttle_bookings SET status = ? WHERE id = ? AND status = ?`, string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "status changed concurrently, reload and retry"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		status string
		notes  sql.NullString
	)
	err := s.Scan(
		&b.ID, &b.GuestName, &b.GuestPhone, &b.PickupLocation, &b.Date, &b.TimeSlot,
		&b.PaxCount, &status, &notes, &b.BookingTime, &b.IsVIP, &b.RouteID, &b.TotalPrice,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.Status = models.ShuttleStatus(status)
	b.Notes = notes.String
	return b, nil
}
