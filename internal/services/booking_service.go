package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

const defaultPickupPoint = "Điểm chuẩn"

type BookingService struct {
	Store     BookingStore
	Settings  Settings
	Now       func() time.Time
	NewID     func() string
	RequestID string
}

type CreateBookingInput struct {
	GuestName        string `json:"guestName" binding:"required"`
	GuestPhone       string `json:"guestPhone" binding:"required"`
	RouteID          string `json:"routeId"`
	SpecificLocation string `json:"specificLocation"`
	Date             string `json:"date" binding:"required"`
	TimeSlot         string `json:"timeSlot" binding:"required"`
	PaxCount         int    `json:"paxCount" binding:"required"`
	Notes            string `json:"notes"`
	IsVIP            bool   `json:"isVIP"`
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

func (s BookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Create registers an admin booking. VIP status is taken from the input.
func (s BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	b, err := s.build(in)
	if err != nil {
		return models.Booking{}, err
	}
	if err := bookingStore(s.Store).Insert(ctx, b); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
	}
	utils.LogEventf(s.RequestID, "booking", "create", "id=%s date=%s slot=%s pax=%d vip=%t", b.ID, b.Date, b.TimeSlot, b.PaxCount, b.IsVIP)
	return b, nil
}

// CreatePublic registers a self-service booking made through a share link.
// The route comes from the verified link and the booking is never VIP.
func (s BookingService) CreatePublic(ctx context.Context, routeID string, in CreateBookingInput) (models.Booking, error) {
	in.RouteID = routeID
	in.IsVIP = false
	return s.Create(ctx, in)
}

func (s BookingService) build(in CreateBookingInput) (models.Booking, error) {
	cfg := s.Settings.filled()

	name := utils.NormalizeSpace(in.GuestName)
	if name == "" {
		return models.Booking{}, domain.ValidationError{Field: "guestName", Msg: "is required"}
	}
	phone := strings.TrimSpace(in.GuestPhone)
	if phone == "" {
		return models.Booking{}, domain.ValidationError{Field: "guestPhone", Msg: "is required"}
	}

	routeID := strings.TrimSpace(in.RouteID)
	if routeID == "" {
		routeID = cfg.Routes[0].ID
	}
	route, ok := models.FindRoute(cfg.Routes, routeID)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "routeId", Msg: fmt.Sprintf("unknown route %q", routeID)}
	}

	date := strings.TrimSpace(in.Date)
	if !utils.IsDate(date) {
		return models.Booking{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	slot := strings.TrimSpace(in.TimeSlot)
	if !utils.ContainsString(cfg.TimeSlots, slot) {
		return models.Booking{}, domain.ValidationError{Field: "timeSlot", Msg: fmt.Sprintf("%q is not an operating slot", slot)}
	}
	if in.PaxCount < 1 || in.PaxCount > cfg.MaxPaxPerBooking {
		return models.Booking{}, domain.ValidationError{
			Field: "paxCount",
			Msg:   fmt.Sprintf("must be between 1 and %d", cfg.MaxPaxPerBooking),
			Err:   domain.ErrInvalidBooking,
		}
	}

	point := utils.NormalizeSpace(in.SpecificLocation)
	if point == "" {
		point = defaultPickupPoint
	}

	return models.Booking{
		ID:             s.newID(),
		GuestName:      name,
		GuestPhone:     phone,
		PickupLocation: fmt.Sprintf("%s (%s)", route.From, point),
		Date:           date,
		TimeSlot:       slot,
		PaxCount:       in.PaxCount,
		Status:         models.StatusRegistered,
		Notes:          strings.TrimSpace(in.Notes),
		BookingTime:    s.now(),
		IsVIP:          in.IsVIP,
		RouteID:        route.ID,
		TotalPrice:     utils.SeatTotal(in.PaxCount, cfg.PricePerSeat),
	}, nil
}

func (s BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	return bookingStore(s.Store).GetByID(ctx, id)
}

func (s BookingService) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	date = strings.TrimSpace(date)
	if !utils.IsDate(date) {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	return bookingStore(s.Store).ListByDate(ctx, date)
}

// UpdateStatus applies a dispatcher status change. Setting the current status
// again is a no-op.
func (s BookingService) UpdateStatus(ctx context.Context, id, status string) (models.Booking, error) {
	next := models.ShuttleStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", status)}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransition(next) {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot move from %s to %s", current.Status, next),
		}
	}
	if err := bookingStore(s.Store).UpdateStatus(ctx, current.ID, current.Status, next); err != nil {
		return models.Booking{}, err
	}

	utils.LogEventf(s.RequestID, "booking", "update_status", "id=%s from=%s to=%s", current.ID, current.Status, next)
	current.Status = next
	return current, nil
}
