package services

import (
	"context"
	"strings"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

// TripBoardService recomputes trips from stored bookings on every read and
// attaches the persisted assignments.
type TripBoardService struct {
	Bookings    BookingStore
	Assignments AssignmentStore
	Settings    Settings
	RequestID   string
}

type TripView struct {
	models.Trip
	Assignment *models.Assignment `json:"assignment,omitempty"`
}

type Board struct {
	Date              string     `json:"date"`
	Capacity          int        `json:"capacity"`
	AdmissionPolicy   string     `json:"admissionPolicy"`
	Trips             []TripView `json:"trips"`
	TotalPax          int        `json:"totalPax"`
	AcceptedPax       int        `json:"acceptedPax"`
	OverflowPax       int        `json:"overflowPax"`
	OverCapacityTrips int        `json:"overCapacityTrips"`
}

// consolidator resolves the capacity; zero means the configured default.
func (s TripBoardService) consolidator(capacity int) domain.Consolidator {
	cfg := s.Settings.filled()
	if capacity == 0 {
		capacity = cfg.Capacity
	}
	return domain.Consolidator{Capacity: capacity, Policy: cfg.Policy}
}

func (s TripBoardService) Board(ctx context.Context, date string, capacity int) (Board, error) {
	date = strings.TrimSpace(date)
	if !utils.IsDate(date) {
		return Board{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	c := s.consolidator(capacity)

	bookings, err := bookingStore(s.Bookings).ListByDate(ctx, date)
	if err != nil {
		return Board{}, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	trips, err := c.Consolidate(bookings, date)
	if err != nil {
		return Board{}, err
	}

	assignments, err := assignmentStore(s.Assignments).ListByDate(ctx, date)
	if err != nil {
		return Board{}, domain.InternalError{Msg: "failed to load assignments", Err: err}
	}
	bySlot := make(map[string]models.Assignment, len(assignments))
	for _, a := range assignments {
		bySlot[a.TimeSlot] = a
	}

	board := Board{
		Date:            date,
		Capacity:        c.Capacity,
		AdmissionPolicy: c.Policy.String(),
		Trips:           make([]TripView, 0, len(trips)),
	}
	for _, t := range trips {
		view := TripView{Trip: t}
		if a, ok := bySlot[t.Time]; ok {
			a := a
			view.Assignment = &a
		}
		board.Trips = append(board.Trips, view)
		board.TotalPax += t.TotalPax
		board.AcceptedPax += t.AcceptedPax
		board.OverflowPax += t.OverflowPax
		if t.IsOverCapacity {
			board.OverCapacityTrips++
		}
	}

	utils.LogEventf(s.RequestID, "trips", "board", "date=%s trips=%d pax=%d overflow=%d", date, len(board.Trips), board.TotalPax, board.OverflowPax)
	return board, nil
}

func (s TripBoardService) Trip(ctx context.Context, date, slot string, capacity int) (TripView, error) {
	board, err := s.Board(ctx, date, capacity)
	if err != nil {
		return TripView{}, err
	}
	for _, t := range board.Trips {
		if t.Time == slot {
			return t, nil
		}
	}
	return TripView{}, domain.NotFoundError{Resource: "trip"}
}
