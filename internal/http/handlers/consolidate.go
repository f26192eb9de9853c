package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type consolidateRequest struct {
	Date            string           `json:"date" binding:"required"`
	Capacity        *int             `json:"capacity"`
	AdmissionPolicy string           `json:"admissionPolicy"`
	Bookings        []models.Booking `json:"bookings"`
}

// POST /api/shuttle/consolidate
// Stateless: consolidates the bookings in the body, nothing is read or stored.
func Consolidate(c *gin.Context) {
	var req consolidateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	settings := currentDeps().Settings
	capacity := settings.Capacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	policy := settings.Policy
	if req.AdmissionPolicy != "" {
		p, err := domain.ParseAdmissionPolicy(req.AdmissionPolicy)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		policy = p
	}

	trips, err := domain.Consolidator{Capacity: capacity, Policy: policy}.Consolidate(req.Bookings, req.Date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/shuttle/config
func ShuttleConfig(c *gin.Context) {
	s := currentDeps().Settings
	c.JSON(http.StatusOK, gin.H{
		"routes":           s.Routes,
		"timeSlots":        s.TimeSlots,
		"pricePerSeat":     s.PricePerSeat,
		"capacity":         s.Capacity,
		"minShuttleSeats":  s.MinShuttleSeats,
		"maxPaxPerBooking": s.MaxPaxPerBooking,
		"admissionPolicy":  s.Policy.String(),
	})
}
