package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/services"
)

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/shuttle/bookings
func CreateShuttleBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := bookingService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/shuttle/bookings?date=YYYY-MM-DD
func ListShuttleBookings(c *gin.Context) {
	list, err := bookingService(c).ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/shuttle/bookings/:id
func GetShuttleBooking(c *gin.Context) {
	b, err := bookingService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/shuttle/bookings/:id/status
func UpdateShuttleBookingStatus(c *gin.Context) {
	var in statusPayload
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := bookingService(c).UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
