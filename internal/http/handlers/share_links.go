package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/services"
)

type shareLinkPayload struct {
	RouteID  string `json:"routeId" binding:"required"`
	TTLHours int    `json:"ttlHours"`
}

// POST /api/shuttle/share-links
func CreateShareLink(c *gin.Context) {
	var in shareLinkPayload
	if !BindJSONOrError(c, &in) {
		return
	}
	if in.TTLHours < 0 || in.TTLHours > 24*30 {
		respondError(c, http.StatusBadRequest, "invalid_ttl", "ttlHours must be between 0 and 720", nil)
		return
	}
	link, err := shareLinkService(c).Issue(in.RouteID, time.Duration(in.TTLHours)*time.Hour)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// GET /api/shuttle/public/info?token=
// What the public booking page needs to render its form.
func GetPublicBookingInfo(c *gin.Context) {
	routeID, err := shareLinkService(c).Verify(c.Query("token"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	s := currentDeps().Settings
	route, _ := models.FindRoute(s.Routes, routeID)
	c.JSON(http.StatusOK, gin.H{
		"route":            route,
		"timeSlots":        s.TimeSlots,
		"pricePerSeat":     s.PricePerSeat,
		"maxPaxPerBooking": s.MaxPaxPerBooking,
	})
}

// POST /api/shuttle/public/bookings?token=
func CreatePublicBooking(c *gin.Context) {
	routeID, err := shareLinkService(c).Verify(c.Query("token"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := bookingService(c).CreatePublic(c.Request.Context(), routeID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}
