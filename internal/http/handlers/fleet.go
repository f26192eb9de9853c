package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/http/middleware"
	"shuttle/internal/services"
)

// GET /api/shuttle/fleet
func GetShuttleFleet(c *gin.Context) {
	fleet, err := dispatchService(c).EligibleFleet(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fleet)
}

// PUT /api/shuttle/fleet/vehicles/:id
func SaveShuttleVehicle(c *gin.Context) {
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v.ID = c.Param("id")
	out, err := services.FleetService{RequestID: middleware.GetRequestID(c)}.SaveVehicle(c.Request.Context(), v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/shuttle/fleet/drivers/:id
func SaveShuttleDriver(c *gin.Context) {
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	d.ID = c.Param("id")
	out, err := services.FleetService{RequestID: middleware.GetRequestID(c)}.SaveDriver(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
