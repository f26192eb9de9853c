package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/services"
)

// GET /api/shuttle/trips?date=YYYY-MM-DD&capacity=18
func GetTripBoard(c *gin.Context) {
	capacity, ok := capacityQuery(c)
	if !ok {
		return
	}
	board, err := boardService(c).Board(c.Request.Context(), c.Query("date"), capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondWithETag(c, board)
}

// GET /api/shuttle/trips/:date/:slot
func GetTrip(c *gin.Context) {
	capacity, ok := capacityQuery(c)
	if !ok {
		return
	}
	trip, err := boardService(c).Trip(c.Request.Context(), c.Param("date"), slotParam(c), capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondWithETag(c, trip)
}

// PUT /api/shuttle/trips/:date/:slot/assignment
func AssignTrip(c *gin.Context) {
	var in services.AssignInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := dispatchService(c).Assign(c.Request.Context(), c.Param("date"), slotParam(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/shuttle/trips/:date/:slot/notify
func NotifyTrip(c *gin.Context) {
	capacity, ok := capacityQuery(c)
	if !ok {
		return
	}
	a, err := dispatchService(c).Notify(c.Request.Context(), c.Param("date"), slotParam(c), capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/shuttle/trips/:date/:slot/manifest
func GetTripManifestPDF(c *gin.Context) {
	capacity, ok := capacityQuery(c)
	if !ok {
		return
	}
	pdfBytes, filename, err := manifestService(c).TripManifestPDF(c.Request.Context(), c.Param("date"), slotParam(c), capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
