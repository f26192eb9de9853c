package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "shuttle/internal/config"
	h "shuttle/internal/http/handlers"
	"shuttle/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		shuttle := api.Group("/shuttle")
		shuttle.GET("/config", h.ShuttleConfig)
		shuttle.POST("/consolidate", h.Consolidate)

		bookings := shuttle.Group("/bookings")
		bookings.POST("", h.CreateShuttleBooking)
		bookings.GET("", h.ListShuttleBookings)
		bookings.GET("/:id", h.GetShuttleBooking)
		bookings.PUT("/:id/status", h.UpdateShuttleBookingStatus)

		trips := shuttle.Group("/trips")
		trips.GET("", h.GetTripBoard)
		mountTrip(trips.Group("/:date/:slot"))

		fleet := shuttle.Group("/fleet")
		fleet.GET("", h.GetShuttleFleet)
		fleet.PUT("/vehicles/:id", h.SaveShuttleVehicle)
		fleet.PUT("/drivers/:id", h.SaveShuttleDriver)

		shuttle.POST("/share-links", h.CreateShareLink)

		public := shuttle.Group("/public")
		public.GET("/info", h.GetPublicBookingInfo)
		public.POST("/bookings", h.CreatePublicBooking)
	}

	h.SetRouter(r)
	return r
}

func mountTrip(g *gin.RouterGroup) {
	g.GET("", h.GetTrip)
	g.PUT("/assignment", h.AssignTrip)
	g.POST("/notify", h.NotifyTrip)
	g.GET("/manifest", h.GetTripManifestPDF)
}
