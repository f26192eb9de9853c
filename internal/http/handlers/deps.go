package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
	"shuttle/internal/services"
)

// Deps are the long-lived collaborators handlers build request services from.
type Deps struct {
	Settings   services.Settings
	Notifier   services.Notifier
	ShareLinks services.ShareLinkService
}

var (
	depsMu sync.RWMutex
	deps   = Deps{Settings: services.DefaultSettings()}
)

func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func currentDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Settings:  currentDeps().Settings,
		RequestID: middleware.GetRequestID(c),
	}
}

func boardService(c *gin.Context) services.TripBoardService {
	return services.TripBoardService{
		Settings:  currentDeps().Settings,
		RequestID: middleware.GetRequestID(c),
	}
}

func dispatchService(c *gin.Context) services.DispatchService {
	d := currentDeps()
	return services.DispatchService{
		Board:     boardService(c),
		Notifier:  d.Notifier,
		Settings:  d.Settings,
		RequestID: middleware.GetRequestID(c),
	}
}

func manifestService(c *gin.Context) services.ManifestService {
	return services.ManifestService{
		Board:     boardService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func shareLinkService(c *gin.Context) services.ShareLinkService {
	svc := currentDeps().ShareLinks
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
