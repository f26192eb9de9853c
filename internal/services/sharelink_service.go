package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

const shareLinkPurpose = "shuttle_booking"

// ShareLinkService signs the links guests use to register themselves for a route.
type ShareLinkService struct {
	Secret    []byte
	TTL       time.Duration
	BaseURL   string
	Routes    []models.Route
	Now       func() time.Time
	RequestID string
}

type ShareLink struct {
	RouteID   string    `json:"routeId"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type shareClaims struct {
	Route   string `json:"route"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (s ShareLinkService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ShareLinkService) routes() []models.Route {
	if len(s.Routes) > 0 {
		return s.Routes
	}
	return models.DefaultRoutes()
}

// Issue signs a link for routeID. A non-positive ttl uses the service TTL.
func (s ShareLinkService) Issue(routeID string, ttl time.Duration) (ShareLink, error) {
	if len(s.Secret) == 0 {
		return ShareLink{}, domain.InternalError{Msg: "share link secret is not configured"}
	}
	routeID = strings.TrimSpace(routeID)
	if _, ok := models.FindRoute(s.routes(), routeID); !ok {
		return ShareLink{}, domain.ValidationError{Field: "routeId", Msg: fmt.Sprintf("unknown route %q", routeID)}
	}
	if ttl <= 0 {
		ttl = s.TTL
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}

	issued := s.now()
	expires := issued.Add(ttl)
	claims := shareClaims{
		Route:   routeID,
		Purpose: shareLinkPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return ShareLink{}, domain.InternalError{Msg: "failed to sign share link", Err: err}
	}

	link := ShareLink{RouteID: routeID, Token: token, ExpiresAt: expires.UTC().Truncate(time.Second)}
	if base := strings.TrimRight(s.BaseURL, "/"); base != "" {
		link.URL = base + "?token=" + url.QueryEscape(token)
	}
	utils.LogEventf(s.RequestID, "sharelink", "issue", "route=%s expires=%s", routeID, link.ExpiresAt.Format(time.RFC3339))
	return link, nil
}

// Verify returns the route a valid token was issued for.
func (s ShareLinkService) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ValidationError{Field: "token", Msg: "is required"}
	}

	claims := &shareClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ValidationError{Field: "token", Msg: "link has expired", Err: err}
		}
		return "", domain.ValidationError{Field: "token", Msg: "invalid link", Err: err}
	}
	if claims.Purpose != shareLinkPurpose {
		return "", domain.ValidationError{Field: "token", Msg: "link is not a booking link"}
	}
	if _, ok := models.FindRoute(s.routes(), claims.Route); !ok {
		return "", domain.ValidationError{Field: "token", Msg: "link route is no longer served"}
	}
	return claims.Route, nil
}
