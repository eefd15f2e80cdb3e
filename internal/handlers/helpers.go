// Package handlers wires the HTTP routes to the store and the external
// clients. Handlers own request parsing and status mapping; domain rules
// live in bidding, pricing and comps.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/middleware"
	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
)

// parseUUIDParam reads a path parameter as a UUID, writing a 400 response
// and returning false when it does not parse.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondReadError maps a failed store read: missing rows become 404, any
// other failure is treated as the gateway being unavailable.
func respondReadError(c *gin.Context, err error, entity string) {
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: entity + " not found"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database unavailable", Message: err.Error()})
}

// respondWriteError maps a failed store write to 500.
func respondWriteError(c *gin.Context, err error, action string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to " + action, Message: err.Error()})
}

type profileGetter interface {
	GetProfile(profileID uuid.UUID) (*models.Profile, error)
}

// requireActiveProfile loads a profile and enforces the paid flag before a
// seller write. It writes the error response itself; callers bail on false.
func requireActiveProfile(c *gin.Context, storeClient profileGetter, profileID uuid.UUID) (*models.Profile, bool) {
	profile, err := storeClient.GetProfile(profileID)
	if err != nil {
		respondReadError(c, err, "profile")
		return nil, false
	}
	if !profile.IsActive {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "profile is not active", Message: "complete payment to activate your account"})
		return nil, false
	}
	return profile, true
}

// authedProfileID reads the profile id set by the auth middleware.
func authedProfileID(c *gin.Context) (uuid.UUID, bool) {
	sub, ok := c.Get(middleware.ProfileIDKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "not authenticated"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid profile id in token"})
		return uuid.Nil, false
	}
	return id, true
}
