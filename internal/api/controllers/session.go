package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trackdeck/internal/services"
)

// sessionFromContext rebuilds the service-layer session from the claims
// the auth middleware stashed on the request. Returns nil when the
// request carried no (valid) token.
func sessionFromContext(c *gin.Context) *services.Session {
	rawID := c.GetString("user_id")
	if rawID == "" {
		return nil
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	return &services.Session{
		UserID: userID,
		Email:  c.GetString("user_email"),
	}
}

// pathUUID parses a :param path segment as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
