package api

import (
	"strconv"

	"stashbox/drive-api/pkg/access"

	"github.com/gin-gonic/gin"
)

// actorFrom resolves the acting identity the session middleware attached,
// falling back to the anonymous actor on routes where auth is optional
func actorFrom(c *gin.Context) access.Actor {
	if userID := c.GetString("userID"); userID != "" {
		return access.User(userID)
	}

	return access.Anonymous()
}

// parseID parses a numeric path parameter. Returns false if the value is
// missing or not a number
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}
