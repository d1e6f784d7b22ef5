package middleware

import (
	"errors"
	"net/http"
	"time"

	"stashbox/drive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the name of the cookie carrying the opaque session ID
const SessionCookie = "session_id"

// resolveSession turns the session cookie into a user ID. Missing cookie,
// unknown session, expired session and deleted user all come back as not ok,
// callers never learn which one it was
func resolveSession(c *gin.Context, db *gorm.DB) (string, bool) {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil || sessionID == "" {
		return "", false
	}

	var session model.Session
	err = db.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up session", zap.Error(err))
		}

		return "", false
	}

	if session.Expired(time.Now()) {
		return "", false
	}

	// The session may outlive its user if the account was removed
	var user model.User
	err = db.Where("id = ?", session.UserID).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up session user", zap.Error(err))
		}

		return "", false
	}

	return user.ID, true
}

// RequireSession rejects requests without a valid login session. The actor
// identity is resolved before any handler runs an authorization check
func RequireSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		userID, ok := resolveSession(c, db)
		if !ok {
			c.SetCookie(SessionCookie, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authenticated",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalSession resolves the actor when a valid session is present and
// lets the request continue anonymously otherwise. Used on the endpoints
// that serve shared files
func OptionalSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveSession(c, db); ok {
			c.Set("userID", userID)
		}

		c.Next()
	}
}
