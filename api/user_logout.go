package api

import (
	"net/http"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func (a *API) UserLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	sessionID, err := c.Cookie(middleware.SessionCookie)
	if err == nil && sessionID != "" {
		err = a.DB.
			Where("id = ?", sessionID).
			Delete(model.Session{}).
			Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Logout failed",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete session", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
