package api

import (
	"errors"
	"net/http"
	"time"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	// Unknown email and wrong password must be indistinguishable, so both
	// branches verify a hash and fall through to the same response
	var user model.User
	var ok bool

	err := a.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		ok = a.Hasher.VerifyDummy(data.Password)
	} else {
		ok = a.Hasher.VerifyPasswd(data.Password, user.PasswordHash)
	}

	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message":   "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	sessionID, err := gonanoid.New(32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ttl := time.Duration(viper.GetInt("session.ttl_minutes")) * time.Minute

	err = a.DB.Create(&model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now().Unix(),
	}).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Fixed max-age from issuance, the cookie is not refreshed on use
	c.SetCookie(middleware.SessionCookie, sessionID, int(ttl.Seconds()), "/", "", viper.GetBool("host.ssl.enabled"), true)
	c.JSON(http.StatusOK, gin.H{
		"userID": user.ID,
	})
}
