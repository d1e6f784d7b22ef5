package api

import (
	"net/http"

	"stashbox/drive-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserPage returns the root level listing of the logged in user's drive,
// files and folders that sit outside any folder
func (a *API) UserPage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User
	err := a.DB.
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var files []model.File
	err = a.DB.
		Where("user_id = ? AND folder_id IS NULL", userID).
		Order("name asc").
		Find(&files).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list root files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var folders []model.Folder
	err = a.DB.
		Where("user_id = ? AND parent_id IS NULL", userID).
		Order("name asc").
		Find(&folders).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list root folders", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user.Public(),
		"files":   files,
		"folders": folders,
	})
}
