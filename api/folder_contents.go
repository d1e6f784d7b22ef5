package api

import (
	"errors"
	"net/http"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fetchOwnedFolder loads a folder and requires the actor to own it.
// Non-owners get the same 404 a missing folder would produce
func (a *API) fetchOwnedFolder(c *gin.Context, act access.Action) *model.Folder {
	requestID := c.MustGet("requestID").(string)

	folderID, ok := parseID(c, "folderId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "Folder not found",
			"requestID": requestID,
		})
		return nil
	}

	var folder model.Folder
	err := a.DB.Where("id = ?", folderID).First(&folder).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch folder from db", zap.Error(err), zap.String("requestID", requestID))
			return nil
		}

		c.JSON(http.StatusNotFound, gin.H{
			"message":   "Folder not found",
			"requestID": requestID,
		})
		return nil
	}

	if !access.CanAccessFolder(actorFrom(c), &folder, act) {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "Folder not found",
			"requestID": requestID,
		})
		return nil
	}

	return &folder
}

// FolderContents lists a folder's direct children, one level only
func (a *API) FolderContents(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	folder := a.fetchOwnedFolder(c, access.ActionRead)
	if folder == nil {
		return
	}

	var folders []model.Folder
	err := a.DB.
		Where("user_id = ? AND parent_id = ?", userID, folder.ID).
		Order("name asc").
		Find(&folders).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list child folders", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var files []model.File
	err = a.DB.
		Where("user_id = ? AND folder_id = ?", userID, folder.ID).
		Order("name asc").
		Find(&files).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list folder files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"folder":  folder,
		"folders": folders,
		"files":   files,
	})
}
