package api

import (
	"errors"
	"net/http"
	"time"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"
	"stashbox/drive-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type folderCreateBody struct {
	Name string `form:"name" json:"name"`
}

// FolderCreate makes a new folder, optionally nested under a parent the
// actor owns
func (a *API) FolderCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data folderCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.NameValidator(data.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	// Nesting under someone else's folder reads as not found, same as a
	// folder that doesn't exist
	var parentID *uint
	if raw := c.Param("folderId"); raw != "" {
		id, ok := parseID(c, "folderId")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		var parent model.Folder
		err := a.DB.Where("id = ?", id).First(&parent).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message":   "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to fetch parent folder", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		if !access.CanAccessFolder(actorFrom(c), &parent, access.ActionWrite) {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		parentID = &parent.ID
	}

	folder := model.Folder{
		UserID:    userID,
		Name:      data.Name,
		ParentID:  parentID,
		CreatedAt: time.Now().Unix(),
	}

	err := a.DB.Create(&folder).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create folder", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, folder)
}
