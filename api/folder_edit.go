package api

import (
	"net/http"

	"stashbox/drive-api/pkg/access"
	"stashbox/drive-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type folderEditBody struct {
	Name string `form:"name" json:"name"`
}

// FolderEditPage returns the folder so the rename form can be prefilled
func (a *API) FolderEditPage(c *gin.Context) {
	folder := a.fetchOwnedFolder(c, access.ActionWrite)
	if folder == nil {
		return
	}

	c.JSON(http.StatusOK, folder)
}

func (a *API) FolderEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data folderEditBody
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

	folder := a.fetchOwnedFolder(c, access.ActionWrite)
	if folder == nil {
		return
	}

	folder.Name = data.Name

	err := a.DB.
		Model(folder).
		Update("name", data.Name).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to rename folder", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, folder)
}
