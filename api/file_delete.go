package api

import (
	"context"
	"net/http"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileDelete removes a file's metadata row and then its blob. If the blob
// delete fails the record is already gone, so the leak is logged and the
// request still succeeds
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file := a.fetchOwnedFile(c, access.ActionDelete)
	if file == nil {
		return
	}

	err := a.DB.
		Where("id = ?", file.ID).
		Delete(model.File{}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Store.Delete(context.Background(), file.FileKey); err != nil {
		zap.L().Error("Failed to delete blob", zap.Error(err), zap.String("key", file.FileKey))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted",
	})
}
