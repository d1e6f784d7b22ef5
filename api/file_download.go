package api

import (
	"errors"
	"fmt"
	"net/http"

	"stashbox/drive-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileDownload streams the blob back under the file's display name.
// Same access rules as FileInfo
func (a *API) FileDownload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file := a.fetchReadableFile(c)
	if file == nil {
		return
	}

	r, size, err := a.Store.Open(c.Request.Context(), file.FileKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Metadata without a blob, shouldn't happen outside manual cleanup
			zap.L().Warn("File record has no blob", zap.Uint("fileID", file.ID), zap.String("key", file.FileKey))

			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   notFoundMessage(actorFrom(c)),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open blob", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer r.Close()

	contentType := file.Format
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, size, contentType, r, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	})
}
