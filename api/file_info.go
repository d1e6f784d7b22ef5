package api

import (
	"errors"
	"net/http"
	"time"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// notFoundMessage hides why a file read was denied. Anonymous visitors get
// the same body whether the file is missing, private or expired
func notFoundMessage(actor access.Actor) string {
	if actor.Anonymous {
		return "File not found or not sharable"
	}

	return "File not found"
}

// fetchReadableFile loads a file and checks the read predicate against the
// actor. Returns nil if the request should see a 404, with the response
// already written
func (a *API) fetchReadableFile(c *gin.Context) *model.File {
	requestID := c.MustGet("requestID").(string)
	actor := actorFrom(c)

	fileID, ok := parseID(c, "fileId")
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   notFoundMessage(actor),
			"requestID": requestID,
		})
		return nil
	}

	var file model.File
	err := a.DB.Where("id = ?", fileID).First(&file).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
			return nil
		}

		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   notFoundMessage(actor),
			"requestID": requestID,
		})
		return nil
	}

	if !access.CanAccessFile(actor, &file, access.ActionRead, time.Now()) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"message":   notFoundMessage(actor),
			"requestID": requestID,
		})
		return nil
	}

	return &file
}

// FileInfo returns a file's metadata together with the owner's public
// profile. Reachable by the owner or, for sharable files, by anyone
func (a *API) FileInfo(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file := a.fetchReadableFile(c)
	if file == nil {
		return
	}

	var owner model.User
	err := a.DB.Where("id = ?", file.UserID).First(&owner).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file owner", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":  file,
		"owner": owner.Public(),
	})
}
