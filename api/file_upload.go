package api

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"
	"stashbox/drive-api/pkg/util"
	"stashbox/drive-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileUpload stores an uploaded file ("card") and its metadata row. The
// blob goes in first and is removed again if the metadata insert fails
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request",
			"requestID": requestID,
		})
		return
	}

	// A target folder must exist and belong to the uploader. Anything else
	// reads as not found so foreign folder IDs can't be probed
	var folderID *uint
	if raw := c.Param("folderId"); raw != "" {
		id, ok := parseID(c, "folderId")
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		var folder model.Folder
		err := a.DB.Where("id = ?", id).First(&folder).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message":   "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to fetch target folder", zap.Error(err), zap.String("requestID", requestID))
				return
			}

			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		if !access.CanAccessFolder(actorFrom(c), &folder, access.ActionWrite) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":   "Folder not found",
				"requestID": requestID,
			})
			return
		}

		folderID = &folder.ID
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, format, err := validators.FileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	name := c.PostForm("name")
	if name == "" {
		name = fh.Filename
	}

	if err := validators.NameValidator(name); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	fileKey := util.RandStr(10) + path.Ext(fh.Filename)

	err = a.Store.Save(c.Request.Context(), fileKey, f, fh.Size, format)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store blob", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	file := model.File{
		UserID:    userID,
		FileKey:   fileKey,
		Name:      name,
		Format:    format,
		Size:      fh.Size,
		FolderID:  folderID,
		Sharable:  c.PostForm("isShareable") == "on",
		CreatedAt: time.Now().Unix(),
	}

	err = a.DB.Create(&file).Error
	if err != nil {
		// The blob is already on disk, take it back out so it can't be orphaned
		if delErr := a.Store.Delete(context.Background(), fileKey); delErr != nil {
			zap.L().Error("Failed to cleanup blob after failed insert", zap.Error(delErr), zap.String("key", fileKey))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, file)
}
