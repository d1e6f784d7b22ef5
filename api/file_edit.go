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

type fileEditOpts struct {
	Name     *string `form:"name" json:"name"`
	Sharable *bool   `form:"sharable" json:"sharable"`

	// Empty string clears the expiry, absent leaves it untouched
	SharableUntil *string `form:"sharableUntil" json:"sharableUntil"`
}

// Share expiries come from an HTML datetime-local input or an API client
// sending RFC3339
var shareTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseShareTime(s string) (*time.Time, error) {
	for _, layout := range shareTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, errors.New("invalid sharableUntil timestamp")
}

// fetchOwnedFile loads a file and requires the actor to be its owner.
// Non-owners get the same 404 a missing file would produce
func (a *API) fetchOwnedFile(c *gin.Context, act access.Action) *model.File {
	requestID := c.MustGet("requestID").(string)

	fileID, ok := parseID(c, "fileId")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "File not found",
			"requestID": requestID,
		})
		return nil
	}

	var file model.File
	err := a.DB.Where("id = ?", fileID).First(&file).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
			return nil
		}

		c.JSON(http.StatusNotFound, gin.H{
			"message":   "File not found",
			"requestID": requestID,
		})
		return nil
	}

	if !access.CanAccessFile(actorFrom(c), &file, act, time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "File not found",
			"requestID": requestID,
		})
		return nil
	}

	return &file
}

// FileEditPage returns the file so the edit form can be prefilled
func (a *API) FileEditPage(c *gin.Context) {
	file := a.fetchOwnedFile(c, access.ActionWrite)
	if file == nil {
		return
	}

	c.JSON(http.StatusOK, file)
}

// FileEdit applies a partial update to a file's name and share settings.
// Only the fields present in the request change
func (a *API) FileEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data fileEditOpts
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Malformed or invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to bind edit body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	file := a.fetchOwnedFile(c, access.ActionShare)
	if file == nil {
		return
	}

	updates := map[string]any{}

	if data.Name != nil {
		if err := validators.NameValidator(*data.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   err.Error(),
				"requestID": requestID,
			})
			return
		}

		updates["name"] = *data.Name
	}

	if data.Sharable != nil {
		updates["sharable"] = *data.Sharable

		// A file taken private keeps no stale expiry around
		if !*data.Sharable {
			updates["sharable_until"] = nil
		}
	}

	if data.SharableUntil != nil {
		if *data.SharableUntil == "" {
			updates["sharable_until"] = nil
		} else {
			t, err := parseShareTime(*data.SharableUntil)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"message":   err.Error(),
					"requestID": requestID,
				})
				return
			}

			updates["sharable_until"] = t
		}
	}

	if len(updates) > 0 {
		err := a.DB.
			Model(file).
			Updates(updates).
			Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update file entry", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, file)
}
