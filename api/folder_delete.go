package api

import (
	"context"
	"net/http"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FolderDelete removes a folder and everything under it. The whole subtree
// of folder and file rows goes in one transaction so a failure can't leave
// half-orphaned children, blobs are removed afterwards
func (a *API) FolderDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	folder := a.fetchOwnedFolder(c, access.ActionDelete)
	if folder == nil {
		return
	}

	// Walk the subtree level by level. Children are owner-scoped, a foreign
	// folder can't be parented here in the first place but it costs nothing
	folderIDs := []uint{folder.ID}
	frontier := []uint{folder.ID}

	for len(frontier) > 0 {
		var children []uint
		err := a.DB.
			Model(model.Folder{}).
			Where("user_id = ? AND parent_id IN ?", userID, frontier).
			Pluck("id", &children).
			Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to collect folder subtree", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		folderIDs = append(folderIDs, children...)
		frontier = children
	}

	var fileKeys []string
	err := a.DB.
		Model(model.File{}).
		Where("user_id = ? AND folder_id IN ?", userID, folderIDs).
		Pluck("file_key", &fileKeys).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to collect files for deletion", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("user_id = ? AND folder_id IN ?", userID, folderIDs).
			Delete(model.File{}).
			Error
		if err != nil {
			return err
		}

		return tx.
			Where("user_id = ? AND id IN ?", userID, folderIDs).
			Delete(model.Folder{}).
			Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete folder subtree", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, key := range fileKeys {
		if err := a.Store.Delete(context.Background(), key); err != nil {
			zap.L().Error("Failed to delete blob", zap.Error(err), zap.String("key", key))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder deleted",
	})
}
