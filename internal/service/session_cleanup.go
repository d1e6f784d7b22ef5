// Package service holds background maintenance jobs
package service

import (
	"time"

	"stashbox/drive-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCleanup periodically removes expired sessions so the table
// doesn't grow without bound. Expired sessions are already rejected at the
// middleware, this is purely housekeeping
func SessionCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			r := db.
				Where("expires_at < ?", time.Now()).
				Delete(model.Session{})
			if r.Error != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(r.Error))
				continue
			}

			if r.RowsAffected > 0 {
				zap.L().Debug("Cleaned up expired sessions", zap.Int64("count", r.RowsAffected))
			}
		}
	}()
}
