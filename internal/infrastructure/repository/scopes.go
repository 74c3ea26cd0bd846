package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBySession limits a query to rows written under one gateway session.
func OwnedBySession(sessionID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if sessionID == uuid.Nil {
			// never match rows of other sessions
			return db.Where("1 = 0")
		}
		return db.Where("session_id = ?", sessionID)
	}
}

// ExpiredBefore selects rows whose expires_at is older than t.
func ExpiredBefore(t time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at < ?", t)
	}
}
