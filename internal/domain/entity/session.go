package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is a signed-in cashier. The POS API token is stored sealed and
// never leaves the gateway.
type Session struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username    string         `gorm:"size:255;not null;index" json:"username"`
	Role        string         `gorm:"size:50" json:"role"`
	SealedToken string         `gorm:"type:text;not null" json:"-"`
	User        datatypes.JSON `json:"user"`
	ExpiresAt   time.Time      `gorm:"not null;index" json:"expires_at"`
	LastSeenAt  time.Time      `json:"last_seen_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
