package repository

import (
	"context"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/google/uuid"
)

// SessionRepository defines the interface for signed-in cashier sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// GetByID returns nil, nil when the session does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Touch(ctx context.Context, id uuid.UUID, seenAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
