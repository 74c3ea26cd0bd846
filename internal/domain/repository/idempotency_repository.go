package repository

import (
	"context"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and session ID
	GetByKey(ctx context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve inserts a pending key. It returns false when the key already exists.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete stores the response for a pending key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a key so the request can be retried
	Release(ctx context.Context, key string, sessionID uuid.UUID) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) (int64, error)
}
