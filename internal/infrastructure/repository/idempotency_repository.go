package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	domainRepo "github.com/bidacafe/pos-gateway/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository stores replayable responses keyed by session and Idempotency-Key.
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error) {
	var stored entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Scopes(OwnedBySession(sessionID)).
		Where("key = ?", key).
		Take(&stored).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &stored, nil
}

// Reserve claims the key. Of two retries racing on the same key only one
// gets true.
func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}, {Name: "session_id"}},
			DoNothing: true,
		}).
		Create(ikey)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Model(&entity.IdempotencyKey{}).
		Scopes(OwnedBySession(ikey.SessionID)).
		Where("key = ? AND response_code = 0", ikey.Key).
		Updates(map[string]any{
			"response_code": ikey.ResponseCode,
			"response_body": ikey.ResponseBody,
			"expires_at":    ikey.ExpiresAt,
		}).Error
}

func (r *idempotencyRepository) Release(ctx context.Context, key string, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnedBySession(sessionID)).
		Where("key = ?", key).
		Delete(&entity.IdempotencyKey{}).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(ExpiredBefore(time.Now())).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}
