package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/repository"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from a stored key
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyPendingTTL bounds how long an unfinished request holds its key
	IdempotencyPendingTTL = 2 * time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays stored responses for repeated keys. Requests without a
// key pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return idempotency(cfg, false)
}

// IdempotencyRequired rejects writes without a key. Used on bill creation so a
// retried tap on a flaky connection never bills a table twice, even while the
// first attempt is still waiting on the POS API.
func IdempotencyRequired(cfg IdempotencyConfig) gin.HandlerFunc {
	return idempotency(cfg, true)
}

func idempotency(cfg IdempotencyConfig, required bool) gin.HandlerFunc {
	log := cfg.Log.Named("idempotency")

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			if required {
				response.BadRequest(c, "Idempotency-Key header is required for this request")
				c.Abort()
				return
			}
			c.Next()
			return
		}
		if len(key) > 255 {
			response.BadRequest(c, "Idempotency-Key must be at most 255 characters")
			c.Abort()
			return
		}

		sessionID := GetSessionID(c)
		if sessionID == uuid.Nil {
			response.Unauthorized(c, "Session required")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.Request.URL.Path

		existing, err := cfg.Repo.GetByKey(ctx, key, sessionID)
		if err != nil {
			log.Error("idempotency lookup failed", zap.String("session_id", sessionID.String()), zap.Error(err))
			if required {
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			c.Next()
			return
		}
		if existing != nil {
			switch {
			case existing.IsExpired():
				if err := cfg.Repo.Release(ctx, key, sessionID); err != nil {
					log.Warn("failed to drop expired idempotency key", zap.String("session_id", sessionID.String()), zap.Error(err))
				}
			case existing.Endpoint != endpoint:
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				c.Abort()
				return
			case existing.IsPending():
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
				c.Abort()
				return
			default:
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
				return
			}
		}

		reserved, err := cfg.Repo.Reserve(ctx, &entity.IdempotencyKey{
			Key:       key,
			SessionID: sessionID,
			Endpoint:  endpoint,
			ExpiresAt: time.Now().Add(IdempotencyPendingTTL),
		})
		if err != nil {
			log.Error("failed to reserve idempotency key", zap.String("session_id", sessionID.String()), zap.Error(err))
			if required {
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			c.Next()
			return
		}
		if !reserved {
			// another retry claimed the key between lookup and insert
			response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the handler may have been cancelled with the client
		ctx = context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if err := cfg.Repo.Release(ctx, key, sessionID); err != nil {
				log.Warn("failed to release idempotency key", zap.String("session_id", sessionID.String()), zap.Error(err))
			}
			return
		}
		ikey := &entity.IdempotencyKey{
			Key:          key,
			SessionID:    sessionID,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := cfg.Repo.Complete(ctx, ikey); err != nil {
			log.Warn("failed to store idempotency key", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
	}
}
