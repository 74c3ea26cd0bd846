package middleware

import (
	"context"
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/bidacafe/pos-gateway/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	ContextSessionID = "session_id"
	ContextUsername  = "username"
	ContextRole      = "role"
	ContextPOSClient = "pos_client"
)

// SessionResolver loads gateway sessions and ends the ones the POS API rejects.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID uuid.UUID) (*entity.Session, string, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
}

// AuthConfig holds what the auth middleware needs to bind a request to its session.
type AuthConfig struct {
	JWT       *utils.JWTManager
	Sessions  SessionResolver
	NewClient func(*posapi.Session) *posapi.Client
	Log       *zap.Logger
}

// AuthMiddleware validates the gateway JWT, loads its session and hands the
// handlers a POS API client carrying that session's upstream token.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Log.Named("auth")

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := cfg.JWT.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		session, token, err := cfg.Sessions.ResolveSession(c.Request.Context(), claims.SessionID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		upstream := posapi.NewSession(token)
		sessionID := session.ID
		upstream.OnInvalidate(func() {
			// the request context may already be cancelled when the 401 arrives
			ctx := context.WithoutCancel(c.Request.Context())
			if err := cfg.Sessions.EndSession(ctx, sessionID); err != nil {
				log.Warn("failed to end rejected session", zap.String("session_id", sessionID.String()), zap.Error(err))
			}
		})

		c.Set(ContextSessionID, session.ID)
		c.Set(ContextUsername, session.Username)
		c.Set(ContextRole, session.Role)
		c.Set(ContextPOSClient, cfg.NewClient(upstream))

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

// GetSessionID returns the session bound to the request, or uuid.Nil.
func GetSessionID(c *gin.Context) uuid.UUID {
	value, exists := c.Get(ContextSessionID)
	if !exists {
		return uuid.Nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetPOSClient returns the session-bound POS API client, or nil.
func GetPOSClient(c *gin.Context) *posapi.Client {
	value, exists := c.Get(ContextPOSClient)
	if !exists {
		return nil
	}
	client, _ := value.(*posapi.Client)
	return client
}
