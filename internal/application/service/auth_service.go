package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/domain/repository"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/pkg/apperror"
	"github.com/bidacafe/pos-gateway/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AuthService signs cashiers in against the POS API and keeps their
// sessions on the gateway side.
type AuthService struct {
	loginAPI    AuthAPI
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	sealer      *utils.Sealer
	log         *zap.Logger
}

// NewAuthService creates a new auth service. loginAPI must be an
// unauthenticated client.
func NewAuthService(
	loginAPI AuthAPI,
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	sealer *utils.Sealer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		loginAPI:    loginAPI,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		sealer:      sealer,
		log:         log.Named("auth"),
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        *entity.Employee `json:"user"`
}

// Login authenticates against the POS API, stores a session holding the
// sealed upstream token and returns a gateway access token.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)

	result, err := s.loginAPI.Login(ctx, username, input.Password)
	if err != nil {
		return nil, loginError(err)
	}

	user := &entity.Employee{Username: username}
	if len(result.User) > 0 {
		if err := json.Unmarshal(result.User, user); err != nil {
			s.log.Warn("login user snapshot unreadable", zap.String("username", username), zap.Error(err))
			user = &entity.Employee{Username: username}
		}
		if user.Username == "" {
			user.Username = username
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:         uuid.New(),
		Username:   user.Username,
		Role:       user.Role,
		User:       datatypes.JSON(result.User),
		ExpiresAt:  now.Add(s.jwtManager.AccessTokenExpiry()),
		LastSeenAt: now,
	}
	session.SealedToken, err = s.sealer.Seal(result.Token, session.ID.String())
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(session.ID, session.Username, session.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info("cashier signed in",
		zap.String("session_id", session.ID.String()),
		zap.String("username", session.Username),
	)

	return &LoginOutput{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		User:        user,
	}, nil
}

func loginError(err error) error {
	switch {
	case errors.Is(err, posapi.ErrLoginResponseInvalid), errors.Is(err, posapi.ErrNoTokenReturned):
		return apperror.NewAppError(http.StatusBadGateway, err.Error())
	case posapi.IsUnauthorized(err):
		return apperror.ErrInvalidCredentials
	default:
		return apperror.FromUpstream(err)
	}
}

// Logout signs out upstream and drops the session. Upstream failures are
// logged and otherwise ignored.
func (s *AuthService) Logout(ctx context.Context, api AuthAPI, sessionID uuid.UUID) error {
	if err := api.Logout(ctx); err != nil {
		s.log.Warn("upstream logout failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ResolveSession loads a live session and its upstream token.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID uuid.UUID) (*entity.Session, string, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if session == nil {
		return nil, "", apperror.ErrSessionExpired
	}
	if session.IsExpired() {
		s.dropSession(ctx, sessionID, "expired")
		return nil, "", apperror.ErrSessionExpired
	}

	token, err := s.sealer.Open(session.SealedToken, session.ID.String())
	if err != nil {
		s.dropSession(ctx, sessionID, "unsealable token")
		return nil, "", apperror.ErrSessionExpired
	}

	if err := s.sessionRepo.Touch(ctx, sessionID, time.Now()); err != nil {
		s.log.Warn("session touch failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	return session, token, nil
}

// EndSession removes a session the POS API no longer accepts.
func (s *AuthService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	s.log.Info("session ended by POS server", zap.String("session_id", sessionID.String()))
	return s.sessionRepo.Delete(ctx, sessionID)
}

func (s *AuthService) dropSession(ctx context.Context, sessionID uuid.UUID, reason string) {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		s.log.Warn("session delete failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		return
	}
	s.log.Info("session dropped", zap.String("session_id", sessionID.String()), zap.String("reason", reason))
}

// Profile returns the user snapshot taken at login.
func (s *AuthService) Profile(ctx context.Context, sessionID uuid.UUID) (*entity.Employee, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionExpired
	}

	user := &entity.Employee{Username: session.Username, Role: session.Role}
	if len(session.User) > 0 {
		if err := json.Unmarshal(session.User, user); err != nil {
			return nil, err
		}
		if user.Username == "" {
			user.Username = session.Username
		}
	}
	return user, nil
}
