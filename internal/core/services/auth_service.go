package services

import (
	"context"
	"fmt"
	"time"

	"github.com/digibank/backend/internal/apperrors"
	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/utils"
	"github.com/digibank/backend/pkg/config"
)

// AuthService issues bearer tokens against the configured operator
// credential. The core services themselves never inspect identity beyond the
// callerID recorded for audit.
type AuthService struct {
	cfg *config.Config
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login verifies the operator credential and returns a signed JWT. Wrong
// username and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Username != s.cfg.AdminUsername || !utils.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash) {
		logger.Warn("login rejected", "username", req.Username)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	token, err := utils.GenerateJWT(req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("failed to sign token", "error", err)
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	logger.Info("login succeeded", "username", req.Username)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.JWTExpiryDuration),
	}, nil
}
