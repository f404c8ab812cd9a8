package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/platform/config"
	"github.com/SscSPs/bills_app/internal/utils"
)

// authService checks the single configured user and signs JWT access tokens.
type authService struct {
	BaseService
	cfg *config.Config
	now func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{cfg: cfg, now: time.Now}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AuthUsername)) == 1
	// The hash is checked even for a wrong username to keep timings alike.
	passwordOK := utils.CheckPasswordHash(password, s.cfg.AuthPasswordHash)
	if !userOK || !passwordOK {
		s.LogInfo(ctx, "Login rejected", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(s.cfg.AuthUsername, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "Login succeeded", slog.String("username", username))
	return token, expiresAt, nil
}
