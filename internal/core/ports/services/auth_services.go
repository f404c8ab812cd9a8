package services

import (
	"context"
	"time"
)

// AuthSvc authenticates the configured user and issues access tokens.
type AuthSvc interface {
	// Login checks the credentials and returns a signed access token with its expiry.
	// Wrong credentials yield apperrors.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}
