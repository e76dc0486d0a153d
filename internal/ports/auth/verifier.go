package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier valida un access token y devuelve sus claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
