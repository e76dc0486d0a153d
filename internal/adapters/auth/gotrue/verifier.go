package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dose-agil/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier preguntando al servicio de auth.
// Se usa cuando no hay secreto JWT local.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, ErrTokenEmpty)
	}

	claims, err := v.client.GetUser(ctx, token)
	if errors.Is(err, ErrUnauthorized) {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if err != nil {
		return auth.Claims{}, fmt.Errorf("gotrue verify failed: %w", err)
	}
	return claims, nil
}
