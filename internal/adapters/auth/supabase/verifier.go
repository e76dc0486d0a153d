package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dose-agil/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("supabase verifier not configured")
)

// Verifier implementa auth.AuthVerifier para access tokens del BaaS:
// JWT HS256 firmado con el secreto del proyecto, sub = user id.
type Verifier struct {
	secret   []byte
	audience string
	issuer   string
	leeway   time.Duration
}

type Options struct {
	Secret   string
	Audience string // opcional, ej "authenticated"
	Issuer   string // opcional
	Leeway   time.Duration
}

func NewVerifier(opts Options) (*Verifier, error) {
	secret := strings.TrimSpace(opts.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: strings.TrimSpace(opts.Audience),
		issuer:   strings.TrimSpace(opts.Issuer),
		leeway:   opts.Leeway,
	}, nil
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims tokenClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID: uid,
		Email:  strings.TrimSpace(claims.Email),
	}, nil
}
