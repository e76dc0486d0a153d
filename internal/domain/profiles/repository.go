package profiles

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("profile not found")
)

type Repository interface {
	// Upsert crea o reemplaza el perfil del usuario (conserva CreatedAt si ya existía).
	Upsert(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
