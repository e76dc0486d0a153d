package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dose-agil/internal/domain/profiles"
)

type profileRepo struct {
	mu       sync.RWMutex
	byUserID map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{byUserID: make(map[string]profiles.Profile)}
}

func (r *profileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	if prev, ok := r.byUserID[p.UserID]; ok && !prev.CreatedAt.IsZero() {
		p.CreatedAt = prev.CreatedAt
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}
