package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byUser map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string]Profile{}}
}

func (r *testRepo) Upsert(_ context.Context, p Profile) error {
	r.byUser[p.UserID] = p
	return nil
}

func (r *testRepo) GetByUserID(_ context.Context, userID string) (Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func strPtr(s string) *string { return &s }

func TestService_Get_FallsBackToTokenEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Get(context.Background(), "user-1", " ana@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.True(t, p.UpdatedAt.IsZero())

	_, err = svc.Get(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	p, err := svc.Update(context.Background(), "user-1", "token@example.com", UpdateInput{Name: strPtr("  Ana ")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "token@example.com", p.Email)
	assert.Equal(t, first, p.CreatedAt)

	later := first.Add(time.Hour)
	svc.now = func() time.Time { return later }

	p, err = svc.Update(context.Background(), "user-1", "token@example.com", UpdateInput{Email: strPtr("ana@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, first, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)

	// lo guardado gana sobre el e-mail del token
	got, err := svc.Get(context.Background(), "user-1", "token@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestService_Update_RejectsInvalidEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "user-1", "", UpdateInput{Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.byUser)
}
