package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dose-agil/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.Name, p.Email, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProfilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	var p profiles.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}
