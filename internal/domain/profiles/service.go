package profiles

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Get devuelve el perfil guardado. Si el usuario todavía no editó nada,
// arma uno con el e-mail del token.
func (s *Service) Get(ctx context.Context, userID, tokenEmail string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	return Profile{UserID: userID, Email: strings.TrimSpace(tokenEmail)}, nil
}

type UpdateInput struct {
	Name  *string
	Email *string
}

func (s *Service) Update(ctx context.Context, userID, tokenEmail string, in UpdateInput) (Profile, error) {
	current, err := s.Get(ctx, userID, tokenEmail)
	if err != nil {
		return Profile{}, err
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return Profile{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
			}
		}
		current.Email = email
	}

	now := s.now()
	if current.CreatedAt.IsZero() {
		current.CreatedAt = now
	}
	current.UpdatedAt = now

	if err := s.repo.Upsert(ctx, current); err != nil {
		return Profile{}, err
	}
	return current, nil
}
