package profiles

import "time"

// Profile son los datos visibles del usuario (pantalla de perfil).
type Profile struct {
	UserID string
	Name   string
	Email  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
