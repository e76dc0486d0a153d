package medicines

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("medicine not found")
	ErrAlreadyTaken = errors.New("dose already taken")
)

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	GetByID(ctx context.Context, id string) (Medicine, error)
	ListByUser(ctx context.Context, userID string) ([]Medicine, error)

	// Update reemplaza la fila y sus horarios.
	Update(ctx context.Context, m Medicine) error

	// Delete borra medicamento, horarios e historial.
	Delete(ctx context.Context, id string) error

	// AddHistory devuelve ErrAlreadyTaken si ya existe (medicine, date, hour).
	AddHistory(ctx context.Context, e DoseHistoryEntry) error

	// ListHistory filtra por día si day != nil; orden date desc, hour asc.
	ListHistory(ctx context.Context, medicineID string, day *time.Time) ([]DoseHistoryEntry, error)
}
