package reminders

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("reminder not found")
	// ErrNotPending: el aviso ya salió de pending (enviado, cancelado, etc).
	ErrNotPending = errors.New("reminder not pending")
)

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	ListByMedicine(ctx context.Context, medicineID string) ([]Reminder, error)

	// ListDue devuelve pendientes con trigger <= now, trigger asc.
	ListDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error)

	// UpdateStatus cambia el estado solo si sigue pending; si no, ErrNotPending.
	UpdateStatus(ctx context.Context, id string, status Status, sentAt *time.Time) error

	// CancelByMedicine pasa a canceled todas las pendientes y devuelve cuántas.
	CancelByMedicine(ctx context.Context, medicineID string) (int, error)

	SaveDevice(ctx context.Context, d Device) error
	ListDevices(ctx context.Context, userID string) ([]Device, error)
}
