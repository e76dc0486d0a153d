package reminders

import "time"

// Status del ciclo de vida de una notificación programada.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSent     Status = "sent"
	StatusCanceled Status = "canceled"
	StatusFailed   Status = "failed"
	StatusExpired  Status = "expired" // el dispatcher la encontró demasiado tarde
)

// Reminder es una notificación programada para una toma.
// El ID es el "notification id" que devuelve ScheduleAt.
type Reminder struct {
	ID         string
	UserID     string
	MedicineID string

	Hour  string // "HH:MM" de la toma (no del disparo)
	Title string
	Body  string

	TriggerAt time.Time
	Until     time.Time // último día del tratamiento; no se re-arma después

	Status    Status
	CreatedAt time.Time
	SentAt    *time.Time
}

// Platform del dispositivo que registró el push token.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// Device es un destino push de un usuario. Token único.
type Device struct {
	UserID    string
	Token     string
	Platform  Platform
	UpdatedAt time.Time
}
