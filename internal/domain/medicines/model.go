package medicines

import (
	"time"

	"dose-agil/internal/domain/schedule"
)

// DosageUnits son las unidades que ofrece el alta de medicamento.
var DosageUnits = []string{"mg", "ml", "g", "mcg", "gotas", "comprimido"}

// Medicine es un tratamiento de un usuario.
type Medicine struct {
	ID     string
	UserID string

	Name   string
	Dosage string // valor + unidad, ej "500 mg"

	TimesPerDay  int
	DurationDays int
	StartDate    time.Time // fecha calendario

	// "HH:MM" únicos y ordenados; len == TimesPerDay.
	ScheduleHours []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clocks parsea ScheduleHours; los horarios guardados ya vienen normalizados.
func (m Medicine) Clocks() ([]schedule.Clock, error) {
	return schedule.ParseClocks(m.ScheduleHours)
}

type HistoryStatus string

const (
	HistoryTaken HistoryStatus = "taken"
)

// DoseHistoryEntry registra una toma confirmada. Append-only.
// Una sola entrada por (medicamento, día, hora).
type DoseHistoryEntry struct {
	ID         string
	MedicineID string

	Date   time.Time // día calendario de la toma
	Hour   string    // "HH:MM" del horario confirmado
	Status HistoryStatus

	TakenAt time.Time
}

func takenDoses(entries []DoseHistoryEntry) []schedule.TakenDose {
	out := make([]schedule.TakenDose, 0, len(entries))
	for _, e := range entries {
		out = append(out, schedule.TakenDose{Date: e.Date, Hour: e.Hour})
	}
	return out
}
