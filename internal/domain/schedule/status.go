package schedule

import "time"

type Status string

const (
	StatusTaken      Status = "taken"
	StatusDueNow     Status = "due-now"
	StatusUpcoming   Status = "upcoming"
	StatusNotStarted Status = "not-started"
)

// TakenDose es la vista mínima de una entrada de historial.
// Date es fecha calendario; Hour el string "HH:MM" guardado al confirmar.
type TakenDose struct {
	Date time.Time
	Hour string
}

// Slot es el estado derivado de una hora del esquema para "hoy".
type Slot struct {
	Hour       string `json:"hour"`
	Status     Status `json:"status"`
	TakenToday bool   `json:"taken_today"`
	IsDueNow   bool   `json:"is_due_now"`
	IsFuture   bool   `json:"is_future"`
}

// Classify decide el estado de una toma.
// Orden: not-started > taken > due-now > upcoming.
// El match con historial es por string exacto y solo contra entradas de hoy.
func Classify(hour Clock, startDate, now time.Time, history []TakenDose) Status {
	today := Day(now)
	if CalendarDay(startDate, now.Location()).After(today) {
		return StatusNotStarted
	}

	if takenToday(hour, now, history) {
		return StatusTaken
	}

	if !hour.On(now).After(now) {
		return StatusDueNow
	}
	return StatusUpcoming
}

// Slots arma el estado de cada hora, en el orden recibido.
func Slots(hours []Clock, startDate, now time.Time, history []TakenDose) []Slot {
	out := make([]Slot, 0, len(hours))
	for _, h := range hours {
		st := Classify(h, startDate, now, history)
		out = append(out, Slot{
			Hour:       h.String(),
			Status:     st,
			TakenToday: st == StatusTaken,
			IsDueNow:   st == StatusDueNow,
			IsFuture:   h.On(now).After(now),
		})
	}
	return out
}

func HasDueNow(slots []Slot) bool {
	for _, s := range slots {
		if s.Status == StatusDueNow {
			return true
		}
	}
	return false
}

// Progress es el % de tomas de hoy ya confirmadas (0..100) para la barra de progreso.
func Progress(slots []Slot) int {
	if len(slots) == 0 {
		return 0
	}
	taken := 0
	for _, s := range slots {
		if s.TakenToday {
			taken++
		}
	}
	return taken * 100 / len(slots)
}

func takenToday(hour Clock, now time.Time, history []TakenDose) bool {
	want := hour.String()
	for _, h := range history {
		if h.Hour == want && SameDate(h.Date, now) {
			return true
		}
	}
	return false
}
