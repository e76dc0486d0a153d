package schedule

import "time"

// CourseDay es un día del tratamiento, marcado como en el calendario del alta.
type CourseDay struct {
	Date        time.Time `json:"date"`
	StartingDay bool      `json:"starting_day"`
	EndingDay   bool      `json:"ending_day"`
}

// CourseEnd es el último día calendario del tratamiento (inclusive).
func CourseEnd(start time.Time, durationDays int) time.Time {
	if durationDays < 1 {
		durationDays = 1
	}
	return Day(start).AddDate(0, 0, durationDays-1)
}

// CourseDays lista todos los días del tratamiento desde start.
func CourseDays(start time.Time, durationDays int) []CourseDay {
	if durationDays < 1 {
		durationDays = 1
	}
	first := Day(start)
	out := make([]CourseDay, 0, durationDays)
	for i := 0; i < durationDays; i++ {
		out = append(out, CourseDay{
			Date:        first.AddDate(0, 0, i),
			StartingDay: i == 0,
			EndingDay:   i == durationDays-1,
		})
	}
	return out
}

// InCourse indica si day (fecha calendario) cae dentro del tratamiento.
func InCourse(day, start time.Time, durationDays int) bool {
	d := CalendarDay(day, start.Location())
	first := Day(start)
	return !d.Before(first) && !d.After(CourseEnd(first, durationDays))
}

// NextReminder calcula el próximo disparo (hora de la toma - lead) posterior a now
// cuya toma cae dentro del tratamiento. false si el tratamiento ya terminó.
func NextReminder(hour Clock, start time.Time, durationDays int, lead time.Duration, now time.Time) (time.Time, bool) {
	first := CalendarDay(start, now.Location())
	last := CourseEnd(first, durationDays)

	day := first
	if today := Day(now); today.After(day) {
		day = today
	}

	for !day.After(last) {
		trigger := hour.On(day).Add(-lead)
		if trigger.After(now) {
			return trigger, true
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}
