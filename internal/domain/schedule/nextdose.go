package schedule

import "time"

// NextDose devuelve la primera toma estrictamente posterior a now.
// Si todas las de hoy ya pasaron, la más temprana de mañana.
// Sin horarios => (zero, false).
func NextDose(hours []Clock, now time.Time) (time.Time, bool) {
	if len(hours) == 0 {
		return time.Time{}, false
	}

	sorted := uniqueSorted(hours)
	for _, c := range sorted {
		if t := c.On(now); t.After(now) {
			return t, true
		}
	}

	tomorrow := Day(now).AddDate(0, 0, 1)
	return sorted[0].On(tomorrow), true
}

// NextDoseStrings es NextDose sobre strings "HH:MM" tal como vienen del store.
func NextDoseStrings(hours []string, now time.Time) (time.Time, bool, error) {
	clocks, err := ParseClocks(hours)
	if err != nil {
		return time.Time{}, false, err
	}
	t, ok := NextDose(clocks, now)
	return t, ok, nil
}
