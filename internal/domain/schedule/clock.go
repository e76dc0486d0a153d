// Package schedule contiene la lógica pura de horarios de dosis:
// parseo de "HH:MM", próxima dosis, estado de cada toma y orden de la lista.
// No hace I/O; "now" siempre llega como parámetro.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock = errors.New("time of day must be HH:MM (00:00-23:59)")
)

// Clock es una hora del día (24h) sin fecha.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock acepta "HH:MM" (o "H:MM") y normaliza a Clock.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, ErrInvalidClock
	}

	h, ok := parseDigits(hh, 1, 2)
	if !ok || h > 23 {
		return Clock{}, ErrInvalidClock
	}
	m, ok := parseDigits(mm, 2, 2)
	if !ok || m > 59 {
		return Clock{}, ErrInvalidClock
	}

	return Clock{Hour: h, Minute: m}, nil
}

// ParseClocks parsea una lista completa; falla en el primer valor inválido.
func ParseClocks(in []string) ([]Clock, error) {
	out := make([]Clock, 0, len(in))
	for _, s := range in {
		c, err := ParseClock(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseTimeOfDay devuelve la fecha de ref con la hora indicada (segundos en 0).
func ParseTimeOfDay(s string, ref time.Time) (time.Time, error) {
	c, err := ParseClock(s)
	if err != nil {
		return time.Time{}, err
	}
	return c.On(ref), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes desde medianoche.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On ubica la hora en el día calendario de day, en su misma location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// Day trunca t a la medianoche de su propia location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarDay interpreta t como fecha calendario (sin hora) y la ubica en loc.
// No convierte zonas: un DATE 2025-03-10 sigue siendo el 10 en loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDate compara solo año/mes/día tal como están escritos en cada valor.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// uniqueSorted ordena asc y colapsa horas repetidas.
func uniqueSorted(in []Clock) []Clock {
	out := make([]Clock, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Minutes() < out[j].Minutes() })

	n := 0
	for i, c := range out {
		if i > 0 && c == out[n-1] {
			continue
		}
		out[n] = c
		n++
	}
	return out[:n]
}

func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
