package schedule

import (
	"errors"
	"fmt"
	"sort"
)

const MaxTimesPerDay = 24

var (
	ErrTimesPerDay   = errors.New("times per day must be between 1 and 24")
	ErrDuplicateHour = errors.New("schedule hours must be unique")
)

// DefaultHours son los horarios sugeridos al aumentar las tomas diarias.
var DefaultHours = []string{"08:00", "12:00", "16:00", "20:00", "22:00", "06:00"}

// NormalizeHours deja exactamente timesPerDay horarios únicos y ordenados.
// Si sobran se recortan (se conservan los primeros recibidos);
// si faltan se completan con DefaultHours y luego con horas en punto libres.
func NormalizeHours(hours []string, timesPerDay int) ([]string, error) {
	if timesPerDay < 1 || timesPerDay > MaxTimesPerDay {
		return nil, ErrTimesPerDay
	}

	seen := make(map[Clock]struct{}, timesPerDay)
	picked := make([]Clock, 0, timesPerDay)

	for _, s := range hours {
		c, err := ParseClock(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%s: %w", c, ErrDuplicateHour)
		}
		seen[c] = struct{}{}
		picked = append(picked, c)
	}

	if len(picked) > timesPerDay {
		picked = picked[:timesPerDay]
	}

	for _, s := range DefaultHours {
		if len(picked) >= timesPerDay {
			break
		}
		c, _ := ParseClock(s)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		picked = append(picked, c)
	}
	for h := 0; h < 24 && len(picked) < timesPerDay; h++ {
		c := Clock{Hour: h}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		picked = append(picked, c)
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].Minutes() < picked[j].Minutes() })

	out := make([]string, 0, len(picked))
	for _, c := range picked {
		out = append(out, c.String())
	}
	return out, nil
}
