package schedule

import (
	"slices"
	"time"
)

// RankKey resume lo que importa para ordenar la lista de medicamentos.
type RankKey struct {
	DueNow   bool
	Started  bool
	NextDose time.Time
	HasNext  bool
}

// Compare: due-now primero, luego iniciados, luego próxima dosis asc.
// Sin próxima dosis (sin horarios) va al final de su grupo.
func Compare(a, b RankKey) int {
	if a.DueNow != b.DueNow {
		return boolFirst(a.DueNow)
	}
	if a.Started != b.Started {
		return boolFirst(a.Started)
	}
	if a.HasNext != b.HasNext {
		return boolFirst(a.HasNext)
	}
	if !a.HasNext {
		return 0
	}
	return a.NextDose.Compare(b.NextDose)
}

func Less(a, b RankKey) bool {
	return Compare(a, b) < 0
}

// Rank ordena items in-place de forma estable.
func Rank[T any](items []T, key func(T) RankKey) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(key(a), key(b))
	})
}

func boolFirst(v bool) int {
	if v {
		return -1
	}
	return 1
}
