package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"dose-agil/internal/domain/medicines"
	"dose-agil/internal/domain/schedule"
)

type medicineRepo struct {
	mu      sync.RWMutex
	byID    map[string]medicines.Medicine
	history map[string][]medicines.DoseHistoryEntry // por medicine id
}

func NewMedicineRepo() medicines.Repository {
	return &medicineRepo{
		byID:    make(map[string]medicines.Medicine),
		history: make(map[string][]medicines.DoseHistoryEntry),
	}
}

func (r *medicineRepo) Create(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medicine already exists")
	}
	r.byID[m.ID] = cloneMedicine(m)
	return nil
}

func (r *medicineRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return cloneMedicine(m), nil
}

func (r *medicineRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, cloneMedicine(m))
		}
	}

	// Más recientes primero, como la lista de la app
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicineRepo) Update(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medicines.ErrNotFound
	}
	r.byID[m.ID] = cloneMedicine(m)
	return nil
}

func (r *medicineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return medicines.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.history, id)
	return nil
}

func (r *medicineRepo) AddHistory(ctx context.Context, e medicines.DoseHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.MedicineID]; !exists {
		return medicines.ErrNotFound
	}
	for _, prev := range r.history[e.MedicineID] {
		if prev.Hour == e.Hour && schedule.SameDate(prev.Date, e.Date) {
			return medicines.ErrAlreadyTaken
		}
	}
	r.history[e.MedicineID] = append(r.history[e.MedicineID], e)
	return nil
}

func (r *medicineRepo) ListHistory(ctx context.Context, medicineID string, day *time.Time) ([]medicines.DoseHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.DoseHistoryEntry, 0)
	for _, e := range r.history[medicineID] {
		if day != nil && !schedule.SameDate(e.Date, *day) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := schedule.Day(out[i].Date), schedule.Day(out[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

func cloneMedicine(m medicines.Medicine) medicines.Medicine {
	m.ScheduleHours = slices.Clone(m.ScheduleHours)
	return m
}
