package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"dose-agil/internal/domain/reminders"
)

type reminderRepo struct {
	mu      sync.RWMutex
	byID    map[string]reminders.Reminder
	devices map[string]reminders.Device // por token
}

func NewReminderRepo() reminders.Repository {
	return &reminderRepo{
		byID:    make(map[string]reminders.Reminder),
		devices: make(map[string]reminders.Device),
	}
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rem.ID) == "" {
		return errors.New("reminder id required")
	}
	if _, exists := r.byID[rem.ID]; exists {
		return errors.New("reminder already exists")
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rem, ok := r.byID[id]
	if !ok {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, nil
}

func (r *reminderRepo) ListByMedicine(ctx context.Context, medicineID string) ([]reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.byID {
		if rem.MedicineID == medicineID {
			out = append(out, rem)
		}
	}
	sortByTrigger(out)
	return out, nil
}

func (r *reminderRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.byID {
		if rem.Status == reminders.StatusPending && !rem.TriggerAt.After(now) {
			out = append(out, rem)
		}
	}
	sortByTrigger(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reminderRepo) UpdateStatus(ctx context.Context, id string, status reminders.Status, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.byID[id]
	if !ok {
		return reminders.ErrNotFound
	}
	if rem.Status != reminders.StatusPending {
		return reminders.ErrNotPending
	}
	rem.Status = status
	if sentAt != nil {
		t := *sentAt
		rem.SentAt = &t
	}
	r.byID[id] = rem
	return nil
}

func (r *reminderRepo) CancelByMedicine(ctx context.Context, medicineID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, rem := range r.byID {
		if rem.MedicineID != medicineID || rem.Status != reminders.StatusPending {
			continue
		}
		rem.Status = reminders.StatusCanceled
		r.byID[id] = rem
		n++
	}
	return n, nil
}

func (r *reminderRepo) SaveDevice(ctx context.Context, d reminders.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.Token) == "" {
		return errors.New("device token required")
	}
	r.devices[d.Token] = d
	return nil
}

func (r *reminderRepo) ListDevices(ctx context.Context, userID string) ([]reminders.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reminders.Device, 0)
	for _, d := range r.devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out, nil
}

func sortByTrigger(items []reminders.Reminder) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].TriggerAt.Equal(items[j].TriggerAt) {
			return items[i].TriggerAt.Before(items[j].TriggerAt)
		}
		return items[i].ID < items[j].ID
	})
}
