package medicines

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID    map[string]Medicine
	history []DoseHistoryEntry
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medicine{}}
}

func (r *testRepo) Create(_ context.Context, m Medicine) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medicine, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByUser(_ context.Context, userID string) ([]Medicine, error) {
	out := make([]Medicine, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) Update(_ context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) AddHistory(_ context.Context, e DoseHistoryEntry) error {
	for _, h := range r.history {
		if h.MedicineID == e.MedicineID && h.Hour == e.Hour && schedule.SameDate(h.Date, e.Date) {
			return ErrAlreadyTaken
		}
	}
	r.history = append(r.history, e)
	return nil
}

func (r *testRepo) ListHistory(_ context.Context, medicineID string, day *time.Time) ([]DoseHistoryEntry, error) {
	out := make([]DoseHistoryEntry, 0)
	for _, h := range r.history {
		if h.MedicineID != medicineID {
			continue
		}
		if day != nil && !schedule.SameDate(h.Date, *day) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

type testScheduler struct {
	armed     []reminders.Course
	canceled  []string
	cancelErr error
}

func (s *testScheduler) ArmCourse(_ context.Context, c reminders.Course) ([]reminders.Reminder, error) {
	s.armed = append(s.armed, c)
	return nil, nil
}

func (s *testScheduler) CancelForMedicine(_ context.Context, medicineID string) (int, error) {
	if s.cancelErr != nil {
		return 0, s.cancelErr
	}
	s.canceled = append(s.canceled, medicineID)
	return 1, nil
}

func (s *testScheduler) ListByMedicine(_ context.Context, medicineID string) ([]reminders.Reminder, error) {
	return []reminders.Reminder{{ID: "rem-1", MedicineID: medicineID}}, nil
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(now time.Time) (*Service, *testRepo, *testScheduler) {
	repo := newTestRepo()
	sched := &testScheduler{}
	svc := NewService(repo, Deps{Reminders: sched, Location: time.UTC})
	svc.now = func() time.Time { return now }
	return svc, repo, sched
}

func mustCreate(t *testing.T, svc *Service, userID string, in CreateInput) Medicine {
	t.Helper()
	m, err := svc.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return m
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesAndArmsReminders(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo, sched := newTestService(now)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "  Amoxicilina ",
		DosageValue:   "500",
		DosageUnit:    "MG",
		StartDate:     day(10),
		ScheduleHours: []string{"20:00", "8:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Amoxicilina", m.Name)
	assert.Equal(t, "500 mg", m.Dosage)
	assert.Equal(t, 2, m.TimesPerDay)
	assert.Equal(t, 1, m.DurationDays)
	assert.Equal(t, []string{"08:00", "20:00"}, m.ScheduleHours)
	assert.Equal(t, now, m.CreatedAt)

	stored, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, stored)

	require.Len(t, sched.armed, 1)
	assert.Equal(t, m.ID, sched.armed[0].MedicineID)
	assert.Equal(t, []string{"08:00", "20:00"}, sched.armed[0].Hours)
	assert.Equal(t, "500 mg", sched.armed[0].Dosage)
}

func TestService_Create_FillsMissingHours(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	m := mustCreate(t, svc, "user-1", CreateInput{
		Name:          "Vitamina",
		Dosage:        "1 comprimido",
		TimesPerDay:   3,
		DurationDays:  30,
		StartDate:     day(10),
		ScheduleHours: []string{"09:00"},
	})
	assert.Equal(t, []string{"08:00", "09:00", "12:00"}, m.ScheduleHours)
}

func TestService_Create_RejectsInvalidInput(t *testing.T) {
	svc, repo, _ := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	base := CreateInput{
		Name:          "X",
		Dosage:        "1",
		DurationDays:  5,
		StartDate:     day(10),
		ScheduleHours: []string{"08:00"},
	}

	cases := map[string]func(in *CreateInput){
		"empty name":      func(in *CreateInput) { in.Name = " " },
		"no dosage":       func(in *CreateInput) { in.Dosage = "" },
		"unknown unit":    func(in *CreateInput) { in.DosageValue, in.DosageUnit = "1", "litro" },
		"no start date":   func(in *CreateInput) { in.StartDate = time.Time{} },
		"duration > 365":  func(in *CreateInput) { in.DurationDays = MaxDurationDays + 1 },
		"negative dur":    func(in *CreateInput) { in.DurationDays = -1 },
		"too many times":  func(in *CreateInput) { in.TimesPerDay = 25 },
		"bad hour":        func(in *CreateInput) { in.ScheduleHours = []string{"25:00"} },
		"duplicate hours": func(in *CreateInput) { in.ScheduleHours = []string{"08:00", "8:00"} },
		"no hours":        func(in *CreateInput) { in.ScheduleHours = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := svc.Create(context.Background(), "user-1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.byID)
}

func TestService_Get_ForeignUserIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", StartDate: day(10), ScheduleHours: []string{"08:00"}})

	_, err := svc.Get(context.Background(), "user-2", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(context.Background(), "user-1", m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}

func TestService_TakeDose(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", DurationDays: 3, StartDate: day(10), ScheduleHours: []string{"08:00", "20:00"}})

	e, err := svc.TakeDose(ctx, "user-1", m.ID, "8:00")
	require.NoError(t, err)
	assert.Equal(t, "08:00", e.Hour)
	assert.Equal(t, day(10), e.Date)
	assert.Equal(t, HistoryTaken, e.Status)
	assert.Equal(t, now, e.TakenAt)

	_, err = svc.TakeDose(ctx, "user-1", m.ID, "08:00")
	assert.ErrorIs(t, err, ErrAlreadyTaken)

	_, err = svc.TakeDose(ctx, "user-1", m.ID, "13:00")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TakeDose(ctx, "user-2", m.ID, "20:00")
	assert.ErrorIs(t, err, ErrNotFound)

	// la toma de las 20:00 se puede confirmar antes de hora
	_, err = svc.TakeDose(ctx, "user-1", m.ID, "20:00")
	require.NoError(t, err)
}

func TestService_TakeDose_NotStarted(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", StartDate: day(12), ScheduleHours: []string{"08:00"}})

	_, err := svc.TakeDose(context.Background(), "user-1", m.ID, "08:00")
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestService_Overview_RanksDueNowThenStartedThenNextDose(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	evening := mustCreate(t, svc, "user-1", CreateInput{Name: "A-evening", Dosage: "1", DurationDays: 5, StartDate: day(10), ScheduleHours: []string{"20:00"}})
	overdue := mustCreate(t, svc, "user-1", CreateInput{Name: "B-overdue", Dosage: "1", DurationDays: 5, StartDate: day(9), ScheduleHours: []string{"08:00"}})
	future := mustCreate(t, svc, "user-1", CreateInput{Name: "C-future", Dosage: "1", DurationDays: 5, StartDate: day(12), ScheduleHours: []string{"11:00"}})
	noon := mustCreate(t, svc, "user-1", CreateInput{Name: "D-noon", Dosage: "1", DurationDays: 5, StartDate: day(10), ScheduleHours: []string{"12:00"}})
	mustCreate(t, svc, "user-2", CreateInput{Name: "other", Dosage: "1", StartDate: day(10), ScheduleHours: []string{"08:00"}})

	items, err := svc.Overview(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 4)

	ids := []string{items[0].Medicine.ID, items[1].Medicine.ID, items[2].Medicine.ID, items[3].Medicine.ID}
	assert.Equal(t, []string{overdue.ID, noon.ID, evening.ID, future.ID}, ids)

	assert.True(t, items[0].DueNow)
	assert.Equal(t, schedule.StatusDueNow, items[0].Slots[0].Status)
	assert.False(t, items[3].Started)
	assert.Equal(t, schedule.StatusNotStarted, items[3].Slots[0].Status)
	require.NotNil(t, items[1].NextDose)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), *items[1].NextDose)

	// confirmada la vencida, deja de ir primero
	_, err = svc.TakeDose(ctx, "user-1", overdue.ID, "08:00")
	require.NoError(t, err)

	items, err = svc.Overview(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, noon.ID, items[0].Medicine.ID)
	for _, it := range items {
		if it.Medicine.ID == overdue.ID {
			assert.Equal(t, 100, it.Progress)
			assert.False(t, it.DueNow)
		}
	}
}

func TestService_Detail(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", DurationDays: 3, StartDate: day(9), ScheduleHours: []string{"08:00", "20:00"}})
	_, err := svc.TakeDose(ctx, "user-1", m.ID, "08:00")
	require.NoError(t, err)

	d, err := svc.Detail(ctx, "user-1", m.ID)
	require.NoError(t, err)
	require.Len(t, d.CourseDays, 3)
	assert.True(t, d.CourseDays[0].StartingDay)
	assert.True(t, d.CourseDays[2].EndingDay)
	assert.Equal(t, day(11), d.CourseEnd)
	assert.True(t, d.InCourse)
	assert.Equal(t, 50, d.Progress)
	require.Len(t, d.TakenToday, 1)
	assert.Equal(t, "08:00", d.TakenToday[0].Hour)
}

func TestService_History_FiltersByDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", DurationDays: 3, StartDate: day(9), ScheduleHours: []string{"08:00"}})

	svc.now = func() time.Time { return now.AddDate(0, 0, -1) }
	_, err := svc.TakeDose(ctx, "user-1", m.ID, "08:00")
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	_, err = svc.TakeDose(ctx, "user-1", m.ID, "08:00")
	require.NoError(t, err)

	all, err := svc.History(ctx, "user-1", m.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	d := day(9)
	only, err := svc.History(ctx, "user-1", m.ID, &d)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, day(9), only[0].Date)
}

func TestService_Update_ReplacesHoursAndRearms(t *testing.T) {
	svc, repo, sched := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", DurationDays: 3, StartDate: day(10), ScheduleHours: []string{"08:00"}})

	hours := []string{"21:00", "07:30"}
	name := "Y"
	updated, err := svc.Update(ctx, "user-1", m.ID, UpdateInput{Name: &name, ScheduleHours: &hours})
	require.NoError(t, err)
	assert.Equal(t, "Y", updated.Name)
	assert.Equal(t, 2, updated.TimesPerDay)
	assert.Equal(t, []string{"07:30", "21:00"}, updated.ScheduleHours)
	assert.Equal(t, updated, repo.byID[m.ID])

	assert.Equal(t, []string{m.ID}, sched.canceled)
	require.Len(t, sched.armed, 2)
	assert.Equal(t, []string{"07:30", "21:00"}, sched.armed[1].Hours)

	_, err = svc.Update(ctx, "user-2", m.ID, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	empty := ""
	_, err = svc.Update(ctx, "user-1", m.ID, UpdateInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete_CancelsRemindersFirst(t *testing.T) {
	svc, repo, sched := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", StartDate: day(10), ScheduleHours: []string{"08:00"}})

	assert.ErrorIs(t, svc.Delete(ctx, "user-2", m.ID), ErrNotFound)

	sched.cancelErr = errors.New("scheduler down")
	require.Error(t, svc.Delete(ctx, "user-1", m.ID))
	assert.Contains(t, repo.byID, m.ID)

	sched.cancelErr = nil
	require.NoError(t, svc.Delete(ctx, "user-1", m.ID))
	assert.NotContains(t, repo.byID, m.ID)
	assert.Equal(t, []string{m.ID}, sched.canceled)
}

func TestService_Reminders(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", StartDate: day(10), ScheduleHours: []string{"08:00"}})

	items, err := svc.Reminders(ctx, "user-1", m.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, m.ID, items[0].MedicineID)

	_, err = svc.Reminders(ctx, "user-2", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_WithoutScheduler(t *testing.T) {
	svc := NewService(newTestRepo(), Deps{Location: time.UTC})
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	m := mustCreate(t, svc, "user-1", CreateInput{Name: "X", Dosage: "1", StartDate: day(10), ScheduleHours: []string{"08:00"}})

	items, err := svc.Reminders(ctx, "user-1", m.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, svc.Delete(ctx, "user-1", m.ID))
}
