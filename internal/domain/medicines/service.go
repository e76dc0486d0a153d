package medicines

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/domain/schedule"
	"dose-agil/internal/platform/logger"
	"dose-agil/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotStarted   = errors.New("treatment has not started")
)

const MaxDurationDays = 365

// ReminderScheduler es lo que el servicio usa de reminders.Service.
type ReminderScheduler interface {
	ArmCourse(ctx context.Context, c reminders.Course) ([]reminders.Reminder, error)
	CancelForMedicine(ctx context.Context, medicineID string) (int, error)
	ListByMedicine(ctx context.Context, medicineID string) ([]reminders.Reminder, error)
}

type Deps struct {
	Reminders ReminderScheduler // nil => sin avisos
	Logger    logger.Logger
	Metrics   *metrics.Metrics
	Location  *time.Location // define "hoy" y los límites de día
}

type Service struct {
	repo      Repository
	reminders ReminderScheduler
	log       logger.Logger
	metrics   *metrics.Metrics
	loc       *time.Location
	now       func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	s := &Service{
		repo:      repo,
		reminders: deps.Reminders,
		log:       deps.Logger,
		metrics:   deps.Metrics,
		loc:       deps.Location,
		now:       time.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) startDay(m Medicine) time.Time {
	return schedule.CalendarDay(m.StartDate, s.loc)
}

type CreateInput struct {
	Name string

	// Dosage libre, o DosageValue + DosageUnit (unidad de DosageUnits).
	Dosage      string
	DosageValue string
	DosageUnit  string

	TimesPerDay   int
	DurationDays  int
	StartDate     time.Time
	ScheduleHours []string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return Medicine{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Medicine{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	dosage, err := resolveDosage(in.Dosage, in.DosageValue, in.DosageUnit)
	if err != nil {
		return Medicine{}, err
	}
	if in.StartDate.IsZero() {
		return Medicine{}, fmt.Errorf("%w: start_date is required", ErrInvalidInput)
	}
	duration, err := validDuration(in.DurationDays)
	if err != nil {
		return Medicine{}, err
	}

	times := in.TimesPerDay
	if times == 0 {
		times = len(in.ScheduleHours)
	}
	hours, err := schedule.NormalizeHours(in.ScheduleHours, times)
	if err != nil {
		return Medicine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.clock()
	m := Medicine{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Dosage:        dosage,
		TimesPerDay:   times,
		DurationDays:  duration,
		StartDate:     schedule.CalendarDay(in.StartDate, s.loc),
		ScheduleHours: hours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}
	s.metrics.MedicineCreated()

	s.armReminders(ctx, m)
	return m, nil
}

// Get devuelve el medicamento solo si es del usuario; si no, ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id string) (Medicine, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medicine{}, err
	}
	if m.UserID != userID {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Medicine, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Summary es la fila de la lista principal.
type Summary struct {
	Medicine Medicine
	Slots    []schedule.Slot

	NextDose *time.Time
	DueNow   bool
	Started  bool
	InCourse bool
	Progress int

	CourseEnd time.Time
}

func (s Summary) rankKey() schedule.RankKey {
	k := schedule.RankKey{DueNow: s.DueNow, Started: s.Started}
	if s.NextDose != nil {
		k.NextDose = *s.NextDose
		k.HasNext = true
	}
	return k
}

// Overview arma la lista del usuario con el estado de hoy, ordenada:
// due-now primero, luego iniciados, luego por próxima dosis.
func (s *Service) Overview(ctx context.Context, userID string) ([]Summary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	today := schedule.Day(now)

	out := make([]Summary, 0, len(items))
	for _, m := range items {
		history, err := s.repo.ListHistory(ctx, m.ID, &today)
		if err != nil {
			return nil, err
		}
		sum, err := s.summarize(m, history, now)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}

	schedule.Rank(out, Summary.rankKey)
	return out, nil
}

// Detail agrega al resumen los días del tratamiento y el historial de hoy.
type Detail struct {
	Summary
	CourseDays []schedule.CourseDay
	TakenToday []DoseHistoryEntry
}

func (s *Service) Detail(ctx context.Context, userID, id string) (Detail, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return Detail{}, err
	}

	now := s.clock()
	today := schedule.Day(now)
	history, err := s.repo.ListHistory(ctx, m.ID, &today)
	if err != nil {
		return Detail{}, err
	}

	sum, err := s.summarize(m, history, now)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Summary:    sum,
		CourseDays: schedule.CourseDays(s.startDay(m), m.DurationDays),
		TakenToday: history,
	}, nil
}

func (s *Service) summarize(m Medicine, history []DoseHistoryEntry, now time.Time) (Summary, error) {
	clocks, err := m.Clocks()
	if err != nil {
		return Summary{}, fmt.Errorf("medicine %s: %w", m.ID, err)
	}

	start := s.startDay(m)
	slots := schedule.Slots(clocks, start, now, takenDoses(history))

	sum := Summary{
		Medicine:  m,
		Slots:     slots,
		DueNow:    schedule.HasDueNow(slots),
		Started:   !start.After(schedule.Day(now)),
		InCourse:  schedule.InCourse(now, start, m.DurationDays),
		Progress:  schedule.Progress(slots),
		CourseEnd: schedule.CourseEnd(start, m.DurationDays),
	}
	if next, ok := schedule.NextDose(clocks, now); ok {
		sum.NextDose = &next
	}
	return sum, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name          *string
	Dosage        *string
	DosageValue   *string
	DosageUnit    *string
	TimesPerDay   *int
	DurationDays  *int
	StartDate     *time.Time
	ScheduleHours *[]string
}

// Update aplica un patch parcial. Siempre re-normaliza horarios y re-arma los avisos.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Medicine, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return Medicine{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Medicine{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		m.Name = name
	}

	if in.Dosage != nil || in.DosageValue != nil || in.DosageUnit != nil {
		dosage, err := resolveDosage(deref(in.Dosage), deref(in.DosageValue), deref(in.DosageUnit))
		if err != nil {
			return Medicine{}, err
		}
		m.Dosage = dosage
	}

	if in.DurationDays != nil {
		d, err := validDuration(*in.DurationDays)
		if err != nil {
			return Medicine{}, err
		}
		m.DurationDays = d
	}

	if in.StartDate != nil {
		if in.StartDate.IsZero() {
			return Medicine{}, fmt.Errorf("%w: start_date is required", ErrInvalidInput)
		}
		m.StartDate = schedule.CalendarDay(*in.StartDate, s.loc)
	}

	hours := m.ScheduleHours
	if in.ScheduleHours != nil {
		hours = *in.ScheduleHours
	}
	times := m.TimesPerDay
	if in.TimesPerDay != nil {
		times = *in.TimesPerDay
	} else if in.ScheduleHours != nil {
		times = len(hours)
	}
	normalized, err := schedule.NormalizeHours(hours, times)
	if err != nil {
		return Medicine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m.TimesPerDay = times
	m.ScheduleHours = normalized
	m.UpdatedAt = s.clock()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, err
	}

	if s.reminders != nil {
		if _, err := s.reminders.CancelForMedicine(ctx, m.ID); err != nil {
			s.log.Warn("cancel reminders failed", map[string]any{"medicine_id": m.ID, "error": err})
		}
	}
	s.armReminders(ctx, m)
	return m, nil
}

// Delete cancela primero los avisos pendientes; si eso falla no borra nada.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if s.reminders != nil {
		if _, err := s.reminders.CancelForMedicine(ctx, m.ID); err != nil {
			return fmt.Errorf("cancel reminders: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return err
	}
	s.metrics.MedicineDeleted()
	return nil
}

// TakeDose registra la toma de hoy para un horario del esquema.
func (s *Service) TakeDose(ctx context.Context, userID, id, hour string) (DoseHistoryEntry, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return DoseHistoryEntry{}, err
	}

	c, err := schedule.ParseClock(hour)
	if err != nil {
		return DoseHistoryEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !slices.Contains(m.ScheduleHours, c.String()) {
		return DoseHistoryEntry{}, fmt.Errorf("%w: %s is not a scheduled hour", ErrInvalidInput, c)
	}

	now := s.clock()
	today := schedule.Day(now)
	if s.startDay(m).After(today) {
		return DoseHistoryEntry{}, ErrNotStarted
	}

	e := DoseHistoryEntry{
		ID:         uuid.NewString(),
		MedicineID: m.ID,
		Date:       today,
		Hour:       c.String(),
		Status:     HistoryTaken,
		TakenAt:    now,
	}
	if err := s.repo.AddHistory(ctx, e); err != nil {
		return DoseHistoryEntry{}, err
	}
	s.metrics.DoseTaken()
	return e, nil
}

// History lista las tomas; day filtra un día calendario.
func (s *Service) History(ctx context.Context, userID, id string, day *time.Time) ([]DoseHistoryEntry, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if day != nil {
		d := schedule.CalendarDay(*day, s.loc)
		day = &d
	}
	return s.repo.ListHistory(ctx, m.ID, day)
}

// Reminders lista los avisos de un medicamento del usuario.
func (s *Service) Reminders(ctx context.Context, userID, id string) ([]reminders.Reminder, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s.reminders == nil {
		return []reminders.Reminder{}, nil
	}
	return s.reminders.ListByMedicine(ctx, m.ID)
}

// armReminders es best effort: un fallo se loguea y no afecta la escritura.
func (s *Service) armReminders(ctx context.Context, m Medicine) {
	if s.reminders == nil {
		return
	}
	armed, err := s.reminders.ArmCourse(ctx, reminders.Course{
		UserID:       m.UserID,
		MedicineID:   m.ID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Hours:        m.ScheduleHours,
		StartDate:    m.StartDate,
		DurationDays: m.DurationDays,
	})
	if err != nil {
		s.log.Warn("schedule reminders failed", map[string]any{"medicine_id": m.ID, "error": err})
		return
	}
	s.log.Debug("reminders scheduled", map[string]any{"medicine_id": m.ID, "count": len(armed)})
}

func resolveDosage(free, value, unit string) (string, error) {
	free = strings.TrimSpace(free)
	value = strings.TrimSpace(value)
	unit = strings.ToLower(strings.TrimSpace(unit))

	if value == "" && unit == "" {
		if free == "" {
			return "", fmt.Errorf("%w: dosage is required", ErrInvalidInput)
		}
		return free, nil
	}
	if value == "" {
		return "", fmt.Errorf("%w: dosage_value is required", ErrInvalidInput)
	}
	if !slices.Contains(DosageUnits, unit) {
		return "", fmt.Errorf("%w: dosage_unit must be one of %s", ErrInvalidInput, strings.Join(DosageUnits, ", "))
	}
	return value + " " + unit, nil
}

func validDuration(days int) (int, error) {
	if days == 0 {
		return 1, nil
	}
	if days < 1 || days > MaxDurationDays {
		return 0, fmt.Errorf("%w: duration_days must be between 1 and %d", ErrInvalidInput, MaxDurationDays)
	}
	return days, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
