package reminders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"dose-agil/internal/domain/schedule"
	"dose-agil/internal/platform/logger"
	"dose-agil/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultLead       = 5 * time.Minute
	DefaultStaleAfter = time.Hour
	DefaultBatch      = 100

	// NoLead desactiva la anticipación (Options.Lead en 0 toma DefaultLead).
	NoLead time.Duration = -1
)

type Options struct {
	Lead       time.Duration // anticipación del aviso; 0 usa DefaultLead, NoLead avisa a la hora exacta
	StaleAfter time.Duration // pasado esto sin enviarse, se marca expired
	Batch      int

	Location *time.Location
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

type Service struct {
	repo   Repository
	pusher Pusher

	lead       time.Duration
	staleAfter time.Duration
	batch      int
	loc        *time.Location

	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo Repository, pusher Pusher, opts Options) *Service {
	s := &Service{
		repo:       repo,
		pusher:     pusher,
		lead:       opts.Lead,
		staleAfter: opts.StaleAfter,
		batch:      opts.Batch,
		loc:        opts.Location,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		now:        time.Now,
	}
	switch {
	case s.lead == 0:
		s.lead = DefaultLead
	case s.lead < 0:
		s.lead = 0
	}
	if s.staleAfter <= 0 {
		s.staleAfter = DefaultStaleAfter
	}
	if s.batch <= 0 {
		s.batch = DefaultBatch
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

func (s *Service) Lead() time.Duration { return s.lead }

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

type ScheduleInput struct {
	UserID     string
	MedicineID string
	Hour       string
	Title      string
	Body       string
	TriggerAt  time.Time
	Until      time.Time
}

// ScheduleAt programa una notificación única y devuelve su id.
// El disparo tiene que ser futuro.
func (s *Service) ScheduleAt(ctx context.Context, in ScheduleInput) (string, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.MedicineID) == "" {
		return "", ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", ErrInvalidInput
	}
	if _, err := schedule.ParseClock(in.Hour); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.clock()
	if !in.TriggerAt.After(now) {
		return "", fmt.Errorf("%w: trigger must be in the future", ErrInvalidInput)
	}

	r := Reminder{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		MedicineID: in.MedicineID,
		Hour:       in.Hour,
		Title:      in.Title,
		Body:       in.Body,
		TriggerAt:  in.TriggerAt,
		Until:      in.Until,
		Status:     StatusPending,
		CreatedAt:  now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// Cancel anula una notificación pendiente del usuario.
// Sobre una ya enviada o cancelada no hace nada.
func (s *Service) Cancel(ctx context.Context, userID, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return ErrNotFound
	}
	if r.Status != StatusPending {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCanceled, nil); err != nil {
		if errors.Is(err, ErrNotPending) {
			return nil
		}
		return err
	}
	s.metrics.RemindersCanceled(1)
	return nil
}

// CancelForMedicine anula todas las pendientes de un medicamento.
func (s *Service) CancelForMedicine(ctx context.Context, medicineID string) (int, error) {
	n, err := s.repo.CancelByMedicine(ctx, medicineID)
	if err != nil {
		return 0, err
	}
	s.metrics.RemindersCanceled(n)
	return n, nil
}

func (s *Service) ListByMedicine(ctx context.Context, medicineID string) ([]Reminder, error) {
	return s.repo.ListByMedicine(ctx, medicineID)
}

// Course es lo necesario para armar los avisos de un tratamiento.
type Course struct {
	UserID       string
	MedicineID   string
	Name         string
	Dosage       string
	Hours        []string
	StartDate    time.Time
	DurationDays int
}

func Title(name string) string { return "Hora do remédio: " + name }
func Body(dosage string) string { return "É hora de tomar " + dosage }

// ArmCourse programa, para cada horario, el próximo aviso futuro dentro del tratamiento.
// Horarios cuyo tratamiento ya terminó no generan aviso.
func (s *Service) ArmCourse(ctx context.Context, c Course) ([]Reminder, error) {
	now := s.clock()
	start := schedule.CalendarDay(c.StartDate, s.loc)
	until := schedule.CourseEnd(start, c.DurationDays)

	out := make([]Reminder, 0, len(c.Hours))
	for _, h := range c.Hours {
		clock, err := schedule.ParseClock(h)
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		trigger, ok := schedule.NextReminder(clock, start, c.DurationDays, s.lead, now)
		if !ok {
			continue
		}

		in := ScheduleInput{
			UserID:     c.UserID,
			MedicineID: c.MedicineID,
			Hour:       clock.String(),
			Title:      Title(c.Name),
			Body:       Body(c.Dosage),
			TriggerAt:  trigger,
			Until:      until,
		}
		id, err := s.ScheduleAt(ctx, in)
		if err != nil {
			return out, err
		}
		out = append(out, Reminder{
			ID:         id,
			UserID:     in.UserID,
			MedicineID: in.MedicineID,
			Hour:       in.Hour,
			Title:      in.Title,
			Body:       in.Body,
			TriggerAt:  in.TriggerAt,
			Until:      in.Until,
			Status:     StatusPending,
			CreatedAt:  now,
		})
	}

	s.metrics.RemindersScheduled(len(out))
	return out, nil
}

// RegisterDevice guarda (o reasigna) un push token del usuario.
func (s *Service) RegisterDevice(ctx context.Context, userID, token string, platform Platform) (Device, error) {
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return Device{}, ErrInvalidInput
	}
	switch platform {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
	default:
		return Device{}, fmt.Errorf("%w: platform must be ios, android or web", ErrInvalidInput)
	}

	d := Device{
		UserID:    userID,
		Token:     token,
		Platform:  platform,
		UpdatedAt: s.clock(),
	}
	if err := s.repo.SaveDevice(ctx, d); err != nil {
		return Device{}, err
	}
	return d, nil
}

// DispatchResult resume un tick del dispatcher.
type DispatchResult struct {
	Sent    int
	Failed  int
	Expired int
	Rearmed int
	Skipped int // cambiaron de estado durante el envío (p.ej. cancelados)
}

// DispatchDue envía los avisos vencidos y programa el del día siguiente
// mientras dure el tratamiento. Un fallo de push marca el aviso como failed.
// Si el aviso se canceló mientras se enviaba, queda cancelado y no se re-arma.
func (s *Service) DispatchDue(ctx context.Context) (DispatchResult, error) {
	var res DispatchResult

	now := s.clock()
	due, err := s.repo.ListDue(ctx, now, s.batch)
	if err != nil {
		return res, err
	}

	for _, r := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		status := s.deliver(ctx, r, now)
		var sentAt *time.Time
		if status == StatusSent {
			t := now
			sentAt = &t
		}
		if err := s.repo.UpdateStatus(ctx, r.ID, status, sentAt); err != nil {
			if errors.Is(err, ErrNotPending) {
				s.log.Info("reminder changed during dispatch", map[string]any{
					"reminder_id": r.ID,
					"medicine_id": r.MedicineID,
				})
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("update reminder %s: %w", r.ID, err)
		}
		s.metrics.ReminderDispatched(string(status))

		switch status {
		case StatusSent:
			res.Sent++
		case StatusExpired:
			res.Expired++
		default:
			res.Failed++
		}

		ok, err := s.rearm(ctx, r, now)
		if err != nil {
			s.log.Warn("reminder rearm failed", map[string]any{
				"reminder_id": r.ID,
				"medicine_id": r.MedicineID,
				"error":       err,
			})
			continue
		}
		if ok {
			res.Rearmed++
		}
	}
	return res, nil
}

func (s *Service) deliver(ctx context.Context, r Reminder, now time.Time) Status {
	fields := map[string]any{
		"reminder_id": r.ID,
		"medicine_id": r.MedicineID,
		"user_id":     r.UserID,
		"hour":        r.Hour,
	}

	if now.Sub(r.TriggerAt) > s.staleAfter {
		s.log.Info("reminder expired", fields)
		return StatusExpired
	}

	devices, err := s.repo.ListDevices(ctx, r.UserID)
	if err != nil {
		fields["error"] = err
		s.log.Error("list devices failed", fields)
		return StatusFailed
	}
	if len(devices) == 0 {
		s.log.Warn("reminder has no destination device", fields)
		return StatusFailed
	}

	msgs := make([]Message, 0, len(devices))
	for _, d := range devices {
		msgs = append(msgs, Message{
			To:    d.Token,
			Title: r.Title,
			Body:  r.Body,
			Data: map[string]string{
				"reminder_id": r.ID,
				"medicine_id": r.MedicineID,
				"hour":        r.Hour,
			},
		})
	}

	if err := s.pusher.Push(ctx, msgs); err != nil {
		fields["error"] = err
		s.log.Warn("reminder push failed", fields)
		return StatusFailed
	}

	fields["devices"] = len(devices)
	s.log.Info("reminder sent", fields)
	return StatusSent
}

// rearm programa el aviso de la misma hora para el siguiente día con toma futura
// que no pase de Until.
func (s *Service) rearm(ctx context.Context, r Reminder, now time.Time) (bool, error) {
	clock, err := schedule.ParseClock(r.Hour)
	if err != nil {
		return false, err
	}

	doseDay := schedule.Day(r.TriggerAt.In(s.loc).Add(s.lead))
	from := doseDay.AddDate(0, 0, 1)
	until := schedule.CalendarDay(r.Until, s.loc)

	days := daysBetween(from, until) + 1
	if days < 1 {
		return false, nil
	}

	trigger, ok := schedule.NextReminder(clock, from, days, s.lead, now)
	if !ok {
		return false, nil
	}

	if _, err := s.ScheduleAt(ctx, ScheduleInput{
		UserID:     r.UserID,
		MedicineID: r.MedicineID,
		Hour:       r.Hour,
		Title:      r.Title,
		Body:       r.Body,
		TriggerAt:  trigger,
		Until:      r.Until,
	}); err != nil {
		return false, err
	}
	s.metrics.RemindersScheduled(1)
	return true, nil
}

// daysBetween cuenta días calendario (tolera cambios de horario de verano).
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
