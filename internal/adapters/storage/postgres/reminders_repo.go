package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dose-agil/internal/domain/reminders"

	"github.com/google/uuid"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

const reminderColumns = `
	id, user_id, medicine_id,
	hour, title, body,
	trigger_at, until_date,
	status, created_at, sent_at
`

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::date,$9,$10,$11)
	`,
		rem.ID,
		rem.UserID,
		rem.MedicineID,
		rem.Hour,
		rem.Title,
		rem.Body,
		rem.TriggerAt,
		dateParam(rem.Until),
		string(rem.Status),
		rem.CreatedAt,
		rem.SentAt,
	)
	return err
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	rem, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reminders.Reminder{}, reminders.ErrNotFound
		}
		return reminders.Reminder{}, err
	}
	return rem, nil
}

func (r *RemindersRepo) ListByMedicine(ctx context.Context, medicineID string) ([]reminders.Reminder, error) {
	if _, err := uuid.Parse(medicineID); err != nil {
		return []reminders.Reminder{}, nil
	}
	return r.list(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE medicine_id = $1
		ORDER BY trigger_at ASC, id ASC
	`, medicineID)
}

func (r *RemindersRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]reminders.Reminder, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE status = $1 AND trigger_at <= $2
		ORDER BY trigger_at ASC, id ASC
		LIMIT $3
	`, string(reminders.StatusPending), now, limit)
}

func (r *RemindersRepo) UpdateStatus(ctx context.Context, id string, status reminders.Status, sentAt *time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return reminders.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET
			status = $2,
			sent_at = COALESCE($3, sent_at)
		WHERE id = $1 AND status = $4
	`, id, string(status), sentAt, string(reminders.StatusPending))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reminders WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return reminders.ErrNotFound
	}
	return reminders.ErrNotPending
}

func (r *RemindersRepo) CancelByMedicine(ctx context.Context, medicineID string) (int, error) {
	if _, err := uuid.Parse(medicineID); err != nil {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET status = $2
		WHERE medicine_id = $1 AND status = $3
	`, medicineID, string(reminders.StatusCanceled), string(reminders.StatusPending))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// SaveDevice: el token es único; si otro usuario lo registra, pasa a ser suyo.
func (r *RemindersRepo) SaveDevice(ctx context.Context, d reminders.Device) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (token, user_id, platform, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			platform = EXCLUDED.platform,
			updated_at = EXCLUDED.updated_at
	`, d.Token, d.UserID, string(d.Platform), d.UpdatedAt)
	return err
}

func (r *RemindersRepo) ListDevices(ctx context.Context, userID string) ([]reminders.Device, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token, user_id, platform, updated_at
		FROM devices
		WHERE user_id = $1
		ORDER BY token
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Device, 0)
	for rows.Next() {
		var d reminders.Device
		var platform string
		if err := rows.Scan(&d.Token, &d.UserID, &platform, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Platform = reminders.Platform(platform)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) list(ctx context.Context, query string, args ...any) ([]reminders.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func scanReminder(s rowScanner) (reminders.Reminder, error) {
	var rem reminders.Reminder
	var status string
	var sentAt sql.NullTime
	if err := s.Scan(
		&rem.ID,
		&rem.UserID,
		&rem.MedicineID,
		&rem.Hour,
		&rem.Title,
		&rem.Body,
		&rem.TriggerAt,
		&rem.Until,
		&status,
		&rem.CreatedAt,
		&sentAt,
	); err != nil {
		return reminders.Reminder{}, err
	}
	rem.Status = reminders.Status(status)
	if sentAt.Valid {
		t := sentAt.Time
		rem.SentAt = &t
	}
	return rem, nil
}
