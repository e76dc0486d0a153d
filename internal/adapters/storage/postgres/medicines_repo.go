package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dose-agil/internal/domain/medicines"

	"github.com/google/uuid"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medicines (
			id, user_id,
			name, dosage,
			times_per_day, duration_days, start_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7::date,$8,$9)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		m.TimesPerDay,
		m.DurationDays,
		dateParam(m.StartDate),
		m.CreatedAt,
		m.UpdatedAt,
	); err != nil {
		return err
	}

	if err := insertHours(ctx, tx, m.ID, m.ScheduleHours); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MedicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			name, dosage,
			times_per_day, duration_days, start_date,
			created_at, updated_at
		FROM medicines
		WHERE id = $1
	`, id)

	m, err := scanMedicine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medicines.Medicine{}, medicines.ErrNotFound
		}
		return medicines.Medicine{}, err
	}

	hours, err := r.hoursFor(ctx, []string{m.ID})
	if err != nil {
		return medicines.Medicine{}, err
	}
	m.ScheduleHours = nonNil(hours[m.ID])
	return m, nil
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, dosage,
			times_per_day, duration_days, start_date,
			created_at, updated_at
		FROM medicines
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	ids := make([]string, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	hours, err := r.hoursFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ScheduleHours = nonNil(hours[out[i].ID])
	}
	return out, nil
}

// Update reemplaza fila y horarios en una sola transacción.
func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE medicines SET
			name = $2,
			dosage = $3,
			times_per_day = $4,
			duration_days = $5,
			start_date = $6::date,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.TimesPerDay,
		m.DurationDays,
		dateParam(m.StartDate),
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medicines.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM medicine_schedules WHERE medicine_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertHours(ctx, tx, m.ID, m.ScheduleHours); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete: horarios e historial caen por ON DELETE CASCADE.
func (r *MedicinesRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return medicines.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) AddHistory(ctx context.Context, e medicines.DoseHistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medicine_history (
			id, medicine_id, date, hour, status, taken_at
		) VALUES ($1,$2,$3::date,$4,$5,$6)
	`,
		e.ID,
		e.MedicineID,
		dateParam(e.Date),
		e.Hour,
		string(e.Status),
		e.TakenAt,
	)
	if isUniqueViolation(err) {
		return medicines.ErrAlreadyTaken
	}
	return err
}

func (r *MedicinesRepo) ListHistory(ctx context.Context, medicineID string, day *time.Time) ([]medicines.DoseHistoryEntry, error) {
	if _, err := uuid.Parse(medicineID); err != nil {
		return []medicines.DoseHistoryEntry{}, nil
	}

	query := `
		SELECT id, medicine_id, date, hour, status, taken_at
		FROM medicine_history
		WHERE medicine_id = $1
	`
	args := []any{medicineID}
	if day != nil {
		query += " AND date = $2::date"
		args = append(args, dateParam(*day))
	}
	query += " ORDER BY date DESC, hour ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.DoseHistoryEntry, 0)
	for rows.Next() {
		var e medicines.DoseHistoryEntry
		var status string
		if err := rows.Scan(&e.ID, &e.MedicineID, &e.Date, &e.Hour, &status, &e.TakenAt); err != nil {
			return nil, err
		}
		e.Status = medicines.HistoryStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(s rowScanner) (medicines.Medicine, error) {
	var m medicines.Medicine
	err := s.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&m.TimesPerDay,
		&m.DurationDays,
		&m.StartDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *MedicinesRepo) hoursFor(ctx context.Context, ids []string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT medicine_id, time
		FROM medicine_schedules
		WHERE medicine_id::text = ANY($1::text[])
		ORDER BY medicine_id, time ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string, len(ids))
	for rows.Next() {
		var id, hour string
		if err := rows.Scan(&id, &hour); err != nil {
			return nil, err
		}
		out[id] = append(out[id], hour)
	}
	return out, rows.Err()
}

func insertHours(ctx context.Context, tx *sql.Tx, medicineID string, hours []string) error {
	for _, h := range hours {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO medicine_schedules (medicine_id, time) VALUES ($1, $2)`, medicineID, h,
		); err != nil {
			return err
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
